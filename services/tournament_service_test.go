package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/Dosada05/fantasy-league/models"
)

func validTournament() *models.Tournament {
	base := time.Date(2026, time.July, 1, 18, 0, 0, 0, time.UTC)
	return &models.Tournament{
		Name:               "Summer Cup",
		Rules:              "standard",
		RegistrationLimit:  100,
		PlayerLimitPerTeam: 11,
		KnockoutStart:      base,
		SemifinalStart:     base.Add(7 * 24 * time.Hour),
		FinalStart:         base.Add(14 * 24 * time.Hour),
	}
}

func TestValidateTournament(t *testing.T) {
	assert.NoError(t, validateTournament(validTournament()))

	t.Run("missing name", func(t *testing.T) {
		tr := validTournament()
		tr.Name = ""
		assert.ErrorIs(t, validateTournament(tr), ErrTournamentFieldsRequired)
	})

	t.Run("zero player limit", func(t *testing.T) {
		tr := validTournament()
		tr.PlayerLimitPerTeam = 0
		assert.ErrorIs(t, validateTournament(tr), ErrTournamentFieldsRequired)
	})

	t.Run("zero phase timestamp", func(t *testing.T) {
		tr := validTournament()
		tr.FinalStart = time.Time{}
		assert.ErrorIs(t, validateTournament(tr), ErrTournamentFieldsRequired)
	})

	t.Run("semifinal before knockout", func(t *testing.T) {
		tr := validTournament()
		tr.SemifinalStart = tr.KnockoutStart.Add(-time.Hour)
		assert.ErrorIs(t, validateTournament(tr), ErrTournamentPhaseOrder)
	})

	t.Run("equal phase starts", func(t *testing.T) {
		tr := validTournament()
		tr.FinalStart = tr.SemifinalStart
		assert.ErrorIs(t, validateTournament(tr), ErrTournamentPhaseOrder)
	})
}

func TestValidateFranchiseBatch(t *testing.T) {
	t.Run("unique names pass", func(t *testing.T) {
		batch := []FranchiseInput{
			{Name: "North Wolves", Location: "Oslo"},
			{Name: "South Hawks", Location: "Madrid"},
		}
		assert.NoError(t, validateFranchiseBatch(batch))
	})

	t.Run("case-insensitive duplicate", func(t *testing.T) {
		batch := []FranchiseInput{
			{Name: "North Wolves", Location: "Oslo"},
			{Name: "north wolves", Location: "Bergen"},
		}
		assert.ErrorIs(t, validateFranchiseBatch(batch), ErrFranchiseNameTaken)
	})

	t.Run("missing location", func(t *testing.T) {
		batch := []FranchiseInput{{Name: "North Wolves"}}
		assert.ErrorIs(t, validateFranchiseBatch(batch), ErrFranchiseFieldsRequired)
	})

	t.Run("blank name", func(t *testing.T) {
		batch := []FranchiseInput{{Name: "   ", Location: "Oslo"}}
		assert.ErrorIs(t, validateFranchiseBatch(batch), ErrFranchiseFieldsRequired)
	})
}
