package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dosada05/fantasy-league/models"
)

func TestBuildPointEntry(t *testing.T) {
	team := &models.Team{ID: 10, CurrentPhase: models.PhaseSemifinal}
	pointsByPlayer := map[int]int{1: 11, 2: -2, 5: 7}

	entry := buildPointEntry(team, 3, []int{1, 2, 3}, pointsByPlayer)

	assert.Equal(t, 10, entry.TeamID)
	assert.Equal(t, 3, entry.MatchNumber)
	assert.Equal(t, models.PhaseSemifinal, entry.Phase)

	// Игрок 3 в матче не участвовал — ноль в разбивке, не пропуск.
	require.Len(t, entry.Players, 3)
	assert.Equal(t, models.TeamPointBreakdown{PlayerID: 1, Points: 11}, entry.Players[0])
	assert.Equal(t, models.TeamPointBreakdown{PlayerID: 2, Points: -2}, entry.Players[1])
	assert.Equal(t, models.TeamPointBreakdown{PlayerID: 3, Points: 0}, entry.Players[2])

	assert.Equal(t, 9, entry.MatchPoints)
}

func TestBuildPointEntry_EmptyMatchOverlap(t *testing.T) {
	team := &models.Team{ID: 1, CurrentPhase: models.PhaseKnockout}

	entry := buildPointEntry(team, 1, []int{7, 8}, map[int]int{})

	assert.Equal(t, 0, entry.MatchPoints)
	require.Len(t, entry.Players, 2)
	for _, bd := range entry.Players {
		assert.Zero(t, bd.Points)
	}
}

func TestCollectReferencedPlayerIDs(t *testing.T) {
	match := &models.MatchDetails{
		PlayersPlayedTeam1: []int{1, 2},
		PlayersPlayedTeam2: []int{3},
		Goals:              []models.GoalEvent{{PlayerID: 2, Goals: 1, Assists: []int{1, 4}}},
		Cards:              models.CardEvents{Yellow: []int{3}, Red: []int{5}},
		PenaltiesMissed:    []int{2},
		PenaltySaves:       []int{6},
		OwnGoals:           []int{1},
	}

	ids := collectReferencedPlayerIDs(match)

	assert.Equal(t, []int{1, 2, 3, 4, 5, 6}, ids)
}

func TestValidateMatchInput(t *testing.T) {
	valid := func() *models.MatchDetails {
		return &models.MatchDetails{
			TournamentID:       1,
			MatchNumber:        1,
			MatchName:          "Quarter Final 1",
			Score:              "2-1",
			PlayersPlayedTeam1: []int{1},
			PlayersPlayedTeam2: []int{2},
		}
	}

	assert.NoError(t, validateMatchInput(valid()))

	missingName := valid()
	missingName.MatchName = ""
	assert.ErrorIs(t, validateMatchInput(missingName), ErrMatchFieldsRequired)

	noAppearances := valid()
	noAppearances.PlayersPlayedTeam2 = nil
	assert.ErrorIs(t, validateMatchInput(noAppearances), ErrMatchFieldsRequired)
}
