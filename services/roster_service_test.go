package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dosada05/fantasy-league/models"
)

func rosterPlayers(prices map[int]int) map[int]*models.Player {
	players := make(map[int]*models.Player, len(prices))
	for id, price := range prices {
		players[id] = &models.Player{ID: id, TournamentID: 1, Price: price}
	}
	return players
}

func TestBuildWorkingSet(t *testing.T) {
	t.Run("remove then add", func(t *testing.T) {
		got := buildWorkingSet([]int{1, 2, 3}, []int{4}, []int{2})
		assert.Equal(t, []int{1, 3, 4}, got)
	})

	t.Run("removing absent id is a no-op", func(t *testing.T) {
		got := buildWorkingSet([]int{1, 2}, nil, []int{99})
		assert.Equal(t, []int{1, 2}, got)
	})

	t.Run("adding present id collapses", func(t *testing.T) {
		got := buildWorkingSet([]int{1, 2}, []int{2, 3}, nil)
		assert.Equal(t, []int{1, 2, 3}, got)
	})

	t.Run("empty current", func(t *testing.T) {
		got := buildWorkingSet(nil, []int{3, 1, 2}, nil)
		assert.Equal(t, []int{1, 2, 3}, got)
	})
}

func TestValidateRoster(t *testing.T) {
	tournament := &models.Tournament{ID: 1, PlayerLimitPerTeam: 3}

	t.Run("valid roster within budget", func(t *testing.T) {
		players := rosterPlayers(map[int]int{1: 40, 2: 30, 3: 30})
		roster, err := validateRoster([]int{1, 2, 3}, []int{1, 2, 3}, players, tournament)
		require.NoError(t, err)
		assert.Equal(t, []int{1, 2, 3}, roster)
	})

	t.Run("size mismatch", func(t *testing.T) {
		players := rosterPlayers(map[int]int{1: 10, 2: 10})
		_, err := validateRoster([]int{1, 2}, []int{1, 2}, players, tournament)
		assert.ErrorIs(t, err, ErrRosterSizeMismatch)
	})

	t.Run("duplicate add collapses to undersized roster", func(t *testing.T) {
		players := rosterPlayers(map[int]int{1: 10, 2: 10})
		working := buildWorkingSet(nil, []int{1, 2, 2}, nil)
		_, err := validateRoster(working, []int{1, 2, 2}, players, tournament)
		assert.ErrorIs(t, err, ErrRosterSizeMismatch)
	})

	t.Run("budget exceeded", func(t *testing.T) {
		players := rosterPlayers(map[int]int{1: 50, 2: 40, 3: 20})
		_, err := validateRoster([]int{1, 2, 3}, []int{1, 2, 3}, players, tournament)
		assert.ErrorIs(t, err, ErrRosterBudgetExceeded)
	})

	t.Run("budget exactly at cap passes", func(t *testing.T) {
		players := rosterPlayers(map[int]int{1: 40, 2: 40, 3: 20})
		_, err := validateRoster([]int{1, 2, 3}, []int{1, 2, 3}, players, tournament)
		assert.NoError(t, err)
	})

	t.Run("unknown added player", func(t *testing.T) {
		players := rosterPlayers(map[int]int{1: 10, 2: 10})
		_, err := validateRoster([]int{1, 2, 99}, []int{1, 2, 99}, players, tournament)
		assert.ErrorIs(t, err, ErrPlayerReferenceInvalid)
	})

	t.Run("player from another tournament", func(t *testing.T) {
		players := rosterPlayers(map[int]int{1: 10, 2: 10, 3: 10})
		players[3].TournamentID = 2
		_, err := validateRoster([]int{1, 2, 3}, []int{3}, players, tournament)
		assert.ErrorIs(t, err, ErrPlayerReferenceInvalid)
	})
}
