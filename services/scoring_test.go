package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dosada05/fantasy-league/models"
)

func testPlayers() []*models.Player {
	return []*models.Player{
		{ID: 1, Position: models.PositionGoalkeeper},
		{ID: 2, Position: models.PositionDefender},
		{ID: 3, Position: models.PositionMidfielder},
		{ID: 4, Position: models.PositionForward},
	}
}

func pointsFor(t *testing.T, results []models.PlayerMatchPoints, playerID int) int {
	t.Helper()
	for _, pp := range results {
		if pp.PlayerID == playerID {
			return pp.Points
		}
	}
	t.Fatalf("no points entry for player %d", playerID)
	return 0
}

func TestCalculateMatchPoints_GoalkeeperGoalWithYellowCard(t *testing.T) {
	match := &models.MatchDetails{
		MatchNumber:        7,
		PlayersPlayedTeam1: []int{1, 2},
		PlayersPlayedTeam2: []int{3, 4},
		Goals:              []models.GoalEvent{{PlayerID: 1, Goals: 1}},
		Cards:              models.CardEvents{Yellow: []int{1}},
	}

	results := CalculateMatchPoints(match, testPlayers(), nil)

	// выход на поле (+1) + гол вратаря (+10) + жёлтая (-1)
	assert.Equal(t, 10, pointsFor(t, results, 1))
	assert.Equal(t, 1, pointsFor(t, results, 2))
}

func TestCalculateMatchPoints_GoalValueByPosition(t *testing.T) {
	cases := []struct {
		playerID int
		want     int
	}{
		{playerID: 1, want: 11}, // вратарь
		{playerID: 2, want: 7},  // защитник
		{playerID: 3, want: 6},  // полузащитник
		{playerID: 4, want: 5},  // нападающий
	}

	for _, tc := range cases {
		match := &models.MatchDetails{
			MatchNumber:        1,
			PlayersPlayedTeam1: []int{1, 2},
			PlayersPlayedTeam2: []int{3, 4},
			Goals:              []models.GoalEvent{{PlayerID: tc.playerID, Goals: 1}},
		}
		results := CalculateMatchPoints(match, testPlayers(), nil)
		assert.Equal(t, tc.want, pointsFor(t, results, tc.playerID), "player %d", tc.playerID)
	}
}

func TestCalculateMatchPoints_EventForAbsentPlayerIgnored(t *testing.T) {
	// Игрок 4 не выходил на поле: его события не дают записи.
	match := &models.MatchDetails{
		MatchNumber:        2,
		PlayersPlayedTeam1: []int{1},
		PlayersPlayedTeam2: []int{3},
		Cards:              models.CardEvents{Red: []int{4}},
		OwnGoals:           []int{4},
	}

	results := CalculateMatchPoints(match, testPlayers(), nil)

	require.Len(t, results, 2)
	for _, pp := range results {
		assert.NotEqual(t, 4, pp.PlayerID)
	}
}

func TestCalculateMatchPoints_UnresolvableScorerSkipped(t *testing.T) {
	match := &models.MatchDetails{
		MatchNumber:        3,
		PlayersPlayedTeam1: []int{1},
		PlayersPlayedTeam2: []int{3},
		Goals:              []models.GoalEvent{{PlayerID: 99, Goals: 1}},
	}

	results := CalculateMatchPoints(match, testPlayers(), nil)

	// Гол неизвестного игрока пропущен, остальные записи не пострадали.
	assert.Equal(t, 1, pointsFor(t, results, 1))
	assert.Equal(t, 1, pointsFor(t, results, 3))
}

func TestCalculateMatchPoints_NegativeTotalAllowed(t *testing.T) {
	match := &models.MatchDetails{
		MatchNumber:        4,
		PlayersPlayedTeam1: []int{2},
		PlayersPlayedTeam2: []int{3},
		Cards:              models.CardEvents{Red: []int{2}},
		OwnGoals:           []int{2},
	}

	results := CalculateMatchPoints(match, testPlayers(), nil)

	// +1 выход, -3 красная, -2 автогол
	assert.Equal(t, -4, pointsFor(t, results, 2))
}

func TestCalculateMatchPoints_DuplicateAppearanceCollapsed(t *testing.T) {
	match := &models.MatchDetails{
		MatchNumber:        5,
		PlayersPlayedTeam1: []int{1, 1},
		PlayersPlayedTeam2: []int{3},
	}

	results := CalculateMatchPoints(match, testPlayers(), nil)

	require.Len(t, results, 2)
	assert.Equal(t, 1, pointsFor(t, results, 1))
}

func TestCalculateMatchPoints_Deterministic(t *testing.T) {
	match := &models.MatchDetails{
		MatchNumber:        6,
		PlayersPlayedTeam1: []int{1, 2},
		PlayersPlayedTeam2: []int{3, 4},
		Goals:              []models.GoalEvent{{PlayerID: 4, Goals: 1}, {PlayerID: 2, Goals: 1}},
		Cards:              models.CardEvents{Yellow: []int{3}},
		PenaltySaves:       []int{1},
	}

	first := CalculateMatchPoints(match, testPlayers(), nil)
	second := CalculateMatchPoints(match, testPlayers(), nil)

	assert.Equal(t, first, second)
}
