package services

import (
	"log/slog"

	"github.com/Dosada05/fantasy-league/models"
)

// Таблица начислений. Значения фиксированы для всей системы и не
// настраиваются по турнирам.
const (
	PointsAppearance  = 1
	PointsPenaltySave = 5
	PointsPenaltyMiss = -2
	PointsYellowCard  = -1
	PointsRedCard     = -3
	PointsOwnGoal     = -2
)

// Цена гола зависит от амплуа забившего.
var goalPointsByPosition = map[models.PlayerPosition]int{
	models.PositionGoalkeeper: 10,
	models.PositionDefender:   6,
	models.PositionMidfielder: 5,
	models.PositionForward:    4,
}

// CalculateMatchPoints переводит события матча в очки игроков.
// Чистая функция: одинаковый вход всегда даёт одинаковый результат.
//
// Запись заводится для каждого игрока из списков участников (+1 за
// выход на поле); дельты остальных событий применяются только к уже
// заведённым записям — событие игрока, не выходившего на поле, очков
// не даёт. Гол игрока, которого нет среди переданных players,
// пропускается с предупреждением в лог. Ассисты очков не приносят.
func CalculateMatchPoints(match *models.MatchDetails, players []*models.Player, logger *slog.Logger) []models.PlayerMatchPoints {
	playerPoints := make([]models.PlayerMatchPoints, 0, len(match.PlayersPlayedTeam1)+len(match.PlayersPlayedTeam2))
	index := make(map[int]int)

	for _, playerID := range append(append([]int{}, match.PlayersPlayedTeam1...), match.PlayersPlayedTeam2...) {
		if _, ok := index[playerID]; ok {
			continue
		}
		index[playerID] = len(playerPoints)
		playerPoints = append(playerPoints, models.PlayerMatchPoints{
			PlayerID:    playerID,
			MatchNumber: match.MatchNumber,
			Points:      PointsAppearance,
		})
	}

	addPoints := func(playerID, points int) {
		if i, ok := index[playerID]; ok {
			playerPoints[i].Points += points
		}
	}

	positions := make(map[int]models.PlayerPosition, len(players))
	for _, p := range players {
		positions[p.ID] = p.Position
	}

	for _, goal := range match.Goals {
		position, ok := positions[goal.PlayerID]
		if !ok {
			if logger != nil {
				logger.Warn("goal scorer could not be resolved, skipping goal event",
					slog.Int("player_id", goal.PlayerID),
					slog.Int("match_number", match.MatchNumber))
			}
			continue
		}
		addPoints(goal.PlayerID, goalPointsByPosition[position])
	}

	for _, playerID := range match.PenaltySaves {
		addPoints(playerID, PointsPenaltySave)
	}
	for _, playerID := range match.PenaltiesMissed {
		addPoints(playerID, PointsPenaltyMiss)
	}
	for _, playerID := range match.Cards.Yellow {
		addPoints(playerID, PointsYellowCard)
	}
	for _, playerID := range match.Cards.Red {
		addPoints(playerID, PointsRedCard)
	}
	for _, playerID := range match.OwnGoals {
		addPoints(playerID, PointsOwnGoal)
	}

	return playerPoints
}
