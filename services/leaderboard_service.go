package services

import (
	"context"
	"errors"

	"github.com/Dosada05/fantasy-league/models"
	"github.com/Dosada05/fantasy-league/repositories"
)

// Размер таблицы лидеров.
const leaderboardLimit = 10

type LeaderboardService struct {
	teamRepo       repositories.TeamRepository
	tournamentRepo repositories.TournamentRepository
}

func NewLeaderboardService(teamRepo repositories.TeamRepository, tournamentRepo repositories.TournamentRepository) *LeaderboardService {
	return &LeaderboardService{teamRepo: teamRepo, tournamentRepo: tournamentRepo}
}

// GetLeaderboard возвращает топ команд турнира по суммарным очкам.
// При равенстве очков порядок фиксируется именем команды.
func (s *LeaderboardService) GetLeaderboard(ctx context.Context, tournamentID int) ([]*models.Team, error) {
	if _, err := s.tournamentRepo.GetByID(ctx, tournamentID); err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, err
	}
	return s.teamRepo.ListLeaderboard(ctx, tournamentID, leaderboardLimit)
}
