package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/Dosada05/fantasy-league/models"
	"github.com/Dosada05/fantasy-league/repositories"
)

// Прошедшие анонсы держим ещё какое-то время, чтобы зрители видели
// только что сыгранные матчи в расписании.
const upcomingMatchGrace = 2 * time.Hour

type ScheduleService struct {
	upcomingRepo repositories.UpcomingMatchRepository
	logger       *slog.Logger
}

func NewScheduleService(upcomingRepo repositories.UpcomingMatchRepository, logger *slog.Logger) *ScheduleService {
	return &ScheduleService{upcomingRepo: upcomingRepo, logger: logger}
}

// AddUpcomingMatch публикует анонс будущего матча.
func (s *ScheduleService) AddUpcomingMatch(ctx context.Context, m *models.UpcomingMatch) (*models.UpcomingMatch, error) {
	if m.TournamentID == 0 || m.MatchNumber == 0 || m.MatchName == "" || m.MatchDate.IsZero() {
		return nil, ErrUpcomingMatchFieldsMissing
	}

	if err := s.upcomingRepo.Create(ctx, m); err != nil {
		if errors.Is(err, repositories.ErrUpcomingMatchInvalidRef) {
			return nil, ErrTournamentNotFound
		}
		return nil, err
	}
	return m, nil
}

// ListUpcoming отдаёт расписание, предварительно вычистив устаревшие
// анонсы.
func (s *ScheduleService) ListUpcoming(ctx context.Context) ([]models.UpcomingMatch, error) {
	purged, err := s.upcomingRepo.PurgeExpired(ctx, time.Now().Add(-upcomingMatchGrace))
	if err != nil {
		return nil, err
	}
	if purged > 0 {
		s.logger.Info("purged expired upcoming matches", slog.Int64("count", purged))
	}
	return s.upcomingRepo.List(ctx)
}
