package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"github.com/Dosada05/fantasy-league/models"
	"github.com/Dosada05/fantasy-league/repositories"
)

// MatchService записывает результаты матчей. Запись матча — составная
// операция: сам матч, очки игроков и история очков всех команд турнира
// фиксируются в одной транзакции.
type MatchService struct {
	db             *sql.DB
	matchRepo      repositories.MatchRepository
	tournamentRepo repositories.TournamentRepository
	playerRepo     repositories.PlayerRepository
	teamRepo       repositories.TeamRepository
	logger         *slog.Logger
}

func NewMatchService(
	db *sql.DB,
	matchRepo repositories.MatchRepository,
	tournamentRepo repositories.TournamentRepository,
	playerRepo repositories.PlayerRepository,
	teamRepo repositories.TeamRepository,
	logger *slog.Logger,
) *MatchService {
	return &MatchService{
		db:             db,
		matchRepo:      matchRepo,
		tournamentRepo: tournamentRepo,
		playerRepo:     playerRepo,
		teamRepo:       teamRepo,
		logger:         logger,
	}
}

// RecordMatch проводит матч через весь конвейер: валидация входа,
// расчёт очков игроков, начисление очков командам. Любая ошибка
// откатывает всё — матча без очков и очков без матча не бывает.
func (s *MatchService) RecordMatch(ctx context.Context, match *models.MatchDetails) (*models.MatchDetails, error) {
	if err := validateMatchInput(match); err != nil {
		return nil, err
	}

	if _, err := s.tournamentRepo.GetByID(ctx, match.TournamentID); err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, err
	}

	referenced := collectReferencedPlayerIDs(match)
	players, err := s.playerRepo.ListByIDs(ctx, nil, referenced)
	if err != nil {
		return nil, err
	}
	playersByID := make(map[int]*models.Player, len(players))
	for _, p := range players {
		playersByID[p.ID] = p
	}
	for _, id := range referenced {
		p, ok := playersByID[id]
		if !ok || p.TournamentID != match.TournamentID {
			return nil, ErrPlayerReferenceInvalid
		}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	exists, err := s.matchRepo.ExistsByNumber(ctx, tx, match.TournamentID, match.MatchNumber)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrMatchNumberConflict
	}

	if err := s.matchRepo.Create(ctx, tx, match); err != nil {
		if errors.Is(err, repositories.ErrMatchNumberConflict) {
			return nil, ErrMatchNumberConflict
		}
		if errors.Is(err, repositories.ErrMatchInvalidPlayer) {
			return nil, ErrPlayerReferenceInvalid
		}
		return nil, err
	}

	playerPoints := CalculateMatchPoints(match, players, s.logger)
	for _, pp := range playerPoints {
		if err := s.playerRepo.AppendMatchPoints(ctx, tx, pp); err != nil {
			return nil, err
		}
	}

	if err := s.creditTeams(ctx, tx, match, playerPoints); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	s.logger.Info("match recorded",
		slog.Int("match_id", match.ID),
		slog.Int("tournament_id", match.TournamentID),
		slog.Int("match_number", match.MatchNumber),
		slog.Int("players_scored", len(playerPoints)))

	return match, nil
}

// creditTeams начисляет очки матча каждой команде турнира по её
// текущему составу. Команды без состава для своей текущей стадии
// пропускаются.
func (s *MatchService) creditTeams(ctx context.Context, tx *sql.Tx, match *models.MatchDetails, playerPoints []models.PlayerMatchPoints) error {
	pointsByPlayer := make(map[int]int, len(playerPoints))
	for _, pp := range playerPoints {
		pointsByPlayer[pp.PlayerID] = pp.Points
	}

	teams, err := s.teamRepo.ListByTournament(ctx, tx, match.TournamentID)
	if err != nil {
		return err
	}

	for _, team := range teams {
		roster, err := s.teamRepo.GetRoster(ctx, tx, team.ID, team.CurrentPhase)
		if err != nil {
			return err
		}
		if len(roster) == 0 {
			continue
		}

		entry := buildPointEntry(team, match.MatchNumber, roster, pointsByPlayer)
		if err := s.teamRepo.AppendPointEntry(ctx, tx, entry); err != nil {
			return err
		}
		total, err := s.teamRepo.RecomputeTotalPoints(ctx, tx, team.ID)
		if err != nil {
			return err
		}
		team.TotalPoints = total
	}
	return nil
}

// buildPointEntry собирает запись истории очков команды за матч:
// по строке на каждого игрока состава (ноль, если игрок в матче не
// участвовал) и сумму как очки команды за матч.
func buildPointEntry(team *models.Team, matchNumber int, roster []int, pointsByPlayer map[int]int) *models.TeamPointEntry {
	entry := &models.TeamPointEntry{
		TeamID:      team.ID,
		MatchNumber: matchNumber,
		Phase:       team.CurrentPhase,
		Players:     make([]models.TeamPointBreakdown, 0, len(roster)),
	}
	for _, playerID := range roster {
		points := pointsByPlayer[playerID]
		entry.Players = append(entry.Players, models.TeamPointBreakdown{
			PlayerID: playerID,
			Points:   points,
		})
		entry.MatchPoints += points
	}
	return entry
}

func (s *MatchService) GetByID(ctx context.Context, id int) (*models.MatchDetails, error) {
	match, err := s.matchRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrMatchNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, err
	}
	return match, nil
}

func (s *MatchService) ListByTournament(ctx context.Context, tournamentID int) ([]*models.MatchDetails, error) {
	return s.matchRepo.ListByTournament(ctx, tournamentID)
}

func validateMatchInput(match *models.MatchDetails) error {
	if match.TournamentID == 0 || match.MatchNumber == 0 || match.MatchName == "" || match.Score == "" {
		return ErrMatchFieldsRequired
	}
	if len(match.PlayersPlayedTeam1) == 0 || len(match.PlayersPlayedTeam2) == 0 {
		return ErrMatchFieldsRequired
	}
	return nil
}

// collectReferencedPlayerIDs собирает все идентификаторы игроков,
// упомянутые в матче, без дублей.
func collectReferencedPlayerIDs(match *models.MatchDetails) []int {
	set := make(map[int]struct{})
	add := func(ids ...int) {
		for _, id := range ids {
			set[id] = struct{}{}
		}
	}

	add(match.PlayersPlayedTeam1...)
	add(match.PlayersPlayedTeam2...)
	for _, goal := range match.Goals {
		add(goal.PlayerID)
		add(goal.Assists...)
	}
	add(match.Cards.Yellow...)
	add(match.Cards.Red...)
	add(match.PenaltiesMissed...)
	add(match.PenaltySaves...)
	add(match.OwnGoals...)

	ids := make([]int, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}
