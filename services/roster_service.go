package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/Dosada05/fantasy-league/models"
	"github.com/Dosada05/fantasy-league/repositories"
)

// RosterBudgetCap — потолок суммарной цены состава, одинаковый для всех
// стадий и турниров.
const RosterBudgetCap = 100

type CreateTeamInput struct {
	UserID       int    `json:"-"`
	TournamentID int    `json:"tournament_id"`
	Name         string `json:"name"`
	PlayerIDs    []int  `json:"players"`
}

type UpdateRosterInput struct {
	UserID    int   `json:"-"`
	TeamID    int   `json:"-"`
	AddIDs    []int `json:"add"`
	RemoveIDs []int `json:"remove"`
}

// RosterService реализует правку составов, закрытую фазовым гейтом:
// проверка окна, валидация состава, списание билета и запись состава
// выполняются как одно атомарное действие.
type RosterService struct {
	db             *sql.DB
	teamRepo       repositories.TeamRepository
	tournamentRepo repositories.TournamentRepository
	userRepo       repositories.UserRepository
	playerRepo     repositories.PlayerRepository
	ticketRepo     repositories.EditTicketRepository
	logger         *slog.Logger
}

func NewRosterService(
	db *sql.DB,
	teamRepo repositories.TeamRepository,
	tournamentRepo repositories.TournamentRepository,
	userRepo repositories.UserRepository,
	playerRepo repositories.PlayerRepository,
	ticketRepo repositories.EditTicketRepository,
	logger *slog.Logger,
) *RosterService {
	return &RosterService{
		db:             db,
		teamRepo:       teamRepo,
		tournamentRepo: tournamentRepo,
		userRepo:       userRepo,
		playerRepo:     playerRepo,
		ticketRepo:     ticketRepo,
		logger:         logger,
	}
}

// CreateTeam собирает новую фэнтези-команду: частный случай правки
// состава с пустым исходным набором.
func (s *RosterService) CreateTeam(ctx context.Context, input CreateTeamInput) (*models.Team, error) {
	if input.Name == "" {
		return nil, ErrTeamNameRequired
	}

	tournament, err := s.tournamentRepo.GetByID(ctx, input.TournamentID)
	if err != nil {
		return nil, s.mapTournamentError(err)
	}
	if _, err := s.userRepo.GetByID(ctx, input.UserID); err != nil {
		return nil, s.mapUserError(err)
	}

	phase, err := s.resolvePhase(ctx, input.UserID, tournament)
	if err != nil {
		return nil, err
	}

	// Один пользователь — одна команда на турнир.
	if _, err := s.teamRepo.GetByUserAndTournament(ctx, input.UserID, input.TournamentID); err == nil {
		return nil, ErrTeamAlreadyExists
	} else if !errors.Is(err, repositories.ErrTeamNotFound) {
		return nil, fmt.Errorf("failed to check existing team: %w", err)
	}

	roster, err := s.validateRoster(ctx, nil, input.PlayerIDs, nil, tournament)
	if err != nil {
		return nil, err
	}

	team := &models.Team{
		TournamentID: input.TournamentID,
		UserID:       input.UserID,
		Name:         input.Name,
		CurrentPhase: phase,
	}

	err = s.withTx(ctx, func(tx *sql.Tx) error {
		if err := s.teamRepo.Create(ctx, tx, team); err != nil {
			return s.mapTeamConflict(err)
		}
		if err := s.teamRepo.ReplaceRoster(ctx, tx, team.ID, phase, roster); err != nil {
			return err
		}
		if err := s.ticketRepo.Consume(ctx, tx, input.UserID, input.TournamentID, phase); err != nil {
			return s.mapTicketError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("team created",
		slog.Int("team_id", team.ID),
		slog.Int("tournament_id", input.TournamentID),
		slog.String("phase", string(phase)))

	team.Rosters = map[models.Phase][]int{phase: roster}
	return team, nil
}

// UpdateRoster применяет добавления и удаления к составу стадии,
// определённой гейтом. Билет списывается только если состав прошёл все
// проверки, в той же транзакции, что и запись состава.
func (s *RosterService) UpdateRoster(ctx context.Context, input UpdateRosterInput) (*models.Team, error) {
	team, err := s.teamRepo.GetByID(ctx, input.TeamID)
	if err != nil {
		return nil, s.mapTeamError(err)
	}
	if team.UserID != input.UserID {
		// Не раскрываем чужие команды: для постороннего команда не существует.
		return nil, ErrTeamNotFound
	}

	tournament, err := s.tournamentRepo.GetByID(ctx, team.TournamentID)
	if err != nil {
		return nil, s.mapTournamentError(err)
	}

	phase, err := s.resolvePhase(ctx, input.UserID, tournament)
	if err != nil {
		return nil, err
	}

	current, err := s.teamRepo.GetRoster(ctx, nil, team.ID, phase)
	if err != nil {
		return nil, err
	}

	roster, err := s.validateRoster(ctx, current, input.AddIDs, input.RemoveIDs, tournament)
	if err != nil {
		return nil, err
	}

	err = s.withTx(ctx, func(tx *sql.Tx) error {
		if err := s.teamRepo.ReplaceRoster(ctx, tx, team.ID, phase, roster); err != nil {
			return err
		}
		if err := s.teamRepo.SetCurrentPhase(ctx, tx, team.ID, phase); err != nil {
			return err
		}
		if err := s.ticketRepo.Consume(ctx, tx, input.UserID, tournament.ID, phase); err != nil {
			return s.mapTicketError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("roster updated",
		slog.Int("team_id", team.ID),
		slog.String("phase", string(phase)),
		slog.Int("roster_size", len(roster)))

	team.CurrentPhase = phase
	team.Rosters = map[models.Phase][]int{phase: roster}
	return team, nil
}

// CheckUpdateAbility сообщает, открыто ли сейчас окно правки для
// команды, ничего не списывая.
func (s *RosterService) CheckUpdateAbility(ctx context.Context, userID, teamID int) (models.Phase, error) {
	team, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		return "", s.mapTeamError(err)
	}
	if team.UserID != userID {
		return "", ErrTeamNotFound
	}

	tournament, err := s.tournamentRepo.GetByID(ctx, team.TournamentID)
	if err != nil {
		return "", s.mapTournamentError(err)
	}
	return s.resolvePhase(ctx, userID, tournament)
}

// GetTeamByID возвращает команду вместе с составами всех стадий и
// историей очков.
func (s *RosterService) GetTeamByID(ctx context.Context, teamID int) (*models.Team, error) {
	team, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		return nil, s.mapTeamError(err)
	}

	team.Rosters = make(map[models.Phase][]int, len(models.PhaseOrder))
	for _, phase := range models.PhaseOrder {
		roster, err := s.teamRepo.GetRoster(ctx, nil, teamID, phase)
		if err != nil {
			return nil, err
		}
		if len(roster) > 0 {
			team.Rosters[phase] = roster
		}
	}

	entries, err := s.teamRepo.ListPointEntries(ctx, teamID)
	if err != nil {
		return nil, err
	}
	team.PointEntries = entries
	return team, nil
}

func (s *RosterService) resolvePhase(ctx context.Context, userID int, tournament *models.Tournament) (models.Phase, error) {
	tickets, err := s.ticketRepo.GetForUserAndTournament(ctx, nil, userID, tournament.ID)
	if err != nil {
		return "", err
	}
	phase, ok := ResolveEditablePhase(tickets, tournament, time.Now())
	if !ok {
		return "", ErrEditWindowClosed
	}
	return phase, nil
}

// validateRoster строит и проверяет итоговый состав, загружая цены
// игроков. Все проверки выполняются до какой-либо записи.
func (s *RosterService) validateRoster(ctx context.Context, current, add, remove []int, tournament *models.Tournament) ([]int, error) {
	working := buildWorkingSet(current, add, remove)

	players, err := s.playerRepo.ListByIDs(ctx, nil, working)
	if err != nil {
		return nil, err
	}
	byID := make(map[int]*models.Player, len(players))
	for _, p := range players {
		byID[p.ID] = p
	}

	return validateRoster(working, add, byID, tournament)
}

// buildWorkingSet — шаги 1–4 конвейера правки: удаления (отсутствующие
// идентификаторы игнорируются), затем добавления с семантикой
// множества.
func buildWorkingSet(current, add, remove []int) []int {
	set := make(map[int]struct{}, len(current)+len(add))
	for _, id := range current {
		set[id] = struct{}{}
	}
	for _, id := range remove {
		delete(set, id)
	}
	for _, id := range add {
		set[id] = struct{}{}
	}

	working := make([]int, 0, len(set))
	for id := range set {
		working = append(working, id)
	}
	sort.Ints(working)
	return working
}

// validateRoster — шаги 3, 5 и 6: все добавляемые идентификаторы должны
// резолвиться в игроков этого турнира, размер состава должен точно
// совпадать с лимитом, суммарная цена — не превышать потолок.
func validateRoster(working, add []int, players map[int]*models.Player, tournament *models.Tournament) ([]int, error) {
	for _, id := range add {
		p, ok := players[id]
		if !ok || p.TournamentID != tournament.ID {
			return nil, ErrPlayerReferenceInvalid
		}
	}

	if len(working) != tournament.PlayerLimitPerTeam {
		return nil, ErrRosterSizeMismatch
	}

	total := 0
	for _, id := range working {
		p, ok := players[id]
		if !ok {
			return nil, ErrPlayerReferenceInvalid
		}
		total += p.Price
	}
	if total > RosterBudgetCap {
		return nil, ErrRosterBudgetExceeded
	}
	return working, nil
}

func (s *RosterService) withTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	var txErr error
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		} else if txErr != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				s.logger.Error("rollback failed", slog.Any("error", rbErr), slog.Any("cause", txErr))
			}
		} else {
			if cErr := tx.Commit(); cErr != nil {
				txErr = fmt.Errorf("failed to commit transaction: %w", cErr)
			}
		}
	}()
	txErr = fn(tx)
	return txErr
}

func (s *RosterService) mapTeamError(err error) error {
	if errors.Is(err, repositories.ErrTeamNotFound) {
		return ErrTeamNotFound
	}
	return err
}

func (s *RosterService) mapTeamConflict(err error) error {
	switch {
	case errors.Is(err, repositories.ErrTeamNameConflict):
		return ErrTeamNameConflict
	case errors.Is(err, repositories.ErrTeamOwnerConflict):
		return ErrTeamAlreadyExists
	}
	return err
}

func (s *RosterService) mapTournamentError(err error) error {
	if errors.Is(err, repositories.ErrTournamentNotFound) {
		return ErrTournamentNotFound
	}
	return err
}

func (s *RosterService) mapUserError(err error) error {
	if errors.Is(err, repositories.ErrUserNotFound) {
		return ErrUserNotFound
	}
	return err
}

func (s *RosterService) mapTicketError(err error) error {
	if errors.Is(err, repositories.ErrTicketAlreadyConsumed) {
		return ErrEditWindowClosed
	}
	return err
}
