package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Dosada05/fantasy-league/models"
	"github.com/lib/pq"
)

var (
	ErrMatchNotFound          = errors.New("match not found")
	ErrMatchNumberConflict    = errors.New("match number already exists in this tournament")
	ErrMatchInvalidTournament = errors.New("invalid match tournament reference")
	ErrMatchInvalidPlayer     = errors.New("invalid match player reference")
)

type MatchRepository interface {
	Create(ctx context.Context, exec SQLExecutor, match *models.MatchDetails) error
	ExistsByNumber(ctx context.Context, exec SQLExecutor, tournamentID, matchNumber int) (bool, error)
	GetByID(ctx context.Context, id int) (*models.MatchDetails, error)
	ListByTournament(ctx context.Context, tournamentID int) ([]*models.MatchDetails, error)
}

type postgresMatchRepository struct {
	db *sql.DB
}

func NewPostgresMatchRepository(db *sql.DB) MatchRepository {
	return &postgresMatchRepository{db: db}
}

func (r *postgresMatchRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

// Create пишет матч вместе со всеми его событиями. Вызывается только
// внутри транзакции записи матча.
func (r *postgresMatchRepository) Create(ctx context.Context, exec SQLExecutor, m *models.MatchDetails) error {
	executor := r.getExecutor(exec)

	query := `
		INSERT INTO matches (tournament_id, match_number, match_name, score)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`

	err := executor.QueryRowContext(ctx, query,
		m.TournamentID, m.MatchNumber, m.MatchName, m.Score,
	).Scan(&m.ID, &m.CreatedAt)
	if err != nil {
		return r.handleMatchError(err)
	}

	for side, players := range map[int][]int{1: m.PlayersPlayedTeam1, 2: m.PlayersPlayedTeam2} {
		for _, playerID := range players {
			if _, err := executor.ExecContext(ctx,
				`INSERT INTO match_appearances (match_id, player_id, side) VALUES ($1, $2, $3)`,
				m.ID, playerID, side,
			); err != nil {
				return r.handleMatchError(fmt.Errorf("failed to record appearance of player %d: %w", playerID, err))
			}
		}
	}

	for _, goal := range m.Goals {
		var goalID int
		if err := executor.QueryRowContext(ctx,
			`INSERT INTO match_goals (match_id, player_id, goals) VALUES ($1, $2, $3) RETURNING id`,
			m.ID, goal.PlayerID, goal.Goals,
		).Scan(&goalID); err != nil {
			return r.handleMatchError(fmt.Errorf("failed to record goal of player %d: %w", goal.PlayerID, err))
		}
		for _, assistID := range goal.Assists {
			if _, err := executor.ExecContext(ctx,
				`INSERT INTO match_goal_assists (goal_id, player_id) VALUES ($1, $2)`,
				goalID, assistID,
			); err != nil {
				return r.handleMatchError(fmt.Errorf("failed to record assist of player %d: %w", assistID, err))
			}
		}
	}

	events := map[models.MatchEventType][]int{
		models.EventYellowCard:  m.Cards.Yellow,
		models.EventRedCard:     m.Cards.Red,
		models.EventPenaltyMiss: m.PenaltiesMissed,
		models.EventPenaltySave: m.PenaltySaves,
		models.EventOwnGoal:     m.OwnGoals,
	}
	for event, players := range events {
		for _, playerID := range players {
			if _, err := executor.ExecContext(ctx,
				`INSERT INTO match_events (match_id, player_id, event) VALUES ($1, $2, $3)`,
				m.ID, playerID, event,
			); err != nil {
				return r.handleMatchError(fmt.Errorf("failed to record %s of player %d: %w", event, playerID, err))
			}
		}
	}

	return nil
}

func (r *postgresMatchRepository) ExistsByNumber(ctx context.Context, exec SQLExecutor, tournamentID, matchNumber int) (bool, error) {
	executor := r.getExecutor(exec)
	var exists bool
	err := executor.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM matches WHERE tournament_id = $1 AND match_number = $2)`,
		tournamentID, matchNumber,
	).Scan(&exists)
	return exists, err
}

func (r *postgresMatchRepository) GetByID(ctx context.Context, id int) (*models.MatchDetails, error) {
	query := `SELECT id, tournament_id, match_number, match_name, score, created_at FROM matches WHERE id = $1`

	m := &models.MatchDetails{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&m.ID, &m.TournamentID, &m.MatchNumber, &m.MatchName, &m.Score, &m.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMatchNotFound
		}
		return nil, err
	}
	if err := r.populateDetails(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (r *postgresMatchRepository) ListByTournament(ctx context.Context, tournamentID int) ([]*models.MatchDetails, error) {
	query := `
		SELECT id, tournament_id, match_number, match_name, score, created_at
		FROM matches
		WHERE tournament_id = $1
		ORDER BY match_number`

	rows, err := r.db.QueryContext(ctx, query, tournamentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	matches := make([]*models.MatchDetails, 0)
	for rows.Next() {
		m := &models.MatchDetails{}
		if err := rows.Scan(&m.ID, &m.TournamentID, &m.MatchNumber, &m.MatchName, &m.Score, &m.CreatedAt); err != nil {
			return nil, err
		}
		matches = append(matches, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, m := range matches {
		if err := r.populateDetails(ctx, m); err != nil {
			return nil, err
		}
	}
	return matches, nil
}

func (r *postgresMatchRepository) populateDetails(ctx context.Context, m *models.MatchDetails) error {
	appearances, err := r.db.QueryContext(ctx,
		`SELECT player_id, side FROM match_appearances WHERE match_id = $1 ORDER BY player_id`, m.ID)
	if err != nil {
		return err
	}
	defer appearances.Close()

	m.PlayersPlayedTeam1 = []int{}
	m.PlayersPlayedTeam2 = []int{}
	for appearances.Next() {
		var playerID, side int
		if err := appearances.Scan(&playerID, &side); err != nil {
			return err
		}
		if side == 1 {
			m.PlayersPlayedTeam1 = append(m.PlayersPlayedTeam1, playerID)
		} else {
			m.PlayersPlayedTeam2 = append(m.PlayersPlayedTeam2, playerID)
		}
	}
	if err := appearances.Err(); err != nil {
		return err
	}

	goals, err := r.db.QueryContext(ctx,
		`SELECT id, player_id, goals FROM match_goals WHERE match_id = $1 ORDER BY id`, m.ID)
	if err != nil {
		return err
	}
	defer goals.Close()

	m.Goals = []models.GoalEvent{}
	goalIDs := []int{}
	for goals.Next() {
		var goalID int
		var g models.GoalEvent
		if err := goals.Scan(&goalID, &g.PlayerID, &g.Goals); err != nil {
			return err
		}
		m.Goals = append(m.Goals, g)
		goalIDs = append(goalIDs, goalID)
	}
	if err := goals.Err(); err != nil {
		return err
	}

	for i, goalID := range goalIDs {
		assists, err := r.db.QueryContext(ctx,
			`SELECT player_id FROM match_goal_assists WHERE goal_id = $1 ORDER BY player_id`, goalID)
		if err != nil {
			return err
		}
		for assists.Next() {
			var playerID int
			if err := assists.Scan(&playerID); err != nil {
				assists.Close()
				return err
			}
			m.Goals[i].Assists = append(m.Goals[i].Assists, playerID)
		}
		if err := assists.Err(); err != nil {
			assists.Close()
			return err
		}
		assists.Close()
	}

	events, err := r.db.QueryContext(ctx,
		`SELECT player_id, event FROM match_events WHERE match_id = $1 ORDER BY player_id`, m.ID)
	if err != nil {
		return err
	}
	defer events.Close()

	m.Cards = models.CardEvents{Yellow: []int{}, Red: []int{}}
	m.PenaltiesMissed = []int{}
	m.PenaltySaves = []int{}
	m.OwnGoals = []int{}
	for events.Next() {
		var playerID int
		var event models.MatchEventType
		if err := events.Scan(&playerID, &event); err != nil {
			return err
		}
		switch event {
		case models.EventYellowCard:
			m.Cards.Yellow = append(m.Cards.Yellow, playerID)
		case models.EventRedCard:
			m.Cards.Red = append(m.Cards.Red, playerID)
		case models.EventPenaltyMiss:
			m.PenaltiesMissed = append(m.PenaltiesMissed, playerID)
		case models.EventPenaltySave:
			m.PenaltySaves = append(m.PenaltySaves, playerID)
		case models.EventOwnGoal:
			m.OwnGoals = append(m.OwnGoals, playerID)
		}
	}
	return events.Err()
}

func (r *postgresMatchRepository) handleMatchError(err error) error {
	if err == nil {
		return nil
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case "23505":
			if pqErr.Constraint == "matches_tournament_id_match_number_key" {
				return ErrMatchNumberConflict
			}
		case "23503":
			switch pqErr.Constraint {
			case "matches_tournament_id_fkey":
				return ErrMatchInvalidTournament
			default:
				return ErrMatchInvalidPlayer
			}
		}
	}
	return err
}
