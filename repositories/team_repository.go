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
	ErrTeamNotFound          = errors.New("team not found")
	ErrTeamNameConflict      = errors.New("team name is already in use in this tournament")
	ErrTeamOwnerConflict     = errors.New("user already owns a team in this tournament")
	ErrTeamInvalidTournament = errors.New("invalid team tournament reference")
)

type TeamRepository interface {
	Create(ctx context.Context, exec SQLExecutor, team *models.Team) error
	GetByID(ctx context.Context, id int) (*models.Team, error)
	GetByUserAndTournament(ctx context.Context, userID, tournamentID int) (*models.Team, error)
	ListByTournament(ctx context.Context, exec SQLExecutor, tournamentID int) ([]*models.Team, error)
	GetRoster(ctx context.Context, exec SQLExecutor, teamID int, phase models.Phase) ([]int, error)
	ReplaceRoster(ctx context.Context, exec SQLExecutor, teamID int, phase models.Phase, playerIDs []int) error
	SetCurrentPhase(ctx context.Context, exec SQLExecutor, teamID int, phase models.Phase) error
	AppendPointEntry(ctx context.Context, exec SQLExecutor, entry *models.TeamPointEntry) error
	RecomputeTotalPoints(ctx context.Context, exec SQLExecutor, teamID int) (int, error)
	ListPointEntries(ctx context.Context, teamID int) ([]models.TeamPointEntry, error)
	ListLeaderboard(ctx context.Context, tournamentID, limit int) ([]*models.Team, error)
}

type postgresTeamRepository struct {
	db *sql.DB
}

func NewPostgresTeamRepository(db *sql.DB) TeamRepository {
	return &postgresTeamRepository{db: db}
}

func (r *postgresTeamRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

const teamColumns = `id, tournament_id, user_id, name, current_phase, total_points, created_at`

func (r *postgresTeamRepository) Create(ctx context.Context, exec SQLExecutor, t *models.Team) error {
	executor := r.getExecutor(exec)
	query := `
		INSERT INTO teams (tournament_id, user_id, name, current_phase)
		VALUES ($1, $2, $3, $4)
		RETURNING id, total_points, created_at`

	err := executor.QueryRowContext(ctx, query,
		t.TournamentID, t.UserID, t.Name, t.CurrentPhase,
	).Scan(&t.ID, &t.TotalPoints, &t.CreatedAt)

	if pqErr, ok := err.(*pq.Error); ok {
		switch pqErr.Code {
		case "23505":
			switch pqErr.Constraint {
			case "teams_tournament_id_name_key":
				return ErrTeamNameConflict
			case "teams_tournament_id_user_id_key":
				return ErrTeamOwnerConflict
			}
		case "23503":
			if pqErr.Constraint == "teams_tournament_id_fkey" {
				return ErrTeamInvalidTournament
			}
		}
	}
	return err
}

func (r *postgresTeamRepository) GetByID(ctx context.Context, id int) (*models.Team, error) {
	query := `SELECT ` + teamColumns + ` FROM teams WHERE id = $1`
	return r.scanTeam(r.db.QueryRowContext(ctx, query, id))
}

func (r *postgresTeamRepository) GetByUserAndTournament(ctx context.Context, userID, tournamentID int) (*models.Team, error) {
	query := `SELECT ` + teamColumns + ` FROM teams WHERE user_id = $1 AND tournament_id = $2`
	return r.scanTeam(r.db.QueryRowContext(ctx, query, userID, tournamentID))
}

func (r *postgresTeamRepository) scanTeam(row *sql.Row) (*models.Team, error) {
	t := &models.Team{}
	err := row.Scan(&t.ID, &t.TournamentID, &t.UserID, &t.Name, &t.CurrentPhase, &t.TotalPoints, &t.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTeamNotFound
		}
		return nil, err
	}
	return t, nil
}

func (r *postgresTeamRepository) ListByTournament(ctx context.Context, exec SQLExecutor, tournamentID int) ([]*models.Team, error) {
	executor := r.getExecutor(exec)
	query := `SELECT ` + teamColumns + ` FROM teams WHERE tournament_id = $1 ORDER BY id`

	rows, err := executor.QueryContext(ctx, query, tournamentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return r.collectTeams(rows)
}

func (r *postgresTeamRepository) collectTeams(rows *sql.Rows) ([]*models.Team, error) {
	teams := make([]*models.Team, 0)
	for rows.Next() {
		t := &models.Team{}
		if err := rows.Scan(&t.ID, &t.TournamentID, &t.UserID, &t.Name, &t.CurrentPhase, &t.TotalPoints, &t.CreatedAt); err != nil {
			return nil, err
		}
		teams = append(teams, t)
	}
	return teams, rows.Err()
}

func (r *postgresTeamRepository) GetRoster(ctx context.Context, exec SQLExecutor, teamID int, phase models.Phase) ([]int, error) {
	executor := r.getExecutor(exec)
	query := `
		SELECT COALESCE(array_agg(player_id ORDER BY player_id), '{}')
		FROM team_rosters
		WHERE team_id = $1 AND phase = $2`

	var ids pq.Int64Array
	if err := executor.QueryRowContext(ctx, query, teamID, phase).Scan(&ids); err != nil {
		return nil, fmt.Errorf("failed to load roster for team %d phase %s: %w", teamID, phase, err)
	}

	roster := make([]int, len(ids))
	for i, id := range ids {
		roster[i] = int(id)
	}
	return roster, nil
}

// ReplaceRoster заменяет состав стадии целиком. Вызывается только из
// транзакции сервиса составов после прохождения всех проверок.
func (r *postgresTeamRepository) ReplaceRoster(ctx context.Context, exec SQLExecutor, teamID int, phase models.Phase, playerIDs []int) error {
	executor := r.getExecutor(exec)

	if _, err := executor.ExecContext(ctx,
		`DELETE FROM team_rosters WHERE team_id = $1 AND phase = $2`, teamID, phase); err != nil {
		return fmt.Errorf("failed to clear roster for team %d phase %s: %w", teamID, phase, err)
	}

	query := `
		INSERT INTO team_rosters (team_id, phase, player_id)
		SELECT $1, $2, unnest($3::int[])`
	if _, err := executor.ExecContext(ctx, query, teamID, phase, pq.Array(playerIDs)); err != nil {
		return fmt.Errorf("failed to write roster for team %d phase %s: %w", teamID, phase, err)
	}
	return nil
}

func (r *postgresTeamRepository) SetCurrentPhase(ctx context.Context, exec SQLExecutor, teamID int, phase models.Phase) error {
	executor := r.getExecutor(exec)
	result, err := executor.ExecContext(ctx, `UPDATE teams SET current_phase = $1 WHERE id = $2`, phase, teamID)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrTeamNotFound)
}

func (r *postgresTeamRepository) AppendPointEntry(ctx context.Context, exec SQLExecutor, entry *models.TeamPointEntry) error {
	executor := r.getExecutor(exec)
	query := `
		INSERT INTO team_point_entries (team_id, match_number, phase, match_points)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`

	err := executor.QueryRowContext(ctx, query,
		entry.TeamID, entry.MatchNumber, entry.Phase, entry.MatchPoints,
	).Scan(&entry.ID, &entry.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to append point entry for team %d: %w", entry.TeamID, err)
	}

	for _, bd := range entry.Players {
		if _, err := executor.ExecContext(ctx,
			`INSERT INTO team_point_entry_players (entry_id, player_id, points) VALUES ($1, $2, $3)`,
			entry.ID, bd.PlayerID, bd.Points,
		); err != nil {
			return fmt.Errorf("failed to append point breakdown for team %d player %d: %w", entry.TeamID, bd.PlayerID, err)
		}
	}
	return nil
}

// RecomputeTotalPoints пересчитывает сумму по всей истории, а не
// прибавляет дельту — итог остаётся верным при любых правках истории.
func (r *postgresTeamRepository) RecomputeTotalPoints(ctx context.Context, exec SQLExecutor, teamID int) (int, error) {
	executor := r.getExecutor(exec)
	query := `
		UPDATE teams SET total_points = (
			SELECT COALESCE(SUM(match_points), 0)
			FROM team_point_entries
			WHERE team_id = $1
		)
		WHERE id = $1
		RETURNING total_points`

	var total int
	if err := executor.QueryRowContext(ctx, query, teamID).Scan(&total); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, ErrTeamNotFound
		}
		return 0, err
	}
	return total, nil
}

func (r *postgresTeamRepository) ListPointEntries(ctx context.Context, teamID int) ([]models.TeamPointEntry, error) {
	query := `
		SELECT id, team_id, match_number, phase, match_points, created_at
		FROM team_point_entries
		WHERE team_id = $1
		ORDER BY created_at, id`

	rows, err := r.db.QueryContext(ctx, query, teamID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]models.TeamPointEntry, 0)
	for rows.Next() {
		var e models.TeamPointEntry
		if err := rows.Scan(&e.ID, &e.TeamID, &e.MatchNumber, &e.Phase, &e.MatchPoints, &e.CreatedAt); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range entries {
		breakdown, err := r.listBreakdown(ctx, entries[i].ID)
		if err != nil {
			return nil, err
		}
		entries[i].Players = breakdown
	}
	return entries, nil
}

func (r *postgresTeamRepository) listBreakdown(ctx context.Context, entryID int) ([]models.TeamPointBreakdown, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT player_id, points FROM team_point_entry_players WHERE entry_id = $1 ORDER BY player_id`, entryID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	breakdown := make([]models.TeamPointBreakdown, 0)
	for rows.Next() {
		var bd models.TeamPointBreakdown
		if err := rows.Scan(&bd.PlayerID, &bd.Points); err != nil {
			return nil, err
		}
		breakdown = append(breakdown, bd)
	}
	return breakdown, rows.Err()
}

func (r *postgresTeamRepository) ListLeaderboard(ctx context.Context, tournamentID, limit int) ([]*models.Team, error) {
	query := `SELECT ` + teamColumns + `
		FROM teams
		WHERE tournament_id = $1
		ORDER BY total_points DESC, name
		LIMIT $2`

	rows, err := r.db.QueryContext(ctx, query, tournamentID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return r.collectTeams(rows)
}
