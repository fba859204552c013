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
	ErrTournamentNotFound       = errors.New("tournament not found")
	ErrTournamentNameConflict   = errors.New("tournament name already exists")
	ErrTournamentInvalidCreator = errors.New("invalid tournament creator reference")
)

type TournamentRepository interface {
	Create(ctx context.Context, exec SQLExecutor, tournament *models.Tournament) error
	GetByID(ctx context.Context, id int) (*models.Tournament, error)
	List(ctx context.Context, limit, offset int) ([]models.Tournament, error)
	ListByCreator(ctx context.Context, creatorID int) ([]models.Tournament, error)
	ListByTeamOwner(ctx context.Context, userID int) ([]models.Tournament, error)
}

type postgresTournamentRepository struct {
	db *sql.DB
}

func NewPostgresTournamentRepository(db *sql.DB) TournamentRepository {
	return &postgresTournamentRepository{db: db}
}

func (r *postgresTournamentRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

const tournamentColumns = `
	id, name, rules, registration_limit, player_limit_per_team,
	knockout_start, semifinal_start, final_start, created_by, created_at`

func (r *postgresTournamentRepository) Create(ctx context.Context, exec SQLExecutor, t *models.Tournament) error {
	executor := r.getExecutor(exec)
	query := `
		INSERT INTO tournaments (
			name, rules, registration_limit, player_limit_per_team,
			knockout_start, semifinal_start, final_start, created_by
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at`

	err := executor.QueryRowContext(ctx, query,
		t.Name, t.Rules, t.RegistrationLimit, t.PlayerLimitPerTeam,
		t.KnockoutStart, t.SemifinalStart, t.FinalStart, t.CreatedBy,
	).Scan(&t.ID, &t.CreatedAt)

	return r.handleTournamentError(err)
}

func (r *postgresTournamentRepository) GetByID(ctx context.Context, id int) (*models.Tournament, error) {
	query := `SELECT ` + tournamentColumns + ` FROM tournaments WHERE id = $1`

	t := &models.Tournament{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&t.ID, &t.Name, &t.Rules, &t.RegistrationLimit, &t.PlayerLimitPerTeam,
		&t.KnockoutStart, &t.SemifinalStart, &t.FinalStart, &t.CreatedBy, &t.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTournamentNotFound
		}
		return nil, err
	}
	return t, nil
}

func (r *postgresTournamentRepository) List(ctx context.Context, limit, offset int) ([]models.Tournament, error) {
	query := `SELECT ` + tournamentColumns + ` FROM tournaments ORDER BY knockout_start DESC, created_at DESC`

	args := []interface{}{}
	argID := 1
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", argID)
		args = append(args, limit)
		argID++
	}
	if offset > 0 {
		query += fmt.Sprintf(" OFFSET $%d", argID)
		args = append(args, offset)
	}

	return r.queryTournaments(ctx, query, args...)
}

func (r *postgresTournamentRepository) ListByCreator(ctx context.Context, creatorID int) ([]models.Tournament, error) {
	query := `SELECT ` + tournamentColumns + ` FROM tournaments WHERE created_by = $1 ORDER BY created_at DESC`
	return r.queryTournaments(ctx, query, creatorID)
}

// ListByTeamOwner возвращает турниры, в которых пользователь уже собрал
// фэнтези-команду.
func (r *postgresTournamentRepository) ListByTeamOwner(ctx context.Context, userID int) ([]models.Tournament, error) {
	query := `
		SELECT t.id, t.name, t.rules, t.registration_limit, t.player_limit_per_team,
		       t.knockout_start, t.semifinal_start, t.final_start, t.created_by, t.created_at
		FROM tournaments t
		JOIN teams tm ON tm.tournament_id = t.id
		WHERE tm.user_id = $1
		ORDER BY t.knockout_start DESC`
	return r.queryTournaments(ctx, query, userID)
}

func (r *postgresTournamentRepository) queryTournaments(ctx context.Context, query string, args ...interface{}) ([]models.Tournament, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tournaments := make([]models.Tournament, 0)
	for rows.Next() {
		var t models.Tournament
		if scanErr := rows.Scan(
			&t.ID, &t.Name, &t.Rules, &t.RegistrationLimit, &t.PlayerLimitPerTeam,
			&t.KnockoutStart, &t.SemifinalStart, &t.FinalStart, &t.CreatedBy, &t.CreatedAt,
		); scanErr != nil {
			return nil, scanErr
		}
		tournaments = append(tournaments, t)
	}
	return tournaments, rows.Err()
}

func (r *postgresTournamentRepository) handleTournamentError(err error) error {
	if err == nil {
		return nil
	}
	if pqErr, ok := err.(*pq.Error); ok {
		switch pqErr.Code {
		case "23505":
			if pqErr.Constraint == "tournaments_name_key" {
				return ErrTournamentNameConflict
			}
		case "23503":
			if pqErr.Constraint == "tournaments_created_by_fkey" {
				return ErrTournamentInvalidCreator
			}
		}
	}
	return err
}
