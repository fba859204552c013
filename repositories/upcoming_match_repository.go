package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Dosada05/fantasy-league/models"
	"github.com/lib/pq"
)

var ErrUpcomingMatchInvalidRef = errors.New("invalid upcoming match reference")

type UpcomingMatchRepository interface {
	Create(ctx context.Context, match *models.UpcomingMatch) error
	List(ctx context.Context) ([]models.UpcomingMatch, error)
	PurgeExpired(ctx context.Context, cutoff time.Time) (int64, error)
}

type postgresUpcomingMatchRepository struct {
	db *sql.DB
}

func NewPostgresUpcomingMatchRepository(db *sql.DB) UpcomingMatchRepository {
	return &postgresUpcomingMatchRepository{db: db}
}

func (r *postgresUpcomingMatchRepository) Create(ctx context.Context, m *models.UpcomingMatch) error {
	query := `
		INSERT INTO upcoming_matches (tournament_id, match_number, match_name, match_date, creator_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query,
		m.TournamentID, m.MatchNumber, m.MatchName, m.MatchDate, m.CreatorID,
	).Scan(&m.ID, &m.CreatedAt)

	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23503" {
		return ErrUpcomingMatchInvalidRef
	}
	return err
}

func (r *postgresUpcomingMatchRepository) List(ctx context.Context) ([]models.UpcomingMatch, error) {
	query := `
		SELECT id, tournament_id, match_number, match_name, match_date, creator_id, created_at
		FROM upcoming_matches
		ORDER BY match_date`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	matches := make([]models.UpcomingMatch, 0)
	for rows.Next() {
		var m models.UpcomingMatch
		if err := rows.Scan(&m.ID, &m.TournamentID, &m.MatchNumber, &m.MatchName, &m.MatchDate, &m.CreatorID, &m.CreatedAt); err != nil {
			return nil, err
		}
		matches = append(matches, m)
	}
	return matches, rows.Err()
}

func (r *postgresUpcomingMatchRepository) PurgeExpired(ctx context.Context, cutoff time.Time) (int64, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM upcoming_matches WHERE match_date <= $1`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to purge expired upcoming matches: %w", err)
	}
	return result.RowsAffected()
}
