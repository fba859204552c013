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
	ErrPlayerNotFound         = errors.New("player not found")
	ErrPlayerNameConflict     = errors.New("player name already exists in this tournament")
	ErrPlayerInvalidFranchise = errors.New("invalid player franchise reference")
)

type PlayerRepository interface {
	Create(ctx context.Context, player *models.Player) error
	GetByID(ctx context.Context, id int) (*models.Player, error)
	ListByIDs(ctx context.Context, exec SQLExecutor, ids []int) ([]*models.Player, error)
	ListByTournament(ctx context.Context, tournamentID int) ([]*models.Player, error)
	UpdatePhotoKey(ctx context.Context, playerID int, photoKey *string) error
	AppendMatchPoints(ctx context.Context, exec SQLExecutor, pp models.PlayerMatchPoints) error
	UpsertMatchPoints(ctx context.Context, pp models.PlayerMatchPoints) error
	ListMatchPoints(ctx context.Context, playerID int) ([]models.PlayerMatchPoints, error)
}

type postgresPlayerRepository struct {
	db *sql.DB
}

func NewPostgresPlayerRepository(db *sql.DB) PlayerRepository {
	return &postgresPlayerRepository{db: db}
}

func (r *postgresPlayerRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

const playerColumns = `id, tournament_id, franchise_id, name, price, position, photo_key, created_at`

func (r *postgresPlayerRepository) Create(ctx context.Context, p *models.Player) error {
	query := `
		INSERT INTO players (tournament_id, franchise_id, name, price, position, photo_key)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query,
		p.TournamentID, p.FranchiseID, p.Name, p.Price, p.Position, p.PhotoKey,
	).Scan(&p.ID, &p.CreatedAt)

	if pqErr, ok := err.(*pq.Error); ok {
		switch pqErr.Code {
		case "23505":
			if pqErr.Constraint == "players_tournament_id_name_key" {
				return ErrPlayerNameConflict
			}
		case "23503":
			if pqErr.Constraint == "players_franchise_id_fkey" {
				return ErrPlayerInvalidFranchise
			}
		}
	}
	return err
}

func (r *postgresPlayerRepository) GetByID(ctx context.Context, id int) (*models.Player, error) {
	query := `SELECT ` + playerColumns + ` FROM players WHERE id = $1`

	p := &models.Player{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&p.ID, &p.TournamentID, &p.FranchiseID, &p.Name, &p.Price, &p.Position, &p.PhotoKey, &p.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPlayerNotFound
		}
		return nil, err
	}
	return p, nil
}

// ListByIDs возвращает найденных игроков; отсутствующие идентификаторы
// просто не попадают в результат — валидация полноты лежит на сервисе.
func (r *postgresPlayerRepository) ListByIDs(ctx context.Context, exec SQLExecutor, ids []int) ([]*models.Player, error) {
	if len(ids) == 0 {
		return []*models.Player{}, nil
	}
	executor := r.getExecutor(exec)
	query := `SELECT ` + playerColumns + ` FROM players WHERE id = ANY($1)`

	rows, err := executor.QueryContext(ctx, query, pq.Array(ids))
	if err != nil {
		return nil, fmt.Errorf("failed to list players by ids: %w", err)
	}
	defer rows.Close()
	return r.collectPlayers(rows)
}

func (r *postgresPlayerRepository) ListByTournament(ctx context.Context, tournamentID int) ([]*models.Player, error) {
	query := `SELECT ` + playerColumns + ` FROM players WHERE tournament_id = $1 ORDER BY name`

	rows, err := r.db.QueryContext(ctx, query, tournamentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return r.collectPlayers(rows)
}

func (r *postgresPlayerRepository) collectPlayers(rows *sql.Rows) ([]*models.Player, error) {
	players := make([]*models.Player, 0)
	for rows.Next() {
		p := &models.Player{}
		if err := rows.Scan(
			&p.ID, &p.TournamentID, &p.FranchiseID, &p.Name, &p.Price, &p.Position, &p.PhotoKey, &p.CreatedAt,
		); err != nil {
			return nil, err
		}
		players = append(players, p)
	}
	return players, rows.Err()
}

func (r *postgresPlayerRepository) UpdatePhotoKey(ctx context.Context, playerID int, photoKey *string) error {
	query := `UPDATE players SET photo_key = $1 WHERE id = $2`
	result, err := r.db.ExecContext(ctx, query, photoKey, playerID)
	if err != nil {
		return fmt.Errorf("failed to update player photo key: %w", err)
	}
	return checkAffectedRows(result, ErrPlayerNotFound)
}

func (r *postgresPlayerRepository) AppendMatchPoints(ctx context.Context, exec SQLExecutor, pp models.PlayerMatchPoints) error {
	executor := r.getExecutor(exec)
	query := `INSERT INTO player_match_points (player_id, match_number, points) VALUES ($1, $2, $3)`
	_, err := executor.ExecContext(ctx, query, pp.PlayerID, pp.MatchNumber, pp.Points)
	if err != nil {
		return fmt.Errorf("failed to append match points for player %d: %w", pp.PlayerID, err)
	}
	return nil
}

// UpsertMatchPoints — ручная корректировка очков игрока за матч
// администратором: обновляет существующую строку или создаёт новую.
func (r *postgresPlayerRepository) UpsertMatchPoints(ctx context.Context, pp models.PlayerMatchPoints) error {
	query := `
		INSERT INTO player_match_points (player_id, match_number, points)
		VALUES ($1, $2, $3)
		ON CONFLICT (player_id, match_number)
		DO UPDATE SET points = EXCLUDED.points`
	_, err := r.db.ExecContext(ctx, query, pp.PlayerID, pp.MatchNumber, pp.Points)
	if err != nil {
		return fmt.Errorf("failed to upsert match points for player %d: %w", pp.PlayerID, err)
	}
	return nil
}

func (r *postgresPlayerRepository) ListMatchPoints(ctx context.Context, playerID int) ([]models.PlayerMatchPoints, error) {
	query := `
		SELECT player_id, match_number, points
		FROM player_match_points
		WHERE player_id = $1
		ORDER BY match_number`

	rows, err := r.db.QueryContext(ctx, query, playerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	points := make([]models.PlayerMatchPoints, 0)
	for rows.Next() {
		var pp models.PlayerMatchPoints
		if err := rows.Scan(&pp.PlayerID, &pp.MatchNumber, &pp.Points); err != nil {
			return nil, err
		}
		points = append(points, pp)
	}
	return points, rows.Err()
}
