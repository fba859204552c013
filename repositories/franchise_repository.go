package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Dosada05/fantasy-league/models"
	"github.com/lib/pq"
)

var (
	ErrFranchiseNotFound          = errors.New("franchise not found")
	ErrFranchiseNameConflict      = errors.New("franchise name already exists in this tournament")
	ErrFranchiseInvalidTournament = errors.New("invalid franchise tournament reference")
)

type FranchiseRepository interface {
	Create(ctx context.Context, exec SQLExecutor, franchise *models.Franchise) error
	GetByID(ctx context.Context, id int) (*models.Franchise, error)
	ListByTournament(ctx context.Context, tournamentID int) ([]models.Franchise, error)
	UpdateLogoKey(ctx context.Context, franchiseID int, logoKey *string) error
}

type postgresFranchiseRepository struct {
	db *sql.DB
}

func NewPostgresFranchiseRepository(db *sql.DB) FranchiseRepository {
	return &postgresFranchiseRepository{db: db}
}

func (r *postgresFranchiseRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func (r *postgresFranchiseRepository) Create(ctx context.Context, exec SQLExecutor, f *models.Franchise) error {
	executor := r.getExecutor(exec)
	query := `
		INSERT INTO franchises (tournament_id, name, location, logo_key)
		VALUES ($1, $2, $3, $4)
		RETURNING id`

	err := executor.QueryRowContext(ctx, query, f.TournamentID, f.Name, f.Location, f.LogoKey).Scan(&f.ID)
	if pqErr, ok := err.(*pq.Error); ok {
		switch pqErr.Code {
		case "23505":
			if pqErr.Constraint == "franchises_tournament_id_lower_name_key" {
				return ErrFranchiseNameConflict
			}
		case "23503":
			if pqErr.Constraint == "franchises_tournament_id_fkey" {
				return ErrFranchiseInvalidTournament
			}
		}
	}
	return err
}

func (r *postgresFranchiseRepository) GetByID(ctx context.Context, id int) (*models.Franchise, error) {
	query := `SELECT id, tournament_id, name, location, logo_key FROM franchises WHERE id = $1`

	f := &models.Franchise{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(&f.ID, &f.TournamentID, &f.Name, &f.Location, &f.LogoKey)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrFranchiseNotFound
		}
		return nil, err
	}
	return f, nil
}

func (r *postgresFranchiseRepository) ListByTournament(ctx context.Context, tournamentID int) ([]models.Franchise, error) {
	query := `
		SELECT id, tournament_id, name, location, logo_key
		FROM franchises
		WHERE tournament_id = $1
		ORDER BY name`

	rows, err := r.db.QueryContext(ctx, query, tournamentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	franchises := make([]models.Franchise, 0)
	for rows.Next() {
		var f models.Franchise
		if scanErr := rows.Scan(&f.ID, &f.TournamentID, &f.Name, &f.Location, &f.LogoKey); scanErr != nil {
			return nil, scanErr
		}
		franchises = append(franchises, f)
	}
	return franchises, rows.Err()
}

func (r *postgresFranchiseRepository) UpdateLogoKey(ctx context.Context, franchiseID int, logoKey *string) error {
	query := `UPDATE franchises SET logo_key = $1 WHERE id = $2`
	result, err := r.db.ExecContext(ctx, query, logoKey, franchiseID)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrFranchiseNotFound)
}
