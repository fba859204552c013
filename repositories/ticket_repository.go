package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Dosada05/fantasy-league/models"
)

var ErrTicketAlreadyConsumed = errors.New("edit ticket already consumed for this phase")

// EditTicketRepository управляет одноразовыми билетами на правку состава.
// Отсутствие строки означает, что билет стадии ещё доступен.
type EditTicketRepository interface {
	GetForUserAndTournament(ctx context.Context, exec SQLExecutor, userID, tournamentID int) (models.Tickets, error)
	Consume(ctx context.Context, exec SQLExecutor, userID, tournamentID int, phase models.Phase) error
}

type postgresEditTicketRepository struct {
	db *sql.DB
}

func NewPostgresEditTicketRepository(db *sql.DB) EditTicketRepository {
	return &postgresEditTicketRepository{db: db}
}

func (r *postgresEditTicketRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func (r *postgresEditTicketRepository) GetForUserAndTournament(ctx context.Context, exec SQLExecutor, userID, tournamentID int) (models.Tickets, error) {
	executor := r.getExecutor(exec)
	tickets := models.NewTickets()

	query := `
		SELECT phase
		FROM edit_tickets
		WHERE user_id = $1 AND tournament_id = $2 AND consumed`

	rows, err := executor.QueryContext(ctx, query, userID, tournamentID)
	if err != nil {
		return tickets, fmt.Errorf("failed to load edit tickets for user %d: %w", userID, err)
	}
	defer rows.Close()

	for rows.Next() {
		var phase models.Phase
		if err := rows.Scan(&phase); err != nil {
			return tickets, fmt.Errorf("failed to scan edit ticket row: %w", err)
		}
		tickets.Consume(phase)
	}
	return tickets, rows.Err()
}

// Consume помечает билет потраченным. Повторное потребление того же
// билета не затрагивает ни одной строки и возвращает
// ErrTicketAlreadyConsumed, что делает операцию атомарной при
// конкурирующих правках.
func (r *postgresEditTicketRepository) Consume(ctx context.Context, exec SQLExecutor, userID, tournamentID int, phase models.Phase) error {
	executor := r.getExecutor(exec)
	query := `
		INSERT INTO edit_tickets (user_id, tournament_id, phase, consumed)
		VALUES ($1, $2, $3, TRUE)
		ON CONFLICT (user_id, tournament_id, phase)
		DO UPDATE SET consumed = TRUE
		WHERE NOT edit_tickets.consumed`

	result, err := executor.ExecContext(ctx, query, userID, tournamentID, phase)
	if err != nil {
		return fmt.Errorf("failed to consume edit ticket (user %d, tournament %d, phase %s): %w", userID, tournamentID, phase, err)
	}
	return checkAffectedRows(result, ErrTicketAlreadyConsumed)
}
