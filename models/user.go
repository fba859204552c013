package models

import "time"

// UserRole представляет роли пользователей, соответствующие ENUM в БД.
type UserRole string

const (
	RoleUser  UserRole = "user"
	RoleAdmin UserRole = "admin"
)

type User struct {
	ID           int       `json:"id" db:"id"`
	FirstName    string    `json:"first_name" db:"first_name"`
	LastName     string    `json:"last_name" db:"last_name"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	Role         UserRole  `json:"role" db:"role"`
	Mobile       *string   `json:"mobile,omitempty" db:"mobile"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

// Tickets хранит три независимых флага разрешения на редактирование
// состава, по одному на стадию. true = билет ещё не потрачен.
type Tickets struct {
	Knockout  bool `json:"knockout"`
	Semifinal bool `json:"semifinal"`
	Final     bool `json:"final"`
}

// NewTickets returns the default state: every phase still editable.
func NewTickets() Tickets {
	return Tickets{Knockout: true, Semifinal: true, Final: true}
}

func (t Tickets) Available(phase Phase) bool {
	switch phase {
	case PhaseKnockout:
		return t.Knockout
	case PhaseSemifinal:
		return t.Semifinal
	case PhaseFinal:
		return t.Final
	}
	return false
}

func (t *Tickets) Consume(phase Phase) {
	switch phase {
	case PhaseKnockout:
		t.Knockout = false
	case PhaseSemifinal:
		t.Semifinal = false
	case PhaseFinal:
		t.Final = false
	}
}
