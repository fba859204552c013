package models

import "time"

// Tournament представляет турнир с тремя стадиями. Временные метки
// стадий задают дедлайны редактирования составов: правка стадии
// возможна строго до её начала.
type Tournament struct {
	ID                 int       `json:"id" db:"id"`
	Name               string    `json:"name" db:"name"`
	Rules              string    `json:"rules" db:"rules"`
	RegistrationLimit  int       `json:"registration_limit" db:"registration_limit"`
	PlayerLimitPerTeam int       `json:"player_limit_per_team" db:"player_limit_per_team"`
	KnockoutStart      time.Time `json:"knockout_start" db:"knockout_start"`
	SemifinalStart     time.Time `json:"semifinal_start" db:"semifinal_start"`
	FinalStart         time.Time `json:"final_start" db:"final_start"`
	CreatedBy          int       `json:"created_by" db:"created_by"`
	CreatedAt          time.Time `json:"created_at" db:"created_at"`

	// Опциональные связанные сущности (не мапятся напрямую)
	Franchises []Franchise    `json:"franchises,omitempty" db:"-"`
	Teams      []Team         `json:"teams,omitempty" db:"-"`
	Matches    []MatchDetails `json:"matches,omitempty" db:"-"`
}

// PhaseStart returns the wall-clock start of the given phase.
func (t *Tournament) PhaseStart(phase Phase) time.Time {
	switch phase {
	case PhaseKnockout:
		return t.KnockoutStart
	case PhaseSemifinal:
		return t.SemifinalStart
	case PhaseFinal:
		return t.FinalStart
	}
	return time.Time{}
}

type Franchise struct {
	ID           int     `json:"id" db:"id"`
	TournamentID int     `json:"tournament_id" db:"tournament_id"`
	Name         string  `json:"name" db:"name"`
	Location     string  `json:"location" db:"location"`
	LogoKey      *string `json:"-" db:"logo_key"`
	LogoURL      *string `json:"logo_url,omitempty" db:"-"`
}
