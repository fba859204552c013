package models

import "time"

// Team — фэнтези-команда пользователя в рамках одного турнира.
// CurrentPhase выставляется при каждом успешном коммите состава и
// определяет, какой из трёх составов участвует в начислении очков.
type Team struct {
	ID           int       `json:"id" db:"id"`
	TournamentID int       `json:"tournament_id" db:"tournament_id"`
	UserID       int       `json:"user_id" db:"user_id"`
	Name         string    `json:"name" db:"name"`
	CurrentPhase Phase     `json:"current_phase" db:"current_phase"`
	TotalPoints  int       `json:"total_points" db:"total_points"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`

	Rosters      map[Phase][]int  `json:"rosters,omitempty" db:"-"`
	PointEntries []TeamPointEntry `json:"point_entries,omitempty" db:"-"`
}

// TeamPointEntry — запись истории очков команды за один матч,
// с разбивкой по игрокам состава активной на тот момент стадии.
type TeamPointEntry struct {
	ID          int                  `json:"id" db:"id"`
	TeamID      int                  `json:"team_id" db:"team_id"`
	MatchNumber int                  `json:"match_number" db:"match_number"`
	Phase       Phase                `json:"phase" db:"phase"`
	MatchPoints int                  `json:"match_points" db:"match_points"`
	CreatedAt   time.Time            `json:"created_at" db:"created_at"`
	Players     []TeamPointBreakdown `json:"players,omitempty" db:"-"`
}

type TeamPointBreakdown struct {
	PlayerID int `json:"player_id" db:"player_id"`
	Points   int `json:"points" db:"points"`
}
