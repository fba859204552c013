package models

import "time"

// PlayerPosition представляет амплуа игрока, соответствующее ENUM в БД.
// Амплуа определяет вес забитого гола при подсчёте очков.
type PlayerPosition string

const (
	PositionGoalkeeper PlayerPosition = "goalkeeper"
	PositionDefender   PlayerPosition = "defender"
	PositionMidfielder PlayerPosition = "midfielder"
	PositionForward    PlayerPosition = "forward"
)

func (p PlayerPosition) Valid() bool {
	switch p {
	case PositionGoalkeeper, PositionDefender, PositionMidfielder, PositionForward:
		return true
	}
	return false
}

type Player struct {
	ID           int            `json:"id" db:"id"`
	TournamentID int            `json:"tournament_id" db:"tournament_id"`
	FranchiseID  int            `json:"franchise_id" db:"franchise_id"`
	Name         string         `json:"name" db:"name"`
	Price        int            `json:"price" db:"price"`
	Position     PlayerPosition `json:"position" db:"position"`
	PhotoKey     *string        `json:"-" db:"photo_key"`
	PhotoURL     *string        `json:"photo_url,omitempty" db:"-"`
	CreatedAt    time.Time      `json:"created_at" db:"created_at"`

	Matches []PlayerMatchPoints `json:"matches,omitempty" db:"-"`
}

// PlayerMatchPoints — одна строка личной истории игрока: сколько очков
// он принёс в конкретном матче.
type PlayerMatchPoints struct {
	PlayerID    int `json:"player_id" db:"player_id"`
	MatchNumber int `json:"match_number" db:"match_number"`
	Points      int `json:"points" db:"points"`
}
