package models

import "time"

// MatchEventType представляет штучные события матча, соответствующие ENUM в БД.
type MatchEventType string

const (
	EventYellowCard  MatchEventType = "yellow_card"
	EventRedCard     MatchEventType = "red_card"
	EventPenaltyMiss MatchEventType = "penalty_miss"
	EventPenaltySave MatchEventType = "penalty_save"
	EventOwnGoal     MatchEventType = "own_goal"
)

// GoalEvent — гол с опциональными ассистентами. Ассисты сохраняются,
// но очков не приносят.
type GoalEvent struct {
	PlayerID int   `json:"player_id" db:"player_id"`
	Goals    int   `json:"goals" db:"goals"`
	Assists  []int `json:"assists,omitempty" db:"-"`
}

type CardEvents struct {
	Yellow []int `json:"yellow"`
	Red    []int `json:"red"`
}

// MatchDetails — результат одного реального матча турнира.
// После коммита транзакции записи неизменяемы.
type MatchDetails struct {
	ID                 int         `json:"id" db:"id"`
	TournamentID       int         `json:"tournament_id" db:"tournament_id"`
	MatchNumber        int         `json:"match_number" db:"match_number"`
	MatchName          string      `json:"match_name" db:"match_name"`
	Score              string      `json:"score" db:"score"`
	PlayersPlayedTeam1 []int       `json:"players_played_team1" db:"-"`
	PlayersPlayedTeam2 []int       `json:"players_played_team2" db:"-"`
	Goals              []GoalEvent `json:"goals_scored_by,omitempty" db:"-"`
	Cards              CardEvents  `json:"cards_obtained" db:"-"`
	PenaltiesMissed    []int       `json:"penalties_missed,omitempty" db:"-"`
	PenaltySaves       []int       `json:"penalty_saves,omitempty" db:"-"`
	OwnGoals           []int       `json:"own_goals,omitempty" db:"-"`
	CreatedAt          time.Time   `json:"created_at" db:"created_at"`
}

// UpcomingMatch — анонс будущего матча. Записи старше двух часов после
// назначенного времени вычищаются при чтении расписания.
type UpcomingMatch struct {
	ID           int       `json:"id" db:"id"`
	TournamentID int       `json:"tournament_id" db:"tournament_id"`
	MatchNumber  int       `json:"match_number" db:"match_number"`
	MatchName    string    `json:"match_name" db:"match_name"`
	MatchDate    time.Time `json:"match_date" db:"match_date"`
	CreatorID    int       `json:"creator_id" db:"creator_id"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}
