package services

import "errors"

// Общие ошибки, используемые в разных сервисах и маппинге HTTP.
var (
	// Ресурс не найден (универсальная)
	ErrNotFound = errors.New("requested resource not found")

	// Ошибки валидации входных данных
	ErrValidationFailed           = errors.New("validation failed")
	ErrTeamNameRequired           = errors.New("team name is required")
	ErrTournamentFieldsRequired   = errors.New("all required tournament fields must be provided")
	ErrTournamentPhaseOrder       = errors.New("phase start times must be ordered knockout < semifinal < final")
	ErrFranchiseFieldsRequired    = errors.New("franchise name and location are required")
	ErrMatchFieldsRequired        = errors.New("all required match fields must be provided")
	ErrUpcomingMatchFieldsMissing = errors.New("all upcoming match fields are required")
	ErrPlayerFieldsRequired       = errors.New("player name, price and position are required")
	ErrPlayerPositionInvalid      = errors.New("invalid player position")
	ErrPlayerReferenceInvalid     = errors.New("one or more player ids are invalid")
	ErrFranchiseMismatch          = errors.New("franchise does not belong to the specified tournament")

	// Нарушения правил составов
	ErrRosterSizeMismatch   = errors.New("roster size does not match the tournament player limit")
	ErrRosterBudgetExceeded = errors.New("roster price total exceeds the budget cap")
	ErrEditWindowClosed     = errors.New("no edit tickets available or the edit window has closed")

	// Ошибки конфликтов
	ErrUserEmailConflict      = errors.New("email address is already in use")
	ErrTournamentNameConflict = errors.New("tournament name already exists")
	ErrTeamNameConflict       = errors.New("team name is already in use in this tournament")
	ErrTeamAlreadyExists      = errors.New("user already owns a team in this tournament")
	ErrFranchiseNameTaken     = errors.New("franchise name already exists in this tournament")
	ErrPlayerNameConflict     = errors.New("player name already exists in this tournament")
	ErrMatchNumberConflict    = errors.New("match number already exists in this tournament")

	// Ошибки аутентификации и авторизации
	ErrAuthInvalidCredentials = errors.New("invalid email or password")
	ErrForbiddenOperation     = errors.New("operation not allowed for the current user")

	// Ошибки, специфичные для сущностей
	ErrUserNotFound       = errors.New("user not found")
	ErrTeamNotFound       = errors.New("team not found")
	ErrTournamentNotFound = errors.New("tournament not found")
	ErrFranchiseNotFound  = errors.New("franchise not found")
	ErrPlayerNotFound     = errors.New("player not found")
	ErrMatchNotFound      = errors.New("match not found")
)
