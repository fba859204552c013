package services

import (
	"time"

	"github.com/Dosada05/fantasy-league/models"
)

// ResolveEditablePhase определяет единственную стадию, состав которой
// пользователь может редактировать сейчас. Стадии проверяются в
// фиксированном порядке knockout → semifinal → final; подходит первая,
// у которой ещё не наступило время старта и не потрачен билет.
// После старта стадия закрыта навсегда, независимо от билета.
func ResolveEditablePhase(tickets models.Tickets, tournament *models.Tournament, now time.Time) (models.Phase, bool) {
	for _, phase := range models.PhaseOrder {
		if now.Before(tournament.PhaseStart(phase)) && tickets.Available(phase) {
			return phase, true
		}
	}
	return "", false
}
