package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/Dosada05/fantasy-league/models"
)

func gateTournament(base time.Time) *models.Tournament {
	return &models.Tournament{
		ID:             1,
		KnockoutStart:  base,
		SemifinalStart: base.Add(24 * time.Hour),
		FinalStart:     base.Add(48 * time.Hour),
	}
}

func TestResolveEditablePhase(t *testing.T) {
	base := time.Date(2026, time.June, 1, 12, 0, 0, 0, time.UTC)
	tournament := gateTournament(base)

	consumed := func(phases ...models.Phase) models.Tickets {
		tickets := models.NewTickets()
		for _, p := range phases {
			tickets.Consume(p)
		}
		return tickets
	}

	cases := []struct {
		name      string
		tickets   models.Tickets
		now       time.Time
		wantPhase models.Phase
		wantOK    bool
	}{
		{
			name:      "before knockout with all tickets",
			tickets:   models.NewTickets(),
			now:       base.Add(-time.Hour),
			wantPhase: models.PhaseKnockout,
			wantOK:    true,
		},
		{
			name:      "knockout ticket spent falls through to semifinal",
			tickets:   consumed(models.PhaseKnockout),
			now:       base.Add(-time.Hour),
			wantPhase: models.PhaseSemifinal,
			wantOK:    true,
		},
		{
			name:      "after knockout start gate moves to semifinal",
			tickets:   models.NewTickets(),
			now:       base.Add(time.Hour),
			wantPhase: models.PhaseSemifinal,
			wantOK:    true,
		},
		{
			name:      "only final remains",
			tickets:   consumed(models.PhaseKnockout, models.PhaseSemifinal),
			now:       base.Add(25 * time.Hour),
			wantPhase: models.PhaseFinal,
			wantOK:    true,
		},
		{
			name:    "all tickets spent",
			tickets: consumed(models.PhaseKnockout, models.PhaseSemifinal, models.PhaseFinal),
			now:     base.Add(-time.Hour),
			wantOK:  false,
		},
		{
			name:    "after final start nothing editable",
			tickets: models.NewTickets(),
			now:     base.Add(49 * time.Hour),
			wantOK:  false,
		},
		{
			name:    "final ticket spent and earlier phases started",
			tickets: consumed(models.PhaseFinal),
			now:     base.Add(25 * time.Hour),
			wantOK:  false,
		},
		{
			name:      "exactly at phase start is closed",
			tickets:   models.NewTickets(),
			now:       base,
			wantPhase: models.PhaseSemifinal,
			wantOK:    true,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			phase, ok := ResolveEditablePhase(tc.tickets, tournament, tc.now)
			assert.Equal(t, tc.wantOK, ok)
			if tc.wantOK {
				assert.Equal(t, tc.wantPhase, phase)
			}
		})
	}
}
