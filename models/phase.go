package models

// Phase представляет стадию турнира, соответствующую ENUM в БД.
type Phase string

const (
	PhaseKnockout  Phase = "knockout"
	PhaseSemifinal Phase = "semifinal"
	PhaseFinal     Phase = "final"
)

// PhaseOrder фиксирует порядок, в котором стадии проверяются при
// определении окна редактирования.
var PhaseOrder = [3]Phase{PhaseKnockout, PhaseSemifinal, PhaseFinal}

func (p Phase) Valid() bool {
	switch p {
	case PhaseKnockout, PhaseSemifinal, PhaseFinal:
		return true
	}
	return false
}
