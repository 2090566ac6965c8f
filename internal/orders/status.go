package orders

type Status string

const (
	StatusNew       Status = "NEW"
	StatusPreparing Status = "PREPARING"
	StatusReady     Status = "READY"
	StatusCompleted Status = "COMPLETED"
	StatusCancelled Status = "CANCELLED"
)

// ordinal adalah satu-satunya sumber urutan status. Progress bar, step
// indicator dan validasi transisi semua turun dari sini supaya UI tidak
// bisa inkonsisten (step "delivered" tercentang tapi "preparing" tidak).
var ordinal = map[Status]int{
	StatusNew:       1,
	StatusPreparing: 2,
	StatusReady:     3,
	StatusCompleted: 4,
}

// Steps is the forward sequence, in order.
func Steps() []Status {
	return []Status{StatusNew, StatusPreparing, StatusReady, StatusCompleted}
}

func (s Status) Valid() bool {
	_, ok := ordinal[s]
	return ok || s == StatusCancelled
}

func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// CanTransition: maju satu step, atau cancel dari state non-terminal.
// Tidak ada jalan mundur.
func CanTransition(from, to Status) bool {
	if to == StatusCancelled {
		return !from.Terminal() && from.Valid()
	}
	of, okf := ordinal[from]
	ot, okt := ordinal[to]
	return okf && okt && ot == of+1
}

// ProgressPercent maps a status to its progress bar value. CANCELLED has no
// numeric progress; the second return is false for it (and for unknowns).
func ProgressPercent(s Status) (int, bool) {
	o, ok := ordinal[s]
	if !ok {
		return 0, false
	}
	return o * 25, true
}

// StepReached reports whether the given step should render as reached for
// the current status. Derived from enum ordering only, never from flags.
func StepReached(step, current Status) bool {
	if current == StatusCancelled {
		return false
	}
	os, ok1 := ordinal[step]
	oc, ok2 := ordinal[current]
	return ok1 && ok2 && oc >= os
}
