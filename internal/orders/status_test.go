package orders

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		name string
		from Status
		to   Status
		ok   bool
	}{
		{"new_to_preparing", StatusNew, StatusPreparing, true},
		{"preparing_to_ready", StatusPreparing, StatusReady, true},
		{"ready_to_completed", StatusReady, StatusCompleted, true},
		{"no_skipping", StatusNew, StatusReady, false},
		{"no_backwards", StatusReady, StatusPreparing, false},
		{"no_self", StatusPreparing, StatusPreparing, false},
		{"cancel_from_new", StatusNew, StatusCancelled, true},
		{"cancel_from_preparing", StatusPreparing, StatusCancelled, true},
		{"cancel_from_ready", StatusReady, StatusCancelled, true},
		{"no_cancel_after_completed", StatusCompleted, StatusCancelled, false},
		{"cancelled_is_terminal", StatusCancelled, StatusPreparing, false},
		{"no_double_cancel", StatusCancelled, StatusCancelled, false},
		{"completed_is_terminal", StatusCompleted, StatusNew, false},
		{"unknown_from", Status("WAT"), StatusPreparing, false},
		{"unknown_to", StatusNew, Status("WAT"), false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.ok, CanTransition(tc.from, tc.to))
		})
	}
}

func TestProgressPercent_MonotonicAlongForwardSequence(t *testing.T) {
	prev := 0
	for _, st := range Steps() {
		pct, ok := ProgressPercent(st)
		assert.True(t, ok, st)
		assert.Greater(t, pct, prev, st)
		prev = pct
	}
	assert.Equal(t, 100, prev)

	pct, ok := ProgressPercent(StatusCancelled)
	assert.False(t, ok) // cancelled tidak punya angka progress
	assert.Equal(t, 0, pct)
}

func TestProgressPercent_Values(t *testing.T) {
	for st, want := range map[Status]int{
		StatusNew:       25,
		StatusPreparing: 50,
		StatusReady:     75,
		StatusCompleted: 100,
	} {
		pct, ok := ProgressPercent(st)
		assert.True(t, ok)
		assert.Equal(t, want, pct, st)
	}
}

// Kalau step N reached, semua step sebelumnya juga harus reached. Ini yang
// menjaga UI tidak bisa "delivered tercentang tapi preparing tidak".
func TestStepReached_ConsistentWithOrdering(t *testing.T) {
	steps := Steps()
	for _, current := range steps {
		reachedBefore := true
		for _, step := range steps {
			reached := StepReached(step, current)
			if !reachedBefore {
				assert.False(t, reached, "step %s reached while earlier step not, current=%s", step, current)
			}
			reachedBefore = reached
		}
		// current selalu reached untuk dirinya sendiri
		assert.True(t, StepReached(current, current))
	}
}

func TestStepReached_CancelledReachesNothing(t *testing.T) {
	for _, step := range Steps() {
		assert.False(t, StepReached(step, StatusCancelled))
	}
}

func TestStatus_Terminal(t *testing.T) {
	assert.True(t, StatusCompleted.Terminal())
	assert.True(t, StatusCancelled.Terminal())
	assert.False(t, StatusNew.Terminal())
	assert.False(t, StatusPreparing.Terminal())
	assert.False(t, StatusReady.Terminal())
}

func TestComputeTotalCents(t *testing.T) {
	// pizza 10.00 x2 + delivery fee 2.50 = 22.50
	items := []OrderItem{{MenuItemID: "1", Name: "Pizza", PriceCents: 1000, Quantity: 2}}
	assert.Equal(t, 2250, ComputeTotalCents(items, 250))

	assert.Equal(t, 250, ComputeTotalCents(nil, 250))
	assert.Equal(t, 0, ComputeTotalCents(nil, 0))
}
