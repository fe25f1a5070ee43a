package sessions

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatus_CanTransitionTo(t *testing.T) {
	allStatuses := []Status{StatusPending, StatusAwaitingPayment, StatusPaid, StatusCancelled, StatusExpired}

	allowed := map[Status]map[Status]bool{
		StatusPending: {
			StatusAwaitingPayment: true,
			StatusCancelled:       true,
			StatusExpired:         true,
		},
		StatusAwaitingPayment: {
			StatusPaid:      true,
			StatusCancelled: true,
			StatusExpired:   true,
		},
		StatusPaid:      {},
		StatusCancelled: {},
		StatusExpired:   {},
	}

	for _, from := range allStatuses {
		for _, to := range allStatuses {
			got := from.CanTransitionTo(to)
			want := allowed[from][to]
			assert.Equalf(t, want, got, "%s -> %s", from, to)
		}
	}
}

func TestStatus_Classification(t *testing.T) {
	assert.True(t, StatusPending.IsLive())
	assert.True(t, StatusAwaitingPayment.IsLive())
	assert.False(t, StatusPaid.IsLive())

	assert.True(t, StatusPaid.IsTerminal())
	assert.True(t, StatusCancelled.IsTerminal())
	assert.True(t, StatusExpired.IsTerminal())
	assert.False(t, StatusPending.IsTerminal())
}

func TestStatus_IsValid(t *testing.T) {
	assert.True(t, StatusAwaitingPayment.IsValid())
	assert.False(t, Status("UNKNOWN").IsValid())
}
