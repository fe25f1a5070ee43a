package sessions

type Status string

const (
	// StatusPending: seats and concessions are still editable.
	StatusPending Status = "PENDING"
	// StatusAwaitingPayment: selection frozen, customer is at the gateway.
	StatusAwaitingPayment Status = "AWAITING_PAYMENT"
	StatusPaid            Status = "PAID"
	StatusCancelled       Status = "CANCELLED"
	StatusExpired         Status = "EXPIRED"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusAwaitingPayment, StatusPaid, StatusCancelled, StatusExpired:
		return true
	}
	return false
}

func (s Status) String() string {
	return string(s)
}

// IsLive reports whether the session still occupies its customer's single
// live slot and its seat holds.
func (s Status) IsLive() bool {
	return s == StatusPending || s == StatusAwaitingPayment
}

func (s Status) IsTerminal() bool {
	return s == StatusPaid || s == StatusCancelled || s == StatusExpired
}

// CanTransitionTo encodes the session state machine. Terminal states accept
// nothing; PAID is only reachable from AWAITING_PAYMENT.
func (s Status) CanTransitionTo(target Status) bool {
	switch s {
	case StatusPending:
		return target == StatusAwaitingPayment || target == StatusCancelled || target == StatusExpired
	case StatusAwaitingPayment:
		return target == StatusPaid || target == StatusCancelled || target == StatusExpired
	}
	return false
}

// LiveStatuses is used in guarded UPDATE ... WHERE status IN clauses.
var LiveStatuses = []Status{StatusPending, StatusAwaitingPayment}
