package invoice

import "github.com/timbermagic/timbermagic-api/internal/httperr"

// ===============================
// Invoice Status
// ===============================

type Status string

const (
	StatusDraft     Status = "draft"
	StatusSent      Status = "sent"
	StatusPaid      Status = "paid"
	StatusCancelled Status = "cancelled"
)

var transitions = map[Status][]Status{
	StatusDraft:     {StatusSent, StatusPaid, StatusCancelled},
	StatusSent:      {StatusDraft, StatusPaid, StatusCancelled},
	StatusPaid:      {},
	StatusCancelled: {StatusDraft},
}

func ParseStatus(s string) (Status, error) {
	st := Status(s)
	if _, ok := transitions[st]; !ok {
		return "", httperr.ErrBusinessf("invalid_status", "unknown invoice status "+s)
	}
	return st, nil
}

func InitialStatus() Status {
	return StatusDraft
}

// ===============================
// Validations
// ===============================

// CanTransition allows same-state writes and the moves in the table above.
// A paid invoice is final.
func CanTransition(from, to Status) error {
	if from == to {
		return nil
	}
	for _, allowed := range transitions[from] {
		if allowed == to {
			return nil
		}
	}
	return httperr.ErrBusinessf(
		httperr.CodeInvalidTransition,
		"invoice cannot move from "+string(from)+" to "+string(to),
	)
}
