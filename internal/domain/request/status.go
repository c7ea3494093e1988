package request

import "github.com/timbermagic/timbermagic-api/internal/httperr"

type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
)

// Statuses lists every status in reporting order.
var Statuses = []Status{StatusPending, StatusInProgress, StatusCompleted, StatusCancelled}

var transitions = map[Status][]Status{
	StatusPending:    {StatusInProgress, StatusCompleted, StatusCancelled},
	StatusInProgress: {StatusPending, StatusCompleted, StatusCancelled},
	StatusCompleted:  {StatusInProgress},
	StatusCancelled:  {StatusPending},
}

func ParseStatus(s string) (Status, error) {
	st := Status(s)
	if _, ok := transitions[st]; !ok {
		return "", httperr.ErrBusinessf("invalid_status", "unknown request status "+s)
	}
	return st, nil
}

func InitialStatus() Status {
	return StatusPending
}

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
		"request cannot move from "+string(from)+" to "+string(to),
	)
}
