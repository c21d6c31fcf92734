package appointment

import "github.com/BruksfildServices01/barber-connect/internal/httperr"

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusRejected  Status = "rejected"
	StatusCompleted Status = "completed"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusRejected, StatusCompleted:
		return true
	default:
		return false
	}
}

// Upcoming statuses count towards a barber's upcoming workload.
func UpcomingStatuses() []Status {
	return []Status{StatusPending, StatusConfirmed}
}

func InitialStatus() Status {
	return StatusPending
}

// ===============================
// Actions
// ===============================

type Action string

const (
	ActionAccept   Action = "accept"
	ActionReject   Action = "reject"
	ActionComplete Action = "complete"
)

// ParseAction accepts the actions a barber may request over the API.
// Completion is not one of them.
func ParseAction(s string) (Action, error) {
	switch Action(s) {
	case ActionAccept:
		return ActionAccept, nil
	case ActionReject:
		return ActionReject, nil
	default:
		return "", httperr.NewInvalidAction("Invalid action.")
	}
}

// ===============================
// Transitions
// ===============================

// Next returns the status reached by applying action to current.
func Next(current Status, action Action) (Status, error) {
	switch action {
	case ActionAccept:
		if current == StatusPending {
			return StatusConfirmed, nil
		}
	case ActionReject:
		if current == StatusPending {
			return StatusRejected, nil
		}
	case ActionComplete:
		if current == StatusConfirmed {
			return StatusCompleted, nil
		}
	default:
		return "", httperr.NewInvalidAction("Invalid action.")
	}

	return "", httperr.NewInvalidTransition(
		"invalid_state",
		"Appointment cannot be "+pastTense(action)+" from status "+string(current)+".",
	)
}

func pastTense(a Action) string {
	switch a {
	case ActionAccept:
		return "accepted"
	case ActionReject:
		return "rejected"
	case ActionComplete:
		return "completed"
	default:
		return string(a)
	}
}
