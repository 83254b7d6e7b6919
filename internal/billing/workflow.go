package billing

import (
	"errors"
	"fmt"

	"github.com/qmuntal/stateless"

	"billdocs/internal/model"
)

const (
	PolicyFree   = "free"
	PolicyStrict = "strict"
)

var ErrInvalidTransition = errors.New("invalid status transition")

// StatusPolicy decides whether a document may move from one status to another.
type StatusPolicy interface {
	Check(from, to model.DocumentStatus) error
}

// NewStatusPolicy returns the policy registered under name.
func NewStatusPolicy(name string) (StatusPolicy, error) {
	switch name {
	case "", PolicyFree:
		return FreePolicy{}, nil
	case PolicyStrict:
		return StrictPolicy{}, nil
	default:
		return nil, fmt.Errorf("unknown status policy %q", name)
	}
}

// FreePolicy lets any status be set at any time, which is how documents have
// always been corrected by hand from the back-office.
type FreePolicy struct{}

func (FreePolicy) Check(_, _ model.DocumentStatus) error { return nil }

// StrictPolicy only allows the forward transitions of the billing workflow.
// REJECTED, PAID and CANCELLED are terminal. Setting the current status again is a no-op.
type StrictPolicy struct{}

func (StrictPolicy) Check(from, to model.DocumentStatus) error {
	if from == to {
		return nil
	}

	// Each trigger is the target status itself.
	machine := stateless.NewStateMachine(from)

	machine.Configure(model.StatusDraft).
		Permit(model.StatusSent, model.StatusSent).
		Permit(model.StatusCancelled, model.StatusCancelled)

	machine.Configure(model.StatusSent).
		Permit(model.StatusAccepted, model.StatusAccepted).
		Permit(model.StatusRejected, model.StatusRejected).
		Permit(model.StatusPaid, model.StatusPaid).
		Permit(model.StatusOverdue, model.StatusOverdue).
		Permit(model.StatusCancelled, model.StatusCancelled)

	machine.Configure(model.StatusAccepted).
		Permit(model.StatusPaid, model.StatusPaid).
		Permit(model.StatusCancelled, model.StatusCancelled)

	machine.Configure(model.StatusOverdue).
		Permit(model.StatusPaid, model.StatusPaid).
		Permit(model.StatusCancelled, model.StatusCancelled)

	if err := machine.Fire(to); err != nil {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
	}
	return nil
}
