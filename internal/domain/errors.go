package domain

import "errors"

// Validation errors for funnel inputs.
var (
	// ErrEmptyStepName is returned when a funnel step has no name.
	ErrEmptyStepName = errors.New("funnel step name is empty")

	// ErrDuplicateStep is returned when a step name appears twice in a config.
	ErrDuplicateStep = errors.New("duplicate funnel step")

	// ErrInvalidStepName is returned when a step name contains a comma,
	// double quote or line break.
	ErrInvalidStepName = errors.New("funnel step name contains a reserved character")

	// ErrReservedStepName is returned when a config uses the landing page name.
	ErrReservedStepName = errors.New("reserved funnel step name")

	// ErrInvalidBudget is returned when the budget is NaN or infinite.
	ErrInvalidBudget = errors.New("budget must be a finite number")

	// ErrNegativeBudget is returned when the budget is below zero.
	ErrNegativeBudget = errors.New("budget must be >= 0")

	// ErrInvalidCostPerUser is returned when cost per user is not positive.
	ErrInvalidCostPerUser = errors.New("cost per user must be > 0")
)
