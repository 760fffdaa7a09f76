// Package domain contains the core data types for Tripfolio.
// This package has zero external dependencies and is imported by every other
// internal package (store, service, handler, cli).
package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// Destination represents one planned trip segment.
// The struct's JSON encoding is the canonical persisted record shape:
// six keys, dates as "YYYY-MM-DD" strings, budget as a number, activities as
// an ordered list of strings. Unmarshaling is the trusted deserialization
// path and performs no business rule validation.
type Destination struct {
	City       string   `json:"city"`
	Country    string   `json:"country"`
	StartDate  Date     `json:"start_date"`
	EndDate    Date     `json:"end_date"`
	Budget     float64  `json:"budget"`
	Activities []string `json:"activities"`
}

// New parses raw string input into a validated Destination.
// This is the validated construction path used by the CLI and the HTTP API:
//   - start/end must parse as YYYY-MM-DD (ErrInvalidDate)
//   - budget must parse as a number > 0 (ErrInvalidBudget)
//   - start must not fall after end (ErrInvalidDateRange)
//   - activities must contain at least one non-blank entry (ErrEmptyActivities)
func New(city, country, start, end, budget string, activities []string) (Destination, error) {
	startDate, err := ParseDate(start)
	if err != nil {
		return Destination{}, err
	}
	endDate, err := ParseDate(end)
	if err != nil {
		return Destination{}, err
	}
	amount, err := ParseBudget(budget)
	if err != nil {
		return Destination{}, err
	}
	d := Destination{
		City:       strings.TrimSpace(city),
		Country:    strings.TrimSpace(country),
		StartDate:  startDate,
		EndDate:    endDate,
		Budget:     amount,
		Activities: TrimActivities(activities),
	}
	if err := d.Validate(); err != nil {
		return Destination{}, err
	}
	return d, nil
}

// ParseBudget parses a budget string into a strictly positive amount.
// Returns ErrInvalidBudget for non-numeric input and for values <= 0.
func ParseBudget(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a number", ErrInvalidBudget, s)
	}
	if v <= 0 {
		return 0, fmt.Errorf("%w: must be greater than zero", ErrInvalidBudget)
	}
	return v, nil
}

// TrimActivities trims every entry and drops the blank ones, preserving order.
func TrimActivities(activities []string) []string {
	out := make([]string, 0, len(activities))
	for _, a := range activities {
		if t := strings.TrimSpace(a); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// Validate enforces the cross-field invariants on an already-typed Destination.
// It is shared by New and Apply so updates cannot bypass the rules that held
// at construction.
func (d Destination) Validate() error {
	if strings.TrimSpace(d.City) == "" {
		return fmt.Errorf("%w: city is required", ErrValidation)
	}
	if d.Budget <= 0 {
		return fmt.Errorf("%w: must be greater than zero", ErrInvalidBudget)
	}
	if d.StartDate.After(d.EndDate) {
		return ErrInvalidDateRange
	}
	if len(TrimActivities(d.Activities)) == 0 {
		return ErrEmptyActivities
	}
	return nil
}

// Update is a bounded set of optional field overrides for a Destination.
// A nil pointer (or nil Activities slice) means "keep the existing value".
// Representing the update as a fixed struct instead of a name/value map makes
// an unknown field unrepresentable rather than a runtime error.
type Update struct {
	City       *string
	Country    *string
	StartDate  *Date
	EndDate    *Date
	Budget     *float64
	Activities []string
}

// IsZero reports whether the update carries no overrides at all.
func (u Update) IsZero() bool {
	return u.City == nil && u.Country == nil && u.StartDate == nil &&
		u.EndDate == nil && u.Budget == nil && u.Activities == nil
}

// Apply overlays the update onto d and commits only if the complete candidate
// still satisfies every invariant. On a validation error d is left unchanged,
// so a caller never observes a half-applied update.
func (d *Destination) Apply(u Update) error {
	candidate := *d
	if u.City != nil {
		candidate.City = strings.TrimSpace(*u.City)
	}
	if u.Country != nil {
		candidate.Country = strings.TrimSpace(*u.Country)
	}
	if u.StartDate != nil {
		candidate.StartDate = *u.StartDate
	}
	if u.EndDate != nil {
		candidate.EndDate = *u.EndDate
	}
	if u.Budget != nil {
		candidate.Budget = *u.Budget
	}
	if u.Activities != nil {
		candidate.Activities = TrimActivities(u.Activities)
	}
	if err := candidate.Validate(); err != nil {
		return err
	}
	*d = candidate
	return nil
}

// String renders a one-line human-readable summary covering all six fields.
func (d Destination) String() string {
	return fmt.Sprintf("%s, %s | %s -> %s | $%.2f | %s",
		d.City, d.Country, d.StartDate, d.EndDate, d.Budget,
		strings.Join(d.Activities, ", "))
}
