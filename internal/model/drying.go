package model

import (
	"fmt"
	"time"
)

// DryingMethod is how a drying session dries its items.
type DryingMethod string

const (
	DryingDryer   DryingMethod = "dryer"
	DryingIndoor  DryingMethod = "indoor"
	DryingOutdoor DryingMethod = "outdoor"
	DryingCombo   DryingMethod = "combo"
)

// DryingStatus is the state of a drying session.
type DryingStatus string

const (
	DryingActive    DryingStatus = "active"
	DryingCompleted DryingStatus = "completed"
)

// DryingSession groups items drying together.
type DryingSession struct {
	ID           string       `json:"id" yaml:"id" validate:"required"`
	Method       DryingMethod `json:"method" yaml:"method" validate:"oneof=dryer indoor outdoor combo"`
	Items        []string     `json:"items" yaml:"items"`
	StartedAt    string       `json:"startedAt" yaml:"startedAt" validate:"datetime=2006-01-02T15:04"`
	EstimatedEnd string       `json:"estimatedEnd" yaml:"estimatedEnd" validate:"datetime=2006-01-02T15:04"`
	Status       DryingStatus `json:"status" yaml:"status" validate:"oneof=active completed"`
}

// EntityID implements Entity.
func (d DryingSession) EntityID() string { return d.ID }

// Window parses StartedAt and EstimatedEnd in loc.
func (d DryingSession) Window(loc *time.Location) (start, end time.Time, err error) {
	if loc == nil {
		loc = time.Local
	}
	if start, err = time.ParseInLocation(DateTimeLayout, d.StartedAt, loc); err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("drying session %s: invalid start: %w", d.ID, err)
	}
	if end, err = time.ParseInLocation(DateTimeLayout, d.EstimatedEnd, loc); err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("drying session %s: invalid end: %w", d.ID, err)
	}
	return start, end, nil
}
