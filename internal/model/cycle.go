package model

import (
	"fmt"
	"time"
)

// CycleStatus is the state of a wash cycle.
type CycleStatus string

const (
	CycleScheduled CycleStatus = "scheduled"
	CycleRunning   CycleStatus = "running"
	CycleCompleted CycleStatus = "completed"
	CycleCancelled CycleStatus = "cancelled"
)

// WashCycle is one planned or executed run of the washing machine.
type WashCycle struct {
	ID            string      `json:"id" yaml:"id" validate:"required"`
	Name          string      `json:"name" yaml:"name" validate:"required"`
	ScheduledDate string      `json:"scheduledDate" yaml:"scheduledDate" validate:"datetime=2006-01-02"`
	ScheduledTime string      `json:"scheduledTime" yaml:"scheduledTime" validate:"datetime=15:04"`
	Status        CycleStatus `json:"status" yaml:"status" validate:"oneof=scheduled running completed cancelled"`
	Items         []string    `json:"items" yaml:"items"` // LaundryItem ids, in load order
	Temperature   int         `json:"temperature" yaml:"temperature" validate:"gte=0"`
	FabricType    string      `json:"fabricType" yaml:"fabricType"`
	ColorGroup    string      `json:"colorGroup" yaml:"colorGroup"`
	Duration      int         `json:"duration" yaml:"duration" validate:"gte=0"`               // minutes
	MachineLoad   int         `json:"machineLoad" yaml:"machineLoad" validate:"gte=0,lte=100"` // percent
}

// EntityID implements Entity.
func (c WashCycle) EntityID() string { return c.ID }

// ScheduledAt combines the scheduled date and time in loc.
func (c WashCycle) ScheduledAt(loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	t, err := time.ParseInLocation(DateLayout+" "+TimeLayout, c.ScheduledDate+" "+c.ScheduledTime, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("cycle %s: invalid schedule: %w", c.ID, err)
	}
	return t, nil
}

// EndsAt is ScheduledAt plus the cycle duration.
func (c WashCycle) EndsAt(loc *time.Location) (time.Time, error) {
	start, err := c.ScheduledAt(loc)
	if err != nil {
		return time.Time{}, err
	}
	return start.Add(time.Duration(c.Duration) * time.Minute), nil
}
