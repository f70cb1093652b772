package store

import (
	"time"

	"shepherd-laundry/internal/model"
)

// The filters below back the derived views. Each returns a new, non-nil slice and
// keeps the relative order of its input.

// HamperFilter keeps items waiting in the hamper.
func HamperFilter(items []model.LaundryItem) []model.LaundryItem {
	return filter(items, func(i model.LaundryItem) bool { return i.Status == model.ItemHamper })
}

// ActiveCyclesFilter keeps cycles that are running or still to run.
func ActiveCyclesFilter(cycles []model.WashCycle) []model.WashCycle {
	return filter(cycles, func(c model.WashCycle) bool {
		return c.Status == model.CycleRunning || c.Status == model.CycleScheduled
	})
}

// UrgentFilter keeps items with urgent or high priority.
func UrgentFilter(items []model.LaundryItem) []model.LaundryItem {
	return filter(items, func(i model.LaundryItem) bool {
		return i.Priority == model.PriorityUrgent || i.Priority == model.PriorityHigh
	})
}

// LowConsumablesFilter keeps consumables whose fill ratio is strictly below
// threshold. Consumables without a positive MaxAmount have no ratio and are
// never reported.
func LowConsumablesFilter(threshold float64) func([]model.Consumable) []model.Consumable {
	return func(cons []model.Consumable) []model.Consumable {
		return filter(cons, func(c model.Consumable) bool {
			ratio, ok := c.FillRatio()
			return ok && ratio < threshold
		})
	}
}

// OverdueFilter keeps items that have gone past their hygiene limit on today.
// Items never washed count as overdue. Items currently washing or drying are
// being taken care of and are skipped.
func OverdueFilter(items []model.LaundryItem, today time.Time) []model.LaundryItem {
	day := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)
	return filter(items, func(i model.LaundryItem) bool {
		if i.Status == model.ItemWashing || i.Status == model.ItemDrying {
			return false
		}
		due, ok := i.DueOn()
		if !ok {
			return true
		}
		return day.After(due)
	})
}

func filter[T any](in []T, keep func(T) bool) []T {
	out := make([]T, 0, len(in))
	for _, v := range in {
		if keep(v) {
			out = append(out, v)
		}
	}
	return out
}
