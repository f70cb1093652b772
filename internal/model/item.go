package model

import "time"

// FabricType is the material of an item or the target material of a cycle.
type FabricType string

const (
	FabricCotton    FabricType = "cotton"
	FabricSynthetic FabricType = "synthetic"
	FabricWool      FabricType = "wool"
	FabricDelicate  FabricType = "delicate"
	FabricLinen     FabricType = "linen"
	FabricMixed     FabricType = "mixed"
)

// Color is the colour group an item is sorted into.
type Color string

const (
	ColorWhite Color = "white"
	ColorLight Color = "light"
	ColorDark  Color = "dark"
	ColorColor Color = "color"
)

// Priority is how soon an item needs washing.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityNormal Priority = "normal"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

// ItemStatus is where an item currently is.
type ItemStatus string

const (
	ItemClean   ItemStatus = "clean"
	ItemHamper  ItemStatus = "hamper"
	ItemWashing ItemStatus = "washing"
	ItemDrying  ItemStatus = "drying"
)

// LaundryItem is a piece (or bundle) of laundry owned by a family member.
type LaundryItem struct {
	ID           string     `json:"id" yaml:"id" validate:"required"`
	Name         string     `json:"name" yaml:"name" validate:"required"`
	FabricType   FabricType `json:"fabricType" yaml:"fabricType" validate:"oneof=cotton synthetic wool delicate linen mixed"`
	Color        Color      `json:"color" yaml:"color" validate:"oneof=white light dark color"`
	Owner        string     `json:"owner" yaml:"owner"` // FamilyMember id
	Priority     Priority   `json:"priority" yaml:"priority" validate:"oneof=low normal high urgent"`
	Status       ItemStatus `json:"status" yaml:"status" validate:"oneof=clean hamper washing drying"`
	LastWashed   *string    `json:"lastWashed" yaml:"lastWashed" validate:"omitempty,datetime=2006-01-02"`
	HygieneLimit int        `json:"hygieneLimit" yaml:"hygieneLimit" validate:"gt=0"` // days
}

// EntityID implements Entity.
func (i LaundryItem) EntityID() string { return i.ID }

// LastWashedOn parses LastWashed. It reports false when the item has never been
// washed or the date is malformed.
func (i LaundryItem) LastWashedOn() (time.Time, bool) {
	if i.LastWashed == nil || *i.LastWashed == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(DateLayout, *i.LastWashed)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// DueOn returns the last day the item may go without washing.
func (i LaundryItem) DueOn() (time.Time, bool) {
	washed, ok := i.LastWashedOn()
	if !ok {
		return time.Time{}, false
	}
	return washed.AddDate(0, 0, i.HygieneLimit), true
}
