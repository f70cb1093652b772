package model

// Category groups consumable supplies.
type Category string

const (
	CategoryDetergent    Category = "detergent"
	CategorySoftener     Category = "softener"
	CategoryBleach       Category = "bleach"
	CategoryStainRemover Category = "stain-remover"
	CategoryOther        Category = "other"
)

// Consumable is a supply used up by washing. CurrentAmount is expected to stay
// within MaxAmount; nothing here enforces it.
type Consumable struct {
	ID            string   `json:"id" yaml:"id" validate:"required"`
	Name          string   `json:"name" yaml:"name" validate:"required"`
	Category      Category `json:"category" yaml:"category" validate:"oneof=detergent softener bleach stain-remover other"`
	CurrentAmount float64  `json:"currentAmount" yaml:"currentAmount" validate:"gte=0"`
	MaxAmount     float64  `json:"maxAmount" yaml:"maxAmount" validate:"gt=0"`
	Unit          string   `json:"unit" yaml:"unit"`
	DepletionRate float64  `json:"depletionRate" yaml:"depletionRate" validate:"gte=0"` // units per wash
	LastRefilled  string   `json:"lastRefilled" yaml:"lastRefilled" validate:"omitempty,datetime=2006-01-02"`
}

// EntityID implements Entity.
func (c Consumable) EntityID() string { return c.ID }

// FillRatio is CurrentAmount/MaxAmount. It reports false when MaxAmount is not
// positive, in which case no meaningful ratio exists.
func (c Consumable) FillRatio() (float64, bool) {
	if c.MaxAmount <= 0 {
		return 0, false
	}
	return c.CurrentAmount / c.MaxAmount, true
}

// WashesLeft estimates how many more washes the current amount covers.
func (c Consumable) WashesLeft() (int, bool) {
	if c.DepletionRate <= 0 {
		return 0, false
	}
	return int(c.CurrentAmount / c.DepletionRate), true
}
