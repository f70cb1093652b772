// Package seed provides the initial household data the stores start from.
package seed

import (
	"shepherd-laundry/internal/model"
)

// Data is one full set of collections.
type Data struct {
	Members     []model.FamilyMember  `yaml:"members"`
	Items       []model.LaundryItem   `yaml:"items"`
	Cycles      []model.WashCycle     `yaml:"cycles"`
	Drying      []model.DryingSession `yaml:"drying"`
	Consumables []model.Consumable    `yaml:"consumables"`
}

func date(s string) *string { return &s }

// Default returns a fresh copy of the built-in demo household.
func Default() Data {
	return Data{
		Members: []model.FamilyMember{
			{ID: "m1", Name: "Alex", Email: "alex@home.local", Role: model.RoleAdmin, Avatar: "A", Color: "var(--color-accent)"},
			{ID: "m2", Name: "Jordan", Email: "jordan@home.local", Role: model.RoleMember, Avatar: "J", Color: "var(--color-text-secondary)"},
			{ID: "m3", Name: "Sam", Email: "sam@home.local", Role: model.RoleMember, Avatar: "S", Color: "#7B68EE"},
		},
		Items: []model.LaundryItem{
			{ID: "i1", Name: "Weiße T-Shirts (x5)", FabricType: model.FabricCotton, Color: model.ColorWhite, Owner: "m1", Priority: model.PriorityNormal, Status: model.ItemHamper, LastWashed: date("2026-02-20"), HygieneLimit: 7},
			{ID: "i2", Name: "Jeans (x2)", FabricType: model.FabricCotton, Color: model.ColorDark, Owner: "m1", Priority: model.PriorityLow, Status: model.ItemClean, LastWashed: date("2026-02-22"), HygieneLimit: 14},
			{ID: "i3", Name: "Bettwäsche — Schlafzimmer", FabricType: model.FabricCotton, Color: model.ColorWhite, Owner: "m1", Priority: model.PriorityHigh, Status: model.ItemHamper, LastWashed: date("2026-02-10"), HygieneLimit: 7},
			{ID: "i4", Name: "Sportkleidung", FabricType: model.FabricSynthetic, Color: model.ColorColor, Owner: "m2", Priority: model.PriorityUrgent, Status: model.ItemHamper, LastWashed: date("2026-02-21"), HygieneLimit: 2},
			{ID: "i5", Name: "Wollpullover", FabricType: model.FabricWool, Color: model.ColorDark, Owner: "m2", Priority: model.PriorityLow, Status: model.ItemClean, LastWashed: date("2026-02-15"), HygieneLimit: 30},
			{ID: "i6", Name: "Kinderuniformen (x3)", FabricType: model.FabricMixed, Color: model.ColorColor, Owner: "m3", Priority: model.PriorityHigh, Status: model.ItemWashing, LastWashed: nil, HygieneLimit: 3},
			{ID: "i7", Name: "Handtücher — Bad", FabricType: model.FabricCotton, Color: model.ColorLight, Owner: "m1", Priority: model.PriorityNormal, Status: model.ItemDrying, LastWashed: date("2026-02-24"), HygieneLimit: 5},
			{ID: "i8", Name: "Seidenbluse", FabricType: model.FabricDelicate, Color: model.ColorLight, Owner: "m2", Priority: model.PriorityNormal, Status: model.ItemClean, LastWashed: date("2026-02-18"), HygieneLimit: 14},
			{ID: "i9", Name: "Kapuzenpullover", FabricType: model.FabricCotton, Color: model.ColorDark, Owner: "m3", Priority: model.PriorityNormal, Status: model.ItemHamper, LastWashed: date("2026-02-19"), HygieneLimit: 7},
			{ID: "i10", Name: "Leinen-Tischdecke", FabricType: model.FabricLinen, Color: model.ColorWhite, Owner: "m1", Priority: model.PriorityLow, Status: model.ItemClean, LastWashed: date("2026-02-12"), HygieneLimit: 21},
		},
		Cycles: []model.WashCycle{
			{ID: "c1", Name: "Weißwäsche — 60°C", ScheduledDate: "2026-02-24", ScheduledTime: "08:00", Status: model.CycleCompleted, Items: []string{"i1", "i3"}, Temperature: 60, FabricType: "cotton", ColorGroup: "white", Duration: 90, MachineLoad: 75},
			{ID: "c2", Name: "Buntwäsche — 40°C", ScheduledDate: "2026-02-24", ScheduledTime: "10:00", Status: model.CycleRunning, Items: []string{"i6"}, Temperature: 40, FabricType: "mixed", ColorGroup: "color", Duration: 60, MachineLoad: 45},
			{ID: "c3", Name: "Sportwäsche — 30°C", ScheduledDate: "2026-02-25", ScheduledTime: "07:30", Status: model.CycleScheduled, Items: []string{"i4"}, Temperature: 30, FabricType: "synthetic", ColorGroup: "color", Duration: 45, MachineLoad: 30},
			{ID: "c4", Name: "Dunkle Wäsche — 40°C", ScheduledDate: "2026-02-25", ScheduledTime: "09:30", Status: model.CycleScheduled, Items: []string{"i9"}, Temperature: 40, FabricType: "cotton", ColorGroup: "dark", Duration: 75, MachineLoad: 50},
			{ID: "c5", Name: "Weißwäsche — 60°C", ScheduledDate: "2026-02-26", ScheduledTime: "08:00", Status: model.CycleScheduled, Items: []string{"i1"}, Temperature: 60, FabricType: "cotton", ColorGroup: "white", Duration: 90, MachineLoad: 40},
		},
		Drying: []model.DryingSession{
			{ID: "d1", Method: model.DryingIndoor, Items: []string{"i7"}, StartedAt: "2026-02-24T09:30", EstimatedEnd: "2026-02-24T21:00", Status: model.DryingActive},
			{ID: "d2", Method: model.DryingDryer, Items: []string{"i1", "i3"}, StartedAt: "2026-02-24T10:00", EstimatedEnd: "2026-02-24T11:30", Status: model.DryingActive},
		},
		Consumables: []model.Consumable{
			{ID: "s1", Name: "Öko-Waschmittel", Category: model.CategoryDetergent, CurrentAmount: 1200, MaxAmount: 3000, Unit: "ml", DepletionRate: 60, LastRefilled: "2026-02-01"},
			{ID: "s2", Name: "Weichspüler", Category: model.CategorySoftener, CurrentAmount: 800, MaxAmount: 2000, Unit: "ml", DepletionRate: 40, LastRefilled: "2026-02-05"},
			{ID: "s3", Name: "Sauerstoffbleiche", Category: model.CategoryBleach, CurrentAmount: 150, MaxAmount: 500, Unit: "g", DepletionRate: 30, LastRefilled: "2026-01-28"},
			{ID: "s4", Name: "Fleckenentferner-Spray", Category: model.CategoryStainRemover, CurrentAmount: 90, MaxAmount: 400, Unit: "ml", DepletionRate: 15, LastRefilled: "2026-02-10"},
		},
	}
}
