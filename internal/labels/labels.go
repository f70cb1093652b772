// Package labels holds the display dictionaries for enumerated domain values.
package labels

// Map translates enum keys to display text.
type Map map[string]string

// Label returns m[key], or key itself when m has no entry for it.
func Label(m Map, key string) string {
	if v, ok := m[key]; ok {
		return v
	}
	return key
}

// Catalog bundles the six dictionaries of one language.
type Catalog struct {
	Language string `json:"language"`
	Status   Map    `json:"status"`
	Priority Map    `json:"priority"`
	Fabric   Map    `json:"fabric"`
	Color    Map    `json:"color"`
	Category Map    `json:"category"`
	Role     Map    `json:"role"`
}

// German display labels; German is the household's default language.
var (
	StatusLabels = Map{
		"scheduled": "Geplant",
		"running":   "Läuft",
		"completed": "Fertig",
		"cancelled": "Abgebrochen",
		"clean":     "Sauber",
		"hamper":    "Im Korb",
		"washing":   "Wäscht",
		"drying":    "Trocknet",
		"active":    "Aktiv",
	}

	PriorityLabels = Map{
		"urgent": "Dringend",
		"high":   "Hoch",
		"normal": "Normal",
		"low":    "Niedrig",
	}

	FabricLabels = Map{
		"cotton":    "Baumwolle",
		"synthetic": "Synthetik",
		"wool":      "Wolle",
		"delicate":  "Feinwäsche",
		"linen":     "Leinen",
		"mixed":     "Mischgewebe",
	}

	ColorLabels = Map{
		"white": "Weiß",
		"light": "Hell",
		"dark":  "Dunkel",
		"color": "Bunt",
	}

	CategoryLabels = Map{
		"detergent":     "Waschmittel",
		"softener":      "Weichspüler",
		"bleach":        "Bleiche",
		"stain-remover": "Fleckenentf.",
		"other":         "Sonstiges",
	}

	RoleLabels = Map{
		"admin":  "Admin",
		"member": "Mitglied",
	}
)

// German is the catalog built from the package-level dictionaries.
var German = Catalog{
	Language: "de",
	Status:   StatusLabels,
	Priority: PriorityLabels,
	Fabric:   FabricLabels,
	Color:    ColorLabels,
	Category: CategoryLabels,
	Role:     RoleLabels,
}

// English carries the same keys as German.
var English = Catalog{
	Language: "en",
	Status: Map{
		"scheduled": "Scheduled",
		"running":   "Running",
		"completed": "Done",
		"cancelled": "Cancelled",
		"clean":     "Clean",
		"hamper":    "In hamper",
		"washing":   "Washing",
		"drying":    "Drying",
		"active":    "Active",
	},
	Priority: Map{
		"urgent": "Urgent",
		"high":   "High",
		"normal": "Normal",
		"low":    "Low",
	},
	Fabric: Map{
		"cotton":    "Cotton",
		"synthetic": "Synthetic",
		"wool":      "Wool",
		"delicate":  "Delicates",
		"linen":     "Linen",
		"mixed":     "Mixed fabric",
	},
	Color: Map{
		"white": "White",
		"light": "Light",
		"dark":  "Dark",
		"color": "Colours",
	},
	Category: Map{
		"detergent":     "Detergent",
		"softener":      "Softener",
		"bleach":        "Bleach",
		"stain-remover": "Stain remover",
		"other":         "Other",
	},
	Role: Map{
		"admin":  "Admin",
		"member": "Member",
	},
}
