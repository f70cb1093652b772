package api

import (
	"math"

	"shepherd-laundry/internal/labels"
	"shepherd-laundry/internal/model"
	"shepherd-laundry/internal/parse"
	"shepherd-laundry/internal/store"
)

// Response records embed the stored record and add display fields in the
// negotiated language.

type itemResponse struct {
	model.LaundryItem
	BaseName      string `json:"baseName"`
	Qualifier     string `json:"qualifier,omitempty"`
	Pieces        int    `json:"pieces"`
	StatusLabel   string `json:"statusLabel"`
	PriorityLabel string `json:"priorityLabel"`
	FabricLabel   string `json:"fabricLabel"`
	ColorLabel    string `json:"colorLabel"`
	OwnerName     string `json:"ownerName,omitempty"`
	DueOn         string `json:"dueOn,omitempty"`
}

type cycleResponse struct {
	model.WashCycle
	Program      string   `json:"program"`
	StatusLabel  string   `json:"statusLabel"`
	FabricLabel  string   `json:"fabricLabel"`
	ColorLabel   string   `json:"colorLabel"`
	ItemNames    []string `json:"itemNames"`
	MissingItems []string `json:"missingItems,omitempty"`
	EndsAt       string   `json:"endsAt,omitempty"`
}

type dryingResponse struct {
	model.DryingSession
	StatusLabel  string   `json:"statusLabel"`
	ItemNames    []string `json:"itemNames"`
	MissingItems []string `json:"missingItems,omitempty"`
}

type consumableResponse struct {
	model.Consumable
	CategoryLabel string `json:"categoryLabel"`
	FillPercent   *int   `json:"fillPercent,omitempty"`
	WashesLeft    *int   `json:"washesLeft,omitempty"`
}

type memberResponse struct {
	model.FamilyMember
	RoleLabel string `json:"roleLabel"`
}

type presenter struct {
	app *store.App
	cat labels.Catalog
}

func (p presenter) items(items []model.LaundryItem) []itemResponse {
	out := make([]itemResponse, 0, len(items))
	for _, it := range items {
		r := itemResponse{
			LaundryItem:   it,
			BaseName:      it.Name,
			Pieces:        1,
			StatusLabel:   labels.Label(p.cat.Status, string(it.Status)),
			PriorityLabel: labels.Label(p.cat.Priority, string(it.Priority)),
			FabricLabel:   labels.Label(p.cat.Fabric, string(it.FabricType)),
			ColorLabel:    labels.Label(p.cat.Color, string(it.Color)),
		}
		if name, err := parse.ParseName(it.Name); err == nil {
			r.BaseName, r.Qualifier, r.Pieces = name.Base, name.Qualifier, name.Pieces
		}
		if owner, ok := p.app.Owner(it); ok {
			r.OwnerName = owner.Name
		}
		if due, ok := it.DueOn(); ok {
			r.DueOn = due.Format(model.DateLayout)
		}
		out = append(out, r)
	}
	return out
}

func (p presenter) cycles(cycles []model.WashCycle) []cycleResponse {
	out := make([]cycleResponse, 0, len(cycles))
	for _, cy := range cycles {
		items, missing := p.app.CycleItems(cy)
		r := cycleResponse{
			WashCycle:    cy,
			Program:      cy.Name,
			StatusLabel:  labels.Label(p.cat.Status, string(cy.Status)),
			FabricLabel:  labels.Label(p.cat.Fabric, cy.FabricType),
			ColorLabel:   labels.Label(p.cat.Color, cy.ColorGroup),
			ItemNames:    names(items),
			MissingItems: missing,
		}
		if name, err := parse.ParseName(cy.Name); err == nil {
			r.Program = name.Base
		}
		if end, err := cy.EndsAt(p.app.Location()); err == nil {
			r.EndsAt = end.Format(model.DateTimeLayout)
		}
		out = append(out, r)
	}
	return out
}

func (p presenter) drying(sessions []model.DryingSession) []dryingResponse {
	out := make([]dryingResponse, 0, len(sessions))
	for _, s := range sessions {
		items, missing := p.app.SessionItems(s)
		out = append(out, dryingResponse{
			DryingSession: s,
			StatusLabel:   labels.Label(p.cat.Status, string(s.Status)),
			ItemNames:     names(items),
			MissingItems:  missing,
		})
	}
	return out
}

func (p presenter) consumables(cons []model.Consumable) []consumableResponse {
	out := make([]consumableResponse, 0, len(cons))
	for _, c := range cons {
		r := consumableResponse{
			Consumable:    c,
			CategoryLabel: labels.Label(p.cat.Category, string(c.Category)),
		}
		if ratio, ok := c.FillRatio(); ok {
			pct := int(math.Round(ratio * 100))
			r.FillPercent = &pct
		}
		if n, ok := c.WashesLeft(); ok {
			r.WashesLeft = &n
		}
		out = append(out, r)
	}
	return out
}

func (p presenter) members(members []model.FamilyMember) []memberResponse {
	out := make([]memberResponse, 0, len(members))
	for _, m := range members {
		out = append(out, memberResponse{
			FamilyMember: m,
			RoleLabel:    labels.Label(p.cat.Role, string(m.Role)),
		})
	}
	return out
}

func names(items []model.LaundryItem) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.Name)
	}
	return out
}
