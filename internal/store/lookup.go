package store

import "shepherd-laundry/internal/model"

// FindByID returns the record with id. Ids are weak references: a missing
// record is reported with ok == false and is the caller's to handle.
func FindByID[T model.Entity](records []T, id string) (rec T, ok bool) {
	for _, r := range records {
		if r.EntityID() == id {
			return r, true
		}
	}
	return rec, false
}

// Member looks up a family member by id.
func (a *App) Member(id string) (model.FamilyMember, bool) {
	return FindByID(a.Members.Get(), id)
}

// Item looks up a laundry item by id.
func (a *App) Item(id string) (model.LaundryItem, bool) {
	return FindByID(a.Items.Get(), id)
}

// Owner resolves the member an item belongs to.
func (a *App) Owner(item model.LaundryItem) (model.FamilyMember, bool) {
	return a.Member(item.Owner)
}

// CycleItems resolves the items loaded into a cycle, in load order. Ids that no
// longer resolve are returned in missing.
func (a *App) CycleItems(c model.WashCycle) (items []model.LaundryItem, missing []string) {
	return a.resolveItems(c.Items)
}

// SessionItems resolves the items of a drying session like CycleItems.
func (a *App) SessionItems(d model.DryingSession) (items []model.LaundryItem, missing []string) {
	return a.resolveItems(d.Items)
}

// ItemsOwnedBy returns the items whose owner is memberID.
func (a *App) ItemsOwnedBy(memberID string) []model.LaundryItem {
	return filter(a.Items.Get(), func(i model.LaundryItem) bool { return i.Owner == memberID })
}

func (a *App) resolveItems(ids []string) ([]model.LaundryItem, []string) {
	all := a.Items.Get()
	byID := make(map[string]model.LaundryItem, len(all))
	for _, it := range all {
		byID[it.ID] = it
	}

	items := make([]model.LaundryItem, 0, len(ids))
	var missing []string
	for _, id := range ids {
		if it, ok := byID[id]; ok {
			items = append(items, it)
		} else {
			missing = append(missing, id)
		}
	}
	return items, missing
}
