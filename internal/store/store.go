package store

import (
	"errors"
	"fmt"
	"reflect"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"

	"shepherd-laundry/internal/model"
	"shepherd-laundry/internal/reactive"
	"shepherd-laundry/internal/seed"
)

// App owns the one shared store per entity kind and the views derived from them.
// It is built once at startup and handed to whatever needs the data.
//
// The stores can be written directly with Set, which trusts the caller. The
// Replace methods are the checked entry point for data arriving from outside the
// process: they validate the whole snapshot and leave the store untouched when
// anything is wrong.
type App struct {
	Members           *reactive.Writable[[]model.FamilyMember]
	Items             *reactive.Writable[[]model.LaundryItem]
	Cycles            *reactive.Writable[[]model.WashCycle]
	Drying            *reactive.Writable[[]model.DryingSession]
	Consumables       *reactive.Writable[[]model.Consumable]
	PushSubscriptions *reactive.Writable[[]model.PushSubscription]
	Today             *reactive.Writable[time.Time]

	HamperItems    *reactive.Derived[[]model.LaundryItem]
	ActiveCycles   *reactive.Derived[[]model.WashCycle]
	LowConsumables *reactive.Derived[[]model.Consumable]
	UrgentItems    *reactive.Derived[[]model.LaundryItem]
	OverdueItems   *reactive.Derived[[]model.LaundryItem]

	opts     Options
	validate *validator.Validate
	pushMu   sync.Mutex
}

// New builds an App seeded with data.
func New(data seed.Data, opts Options) *App {
	opts = opts.withDefaults()

	a := &App{
		Members:           reactive.NewWritable(data.Members),
		Items:             reactive.NewWritable(data.Items),
		Cycles:            reactive.NewWritable(data.Cycles),
		Drying:            reactive.NewWritable(data.Drying),
		Consumables:       reactive.NewWritable(data.Consumables),
		PushSubscriptions: reactive.NewWritable([]model.PushSubscription{}),
		Today:             reactive.NewWritable(dayOf(opts.Now(), opts.Location)),
		opts:              opts,
		validate:          newValidator(),
	}

	a.HamperItems = reactive.Derive(a.Items, HamperFilter)
	a.ActiveCycles = reactive.Derive(a.Cycles, ActiveCyclesFilter)
	a.LowConsumables = reactive.Derive(a.Consumables, LowConsumablesFilter(opts.LowConsumableRatio))
	a.UrgentItems = reactive.Derive(a.Items, UrgentFilter)
	a.OverdueItems = reactive.Derive2(a.Items, a.Today, OverdueFilter)

	return a
}

// Close detaches the derived views from the stores.
func (a *App) Close() {
	a.HamperItems.Close()
	a.ActiveCycles.Close()
	a.LowConsumables.Close()
	a.UrgentItems.Close()
	a.OverdueItems.Close()
}

// Location is the time zone the App decides calendar days in.
func (a *App) Location() *time.Location { return a.opts.Location }

// AdvanceDay moves Today to the day of now. Nothing is published when the day
// has not changed.
func (a *App) AdvanceDay(now time.Time) bool {
	day := dayOf(now, a.opts.Location)
	if day.Equal(a.Today.Get()) {
		return false
	}
	a.Today.Set(day)
	return true
}

func dayOf(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}

// ReplaceItems validates items and, when valid, makes them the new snapshot.
func (a *App) ReplaceItems(items []model.LaundryItem) error {
	if err := validateSnapshot(a.validate, "items", items); err != nil {
		return err
	}
	a.Items.Set(slices.Clone(items))
	return nil
}

// ReplaceCycles validates cycles and, when valid, makes them the new snapshot.
func (a *App) ReplaceCycles(cycles []model.WashCycle) error {
	if err := validateSnapshot(a.validate, "cycles", cycles); err != nil {
		return err
	}
	a.Cycles.Set(slices.Clone(cycles))
	return nil
}

// ReplaceDrying validates sessions and, when valid, makes them the new snapshot.
func (a *App) ReplaceDrying(sessions []model.DryingSession) error {
	if err := validateSnapshot(a.validate, "drying", sessions); err != nil {
		return err
	}
	a.Drying.Set(slices.Clone(sessions))
	return nil
}

// ReplaceConsumables validates consumables and, when valid, makes them the new snapshot.
func (a *App) ReplaceConsumables(cons []model.Consumable) error {
	if err := validateSnapshot(a.validate, "consumables", cons); err != nil {
		return err
	}
	a.Consumables.Set(slices.Clone(cons))
	return nil
}

// ReplaceMembers validates members and, when valid, makes them the new snapshot.
func (a *App) ReplaceMembers(members []model.FamilyMember) error {
	if err := validateSnapshot(a.validate, "members", members); err != nil {
		return err
	}
	a.Members.Set(slices.Clone(members))
	return nil
}

// ReplaceAll validates every collection in data first and only then replaces
// all five stores. A single invalid collection rejects the whole set.
func (a *App) ReplaceAll(data seed.Data) error {
	if err := errors.Join(
		validateSnapshot(a.validate, "members", data.Members),
		validateSnapshot(a.validate, "items", data.Items),
		validateSnapshot(a.validate, "cycles", data.Cycles),
		validateSnapshot(a.validate, "drying", data.Drying),
		validateSnapshot(a.validate, "consumables", data.Consumables),
	); err != nil {
		return err
	}

	a.Members.Set(slices.Clone(data.Members))
	a.Items.Set(slices.Clone(data.Items))
	a.Cycles.Set(slices.Clone(data.Cycles))
	a.Drying.Set(slices.Clone(data.Drying))
	a.Consumables.Set(slices.Clone(data.Consumables))
	return nil
}

// Snapshot returns the current value of the five seedable collections.
func (a *App) Snapshot() seed.Data {
	return seed.Data{
		Members:     a.Members.Get(),
		Items:       a.Items.Get(),
		Cycles:      a.Cycles.Get(),
		Drying:      a.Drying.Get(),
		Consumables: a.Consumables.Get(),
	}
}

// UpsertPushSubscription stores sub, replacing any subscription with the same
// endpoint. The original CreatedAt is kept on replacement. A subscription
// without topics is subscribed to all of them.
func (a *App) UpsertPushSubscription(sub model.PushSubscription) error {
	if len(sub.Topics) == 0 {
		sub.Topics = model.AllTopics()
	} else {
		sub.Topics = slices.Clone(sub.Topics)
	}
	if err := validateSnapshot(a.validate, "subscriptions", []model.PushSubscription{sub}); err != nil {
		return err
	}

	a.pushMu.Lock()
	defer a.pushMu.Unlock()

	current := a.PushSubscriptions.Get()
	next := make([]model.PushSubscription, 0, len(current)+1)
	replaced := false
	for _, existing := range current {
		if existing.Endpoint == sub.Endpoint {
			sub.CreatedAt = existing.CreatedAt
			next = append(next, sub)
			replaced = true
			continue
		}
		next = append(next, existing)
	}
	if !replaced {
		if sub.CreatedAt.IsZero() {
			sub.CreatedAt = a.opts.Now().UTC()
		}
		next = append(next, sub)
	}
	a.PushSubscriptions.Set(next)
	return nil
}

// RemovePushSubscription deletes the subscription for endpoint and reports
// whether one existed.
func (a *App) RemovePushSubscription(endpoint string) bool {
	a.pushMu.Lock()
	defer a.pushMu.Unlock()

	current := a.PushSubscriptions.Get()
	next := slices.DeleteFunc(slices.Clone(current), func(s model.PushSubscription) bool {
		return s.Endpoint == endpoint
	})
	if len(next) == len(current) {
		return false
	}
	a.PushSubscriptions.Set(next)
	return true
}

// PushSubscription looks up a subscription by endpoint.
func (a *App) PushSubscription(endpoint string) (model.PushSubscription, bool) {
	return FindByID(a.PushSubscriptions.Get(), endpoint)
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report problems with the JSON field names clients send.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

func validateSnapshot[T model.Entity](v *validator.Validate, collection string, records []T) error {
	var problems []string
	seen := make(map[string]int, len(records))

	for i, rec := range records {
		if err := v.Struct(rec); err != nil {
			var fieldErrs validator.ValidationErrors
			if !errors.As(err, &fieldErrs) {
				problems = append(problems, fmt.Sprintf("%s[%d]: %v", collection, i, err))
				continue
			}
			for _, fe := range fieldErrs {
				problems = append(problems, fmt.Sprintf("%s[%d].%s", collection, i, describe(fe)))
			}
		}

		id := rec.EntityID()
		if first, dup := seen[id]; dup && id != "" {
			problems = append(problems, fmt.Sprintf("%s[%d]: duplicate id %q (first at %d)", collection, i, id, first))
			continue
		}
		seen[id] = i
	}

	if len(problems) > 0 {
		return &ValidationError{Collection: collection, Problems: problems}
	}
	return nil
}

func describe(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return field + ": is required"
	case "oneof":
		return fmt.Sprintf("%s: %q is not one of [%s]", field, fe.Value(), fe.Param())
	case "datetime":
		return fmt.Sprintf("%s: %q does not match layout %s", field, fe.Value(), fe.Param())
	case "gt", "gte", "lt", "lte":
		return fmt.Sprintf("%s: %v must be %s %s", field, fe.Value(), fe.Tag(), fe.Param())
	default:
		return fmt.Sprintf("%s: failed %s validation", field, fe.Tag())
	}
}
