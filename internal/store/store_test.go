package store

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shepherd-laundry/internal/model"
	"shepherd-laundry/internal/seed"
)

// seedDay is the day the demo data was recorded on.
var seedDay = time.Date(2026, 2, 24, 9, 0, 0, 0, time.UTC)

func newTestApp(t *testing.T) *App {
	t.Helper()
	app := New(seed.Default(), Options{
		Location: time.UTC,
		Now:      func() time.Time { return seedDay },
	})
	t.Cleanup(app.Close)
	return app
}

func ids[T model.Entity](records []T) []string {
	out := make([]string, 0, len(records))
	for _, r := range records {
		out = append(out, r.EntityID())
	}
	return out
}

func TestApp_SeededViews(t *testing.T) {
	app := newTestApp(t)

	testCases := []struct {
		name     string
		got      func() []string
		expected []string
	}{
		{name: "hamper items", got: func() []string { return ids(app.HamperItems.Get()) }, expected: []string{"i1", "i3", "i4", "i9"}},
		{name: "active cycles", got: func() []string { return ids(app.ActiveCycles.Get()) }, expected: []string{"c2", "c3", "c4", "c5"}},
		{name: "urgent items", got: func() []string { return ids(app.UrgentItems.Get()) }, expected: []string{"i3", "i4", "i6"}},
		// s3 sits exactly on 150/500 = 0.3 and is excluded by the strict comparison.
		{name: "low consumables", got: func() []string { return ids(app.LowConsumables.Get()) }, expected: []string{"s4"}},
		{name: "overdue items", got: func() []string { return ids(app.OverdueItems.Get()) }, expected: []string{"i3", "i4"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, tc.got())
		})
	}
}

func TestApp_ViewsFollowStoreWrites(t *testing.T) {
	app := newTestApp(t)

	var notifications [][]model.WashCycle
	unsubscribe := app.ActiveCycles.Subscribe(func(v []model.WashCycle) {
		notifications = append(notifications, v)
	})
	defer unsubscribe()
	require.Len(t, notifications, 1)

	app.Cycles.Set([]model.WashCycle{})

	assert.Empty(t, app.ActiveCycles.Get())
	require.Len(t, notifications, 2, "replacing cycles must notify exactly once")
	assert.Empty(t, notifications[1])
}

func TestApp_ItemsWriteUpdatesBothItemViews(t *testing.T) {
	app := newTestApp(t)

	items := seed.Default().Items
	for i := range items {
		items[i].Status = model.ItemClean
		items[i].Priority = model.PriorityLow
	}
	items[9].Status = model.ItemHamper
	items[9].Priority = model.PriorityUrgent
	app.Items.Set(items)

	assert.Equal(t, []string{"i10"}, ids(app.HamperItems.Get()))
	assert.Equal(t, []string{"i10"}, ids(app.UrgentItems.Get()))
}

func TestApp_LowConsumablesThreshold(t *testing.T) {
	testCases := []struct {
		name      string
		threshold float64
		expected  []string
	}{
		{name: "default", threshold: 0, expected: []string{"s4"}},
		{name: "raised", threshold: 0.41, expected: []string{"s1", "s2", "s3", "s4"}},
		{name: "lowered", threshold: 0.2, expected: []string{}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			app := New(seed.Default(), Options{LowConsumableRatio: tc.threshold})
			defer app.Close()
			assert.Equal(t, tc.expected, ids(app.LowConsumables.Get()))
		})
	}
}

func TestApp_LowConsumablesIgnoresZeroMax(t *testing.T) {
	app := newTestApp(t)

	app.Consumables.Set([]model.Consumable{
		{ID: "z0", Name: "Leer", Category: model.CategoryOther, CurrentAmount: 0, MaxAmount: 0},
		{ID: "z1", Name: "Kaputt", Category: model.CategoryOther, CurrentAmount: 5, MaxAmount: 0},
		{ID: "z2", Name: "Fast leer", Category: model.CategoryOther, CurrentAmount: 1, MaxAmount: 10},
	})
	assert.Equal(t, []string{"z2"}, ids(app.LowConsumables.Get()))
}

func TestApp_OverdueFollowsToday(t *testing.T) {
	app := newTestApp(t)

	var counts []int
	unsubscribe := app.OverdueItems.Subscribe(func(v []model.LaundryItem) { counts = append(counts, len(v)) })
	defer unsubscribe()

	assert.False(t, app.AdvanceDay(seedDay.Add(3*time.Hour)), "same day must not republish")
	assert.Equal(t, []int{2}, counts)

	require.True(t, app.AdvanceDay(seedDay.AddDate(0, 0, 3)))
	// On the 27th i1 (due 27th) is still fine; i9 (due 26th) is now overdue.
	assert.Equal(t, []string{"i3", "i4", "i9"}, ids(app.OverdueItems.Get()))
	assert.Equal(t, []int{2, 3}, counts)
}

func TestApp_ReplaceItems(t *testing.T) {
	testCases := []struct {
		name    string
		mutate  func(items []model.LaundryItem) []model.LaundryItem
		wantErr bool
	}{
		{
			name:   "valid snapshot",
			mutate: func(items []model.LaundryItem) []model.LaundryItem { return items[:3] },
		},
		{
			name:   "empty snapshot",
			mutate: func([]model.LaundryItem) []model.LaundryItem { return []model.LaundryItem{} },
		},
		{
			name: "unknown status",
			mutate: func(items []model.LaundryItem) []model.LaundryItem {
				items[0].Status = "folded"
				return items
			},
			wantErr: true,
		},
		{
			name: "non-positive hygiene limit",
			mutate: func(items []model.LaundryItem) []model.LaundryItem {
				items[1].HygieneLimit = 0
				return items
			},
			wantErr: true,
		},
		{
			name: "malformed date",
			mutate: func(items []model.LaundryItem) []model.LaundryItem {
				bad := "24.02.2026"
				items[2].LastWashed = &bad
				return items
			},
			wantErr: true,
		},
		{
			name: "duplicate id",
			mutate: func(items []model.LaundryItem) []model.LaundryItem {
				items[4].ID = items[0].ID
				return items
			},
			wantErr: true,
		},
		{
			name: "dangling owner is tolerated",
			mutate: func(items []model.LaundryItem) []model.LaundryItem {
				items[0].Owner = "m404"
				return items
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			app := newTestApp(t)
			before := app.Items.Get()

			notified := 0
			unsubscribe := app.HamperItems.Subscribe(func([]model.LaundryItem) { notified++ })
			defer unsubscribe()

			next := tc.mutate(seed.Default().Items)
			err := app.ReplaceItems(next)

			if tc.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidSnapshot)
				var verr *ValidationError
				require.True(t, errors.As(err, &verr))
				assert.Equal(t, "items", verr.Collection)
				assert.NotEmpty(t, verr.Problems)
				assert.Equal(t, before, app.Items.Get(), "a rejected snapshot must not be applied")
				assert.Equal(t, 1, notified)
			} else {
				require.NoError(t, err)
				assert.Equal(t, next, app.Items.Get())
				assert.Equal(t, 2, notified)
			}
		})
	}
}

func TestApp_ReplaceOtherCollections(t *testing.T) {
	app := newTestApp(t)

	cycles := seed.Default().Cycles
	cycles[0].MachineLoad = 120
	assert.ErrorIs(t, app.ReplaceCycles(cycles), ErrInvalidSnapshot)

	sessions := seed.Default().Drying
	sessions[0].StartedAt = "2026-02-24 09:30"
	assert.ErrorIs(t, app.ReplaceDrying(sessions), ErrInvalidSnapshot)

	cons := seed.Default().Consumables
	cons[0].MaxAmount = 0
	assert.ErrorIs(t, app.ReplaceConsumables(cons), ErrInvalidSnapshot)

	members := seed.Default().Members
	members[0].Role = "owner"
	assert.ErrorIs(t, app.ReplaceMembers(members), ErrInvalidSnapshot)

	assert.Equal(t, seed.Default(), app.Snapshot())

	require.NoError(t, app.ReplaceCycles(seed.Default().Cycles[:1]))
	assert.Empty(t, app.ActiveCycles.Get())
	require.NoError(t, app.ReplaceMembers(seed.Default().Members[:1]))
	assert.Len(t, app.Members.Get(), 1)
}

func TestApp_ReplaceAllIsAllOrNothing(t *testing.T) {
	app := newTestApp(t)

	data := seed.Default()
	data.Items = data.Items[:1]
	data.Consumables[0].Category = "perfume"

	err := app.ReplaceAll(data)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidSnapshot)
	assert.Len(t, app.Items.Get(), 10, "valid collections of a rejected set must not be applied either")

	data.Consumables[0].Category = model.CategoryOther
	require.NoError(t, app.ReplaceAll(data))
	assert.Len(t, app.Items.Get(), 1)
	assert.Equal(t, model.CategoryOther, app.Consumables.Get()[0].Category)
}

func TestApp_ReplaceCopiesInput(t *testing.T) {
	app := newTestApp(t)

	items := seed.Default().Items
	require.NoError(t, app.ReplaceItems(items))
	items[0].Name = "mutated after replace"

	assert.Equal(t, "Weiße T-Shirts (x5)", app.Items.Get()[0].Name)
}

func TestApp_PushSubscriptions(t *testing.T) {
	app := newTestApp(t)

	sub := model.PushSubscription{
		Endpoint: "https://push.example.com/abc",
		P256DH:   "key",
		Auth:     "auth",
		Topics:   []model.AlertTopic{model.TopicLowConsumables},
	}
	require.NoError(t, app.UpsertPushSubscription(sub))

	stored, ok := app.PushSubscription(sub.Endpoint)
	require.True(t, ok)
	assert.Equal(t, seedDay, stored.CreatedAt)
	assert.True(t, stored.Wants(model.TopicLowConsumables))
	assert.False(t, stored.Wants(model.TopicUrgentItems))

	sub.Topics = []model.AlertTopic{model.TopicUrgentItems}
	sub.CreatedAt = seedDay.Add(time.Hour)
	require.NoError(t, app.UpsertPushSubscription(sub))
	require.Len(t, app.PushSubscriptions.Get(), 1)
	stored, _ = app.PushSubscription(sub.Endpoint)
	assert.Equal(t, seedDay, stored.CreatedAt, "creation time survives replacement")
	assert.True(t, stored.Wants(model.TopicUrgentItems))

	bad := sub
	bad.Topics = []model.AlertTopic{"weather"}
	assert.ErrorIs(t, app.UpsertPushSubscription(bad), ErrInvalidSnapshot)

	all := model.PushSubscription{Endpoint: "https://push.example.com/all", P256DH: "key", Auth: "auth"}
	require.NoError(t, app.UpsertPushSubscription(all))
	stored, ok = app.PushSubscription(all.Endpoint)
	require.True(t, ok)
	assert.Equal(t, model.AllTopics(), stored.Topics)
	for _, topic := range model.AllTopics() {
		assert.True(t, stored.Wants(topic))
	}

	assert.True(t, app.RemovePushSubscription(sub.Endpoint))
	assert.False(t, app.RemovePushSubscription(sub.Endpoint))
	_, ok = app.PushSubscription(sub.Endpoint)
	assert.False(t, ok)
}
