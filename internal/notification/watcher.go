package notification

import (
	"fmt"
	"math"
	"strings"
	"sync"

	"shepherd-laundry/internal/labels"
	"shepherd-laundry/internal/model"
	"shepherd-laundry/internal/reactive"
	"shepherd-laundry/internal/store"
)

// Dispatcher accepts alerts for delivery.
type Dispatcher interface {
	Dispatch(alert Alert)
}

var titles = map[string]map[model.AlertTopic]string{
	"de": {
		model.TopicLowConsumables: "Vorrat fast leer",
		model.TopicUrgentItems:    "Dringende Wäsche",
		model.TopicOverdueItems:   "Wäsche überfällig",
	},
	"en": {
		model.TopicLowConsumables: "Supplies running low",
		model.TopicUrgentItems:    "Urgent laundry",
		model.TopicOverdueItems:   "Laundry overdue",
	},
}

// Watcher turns view changes into alerts. An alert is raised only for records
// that enter a view; the value a view holds when the watcher starts is taken as
// the baseline and never alerted.
type Watcher struct {
	app     *store.App
	out     Dispatcher
	catalog labels.Catalog
	mu      sync.Mutex
	unsubs  []func()
}

// NewWatcher creates a watcher writing messages in catalog's language.
func NewWatcher(app *store.App, out Dispatcher, catalog labels.Catalog) *Watcher {
	return &Watcher{app: app, out: out, catalog: catalog}
}

// Start subscribes to the alerting views.
func (w *Watcher) Start() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if len(w.unsubs) > 0 {
		return
	}
	w.unsubs = append(w.unsubs,
		watchEntering(w.app.LowConsumables, func(entered []model.Consumable) {
			w.out.Dispatch(w.lowConsumablesAlert(entered))
		}),
		watchEntering(w.app.UrgentItems, func(entered []model.LaundryItem) {
			w.out.Dispatch(w.itemsAlert(model.TopicUrgentItems, entered, true))
		}),
		watchEntering(w.app.OverdueItems, func(entered []model.LaundryItem) {
			w.out.Dispatch(w.itemsAlert(model.TopicOverdueItems, entered, false))
		}),
	)
}

// Stop unsubscribes from all views.
func (w *Watcher) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()
	for _, unsub := range w.unsubs {
		unsub()
	}
	w.unsubs = nil
}

func (w *Watcher) title(topic model.AlertTopic) string {
	if t, ok := titles[w.catalog.Language][topic]; ok {
		return t
	}
	return titles["de"][topic]
}

func (w *Watcher) lowConsumablesAlert(entered []model.Consumable) Alert {
	parts := make([]string, 0, len(entered))
	ids := make([]string, 0, len(entered))
	for _, c := range entered {
		ratio, _ := c.FillRatio()
		parts = append(parts, fmt.Sprintf("%s (%s): %d%%", c.Name, labels.Label(w.catalog.Category, string(c.Category)), int(math.Round(ratio*100))))
		ids = append(ids, c.ID)
	}
	return Alert{
		Topic: model.TopicLowConsumables,
		Title: w.title(model.TopicLowConsumables),
		Body:  strings.Join(parts, ", "),
		IDs:   ids,
	}
}

func (w *Watcher) itemsAlert(topic model.AlertTopic, entered []model.LaundryItem, withPriority bool) Alert {
	parts := make([]string, 0, len(entered))
	ids := make([]string, 0, len(entered))
	for _, it := range entered {
		text := it.Name
		if withPriority {
			text = fmt.Sprintf("%s (%s)", it.Name, labels.Label(w.catalog.Priority, string(it.Priority)))
		}
		if owner, ok := w.app.Owner(it); ok {
			text += " · " + owner.Name
		}
		parts = append(parts, text)
		ids = append(ids, it.ID)
	}
	return Alert{
		Topic: topic,
		Title: w.title(topic),
		Body:  strings.Join(parts, ", "),
		IDs:   ids,
	}
}

// watchEntering calls onEnter with the records present in a new value of view
// that were absent from the previous one.
func watchEntering[T model.Entity](view reactive.Readable[[]T], onEnter func([]T)) func() {
	var (
		mu   sync.Mutex
		seen map[string]bool
	)
	return view.Subscribe(func(records []T) {
		mu.Lock()
		current := make(map[string]bool, len(records))
		var entered []T
		for _, r := range records {
			current[r.EntityID()] = true
			if seen != nil && !seen[r.EntityID()] {
				entered = append(entered, r)
			}
		}
		seen = current
		mu.Unlock()

		if len(entered) > 0 {
			onEnter(entered)
		}
	})
}
