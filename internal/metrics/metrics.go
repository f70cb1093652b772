// Package metrics exposes collection and alert metrics to Prometheus.
package metrics

import (
	"net/http"
	"sync"

	prom "github.com/prometheus/client_golang/prometheus"
	promhttp "github.com/prometheus/client_golang/prometheus/promhttp"

	"shepherd-laundry/internal/reactive"
	"shepherd-laundry/internal/store"
)

// Recorder keeps gauges in step with the stores by subscribing to them, and
// counts alert deliveries.
type Recorder struct {
	collectionSize *prom.GaugeVec
	viewSize       *prom.GaugeVec
	changes        *prom.CounterVec
	alerts         *prom.CounterVec

	mu     sync.Mutex
	unsubs []func()
}

// NewRecorder constructs and registers the metrics on reg.
func NewRecorder(reg *prom.Registry) *Recorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	r := &Recorder{
		collectionSize: prom.NewGaugeVec(prom.GaugeOpts{
			Namespace: "shepherd",
			Name:      "collection_size",
			Help:      "Number of records in each collection store",
		}, []string{"collection"}),
		viewSize: prom.NewGaugeVec(prom.GaugeOpts{
			Namespace: "shepherd",
			Name:      "view_size",
			Help:      "Number of records in each derived view",
		}, []string{"view"}),
		changes: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "shepherd",
			Name:      "collection_changes_total",
			Help:      "Snapshot replacements per collection store",
		}, []string{"collection"}),
		alerts: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "shepherd",
			Name:      "alerts_total",
			Help:      "Push alert deliveries by topic and result",
		}, []string{"topic", "result"}),
	}
	reg.MustRegister(r.collectionSize, r.viewSize, r.changes, r.alerts)
	return r
}

// Watch subscribes to every store and view of app. Calling it again replaces the
// previous subscriptions.
func (r *Recorder) Watch(app *store.App) {
	r.Stop()

	unsubs := []func(){
		trackCollection(r, "members", app.Members),
		trackCollection(r, "items", app.Items),
		trackCollection(r, "cycles", app.Cycles),
		trackCollection(r, "drying", app.Drying),
		trackCollection(r, "consumables", app.Consumables),
		trackCollection(r, "push_subscriptions", app.PushSubscriptions),
		trackView(r, "hamper", app.HamperItems),
		trackView(r, "active_cycles", app.ActiveCycles),
		trackView(r, "low_consumables", app.LowConsumables),
		trackView(r, "urgent", app.UrgentItems),
		trackView(r, "overdue", app.OverdueItems),
	}

	r.mu.Lock()
	r.unsubs = unsubs
	r.mu.Unlock()
}

// Stop removes all subscriptions made by Watch.
func (r *Recorder) Stop() {
	r.mu.Lock()
	unsubs := r.unsubs
	r.unsubs = nil
	r.mu.Unlock()
	for _, unsub := range unsubs {
		unsub()
	}
}

// AlertSent implements notification.Recorder.
func (r *Recorder) AlertSent(topic, result string) {
	r.alerts.WithLabelValues(topic, result).Inc()
}

func trackCollection[T any](r *Recorder, name string, src reactive.Readable[[]T]) func() {
	gauge := r.collectionSize.WithLabelValues(name)
	changes := r.changes.WithLabelValues(name)
	first := true
	return src.Subscribe(func(v []T) {
		gauge.Set(float64(len(v)))
		if first {
			first = false
			return
		}
		changes.Inc()
	})
}

func trackView[T any](r *Recorder, name string, src reactive.Readable[[]T]) func() {
	gauge := r.viewSize.WithLabelValues(name)
	return src.Subscribe(func(v []T) {
		gauge.Set(float64(len(v)))
	})
}

// Handler serves the registry in the Prometheus exposition format.
func Handler(reg *prom.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{EnableOpenMetrics: true})
}
