package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shepherd-laundry/internal/model"
	"shepherd-laundry/internal/seed"
	"shepherd-laundry/internal/store"
)

func TestRecorder_TracksStores(t *testing.T) {
	reg := prom.NewRegistry()
	r := NewRecorder(reg)

	app := store.New(seed.Default(), store.Options{})
	defer app.Close()
	r.Watch(app)
	defer r.Stop()

	assert.Equal(t, 10.0, testutil.ToFloat64(r.collectionSize.WithLabelValues("items")))
	assert.Equal(t, 4.0, testutil.ToFloat64(r.viewSize.WithLabelValues("hamper")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.viewSize.WithLabelValues("low_consumables")))
	assert.Equal(t, 0.0, testutil.ToFloat64(r.changes.WithLabelValues("items")))

	app.Items.Set([]model.LaundryItem{})
	assert.Equal(t, 0.0, testutil.ToFloat64(r.collectionSize.WithLabelValues("items")))
	assert.Equal(t, 0.0, testutil.ToFloat64(r.viewSize.WithLabelValues("hamper")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.changes.WithLabelValues("items")))

	r.Stop()
	app.Cycles.Set([]model.WashCycle{})
	assert.Equal(t, 5.0, testutil.ToFloat64(r.collectionSize.WithLabelValues("cycles")), "stopped recorder must not follow the stores")
}

func TestRecorder_AlertsAndHandler(t *testing.T) {
	reg := prom.NewRegistry()
	r := NewRecorder(reg)
	r.AlertSent("low-consumables", "sent")
	r.AlertSent("low-consumables", "sent")

	mfs, err := reg.Gather()
	require.NoError(t, err)
	require.NotEmpty(t, mfs)

	w := httptest.NewRecorder()
	Handler(reg).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.Contains(w.Body.String(), `shepherd_alerts_total{result="sent",topic="low-consumables"} 2`))
}
