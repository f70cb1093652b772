package api

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"shepherd-laundry/internal/reactive"
)

// heartbeatInterval keeps idle event streams alive through proxies.
var heartbeatInterval = 25 * time.Second

// eventSource subscribes emit to a store or view, presenting every value with p.
type eventSource func(p presenter, emit func(any)) (unsubscribe func())

func feed[T any, V any](src reactive.Readable[[]T], present func(presenter, []T) V) eventSource {
	return func(p presenter, emit func(any)) func() {
		return src.Subscribe(func(v []T) { emit(present(p, v)) })
	}
}

func (h *Handler) eventSources() map[string]eventSource {
	return map[string]eventSource{
		"items":           feed(h.app.Items, presenter.items),
		"cycles":          feed(h.app.Cycles, presenter.cycles),
		"drying":          feed(h.app.Drying, presenter.drying),
		"consumables":     feed(h.app.Consumables, presenter.consumables),
		"members":         feed(h.app.Members, presenter.members),
		"hamper":          feed(h.app.HamperItems, presenter.items),
		"active-cycles":   feed(h.app.ActiveCycles, presenter.cycles),
		"low-consumables": feed(h.app.LowConsumables, presenter.consumables),
		"urgent":          feed(h.app.UrgentItems, presenter.items),
		"overdue":         feed(h.app.OverdueItems, presenter.items),
	}
}

// GetEvents streams a store or view as server-sent events. The first event is
// the current value. A client that reads slower than the store changes only
// sees the latest value.
func (h *Handler) GetEvents(c *gin.Context) {
	name := c.Param("name")
	src, ok := h.eventSources()[name]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown event stream"})
		return
	}

	latest := make(chan any, 1)
	emit := func(v any) {
		for {
			select {
			case latest <- v:
				return
			default:
				select {
				case <-latest:
				default:
				}
			}
		}
	}
	unsubscribe := src(h.presenter(c), emit)
	defer unsubscribe()

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Status(http.StatusOK)
	c.Writer.Flush()

	heartbeat := time.NewTicker(heartbeatInterval)
	defer heartbeat.Stop()

	ctx := c.Request.Context()
	for {
		select {
		case <-ctx.Done():
			log.Printf("Event stream %s closed by client", name)
			return
		case v := <-latest:
			c.SSEvent(name, v)
			c.Writer.Flush()
		case <-heartbeat.C:
			if _, err := c.Writer.WriteString(": ping\n\n"); err != nil {
				return
			}
			c.Writer.Flush()
		}
	}
}
