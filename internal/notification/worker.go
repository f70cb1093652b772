package notification

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"github.com/SherClockHolmes/webpush-go"

	"shepherd-laundry/internal/model"
	"shepherd-laundry/internal/store"
)

// Results passed to Recorder.AlertSent.
const (
	ResultSent    = "sent"
	ResultFailed  = "failed"
	ResultExpired = "expired"
	ResultDropped = "dropped"
)

// NotificationSender defines the interface for sending a web push notification.
type NotificationSender interface {
	Send(payload []byte, sub *webpush.Subscription, options *webpush.Options) (*http.Response, error)
}

// WebPushSender is a real implementation of NotificationSender using the webpush library.
type WebPushSender struct{}

// Send sends a notification using the webpush library.
func (s *WebPushSender) Send(payload []byte, sub *webpush.Subscription, options *webpush.Options) (*http.Response, error) {
	return webpush.SendNotification(payload, sub, options)
}

// Recorder observes delivery outcomes.
type Recorder interface {
	AlertSent(topic, result string)
}

type nopRecorder struct{}

func (nopRecorder) AlertSent(string, string) {}

// Alert is one push message for a topic.
type Alert struct {
	Topic model.AlertTopic `json:"topic"`
	Title string           `json:"title"`
	Body  string           `json:"body"`
	IDs   []string         `json:"ids"`
}

// WorkerPool manages a pool of workers for sending notifications.
type WorkerPool struct {
	size     int
	jobs     chan Alert
	app      *store.App
	webpush  *webpush.Options
	sender   NotificationSender
	recorder Recorder
}

// NewWorkerPool creates a new worker pool. recorder may be nil.
func NewWorkerPool(size int, app *store.App, webpushOptions *webpush.Options, recorder Recorder) *WorkerPool {
	if size <= 0 {
		size = 1
	}
	if recorder == nil {
		recorder = nopRecorder{}
	}
	return &WorkerPool{
		size:     size,
		jobs:     make(chan Alert, size*4),
		app:      app,
		webpush:  webpushOptions,
		sender:   &WebPushSender{},
		recorder: recorder,
	}
}

// Start launches the worker goroutines.
func (wp *WorkerPool) Start(ctx context.Context) {
	for i := 0; i < wp.size; i++ {
		go wp.worker(ctx, i)
	}
}

// worker is the actual worker goroutine.
func (wp *WorkerPool) worker(ctx context.Context, id int) {
	log.Printf("Worker %d started", id)
	for {
		select {
		case alert := <-wp.jobs:
			log.Printf("Worker %d processing %s alert", id, alert.Topic)
			wp.sendAlert(ctx, alert)
		case <-ctx.Done():
			log.Printf("Worker %d shutting down", id)
			return
		}
	}
}

// Dispatch queues an alert. It is called from store subscribers and therefore
// never blocks: when the queue is full the alert is dropped and logged.
func (wp *WorkerPool) Dispatch(alert Alert) {
	select {
	case wp.jobs <- alert:
	default:
		log.Printf("Notification queue full; dropping %s alert", alert.Topic)
		wp.recorder.AlertSent(string(alert.Topic), ResultDropped)
	}
}

// Jobs returns the jobs channel for testing.
func (wp *WorkerPool) Jobs() chan Alert {
	return wp.jobs
}

// sendAlert delivers alert to every subscription that opted into its topic.
func (wp *WorkerPool) sendAlert(ctx context.Context, alert Alert) {
	var targets []model.PushSubscription
	for _, sub := range wp.app.PushSubscriptions.Get() {
		if sub.Wants(alert.Topic) {
			targets = append(targets, sub)
		}
	}
	if len(targets) == 0 {
		return
	}

	payload, err := json.Marshal(alert)
	if err != nil {
		log.Printf("Error encoding %s alert: %v", alert.Topic, err)
		return
	}

	log.Printf("Sending %d notifications for %s", len(targets), alert.Topic)
	for _, sub := range targets {
		if ctx.Err() != nil {
			return
		}
		wp.sendNotification(sub, alert.Topic, payload)
	}
}

// sendNotification sends a single web push notification.
func (wp *WorkerPool) sendNotification(sub model.PushSubscription, topic model.AlertTopic, payload []byte) {
	wpSub := &webpush.Subscription{
		Endpoint: sub.Endpoint,
		Keys: webpush.Keys{
			P256dh: sub.P256DH,
			Auth:   sub.Auth,
		},
	}

	resp, err := wp.sender.Send(payload, wpSub, wp.webpush)
	if err != nil {
		log.Printf("Error sending notification to %s: %v", sub.Endpoint, err)
		wp.recorder.AlertSent(string(topic), ResultFailed)
		return
	}
	defer resp.Body.Close()

	// Handle expired subscriptions
	if resp.StatusCode == http.StatusGone || resp.StatusCode == http.StatusNotFound {
		log.Printf("Subscription for endpoint %s is expired. Deleting.", sub.Endpoint)
		wp.app.RemovePushSubscription(sub.Endpoint)
		wp.recorder.AlertSent(string(topic), ResultExpired)
		return
	}
	if resp.StatusCode >= 300 {
		log.Printf("Push service answered %d for %s", resp.StatusCode, sub.Endpoint)
		wp.recorder.AlertSent(string(topic), ResultFailed)
		return
	}
	wp.recorder.AlertSent(string(topic), ResultSent)
}
