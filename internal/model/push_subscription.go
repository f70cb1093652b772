package model

import "time"

// AlertTopic is a class of alert a push subscription can opt into.
type AlertTopic string

const (
	TopicLowConsumables AlertTopic = "low-consumables"
	TopicUrgentItems    AlertTopic = "urgent-items"
	TopicOverdueItems   AlertTopic = "overdue-items"
)

// PushSubscription holds the information for a browser push subscription.
type PushSubscription struct {
	Endpoint  string       `json:"endpoint" yaml:"endpoint" validate:"required,url"`
	P256DH    string       `json:"p256dh" yaml:"p256dh" validate:"required"`
	Auth      string       `json:"auth" yaml:"auth" validate:"required"`
	Topics    []AlertTopic `json:"topics" yaml:"topics" validate:"dive,oneof=low-consumables urgent-items overdue-items"`
	CreatedAt time.Time    `json:"createdAt" yaml:"createdAt"`
}

// EntityID returns the endpoint, which identifies a subscription.
func (p PushSubscription) EntityID() string { return p.Endpoint }

// Wants reports whether the subscription opted into topic.
func (p PushSubscription) Wants(topic AlertTopic) bool {
	for _, t := range p.Topics {
		if t == topic {
			return true
		}
	}
	return false
}

// AllTopics lists every alert topic. store.App.UpsertPushSubscription gives
// them all to a subscription stored without topics.
func AllTopics() []AlertTopic {
	return []AlertTopic{TopicLowConsumables, TopicUrgentItems, TopicOverdueItems}
}
