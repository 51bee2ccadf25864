package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	gcppubsub "cloud.google.com/go/pubsub/v2"
	"github.com/agritrade/agritrade-backend/pkg/enums"
	"github.com/google/uuid"
)

const defaultPublishTimeout = 10 * time.Second

const envelopeVersion = 1

type publisher interface {
	Publish(ctx context.Context, msg *gcppubsub.Message) publishResult
}

type publishResult interface {
	Get(ctx context.Context) (string, error)
}

// Publisher serializes bid lifecycle events and publishes them on the bid
// events topic. Delivery is best effort; callers log and continue on error.
type Publisher struct {
	pub publisher
}

// NewPublisher wraps a Pub/Sub topic publisher. A nil handle yields a no-op
// publisher so local setups can run without GCP credentials.
func NewPublisher(pub *gcppubsub.Publisher) *Publisher {
	return &Publisher{pub: newGCPPublisher(pub)}
}

// PublishBidEvent builds the envelope and publishes a single bid event.
func (p *Publisher) PublishBidEvent(ctx context.Context, eventType enums.BidEventType, actor *ActorRef, data BidEventData) error {
	if p == nil || p.pub == nil {
		return nil
	}
	if !eventType.IsValid() {
		return fmt.Errorf("invalid bid event type %q", eventType)
	}

	raw, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("marshal bid event data: %w", err)
	}

	now := time.Now().UTC()
	envelope := Envelope{
		Version:    envelopeVersion,
		EventID:    uuid.NewString(),
		EventType:  eventType,
		OccurredAt: now,
		Actor:      actor,
		Data:       raw,
	}
	payload, err := json.Marshal(envelope)
	if err != nil {
		return fmt.Errorf("marshal bid event envelope: %w", err)
	}

	msg := &gcppubsub.Message{
		Data: payload,
		Attributes: map[string]string{
			"event_id":       envelope.EventID,
			"event_type":     string(eventType),
			"aggregate_type": string(enums.AggregateBid),
			"aggregate_id":   data.BidID.String(),
			"created_at":     now.Format(time.RFC3339Nano),
		},
	}

	publishCtx, cancel := context.WithTimeout(ctx, defaultPublishTimeout)
	defer cancel()
	result := p.pub.Publish(publishCtx, msg)
	if result == nil {
		return errors.New("publisher returned nil result")
	}
	if _, err := result.Get(publishCtx); err != nil {
		return fmt.Errorf("publish %s: %w", eventType, err)
	}
	return nil
}

func newGCPPublisher(p *gcppubsub.Publisher) publisher {
	if p == nil {
		return nil
	}
	return &gcpPublisher{Publisher: p}
}

type gcpPublisher struct {
	*gcppubsub.Publisher
}

func (p *gcpPublisher) Publish(ctx context.Context, msg *gcppubsub.Message) publishResult {
	if p == nil || p.Publisher == nil {
		return nil
	}
	return &gcpPublishResult{PublishResult: p.Publisher.Publish(ctx, msg)}
}

type gcpPublishResult struct {
	*gcppubsub.PublishResult
}

func (r *gcpPublishResult) Get(ctx context.Context) (string, error) {
	if r == nil || r.PublishResult == nil {
		return "", errors.New("publish result is nil")
	}
	return r.PublishResult.Get(ctx)
}
