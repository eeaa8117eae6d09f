package workers

import (
	"context"
	"encoding/json"
	"log/slog"

	"claimerapi/contexts/snapshot-claims/claim-service/application/commands"
	"claimerapi/contexts/snapshot-claims/claim-service/ports"
	"claimerapi/internal/shared/events"
)

const defaultNotifyConsumerGroup = "claim-service-notify-cg"

// NotifyConsumer forwards verified-claim events to the external notification
// sink. Delivery is best effort: a failed post is logged and dropped, never
// retried and never surfaced to the claimant.
type NotifyConsumer struct {
	Subscriber    ports.EventSubscriber
	Notifier      ports.Notifier
	ConsumerGroup string
	Logger        *slog.Logger
}

func (c NotifyConsumer) Start(ctx context.Context) error {
	logger := resolveLogger(c.Logger)
	group := c.ConsumerGroup
	if group == "" {
		group = defaultNotifyConsumerGroup
	}
	if err := c.Subscriber.Subscribe(ctx, commands.TopicClaimVerified, group, c.handle); err != nil {
		logger.Error("notify consumer subscribe failed",
			"event", "claim_notify_subscribe_failed",
			"module", "snapshot-claims/claim-service",
			"layer", "worker",
			"topic", commands.TopicClaimVerified,
			"consumer_group", group,
			"error", err.Error(),
		)
		return err
	}
	logger.Info("notify consumer subscribed",
		"event", "claim_notify_subscribed",
		"module", "snapshot-claims/claim-service",
		"layer", "worker",
		"topic", commands.TopicClaimVerified,
		"consumer_group", group,
	)
	return nil
}

func (c NotifyConsumer) handle(ctx context.Context, event events.Envelope) error {
	logger := resolveLogger(c.Logger)

	notification, ok := event.Payload.(ports.ClaimVerifiedNotification)
	if !ok {
		// Envelope payloads that crossed a wire arrive as raw JSON.
		raw, err := json.Marshal(event.Payload)
		if err == nil {
			err = json.Unmarshal(raw, &notification)
		}
		if err != nil {
			logger.Error("verified claim event decode failed",
				"event", "claim_notify_decode_failed",
				"module", "snapshot-claims/claim-service",
				"layer", "worker",
				"event_id", event.EventID,
				"error", err.Error(),
			)
			return nil
		}
	}

	if err := c.Notifier.NotifyClaimVerified(ctx, notification); err != nil {
		logger.Error("claim notification delivery failed",
			"event", "claim_notify_delivery_failed",
			"module", "snapshot-claims/claim-service",
			"layer", "worker",
			"event_id", event.EventID,
			"destination_address", notification.DestinationAddress,
			"error", err.Error(),
		)
		return nil
	}

	logger.Info("claim notification delivered",
		"event", "claim_notify_delivered",
		"module", "snapshot-claims/claim-service",
		"layer", "worker",
		"event_id", event.EventID,
		"destination_address", notification.DestinationAddress,
	)
	return nil
}

func resolveLogger(logger *slog.Logger) *slog.Logger {
	if logger == nil {
		return slog.Default()
	}
	return logger
}
