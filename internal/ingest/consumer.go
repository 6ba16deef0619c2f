// Package ingest consumes audit-log records published by the transactional
// backend and appends them to the history store. One Kafka message carries one
// audited row change.
package ingest

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/twmb/franz-go/pkg/kgo"

	"movehistory/internal/history/models"
	"movehistory/internal/history/store"
	"movehistory/internal/historyevents"
	"movehistory/internal/platform/config"
)

// auditMessage is the wire form of one audit row on the ingest topic. Value
// payloads stay as raw JSON; the store keeps them verbatim and the engine
// decodes them at render time.
type auditMessage struct {
	ID                   string          `json:"id"`
	MoveLocator          string          `json:"moveLocator"`
	ObjectID             string          `json:"objectId"`
	Action               string          `json:"action"`
	EventName            string          `json:"eventName"`
	TableName            string          `json:"tableName"`
	OldValues            json.RawMessage `json:"oldValues"`
	ChangedValues        json.RawMessage `json:"changedValues"`
	Context              json.RawMessage `json:"context"`
	SessionUserFirstName string          `json:"sessionUserFirstName"`
	SessionUserLastName  string          `json:"sessionUserLastName"`
	ActionTstamp         time.Time       `json:"actionTstamp"`
}

// Consumer pulls audit records off Kafka and appends them to the store.
// Appends are idempotent by row ID, so the default at-least-once delivery is
// safe to replay.
type Consumer struct {
	client *kgo.Client
	store  store.Store
	logger *slog.Logger
}

// NewConsumer connects a consumer-group client for the configured topic.
func NewConsumer(cfg config.KafkaConfig, st store.Store, logger *slog.Logger) (*Consumer, error) {
	client, err := kgo.NewClient(
		kgo.SeedBrokers(cfg.Brokers...),
		kgo.ConsumerGroup(cfg.Group),
		kgo.ConsumeTopics(cfg.Topic),
	)
	if err != nil {
		return nil, fmt.Errorf("create kafka client: %w", err)
	}
	return &Consumer{
		client: client,
		store:  st,
		logger: logger,
	}, nil
}

// Run polls until the context is cancelled. Malformed messages are logged and
// skipped rather than wedging the partition; store failures are logged and the
// message is dropped, which trades a lost row for forward progress.
func (c *Consumer) Run(ctx context.Context) error {
	c.logger.Info("starting audit ingest consumer")
	for {
		fetches := c.client.PollFetches(ctx)
		if fetches.IsClientClosed() || ctx.Err() != nil {
			return nil
		}
		fetches.EachError(func(topic string, partition int32, err error) {
			c.logger.Error("kafka fetch error",
				"topic", topic,
				"partition", partition,
				"error", err,
			)
		})
		fetches.EachRecord(func(rec *kgo.Record) {
			c.handle(ctx, rec.Key, rec.Value)
		})
	}
}

// Close shuts the Kafka client down, committing outstanding offsets.
func (c *Consumer) Close() {
	c.client.Close()
}

func (c *Consumer) handle(ctx context.Context, key, value []byte) {
	var msg auditMessage
	if err := json.Unmarshal(value, &msg); err != nil {
		c.logger.Warn("skipping malformed audit message",
			"key", string(key),
			"error", err,
		)
		return
	}
	if msg.MoveLocator == "" {
		c.logger.Warn("skipping audit message without move locator", "key", string(key))
		return
	}

	row := models.AuditHistory{
		ID:                   parseOrNewUUID(msg.ID),
		MoveLocator:          msg.MoveLocator,
		ObjectID:             parseUUID(msg.ObjectID),
		Action:               msg.Action,
		EventName:            msg.EventName,
		TableName:            msg.TableName,
		OldData:              msg.OldValues,
		ChangedData:          msg.ChangedValues,
		Context:              msg.Context,
		SessionUserFirstName: msg.SessionUserFirstName,
		SessionUserLastName:  msg.SessionUserLastName,
		ActionTstamp:         msg.ActionTstamp,
	}

	if err := c.store.Append(ctx, row); err != nil {
		c.logger.Error("failed to append audit row",
			"locator", row.MoveLocator,
			"event_name", row.EventName,
			"error", err,
		)
		return
	}

	// Render eagerly at debug level; classification problems surface in logs
	// long before someone opens the timeline.
	rendered := historyevents.RenderHistoryEvent(row.ToRecord())
	c.logger.DebugContext(ctx, "ingested audit row",
		"locator", row.MoveLocator,
		"event_name", row.EventName,
		"table_name", row.TableName,
		"title", rendered.Title,
	)
}

func parseOrNewUUID(s string) uuid.UUID {
	if id, err := uuid.Parse(s); err == nil {
		return id
	}
	return uuid.New()
}

func parseUUID(s string) uuid.UUID {
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.UUID{}
	}
	return id
}
