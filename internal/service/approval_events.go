package service

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// ApprovalEvent is broadcast when a candidate crosses the all-documents-verified
// threshold. Downstream consumers (matching queue, admin dashboards) subscribe
// over Redis pub/sub or NATS.
type ApprovalEvent struct {
	Source      string    `json:"source"`
	CandidateID uint      `json:"candidate_id"`
	Email       string    `json:"email"`
	Name        string    `json:"name"`
	ApprovedAt  time.Time `json:"approved_at"`
}

// ApprovalPublisher fans approval events out to the configured brokers.
type ApprovalPublisher struct {
	redis   *redis.Client
	channel string
	nats    *nats.Conn
	subject string
	logger  zerolog.Logger
	nodeID  string
}

// NewApprovalPublisher constructs a publisher. Either broker may be nil;
// publishing to none is a no-op.
func NewApprovalPublisher(redisClient *redis.Client, natsConn *nats.Conn, channelBase string, logger zerolog.Logger) *ApprovalPublisher {
	channel := ""
	subject := ""
	if channelBase != "" {
		channel = channelBase + ":approvals"
		subject = strings.ReplaceAll(channelBase, ":", ".") + ".approvals"
	}

	return &ApprovalPublisher{
		redis:   redisClient,
		channel: channel,
		nats:    natsConn,
		subject: subject,
		logger:  logger.With().Str("component", "approval_publisher").Logger(),
		nodeID:  uuid.NewString(),
	}
}

// Publish broadcasts the event. Broker failures are logged, never returned:
// approval must not be rolled back because a subscriber channel is down.
func (p *ApprovalPublisher) Publish(ctx context.Context, event ApprovalEvent) {
	event.Source = p.nodeID

	payload, err := json.Marshal(event)
	if err != nil {
		p.logger.Error().Err(err).Msg("failed to marshal approval event")
		return
	}

	if p.redis != nil && p.channel != "" {
		if err := p.redis.Publish(ctx, p.channel, payload).Err(); err != nil {
			p.logger.Warn().Err(err).Msg("failed to publish approval event to redis")
		}
	}

	if p.nats != nil && p.subject != "" {
		if err := p.nats.Publish(p.subject, payload); err != nil {
			p.logger.Warn().Err(err).Msg("failed to publish approval event to nats")
		}
	}
}
