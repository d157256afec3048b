package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/PranamRaj/football-connect/internal/mq"
	"go.uber.org/zap"
)

// Channel names for domain events.
const (
	ChannelRegistrations = "registrations"
	ChannelMemberships   = "memberships"
	ChannelSocial        = "social"
)

// Event types.
const (
	TypeRegistrationCompleted = "registration.completed"
	TypeMembershipRequested   = "membership.requested"
	TypePostCreated           = "social.post.created"
)

// Envelope is the JSON payload published for every domain event.
type Envelope struct {
	Type       string    `json:"type"`
	AccountID  int       `json:"account_id"`
	Role       string    `json:"role,omitempty"`
	EntityID   int       `json:"entity_id,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Publisher emits domain events onto the message broker. A nil Publisher
// is valid and drops everything, so callers never need a broker to run.
// Publish failures are logged and otherwise swallowed; events are
// best-effort notifications, not part of any transaction.
type Publisher struct {
	mq     *mq.MQ
	logger *zap.Logger
}

func NewPublisher(broker *mq.MQ, logger *zap.Logger) *Publisher {
	return &Publisher{mq: broker, logger: logger}
}

func (p *Publisher) publish(ctx context.Context, channel string, envelope Envelope) {
	if p == nil || p.mq == nil {
		return
	}
	envelope.OccurredAt = time.Now()

	data, err := json.Marshal(envelope)
	if err != nil {
		p.logger.Warn("failed to encode event", zap.String("type", envelope.Type), zap.Error(err))
		return
	}
	if _, err := p.mq.Publish(ctx, channel, data, map[string]string{"type": envelope.Type}); err != nil {
		p.logger.Warn("failed to publish event",
			zap.String("channel", channel),
			zap.String("type", envelope.Type),
			zap.Error(err),
		)
	}
}

// RegistrationCompleted announces a newly registered account.
func (p *Publisher) RegistrationCompleted(ctx context.Context, accountID int, role string) {
	p.publish(ctx, ChannelRegistrations, Envelope{
		Type:      TypeRegistrationCompleted,
		AccountID: accountID,
		Role:      role,
	})
}

// MembershipRequested announces a player's club join request.
func (p *Publisher) MembershipRequested(ctx context.Context, accountID, clubID int) {
	p.publish(ctx, ChannelMemberships, Envelope{
		Type:      TypeMembershipRequested,
		AccountID: accountID,
		EntityID:  clubID,
	})
}

// PostCreated announces a new feed post.
func (p *Publisher) PostCreated(ctx context.Context, accountID, postID int) {
	p.publish(ctx, ChannelSocial, Envelope{
		Type:      TypePostCreated,
		AccountID: accountID,
		EntityID:  postID,
	})
}
