package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/betichouu-bot/Poster-Point/internal/cart"
	"github.com/betichouu-bot/Poster-Point/internal/checkout"
	"github.com/betichouu-bot/Poster-Point/internal/offer"
)

type Publisher struct {
	ch  *amqp.Channel
	seq SequenceSource
}

func NewPublisher(conn *amqp.Connection, seq SequenceSource) (*Publisher, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("open channel: %w", err)
	}

	// Declare the exchange so publish never fails due to missing infra
	if err := declareEventsExchange(ch); err != nil {
		return nil, fmt.Errorf("declare %s: %w", EventsExchange, err)
	}

	return &Publisher{ch: ch, seq: seq}, nil
}

func (p *Publisher) Close() error {
	return p.ch.Close()
}

func (p *Publisher) PublishCartCheckedOut(ctx context.Context, correlationID string, snap cart.Snapshot, ord checkout.Order, res offer.Result) error {
	seq, err := p.seq.NextSequence(ctx, cartPartitionKey)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	ev := BuildCartCheckedOutEvent(snap, ord, res, EnvelopeOptions{
		CorrelationID: correlationID,
		PartitionKey:  cartPartitionKey,
		Sequence:      seq,
	})

	body, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", CartCheckedOutEventName, err)
	}

	return p.publishJSON(ctx, CartCheckedOutRoutingKey, body)
}

func (p *Publisher) publishJSON(ctx context.Context, routingKey string, body []byte) error {
	pubCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	return p.ch.PublishWithContext(
		pubCtx,
		EventsExchange,
		routingKey,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Body:         body,
		},
	)
}
