package events

import (
	"time"

	"github.com/google/uuid"

	"github.com/betichouu-bot/Poster-Point/internal/cart"
	"github.com/betichouu-bot/Poster-Point/internal/checkout"
	"github.com/betichouu-bot/Poster-Point/internal/offer"
)

const (
	CartCheckedOutEventName    = "CartCheckedOut"
	CartCheckedOutEventVersion = 1

	producerName = "storefront-go"
)

// EventEnvelope is the wire contract shared with downstream consumers.
type EventEnvelope struct {
	EventName     string                `json:"eventName"`
	EventVersion  int                   `json:"eventVersion"`
	EventID       string                `json:"eventId"`
	CorrelationID string                `json:"correlationId"`
	Producer      string                `json:"producer"`
	PartitionKey  string                `json:"partitionKey"`
	Sequence      int64                 `json:"sequence"`
	OccurredAt    time.Time             `json:"occurredAt"`
	Payload       CartCheckedOutPayload `json:"payload"`
}

type CartCheckedOutPayload struct {
	OrderRef     string               `json:"orderRef"`
	Items        []CartCheckedOutItem `json:"items"`
	RawTotal     int                  `json:"rawTotal"`
	Discount     int                  `json:"discount"`
	Payable      int                  `json:"payable"`
	FreeUnits    int                  `json:"freeUnits"`
	OfferMessage string               `json:"offerMessage,omitempty"`
}

type CartCheckedOutItem struct {
	ProductID string `json:"productId"`
	Variant   string `json:"variant,omitempty"`
	Name      string `json:"name"`
	Category  string `json:"category"`
	UnitPrice int    `json:"unitPrice"`
	Quantity  int    `json:"quantity"`
}

// EnvelopeOptions carries the fields the publisher owns: identity,
// ordering and tracing. Zero values get sensible defaults.
type EnvelopeOptions struct {
	EventID       string
	CorrelationID string
	PartitionKey  string
	Sequence      int64
	OccurredAt    time.Time
}

func BuildCartCheckedOutEvent(snap cart.Snapshot, ord checkout.Order, res offer.Result, opts EnvelopeOptions) EventEnvelope {
	if opts.EventID == "" {
		opts.EventID = uuid.NewString()
	}
	if opts.OccurredAt.IsZero() {
		opts.OccurredAt = time.Now().UTC()
	}

	items := make([]CartCheckedOutItem, 0, len(snap.Lines))
	for _, ln := range snap.Lines {
		items = append(items, CartCheckedOutItem{
			ProductID: ln.Key.ProductID,
			Variant:   ln.Key.Variant,
			Name:      ln.Name,
			Category:  ln.Category,
			UnitPrice: ln.UnitPrice,
			Quantity:  ln.Quantity,
		})
	}

	return EventEnvelope{
		EventName:     CartCheckedOutEventName,
		EventVersion:  CartCheckedOutEventVersion,
		EventID:       opts.EventID,
		CorrelationID: opts.CorrelationID,
		Producer:      producerName,
		PartitionKey:  opts.PartitionKey,
		Sequence:      opts.Sequence,
		OccurredAt:    opts.OccurredAt.UTC(),
		Payload: CartCheckedOutPayload{
			OrderRef:     ord.Ref,
			Items:        items,
			RawTotal:     ord.RawTotal,
			Discount:     ord.Discount,
			Payable:      ord.Payable,
			FreeUnits:    ord.FreeUnits,
			OfferMessage: res.Message,
		},
	}
}
