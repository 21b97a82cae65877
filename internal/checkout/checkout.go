// Package checkout turns a cart snapshot plus an offer result into the
// payable amount and the WhatsApp handoff message. There is no order
// processing behind this: checkout is composing a pre-filled message for a
// fixed contact and opening a wa.me deep link.
package checkout

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/betichouu-bot/Poster-Point/internal/cart"
	"github.com/betichouu-bot/Poster-Point/internal/offer"
)

// ErrEmptyCart signals a checkout attempt on an empty cart.
var ErrEmptyCart = errors.New("checkout: cart is empty")

// MinOrderError is the policy refusal when the payable total is below the
// configured minimum. The cart is left untouched; the shopper can adjust
// quantities and retry.
type MinOrderError struct {
	MinOrderValue int
	Payable       int
}

func (e *MinOrderError) Error() string {
	return fmt.Sprintf("minimum order value to send via WhatsApp is ₹%d, your cart total after offers is ₹%d", e.MinOrderValue, e.Payable)
}

// Order is the composed checkout handoff.
type Order struct {
	Ref         string `json:"ref"`
	Message     string `json:"message"`
	WhatsAppURL string `json:"whatsappUrl"`
	RawTotal    int    `json:"rawTotal"`
	Discount    int    `json:"discount"`
	Payable     int    `json:"payable"`
	FreeUnits   int    `json:"freeUnits"`
}

// Payable is the amount communicated to the order channel: raw total minus
// the discount when the offer applied.
func Payable(snap cart.Snapshot, res offer.Result) int {
	if res.Applied {
		return snap.RawTotal - res.Discount
	}
	return snap.RawTotal
}

// Calculator composes checkout orders subject to the minimum-order gate.
type Calculator struct {
	minOrderValue int
	phone         string
	now           func() time.Time
}

func NewCalculator(minOrderValue int, phone string) *Calculator {
	return &Calculator{minOrderValue: minOrderValue, phone: phone, now: time.Now}
}

// Checkout builds the order message for the snapshot. It refuses with
// ErrEmptyCart when there is nothing to send and with *MinOrderError when
// the payable total falls short of the minimum. Pure apart from reading the
// clock for the order ref.
func (c *Calculator) Checkout(snap cart.Snapshot, res offer.Result) (Order, error) {
	if len(snap.Lines) == 0 {
		return Order{}, ErrEmptyCart
	}

	payable := Payable(snap, res)
	if payable < c.minOrderValue {
		return Order{}, &MinOrderError{MinOrderValue: c.minOrderValue, Payable: payable}
	}

	ref := "PP-" + c.now().UTC().Format("2006-01-02T1504")

	var b strings.Builder
	fmt.Fprintf(&b, "Order Ref: %s\nOrder from Poster Point:\n\n", ref)
	for _, ln := range snap.Lines {
		if ln.Key.Variant != "" {
			fmt.Fprintf(&b, "%s (%s) × %d\n", ln.Name, ln.Key.Variant, ln.Quantity)
		} else {
			fmt.Fprintf(&b, "%s × %d\n", ln.Name, ln.Quantity)
		}
	}
	if res.Applied {
		fmt.Fprintf(&b, "\nOffer applied: saved ₹%d", res.Discount)
	}
	fmt.Fprintf(&b, "\nTotal: ₹%d", payable)

	msg := b.String()
	order := Order{
		Ref:         ref,
		Message:     msg,
		WhatsAppURL: "https://wa.me/" + c.phone + "?text=" + url.QueryEscape(msg),
		RawTotal:    snap.RawTotal,
		Payable:     payable,
	}
	if res.Applied {
		order.Discount = res.Discount
		order.FreeUnits = res.FreeUnits
	}
	return order, nil
}
