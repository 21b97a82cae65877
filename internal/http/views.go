package httpapi

import (
	"fmt"
	"strings"

	"github.com/betichouu-bot/Poster-Point/internal/catalog"
	"github.com/betichouu-bot/Poster-Point/internal/offer"
)

// offerBanner renders the promotion strip text, smallest bracket first as
// the shop advertises it ("Buy 3 Get 1 FREE | ...").
func offerBanner(tiers []offer.Tier) string {
	parts := make([]string, 0, len(tiers))
	for i := len(tiers) - 1; i >= 0; i-- {
		t := tiers[i]
		parts = append(parts, fmt.Sprintf("Buy %d Get %d FREE", t.GroupSize-t.FreeCount, t.FreeCount))
	}
	return strings.Join(parts, " | ")
}

type productView struct {
	ID          string               `json:"id"`
	Name        string               `json:"name"`
	Price       int                  `json:"price"`
	Category    string               `json:"category"`
	Type        string               `json:"type"`
	File        string               `json:"file"`
	Placeholder bool                 `json:"placeholder"`
	Loaded      bool                 `json:"loaded"`
	Sizes       []catalog.SizeOption `json:"sizes,omitempty"`
}

func newProductView(p catalog.Product) productView {
	v := productView{
		ID:          p.ID,
		Name:        p.Name,
		Price:       p.Price,
		Category:    p.Category,
		Type:        p.Type,
		File:        p.File,
		Placeholder: p.Placeholder,
		Loaded:      p.Loaded,
	}
	switch p.Type {
	case catalog.TypePosters:
		v.Sizes = catalog.PosterSizes()
	case catalog.TypeSplitPosters:
		v.Sizes = catalog.SplitPosterSizes()
	}
	return v
}

type lineView struct {
	Key       string `json:"key"`
	ProductID string `json:"productId"`
	Variant   string `json:"variant,omitempty"`
	Name      string `json:"name"`
	Category  string `json:"category"`
	UnitPrice int    `json:"unitPrice"`
	Quantity  int    `json:"quantity"`
	Subtotal  int    `json:"subtotal"`
}

type cartView struct {
	Lines     []lineView      `json:"lines"`
	ItemCount int             `json:"itemCount"`
	RawTotal  int             `json:"rawTotal"`
	Payable   int             `json:"payable"`
	Offer     offerResultView `json:"offer"`
}

type offerResultView struct {
	Applied   bool   `json:"applied"`
	FreeUnits int    `json:"freeUnits"`
	Discount  int    `json:"discount"`
	Message   string `json:"message,omitempty"`
}

func offerView(res offer.Result) offerResultView {
	return offerResultView{
		Applied:   res.Applied,
		FreeUnits: res.FreeUnits,
		Discount:  res.Discount,
		Message:   res.Message,
	}
}

type orderView struct {
	Ref         string          `json:"ref"`
	Message     string          `json:"message"`
	WhatsAppURL string          `json:"whatsappUrl"`
	RawTotal    int             `json:"rawTotal"`
	Discount    int             `json:"discount"`
	Payable     int             `json:"payable"`
	FreeUnits   int             `json:"freeUnits"`
	Offer       offerResultView `json:"offer"`
}
