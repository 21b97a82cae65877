package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/betichouu-bot/Poster-Point/internal/cart"
	"github.com/betichouu-bot/Poster-Point/internal/catalog"
	"github.com/betichouu-bot/Poster-Point/internal/checkout"
	"github.com/betichouu-bot/Poster-Point/internal/middleware"
	"github.com/betichouu-bot/Poster-Point/internal/offer"
)

type Handler struct {
	catalog       *catalog.Catalog
	cart          *cart.Store
	offers        *offer.Engine
	checkout      *checkout.Calculator
	publisher     CartEventsPublisher
	minOrderValue int
	logger        *log.Logger
}

// CartEventsPublisher is what the handler needs from the events layer.
// A nil publisher means event publishing is disabled.
type CartEventsPublisher interface {
	PublishCartCheckedOut(ctx context.Context, correlationID string, snap cart.Snapshot, ord checkout.Order, res offer.Result) error
}

func NewHandler(cat *catalog.Catalog, store *cart.Store, offers *offer.Engine, calc *checkout.Calculator, publisher CartEventsPublisher, minOrderValue int, logger *log.Logger) *Handler {
	return &Handler{
		catalog:       cat,
		cart:          store,
		offers:        offers,
		checkout:      calc,
		publisher:     publisher,
		minOrderValue: minOrderValue,
		logger:        logger,
	}
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "service": "storefront"})
}

// GetCatalog returns the shop metadata the front end renders the
// navigation and size pickers from.
func (h *Handler) GetCatalog(w http.ResponseWriter, r *http.Request) {
	type typeView struct {
		Type       string                  `json:"type"`
		Categories []catalog.CategoryCount `json:"categories"`
		Sizes      []catalog.SizeOption    `json:"sizes,omitempty"`
	}

	types := make([]typeView, 0, len(catalog.Types()))
	for _, typ := range catalog.Types() {
		tv := typeView{Type: typ, Categories: h.catalog.Categories(typ)}
		switch typ {
		case catalog.TypePosters:
			tv.Sizes = catalog.PosterSizes()
		case catalog.TypeSplitPosters:
			tv.Sizes = catalog.SplitPosterSizes()
		}
		types = append(types, tv)
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"types":         types,
		"offerTiers":    h.offers.Tiers(),
		"offerBanner":   offerBanner(h.offers.Tiers()),
		"minOrderValue": h.minOrderValue,
	})
}

func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	typ := normalizeType(q.Get("type"))
	if typ == "" {
		typ = catalog.TypePosters
	}
	products := h.catalog.Filter(typ, q.Get("category"), q.Get("q"))

	views := make([]productView, 0, len(products))
	for _, p := range products {
		views = append(views, newProductView(p))
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"count":    len(views),
		"products": views,
	})
}

func (h *Handler) GetCart(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.cartView())
}

func (h *Handler) AddItem(w http.ResponseWriter, r *http.Request) {
	var body struct {
		ProductID string `json:"productId"`
		Variant   string `json:"variant"`
		Quantity  int    `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if body.ProductID == "" {
		writeError(w, http.StatusBadRequest, "missing productId")
		return
	}
	if body.Quantity == 0 {
		body.Quantity = 1
	}

	p, ok := h.catalog.Find(body.ProductID)
	if !ok {
		writeError(w, http.StatusNotFound, "unknown product")
		return
	}

	// An omitted size means the default one; the line key must carry it
	// so "no size" and the default size accumulate on the same line.
	body.Variant = h.catalog.NormalizeVariant(p, body.Variant)

	price, ok := h.catalog.PriceFor(p, body.Variant)
	if !ok {
		writeError(w, http.StatusBadRequest, "unknown variant for product")
		return
	}

	h.cart.AddLine(body.ProductID, body.Quantity, body.Variant, price)
	writeJSON(w, http.StatusOK, h.cartView())
}

func (h *Handler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	key, ok := lineKeyParam(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "missing item key")
		return
	}

	var body struct {
		Quantity int `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	h.cart.SetQuantity(key, body.Quantity)
	writeJSON(w, http.StatusOK, h.cartView())
}

func (h *Handler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	key, ok := lineKeyParam(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "missing item key")
		return
	}

	h.cart.RemoveLine(key)
	writeJSON(w, http.StatusOK, h.cartView())
}

func (h *Handler) ClearCart(w http.ResponseWriter, r *http.Request) {
	h.cart.Clear()
	writeJSON(w, http.StatusOK, h.cartView())
}

func (h *Handler) Checkout(w http.ResponseWriter, r *http.Request) {
	snap := h.cart.Snapshot()
	res := h.offers.Compute(snap.Lines)

	ord, err := h.checkout.Checkout(snap, res)
	if err != nil {
		var minErr *checkout.MinOrderError
		switch {
		case errors.Is(err, checkout.ErrEmptyCart):
			writeError(w, http.StatusBadRequest, "cart is empty")
		case errors.As(err, &minErr):
			writeError(w, http.StatusUnprocessableEntity, minErr.Error())
		default:
			writeError(w, http.StatusInternalServerError, "checkout failed")
		}
		return
	}

	// Best effort: the WhatsApp handoff must not depend on the broker.
	if h.publisher != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
		defer cancel()

		cid := middleware.GetCorrelationID(r.Context())
		if err := h.publisher.PublishCartCheckedOut(ctx, cid, snap, ord, res); err != nil {
			h.logger.Printf("publish CartCheckedOut: %v", err)
		}
	}

	writeJSON(w, http.StatusOK, orderView{
		Ref:         ord.Ref,
		Message:     ord.Message,
		WhatsAppURL: ord.WhatsAppURL,
		RawTotal:    ord.RawTotal,
		Discount:    ord.Discount,
		Payable:     ord.Payable,
		FreeUnits:   ord.FreeUnits,
		Offer:       offerView(res),
	})
}

func (h *Handler) cartView() cartView {
	snap := h.cart.Snapshot()
	res := h.offers.Compute(snap.Lines)

	lines := make([]lineView, 0, len(snap.Lines))
	for _, ln := range snap.Lines {
		lines = append(lines, lineView{
			Key:       formatLineKey(ln.Key),
			ProductID: ln.Key.ProductID,
			Variant:   ln.Key.Variant,
			Name:      ln.Name,
			Category:  ln.Category,
			UnitPrice: ln.UnitPrice,
			Quantity:  ln.Quantity,
			Subtotal:  ln.Subtotal(),
		})
	}

	return cartView{
		Lines:     lines,
		ItemCount: snap.ItemCount,
		RawTotal:  snap.RawTotal,
		Payable:   checkout.Payable(snap, res),
		Offer:     offerView(res),
	}
}

func lineKeyParam(r *http.Request) (cart.LineKey, bool) {
	raw := chi.URLParam(r, "key")
	if decoded, err := url.PathUnescape(raw); err == nil {
		raw = decoded
	}
	if raw == "" {
		return cart.LineKey{}, false
	}
	return parseLineKey(raw), true
}

// Type selection in the query string is matched case-insensitively
// against the catalog's display names.
func normalizeType(s string) string {
	for _, t := range catalog.Types() {
		if strings.EqualFold(t, s) {
			return t
		}
	}
	return s
}

// Line keys travel as "productId::variant"; the variant part is
// omitted for single-price products.
func parseLineKey(s string) cart.LineKey {
	id, variant, _ := strings.Cut(s, "::")
	return cart.LineKey{ProductID: id, Variant: variant}
}

func formatLineKey(key cart.LineKey) string {
	if key.Variant == "" {
		return key.ProductID
	}
	return key.ProductID + "::" + key.Variant
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{
		"error": msg,
	})
}
