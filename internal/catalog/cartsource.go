package catalog

import (
	"github.com/betichouu-bot/Poster-Point/internal/cart"
)

// FindProduct adapts the catalog to the cart store's product lookup.
func (c *Catalog) FindProduct(id string) (cart.Product, bool) {
	p, ok := c.Find(id)
	if !ok {
		return cart.Product{}, false
	}
	return cart.Product{
		ID:       p.ID,
		Name:     p.Name,
		Category: p.Category,
		Price:    p.Price,
	}, true
}
