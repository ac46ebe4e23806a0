package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/gurpreet/minishop/internal/storage"
)

// CartSlotName is the fixed slot the cart persists under.
const CartSlotName = "cart"

// Product is the add-time snapshot of a catalog product: the display fields
// a cart line carries plus the inventory ceiling enforced on mutations.
type Product struct {
	ID         string
	Name       string
	PriceCents int64
	Image      string
	Inventory  int
}

// Line is one product entry in the cart. TotalCents is always derived as
// Quantity * PriceCents; it is never set independently.
type Line struct {
	ProductID  string `json:"_id"`
	Name       string `json:"name"`
	PriceCents int64  `json:"price_cents"`
	Image      string `json:"image"`
	Quantity   int    `json:"quantity"`
	TotalCents int64  `json:"total_cents"`
	Inventory  int    `json:"inventory"`
}

// CartStore owns the cart mutation protocol. At most one line exists per
// product; quantities stay within [1, inventory]; every accepted mutation is
// re-serialized to the slot. Rejections leave state untouched and surface
// through the Notifier only, never as errors.
type CartStore struct {
	slot   storage.Slot
	notify Notifier

	mu    sync.Mutex
	lines []Line
}

func NewCartStore(slot storage.Slot, notify Notifier) *CartStore {
	return &CartStore{slot: slot, notify: notify}
}

// Load restores the persisted cart. Absent or malformed data means an
// empty cart.
func (c *CartStore) Load(ctx context.Context) {
	data, found, err := c.slot.Load(ctx)
	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil || !found {
		c.lines = nil
		return
	}
	var lines []Line
	if err := json.Unmarshal(data, &lines); err != nil {
		c.lines = nil
		return
	}
	c.lines = lines
}

// Lines returns a copy of the cart in order.
func (c *CartStore) Lines() []Line {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Line, len(c.lines))
	copy(out, c.lines)
	return out
}

// SubtotalCents sums the line totals.
func (c *CartStore) SubtotalCents() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	var sum int64
	for _, l := range c.lines {
		sum += l.TotalCents
	}
	return sum
}

// Len reports the number of lines.
func (c *CartStore) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.lines)
}

// Add puts quantity units of p in the cart, merging into an existing line.
// Returns false when the inventory ceiling rejects the mutation.
func (c *CartStore) Add(ctx context.Context, p Product, quantity int) bool {
	if quantity < 1 {
		quantity = 1
	}
	c.mu.Lock()
	if i := c.indexLocked(p.ID); i >= 0 {
		newQty := c.lines[i].Quantity + quantity
		if newQty > p.Inventory {
			c.mu.Unlock()
			c.rejectOverLimit(p.Inventory, p.Name)
			return false
		}
		c.lines[i].Quantity = newQty
		c.lines[i].TotalCents = int64(newQty) * c.lines[i].PriceCents
	} else {
		if quantity > p.Inventory {
			c.mu.Unlock()
			c.rejectOverLimit(p.Inventory, p.Name)
			return false
		}
		c.lines = append(c.lines, Line{
			ProductID:  p.ID,
			Name:       p.Name,
			PriceCents: p.PriceCents,
			Image:      p.Image,
			Quantity:   quantity,
			TotalCents: int64(quantity) * p.PriceCents,
			Inventory:  p.Inventory,
		})
	}
	c.persistLocked(ctx)
	c.mu.Unlock()
	return true
}

// Increment adds one unit to the line, subject to the line's inventory
// ceiling. Absent lines are a no-op.
func (c *CartStore) Increment(ctx context.Context, productID string) bool {
	c.mu.Lock()
	i := c.indexLocked(productID)
	if i < 0 {
		c.mu.Unlock()
		return false
	}
	l := c.lines[i]
	if l.Quantity+1 > l.Inventory {
		c.mu.Unlock()
		c.rejectOverLimit(l.Inventory, l.Name)
		return false
	}
	c.lines[i].Quantity++
	c.lines[i].TotalCents = int64(c.lines[i].Quantity) * l.PriceCents
	c.persistLocked(ctx)
	c.mu.Unlock()
	return true
}

// Decrement removes one unit but never below 1; removal is the only path
// to an empty line.
func (c *CartStore) Decrement(ctx context.Context, productID string) bool {
	c.mu.Lock()
	i := c.indexLocked(productID)
	if i < 0 || c.lines[i].Quantity <= 1 {
		c.mu.Unlock()
		return false
	}
	c.lines[i].Quantity--
	c.lines[i].TotalCents = int64(c.lines[i].Quantity) * c.lines[i].PriceCents
	c.persistLocked(ctx)
	c.mu.Unlock()
	return true
}

// Remove drops the line with productID. No-op if absent.
func (c *CartStore) Remove(ctx context.Context, productID string) {
	c.mu.Lock()
	i := c.indexLocked(productID)
	if i < 0 {
		c.mu.Unlock()
		return
	}
	c.lines = append(c.lines[:i], c.lines[i+1:]...)
	c.persistLocked(ctx)
	c.mu.Unlock()
}

// Clear empties the cart unconditionally.
func (c *CartStore) Clear(ctx context.Context) {
	c.mu.Lock()
	c.lines = nil
	c.persistLocked(ctx)
	c.mu.Unlock()
}

func (c *CartStore) indexLocked(productID string) int {
	for i := range c.lines {
		if c.lines[i].ProductID == productID {
			return i
		}
	}
	return -1
}

// persistLocked re-serializes the whole cart after an accepted mutation.
// Storage failures keep the in-memory state and surface as a notification.
func (c *CartStore) persistLocked(ctx context.Context) {
	data, err := json.Marshal(c.lines)
	if err != nil {
		c.notify.Error("Failed to save cart.")
		return
	}
	if err := c.slot.Save(ctx, data); err != nil {
		c.notify.Error("Failed to save cart.")
	}
}

func (c *CartStore) rejectOverLimit(inventory int, name string) {
	c.notify.Error(fmt.Sprintf("Cannot add more than %d of %s.", inventory, name))
}
