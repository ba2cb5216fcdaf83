// Package cart holds the line-item rules of the shopping cart. Every
// function takes the current items as read-only input and returns a new
// slice; the input is never modified.
//
// Quantities are clamped rather than rejected: a line never exceeds the
// stock figure of its product snapshot, and a line whose quantity would drop
// to zero or below is removed.
package cart

import (
	"slices"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dtroode/storefront/internal/model"
)

// DefaultQuantity is used when a product is added without an explicit amount.
const DefaultQuantity = 1

// Add adds quantity units of product. An existing line for the same product
// is increased and takes the new product snapshot; otherwise a line is
// appended. The result is clamped to [0, product.StockQuantity]. When the
// clamped quantity is not positive the items are returned unchanged.
func Add(items []model.CartItem, product model.Product, quantity int) ([]model.CartItem, bool) {
	idx := indexOf(items, product.ID)

	current := 0
	if idx >= 0 {
		current = items[idx].Quantity
	}

	next := clamp(current+quantity, product.StockQuantity)
	if next <= 0 {
		return items, false
	}

	out := slices.Clone(items)
	if idx >= 0 {
		out[idx] = model.CartItem{Product: product, Quantity: next}
		return out, true
	}

	return append(out, model.CartItem{Product: product, Quantity: next}), true
}

// Remove drops the line for productID. Missing ids are ignored.
func Remove(items []model.CartItem, productID uuid.UUID) ([]model.CartItem, bool) {
	idx := indexOf(items, productID)
	if idx < 0 {
		return items, false
	}

	return slices.Delete(slices.Clone(items), idx, idx+1), true
}

// SetQuantity sets the quantity of the line for productID, clamped to the
// line's stock snapshot. A quantity of zero or less removes the line.
func SetQuantity(items []model.CartItem, productID uuid.UUID, quantity int) ([]model.CartItem, bool) {
	if quantity <= 0 {
		return Remove(items, productID)
	}

	idx := indexOf(items, productID)
	if idx < 0 {
		return items, false
	}

	next := clamp(quantity, items[idx].StockQuantity)
	if next <= 0 {
		return Remove(items, productID)
	}
	if next == items[idx].Quantity {
		return items, false
	}

	out := slices.Clone(items)
	out[idx].Quantity = next
	return out, true
}

// Total is the sum of price times quantity over all lines.
func Total(items []model.CartItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return total
}

// Count is the number of units across all lines.
func Count(items []model.CartItem) int {
	count := 0
	for _, item := range items {
		count += item.Quantity
	}
	return count
}

// Normalize repairs items loaded from outside the process: duplicate
// product lines are merged in first-seen order and every quantity is
// clamped to its snapshot stock. Lines that end up empty are dropped.
func Normalize(items []model.CartItem) []model.CartItem {
	out := make([]model.CartItem, 0, len(items))
	for _, item := range items {
		idx := indexOf(out, item.ID)
		if idx >= 0 {
			out[idx].Quantity = clamp(out[idx].Quantity+item.Quantity, out[idx].StockQuantity)
			continue
		}
		item.Quantity = clamp(item.Quantity, item.StockQuantity)
		out = append(out, item)
	}

	return slices.DeleteFunc(out, func(item model.CartItem) bool {
		return item.Quantity <= 0
	})
}

func indexOf(items []model.CartItem, productID uuid.UUID) int {
	return slices.IndexFunc(items, func(item model.CartItem) bool {
		return item.ID == productID
	})
}

func clamp(quantity, stock int) int {
	return max(0, min(quantity, stock))
}
