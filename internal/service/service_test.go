package service

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dtroode/storefront/internal/model"
	"github.com/dtroode/storefront/internal/persist"
	"github.com/dtroode/storefront/internal/store"
	"github.com/dtroode/storefront/internal/testutil"
)

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	return store.New(persist.NewMemory(), testutil.MakeNoopLogger())
}

func testProduct(name, price string, stock int) model.Product {
	return model.Product{
		ID:            uuid.New(),
		Name:          name,
		Slug:          name,
		Price:         decimal.RequireFromString(price),
		StockQuantity: stock,
	}
}
