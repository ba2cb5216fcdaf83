package service

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/dtroode/storefront/internal/cart"
	"github.com/dtroode/storefront/internal/logger"
	"github.com/dtroode/storefront/internal/model"
	"github.com/dtroode/storefront/internal/store"
)

// CheckoutState is the part of the client state checkout reads and resets.
type CheckoutState interface {
	State() store.State
	ToggleAuthModal()
	ClearCart()
}

type Checkout struct {
	orders   model.OrderStore
	state    CheckoutState
	validate *validator.Validate
	logger   *logger.Logger
	now      func() time.Time
}

func NewCheckout(orders model.OrderStore, state CheckoutState, validate *validator.Validate, logger *logger.Logger) *Checkout {
	return &Checkout{
		orders:   orders,
		state:    state,
		validate: validate,
		logger:   logger,
		now:      time.Now,
	}
}

// PrefillShipping fills the contact fields from the signed-in user.
func (c *Checkout) PrefillShipping() model.ShippingAddress {
	user := c.state.State().User
	if user == nil {
		return model.ShippingAddress{}
	}
	return model.ShippingAddress{
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Email:     user.Email,
		Phone:     user.Phone,
	}
}

// PlaceOrder turns the cart into a pending order. Without a signed-in user
// it opens the auth modal and returns ErrAuthRequired. The cart is cleared
// only once the order is stored.
func (c *Checkout) PlaceOrder(ctx context.Context, shipping model.ShippingAddress) (model.Order, error) {
	state := c.state.State()

	if state.User == nil {
		if !state.IsAuthModalOpen {
			c.state.ToggleAuthModal()
		}
		return model.Order{}, model.ErrAuthRequired
	}
	if len(state.CartItems) == 0 {
		return model.Order{}, model.ErrEmptyCart
	}
	if err := c.validate.Struct(shipping); err != nil {
		return model.Order{}, fmt.Errorf("%w: %s", model.ErrInvalidInput, err.Error())
	}

	c.logger.Debug("Checkout service: placing order",
		"user_id", state.User.ID,
		"items", len(state.CartItems))

	now := c.now()
	order := model.Order{
		ID:              uuid.New(),
		UserID:          state.User.ID,
		TotalAmount:     cart.Total(state.CartItems),
		Status:          model.OrderStatusPending,
		ShippingAddress: shipping,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	items := make([]model.OrderItem, 0, len(state.CartItems))
	for _, line := range state.CartItems {
		items = append(items, model.OrderItem{
			ID:        uuid.New(),
			OrderID:   order.ID,
			ProductID: line.ID,
			Quantity:  line.Quantity,
			Price:     line.Price,
		})
	}

	saved, err := c.orders.Create(ctx, order, items)
	if err != nil {
		c.logger.Error("Checkout service: failed to create order",
			"user_id", state.User.ID,
			"error", err.Error())
		return model.Order{}, fmt.Errorf("failed to place order: %w", err)
	}

	c.state.ClearCart()
	c.logger.Info("Checkout service: order placed",
		"order_id", saved.ID,
		"user_id", saved.UserID,
		"total", saved.TotalAmount.StringFixed(2))

	return saved, nil
}
