// Package store is the client-side state container of the storefront: the
// catalog cache, the cart, the auth session and a couple of UI flags.
//
// All mutations are applied one at a time and run to completion.
// Subscribers see changes in the order they were applied; when mutations
// race, intermediate states may be skipped but the last state delivered is
// always the current one. Derived
// values (cart total and item count) are computed from the line items on
// every read. The cart, the selected category, the user and the session are
// written through to a Persister after each change and restored from it when
// the store is created.
package store

import (
	"slices"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dtroode/storefront/internal/cart"
	"github.com/dtroode/storefront/internal/logger"
	"github.com/dtroode/storefront/internal/model"
)

// State is a read-only view of the store. Slices in it are never modified
// after being handed out and pointer fields are copies.
type State struct {
	Products         []model.Product  `json:"products"`
	Categories       []model.Category `json:"categories"`
	SelectedCategory *uuid.UUID       `json:"selectedCategory"`
	CartItems        []model.CartItem `json:"cartItems"`
	IsCartOpen       bool             `json:"isCartOpen"`
	User             *model.User      `json:"user"`
	Session          *model.Session   `json:"session"`
	IsAuthModalOpen  bool             `json:"isAuthModalOpen"`
}

// CartTotal is the sum of price times quantity over the cart.
func (s State) CartTotal() decimal.Decimal {
	return cart.Total(s.CartItems)
}

// CartItemsCount is the number of units in the cart.
func (s State) CartItemsCount() int {
	return cart.Count(s.CartItems)
}

// Snapshot extracts the persisted subset.
func (s State) Snapshot() Snapshot {
	return Snapshot{
		CartItems:        s.CartItems,
		SelectedCategory: s.SelectedCategory,
		User:             s.User,
		Session:          s.Session,
	}
}

// Listener is called with the new state after every change.
type Listener func(state State)

type subscription struct {
	id       uint64
	listener Listener
}

// Store owns the state and notifies subscribers of changes.
type Store struct {
	mu        sync.Mutex
	state     State
	persister Persister
	logger    *logger.Logger

	// version counts applied changes; delivered is the last version handed
	// to subscribers. Both are guarded by mu.
	version    uint64
	delivered  uint64
	delivering bool

	subsMu sync.Mutex
	subs   []subscription
	nextID uint64
}

// New creates a store and rehydrates it from persister. A nil persister
// disables persistence. A failed load is logged and leaves the defaults.
func New(persister Persister, logger *logger.Logger) *Store {
	s := &Store{
		persister: persister,
		logger:    logger,
	}
	s.rehydrate()
	return s
}

func (s *Store) rehydrate() {
	if s.persister == nil {
		return
	}

	snapshot, ok, err := s.persister.Load()
	if err != nil {
		s.logger.Error("Store: failed to load persisted state, starting empty",
			"error", err.Error())
		return
	}
	if !ok {
		s.logger.Debug("Store: no persisted state found")
		return
	}

	s.state.CartItems = cart.Normalize(snapshot.CartItems)
	s.state.SelectedCategory = snapshot.SelectedCategory
	s.state.User = snapshot.User
	s.state.Session = snapshot.Session

	s.logger.Info("Store: state rehydrated",
		"cart_items", len(s.state.CartItems),
		"signed_in", s.state.Session != nil)
}

// State returns the current state.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.view()
}

func (st State) view() State {
	st.SelectedCategory = clonePtr(st.SelectedCategory)
	st.User = clonePtr(st.User)
	return st
}

// Subscribe registers listener for state changes and returns a function
// removing it again.
func (s *Store) Subscribe(listener Listener) (unsubscribe func()) {
	s.subsMu.Lock()
	defer s.subsMu.Unlock()

	s.nextID++
	id := s.nextID
	s.subs = append(s.subs, subscription{id: id, listener: listener})

	return func() {
		s.subsMu.Lock()
		defer s.subsMu.Unlock()
		s.subs = slices.DeleteFunc(s.subs, func(sub subscription) bool {
			return sub.id == id
		})
	}
}

// SetProducts replaces the cached product list.
func (s *Store) SetProducts(products []model.Product) {
	s.update(false, func(st *State) bool {
		st.Products = slices.Clone(products)
		return true
	})
}

// SetCategories replaces the cached category list.
func (s *Store) SetCategories(categories []model.Category) {
	s.update(false, func(st *State) bool {
		st.Categories = slices.Clone(categories)
		return true
	})
}

// SetSelectedCategory sets the active category filter. Nil clears it.
func (s *Store) SetSelectedCategory(categoryID *uuid.UUID) {
	s.update(true, func(st *State) bool {
		st.SelectedCategory = clonePtr(categoryID)
		return true
	})
}

// AddToCart adds quantity units of product, never exceeding its stock.
func (s *Store) AddToCart(product model.Product, quantity int) {
	s.update(true, func(st *State) bool {
		var changed bool
		st.CartItems, changed = cart.Add(st.CartItems, product, quantity)
		return changed
	})
}

// RemoveFromCart drops the line for productID if present.
func (s *Store) RemoveFromCart(productID uuid.UUID) {
	s.update(true, func(st *State) bool {
		var changed bool
		st.CartItems, changed = cart.Remove(st.CartItems, productID)
		return changed
	})
}

// UpdateCartItemQuantity sets a line's quantity; zero or less removes it.
func (s *Store) UpdateCartItemQuantity(productID uuid.UUID, quantity int) {
	s.update(true, func(st *State) bool {
		var changed bool
		st.CartItems, changed = cart.SetQuantity(st.CartItems, productID, quantity)
		return changed
	})
}

// ClearCart empties the cart.
func (s *Store) ClearCart() {
	s.update(true, func(st *State) bool {
		if len(st.CartItems) == 0 {
			return false
		}
		st.CartItems = nil
		return true
	})
}

// ToggleCart flips cart panel visibility.
func (s *Store) ToggleCart() {
	s.update(false, func(st *State) bool {
		st.IsCartOpen = !st.IsCartOpen
		return true
	})
}

// ToggleAuthModal flips auth modal visibility.
func (s *Store) ToggleAuthModal() {
	s.update(false, func(st *State) bool {
		st.IsAuthModalOpen = !st.IsAuthModalOpen
		return true
	})
}

// SetUser sets the signed-in user. Nil means signed out.
func (s *Store) SetUser(user *model.User) {
	s.update(true, func(st *State) bool {
		st.User = clonePtr(user)
		return true
	})
}

// SetSession sets the auth session. Nil means signed out.
func (s *Store) SetSession(session *model.Session) {
	s.update(true, func(st *State) bool {
		if session == nil {
			st.Session = nil
			return true
		}
		st.Session = model.NewSession(session.Bytes())
		return true
	})
}

// update applies fn under the lock. When fn reports a change the persisted
// subset is written (if persisted is set) and subscribers are notified.
func (s *Store) update(persisted bool, fn func(st *State) bool) {
	s.mu.Lock()
	next := s.state
	if !fn(&next) {
		s.mu.Unlock()
		return
	}
	s.state = next
	if persisted {
		s.persist(next)
	}
	s.version++
	if s.delivering {
		// the running delivery loop picks this change up
		s.mu.Unlock()
		return
	}
	s.delivering = true
	s.mu.Unlock()

	s.deliver()
}

// deliver notifies subscribers until they have seen the latest version.
// Only one goroutine delivers at a time.
func (s *Store) deliver() {
	s.mu.Lock()
	defer func() {
		s.delivering = false
		s.mu.Unlock()
	}()

	for s.delivered < s.version {
		state, version := s.state.view(), s.version
		s.mu.Unlock()
		func() {
			defer s.mu.Lock()
			s.notify(state)
		}()
		s.delivered = version
	}
}

func (s *Store) persist(state State) {
	if s.persister == nil {
		return
	}
	if err := s.persister.Save(state.Snapshot()); err != nil {
		s.logger.Error("Store: failed to persist state",
			"error", err.Error())
	}
}

func (s *Store) notify(state State) {
	s.subsMu.Lock()
	subs := slices.Clone(s.subs)
	s.subsMu.Unlock()

	for _, sub := range subs {
		sub.listener(state)
	}
}

func clonePtr[T any](v *T) *T {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
