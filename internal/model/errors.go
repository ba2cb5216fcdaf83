package model

import "errors"

var (
	ErrNotFound           = errors.New("not found")
	ErrAuthRequired       = errors.New("authentication required")
	ErrForbidden          = errors.New("forbidden")
	ErrEmptyCart          = errors.New("cart is empty")
	ErrInvalidStatus      = errors.New("invalid order status")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("email is already taken")
	ErrInvalidInput       = errors.New("invalid input")
)
