// Package vend defines the wire types for the airtime platform API.
package vend

import (
	"airvend/pkg/api/common"
	"airvend/pkg/models"
)

// Authentication requests and responses
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RegisterRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
}

// AuthResponse is returned by both login and register. Data carries the user
// record, including the wallet balance (signup bonus for fresh registrations).
type AuthResponse struct {
	Token string      `json:"token"`
	Data  models.User `json:"data"`
}

// ErrorResponse is a type alias to the common error response
type ErrorResponse = common.ErrorResponse

// WalletStatistics summarizes lifetime wallet activity.
type WalletStatistics struct {
	TotalReceived     int64 `json:"totalReceived"`
	TotalSpent        int64 `json:"totalSpent"`
	TotalTransactions int64 `json:"totalTransactions"`
}

// WalletSnapshot is the transient wallet view fetched on each overview or
// refresh. It is never persisted.
type WalletSnapshot struct {
	Balance            int64                `json:"balance"`
	Statistics         WalletStatistics     `json:"statistics"`
	RecentTransactions []models.Transaction `json:"recentTransactions"`
}

// WalletResponse wraps a wallet snapshot in the standard success envelope.
type WalletResponse struct {
	common.SuccessResponse
	Data WalletSnapshot `json:"data"`
}

// TransactionsPage is one page of transaction history.
type TransactionsPage struct {
	Transactions []models.Transaction `json:"transactions"`
	Page         int                  `json:"page"`
	Limit        int                  `json:"limit"`
	Total        int64                `json:"total"`
	Pages        int                  `json:"pages"`
}

// TransactionsResponse wraps a history page in the standard success envelope.
type TransactionsResponse struct {
	common.SuccessResponse
	Data TransactionsPage `json:"data"`
}

// PurchaseRequest buys airtime for a phone number against the wallet balance.
type PurchaseRequest struct {
	PhoneNumber string `json:"phoneNumber"`
	Amount      int64  `json:"amount"`
	Network     string `json:"network"`
}

// TopUpRequest credits the wallet.
type TopUpRequest struct {
	Amount int64 `json:"amount"`
}

// MutationResult carries the server-confirmed balance after a top-up or
// purchase. NewBalance is authoritative over any locally displayed value.
type MutationResult struct {
	NewBalance int64 `json:"newBalance"`
}

// MutationResponse wraps a mutation result in the standard success envelope.
// Data is only meaningful when Success is true.
type MutationResponse struct {
	common.SuccessResponse
	Data MutationResult `json:"data"`
}
