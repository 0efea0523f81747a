// Package models holds the domain types shared between the API client and the
// rest of the CLI. All monetary amounts are whole naira (no minor units).
package models

import "time"

// Wallet is a user's stored balance used to fund airtime purchases.
type Wallet struct {
	Balance int64 `json:"balance"`
}

// User represents an account on the airtime platform.
type User struct {
	ID        string `json:"id,omitempty"`
	Email     string `json:"email"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
	Wallet    Wallet `json:"wallet"`
}

// Transaction is a server-assigned, immutable wallet ledger entry.
type Transaction struct {
	Type         string    `json:"type"` // "credit" or "debit"
	Description  string    `json:"description"`
	Amount       int64     `json:"amount"`
	BalanceAfter int64     `json:"balanceAfter"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Transaction types
const (
	TransactionCredit = "credit"
	TransactionDebit  = "debit"
)

// IsCredit reports whether the transaction increased the balance.
func (t Transaction) IsCredit() bool {
	return t.Type == TransactionCredit
}
