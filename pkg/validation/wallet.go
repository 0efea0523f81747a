// Package validation holds the client-side rules applied to wallet mutations
// before any request is sent. The server remains authoritative; these checks
// only prevent obviously invalid submissions from reaching the network.
package validation

import (
	"fmt"
	"strings"
)

// Top-up and purchase bounds, in whole naira.
const (
	MinTopUpAmount    int64 = 100
	MaxTopUpAmount    int64 = 50000
	MinPurchaseAmount int64 = 50
	MaxPurchaseAmount int64 = 10000
)

// Networks is the fixed set of supported mobile network providers.
var Networks = []string{"MTN", "Airtel", "Glo", "9mobile"}

// IsValidNetwork reports whether provider is one of the supported networks.
// Matching is case-insensitive; command input is normalized before submission.
func IsValidNetwork(provider string) bool {
	for _, n := range Networks {
		if strings.EqualFold(n, provider) {
			return true
		}
	}
	return false
}

// NormalizeNetwork returns the canonical spelling for a provider, or the input
// unchanged when it is not a known network.
func NormalizeNetwork(provider string) string {
	for _, n := range Networks {
		if strings.EqualFold(n, provider) {
			return n
		}
	}
	return provider
}

// ValidateTopUp checks a top-up amount. A nil return means the amount may be
// submitted; any error is resolved locally with no network call.
func ValidateTopUp(amount int64) error {
	if amount <= 0 {
		return fmt.Errorf("please enter a valid amount")
	}
	if amount < MinTopUpAmount {
		return fmt.Errorf("minimum top-up amount is ₦%d", MinTopUpAmount)
	}
	if amount > MaxTopUpAmount {
		return fmt.Errorf("maximum top-up amount is ₦%d", MaxTopUpAmount)
	}
	return nil
}

// ValidatePurchase checks an airtime purchase against the currently displayed
// balance. The balance check is advisory: the server's verdict wins even when
// this check passed on stale data.
func ValidatePurchase(phoneNumber, network string, amount, balance int64) error {
	if strings.TrimSpace(phoneNumber) == "" {
		return fmt.Errorf("please enter a phone number")
	}
	if amount <= 0 {
		return fmt.Errorf("please enter a valid amount")
	}
	if !IsValidNetwork(network) {
		return fmt.Errorf("please select a valid network (%s)", strings.Join(Networks, ", "))
	}
	if amount > balance {
		return fmt.Errorf("insufficient balance. Current balance: ₦%d", balance)
	}
	if amount < MinPurchaseAmount {
		return fmt.Errorf("minimum purchase amount is ₦%d", MinPurchaseAmount)
	}
	if amount > MaxPurchaseAmount {
		return fmt.Errorf("maximum purchase amount is ₦%d", MaxPurchaseAmount)
	}
	return nil
}
