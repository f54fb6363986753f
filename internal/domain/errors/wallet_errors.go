package errors

import "errors"

// Wallet and ledger engine errors
var (
	// ErrWalletNotFound indicates no wallet record exists for the member
	ErrWalletNotFound = errors.New("wallet not found")

	// ErrInsufficientFunds indicates an attempted debit exceeds the balance
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrInvalidAmount indicates a non-positive or non-numeric amount
	ErrInvalidAmount = errors.New("invalid amount")

	// ErrBelowMinimum indicates a purchase below the platform floor
	ErrBelowMinimum = errors.New("amount below minimum purchase")

	// ErrInvalidAddress indicates an external transfer with an empty or
	// malformed destination address
	ErrInvalidAddress = errors.New("invalid external address")

	// ErrSameWallet indicates a transfer where source equals destination
	ErrSameWallet = errors.New("source and destination wallets must differ")

	// ErrInvalidWalletCategory indicates an unknown wallet bucket
	ErrInvalidWalletCategory = errors.New("invalid wallet category")

	// ErrUserNotFound indicates the member record does not exist
	ErrUserNotFound = errors.New("user not found")

	// ErrPackageNotFound indicates the catalog entry does not exist
	ErrPackageNotFound = errors.New("package not found")
)

// InsufficientFundsError creates an insufficient funds error with context
func InsufficientFundsError(category, have, need string) *DomainError {
	return &DomainError{
		Err:     ErrInsufficientFunds,
		Code:    "INSUFFICIENT_FUNDS",
		Message: "insufficient funds",
		Details: map[string]interface{}{
			"wallet": category,
			"have":   have,
			"need":   need,
		},
	}
}

// InvalidAmountError creates an invalid amount error
func InvalidAmountError(amount string) *DomainError {
	return &DomainError{
		Err:     ErrInvalidAmount,
		Code:    "INVALID_AMOUNT",
		Message: "amount must be positive",
		Details: map[string]interface{}{"amount": amount},
	}
}

// BelowMinimumError creates a below-minimum purchase error
func BelowMinimumError(amount, minimum string) *DomainError {
	return &DomainError{
		Err:     ErrBelowMinimum,
		Code:    "BELOW_MINIMUM",
		Message: "purchase amount below platform minimum",
		Details: map[string]interface{}{
			"amount":  amount,
			"minimum": minimum,
		},
	}
}
