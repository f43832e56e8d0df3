package errors

var (
	ErrInsufficientCredits = &DomainError{
		Code:    "INSUFFICIENT_CREDITS",
		Message: "insufficient company credits",
	}
	ErrInsufficientBalance = &DomainError{
		Code:    "INSUFFICIENT_BALANCE",
		Message: "insufficient employee points",
	}
	ErrInvalidAmount = &DomainError{
		Code:    "INVALID_AMOUNT",
		Message: "invalid amount",
	}
	ErrServiceLocked = &DomainError{
		Code:    "SERVICE_LOCKED",
		Message: "service has been redeemed against and cannot change",
	}
)
