package errors

var (
	ErrVoucherExpired = &DomainError{
		Code:    "VOUCHER_EXPIRED",
		Message: "voucher has expired",
	}
	ErrInvalidVoucher = &DomainError{
		Code:    "INVALID_VOUCHER",
		Message: "invalid voucher",
	}
	ErrAlreadyRedeemed = &DomainError{
		Code:    "ALREADY_REDEEMED",
		Message: "transaction is no longer pending",
	}
)
