package loan

import "errors"

var (
	// ErrNotFound: no loan with the requested id.
	ErrNotFound = errors.New("loan not found")
	// ErrNotLender: the caller is authenticated but is not the loan's lender.
	ErrNotLender = errors.New("only the original lender can modify this loan")
	// ErrSelfLoan: lender and borrower would be the same user. A business
	// rule, not a field failure, but surfaced with the validation-class code.
	ErrSelfLoan = errors.New("the lender and borrower cannot be the same user")
)
