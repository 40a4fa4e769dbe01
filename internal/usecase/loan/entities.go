package loan

import "time"

// Pointer fields distinguish "absent" from "present but zero": amount 0 is
// a legal value, a missing amount is not.
type CreateLoanInput struct {
	Amount        *float64 `json:"amount" validate:"required,gte=0"`
	InterestRate  *float64 `json:"interest_rate" validate:"required,gte=0"`
	DurationYears *int     `json:"duration_years" validate:"required,min=1"`
	BorrowerID    *uint64  `json:"borrower_id" validate:"required"`
}

// UpdateLoanInput carries only the mutable fields; every field is optional
// and, when present, must satisfy the same constraints as creation. The
// lender and borrower references are immutable and deliberately absent.
type UpdateLoanInput struct {
	Amount        *float64 `json:"amount" validate:"omitempty,gte=0"`
	InterestRate  *float64 `json:"interest_rate" validate:"omitempty,gte=0"`
	DurationYears *int     `json:"duration_years" validate:"omitempty,min=1"`
}

type UserSummary struct {
	ID    uint64 `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type LoanDTO struct {
	ID            uint64       `json:"id"`
	Amount        float64      `json:"amount"`
	InterestRate  float64      `json:"interest_rate"`
	DurationYears int          `json:"duration_years"`
	LenderID      uint64       `json:"lender_id"`
	BorrowerID    uint64       `json:"borrower_id"`
	Lender        *UserSummary `json:"lender"`
	Borrower      *UserSummary `json:"borrower"`
	CreatedAt     time.Time    `json:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at"`
}
