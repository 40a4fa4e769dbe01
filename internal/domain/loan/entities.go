package loan

import "time"

// Loan is a peer-to-peer loan record. The lender is the creator and the
// only party allowed to mutate or delete the record; the borrower is the
// counterparty named at creation. Both references are fixed for the life
// of the record, only the amount, rate and duration may change.
type Loan struct {
	ID            uint64    `gorm:"primaryKey;column:id" json:"id"`
	Amount        float64   `gorm:"type:decimal(18,2);not null" json:"amount"`
	InterestRate  float64   `gorm:"type:decimal(6,2);not null" json:"interest_rate"`
	DurationYears int       `gorm:"not null" json:"duration_years"`
	LenderID      uint64    `gorm:"index:idx_loans_lender;not null" json:"lender_id"`
	BorrowerID    uint64    `gorm:"index:idx_loans_borrower;not null" json:"borrower_id"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Loan) TableName() string { return "loans" }
