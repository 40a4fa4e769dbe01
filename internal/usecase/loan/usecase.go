package loan

import (
	"context"
	"errors"

	"peerlend-api/internal/domain/loan"
	"peerlend-api/internal/domain/user"
	"peerlend-api/pkg/validate"

	"gorm.io/gorm"
)

type Usecase struct {
	loans loan.Repository
	users user.Repository
}

func NewUsecase(loans loan.Repository, users user.Repository) *Usecase {
	return &Usecase{loans: loans, users: users}
}

// List returns every loan, expanded with lender/borrower summaries.
// Public: no caller identity involved. An empty ledger is a valid result.
func (u *Usecase) List(ctx context.Context) ([]LoanDTO, error) {
	ls, err := u.loans.List(ctx)
	if err != nil {
		return nil, err
	}

	ids := make([]uint64, 0, len(ls)*2)
	seen := make(map[uint64]struct{}, len(ls)*2)
	for i := range ls {
		for _, id := range []uint64{ls[i].LenderID, ls[i].BorrowerID} {
			if _, ok := seen[id]; !ok {
				seen[id] = struct{}{}
				ids = append(ids, id)
			}
		}
	}
	um, err := u.users.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	out := make([]LoanDTO, 0, len(ls))
	for i := range ls {
		out = append(out, toDTO(&ls[i], um))
	}
	return out, nil
}

// Get returns one loan by id, expanded. Public.
func (u *Usecase) Get(ctx context.Context, id uint64) (*LoanDTO, error) {
	l, err := u.loans.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, loan.ErrNotFound
		}
		return nil, err
	}
	return u.expand(ctx, l)
}

// Create validates the input, resolves the borrower, rejects self-loans and
// persists a loan owned by the caller. The caller becomes the lender; this
// is the only place identity is used as a field value rather than compared
// against one.
func (u *Usecase) Create(ctx context.Context, callerID uint64, in CreateLoanInput) (*LoanDTO, error) {
	if fields := validate.Struct(in); fields != nil {
		return nil, &validate.Error{Fields: fields}
	}

	// borrower_id must resolve to an existing user; treated as a field failure
	if _, err := u.users.GetByID(ctx, *in.BorrowerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &validate.Error{Fields: map[string]string{
				"borrower_id": "does not reference an existing user",
			}}
		}
		return nil, err
	}

	// business rule, checked only after field validation passes
	if callerID == *in.BorrowerID {
		return nil, loan.ErrSelfLoan
	}

	l := &loan.Loan{
		Amount:        *in.Amount,
		InterestRate:  *in.InterestRate,
		DurationYears: *in.DurationYears,
		LenderID:      callerID,
		BorrowerID:    *in.BorrowerID,
	}
	if err := u.loans.Create(ctx, l); err != nil {
		return nil, err
	}
	return u.expand(ctx, l)
}

// Update applies a partial mutation. Guard order is the contract:
// existence, then ownership, then input validation. A non-owner probing a
// missing id learns only "not found"; a non-owner with garbage input learns
// only "forbidden".
func (u *Usecase) Update(ctx context.Context, callerID, id uint64, in UpdateLoanInput) (*LoanDTO, error) {
	l, err := u.loans.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, loan.ErrNotFound
		}
		return nil, err
	}
	if l.LenderID != callerID {
		return nil, loan.ErrNotLender
	}
	if fields := validate.Struct(in); fields != nil {
		return nil, &validate.Error{Fields: fields}
	}

	if in.Amount != nil {
		l.Amount = *in.Amount
	}
	if in.InterestRate != nil {
		l.InterestRate = *in.InterestRate
	}
	if in.DurationYears != nil {
		l.DurationYears = *in.DurationYears
	}
	if err := u.loans.Save(ctx, l); err != nil {
		return nil, err
	}
	return u.expand(ctx, l)
}

// Delete permanently removes a loan. Same guard order as Update.
func (u *Usecase) Delete(ctx context.Context, callerID, id uint64) error {
	l, err := u.loans.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return loan.ErrNotFound
		}
		return err
	}
	if l.LenderID != callerID {
		return loan.ErrNotLender
	}
	return u.loans.Delete(ctx, l.ID)
}

func (u *Usecase) expand(ctx context.Context, l *loan.Loan) (*LoanDTO, error) {
	um, err := u.users.GetByIDs(ctx, []uint64{l.LenderID, l.BorrowerID})
	if err != nil {
		return nil, err
	}
	dto := toDTO(l, um)
	return &dto, nil
}

func toDTO(l *loan.Loan, users map[uint64]user.User) LoanDTO {
	dto := LoanDTO{
		ID:            l.ID,
		Amount:        l.Amount,
		InterestRate:  l.InterestRate,
		DurationYears: l.DurationYears,
		LenderID:      l.LenderID,
		BorrowerID:    l.BorrowerID,
		CreatedAt:     l.CreatedAt,
		UpdatedAt:     l.UpdatedAt,
	}
	if u, ok := users[l.LenderID]; ok {
		dto.Lender = &UserSummary{ID: u.ID, Name: u.Name, Email: u.Email}
	}
	if u, ok := users[l.BorrowerID]; ok {
		dto.Borrower = &UserSummary{ID: u.ID, Name: u.Name, Email: u.Email}
	}
	return dto
}
