package loan

import (
	"context"
	"errors"
	"testing"

	domain "peerlend-api/internal/domain/loan"
	userDomain "peerlend-api/internal/domain/user"
	"peerlend-api/internal/testutil/loanmock"
	"peerlend-api/internal/testutil/usermock"
	"peerlend-api/pkg/validate"

	"gorm.io/gorm"
)

const (
	lenderID   = uint64(1)
	borrowerID = uint64(2)
	strangerID = uint64(3)
)

func ptr[T any](v T) *T { return &v }

func knownUsers() *usermock.Repo {
	return usermock.Fixed(
		userDomain.User{ID: lenderID, Name: "Alice", Email: "alice@example.com"},
		userDomain.User{ID: borrowerID, Name: "Bob", Email: "bob@example.com"},
		userDomain.User{ID: strangerID, Name: "Carol", Email: "carol@example.com"},
	)
}

func validCreate() CreateLoanInput {
	return CreateLoanInput{
		Amount:        ptr(5000.0),
		InterestRate:  ptr(5.0),
		DurationYears: ptr(2),
		BorrowerID:    ptr(borrowerID),
	}
}

func storedLoan() *domain.Loan {
	return &domain.Loan{
		ID: 10, Amount: 5000, InterestRate: 5, DurationYears: 2,
		LenderID: lenderID, BorrowerID: borrowerID,
	}
}

// ----- Create -----

func TestCreate_Success_CallerBecomesLender(t *testing.T) {
	var created *domain.Loan
	uc := NewUsecase(&loanmock.Repo{
		CreateFn: func(ctx context.Context, l *domain.Loan) error {
			l.ID = 10
			created = l
			return nil
		},
	}, knownUsers())

	dto, err := uc.Create(context.Background(), lenderID, validCreate())
	if err != nil {
		t.Fatalf("Create err: %v", err)
	}
	if created == nil {
		t.Fatal("repo Create was not called")
	}
	if dto.LenderID != lenderID {
		t.Fatalf("lender_id = %d, want caller %d", dto.LenderID, lenderID)
	}
	if dto.BorrowerID != borrowerID {
		t.Fatalf("borrower_id = %d, want %d", dto.BorrowerID, borrowerID)
	}
	if dto.Lender == nil || dto.Lender.Name != "Alice" {
		t.Fatalf("lender summary not expanded: %+v", dto.Lender)
	}
	if dto.Borrower == nil || dto.Borrower.Name != "Bob" {
		t.Fatalf("borrower summary not expanded: %+v", dto.Borrower)
	}
}

func TestCreate_MissingFields(t *testing.T) {
	uc := NewUsecase(&loanmock.Repo{
		CreateFn: func(ctx context.Context, l *domain.Loan) error {
			t.Fatal("Create must not be called on invalid input")
			return nil
		},
	}, knownUsers())

	_, err := uc.Create(context.Background(), lenderID, CreateLoanInput{})
	var ve *validate.Error
	if !errors.As(err, &ve) {
		t.Fatalf("err = %v, want *validate.Error", err)
	}
	for _, f := range []string{"amount", "interest_rate", "duration_years", "borrower_id"} {
		if _, ok := ve.Fields[f]; !ok {
			t.Fatalf("missing reason for %q: %v", f, ve.Fields)
		}
	}
}

func TestCreate_OutOfRangeFields(t *testing.T) {
	uc := NewUsecase(&loanmock.Repo{}, knownUsers())

	in := validCreate()
	in.Amount = ptr(-1.0)
	in.DurationYears = ptr(0)

	_, err := uc.Create(context.Background(), lenderID, in)
	var ve *validate.Error
	if !errors.As(err, &ve) {
		t.Fatalf("err = %v, want *validate.Error", err)
	}
	if _, ok := ve.Fields["amount"]; !ok {
		t.Fatalf("negative amount not rejected: %v", ve.Fields)
	}
	if _, ok := ve.Fields["duration_years"]; !ok {
		t.Fatalf("zero duration not rejected: %v", ve.Fields)
	}
}

func TestCreate_ZeroAmountIsValid(t *testing.T) {
	uc := NewUsecase(&loanmock.Repo{}, knownUsers())

	in := validCreate()
	in.Amount = ptr(0.0)
	in.InterestRate = ptr(0.0)

	if _, err := uc.Create(context.Background(), lenderID, in); err != nil {
		t.Fatalf("zero amount/rate should be accepted, got %v", err)
	}
}

func TestCreate_UnknownBorrower(t *testing.T) {
	uc := NewUsecase(&loanmock.Repo{}, knownUsers())

	in := validCreate()
	in.BorrowerID = ptr(uint64(999))

	_, err := uc.Create(context.Background(), lenderID, in)
	var ve *validate.Error
	if !errors.As(err, &ve) {
		t.Fatalf("err = %v, want *validate.Error", err)
	}
	if _, ok := ve.Fields["borrower_id"]; !ok {
		t.Fatalf("unresolvable borrower not reported: %v", ve.Fields)
	}
}

func TestCreate_SelfLoanForbidden(t *testing.T) {
	uc := NewUsecase(&loanmock.Repo{
		CreateFn: func(ctx context.Context, l *domain.Loan) error {
			t.Fatal("Create must not be called for a self-loan")
			return nil
		},
	}, knownUsers())

	in := validCreate()
	in.BorrowerID = ptr(lenderID)

	_, err := uc.Create(context.Background(), lenderID, in)
	if !errors.Is(err, domain.ErrSelfLoan) {
		t.Fatalf("err = %v, want ErrSelfLoan", err)
	}
}

func TestCreate_SelfLoanCheckedAfterFieldValidation(t *testing.T) {
	// Invalid fields plus a self-loan: field validation must win.
	uc := NewUsecase(&loanmock.Repo{}, knownUsers())

	in := CreateLoanInput{BorrowerID: ptr(lenderID)}
	_, err := uc.Create(context.Background(), lenderID, in)
	var ve *validate.Error
	if !errors.As(err, &ve) {
		t.Fatalf("err = %v, want *validate.Error before the self-loan rule", err)
	}
}

// ----- Get / List -----

func TestGet_Success(t *testing.T) {
	uc := NewUsecase(&loanmock.Repo{
		GetByIDFn: func(ctx context.Context, id uint64) (*domain.Loan, error) {
			if id != 10 {
				return nil, gorm.ErrRecordNotFound
			}
			return storedLoan(), nil
		},
	}, knownUsers())

	dto, err := uc.Get(context.Background(), 10)
	if err != nil {
		t.Fatalf("Get err: %v", err)
	}
	if dto.ID != 10 || dto.Amount != 5000 || dto.DurationYears != 2 {
		t.Fatalf("unexpected dto: %+v", dto)
	}
	if dto.Lender == nil || dto.Borrower == nil {
		t.Fatalf("expected expanded summaries, got %+v", dto)
	}
}

func TestGet_NotFound(t *testing.T) {
	uc := NewUsecase(&loanmock.Repo{}, knownUsers())
	_, err := uc.Get(context.Background(), 999)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestList_EmptyIsNotAnError(t *testing.T) {
	uc := NewUsecase(&loanmock.Repo{}, knownUsers())
	dtos, err := uc.List(context.Background())
	if err != nil {
		t.Fatalf("List err: %v", err)
	}
	if len(dtos) != 0 {
		t.Fatalf("want empty result, got %d", len(dtos))
	}
}

func TestList_ExpandsUsersInOneLookup(t *testing.T) {
	calls := 0
	users := knownUsers()
	inner := users.GetByIDsFn
	users.GetByIDsFn = func(ctx context.Context, ids []uint64) (map[uint64]userDomain.User, error) {
		calls++
		return inner(ctx, ids)
	}

	uc := NewUsecase(&loanmock.Repo{
		ListFn: func(ctx context.Context) ([]domain.Loan, error) {
			return []domain.Loan{
				{ID: 1, LenderID: lenderID, BorrowerID: borrowerID},
				{ID: 2, LenderID: strangerID, BorrowerID: borrowerID},
			}, nil
		},
	}, users)

	dtos, err := uc.List(context.Background())
	if err != nil {
		t.Fatalf("List err: %v", err)
	}
	if len(dtos) != 2 {
		t.Fatalf("len = %d, want 2", len(dtos))
	}
	if calls != 1 {
		t.Fatalf("GetByIDs called %d times, want 1", calls)
	}
	if dtos[1].Lender == nil || dtos[1].Lender.Name != "Carol" {
		t.Fatalf("second loan lender: %+v", dtos[1].Lender)
	}
}

// ----- Update -----

func repoWithLoan(t *testing.T) (*loanmock.Repo, **domain.Loan) {
	t.Helper()
	current := storedLoan()
	repo := &loanmock.Repo{
		GetByIDFn: func(ctx context.Context, id uint64) (*domain.Loan, error) {
			if id != current.ID {
				return nil, gorm.ErrRecordNotFound
			}
			cp := *current
			return &cp, nil
		},
		SaveFn: func(ctx context.Context, l *domain.Loan) error {
			cp := *l
			current = &cp
			return nil
		},
	}
	return repo, &current
}

func TestUpdate_PartialInputTouchesOnlySuppliedFields(t *testing.T) {
	repo, current := repoWithLoan(t)
	uc := NewUsecase(repo, knownUsers())

	dto, err := uc.Update(context.Background(), lenderID, 10, UpdateLoanInput{Amount: ptr(6000.0)})
	if err != nil {
		t.Fatalf("Update err: %v", err)
	}
	if dto.Amount != 6000 {
		t.Fatalf("amount = %v, want 6000", dto.Amount)
	}
	got := *current
	if got.InterestRate != 5 || got.DurationYears != 2 {
		t.Fatalf("untouched fields changed: %+v", got)
	}
	if got.LenderID != lenderID || got.BorrowerID != borrowerID {
		t.Fatalf("immutable references changed: %+v", got)
	}
}

func TestUpdate_NotFoundPrecedesForbidden(t *testing.T) {
	// A non-owner probing a nonexistent loan must see NotFound, not Forbidden.
	uc := NewUsecase(&loanmock.Repo{}, knownUsers())
	_, err := uc.Update(context.Background(), strangerID, 999, UpdateLoanInput{Amount: ptr(6000.0)})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestUpdate_ForbiddenPrecedesValidation(t *testing.T) {
	// A non-owner with invalid input must see Forbidden; validation is never
	// attempted for unauthorized callers.
	repo, _ := repoWithLoan(t)
	uc := NewUsecase(repo, knownUsers())

	_, err := uc.Update(context.Background(), strangerID, 10, UpdateLoanInput{Amount: ptr(-1.0)})
	if !errors.Is(err, domain.ErrNotLender) {
		t.Fatalf("err = %v, want ErrNotLender", err)
	}
}

func TestUpdate_InvalidPartialInput(t *testing.T) {
	repo, current := repoWithLoan(t)
	uc := NewUsecase(repo, knownUsers())

	_, err := uc.Update(context.Background(), lenderID, 10, UpdateLoanInput{DurationYears: ptr(0)})
	var ve *validate.Error
	if !errors.As(err, &ve) {
		t.Fatalf("err = %v, want *validate.Error", err)
	}
	if got := *current; got.DurationYears != 2 {
		t.Fatalf("mutation applied despite validation failure: %+v", got)
	}
}

func TestUpdate_EmptyInputIsANoOpWrite(t *testing.T) {
	repo, current := repoWithLoan(t)
	uc := NewUsecase(repo, knownUsers())

	dto, err := uc.Update(context.Background(), lenderID, 10, UpdateLoanInput{})
	if err != nil {
		t.Fatalf("Update err: %v", err)
	}
	got := *current
	if got.Amount != 5000 || got.InterestRate != 5 || got.DurationYears != 2 {
		t.Fatalf("fields changed on empty input: %+v", got)
	}
	if dto.Amount != 5000 {
		t.Fatalf("dto amount = %v", dto.Amount)
	}
}

// ----- Delete -----

func TestDelete_Success(t *testing.T) {
	repo, _ := repoWithLoan(t)
	deleted := uint64(0)
	repo.DeleteFn = func(ctx context.Context, id uint64) error {
		deleted = id
		return nil
	}
	uc := NewUsecase(repo, knownUsers())

	if err := uc.Delete(context.Background(), lenderID, 10); err != nil {
		t.Fatalf("Delete err: %v", err)
	}
	if deleted != 10 {
		t.Fatalf("deleted id = %d, want 10", deleted)
	}
}

func TestDelete_NotFoundPrecedesForbidden(t *testing.T) {
	uc := NewUsecase(&loanmock.Repo{}, knownUsers())
	if err := uc.Delete(context.Background(), strangerID, 999); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestDelete_NonOwnerForbidden(t *testing.T) {
	repo, _ := repoWithLoan(t)
	repo.DeleteFn = func(ctx context.Context, id uint64) error {
		t.Fatal("Delete must not be called for a non-owner")
		return nil
	}
	uc := NewUsecase(repo, knownUsers())

	if err := uc.Delete(context.Background(), strangerID, 10); !errors.Is(err, domain.ErrNotLender) {
		t.Fatalf("err = %v, want ErrNotLender", err)
	}
}

func TestDelete_AlreadyDeletedIsNotFound(t *testing.T) {
	// Deleting twice is not a no-op: the second call reports NotFound.
	current := storedLoan()
	repo := &loanmock.Repo{
		GetByIDFn: func(ctx context.Context, id uint64) (*domain.Loan, error) {
			if current == nil || id != 10 {
				return nil, gorm.ErrRecordNotFound
			}
			return current, nil
		},
		DeleteFn: func(ctx context.Context, id uint64) error {
			current = nil
			return nil
		},
	}
	uc := NewUsecase(repo, knownUsers())

	if err := uc.Delete(context.Background(), lenderID, 10); err != nil {
		t.Fatalf("first delete: %v", err)
	}
	if err := uc.Delete(context.Background(), lenderID, 10); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("second delete err = %v, want ErrNotFound", err)
	}
}
