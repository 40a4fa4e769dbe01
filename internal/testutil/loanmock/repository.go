package loanmock

import (
	"context"

	domain "peerlend-api/internal/domain/loan"

	"gorm.io/gorm"
)

// Repo is a function-backed mock that satisfies loan.Repository.
// Unset methods behave like an empty table.
type Repo struct {
	CreateFn  func(ctx context.Context, l *domain.Loan) error
	GetByIDFn func(ctx context.Context, id uint64) (*domain.Loan, error)
	ListFn    func(ctx context.Context) ([]domain.Loan, error)
	SaveFn    func(ctx context.Context, l *domain.Loan) error
	DeleteFn  func(ctx context.Context, id uint64) error
}

func (m *Repo) Create(ctx context.Context, l *domain.Loan) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, l)
	}
	return nil
}

func (m *Repo) GetByID(ctx context.Context, id uint64) (*domain.Loan, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *Repo) List(ctx context.Context) ([]domain.Loan, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx)
	}
	return nil, nil
}

func (m *Repo) Save(ctx context.Context, l *domain.Loan) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, l)
	}
	return nil
}

func (m *Repo) Delete(ctx context.Context, id uint64) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}
	return nil
}
