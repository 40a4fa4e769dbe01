package http

import (
	"errors"
	"net/http"
	"strconv"

	loanDomain "peerlend-api/internal/domain/loan"
	"peerlend-api/internal/adapter/middleware"
	"peerlend-api/internal/usecase/loan"
	"peerlend-api/pkg/validate"

	"github.com/labstack/echo/v4"
)

const (
	msgLoansRetrieved = "Loans retrieved successfully."
	msgLoanRetrieved  = "Loan retrieved successfully."
	msgLoanCreated    = "Loan created successfully."
	msgLoanUpdated    = "Loan updated successfully."
	msgLoanDeleted    = "Loan deleted successfully."

	msgLoanNotFound       = "Loan not found."
	msgLoanNotFoundUpdate = "Loan not found. Unable to update non-existing loan."
	msgLoanNotFoundDelete = "Loan not found. Unable to delete non-existing loan."
	msgNotLenderUpdate    = "Unauthorized. Only the original lender can update this loan."
	msgNotLenderDelete    = "Unauthorized. Only the original lender can delete this loan."
	msgSelfLoan           = "The lender and borrower cannot be the same user."
	msgValidationFailed   = "Validation failed. Please check the input fields."
	msgInvalidBody        = "Invalid request body."
	msgInternal           = "Something went wrong. Please try again later."
)

type LoanHandler struct{ uc *loan.Usecase }

func NewLoanHandler(uc *loan.Usecase) *LoanHandler { return &LoanHandler{uc: uc} }

// List is public; no caller identity is resolved.
func (h *LoanHandler) List(c echo.Context) error {
	dtos, err := h.uc.List(c.Request().Context())
	if err != nil {
		return fail(c, http.StatusInternalServerError, msgInternal, nil)
	}
	return success(c, http.StatusOK, msgLoansRetrieved, dtos)
}

// Get is public; a malformed id behaves like an unknown one.
func (h *LoanHandler) Get(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return fail(c, http.StatusNotFound, msgLoanNotFound, nil)
	}
	dto, err := h.uc.Get(c.Request().Context(), id)
	if err != nil {
		return h.loanError(c, err, msgLoanNotFound, "")
	}
	return success(c, http.StatusOK, msgLoanRetrieved, dto)
}

func (h *LoanHandler) Create(c echo.Context) error {
	var in loan.CreateLoanInput
	if err := c.Bind(&in); err != nil {
		return fail(c, http.StatusBadRequest, msgInvalidBody, nil)
	}
	dto, err := h.uc.Create(c.Request().Context(), middleware.CallerID(c), in)
	if err != nil {
		return h.loanError(c, err, msgLoanNotFound, "")
	}
	return success(c, http.StatusCreated, msgLoanCreated, dto)
}

func (h *LoanHandler) Update(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return fail(c, http.StatusNotFound, msgLoanNotFoundUpdate, nil)
	}
	var in loan.UpdateLoanInput
	if err := c.Bind(&in); err != nil {
		return fail(c, http.StatusBadRequest, msgInvalidBody, nil)
	}
	dto, err := h.uc.Update(c.Request().Context(), middleware.CallerID(c), id, in)
	if err != nil {
		return h.loanError(c, err, msgLoanNotFoundUpdate, msgNotLenderUpdate)
	}
	return success(c, http.StatusOK, msgLoanUpdated, dto)
}

func (h *LoanHandler) Delete(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return fail(c, http.StatusNotFound, msgLoanNotFoundDelete, nil)
	}
	if err := h.uc.Delete(c.Request().Context(), middleware.CallerID(c), id); err != nil {
		return h.loanError(c, err, msgLoanNotFoundDelete, msgNotLenderDelete)
	}
	return success(c, http.StatusOK, msgLoanDeleted, nil)
}

// loanError maps service error tags to status codes and the operation's
// message strings. No service error propagates unhandled past this point.
func (h *LoanHandler) loanError(c echo.Context, err error, notFoundMsg, forbiddenMsg string) error {
	var ve *validate.Error
	switch {
	case errors.As(err, &ve):
		return fail(c, http.StatusUnprocessableEntity, msgValidationFailed, ve.Fields)
	case errors.Is(err, loanDomain.ErrSelfLoan):
		return fail(c, http.StatusUnprocessableEntity, msgSelfLoan, nil)
	case errors.Is(err, loanDomain.ErrNotLender):
		return fail(c, http.StatusForbidden, forbiddenMsg, nil)
	case errors.Is(err, loanDomain.ErrNotFound):
		return fail(c, http.StatusNotFound, notFoundMsg, nil)
	default:
		return fail(c, http.StatusInternalServerError, msgInternal, nil)
	}
}

func parseID(c echo.Context) (uint64, error) {
	return strconv.ParseUint(c.Param("id"), 10, 64)
}
