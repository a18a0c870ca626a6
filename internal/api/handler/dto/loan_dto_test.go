package dto

import (
	"testing"
	"time"

	"loanledger/internal/domain/loan"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestLoanRequestValidate(t *testing.T) {
	t.Run("valid request passes", func(t *testing.T) {
		req := LoanRequest{LoanNumber: 5001, CustomerID: 101, Amount: "25000", IssueDate: "2025-03-10"}
		assert.NoError(t, req.Validate())
	})

	t.Run("missing loan number fails", func(t *testing.T) {
		req := LoanRequest{CustomerID: 101, Amount: "25000", IssueDate: "2025-03-10"}
		assert.Error(t, req.Validate())
	})

	t.Run("missing customer id fails", func(t *testing.T) {
		req := LoanRequest{LoanNumber: 5001, Amount: "25000", IssueDate: "2025-03-10"}
		assert.Error(t, req.Validate())
	})

	t.Run("identifiers alone are enough", func(t *testing.T) {
		req := LoanRequest{LoanNumber: 5001, CustomerID: 101}
		assert.NoError(t, req.Validate())
	})
}

func TestLoanRequestToLoan(t *testing.T) {
	t.Run("parses decimals and date", func(t *testing.T) {
		req := LoanRequest{
			LoanNumber: 5001,
			CustomerID: 101,
			LoanType:   "Gold",
			Amount:     "25000.50",
			Interest:   "2.5",
			IssueDate:  "2025-03-10",
			AdvancePay: "500",
		}

		l, err := req.ToLoan()
		assert.NoError(t, err)
		assert.Equal(t, int64(5001), l.LoanNumber)
		assert.True(t, l.Amount.Equal(decimal.RequireFromString("25000.50")))
		assert.True(t, l.Interest.Equal(decimal.RequireFromString("2.5")))
		assert.Equal(t, time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC), l.IssueDate)
	})

	t.Run("defaults status when omitted", func(t *testing.T) {
		req := LoanRequest{LoanNumber: 5001, CustomerID: 101, Amount: "25000", IssueDate: "2025-03-10"}
		l, err := req.ToLoan()
		assert.NoError(t, err)
		assert.Equal(t, loan.StatusNormal, l.Status)
	})

	t.Run("empty interest and advance pay default to zero", func(t *testing.T) {
		req := LoanRequest{LoanNumber: 5001, CustomerID: 101, Amount: "25000", IssueDate: "2025-03-10"}
		l, err := req.ToLoan()
		assert.NoError(t, err)
		assert.True(t, l.Interest.IsZero())
		assert.True(t, l.AdvancePay.IsZero())
	})

	t.Run("blank amount and issue date default to zero values", func(t *testing.T) {
		req := LoanRequest{LoanNumber: 5001, CustomerID: 101}
		l, err := req.ToLoan()
		assert.NoError(t, err)
		assert.True(t, l.Amount.IsZero())
		assert.True(t, l.IssueDate.IsZero())
	})

	t.Run("rejects malformed amount", func(t *testing.T) {
		req := LoanRequest{LoanNumber: 5001, CustomerID: 101, Amount: "twenty", IssueDate: "2025-03-10"}
		_, err := req.ToLoan()
		assert.Error(t, err)
	})

	t.Run("rejects malformed issue date", func(t *testing.T) {
		req := LoanRequest{LoanNumber: 5001, CustomerID: 101, Amount: "25000", IssueDate: "10/03/2025"}
		_, err := req.ToLoan()
		assert.Error(t, err)
	})
}

func TestNewLoanResponse(t *testing.T) {
	l := &loan.Loan{
		LoanNumber: 5001,
		CustomerID: 101,
		LoanType:   "Gold",
		Amount:     decimal.NewFromInt(25000),
		Interest:   decimal.NewFromFloat(2.5),
		IssueDate:  time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC),
		Status:     loan.StatusOpen,
	}

	resp := NewLoanResponse(l)
	assert.Equal(t, int64(5001), resp.LoanNumber)
	assert.Equal(t, int64(101), resp.CustomerID)
	assert.True(t, resp.Amount.Equal(l.Amount))
	assert.Equal(t, loan.StatusOpen, resp.Status)

	assert.Equal(t, LoanResponse{}, NewLoanResponse(nil))
}
