package dto

import (
	"fmt"
	"strings"
	"time"

	"loanledger/internal/domain/loan"

	"github.com/shopspring/decimal"
)

type LoanRequest struct {
	LoanNumber int64  `json:"loanNumber"`
	CustomerID int64  `json:"customerId"`
	LoanType   string `json:"loanType"`
	Amount     string `json:"amount"`
	Interest   string `json:"interest"`
	IssueDate  string `json:"issueDate"`
	Document   string `json:"document"`
	AdvancePay string `json:"advancePay"`
	Status     string `json:"status"`
}

// Validate checks the identifiers only. The remaining fields fall back to
// their zero values when blank, matching the stored defaults.
func (r *LoanRequest) Validate() error {
	if r.LoanNumber <= 0 {
		return fmt.Errorf("loanNumber must be a positive number")
	}
	if r.CustomerID <= 0 {
		return fmt.Errorf("customerId must be a positive number")
	}
	return nil
}

// parseDecimalField parses an optional decimal carried as a string. Blank
// means zero.
func parseDecimalField(value, field string) (decimal.Decimal, error) {
	if strings.TrimSpace(value) == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("invalid %s: %s", field, value)
	}
	return d, nil
}

// parseDateField parses an optional YYYY-MM-DD date. Blank means the zero
// time.
func parseDateField(value, field string) (time.Time, error) {
	if strings.TrimSpace(value) == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(time.RFC3339[:10], value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid %s, expected YYYY-MM-DD: %s", field, value)
	}
	return t, nil
}

func (r *LoanRequest) ToLoan() (*loan.Loan, error) {
	amount, err := parseDecimalField(r.Amount, "amount")
	if err != nil {
		return nil, err
	}
	interest, err := parseDecimalField(r.Interest, "interest")
	if err != nil {
		return nil, err
	}
	advancePay, err := parseDecimalField(r.AdvancePay, "advancePay")
	if err != nil {
		return nil, err
	}
	issueDate, err := parseDateField(r.IssueDate, "issueDate")
	if err != nil {
		return nil, err
	}

	l := &loan.Loan{
		LoanNumber: r.LoanNumber,
		CustomerID: r.CustomerID,
		LoanType:   r.LoanType,
		Amount:     amount,
		Interest:   interest,
		IssueDate:  issueDate,
		Document:   r.Document,
		AdvancePay: advancePay,
		Status:     r.Status,
	}
	l.Normalize()
	return l, nil
}

type LoanResponse struct {
	LoanNumber int64           `json:"loanNumber"`
	CustomerID int64           `json:"customerId"`
	LoanType   string          `json:"loanType"`
	Amount     decimal.Decimal `json:"amount"`
	Interest   decimal.Decimal `json:"interest"`
	IssueDate  time.Time       `json:"issueDate"`
	Document   string          `json:"document"`
	AdvancePay decimal.Decimal `json:"advancePay"`
	Status     string          `json:"status"`
}

func NewLoanResponse(l *loan.Loan) LoanResponse {
	if l == nil {
		return LoanResponse{}
	}
	return LoanResponse{
		LoanNumber: l.LoanNumber,
		CustomerID: l.CustomerID,
		LoanType:   l.LoanType,
		Amount:     l.Amount,
		Interest:   l.Interest,
		IssueDate:  l.IssueDate,
		Document:   l.Document,
		AdvancePay: l.AdvancePay,
		Status:     l.Status,
	}
}
