package loan

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	// StatusNormal is the default status for a newly issued loan.
	StatusNormal = "Normal"
	// StatusOpen marks a loan whose payment validity is tracked by the
	// expiring-loan report.
	StatusOpen = "Open"
)

// Loan is a loan issued to a customer. LoanNumber is the caller-supplied
// primary key; CustomerID references a customer profile but is not enforced
// as a foreign key by the store.
type Loan struct {
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

// Normalize fills entity defaults on a freshly created loan.
func (l *Loan) Normalize() {
	if l.Status == "" {
		l.Status = StatusNormal
	}
}

// ApplyUpdate returns the existing loan with every mutable field overwritten
// from the incoming payload. Full replacement, exhaustive over fields.
func ApplyUpdate(existing, incoming Loan) Loan {
	existing.CustomerID = incoming.CustomerID
	existing.LoanType = incoming.LoanType
	existing.Amount = incoming.Amount
	existing.Interest = incoming.Interest
	existing.IssueDate = incoming.IssueDate
	existing.Document = incoming.Document
	existing.AdvancePay = incoming.AdvancePay
	existing.Status = incoming.Status
	return existing
}
