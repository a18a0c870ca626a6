package dto

import (
	"fmt"
	"time"

	"loanledger/internal/domain/entry"

	"github.com/shopspring/decimal"
)

type EntryRequest struct {
	EntryID    int64  `json:"entryId"`
	LoanNumber int64  `json:"loanNumber"`
	CustomerID int64  `json:"customerId"`
	PayDate    string `json:"payDate"`
	PayAmount  int64  `json:"payAmount"`
	Validity   string `json:"validity"`
	PayType    string `json:"payType"`
	EntryType  string `json:"entryType"`
}

// Validate checks the identifiers only. Dates fall back to the zero time
// when blank, matching the stored defaults.
func (r *EntryRequest) Validate() error {
	if r.EntryID <= 0 {
		return fmt.Errorf("entryId must be a positive number")
	}
	if r.LoanNumber <= 0 {
		return fmt.Errorf("loanNumber must be a positive number")
	}
	return nil
}

func (r *EntryRequest) ToEntry() (*entry.Entry, error) {
	payDate, err := parseDateField(r.PayDate, "payDate")
	if err != nil {
		return nil, err
	}
	validity, err := parseDateField(r.Validity, "validity")
	if err != nil {
		return nil, err
	}

	e := &entry.Entry{
		EntryID:    r.EntryID,
		LoanNumber: r.LoanNumber,
		CustomerID: r.CustomerID,
		PayDate:    payDate,
		PayAmount:  r.PayAmount,
		Validity:   validity,
		PayType:    r.PayType,
		EntryType:  r.EntryType,
	}
	e.Normalize()
	return e, nil
}

type EntryResponse struct {
	EntryID    int64     `json:"entryId"`
	LoanNumber int64     `json:"loanNumber"`
	CustomerID int64     `json:"customerId"`
	PayDate    time.Time `json:"payDate"`
	PayAmount  int64     `json:"payAmount"`
	Validity   time.Time `json:"validity"`
	PayType    string    `json:"payType"`
	EntryType  string    `json:"entryType"`
}

func NewEntryResponse(e *entry.Entry) EntryResponse {
	if e == nil {
		return EntryResponse{}
	}
	return EntryResponse{
		EntryID:    e.EntryID,
		LoanNumber: e.LoanNumber,
		CustomerID: e.CustomerID,
		PayDate:    e.PayDate,
		PayAmount:  e.PayAmount,
		Validity:   e.Validity,
		PayType:    e.PayType,
		EntryType:  e.EntryType,
	}
}

type ExpiringLoanSummary struct {
	LoanNumber int64           `json:"loanNumber"`
	Amount     decimal.Decimal `json:"amount"`
	CustomerID int64           `json:"customerId"`
	Status     string          `json:"status"`
}

type ExpiringCustomerSummary struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Address   string `json:"address"`
}

type ExpiringLoanResponse struct {
	LoanNumber  int64                   `json:"loanNumber"`
	MaxValidity time.Time               `json:"maxValidity"`
	Loan        ExpiringLoanSummary     `json:"loan"`
	Customer    ExpiringCustomerSummary `json:"customer"`
}

func NewExpiringLoanResponse(row *entry.ExpiringLoan) ExpiringLoanResponse {
	if row == nil {
		return ExpiringLoanResponse{}
	}
	return ExpiringLoanResponse{
		LoanNumber:  row.LoanNumber,
		MaxValidity: row.MaxValidity,
		Loan: ExpiringLoanSummary{
			LoanNumber: row.Loan.LoanNumber,
			Amount:     row.Loan.Amount,
			CustomerID: row.Loan.CustomerID,
			Status:     row.Loan.Status,
		},
		Customer: ExpiringCustomerSummary{
			FirstName: row.Customer.FirstName,
			LastName:  row.Customer.LastName,
			Address:   row.Customer.Address,
		},
	}
}
