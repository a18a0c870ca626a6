package entry

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	// DefaultPayType is used when a payment entry does not name one.
	DefaultPayType = "Cash"
	// DefaultEntryType is used when a payment entry does not name one.
	DefaultEntryType = "Interest"
)

// Entry is a single payment record against a loan. EntryID is the
// caller-supplied primary key. LoanNumber and CustomerID reference a loan
// and a customer but are not enforced as foreign keys by the store.
type Entry struct {
	EntryID    int64     `json:"entryId"`
	LoanNumber int64     `json:"loanNumber"`
	CustomerID int64     `json:"customerId"`
	PayDate    time.Time `json:"payDate"`
	PayAmount  int64     `json:"payAmount"`
	Validity   time.Time `json:"validity"`
	PayType    string    `json:"payType"`
	EntryType  string    `json:"entryType"`
}

// Normalize fills entity defaults on a freshly created entry.
func (e *Entry) Normalize() {
	if e.PayType == "" {
		e.PayType = DefaultPayType
	}
	if e.EntryType == "" {
		e.EntryType = DefaultEntryType
	}
}

// ApplyUpdate returns the existing entry with every mutable field overwritten
// from the incoming payload. Full replacement, exhaustive over fields.
func ApplyUpdate(existing, incoming Entry) Entry {
	existing.LoanNumber = incoming.LoanNumber
	existing.CustomerID = incoming.CustomerID
	existing.PayDate = incoming.PayDate
	existing.PayAmount = incoming.PayAmount
	existing.Validity = incoming.Validity
	existing.PayType = incoming.PayType
	existing.EntryType = incoming.EntryType
	return existing
}

// LoanSummary is the slice of the loan row carried by the expiring report.
type LoanSummary struct {
	LoanNumber int64           `json:"loanNumber"`
	Amount     decimal.Decimal `json:"amount"`
	CustomerID int64           `json:"customerId"`
	Status     string          `json:"status"`
}

// CustomerSummary is the slice of the customer row carried by the expiring
// report.
type CustomerSummary struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Address   string `json:"address"`
}

// ExpiringLoan is one row of the expiring-loan report: an open loan grouped
// with the latest payment validity across all of its entries.
type ExpiringLoan struct {
	LoanNumber  int64           `json:"loanNumber"`
	MaxValidity time.Time       `json:"maxValidity"`
	Loan        LoanSummary     `json:"loan"`
	Customer    CustomerSummary `json:"customer"`
}

// MonthsSince counts calendar-month boundaries crossed between the validity
// date and now: (yearNow-yearV)*12 + (monthNow-monthV). Days are ignored, so
// Jan 31st to Feb 1st counts as one month. The store's own month-difference
// rounding varies by backend; this fixed definition is the one the report
// uses everywhere.
func MonthsSince(now, validity time.Time) int {
	return (now.Year()-validity.Year())*12 + int(now.Month()) - int(validity.Month())
}

// FilterExpiring keeps the report rows whose latest validity is at least one
// whole calendar month in the past.
func FilterExpiring(rows []*ExpiringLoan, now time.Time) []*ExpiringLoan {
	expiring := make([]*ExpiringLoan, 0, len(rows))
	for _, row := range rows {
		if MonthsSince(now, row.MaxValidity) >= 1 {
			expiring = append(expiring, row)
		}
	}
	return expiring
}
