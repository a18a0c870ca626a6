package event

import (
	"context"
	"time"
)

type Publisher interface {
	PublishEntryRecorded(ctx context.Context, event EntryRecordedEvent) error
	PublishLoanExpiring(ctx context.Context, event LoanExpiringEvent) error
}

type EntryEventPayload struct {
	EntryID    int64     `json:"entryId"`
	LoanNumber int64     `json:"loanNumber"`
	CustomerID int64     `json:"customerId"`
	PayDate    time.Time `json:"payDate"`
	PayAmount  int64     `json:"payAmount"`
	Validity   time.Time `json:"validity"`
	PayType    string    `json:"payType"`
	EntryType  string    `json:"entryType"`
}

type EntryRecordedEvent struct {
	Timestamp time.Time         `json:"timestamp"`
	Payload   EntryEventPayload `json:"payload"`
}

type LoanExpiringEvent struct {
	Timestamp   time.Time `json:"timestamp"`
	LoanNumber  int64     `json:"loanNumber"`
	CustomerID  int64     `json:"customerId"`
	MaxValidity time.Time `json:"maxValidity"`
}
