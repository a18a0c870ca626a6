package dto

import (
	"fmt"

	"loanledger/internal/domain/customer"
)

type CustomerRequest struct {
	CustomerID int64  `json:"customerId"`
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	FatherName string `json:"fatherName"`
	MotherName string `json:"motherName"`
	MobileNo   string `json:"mobileNo"`
	Address    string `json:"address"`
	Type       string `json:"type"`
}

// Validate checks the identifier only. Name and address fields are plain
// strings that default to empty, so a blank firstName is a storable value.
func (r *CustomerRequest) Validate() error {
	if r.CustomerID <= 0 {
		return fmt.Errorf("customerId must be a positive number")
	}
	return nil
}

func (r *CustomerRequest) ToCustomer() *customer.Customer {
	return &customer.Customer{
		CustomerID: r.CustomerID,
		FirstName:  r.FirstName,
		LastName:   r.LastName,
		FatherName: r.FatherName,
		MotherName: r.MotherName,
		MobileNo:   r.MobileNo,
		Address:    r.Address,
		Type:       r.Type,
	}
}

type CustomerResponse struct {
	CustomerID int64  `json:"customerId"`
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	FatherName string `json:"fatherName"`
	MotherName string `json:"motherName"`
	MobileNo   string `json:"mobileNo"`
	Address    string `json:"address"`
	Type       string `json:"type"`
}

func NewCustomerResponse(cust *customer.Customer) CustomerResponse {
	if cust == nil {
		return CustomerResponse{}
	}
	return CustomerResponse{
		CustomerID: cust.CustomerID,
		FirstName:  cust.FirstName,
		LastName:   cust.LastName,
		FatherName: cust.FatherName,
		MotherName: cust.MotherName,
		MobileNo:   cust.MobileNo,
		Address:    cust.Address,
		Type:       cust.Type,
	}
}
