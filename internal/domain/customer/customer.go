package customer

// Customer is a loan-office customer profile. The CustomerID is supplied by
// the caller at creation time and acts as the primary key.
type Customer struct {
	CustomerID int64  `json:"customerId"`
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	FatherName string `json:"fatherName"`
	MotherName string `json:"motherName"`
	MobileNo   string `json:"mobileNo"`
	Address    string `json:"address"`
	Type       string `json:"type"`
}

// ApplyUpdate returns the existing customer with every mutable field
// overwritten from the incoming payload. Updates are full replacements,
// never partial patches; keeping this exhaustive in one place means a new
// field cannot be silently dropped by one of the update paths.
func ApplyUpdate(existing, incoming Customer) Customer {
	existing.FirstName = incoming.FirstName
	existing.LastName = incoming.LastName
	existing.FatherName = incoming.FatherName
	existing.MotherName = incoming.MotherName
	existing.MobileNo = incoming.MobileNo
	existing.Address = incoming.Address
	existing.Type = incoming.Type
	return existing
}
