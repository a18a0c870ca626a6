package user

// User is a registered API account. Accounts are created by registration and
// never updated or deleted through this service.
type User struct {
	ID           int64  `json:"id"`
	Username     string `json:"username"`
	PasswordHash string `json:"-"`
}
