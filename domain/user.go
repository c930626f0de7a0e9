package domain

// User is the identity attached to a verified connection. Guests never
// have one; they get a generated id at the gateway instead.
type User struct {
	ID       string
	Role     string
	Username string
}
