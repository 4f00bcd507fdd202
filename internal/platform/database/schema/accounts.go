package schema

// AccountTable represents the 'accounts' table
type AccountTable struct {
	Table     string
	ID        string
	Username  string
	Email     string
	Password  string
	Role      string
	CreatedAt string
	UpdatedAt string
}

// RefAccount is the schema definition for accounts
var RefAccount = AccountTable{
	Table:     "accounts",
	ID:        "id",
	Username:  "username",
	Email:     "email",
	Password:  "password_hash",
	Role:      "role",
	CreatedAt: "created_at",
	UpdatedAt: "updated_at",
}
