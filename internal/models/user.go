package models

// User is the users table row.
type User struct {
	UserID         string  `db:"user_id"`
	Name           string  `db:"name"`
	Email          string  `db:"email"`
	PasswordHash   string  `db:"password_hash"`
	AuthProvider   string  `db:"auth_provider"`
	ProviderUserID *string `db:"provider_user_id"`
	IsVerified     bool    `db:"is_verified"`
	AuditFields
}
