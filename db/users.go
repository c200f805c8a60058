package db

import (
	"context"
	"database/sql"
)

type User struct {
	ID           string
	Email        string
	PasswordHash string
	Role         string
}

var ErrUserNotFound = sql.ErrNoRows

// GetUserByEmail looks up a console account for login.
func (d *Database) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	var user User
	err := d.DB.QueryRowContext(ctx, `
        SELECT u.id, u.email, u.password_hash, u.role
        FROM users u
        WHERE u.email = $1
    `, email).Scan(&user.ID, &user.Email, &user.PasswordHash, &user.Role)
	if err != nil {
		return nil, err
	}
	return &user, nil
}
