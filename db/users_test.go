package db

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestGetUserByEmail(t *testing.T) {
	mockDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New() error = %v", err)
	}
	defer mockDB.Close()

	database := &Database{DB: mockDB}

	rows := sqlmock.NewRows([]string{"id", "email", "password_hash", "role"}).
		AddRow("u-1", "ops@example.com", "$2a$10$hash", "admin")
	mock.ExpectQuery("SELECT u.id, u.email, u.password_hash, u.role").
		WithArgs("ops@example.com").
		WillReturnRows(rows)

	user, err := database.GetUserByEmail(context.Background(), "ops@example.com")
	if err != nil {
		t.Fatalf("GetUserByEmail() error = %v", err)
	}
	if user.ID != "u-1" || user.Role != "admin" {
		t.Errorf("user = %+v", user)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestGetUserByEmailNotFound(t *testing.T) {
	mockDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New() error = %v", err)
	}
	defer mockDB.Close()

	database := &Database{DB: mockDB}

	mock.ExpectQuery("SELECT u.id, u.email, u.password_hash, u.role").
		WithArgs("nobody@example.com").
		WillReturnError(sql.ErrNoRows)

	_, err = database.GetUserByEmail(context.Background(), "nobody@example.com")
	if !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("error = %v, want sql.ErrNoRows", err)
	}
}
