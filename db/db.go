package db

import (
	"database/sql"

	_ "github.com/lib/pq"
)

// Database holds the console's own Postgres connection. The chat data lives
// upstream; this database only backs console accounts.
type Database struct {
	DB *sql.DB
}

func New(connStr string) (*Database, error) {
	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, err
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, err
	}

	return &Database{DB: db}, nil
}

func (d *Database) Close() error {
	return d.DB.Close()
}
