package database

import (
	"database/sql"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3" // SQLite driver
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
)

// New creates a new database connection pool.
func New(dataSourceName string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", dataSourceName+"?_foreign_keys=on")
	if err != nil {
		return nil, err
	}
	if err = db.Ping(); err != nil {
		return nil, err
	}
	return db, nil
}

// Migrate runs the SQL statements to set up the database schema.
func Migrate(db *sql.DB) error {
	const sqlStmt = `
	CREATE TABLE IF NOT EXISTS users (
		id TEXT NOT NULL PRIMARY KEY,
		name TEXT NOT NULL,
		mobile TEXT UNIQUE NOT NULL,
		account_number TEXT NOT NULL,
		ifsc_code TEXT NOT NULL,
		bank_name TEXT NOT NULL,
		password_hash TEXT NOT NULL,
		is_admin INTEGER NOT NULL DEFAULT 0,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS images (
		id TEXT NOT NULL PRIMARY KEY,
		user_id TEXT NOT NULL REFERENCES users(id),
		filename TEXT NOT NULL,
		status TEXT NOT NULL DEFAULT 'pending',
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_images_user_id ON images(user_id);
	`
	_, err := db.Exec(sqlStmt)
	return err
}

// SeedAdmin creates the predefined admin account if no user holds the admin
// mobile number yet. Repeated startups leave the existing row untouched.
func SeedAdmin(db *sql.DB, mobile, password string) error {
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM users WHERE mobile = ?", mobile).Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	_, err = db.Exec(
		"INSERT INTO users (id, name, mobile, account_number, ifsc_code, bank_name, password_hash, is_admin) VALUES (?, ?, ?, ?, ?, ?, ?, 1)",
		uuid.New().String(), "Admin", mobile, "0000000000", "BANK000000", "Admin Bank", string(hashedPassword),
	)
	if err != nil {
		return err
	}

	log.Info().Str("mobile", mobile).Msg("Admin account created")
	return nil
}
