package services

import (
	"bytes"
	"database/sql"
	"mime/multipart"
	"path/filepath"
	"testing"

	"github.com/google/uuid"

	"kycboard/internal/database"
	"kycboard/internal/ledger"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := database.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Could not open test database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("Could not migrate test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func newTestLedger(t *testing.T) *ledger.Recorder {
	t.Helper()
	return ledger.NewRecorder(filepath.Join(t.TempDir(), "users.csv"))
}

// insertUser creates a user row directly, bypassing registration.
func insertUser(t *testing.T, db *sql.DB, mobile string) string {
	t.Helper()
	id := uuid.New().String()
	_, err := db.Exec(
		"INSERT INTO users (id, name, mobile, account_number, ifsc_code, bank_name, password_hash, is_admin) VALUES (?, ?, ?, ?, ?, ?, ?, 0)",
		id, "Test User", mobile, "123456", "BANK0001", "Test Bank", "x",
	)
	if err != nil {
		t.Fatalf("Could not insert test user: %v", err)
	}
	return id
}

// fileHeaders builds multipart file headers the way an upload request would.
func fileHeaders(t *testing.T, names ...string) []*multipart.FileHeader {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for _, name := range names {
		fw, err := mw.CreateFormFile("images", name)
		if err != nil {
			t.Fatalf("CreateFormFile failed: %v", err)
		}
		if _, err := fw.Write([]byte("data-" + name)); err != nil {
			t.Fatalf("Could not write file content: %v", err)
		}
	}
	mw.Close()

	form, err := multipart.NewReader(&buf, mw.Boundary()).ReadForm(32 << 20)
	if err != nil {
		t.Fatalf("ReadForm failed: %v", err)
	}
	t.Cleanup(func() { form.RemoveAll() })
	return form.File["images"]
}
