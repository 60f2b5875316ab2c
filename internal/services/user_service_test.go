package services

import (
	"errors"
	"testing"

	"kycboard/internal/database"
)

func TestRegisterAndAuthenticate(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(db, newTestLedger(t))

	user, err := svc.Register("Alice", "5551234567", "111222333", "BANK0001", "First Bank", "secret")
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if user.ID == "" {
		t.Error("Registered user has no id")
	}
	if user.IsAdmin {
		t.Error("Registered user must not be an admin")
	}
	if user.PasswordHash != "" {
		t.Error("Register leaked the password hash")
	}

	got, err := svc.Authenticate("5551234567", "secret")
	if err != nil {
		t.Fatalf("Authenticate failed for correct password: %v", err)
	}
	if got.ID != user.ID {
		t.Errorf("Authenticated the wrong user: %s != %s", got.ID, user.ID)
	}

	if _, err := svc.Authenticate("5551234567", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("Expected ErrInvalidCredentials for wrong password, got %v", err)
	}
	if _, err := svc.Authenticate("0000000001", "secret"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("Expected ErrInvalidCredentials for unknown mobile, got %v", err)
	}
}

func TestRegisterDuplicateMobile(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(db, newTestLedger(t))

	if _, err := svc.Register("Alice", "5551234567", "111", "BANK0001", "First Bank", "secret"); err != nil {
		t.Fatalf("First register failed: %v", err)
	}
	if _, err := svc.Register("Mallory", "5551234567", "222", "BANK0002", "Other Bank", "hunter2"); !errors.Is(err, ErrMobileTaken) {
		t.Fatalf("Expected ErrMobileTaken, got %v", err)
	}

	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM users WHERE mobile = '5551234567'").Scan(&count); err != nil {
		t.Fatal(err)
	}
	if count != 1 {
		t.Errorf("Duplicate registration created a second row: count=%d", count)
	}
}

func TestRegisterStorageFailureIsNotMobileTaken(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(db, newTestLedger(t))

	// Make the insert fail for reasons unrelated to the unique mobile index.
	if _, err := db.Exec("CREATE TRIGGER users_insert_fail BEFORE INSERT ON users BEGIN SELECT RAISE(ABORT, 'simulated storage failure'); END"); err != nil {
		t.Fatalf("Could not create trigger: %v", err)
	}

	_, err := svc.Register("Alice", "5559990002", "111", "BANK0001", "First Bank", "secret")
	if err == nil {
		t.Fatal("Expected an error from the failing insert")
	}
	if errors.Is(err, ErrMobileTaken) {
		t.Errorf("Infrastructure failure reported as a taken mobile: %v", err)
	}
}

func TestListNonAdminUsersExcludesAdmin(t *testing.T) {
	db := newTestDB(t)
	if err := database.SeedAdmin(db, "9999999999", "admin123"); err != nil {
		t.Fatalf("Could not seed admin: %v", err)
	}
	svc := NewUserService(db, newTestLedger(t))

	if _, err := svc.Register("Alice", "5551234567", "111", "BANK0001", "First Bank", "secret"); err != nil {
		t.Fatal(err)
	}

	users, err := svc.ListNonAdminUsers()
	if err != nil {
		t.Fatalf("ListNonAdminUsers failed: %v", err)
	}
	if len(users) != 1 {
		t.Fatalf("Expected 1 non-admin user, got %d", len(users))
	}
	if users[0].Mobile != "5551234567" {
		t.Errorf("Unexpected user in list: %+v", users[0])
	}
}

func TestGetUserByIDNotFound(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(db, newTestLedger(t))

	if _, err := svc.GetUserByID("no-such-id"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}
