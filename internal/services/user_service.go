package services

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"kycboard/internal/ledger"
	"kycboard/internal/models"
)

// UserServiceProvider defines the interface for user services.
type UserServiceProvider interface {
	Register(name, mobile, accountNumber, ifscCode, bankName, password string) (models.User, error)
	Authenticate(mobile, password string) (models.User, error)
	GetUserByID(id string) (models.User, error)
	ListNonAdminUsers() ([]models.User, error)
}

// UserService provides business logic for account management.
type UserService struct {
	db     *sql.DB
	ledger *ledger.Recorder
}

// NewUserService creates a new UserService. The ledger receives one line per
// successful registration.
func NewUserService(db *sql.DB, ledger *ledger.Recorder) *UserService {
	return &UserService{db: db, ledger: ledger}
}

// Register creates a new non-admin account. A mobile number that already
// belongs to a user is rejected with ErrMobileTaken.
func (s *UserService) Register(name, mobile, accountNumber, ifscCode, bankName, password string) (models.User, error) {
	var count int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM users WHERE mobile = ?", mobile).Scan(&count); err != nil {
		return models.User{}, err
	}
	if count > 0 {
		return models.User{}, ErrMobileTaken
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.User{
		ID:            uuid.New().String(),
		Name:          name,
		Mobile:        mobile,
		AccountNumber: accountNumber,
		IFSCCode:      ifscCode,
		BankName:      bankName,
		PasswordHash:  string(hashedPassword),
	}

	stmt, err := s.db.Prepare("INSERT INTO users(id, name, mobile, account_number, ifsc_code, bank_name, password_hash, is_admin) VALUES(?, ?, ?, ?, ?, ?, ?, 0)")
	if err != nil {
		return models.User{}, err
	}
	defer stmt.Close()

	if _, err = stmt.Exec(user.ID, user.Name, user.Mobile, user.AccountNumber, user.IFSCCode, user.BankName, user.PasswordHash); err != nil {
		// The unique index backstops the count check above against a
		// concurrent registration of the same mobile. Anything other than a
		// constraint violation is an infrastructure failure and must not be
		// dressed up as user input error.
		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique {
			return models.User{}, ErrMobileTaken
		}
		return models.User{}, fmt.Errorf("failed to insert user: %w", err)
	}

	if err := s.ledger.Append(user); err != nil {
		// The account exists at this point; a ledger failure must not undo it.
		log.Error().Err(err).Str("mobile", user.Mobile).Msg("Failed to append registration ledger")
	}

	user.PasswordHash = ""
	return user, nil
}

// Authenticate verifies a user's credentials.
func (s *UserService) Authenticate(mobile, password string) (models.User, error) {
	user, err := s.getUserByMobile(mobile)
	if err != nil {
		return models.User{}, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return models.User{}, ErrInvalidCredentials
	}

	// Don't send the password hash to the client
	user.PasswordHash = ""
	return user, nil
}

// GetUserByID retrieves a single user by their ID.
func (s *UserService) GetUserByID(id string) (models.User, error) {
	var user models.User
	var isAdmin int
	row := s.db.QueryRow("SELECT id, name, mobile, account_number, ifsc_code, bank_name, is_admin, created_at FROM users WHERE id = ?", id)
	err := row.Scan(&user.ID, &user.Name, &user.Mobile, &user.AccountNumber, &user.IFSCCode, &user.BankName, &isAdmin, &user.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.User{}, ErrNotFound
		}
		return models.User{}, err
	}
	user.IsAdmin = isAdmin != 0
	return user, nil
}

// ListNonAdminUsers retrieves every account the admin can review.
func (s *UserService) ListNonAdminUsers() ([]models.User, error) {
	rows, err := s.db.Query("SELECT id, name, mobile, account_number, ifsc_code, bank_name, created_at FROM users WHERE is_admin = 0 ORDER BY created_at")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := []models.User{}
	for rows.Next() {
		var user models.User
		if err := rows.Scan(&user.ID, &user.Name, &user.Mobile, &user.AccountNumber, &user.IFSCCode, &user.BankName, &user.CreatedAt); err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

func (s *UserService) getUserByMobile(mobile string) (models.User, error) {
	var user models.User
	var isAdmin int
	row := s.db.QueryRow("SELECT id, name, mobile, account_number, ifsc_code, bank_name, password_hash, is_admin, created_at FROM users WHERE mobile = ?", mobile)
	err := row.Scan(&user.ID, &user.Name, &user.Mobile, &user.AccountNumber, &user.IFSCCode, &user.BankName, &user.PasswordHash, &isAdmin, &user.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.User{}, ErrNotFound
		}
		return models.User{}, err
	}
	user.IsAdmin = isAdmin != 0
	return user, nil
}
