package services_test

import (
	"errors"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/trudransh/kpa-formsdb/internal/models"
	"github.com/trudransh/kpa-formsdb/internal/services"
)

// setupTestDB creates an in-memory SQLite database for testing
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.FormSubmission{},
		&models.WheelSpecification{},
		&models.BogieChecksheet{},
	)
	if err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	return db
}

func newAuthService(t *testing.T, db *gorm.DB) *services.AuthService {
	t.Helper()
	tokens := services.NewTokenService("test-secret", 30*time.Minute)
	return services.NewAuthService(db, tokens, bcrypt.MinCost)
}

// TestRegisterAndLogin verifies the full credential round trip
func TestRegisterAndLogin(t *testing.T) {
	db := setupTestDB(t)
	auth := newAuthService(t, db)

	user, err := auth.Register("7760873976", "to_share@123")
	if err != nil {
		t.Fatalf("Failed to register: %v", err)
	}
	if user.PhoneNumber != "7760873976" {
		t.Errorf("Expected phone number '7760873976', got %q", user.PhoneNumber)
	}
	if !user.IsActive {
		t.Error("Expected new user to be active")
	}
	if user.HashedPassword == "to_share@123" {
		t.Error("Password stored in plaintext")
	}

	token, err := auth.Login("7760873976", "to_share@123")
	if err != nil {
		t.Fatalf("Failed to login: %v", err)
	}

	resolved, err := auth.Resolve(token)
	if err != nil {
		t.Fatalf("Failed to resolve token: %v", err)
	}
	if resolved.ID != user.ID {
		t.Errorf("Expected resolved user %d, got %d", user.ID, resolved.ID)
	}
}

// TestRegisterDuplicate verifies a second registration never overwrites
func TestRegisterDuplicate(t *testing.T) {
	db := setupTestDB(t)
	auth := newAuthService(t, db)

	if _, err := auth.Register("7760873976", "first"); err != nil {
		t.Fatalf("Failed to register: %v", err)
	}

	_, err := auth.Register("7760873976", "second")
	if _, ok := services.IsConflict(err); !ok {
		t.Fatalf("Expected ConflictError, got %v", err)
	}

	// Original password still valid
	if _, err := auth.Login("7760873976", "first"); err != nil {
		t.Errorf("Original credentials no longer valid: %v", err)
	}
}

// TestLoginFailuresIndistinguishable verifies unknown phone and wrong
// password return the same error
func TestLoginFailuresIndistinguishable(t *testing.T) {
	db := setupTestDB(t)
	auth := newAuthService(t, db)

	if _, err := auth.Register("7760873976", "to_share@123"); err != nil {
		t.Fatalf("Failed to register: %v", err)
	}

	_, unknownErr := auth.Login("0000000000", "to_share@123")
	_, wrongErr := auth.Login("7760873976", "wrong")

	if !errors.Is(unknownErr, services.ErrUnauthorized) {
		t.Errorf("Expected ErrUnauthorized for unknown phone, got %v", unknownErr)
	}
	if !errors.Is(wrongErr, services.ErrUnauthorized) {
		t.Errorf("Expected ErrUnauthorized for wrong password, got %v", wrongErr)
	}
}

// TestResolveFailures verifies invalid tokens and vanished subjects are
// both unauthorized
func TestResolveFailures(t *testing.T) {
	db := setupTestDB(t)
	auth := newAuthService(t, db)

	if _, err := auth.Resolve("not-a-token"); !errors.Is(err, services.ErrUnauthorized) {
		t.Errorf("Expected ErrUnauthorized for garbage token, got %v", err)
	}

	// Token for a subject that was never registered
	token, err := auth.Tokens.Issue("9999999999")
	if err != nil {
		t.Fatalf("Failed to issue token: %v", err)
	}
	if _, err := auth.Resolve(token); !errors.Is(err, services.ErrUnauthorized) {
		t.Errorf("Expected ErrUnauthorized for vanished subject, got %v", err)
	}
}

// TestHashPasswordSalted verifies two hashes of the same input differ
func TestHashPasswordSalted(t *testing.T) {
	auth := newAuthService(t, setupTestDB(t))

	h1, err := auth.HashPassword("to_share@123")
	if err != nil {
		t.Fatalf("Failed to hash: %v", err)
	}
	h2, err := auth.HashPassword("to_share@123")
	if err != nil {
		t.Fatalf("Failed to hash: %v", err)
	}

	if h1 == h2 {
		t.Error("Expected salted hashes to differ across calls")
	}
	if !auth.VerifyPassword("to_share@123", h1) || !auth.VerifyPassword("to_share@123", h2) {
		t.Error("Expected both hashes to verify")
	}
	if auth.VerifyPassword("other", h1) {
		t.Error("Expected wrong password to fail verification")
	}
}
