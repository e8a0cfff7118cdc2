package auth

import (
	"path/filepath"
	"testing"

	"tiebreakengine/internal/database"
	"tiebreakengine/internal/model"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

func newTestDB(t *testing.T) *database.DB {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "auth_test.db")
	db, err := database.New(dbPath)
	if err != nil {
		t.Fatalf("database.New: %v", err)
	}
	if err := db.RunMigrations(); err != nil {
		t.Fatalf("RunMigrations: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func createAdmin(t *testing.T, db *database.DB, username, password string) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("bcrypt.GenerateFromPassword: %v", err)
	}
	admin := model.Administrator{
		ID:       uuid.New(),
		Username: username,
		Password: string(hash),
		Role:     model.Admin,
	}
	if err := db.Create(&admin).Error; err != nil {
		t.Fatalf("create administrator: %v", err)
	}
}

func TestCheckCredentialsAcceptsCorrectPassword(t *testing.T) {
	db := newTestDB(t)
	createAdmin(t, db, "arbiter", "s3cret-pass")
	svc, err := New(db)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	ok, err := svc.CheckCredentials("arbiter", "s3cret-pass")
	if err != nil {
		t.Fatalf("CheckCredentials: %v", err)
	}
	if !ok {
		t.Error("expected correct credentials to be accepted")
	}
}

func TestCheckCredentialsRejectsWrongPassword(t *testing.T) {
	db := newTestDB(t)
	createAdmin(t, db, "arbiter", "s3cret-pass")
	svc, err := New(db)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	ok, err := svc.CheckCredentials("arbiter", "wrong-pass")
	if err != nil {
		t.Fatalf("CheckCredentials: %v", err)
	}
	if ok {
		t.Error("expected wrong password to be rejected")
	}
}

func TestCheckCredentialsRejectsUnknownUser(t *testing.T) {
	db := newTestDB(t)
	svc, err := New(db)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	ok, err := svc.CheckCredentials("nobody", "whatever")
	if err != nil {
		t.Fatalf("CheckCredentials: %v", err)
	}
	if ok {
		t.Error("expected unknown user to be rejected")
	}
}
