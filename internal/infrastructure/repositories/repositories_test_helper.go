package repositories

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", t.Name(), time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err, "open sqlite")
	return db
}

func mustExec(t *testing.T, db *gorm.DB, q string, args ...interface{}) {
	t.Helper()
	require.NoError(t, db.Exec(q, args...).Error, "exec failed: query=%s", q)
}

func createUserTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE users (
		id TEXT PRIMARY KEY,
		email TEXT UNIQUE,
		full_name TEXT,
		phone_number TEXT,
		password_hash TEXT,
		role TEXT,
		is_active BOOLEAN,
		verified BOOLEAN,
		created_at DATETIME,
		updated_at DATETIME,
		deleted_at DATETIME
	);`)
}

func createOtpTokenTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE otp_tokens (
		id TEXT PRIMARY KEY,
		email TEXT NOT NULL,
		otp TEXT NOT NULL,
		purpose TEXT NOT NULL DEFAULT 'reset_password',
		expires_at DATETIME NOT NULL,
		used BOOLEAN NOT NULL DEFAULT 0,
		created_at DATETIME
	);`)
}

func createUserKYCTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE user_kyc (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		id_number TEXT NOT NULL,
		full_name TEXT NOT NULL,
		date_of_birth TEXT NOT NULL,
		status TEXT NOT NULL,
		reviewed_by TEXT,
		created_at DATETIME,
		updated_at DATETIME,
		deleted_at DATETIME
	);`)
}

func createBankAccountTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE bank_accounts (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		bank_name TEXT NOT NULL,
		account_number TEXT NOT NULL,
		account_holder TEXT NOT NULL,
		status TEXT NOT NULL,
		note TEXT,
		created_at DATETIME,
		updated_at DATETIME,
		deleted_at DATETIME
	);`)
}
