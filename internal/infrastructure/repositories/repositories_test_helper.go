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
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
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
		wallet_address TEXT NOT NULL UNIQUE,
		full_name TEXT NOT NULL,
		username TEXT NOT NULL UNIQUE,
		business_name TEXT,
		business_type TEXT,
		created_at DATETIME
	);`)
}

func createAuthNonceTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE auth_nonces (
		id TEXT PRIMARY KEY,
		wallet_address TEXT NOT NULL,
		nonce TEXT NOT NULL,
		expires_at DATETIME NOT NULL,
		used BOOLEAN NOT NULL DEFAULT FALSE,
		created_at DATETIME
	);`)
}

func createTransactionTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE transactions (
		id TEXT PRIMARY KEY,
		from_wallet TEXT NOT NULL,
		to_wallet TEXT NOT NULL,
		amount TEXT NOT NULL,
		currency TEXT NOT NULL DEFAULT 'USDC',
		status TEXT NOT NULL DEFAULT 'pending',
		tx_hash TEXT,
		note TEXT,
		payment_link_id TEXT,
		created_at DATETIME,
		updated_at DATETIME
	);`)
}

func createPaymentLinkTables(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE payment_links (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		title TEXT NOT NULL,
		description TEXT,
		amount TEXT,
		flexible_amount BOOLEAN NOT NULL DEFAULT FALSE,
		link_code TEXT NOT NULL UNIQUE,
		times_used INTEGER NOT NULL DEFAULT 0,
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		created_at DATETIME
	);`)
	mustExec(t, db, `CREATE TABLE payment_link_payments (
		id TEXT PRIMARY KEY,
		payment_link_id TEXT NOT NULL,
		transaction_id TEXT NOT NULL,
		payer_wallet TEXT NOT NULL,
		amount TEXT NOT NULL,
		created_at DATETIME
	);`)
}
