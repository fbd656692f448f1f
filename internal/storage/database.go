/**
* Name: 			database.go
* Description: 		SQLite 연결 및 스키마 생성
* Workflow: 		DB 오픈, ping, 테이블 생성
 */

package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// 고정 폭 포맷, 문자열 정렬 = 시간 정렬
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

var (
	ErrEmailExists          = errors.New("email already registered")
	ErrGoogleIDExists       = errors.New("google account already linked")
	ErrUserNotFound         = errors.New("user not found")
	ErrConversationNotFound = errors.New("conversation not found")
	ErrSequenceConflict     = errors.New("message sequence conflict")
	ErrRecordNotFound       = errors.New("record not found")
)

const UserSchema = `
CREATE TABLE IF NOT EXISTS users (
		"id" TEXT PRIMARY KEY,
		"email" TEXT NOT NULL UNIQUE,
		"password_hash" TEXT NOT NULL DEFAULT '',
		"name" TEXT NOT NULL,
		"age" INTEGER,
		"country" TEXT,
		"google_id" TEXT UNIQUE,
		"picture" TEXT,
		"auth_provider" TEXT NOT NULL DEFAULT 'email',
		"created_at" TEXT NOT NULL
);`

const ChatSchema = `
CREATE TABLE IF NOT EXISTS conversations (
		"conversation_id" TEXT PRIMARY KEY,
		"user_id" TEXT NOT NULL,
		"title" TEXT NOT NULL,
		"assessment_stage" TEXT NOT NULL DEFAULT 'initial',
		"symptoms_collected" TEXT NOT NULL DEFAULT '{}',
		"needs_diagnosis" INTEGER NOT NULL DEFAULT 0,
		"last_message" TEXT NOT NULL DEFAULT '',
		"created_at" TEXT NOT NULL,
		"updated_at" TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_conversations_user ON conversations(user_id, updated_at);
CREATE TABLE IF NOT EXISTS messages (
		"id" TEXT PRIMARY KEY,
		"conversation_id" TEXT NOT NULL,
		"seq" INTEGER NOT NULL,
		"role" TEXT NOT NULL,
		"content" TEXT NOT NULL,
		"created_at" TEXT NOT NULL,
		UNIQUE(conversation_id, seq),
		FOREIGN KEY(conversation_id) REFERENCES conversations(conversation_id)
);
CREATE TABLE IF NOT EXISTS records (
		"id" INTEGER PRIMARY KEY AUTOINCREMENT,
		"conversation_id" TEXT NOT NULL,
		"user_id" TEXT NOT NULL,
		"role" TEXT NOT NULL,
		"file_name" TEXT NOT NULL,
		"file_path" TEXT NOT NULL,
		"created_at" TEXT NOT NULL,
		UNIQUE(conversation_id, file_name),
		FOREIGN KEY(conversation_id) REFERENCES conversations(conversation_id)
);`

// OpenSQLite opens (and creates) the database file at path and applies schemas.
func OpenSQLite(ctx context.Context, path string, schemas ...string) (*sql.DB, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("OpenSQLite(): failed to create directory: %w", err)
		}
	}

	dsn := "file:" + path + "?_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("OpenSQLite(): failed to open database: %w", err)
	}
	// 단일 writer
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("OpenSQLite(): failed to connect to database: %w", err)
	}
	for _, schema := range schemas {
		if _, err := db.ExecContext(ctx, schema); err != nil {
			db.Close()
			return nil, fmt.Errorf("OpenSQLite(): failed to create tables: %w", err)
		}
	}
	return db, nil
}

func isUniqueViolation(err error) bool {
	var sqliteErr *sqlite.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE ||
			sqliteErr.Code() == sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY
	}
	return false
}

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(s string) time.Time {
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
