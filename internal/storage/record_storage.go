package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"healprint/internal/models"
)

// RecordStore 음성 대화 오디오 파일 메타데이터
type RecordStore struct {
	db *sql.DB
}

func NewRecordStore(db *sql.DB) *RecordStore {
	return &RecordStore{db: db}
}

func (s *RecordStore) CreateRecord(ctx context.Context, rec *models.Record) error {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO records(conversation_id, user_id, role, file_name, file_path, created_at) VALUES(?, ?, ?, ?, ?, ?)`,
		rec.ConversationID, rec.UserID, rec.Role, rec.FileName, rec.FilePath, formatTime(rec.CreatedAt))
	if err != nil {
		return fmt.Errorf("CreateRecord(): %w", err)
	}
	rec.ID, _ = res.LastInsertId()
	return nil
}

func (s *RecordStore) GetRecord(ctx context.Context, conversationID, fileName string) (*models.Record, error) {
	var (
		r         models.Record
		createdAt string
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT id, conversation_id, user_id, role, file_name, file_path, created_at
		FROM records WHERE conversation_id = ? AND file_name = ?`, conversationID, fileName).
		Scan(&r.ID, &r.ConversationID, &r.UserID, &r.Role, &r.FileName, &r.FilePath, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRecordNotFound
		}
		return nil, fmt.Errorf("GetRecord(): %w", err)
	}
	r.CreatedAt = parseTime(createdAt)
	return &r, nil
}

func (s *RecordStore) ListRecords(ctx context.Context, conversationID string) ([]models.Record, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, conversation_id, user_id, role, file_name, file_path, created_at
		FROM records
		WHERE conversation_id = ?
		ORDER BY id ASC`, conversationID)
	if err != nil {
		return nil, fmt.Errorf("ListRecords(): %w", err)
	}
	defer rows.Close()

	records := make([]models.Record, 0)
	for rows.Next() {
		var (
			r         models.Record
			createdAt string
		)
		if err := rows.Scan(&r.ID, &r.ConversationID, &r.UserID, &r.Role, &r.FileName, &r.FilePath, &createdAt); err != nil {
			return nil, err
		}
		r.CreatedAt = parseTime(createdAt)
		records = append(records, r)
	}
	return records, rows.Err()
}
