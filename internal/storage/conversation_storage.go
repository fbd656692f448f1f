package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"healprint/internal/models"
)

// ConversationStore keeps conversations and their append-only message log.
type ConversationStore struct {
	db  *sql.DB
	now func() time.Time
}

func NewConversationStore(db *sql.DB) *ConversationStore {
	return &ConversationStore{db: db, now: time.Now}
}

func (s *ConversationStore) CreateConversation(ctx context.Context, conv *models.Conversation) error {
	if conv.SymptomsCollected == nil {
		conv.SymptomsCollected = models.Symptoms{}
	}
	if conv.AssessmentStage == "" {
		conv.AssessmentStage = models.StageInitial
	}
	symptoms, err := json.Marshal(conv.SymptomsCollected)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO conversations(conversation_id, user_id, title, assessment_stage, symptoms_collected,
			needs_diagnosis, last_message, created_at, updated_at)
		VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		conv.ConversationID, conv.UserID, conv.Title, conv.AssessmentStage, string(symptoms),
		conv.NeedsDiagnosis, conv.LastMessage, formatTime(conv.CreatedAt), formatTime(conv.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("CreateConversation(): %w", err)
	}
	return nil
}

func (s *ConversationStore) GetConversation(ctx context.Context, conversationID string) (*models.Conversation, error) {
	conv, err := s.scanConversation(s.db.QueryRowContext(ctx,
		`SELECT conversation_id, user_id, title, assessment_stage, symptoms_collected, needs_diagnosis,
			last_message, created_at, updated_at
		FROM conversations WHERE conversation_id = ?`, conversationID))
	if err != nil {
		return nil, err
	}
	if conv.Messages, err = s.messages(ctx, conversationID); err != nil {
		return nil, err
	}
	return conv, nil
}

// LatestConversation 사용자의 가장 최근에 갱신된 대화
func (s *ConversationStore) LatestConversation(ctx context.Context, userID string) (*models.Conversation, error) {
	var id string
	err := s.db.QueryRowContext(ctx,
		`SELECT conversation_id FROM conversations WHERE user_id = ? ORDER BY updated_at DESC, created_at DESC LIMIT 1`,
		userID).Scan(&id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrConversationNotFound
		}
		return nil, fmt.Errorf("LatestConversation(): %w", err)
	}
	return s.GetConversation(ctx, id)
}

func (s *ConversationStore) ListConversations(ctx context.Context, userID string, limit int) ([]models.ConversationSummary, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT c.conversation_id, c.title, c.last_message, c.created_at, c.updated_at,
			(SELECT COUNT(*) FROM messages m WHERE m.conversation_id = c.conversation_id)
		FROM conversations c
		WHERE c.user_id = ?
		ORDER BY c.updated_at DESC, c.created_at DESC
		LIMIT ?`, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("ListConversations(): %w", err)
	}
	defer rows.Close()

	summaries := make([]models.ConversationSummary, 0)
	for rows.Next() {
		var (
			sum                  models.ConversationSummary
			createdAt, updatedAt string
		)
		if err := rows.Scan(&sum.ConversationID, &sum.Title, &sum.LastMessage, &createdAt, &updatedAt, &sum.MessageCount); err != nil {
			return nil, fmt.Errorf("ListConversations(): %w", err)
		}
		sum.CreatedAt = parseTime(createdAt)
		sum.UpdatedAt = parseTime(updatedAt)
		summaries = append(summaries, sum)
	}
	return summaries, rows.Err()
}

// AppendMessages inserts msgs after the current tail and updates the conversation
// row in one transaction. The first message must carry the next sequence number.
func (s *ConversationStore) AppendMessages(ctx context.Context, conversationID string, msgs []models.Message, state ConversationState) error {
	symptoms, err := json.Marshal(state.Symptoms)
	if err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("AppendMessages(): %w", err)
	}
	defer tx.Rollback()

	var maxSeq int
	if err := tx.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(seq), 0) FROM messages WHERE conversation_id = ?`, conversationID).Scan(&maxSeq); err != nil {
		return fmt.Errorf("AppendMessages(): %w", err)
	}

	for i, m := range msgs {
		if m.Seq != maxSeq+i+1 {
			return ErrSequenceConflict
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO messages(id, conversation_id, seq, role, content, created_at) VALUES(?, ?, ?, ?, ?, ?)`,
			m.ID, conversationID, m.Seq, m.Role, m.Content, formatTime(m.Timestamp)); err != nil {
			if isUniqueViolation(err) {
				return ErrSequenceConflict
			}
			return fmt.Errorf("AppendMessages(): %w", err)
		}
	}

	res, err := tx.ExecContext(ctx, `
		UPDATE conversations
		SET assessment_stage = ?, symptoms_collected = ?, needs_diagnosis = ?, last_message = ?, updated_at = ?
		WHERE conversation_id = ?`,
		state.AssessmentStage, string(symptoms), state.NeedsDiagnosis, state.LastMessage,
		formatTime(s.now()), conversationID)
	if err != nil {
		return fmt.Errorf("AppendMessages(): %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrConversationNotFound
	}
	return tx.Commit()
}

func (s *ConversationStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *ConversationStore) scanConversation(row *sql.Row) (*models.Conversation, error) {
	var (
		conv                 models.Conversation
		symptoms             string
		createdAt, updatedAt string
	)
	if err := row.Scan(&conv.ConversationID, &conv.UserID, &conv.Title, &conv.AssessmentStage, &symptoms,
		&conv.NeedsDiagnosis, &conv.LastMessage, &createdAt, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrConversationNotFound
		}
		return nil, fmt.Errorf("scanConversation(): %w", err)
	}
	conv.SymptomsCollected = models.Symptoms{}
	if symptoms != "" {
		if err := json.Unmarshal([]byte(symptoms), &conv.SymptomsCollected); err != nil {
			return nil, fmt.Errorf("scanConversation(): bad symptoms column: %w", err)
		}
	}
	conv.CreatedAt = parseTime(createdAt)
	conv.UpdatedAt = parseTime(updatedAt)
	return &conv, nil
}

func (s *ConversationStore) messages(ctx context.Context, conversationID string) ([]models.Message, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, seq, role, content, created_at FROM messages WHERE conversation_id = ? ORDER BY seq ASC`,
		conversationID)
	if err != nil {
		return nil, fmt.Errorf("messages(): %w", err)
	}
	defer rows.Close()

	msgs := make([]models.Message, 0)
	for rows.Next() {
		var (
			m         models.Message
			createdAt string
		)
		if err := rows.Scan(&m.ID, &m.Seq, &m.Role, &m.Content, &createdAt); err != nil {
			return nil, fmt.Errorf("messages(): %w", err)
		}
		m.Timestamp = parseTime(createdAt)
		msgs = append(msgs, m)
	}
	return msgs, rows.Err()
}
