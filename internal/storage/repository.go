package storage

import (
	"context"

	"healprint/internal/models"
)

// UserRepository is implemented by the SQLite and the MySQL (gorm) user stores.
type UserRepository interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByGoogleID(ctx context.Context, googleID string) (*models.User, error)
	LinkGoogleAccount(ctx context.Context, userID, googleID, picture string) error
	Ping(ctx context.Context) error
}

// ConversationState is what a chat turn changes on the conversation row.
type ConversationState struct {
	AssessmentStage string
	Symptoms        models.Symptoms
	NeedsDiagnosis  bool
	LastMessage     string
}

type ConversationRepository interface {
	CreateConversation(ctx context.Context, conv *models.Conversation) error
	GetConversation(ctx context.Context, conversationID string) (*models.Conversation, error)
	LatestConversation(ctx context.Context, userID string) (*models.Conversation, error)
	ListConversations(ctx context.Context, userID string, limit int) ([]models.ConversationSummary, error)
	AppendMessages(ctx context.Context, conversationID string, msgs []models.Message, state ConversationState) error
	Ping(ctx context.Context) error
}

type RecordRepository interface {
	CreateRecord(ctx context.Context, rec *models.Record) error
	GetRecord(ctx context.Context, conversationID, fileName string) (*models.Record, error)
	ListRecords(ctx context.Context, conversationID string) ([]models.Record, error)
}
