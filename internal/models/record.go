package models

import "time"

// 음성 대화에서 보관되는 오디오 클립
type Record struct {
	ID             int64     `json:"id"`
	ConversationID string    `json:"conversation_id"`
	UserID         string    `json:"user_id"`
	Role           string    `json:"role"`
	FileName       string    `json:"file_name"`
	FilePath       string    `json:"-"`
	CreatedAt      time.Time `json:"created_at"`
}
