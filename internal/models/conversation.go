package models

import (
	"sort"
	"time"
)

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleSystem    = "system"
)

// 평가 단계
const (
	StageInitial         = "initial"
	StageGatheringInfo   = "gathering_info"
	StageDiagnosticReady = "diagnostic_ready"
)

type Message struct {
	ID        string    `json:"id"`
	Seq       int       `json:"seq"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

type SymptomMention struct {
	Category  string `json:"category"`
	Mentioned bool   `json:"mentioned"`
}

// Symptoms maps a catalog symptom key to where it was found.
type Symptoms map[string]SymptomMention

// Keys 입력 순서와 무관하게 정렬된 키 목록
func (s Symptoms) Keys() []string {
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (s Symptoms) Clone() Symptoms {
	out := make(Symptoms, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

type Conversation struct {
	ConversationID    string    `json:"conversation_id"`
	UserID            string    `json:"user_id"`
	Title             string    `json:"title"`
	Messages          []Message `json:"messages"`
	AssessmentStage   string    `json:"assessment_stage"`
	SymptomsCollected Symptoms  `json:"symptoms_collected"`
	NeedsDiagnosis    bool      `json:"needs_diagnosis"`
	LastMessage       string    `json:"last_message"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// Clone 캐시에 넣고 꺼낼 때 공유 슬라이스/맵 변경 방지
func (c *Conversation) Clone() *Conversation {
	if c == nil {
		return nil
	}
	out := *c
	out.Messages = make([]Message, len(c.Messages))
	copy(out.Messages, c.Messages)
	out.SymptomsCollected = c.SymptomsCollected.Clone()
	return &out
}

func (c *Conversation) AssistantReplies() int {
	n := 0
	for _, m := range c.Messages {
		if m.Role == RoleAssistant {
			n++
		}
	}
	return n
}

func (c *Conversation) NextSeq() int {
	if len(c.Messages) == 0 {
		return 1
	}
	return c.Messages[len(c.Messages)-1].Seq + 1
}

// ConversationSummary 대화 목록 항목
type ConversationSummary struct {
	ConversationID string    `json:"conversation_id"`
	Title          string    `json:"title"`
	LastMessage    string    `json:"last_message"`
	MessageCount   int       `json:"message_count"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// Preview trims s to the first n runes.
func Preview(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
