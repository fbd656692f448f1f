/**
* Name: 			service.go
* Description: 		대화 서비스 (대화 생성/조회, 채팅 턴, 분석)
* Workflow: 		대화 결정, 사용자 메시지 추가, 에이전트 응답, 저장 및 캐시 무효화
 */

package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"healprint/internal/agent"
	"healprint/internal/cache"
	"healprint/internal/models"
	"healprint/internal/observability"
	"healprint/internal/storage"

	"github.com/google/uuid"
)

const defaultTitle = "New Conversation"

var (
	ErrEmptyMessage         = errors.New("message must not be empty")
	ErrMissingUser          = errors.New("user_id is required")
	ErrConversationFull     = errors.New("conversation has reached its maximum length")
	ErrConversationNotFound = storage.ErrConversationNotFound
)

type Options struct {
	MaxConversationLength int
	ListLimit             int
}

type Service struct {
	store storage.ConversationRepository
	cache *cache.ConversationCache
	agent *agent.Agent
	locks *keyedMutex
	opts  Options
	now   func() time.Time
	newID func() string
}

func NewService(store storage.ConversationRepository, cc *cache.ConversationCache, a *agent.Agent, opts Options) *Service {
	if opts.MaxConversationLength <= 0 {
		opts.MaxConversationLength = 50
	}
	if opts.ListLimit <= 0 {
		opts.ListLimit = 50
	}
	return &Service{
		store: store,
		cache: cc,
		agent: a,
		locks: newKeyedMutex(),
		opts:  opts,
		now:   time.Now,
		newID: uuid.NewString,
	}
}

type ChatRequest struct {
	Message        string `json:"message" example:"I've had acne on my jawline for a month"`
	UserID         string `json:"user_id" example:"6f1c2a4e-8d0b-4a43-9c53-2f7c1c1d9a10"`
	ConversationID string `json:"conversation_id,omitempty"`
}

type ChatResponse struct {
	Response          string          `json:"response"`
	ConversationID    string          `json:"conversation_id"`
	MessageID         string          `json:"message_id"`
	AssessmentStage   string          `json:"assessment_stage"`
	SymptomsCollected models.Symptoms `json:"symptoms_collected"`
	NeedsDiagnosis    bool            `json:"needs_diagnosis"`
	FallbackMode      bool            `json:"fallback_mode,omitempty"`
	Error             string          `json:"error,omitempty"`
}

type Summary struct {
	ConversationID    string          `json:"conversation_id"`
	UserID            string          `json:"user_id"`
	MessageCount      int             `json:"message_count"`
	SymptomsCollected models.Symptoms `json:"symptoms_collected"`
	AssessmentStage   string          `json:"assessment_stage"`
	LastMessage       *models.Message `json:"last_message"`
}

// Chat runs one turn: store the user message, ask the agent, store the reply.
func (s *Service) Chat(ctx context.Context, req ChatRequest) (*ChatResponse, error) {
	message := strings.TrimSpace(req.Message)
	userID := strings.TrimSpace(req.UserID)
	if userID == "" {
		return nil, ErrMissingUser
	}
	if message == "" {
		return nil, ErrEmptyMessage
	}

	conversationID, err := s.resolveConversation(ctx, userID, strings.TrimSpace(req.ConversationID), message)
	if err != nil {
		return nil, err
	}

	unlock := s.locks.Lock(conversationID)
	defer unlock()

	conv, err := s.store.GetConversation(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	if conv.UserID != userID {
		return nil, ErrConversationNotFound
	}
	if len(conv.Messages) >= s.opts.MaxConversationLength {
		return nil, ErrConversationFull
	}

	userMsg := models.Message{
		ID:        s.newID(),
		Seq:       conv.NextSeq(),
		Role:      models.RoleUser,
		Content:   message,
		Timestamp: s.now(),
	}
	conv.Messages = append(conv.Messages, userMsg)
	for k, v := range s.agent.ExtractSymptoms(message) {
		if _, ok := conv.SymptomsCollected[k]; !ok {
			conv.SymptomsCollected[k] = v
		}
	}

	reply := s.agent.Respond(ctx, conv)

	toStore := []models.Message{userMsg}
	messageID := userMsg.ID
	if !reply.Failed {
		assistantMsg := models.Message{
			ID:        s.newID(),
			Seq:       userMsg.Seq + 1,
			Role:      models.RoleAssistant,
			Content:   reply.Content,
			Timestamp: s.now(),
		}
		conv.Messages = append(conv.Messages, assistantMsg)
		toStore = append(toStore, assistantMsg)
		messageID = assistantMsg.ID
	}

	conv.AssessmentStage = agent.Stage(len(conv.SymptomsCollected), conv.AssistantReplies())
	conv.NeedsDiagnosis = conv.AssessmentStage == models.StageDiagnosticReady
	conv.LastMessage = models.Preview(conv.Messages[len(conv.Messages)-1].Content, 100)

	err = s.store.AppendMessages(ctx, conv.ConversationID, toStore, storage.ConversationState{
		AssessmentStage: conv.AssessmentStage,
		Symptoms:        conv.SymptomsCollected,
		NeedsDiagnosis:  conv.NeedsDiagnosis,
		LastMessage:     conv.LastMessage,
	})
	s.cache.Invalidate(conv.ConversationID, conv.UserID)
	if err != nil {
		return nil, fmt.Errorf("Chat(): %w", err)
	}
	s.refreshCache(ctx, conv.ConversationID, conv.UserID)

	observability.LoggerFromContext(ctx).Info("chat turn stored",
		"conversation_id", conv.ConversationID,
		"stage", conv.AssessmentStage,
		"symptoms", len(conv.SymptomsCollected),
		"fallback", reply.FallbackMode,
		"failed", reply.Failed,
	)

	return &ChatResponse{
		Response:          reply.Content,
		ConversationID:    conv.ConversationID,
		MessageID:         messageID,
		AssessmentStage:   conv.AssessmentStage,
		SymptomsCollected: conv.SymptomsCollected,
		NeedsDiagnosis:    conv.NeedsDiagnosis && !reply.Failed,
		FallbackMode:      reply.FallbackMode,
		Error:             reply.ErrorCode,
	}, nil
}

// resolveConversation 지정된 대화, 없으면 최근 대화, 그것도 없으면 새 대화
func (s *Service) resolveConversation(ctx context.Context, userID, conversationID, firstMessage string) (string, error) {
	if conversationID != "" {
		return conversationID, nil
	}
	latest, err := s.store.LatestConversation(ctx, userID)
	switch {
	case err == nil:
		return latest.ConversationID, nil
	case errors.Is(err, storage.ErrConversationNotFound):
		conv, err := s.CreateConversation(ctx, userID, models.Preview(firstMessage, 50))
		if err != nil {
			return "", err
		}
		return conv.ConversationID, nil
	default:
		return "", err
	}
}

func (s *Service) CreateConversation(ctx context.Context, userID, title string) (*models.Conversation, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, ErrMissingUser
	}
	title = strings.TrimSpace(title)
	if title == "" {
		title = defaultTitle
	}
	now := s.now()
	conv := &models.Conversation{
		ConversationID:    s.newID(),
		UserID:            userID,
		Title:             title,
		Messages:          []models.Message{},
		AssessmentStage:   models.StageInitial,
		SymptomsCollected: models.Symptoms{},
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if err := s.store.CreateConversation(ctx, conv); err != nil {
		return nil, err
	}
	s.cache.Invalidate(conv.ConversationID, userID)
	s.refreshCache(ctx, conv.ConversationID, userID)
	return conv, nil
}

// refreshCache 커밋 직후 저장소 값으로 캐시를 덮어쓴다
// 읽기 쪽은 Add만 하므로 이전에 읽은 목록이 새 값을 덮지 못한다
func (s *Service) refreshCache(ctx context.Context, conversationID, userID string) {
	if fresh, err := s.store.GetConversation(ctx, conversationID); err == nil {
		s.cache.SetConversation(fresh)
	}

	// 같은 사용자의 목록 갱신은 순서대로, 마지막 Set 이 최신 목록
	unlock := s.locks.Lock("user:" + userID)
	defer unlock()
	if list, err := s.store.ListConversations(ctx, userID, s.opts.ListLimit); err == nil {
		s.cache.SetUserConversations(userID, list)
	}
}

func (s *Service) Conversation(ctx context.Context, conversationID string) (*models.Conversation, error) {
	if conv, ok := s.cache.GetConversation(conversationID); ok {
		return conv, nil
	}
	conv, err := s.store.GetConversation(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	s.cache.AddConversation(conv)
	return conv, nil
}

func (s *Service) Summary(ctx context.Context, conversationID string) (*Summary, error) {
	conv, err := s.Conversation(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	sum := &Summary{
		ConversationID:    conv.ConversationID,
		UserID:            conv.UserID,
		MessageCount:      len(conv.Messages),
		SymptomsCollected: conv.SymptomsCollected,
		AssessmentStage:   conv.AssessmentStage,
	}
	if n := len(conv.Messages); n > 0 {
		last := conv.Messages[n-1]
		sum.LastMessage = &last
	}
	return sum, nil
}

func (s *Service) ListConversations(ctx context.Context, userID string) ([]models.ConversationSummary, error) {
	if list, ok := s.cache.GetUserConversations(userID); ok {
		return list, nil
	}
	list, err := s.store.ListConversations(ctx, userID, s.opts.ListLimit)
	if err != nil {
		return nil, err
	}
	s.cache.AddUserConversations(userID, list)
	return list, nil
}

func (s *Service) Analyze(ctx context.Context, conversationID string) (*agent.Analysis, error) {
	conv, err := s.Conversation(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	return s.agent.Analyze(ctx, conv)
}

func (s *Service) LLMConfigured() bool {
	return s.agent.Configured()
}

func (s *Service) Ping(ctx context.Context) error {
	return s.store.Ping(ctx)
}
