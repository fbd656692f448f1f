package cache

import (
	"time"

	"healprint/internal/models"

	gocache "github.com/patrickmn/go-cache"
)

// ConversationCache TTL 기반 대화/대화목록 캐시. 저장과 조회 모두 복사본 사용
type ConversationCache struct {
	c *gocache.Cache
}

func New(ttl time.Duration) *ConversationCache {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &ConversationCache{c: gocache.New(ttl, 10*time.Minute)}
}

func conversationKey(id string) string {
	return "conversation:" + id
}

func userConversationsKey(userID string) string {
	return "user_conversations:" + userID
}

func (cc *ConversationCache) GetConversation(id string) (*models.Conversation, bool) {
	v, ok := cc.c.Get(conversationKey(id))
	if !ok {
		return nil, false
	}
	conv, ok := v.(*models.Conversation)
	if !ok {
		return nil, false
	}
	return conv.Clone(), true
}

// SetConversation overwrites the entry. Writers use it after a commit.
func (cc *ConversationCache) SetConversation(conv *models.Conversation) {
	cc.c.SetDefault(conversationKey(conv.ConversationID), conv.Clone())
}

// AddConversation stores conv only when no entry exists, so a read that
// raced with a write cannot replace the writer's fresher copy.
func (cc *ConversationCache) AddConversation(conv *models.Conversation) {
	_ = cc.c.Add(conversationKey(conv.ConversationID), conv.Clone(), gocache.DefaultExpiration)
}

func (cc *ConversationCache) GetUserConversations(userID string) ([]models.ConversationSummary, bool) {
	v, ok := cc.c.Get(userConversationsKey(userID))
	if !ok {
		return nil, false
	}
	list, ok := v.([]models.ConversationSummary)
	if !ok {
		return nil, false
	}
	return copySummaries(list), true
}

func (cc *ConversationCache) SetUserConversations(userID string, list []models.ConversationSummary) {
	cc.c.SetDefault(userConversationsKey(userID), copySummaries(list))
}

func (cc *ConversationCache) AddUserConversations(userID string, list []models.ConversationSummary) {
	_ = cc.c.Add(userConversationsKey(userID), copySummaries(list), gocache.DefaultExpiration)
}

func copySummaries(list []models.ConversationSummary) []models.ConversationSummary {
	out := make([]models.ConversationSummary, len(list))
	copy(out, list)
	return out
}

// Invalidate drops both keys touched by a write to the conversation.
func (cc *ConversationCache) Invalidate(conversationID, userID string) {
	cc.c.Delete(conversationKey(conversationID))
	cc.c.Delete(userConversationsKey(userID))
}
