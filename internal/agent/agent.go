/**
* Name: 			agent.go
* Description: 		HealPrint 건강 상담 에이전트
* Workflow: 		증상 추출, 평가 단계 계산, LLM 호출 또는 fallback 응답
 */

package agent

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"healprint/internal/diagnostic"
	"healprint/internal/llm"
	"healprint/internal/models"
)

var (
	ErrNotConfigured  = errors.New("LLM is not configured")
	ErrNoSymptoms     = errors.New("no symptoms collected for analysis")
	ErrAnalysisFailed = errors.New("analysis request failed")
)

type Options struct {
	ChatModel     string
	AnalysisModel string
	HistoryWindow int
}

type Agent struct {
	llm         llm.Completer
	catalog     *diagnostic.Catalog
	opts        Options
	toolsPrompt string
	now         func() time.Time
}

// Reply is one assistant turn. Failed replies are shown to the user but
// never written to the conversation history.
type Reply struct {
	Content      string
	FallbackMode bool
	Failed       bool
	ErrorCode    string
}

// New builds an agent. A nil completer puts the agent in fallback mode.
func New(completer llm.Completer, catalog *diagnostic.Catalog, opts Options) *Agent {
	if catalog == nil {
		catalog = diagnostic.DefaultCatalog()
	}
	if opts.ChatModel == "" {
		opts.ChatModel = "openai/gpt-4o-mini"
	}
	if opts.AnalysisModel == "" {
		opts.AnalysisModel = "openai/gpt-4o"
	}
	if opts.HistoryWindow <= 0 {
		opts.HistoryWindow = 10
	}
	return &Agent{
		llm:         completer,
		catalog:     catalog,
		opts:        opts,
		toolsPrompt: renderToolsPrompt(catalog),
		now:         time.Now,
	}
}

func (a *Agent) Configured() bool {
	return a.llm != nil
}

// Respond answers the latest user message of conv. conv must already contain
// that message and the symptoms extracted from it.
func (a *Agent) Respond(ctx context.Context, conv *models.Conversation) Reply {
	if a.llm == nil {
		return Reply{Content: fallbackReply(lastUserMessage(conv)), FallbackMode: true}
	}

	content, err := a.llm.Complete(ctx, llm.CompletionRequest{
		Model:       a.opts.ChatModel,
		Messages:    a.buildMessages(conv),
		Temperature: 0.7,
		MaxTokens:   500,
	})
	if err != nil {
		reply, code := classifyError(err)
		slog.WarnContext(ctx, "Respond(): completion failed",
			"conversation_id", conv.ConversationID, "error_code", code, "error", err)
		return Reply{Content: reply, Failed: true, ErrorCode: code}
	}
	return Reply{Content: content}
}

func lastUserMessage(conv *models.Conversation) string {
	for i := len(conv.Messages) - 1; i >= 0; i-- {
		if conv.Messages[i].Role == models.RoleUser {
			return conv.Messages[i].Content
		}
	}
	return ""
}
