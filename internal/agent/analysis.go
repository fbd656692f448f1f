package agent

import (
	"context"
	"encoding/json"
	"fmt"

	"healprint/internal/diagnostic"
	"healprint/internal/llm"
	"healprint/internal/models"
)

type Analysis struct {
	Analysis         string                    `json:"analysis"`
	SymptomsAnalyzed models.Symptoms           `json:"symptoms_analyzed"`
	HealthFactors    []diagnostic.HealthFactor `json:"health_factors"`
	ConversationID   string                    `json:"conversation_id"`
}

// Analyze asks the analysis model for a structured write-up of conv.
func (a *Agent) Analyze(ctx context.Context, conv *models.Conversation) (*Analysis, error) {
	if len(conv.SymptomsCollected) == 0 {
		return nil, ErrNoSymptoms
	}
	if a.llm == nil {
		return nil, ErrNotConfigured
	}

	keys := conv.SymptomsCollected.Keys()
	factors := a.catalog.HealthFactorsFor(keys)

	symptomsJSON, _ := json.MarshalIndent(conv.SymptomsCollected, "", "  ")
	factorsJSON, _ := json.MarshalIndent(factors, "", "  ")
	prompt := fmt.Sprintf(`Based on the collected symptoms and conversation, provide a comprehensive health analysis:

Collected Symptoms:
%s

Relevant Health Factors:
%s

Please provide:
1. Primary health concerns identified
2. Likely root causes
3. Confidence level (0-1)
4. Specific recommendations
5. Next steps
6. Whether professional consultation is needed
7. Suggested tests or evaluations

Format your response as a structured analysis.`, symptomsJSON, factorsJSON)

	contextLine := fmt.Sprintf("Analysis Mode: %s | Symptoms: %v", conv.AssessmentStage, keys)
	content, err := a.llm.Complete(ctx, llm.CompletionRequest{
		Model: a.opts.AnalysisModel,
		Messages: []llm.ChatMessage{
			{Role: models.RoleSystem, Content: a.systemContent(contextLine)},
			{Role: models.RoleUser, Content: prompt},
		},
		Temperature: 0.3,
		MaxTokens:   1500,
	})
	if err != nil {
		return nil, fmt.Errorf("Analyze(): %w: %w", ErrAnalysisFailed, err)
	}

	return &Analysis{
		Analysis:         content,
		SymptomsAnalyzed: conv.SymptomsCollected,
		HealthFactors:    factors,
		ConversationID:   conv.ConversationID,
	}, nil
}
