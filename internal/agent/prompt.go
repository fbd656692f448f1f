package agent

import (
	"encoding/json"
	"fmt"
	"strings"
	"unicode"

	"healprint/internal/diagnostic"
	"healprint/internal/llm"
	"healprint/internal/models"
)

const systemPrompt = `You are HealPrint AI, a professional health and wellness AI agent specializing in connecting internal health symptoms with external skin and hair problems. You are an expert in:

1. Holistic Health Assessment: You understand the deep connections between internal health (hormones, nutrition, stress, gut health) and external appearance (skin, hair).

2. Symptom Pattern Recognition: You can identify patterns that link seemingly unrelated symptoms to root causes.

3. Personalized Recommendations: You provide tailored advice based on individual health profiles.

4. Professional Medical Awareness: You know when to recommend professional medical consultation and appropriate tests.

Your Approach:
- Ask thoughtful, targeted questions to understand the full health picture
- Connect internal and external symptoms to identify root causes
- Provide evidence-based recommendations
- Always prioritize safety and recommend professional consultation when needed
- Be empathetic, supportive, and non-judgmental
- Focus on holistic, sustainable solutions
- Build on previous responses and maintain conversation context
- When users respond to your questions, acknowledge their answer and ask follow-up questions
- Reference previous parts of the conversation to show you're listening
- Guide the conversation naturally from one topic to the next

Important Guidelines:
- Never provide specific medical diagnoses
- Always recommend professional consultation for serious concerns
- Focus on lifestyle, nutrition, and wellness approaches
- Be encouraging and supportive
- Ask follow-up questions to get complete picture
- Provide actionable, practical advice
- Use clean, simple formatting without markdown bold syntax
- Avoid using ** for emphasis - use plain text instead
- Always acknowledge the user's previous response before asking new questions
- When you provide numbered options and user selects one, acknowledge their choice and ask follow-up questions about that specific option
- If user responds with numbers (1, 2, 3) or mentions "option", treat it as a selection from your previous options

Your Goal: Help users understand the connection between their internal health and external appearance, guiding them toward better health and wellness through personalized insights and recommendations.

Remember: You're not replacing medical professionals, but you're providing valuable insights that can guide users toward better health decisions and appropriate professional care.`

const (
	contextOptions    = "Previous Context: User is responding to specific options/choices you provided"
	contextQuestions  = "Previous Context: User is responding to questions you asked"
	contextAdditional = "Previous Context: User is providing additional information"
	contextSelecting  = "User Response Type: Appears to be selecting from provided options"
)

var selectionWords = []string{"option", "choice", "select", "choose", "1", "2", "3", "4", "5"}

func renderToolsPrompt(c *diagnostic.Catalog) string {
	section := func(v any) string {
		b, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return "{}"
		}
		return string(b)
	}
	var sb strings.Builder
	sb.WriteString("Available Diagnostic Tools and Data:\n\n")
	sb.WriteString("Symptom Categories:\n" + section(c.SymptomCategories) + "\n\n")
	sb.WriteString("Key Health Factors to Consider:\n" + section(c.HealthFactors) + "\n\n")
	sb.WriteString("Common Diagnostic Patterns:\n" + section(c.DiagnosticPatterns) + "\n\n")
	sb.WriteString("Recommended Tests:\n" + section(c.RecommendedTests) + "\n\n")
	sb.WriteString("Use this information to guide your questions and provide comprehensive health insights.")
	return sb.String()
}

// ContextLine summarizes where the conversation stands for the model.
func ContextLine(conv *models.Conversation) string {
	parts := []string{"Current Assessment Stage: " + conv.AssessmentStage}

	if len(conv.SymptomsCollected) > 0 {
		parts = append(parts, "Identified Symptoms: "+strings.Join(conv.SymptomsCollected.Keys(), ", "))
	}

	if len(conv.Messages) >= 2 {
		var lastAssistant, lastUser string
		var haveAssistant, haveUser bool
		for i := len(conv.Messages) - 1; i >= 0; i-- {
			m := conv.Messages[i]
			if m.Role == models.RoleAssistant && !haveAssistant {
				lastAssistant, haveAssistant = m.Content, true
			} else if m.Role == models.RoleUser && !haveUser {
				lastUser, haveUser = m.Content, true
			}
		}

		if haveAssistant && haveUser {
			switch {
			case strings.IndexFunc(lastAssistant, unicode.IsDigit) >= 0 && strings.ContainsAny(lastAssistant, ".:"):
				parts = append(parts, contextOptions)
				if opts := optionLines(lastAssistant, 3); len(opts) > 0 {
					parts = append(parts, "Options provided: "+strings.Join(opts, " | "))
				}
			case strings.Contains(lastAssistant, "?"):
				parts = append(parts, contextQuestions)
			default:
				parts = append(parts, contextAdditional)
			}

			userLower := strings.ToLower(lastUser)
			for _, w := range selectionWords {
				if strings.Contains(userLower, w) {
					parts = append(parts, contextSelecting)
					break
				}
			}
		}
	}

	switch n := len(conv.Messages); {
	case n <= 2:
		parts = append(parts, "Conversation Status: Early stage - focus on gathering basic information")
	case n <= 6:
		parts = append(parts, "Conversation Status: Mid-stage - dive deeper into specific symptoms")
	default:
		parts = append(parts, "Conversation Status: Advanced stage - ready for analysis or recommendations")
	}
	return strings.Join(parts, " | ")
}

// optionLines 번호로 시작하거나 ':' 를 포함한 줄
func optionLines(text string, max int) []string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if unicode.IsDigit([]rune(line)[0]) || strings.Contains(line, ":") {
			out = append(out, line)
			if len(out) == max {
				break
			}
		}
	}
	return out
}

func (a *Agent) systemContent(contextLine string) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Today Date: %s\n\n", a.now().Format("02 Jan 2006")))
	sb.WriteString(systemPrompt)
	sb.WriteString("\n\n")
	sb.WriteString(a.toolsPrompt)
	if contextLine != "" {
		sb.WriteString("\n\nCONVERSATION CONTEXT: " + contextLine)
	}
	if strings.Contains(contextLine, contextOptions) {
		sb.WriteString("\n\nIMPORTANT: The user just responded to options you provided. Acknowledge their choice and ask follow-up questions about their selection.")
	}
	return sb.String()
}

// buildMessages system 메시지 + 최근 대화 (role 유지)
func (a *Agent) buildMessages(conv *models.Conversation) []llm.ChatMessage {
	history := conv.Messages
	if len(history) > a.opts.HistoryWindow {
		history = history[len(history)-a.opts.HistoryWindow:]
	}
	msgs := make([]llm.ChatMessage, 0, len(history)+1)
	msgs = append(msgs, llm.ChatMessage{Role: models.RoleSystem, Content: a.systemContent(ContextLine(conv))})
	for _, m := range history {
		if m.Role != models.RoleUser && m.Role != models.RoleAssistant {
			continue
		}
		msgs = append(msgs, llm.ChatMessage{Role: m.Role, Content: m.Content})
	}
	return msgs
}
