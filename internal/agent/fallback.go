package agent

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"healprint/internal/llm"
)

const (
	ErrCodeCredits   = "API credits exhausted"
	ErrCodeAuth      = "API authentication failed"
	ErrCodeTechnical = "API error"
)

const (
	replyCredits   = "I'm currently unable to process your request due to API credit limitations. Please contact support or try again later. For immediate assistance, please reach out to our support team at support@healprint.xyz."
	replyAuth      = "I'm currently unable to process your request due to API authentication issues. Please contact support at support@healprint.xyz."
	replyTechnical = "I apologize, I'm experiencing technical difficulties. Please try again later or contact support at support@healprint.xyz."
)

type fallbackRule struct {
	words []string
	reply string
}

// 순서대로 검사, 첫 매칭 사용
var fallbackRules = []fallbackRule{
	{
		words: []string{"hello", "hi", "hey", "start"},
		reply: "Hello! I'm HealPrint AI, your health and wellness assistant. I'm currently experiencing some technical difficulties with my AI processing, but I'm here to help guide you through your health journey. Please describe any skin, hair, or health concerns you'd like to discuss.",
	},
	{
		words: []string{"skin", "acne", "rash", "dry", "oily"},
		reply: "I understand you're concerned about skin issues. While I'm experiencing technical difficulties with my AI analysis, I can still provide general guidance. Common skin concerns often relate to diet, stress, hormones, or skincare routines. Would you like to share more details about your specific skin concerns?",
	},
	{
		words: []string{"hair", "hair loss", "thinning", "dry hair"},
		reply: "Hair health is often connected to internal factors like nutrition, stress, and hormonal balance. While I'm having technical difficulties with my AI processing, I can still offer general advice. What specific hair concerns are you experiencing?",
	},
	{
		words: []string{"help", "support", "contact"},
		reply: "I'm here to help! While I'm experiencing some technical difficulties with my AI processing, our support team is available to assist you. You can reach us at support@healprint.xyz or try again later when the service is fully restored.",
	},
}

const genericFallback = "Thank you for your message. I'm currently experiencing some technical difficulties with my AI processing capabilities, but I'm still here to help guide you through your health journey. Please feel free to describe any health concerns you have, and I'll do my best to provide helpful guidance."

func fallbackReply(message string) string {
	lower := strings.ToLower(message)
	for _, rule := range fallbackRules {
		for _, w := range rule.words {
			if strings.Contains(lower, w) {
				return rule.reply
			}
		}
	}
	return genericFallback
}

// classifyError maps a provider failure to a user-facing reply and error code.
func classifyError(err error) (string, string) {
	status := 0
	var apiErr *llm.APIError
	if errors.As(err, &apiErr) {
		status = apiErr.StatusCode
	}
	msg := strings.ToLower(err.Error())

	switch {
	case status == http.StatusPaymentRequired || strings.Contains(msg, "credits"):
		return replyCredits, ErrCodeCredits
	case status == http.StatusUnauthorized || strings.Contains(msg, "unauthorized"):
		return replyAuth, ErrCodeAuth
	case status != 0:
		return replyTechnical, fmt.Sprintf("%s: status %d", ErrCodeTechnical, status)
	default:
		return replyTechnical, ErrCodeTechnical + ": provider unavailable"
	}
}
