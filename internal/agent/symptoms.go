package agent

import (
	"strings"

	"healprint/internal/models"
)

// ExtractSymptoms records every catalog symptom whose words occur in message.
func (a *Agent) ExtractSymptoms(message string) models.Symptoms {
	found := models.Symptoms{}
	lower := strings.ToLower(message)
	for _, category := range a.catalog.CategoryKeys() {
		for _, symptom := range a.catalog.SymptomCategories[category].Symptoms {
			if strings.Contains(lower, strings.ReplaceAll(symptom, "_", " ")) {
				if _, seen := found[symptom]; !seen {
					found[symptom] = models.SymptomMention{Category: category, Mentioned: true}
				}
			}
		}
	}
	return found
}

// Stage 수집된 증상 수와 assistant 응답 수로 평가 단계 결정
func Stage(symptoms, assistantReplies int) string {
	switch {
	case symptoms >= 3 && assistantReplies >= 2:
		return models.StageDiagnosticReady
	case symptoms >= 1 || assistantReplies >= 1:
		return models.StageGatheringInfo
	default:
		return models.StageInitial
	}
}
