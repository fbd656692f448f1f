package models

// SymptomReport 진단 서비스 입력
type SymptomReport struct {
	UserID           string   `json:"user_id" example:"6f1c2a4e-8d0b-4a43-9c53-2f7c1c1d9a10"`
	SkinSymptoms     []string `json:"skin_symptoms" example:"acne,dry patches"`
	HairSymptoms     []string `json:"hair_symptoms" example:"hair loss"`
	LifestyleFactors []string `json:"lifestyle_factors" example:"stress"`
}

type DiagnosticResult struct {
	AnalysisID        string   `json:"analysis_id"`
	UserID            string   `json:"user_id"`
	PrimaryConcerns   []string `json:"primary_concerns"`
	LikelyCauses      []string `json:"likely_causes"`
	Recommendations   []string `json:"recommendations"`
	ConfidenceScore   float64  `json:"confidence_score"`
	NextSteps         []string `json:"next_steps"`
	ReferralSuggested bool     `json:"referral_suggested"`
}
