package services

import (
	"strings"

	"github.com/Shish1928/mental-health-platform/models"
)

// Keyword lexicons for the lightweight sentiment heuristic. Each hit moves
// the score by 0.2, clamped to [-1, 1].
var (
	negativeWords = []string{"sad", "depressed", "hopeless", "suicide", "hurt", "pain", "kill", "die"}
	positiveWords = []string{"happy", "good", "great", "wonderful", "excellent", "amazing"}

	highRiskPhrases   = []string{"suicide", "kill myself", "end it all", "want to die"}
	mediumRiskPhrases = []string{"hopeless", "can't take it", "give up", "worthless"}
)

// AnalyzeSentiment scores a message in [-1, 1] from keyword hits. It is a
// deliberately simple heuristic; the generated reply does the nuanced work.
func AnalyzeSentiment(message string) float64 {
	lower := strings.ToLower(message)
	score := 0.0
	for _, w := range negativeWords {
		if strings.Contains(lower, w) {
			score -= 0.2
		}
	}
	for _, w := range positiveWords {
		if strings.Contains(lower, w) {
			score += 0.2
		}
	}
	if score > 1 {
		return 1
	}
	if score < -1 {
		return -1
	}
	return score
}

// CalculateRiskLevel classifies a message as low, medium or high risk.
// High-risk phrases dominate regardless of sentiment; strongly negative
// sentiment alone raises the level to medium.
func CalculateRiskLevel(sentimentScore float64, message string) string {
	lower := strings.ToLower(message)
	for _, phrase := range highRiskPhrases {
		if strings.Contains(lower, phrase) {
			return models.RiskHigh
		}
	}
	for _, phrase := range mediumRiskPhrases {
		if strings.Contains(lower, phrase) {
			return models.RiskMedium
		}
	}
	if sentimentScore < -0.5 {
		return models.RiskMedium
	}
	return models.RiskLow
}
