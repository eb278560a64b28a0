package services

import (
	"context"
	"testing"

	"github.com/Shish1928/mental-health-platform/models"
)

func TestAnalyzeSentiment(t *testing.T) {
	cases := []struct {
		message string
		want    float64
	}{
		{"I had a great and wonderful day", 0.4},
		{"I feel sad and hopeless", -0.4},
		{"the weather is overcast", 0},
		{"happy happy happy", 0.2}, // repeated word counts once
	}
	for _, tc := range cases {
		if got := AnalyzeSentiment(tc.message); got != tc.want {
			t.Fatalf("AnalyzeSentiment(%q)=%v want %v", tc.message, got, tc.want)
		}
	}
}

func TestAnalyzeSentimentClamped(t *testing.T) {
	msg := "sad depressed hopeless hurt pain die happy"
	got := AnalyzeSentiment(msg)
	if got < -1 || got > 1 {
		t.Fatalf("score %v outside [-1,1]", got)
	}
}

func TestCalculateRiskLevel(t *testing.T) {
	cases := []struct {
		message string
		want    string
	}{
		{"I want to die", models.RiskHigh},
		{"sometimes I think about suicide", models.RiskHigh},
		{"everything feels hopeless", models.RiskMedium},
		{"I just can't take it anymore", models.RiskMedium},
		{"exams are coming up and I'm nervous", models.RiskLow},
		{"today was a good day", models.RiskLow},
	}
	for _, tc := range cases {
		score := AnalyzeSentiment(tc.message)
		if got := CalculateRiskLevel(score, tc.message); got != tc.want {
			t.Fatalf("risk(%q)=%s want %s", tc.message, got, tc.want)
		}
	}
}

func TestCalculateRiskLevelFromSentimentAlone(t *testing.T) {
	// No risk phrases, but strongly negative sentiment escalates to medium.
	msg := "sad hurt pain"
	score := AnalyzeSentiment(msg)
	if score >= -0.5 {
		t.Fatalf("setup: score %v should be below -0.5", score)
	}
	if got := CalculateRiskLevel(score, msg); got != models.RiskMedium {
		t.Fatalf("risk=%s want medium", got)
	}
}

func TestAssistantFallbackWithoutKey(t *testing.T) {
	svc := NewAssistantService("https://example.invalid/v1/models/generate", "")
	reply := svc.Reply(context.Background(), nil, "I feel hopeless", "en", models.RiskMedium)
	if reply != fallbackResponses["medium"] {
		t.Fatalf("unexpected fallback %q", reply)
	}
}

func TestWelcomeMessageLanguages(t *testing.T) {
	svc := NewAssistantService("", "")
	if got := svc.WelcomeMessage("es"); got != welcomeMessages["es"] {
		t.Fatalf("es welcome %q", got)
	}
	if got := svc.WelcomeMessage("fr"); got != welcomeMessages["en"] {
		t.Fatalf("unknown language should fall back to English, got %q", got)
	}
}

func TestTranscribeDeterministic(t *testing.T) {
	svc := NewAssistantService("", "")
	a, err := svc.Transcribe("c29tZSBhdWRpbw==", "en")
	if err != nil {
		t.Fatal(err)
	}
	b, err := svc.Transcribe("c29tZSBhdWRpbw==", "en")
	if err != nil {
		t.Fatal(err)
	}
	if a != b {
		t.Fatalf("same payload produced different transcripts: %q vs %q", a, b)
	}
	if _, err := svc.Transcribe("  ", "en"); err == nil {
		t.Fatal("empty payload should be rejected")
	}
}
