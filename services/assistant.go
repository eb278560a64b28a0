package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"hash/fnv"
	"io"
	"net/http"
	"strings"
	"time"
)

// AssistantService produces the supportive replies shown in chat and voice
// sessions. When a generative API key is configured it calls the remote
// model; otherwise (or on any failure) it falls back to fixed responses
// keyed by risk level, so the chat never goes silent.
type AssistantService struct {
	apiURL string
	apiKey string
	client *http.Client
}

// NewAssistantService creates an AssistantService. An empty apiKey
// disables the remote call entirely.
func NewAssistantService(apiURL, apiKey string) *AssistantService {
	return &AssistantService{
		apiURL: apiURL,
		apiKey: apiKey,
		client: &http.Client{Timeout: 15 * time.Second},
	}
}

var welcomeMessages = map[string]string{
	"en": "Hello! I'm here to support you. How are you feeling today?",
	"hi": "नमस्ते! मैं आपकी सहायता के लिए यहाँ हूँ। आज आप कैसा महसूस कर रहे हैं?",
	"es": "¡Hola! Estoy aquí para apoyarte. ¿Cómo te sientes hoy?",
}

// WelcomeMessage returns the session opener for a language, defaulting to
// English.
func (a *AssistantService) WelcomeMessage(language string) string {
	if msg, ok := welcomeMessages[language]; ok {
		return msg
	}
	return welcomeMessages["en"]
}

var fallbackResponses = map[string]string{
	"high":   "I can hear that you're going through a really difficult time right now. Your feelings are valid, and I want you to know that you're not alone. Have you considered reaching out to a counselor or trusted friend for additional support?",
	"medium": "It sounds like you're dealing with some challenging feelings. Thank you for sharing this with me - that takes courage. What do you think might help you feel a little more supported right now?",
	"low":    "I appreciate you sharing your thoughts with me. It's important to check in with ourselves regularly. What's one small thing that usually helps you feel a bit better when you're going through tough times?",
}

// HistoryEntry is one prior turn fed into the reply prompt.
type HistoryEntry struct {
	Sender  string
	Message string
}

const systemPrompt = `You are a compassionate AI mental health support assistant specialized in helping students. You provide empathetic, supportive responses using evidence-based therapeutic techniques like CBT and mindfulness. Be warm, understanding, and encouraging. Ask open-ended questions to help users explore their feelings. Always remind users that you're not a replacement for professional help when appropriate.

Key guidelines:
- Be empathetic and non-judgmental
- Use active listening techniques
- Offer practical coping strategies
- Validate the user's feelings
- Encourage professional help when needed
- Keep responses conversational and supportive (2-4 sentences)`

// Reply generates a supportive response to the user's message, given up
// to the last ten turns of conversation. Never returns an error to the
// caller: any upstream failure degrades to the risk-level fallback text.
func (a *AssistantService) Reply(ctx context.Context, history []HistoryEntry, message, language, riskLevel string) string {
	if a.apiKey == "" {
		return fallbackFor(riskLevel)
	}
	reply, err := a.generate(ctx, history, message, language)
	if err != nil || strings.TrimSpace(reply) == "" {
		return fallbackFor(riskLevel)
	}
	return strings.TrimSpace(reply)
}

func fallbackFor(riskLevel string) string {
	if msg, ok := fallbackResponses[riskLevel]; ok {
		return msg
	}
	return fallbackResponses["low"]
}

func (a *AssistantService) generate(ctx context.Context, history []HistoryEntry, message, language string) (string, error) {
	var conversation strings.Builder
	for _, h := range history {
		conversation.WriteString(h.Sender)
		conversation.WriteString(": ")
		conversation.WriteString(h.Message)
		conversation.WriteString("\n")
	}

	prompt := fmt.Sprintf("%s\n\nLanguage: %s\nPrevious conversation:\n%s\nCurrent user message: %s\n\nProvide a supportive, therapeutic response:",
		systemPrompt, language, conversation.String(), message)

	body := map[string]interface{}{
		"contents": []map[string]interface{}{
			{"parts": []map[string]string{{"text": prompt}}},
		},
		"generationConfig": map[string]interface{}{
			"temperature":     0.7,
			"topK":            40,
			"topP":            0.95,
			"maxOutputTokens": 250,
		},
	}
	payload, _ := json.Marshal(body)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.apiURL+"?key="+a.apiKey, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("assistant call: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		data, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("assistant status %d: %s", resp.StatusCode, data)
	}

	var result struct {
		Candidates []struct {
			Content struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"content"`
		} `json:"candidates"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if len(result.Candidates) == 0 || len(result.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("empty candidates")
	}
	return result.Candidates[0].Content.Parts[0].Text, nil
}

// Placeholder transcripts used while no speech-to-text provider is wired
// in. The pick is derived from the audio payload so the same upload maps
// to the same transcript.
var sampleTranscripts = []string{
	"Hello, I've been feeling a bit anxious lately and could use some support.",
	"I'm having trouble sleeping and my mind keeps racing at night.",
	"I feel overwhelmed with my studies and don't know how to manage my stress.",
	"Can you help me with some breathing exercises or relaxation techniques?",
	"I've been feeling isolated and would like someone to talk to.",
	"I'm worried about my upcoming exams and feel like I'm not prepared enough.",
	"Sometimes I feel like I'm not good enough and doubt myself a lot.",
	"I've been having panic attacks and don't know how to cope with them.",
}

// Transcribe turns a base64 audio payload into text.
func (a *AssistantService) Transcribe(audioData, language string) (string, error) {
	if strings.TrimSpace(audioData) == "" {
		return "", fmt.Errorf("%w: empty audio payload", ErrInvalidArgument)
	}
	h := fnv.New32a()
	_, _ = h.Write([]byte(audioData))
	return sampleTranscripts[int(h.Sum32())%len(sampleTranscripts)], nil
}
