// Package assistant covers the conversational and document-understanding
// operations: chatbot replies, emergency guidance, medical document
// summaries and prescription extraction. Each one reuses the resilient
// provider chain and resolves with a deterministic value on total failure.
package assistant

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/synergyhealth/hospital-discovery/internal/ai"
	"github.com/synergyhealth/hospital-discovery/internal/domain/entities"
	"github.com/synergyhealth/hospital-discovery/internal/domain/providers"
)

const chatSystemPrompt = `You are Synergy's patient assistant. You help patients navigate hospitals, transplant waitlists, consultations, ambulances, home care, telehealth and pharmacy orders. Be concise, warm and practical. You never diagnose and you never replace professional medical advice.`

const chatFallback = "I'm having trouble reaching our assistant service right now. Please try again in a moment, or call our support line for urgent questions."

const emergencyFallback = "### Could Not Retrieve AI Guidance\n\nPlease follow standard first-aid procedures and await instructions from emergency services. If you haven't already, call your local emergency number now."

const summaryFallback = "Error: Could not process the document. Please enter the summary manually."

// Service executes assistant operations against a provider chain.
type Service struct {
	chain   []providers.CompletionProvider
	timeout time.Duration
}

// NewService creates an assistant service.
func NewService(chain []providers.CompletionProvider, timeout time.Duration) *Service {
	return &Service{chain: chain, timeout: timeout}
}

// Chat produces the assistant's reply to a conversation history.
func (s *Service) Chat(ctx context.Context, history []entities.ChatMessage) string {
	var b strings.Builder
	b.WriteString("Conversation so far:\n")
	for _, msg := range history {
		fmt.Fprintf(&b, "%s: %s\n", msg.Role, msg.Content)
	}
	b.WriteString("\nWrite the assistant's next reply. Keep it under 120 words.")

	return ai.Execute(ctx, s.chain, ai.Call[string]{
		Operation: "chatbot_reply",
		Request: providers.CompletionRequest{
			System: chatSystemPrompt,
			Prompt: b.String(),
		},
		Parse:    parseText,
		Fallback: func() string { return chatFallback },
		Timeout:  s.timeout,
	})
}

// EmergencyGuidance generates step-by-step instructions for the person
// reporting an emergency. The guidance addresses the reporter, not the
// patient.
func (s *Service) EmergencyGuidance(ctx context.Context, req entities.EmergencyRequest) string {
	name := strings.TrimSpace(req.ReporterName)
	if name == "" {
		name = "User"
	}
	details, _ := json.Marshal(req.Details)

	var b strings.Builder
	b.WriteString("You are providing emergency guidance. Your tone must be professional, calm, and empathetic.\n\n")
	fmt.Fprintf(&b, "The person reporting the emergency is named %s. Address them, not the patient.\n", name)
	fmt.Fprintf(&b, "The nature of the emergency is: %q\n", req.Nature)
	fmt.Fprintf(&b, "Other details provided about the patient and situation: %s\n\n", details)
	b.WriteString(`Provide immediate, clear, step-by-step instructions on how the reporter can help the patient. Refer to the person needing help as "the patient". Use Markdown for a numbered list and bold key actions. Keep the entire response under 100 words and include a disclaimer that this is not a substitute for professional medical advice and to prioritize instructions from emergency dispatchers.`)

	return ai.Execute(ctx, s.chain, ai.Call[string]{
		Operation: "emergency_guidance",
		Request:   providers.CompletionRequest{Prompt: b.String()},
		Parse:     parseText,
		Fallback:  func() string { return emergencyFallback },
		Timeout:   s.timeout,
	})
}

// SummarizeDocument produces a brief medical history summary from an
// uploaded document image.
func (s *Service) SummarizeDocument(ctx context.Context, image providers.ImagePart) string {
	prompt := `Analyze the following image of a medical document. Extract the key information and provide a concise summary (under 150 words) suitable for a "Brief Medical History" field. Focus on past diagnoses, major surgeries, chronic conditions, and allergies. Present the information in a clear, easy-to-read paragraph.`

	return ai.Execute(ctx, s.chain, ai.Call[string]{
		Operation: "document_summary",
		Request: providers.CompletionRequest{
			System: "You are a helpful medical assistant AI.",
			Prompt: prompt,
			Images: []providers.ImagePart{image},
		},
		Parse:    parseText,
		Fallback: func() string { return summaryFallback },
		Timeout:  s.timeout,
	})
}

// ExtractPrescription pulls structured prescription details out of an
// uploaded prescription image. On total failure it resolves with the empty
// prescription shape rather than an error.
func (s *Service) ExtractPrescription(ctx context.Context, image providers.ImagePart) entities.Prescription {
	prompt := `You are an expert pharmacy technician AI. Analyze the following image of a medical prescription and return a JSON object with:
1. "patientName": the full name of the patient.
2. "medications": an array of objects, each with "name", "dosage" (e.g. "500mg"), and "instructions" (e.g. "Twice a day after meals").

Your response must be ONLY the JSON object, with no other text, comments, or formatting. If a piece of information is not clearly visible, use an empty string "" for its value.`

	return ai.Execute(ctx, s.chain, ai.Call[entities.Prescription]{
		Operation: "prescription_extraction",
		Request: providers.CompletionRequest{
			Prompt: prompt,
			Images: []providers.ImagePart{image},
		},
		Parse:    parsePrescription,
		Fallback: func() entities.Prescription { return entities.Prescription{Medications: []entities.Medication{}} },
		Timeout:  s.timeout,
	})
}

func parseText(text string) (string, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return "", fmt.Errorf("empty response")
	}
	return trimmed, nil
}

func parsePrescription(text string) (entities.Prescription, error) {
	var p entities.Prescription
	if err := json.Unmarshal([]byte(text), &p); err != nil {
		return entities.Prescription{}, fmt.Errorf("response is not a prescription object: %w", err)
	}
	if p.Medications == nil {
		p.Medications = []entities.Medication{}
	}
	return p, nil
}
