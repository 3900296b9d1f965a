package entities

// ChatRole identifies the author of a chat message.
type ChatRole string

const (
	ChatRoleUser      ChatRole = "user"
	ChatRoleAssistant ChatRole = "assistant"
)

// ChatMessage is one turn of the assistant conversation.
type ChatMessage struct {
	Role    ChatRole `json:"role"`
	Content string   `json:"content"`
}

// EmergencyRequest carries the reporter's form data for guidance generation.
type EmergencyRequest struct {
	ReporterName string            `json:"reporterName"`
	Nature       string            `json:"nature"`
	Details      map[string]string `json:"details,omitempty"`
}

// Medication is one prescribed item extracted from a prescription image.
type Medication struct {
	Name         string `json:"name"`
	Dosage       string `json:"dosage"`
	Instructions string `json:"instructions"`
}

// Prescription is the structured result of prescription image extraction.
// Fields the model could not read come back as empty strings.
type Prescription struct {
	PatientName string       `json:"patientName"`
	Medications []Medication `json:"medications"`
}
