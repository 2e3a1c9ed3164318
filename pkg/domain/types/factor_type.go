package types

import "fmt"

// FactorType represents a behavioral signal source of expertise
type FactorType string

const (
	FactorProcessParticipation FactorType = "process_participation"
	FactorCommunicationHub     FactorType = "communication_hub"
	FactorDocumentAuthorship   FactorType = "document_authorship"
	FactorMeetingPresence      FactorType = "meeting_presence"
	FactorQuestionResponder    FactorType = "question_responder"
)

// AllFactorTypes returns all built-in contribution factor types
func AllFactorTypes() []FactorType {
	return []FactorType{
		FactorProcessParticipation,
		FactorCommunicationHub,
		FactorDocumentAuthorship,
		FactorMeetingPresence,
		FactorQuestionResponder,
	}
}

// IsValid checks if the factor type is valid
func (f FactorType) IsValid() bool {
	switch f {
	case FactorProcessParticipation,
		FactorCommunicationHub,
		FactorDocumentAuthorship,
		FactorMeetingPresence,
		FactorQuestionResponder:
		return true
	default:
		return false
	}
}

// String returns the string representation of the factor type
func (f FactorType) String() string {
	return string(f)
}

// ParseFactorType parses a string into a FactorType
func ParseFactorType(s string) (FactorType, error) {
	ft := FactorType(s)
	if !ft.IsValid() {
		return "", fmt.Errorf("invalid factor type: %s", s)
	}
	return ft, nil
}
