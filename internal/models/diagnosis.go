package models

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Language codes the application localizes for.
const (
	LanguageEnglish = "en"
	LanguageSpanish = "es"
	LanguageFrench  = "fr"
)

// Reading levels supported by the prompt builder.
const (
	ReadingVerySimple = "very_simple"
	ReadingSimple     = "simple"
	ReadingDetailed   = "detailed"
)

// TriageLevel is the coarse urgency classification of a symptom text.
type TriageLevel string

const (
	TriageEmergency TriageLevel = "emergency"
	TriageCaution   TriageLevel = "caution"
	TriageRoutine   TriageLevel = "routine"
)

// TriageResult is the localized outcome of classifying a symptom text.
// It is shown to the user and also steers the prompt builder.
type TriageResult struct {
	Level   TriageLevel `json:"level"`
	Title   string      `json:"title"`
	Message string      `json:"message"`
	Reasons []string    `json:"reasons"`
}

// Attachment is a client-supplied file, carried inline as base64.
// It is request-scoped and never persisted.
type Attachment struct {
	Base64   string `json:"base64" binding:"required"`
	MimeType string `json:"mimeType" binding:"required"`
	FileName string `json:"fileName"`
	IsImage  bool   `json:"isImage"`
}

// AllowedMimeTypes is the upload allow-list.
var AllowedMimeTypes = map[string]bool{
	"image/jpeg":      true,
	"image/png":       true,
	"image/webp":      true,
	"application/pdf": true,
	"text/plain":      true,
}

// ImageMimeTypes are the attachment types providers can receive inline.
var ImageMimeTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
}

// FlexInt accepts a JSON number or a numeric string. Clients send the
// child's age either way, so both must bind.
type FlexInt struct {
	Value int
	Set   bool
}

// UnmarshalJSON implements json.Unmarshaler.
func (f *FlexInt) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" {
		return nil
	}
	if strings.HasPrefix(s, `"`) {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		str = strings.TrimSpace(str)
		if str == "" {
			return nil
		}
		n, err := strconv.Atoi(str)
		if err != nil {
			return fmt.Errorf("age must be a whole number")
		}
		f.Value = n
		f.Set = true
		return nil
	}
	var n int
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("age must be a whole number")
	}
	f.Value = n
	f.Set = true
	return nil
}

// MarshalJSON implements json.Marshaler.
func (f FlexInt) MarshalJSON() ([]byte, error) {
	if !f.Set {
		return []byte("null"), nil
	}
	return json.Marshal(f.Value)
}

// DiagnosisRequest is the inbound payload for the diagnose operation.
type DiagnosisRequest struct {
	Symptoms     string      `json:"symptoms" binding:"required,min=3,max=1500"`
	Name         string      `json:"name" binding:"required,max=50"`
	Age          FlexInt     `json:"age"`
	Language     string      `json:"language" binding:"omitempty,oneof=en es fr"`
	ReadingLevel string      `json:"readingLevel" binding:"omitempty,oneof=very_simple simple detailed"`
	File         *Attachment `json:"file"`
}

// ApplyDefaults fills in the optional enum fields.
func (r *DiagnosisRequest) ApplyDefaults() {
	if r.Language == "" {
		r.Language = LanguageEnglish
	}
	if r.ReadingLevel == "" {
		r.ReadingLevel = ReadingSimple
	}
}

// AgeDisplay returns the age as a display string, empty when not given.
func (r *DiagnosisRequest) AgeDisplay() string {
	if !r.Age.Set {
		return ""
	}
	return strconv.Itoa(r.Age.Value)
}

// HandoffRecord is an immutable snapshot of the request context built
// after a successful diagnosis, intended for parent/clinician review
// and printing. It is returned to the client and not stored.
type HandoffRecord struct {
	ID           string    `json:"id"`
	CreatedAt    time.Time `json:"createdAt"`
	ChildName    string    `json:"childName"`
	ChildAge     string    `json:"childAge"`
	Symptoms     string    `json:"symptoms"`
	Language     string    `json:"language"`
	ReadingLevel string    `json:"readingLevel"`
}

// DiagnosisResponse is the success body of the diagnose operation.
type DiagnosisResponse struct {
	Result   string        `json:"result"`
	Provider string        `json:"provider"`
	Triage   TriageResult  `json:"triage"`
	Handoff  HandoffRecord `json:"handoff"`
}
