package prompt

import (
	"strings"
	"testing"

	"symptom-helper-server/internal/models"
)

func TestBuildSystemPrompt(t *testing.T) {
	persona := Persona{Name: "Mia", Age: "6"}

	t.Run("language and reading level", func(t *testing.T) {
		p := BuildSystemPrompt(persona, models.LanguageSpanish, models.ReadingDetailed, models.TriageRoutine)
		if !strings.Contains(p, "Spanish") {
			t.Fatalf("expected Spanish language instruction, got: %s", p)
		}
		if !strings.Contains(p, readingLevelInstructions[models.ReadingDetailed]) {
			t.Fatalf("expected detailed reading instruction")
		}
	})

	t.Run("unknown reading level defaults to simple", func(t *testing.T) {
		p := BuildSystemPrompt(persona, models.LanguageEnglish, "academic", models.TriageRoutine)
		if !strings.Contains(p, readingLevelInstructions[models.ReadingSimple]) {
			t.Fatalf("expected simple reading instruction fallback")
		}
	})

	t.Run("unknown language defaults to english", func(t *testing.T) {
		p := BuildSystemPrompt(persona, "de", models.ReadingSimple, models.TriageRoutine)
		if !strings.Contains(p, "English") {
			t.Fatalf("expected English fallback")
		}
	})

	t.Run("emergency opening only for emergency tier", func(t *testing.T) {
		emergency := BuildSystemPrompt(persona, models.LanguageEnglish, models.ReadingSimple, models.TriageEmergency)
		if !strings.Contains(emergency, "seek emergency care immediately") {
			t.Fatalf("expected emergency opening instruction")
		}

		routine := BuildSystemPrompt(persona, models.LanguageEnglish, models.ReadingSimple, models.TriageRoutine)
		if strings.Contains(routine, "seek emergency care immediately") {
			t.Fatalf("routine prompt must not carry the emergency opening")
		}
		if !strings.Contains(routine, "potentially dangerous") {
			t.Fatalf("expected the softer conditional instruction")
		}
	})

	t.Run("fixed constraints always present", func(t *testing.T) {
		p := BuildSystemPrompt(persona, models.LanguageEnglish, models.ReadingSimple, models.TriageCaution)
		for _, want := range []string{"Mia", "jargon", "not a doctor", "under 250 words", "four short sections"} {
			if !strings.Contains(p, want) {
				t.Fatalf("expected prompt to contain %q", want)
			}
		}
	})
}

func TestBuildUserMessage(t *testing.T) {
	persona := Persona{Name: "Leo", Age: "4"}

	t.Run("restates request in first person", func(t *testing.T) {
		msg := BuildUserMessage("coughing at night", persona, models.LanguageFrench, models.ReadingVerySimple, nil)
		for _, want := range []string{"Leo", "4 years old", "coughing at night", "French", "very simple"} {
			if !strings.Contains(msg.Text, want) {
				t.Fatalf("expected user text to contain %q, got: %s", want, msg.Text)
			}
		}
		if msg.Image != nil {
			t.Fatalf("expected no image without an attachment")
		}
	})

	t.Run("missing age", func(t *testing.T) {
		msg := BuildUserMessage("rash on arm", Persona{Name: "Leo"}, models.LanguageEnglish, models.ReadingSimple, nil)
		if strings.Contains(msg.Text, "years old") {
			t.Fatalf("age wording must be omitted when age is unknown")
		}
	})

	t.Run("image attachment", func(t *testing.T) {
		att := &models.Attachment{Base64: "aGk=", MimeType: "image/png", FileName: "rash.png", IsImage: true}
		msg := BuildUserMessage("rash on arm", persona, models.LanguageEnglish, models.ReadingSimple, att)
		if msg.Image != att {
			t.Fatalf("expected image attachment to be carried through")
		}
		if !strings.Contains(msg.Text, "photo") {
			t.Fatalf("expected an instruction to look at the photo")
		}
	})

	t.Run("non-image attachment", func(t *testing.T) {
		att := &models.Attachment{Base64: "aGk=", MimeType: "application/pdf", FileName: "report.pdf"}
		msg := BuildUserMessage("rash on arm", persona, models.LanguageEnglish, models.ReadingSimple, att)
		if msg.Image != nil {
			t.Fatalf("non-image files must not be transmitted")
		}
		if !strings.Contains(msg.Text, "written description alone") {
			t.Fatalf("expected an instruction to reason from text alone")
		}
	})
}
