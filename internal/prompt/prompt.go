package prompt

import (
	"fmt"
	"strings"

	"symptom-helper-server/internal/models"
)

// Persona describes the child the explanation is about.
type Persona struct {
	Name string
	Age  string // display string, may be empty
}

// UserMessage is the provider-agnostic user content. Image is non-nil
// only for image attachments; each adapter decides how to encode it on
// the wire.
type UserMessage struct {
	Text  string
	Image *models.Attachment
}

// languageNames resolves a language code to the name used inside the
// prompt. Unknown codes fall back to English.
var languageNames = map[string]string{
	models.LanguageEnglish: "English",
	models.LanguageSpanish: "Spanish",
	models.LanguageFrench:  "French",
}

// readingLevelInstructions selects the wording constraint per level.
var readingLevelInstructions = map[string]string{
	models.ReadingVerySimple: "Use very short sentences and the easiest words possible, as if explaining to a young child.",
	models.ReadingSimple:     "Use plain, everyday language that any parent can follow without effort.",
	models.ReadingDetailed:   "You may include more detail and background, but stay clear and avoid technical terms.",
}

// BuildSystemPrompt assembles the provider-independent system
// instruction. The emergency opening is injected only for the
// emergency tier; otherwise a softer conditional instruction is used.
func BuildSystemPrompt(persona Persona, language, readingLevel string, triageLevel models.TriageLevel) string {
	languageName, ok := languageNames[language]
	if !ok {
		languageName = languageNames[models.LanguageEnglish]
	}

	levelInstruction, ok := readingLevelInstructions[readingLevel]
	if !ok {
		levelInstruction = readingLevelInstructions[models.ReadingSimple]
	}

	urgencyInstruction := "If any symptom sounds potentially dangerous, gently advise seeing a doctor soon."
	if triageLevel == models.TriageEmergency {
		urgencyInstruction = "Start your answer by clearly telling the parent to seek emergency care immediately, before explaining anything else."
	}

	return fmt.Sprintf(`You are a warm, reassuring pediatric health helper talking to the parent of a child named %s.
%s
Respond entirely in %s.
%s
Never use medical jargon; if a medical term is unavoidable, explain it in everyday words.
You are not a doctor and you must not give a diagnosis. Always include a short reminder that this is general information and a doctor should confirm anything serious.
Keep the whole answer under 250 words.
Structure your answer in exactly four short sections:
1. What might be causing this
2. What you can do at home
3. When you should see a doctor
4. A few encouraging words for the family`,
		persona.Name, urgencyInstruction, languageName, levelInstruction)
}

// BuildUserMessage restates the request in the parent's first person
// and decides how the attachment participates. Non-image files are
// described but never transmitted.
func BuildUserMessage(symptoms string, persona Persona, language, readingLevel string, attachment *models.Attachment) UserMessage {
	languageName, ok := languageNames[language]
	if !ok {
		languageName = languageNames[models.LanguageEnglish]
	}

	var b strings.Builder
	if persona.Age != "" {
		fmt.Fprintf(&b, "My child %s is %s years old.", persona.Name, persona.Age)
	} else {
		fmt.Fprintf(&b, "My child's name is %s.", persona.Name)
	}
	fmt.Fprintf(&b, " Here is what I am seeing: %s.", strings.TrimSpace(symptoms))
	fmt.Fprintf(&b, " Please answer in %s at a %s reading level.", languageName, strings.ReplaceAll(readingLevel, "_", " "))

	msg := UserMessage{}
	if attachment != nil {
		if attachment.IsImage {
			fmt.Fprintf(&b, " I attached a photo (%s); please look at it and take it into account along with my description.", attachment.FileName)
			msg.Image = attachment
		} else {
			fmt.Fprintf(&b, " I also have a file (%s, %s) that cannot be shared here; please base your answer on my written description alone.", attachment.FileName, attachment.MimeType)
		}
	}

	msg.Text = b.String()
	return msg
}
