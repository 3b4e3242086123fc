package triage

import (
	"strings"

	"symptom-helper-server/internal/models"
)

// rule pairs a lowercase pattern with the reason reported when it
// matches. Several patterns may map to the same reason; the reason is
// reported once.
type rule struct {
	pattern string
	reason  string
}

// urgentRules are checked first; any match classifies as emergency.
var urgentRules = []rule{
	{"can't breathe", "difficulty breathing"},
	{"cant breathe", "difficulty breathing"},
	{"cannot breathe", "difficulty breathing"},
	{"trouble breathing", "difficulty breathing"},
	{"difficulty breathing", "difficulty breathing"},
	{"struggling to breathe", "difficulty breathing"},
	{"gasping", "difficulty breathing"},
	{"chest pain", "chest pain"},
	{"chest hurts", "chest pain"},
	{"unconscious", "loss of consciousness"},
	{"unresponsive", "loss of consciousness"},
	{"passed out", "loss of consciousness"},
	{"fainted", "loss of consciousness"},
	{"won't wake up", "loss of consciousness"},
	{"seizure", "seizure"},
	{"convulsion", "seizure"},
	{"blue lips", "bluish lips or skin"},
	{"lips are blue", "bluish lips or skin"},
	{"turning blue", "bluish lips or skin"},
	{"hurt themselves", "mention of self-harm"},
	{"hurt himself", "mention of self-harm"},
	{"hurt herself", "mention of self-harm"},
	{"self-harm", "mention of self-harm"},
	{"self harm", "mention of self-harm"},
	{"suicid", "mention of self-harm"},
}

// watchRules classify as caution when no urgent rule matched.
var watchRules = []rule{
	{"high fever", "high fever"},
	{"fever", "fever"},
	{"vomit", "vomiting"},
	{"throwing up", "vomiting"},
	{"diarrhea", "diarrhea"},
	{"diarrhoea", "diarrhea"},
	{"rash", "rash"},
	{"ear pain", "ear pain"},
	{"earache", "ear pain"},
	{"sore throat", "sore throat"},
	{"headache", "headache"},
	{"cough", "cough"},
	{"runny nose", "runny nose"},
	{"not eating", "reduced appetite"},
	{"won't eat", "reduced appetite"},
	{"dehydrat", "possible dehydration"},
}

// Classify maps symptom text to an urgency tier with the reasons that
// fired. Urgent rules win over watch rules; within a tier every
// matching rule contributes its reason. The function is pure: same
// input, same output, no side effects.
func Classify(symptomText, language string) models.TriageResult {
	text := strings.ToLower(symptomText)

	if reasons := matchReasons(text, urgentRules); len(reasons) > 0 {
		return localize(models.TriageEmergency, language, reasons)
	}
	if reasons := matchReasons(text, watchRules); len(reasons) > 0 {
		return localize(models.TriageCaution, language, reasons)
	}
	return localize(models.TriageRoutine, language, []string{})
}

func matchReasons(text string, rules []rule) []string {
	var reasons []string
	seen := make(map[string]bool)
	for _, r := range rules {
		if strings.Contains(text, r.pattern) && !seen[r.reason] {
			seen[r.reason] = true
			reasons = append(reasons, r.reason)
		}
	}
	return reasons
}

func localize(level models.TriageLevel, language string, reasons []string) models.TriageResult {
	table, ok := copyTables[language]
	if !ok {
		table = copyTables[models.LanguageEnglish]
	}
	c := table[level]
	return models.TriageResult{
		Level:   level,
		Title:   c.title,
		Message: c.message,
		Reasons: reasons,
	}
}
