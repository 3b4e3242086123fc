package triage

import "symptom-helper-server/internal/models"

// triageCopy is the user-facing title/message pair for one tier.
type triageCopy struct {
	title   string
	message string
}

// copyTables holds the localized copy per language and tier. Unknown
// language codes fall back to the English table.
var copyTables = map[string]map[models.TriageLevel]triageCopy{
	models.LanguageEnglish: {
		models.TriageEmergency: {
			title:   "Seek emergency care now",
			message: "Some of what you described can be serious. Please call emergency services or go to the nearest emergency room right away.",
		},
		models.TriageCaution: {
			title:   "Keep a close eye on your child",
			message: "These symptoms are usually manageable at home, but contact your doctor if they get worse or don't improve.",
		},
		models.TriageRoutine: {
			title:   "Looks routine",
			message: "Nothing you described stands out as urgent. Watch your child and see a doctor if anything changes.",
		},
	},
	models.LanguageSpanish: {
		models.TriageEmergency: {
			title:   "Busque atención de emergencia ahora",
			message: "Algo de lo que describió puede ser grave. Llame a los servicios de emergencia o vaya a urgencias de inmediato.",
		},
		models.TriageCaution: {
			title:   "Vigile de cerca a su hijo",
			message: "Estos síntomas suelen poder manejarse en casa, pero contacte a su médico si empeoran o no mejoran.",
		},
		models.TriageRoutine: {
			title:   "Parece rutinario",
			message: "Nada de lo que describió parece urgente. Observe a su hijo y consulte a un médico si algo cambia.",
		},
	},
	models.LanguageFrench: {
		models.TriageEmergency: {
			title:   "Consultez les urgences immédiatement",
			message: "Certains éléments décrits peuvent être graves. Appelez les services d'urgence ou rendez-vous aux urgences sans attendre.",
		},
		models.TriageCaution: {
			title:   "Surveillez votre enfant de près",
			message: "Ces symptômes se gèrent souvent à la maison, mais contactez votre médecin s'ils s'aggravent ou persistent.",
		},
		models.TriageRoutine: {
			title:   "Situation habituelle",
			message: "Rien de ce que vous avez décrit ne semble urgent. Surveillez votre enfant et consultez un médecin si quelque chose change.",
		},
	},
}
