package handlers

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"symptom-helper-server/internal/ai"
	"symptom-helper-server/internal/config"
	"symptom-helper-server/internal/models"
	"symptom-helper-server/internal/prompt"
	"symptom-helper-server/internal/triage"
	"symptom-helper-server/internal/utils"
)

// DiagnosisHandler handles symptom explanation requests.
type DiagnosisHandler struct {
	Config *config.Config
	AI     *ai.Client
}

// NewDiagnosisHandler creates a new DiagnosisHandler.
func NewDiagnosisHandler(cfg *config.Config, aiClient *ai.Client) *DiagnosisHandler {
	return &DiagnosisHandler{Config: cfg, AI: aiClient}
}

// Diagnose validates the request, classifies urgency locally, builds
// the prompts and asks the providers for a simplified explanation.
// Configuration problems are rejected before any upstream call.
func (h *DiagnosisHandler) Diagnose(c *gin.Context) {
	var req models.DiagnosisRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}
	if err := utils.ValidateDiagnosisRequest(&req, h.Config.Upload.MaxBytes); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}
	req.ApplyDefaults()

	if h.AI == nil {
		utils.InternalServerError(c, "AI transport is not configured")
		return
	}
	if !h.AI.Enabled() {
		utils.InternalServerError(c, "no AI provider is configured")
		return
	}

	triageResult := triage.Classify(req.Symptoms, req.Language)

	persona := prompt.Persona{Name: req.Name, Age: req.AgeDisplay()}
	systemPrompt := prompt.BuildSystemPrompt(persona, req.Language, req.ReadingLevel, triageResult.Level)
	userMessage := prompt.BuildUserMessage(req.Symptoms, persona, req.Language, req.ReadingLevel, req.File)

	outcome, err := h.AI.RequestWithFallback(c.Request.Context(), systemPrompt, userMessage)
	if err != nil {
		if errors.Is(err, ai.ErrNoProvidersConfigured) || errors.Is(err, ai.ErrNoTransport) {
			utils.InternalServerError(c, err.Error())
			return
		}
		utils.BadGateway(c, err.Error())
		return
	}

	handoff := models.HandoffRecord{
		ID:           uuid.New().String(),
		CreatedAt:    time.Now().UTC(),
		ChildName:    req.Name,
		ChildAge:     req.AgeDisplay(),
		Symptoms:     req.Symptoms,
		Language:     req.Language,
		ReadingLevel: req.ReadingLevel,
	}

	utils.Success(c, "Explanation generated", models.DiagnosisResponse{
		Result:   outcome.Text,
		Provider: outcome.Provider,
		Triage:   triageResult,
		Handoff:  handoff,
	})
}
