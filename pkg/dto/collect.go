package dto

import (
	"github.com/google/uuid"
	"github.com/satari/satari-api/internal/models"
)

type CollectFormRequest struct {
	CollectorID uuid.UUID      `json:"collectorId"`
	FormData    map[string]any `json:"formData"`
}

type FetchCollectedFormsRequest struct {
	Token       string    `json:"token"`
	WorkspaceID uuid.UUID `json:"workspaceId"`
	CollectorID uuid.UUID `json:"collectorId"`
}

type FetchCollectedFormsResponse struct {
	CollectedForms []models.CollectedForm `json:"collectedForms"`
}
