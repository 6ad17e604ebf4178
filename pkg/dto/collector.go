package dto

import (
	"github.com/google/uuid"
	"github.com/satari/satari-api/internal/models"
)

type CollectorData struct {
	WorkspaceID    uuid.UUID            `json:"workspaceId"`
	Name           string               `json:"name"`
	SourceType     string               `json:"sourceType"`
	AllowedDomains []string             `json:"allowedDomains"`
	FormStructure  models.FormStructure `json:"formStructure"`
}

type CreateCollectorRequest struct {
	Token         string        `json:"token"`
	CollectorData CollectorData `json:"collectorData"`
}

type CreateCollectorResponse struct {
	Message     string    `json:"message"`
	CollectorID uuid.UUID `json:"collectorId"`
}

type FetchCollectorsRequest struct {
	Token       string    `json:"token"`
	WorkspaceID uuid.UUID `json:"workspaceId"`
}

type FetchCollectorsResponse struct {
	Collectors []models.Collector `json:"collectors"`
}

type DeleteCollectorRequest struct {
	Token       string    `json:"token"`
	WorkspaceID uuid.UUID `json:"workspaceId"`
	CollectorID uuid.UUID `json:"collectorId"`
}
