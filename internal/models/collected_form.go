package models

import (
	"time"

	"github.com/google/uuid"
)

// CollectedForm is one validated submission against a collector. Rows are
// append-only; deleting a collector leaves its collected forms in place.
type CollectedForm struct {
	ID           uuid.UUID      `json:"formId"`
	CollectorID  uuid.UUID      `json:"collectorId"`
	WorkspaceID  uuid.UUID      `json:"workspaceId"`
	Name         string         `json:"name"`
	SourceType   string         `json:"sourceType"`
	SourceDomain *string        `json:"sourceDomain,omitempty"`
	FormData     map[string]any `json:"formData"`
	CollectedAt  time.Time      `json:"collectedAt"`
}
