package models

import (
	"time"

	"github.com/google/uuid"
)

// Collector source types. Website submissions are origin-gated against
// AllowedDomains; anything else (social/link sources) is not.
const SourceTypeWebsite = "Website"

// Field types a collector schema may declare.
const (
	FieldTypeString = "string"
	FieldTypeNumber = "number"
	FieldTypeArray  = "array"
)

type FormField struct {
	Name     string `json:"name"`
	Type     string `json:"type"`
	Required bool   `json:"required"`
}

type FormStructure struct {
	Fields map[string]FormField `json:"fields"`
}

type Collector struct {
	ID             uuid.UUID     `json:"collectorId"`
	WorkspaceID    uuid.UUID     `json:"workspaceId"`
	Name           string        `json:"name"`
	SourceType     string        `json:"sourceType"`
	AllowedDomains []string      `json:"allowedDomains"`
	FormStructure  FormStructure `json:"formStructure"`
	CreatedAt      time.Time     `json:"-"`
}
