package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/satari/satari-api/internal/database"
	"github.com/satari/satari-api/internal/models"
)

// FormService persists collected form submissions. One row per call, no
// deduplication.
type FormService struct {
	db *database.DB
}

func NewFormService(db *database.DB) *FormService {
	return &FormService{db: db}
}

func (s *FormService) Store(ctx context.Context, collector *models.Collector, formData map[string]any, sourceDomain *string) (*models.CollectedForm, error) {
	encoded, err := json.Marshal(formData)
	if err != nil {
		return nil, fmt.Errorf("failed to encode form data: %w", err)
	}

	form := models.CollectedForm{
		CollectorID:  collector.ID,
		WorkspaceID:  collector.WorkspaceID,
		Name:         collector.Name,
		SourceType:   collector.SourceType,
		SourceDomain: sourceDomain,
		FormData:     formData,
	}

	err = s.db.Pool.QueryRow(ctx, `
		INSERT INTO collected_forms (collector_id, workspace_id, name, source_type, source_domain, form_data)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, collected_at
	`, form.CollectorID, form.WorkspaceID, form.Name, form.SourceType, form.SourceDomain, encoded).
		Scan(&form.ID, &form.CollectedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to store collected form: %w", err)
	}
	return &form, nil
}

func (s *FormService) ListByCollector(ctx context.Context, collectorID uuid.UUID) ([]models.CollectedForm, error) {
	rows, err := s.db.Pool.Query(ctx, `
		SELECT id, collector_id, workspace_id, name, source_type, source_domain, form_data, collected_at
		FROM collected_forms WHERE collector_id = $1
		ORDER BY collected_at DESC
	`, collectorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	forms := []models.CollectedForm{}
	for rows.Next() {
		var form models.CollectedForm
		var data []byte
		if err := rows.Scan(
			&form.ID, &form.CollectorID, &form.WorkspaceID, &form.Name,
			&form.SourceType, &form.SourceDomain, &data, &form.CollectedAt,
		); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(data, &form.FormData); err != nil {
			return nil, fmt.Errorf("failed to decode form data: %w", err)
		}
		forms = append(forms, form)
	}
	return forms, rows.Err()
}
