package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/satari/satari-api/internal/database"
	"github.com/satari/satari-api/internal/models"
)

var (
	ErrCollectorNotFound = errors.New("collector not found")
	ErrCollectorQuota    = errors.New("maximum number of collectors for this workspace reached")
)

// MaxCollectorsPerWorkspace caps how many collectors a workspace may hold.
const MaxCollectorsPerWorkspace = 10

type CollectorService struct {
	db *database.DB
}

func NewCollectorService(db *database.DB) *CollectorService {
	return &CollectorService{db: db}
}

func scanCollector(row pgx.Row) (*models.Collector, error) {
	var c models.Collector
	var structure []byte
	err := row.Scan(&c.ID, &c.WorkspaceID, &c.Name, &c.SourceType, &c.AllowedDomains, &structure, &c.CreatedAt)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(structure, &c.FormStructure); err != nil {
		return nil, fmt.Errorf("failed to decode form structure: %w", err)
	}
	return &c, nil
}

func (s *CollectorService) Create(ctx context.Context, workspaceID uuid.UUID, name, sourceType string, allowedDomains []string, structure models.FormStructure) (*models.Collector, error) {
	var existing int
	err := s.db.Pool.QueryRow(ctx, `
		SELECT COUNT(*) FROM collectors WHERE workspace_id = $1
	`, workspaceID).Scan(&existing)
	if err != nil {
		return nil, fmt.Errorf("failed to count collectors: %w", err)
	}
	if existing >= MaxCollectorsPerWorkspace {
		return nil, ErrCollectorQuota
	}

	encoded, err := json.Marshal(structure)
	if err != nil {
		return nil, fmt.Errorf("failed to encode form structure: %w", err)
	}
	if allowedDomains == nil {
		allowedDomains = []string{}
	}

	collector, err := scanCollector(s.db.Pool.QueryRow(ctx, `
		INSERT INTO collectors (workspace_id, name, source_type, allowed_domains, form_structure)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, workspace_id, name, source_type, allowed_domains, form_structure, created_at
	`, workspaceID, name, sourceType, allowedDomains, encoded))
	if err != nil {
		return nil, fmt.Errorf("failed to create collector: %w", err)
	}
	return collector, nil
}

func (s *CollectorService) GetByID(ctx context.Context, collectorID uuid.UUID) (*models.Collector, error) {
	collector, err := scanCollector(s.db.Pool.QueryRow(ctx, `
		SELECT id, workspace_id, name, source_type, allowed_domains, form_structure, created_at
		FROM collectors WHERE id = $1
	`, collectorID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrCollectorNotFound
		}
		return nil, err
	}
	return collector, nil
}

func (s *CollectorService) ListByWorkspace(ctx context.Context, workspaceID uuid.UUID) ([]models.Collector, error) {
	rows, err := s.db.Pool.Query(ctx, `
		SELECT id, workspace_id, name, source_type, allowed_domains, form_structure, created_at
		FROM collectors WHERE workspace_id = $1
		ORDER BY created_at
	`, workspaceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	collectors := []models.Collector{}
	for rows.Next() {
		c, err := scanCollector(rows)
		if err != nil {
			return nil, err
		}
		collectors = append(collectors, *c)
	}
	return collectors, rows.Err()
}

// Delete removes a collector from a workspace. Collected forms referencing it
// are left untouched.
func (s *CollectorService) Delete(ctx context.Context, workspaceID, collectorID uuid.UUID) error {
	result, err := s.db.Pool.Exec(ctx, `
		DELETE FROM collectors WHERE id = $1 AND workspace_id = $2
	`, collectorID, workspaceID)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return ErrCollectorNotFound
	}
	return nil
}
