package services

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/satari/satari-api/internal/database"
	"github.com/satari/satari-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupFormService(t *testing.T) (*FormService, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(func() { mock.Close() })

	db := &database.DB{Pool: mock}
	return NewFormService(db), mock
}

func TestFormService_Store(t *testing.T) {
	svc, mock := setupFormService(t)
	ctx := context.Background()
	formID := uuid.New()
	collector := &models.Collector{
		ID:          uuid.New(),
		WorkspaceID: uuid.New(),
		Name:        "Contact Form",
		SourceType:  models.SourceTypeWebsite,
	}
	formData := map[string]any{"email": "alice@example.com"}
	domain := "example.com"

	encoded, err := json.Marshal(formData)
	require.NoError(t, err)

	rows := pgxmock.NewRows([]string{"id", "collected_at"}).AddRow(formID, time.Now())
	mock.ExpectQuery(`INSERT INTO collected_forms`).
		WithArgs(collector.ID, collector.WorkspaceID, collector.Name, collector.SourceType, &domain, encoded).
		WillReturnRows(rows)

	form, err := svc.Store(ctx, collector, formData, &domain)

	require.NoError(t, err)
	assert.Equal(t, formID, form.ID)
	assert.Equal(t, collector.ID, form.CollectorID)
	assert.Equal(t, collector.WorkspaceID, form.WorkspaceID)
	assert.Equal(t, collector.Name, form.Name)
	require.NotNil(t, form.SourceDomain)
	assert.Equal(t, domain, *form.SourceDomain)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFormService_Store_NoSourceDomain(t *testing.T) {
	svc, mock := setupFormService(t)
	ctx := context.Background()
	collector := &models.Collector{
		ID:          uuid.New(),
		WorkspaceID: uuid.New(),
		Name:        "Link Form",
		SourceType:  models.SourceTypeWebsite,
	}
	formData := map[string]any{"email": "bob@example.com"}

	encoded, err := json.Marshal(formData)
	require.NoError(t, err)

	rows := pgxmock.NewRows([]string{"id", "collected_at"}).AddRow(uuid.New(), time.Now())
	mock.ExpectQuery(`INSERT INTO collected_forms`).
		WithArgs(collector.ID, collector.WorkspaceID, collector.Name, collector.SourceType, (*string)(nil), encoded).
		WillReturnRows(rows)

	form, err := svc.Store(ctx, collector, formData, nil)

	require.NoError(t, err)
	assert.Nil(t, form.SourceDomain)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFormService_ListByCollector(t *testing.T) {
	svc, mock := setupFormService(t)
	ctx := context.Background()
	collectorID := uuid.New()
	workspaceID := uuid.New()
	domain := "example.com"
	now := time.Now()

	data, err := json.Marshal(map[string]any{"email": "alice@example.com"})
	require.NoError(t, err)

	rows := pgxmock.NewRows([]string{"id", "collector_id", "workspace_id", "name", "source_type", "source_domain", "form_data", "collected_at"}).
		AddRow(uuid.New(), collectorID, workspaceID, "Contact Form", models.SourceTypeWebsite, &domain, data, now).
		AddRow(uuid.New(), collectorID, workspaceID, "Contact Form", models.SourceTypeWebsite, (*string)(nil), data, now)
	mock.ExpectQuery(`SELECT .+ FROM collected_forms WHERE collector_id`).
		WithArgs(collectorID).
		WillReturnRows(rows)

	forms, err := svc.ListByCollector(ctx, collectorID)

	require.NoError(t, err)
	require.Len(t, forms, 2)
	assert.Equal(t, "alice@example.com", forms[0].FormData["email"])
	require.NotNil(t, forms[0].SourceDomain)
	assert.Equal(t, domain, *forms[0].SourceDomain)
	assert.Nil(t, forms[1].SourceDomain)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFormService_ListByCollector_Empty(t *testing.T) {
	svc, mock := setupFormService(t)
	ctx := context.Background()
	collectorID := uuid.New()

	rows := pgxmock.NewRows([]string{"id", "collector_id", "workspace_id", "name", "source_type", "source_domain", "form_data", "collected_at"})
	mock.ExpectQuery(`SELECT .+ FROM collected_forms WHERE collector_id`).
		WithArgs(collectorID).
		WillReturnRows(rows)

	forms, err := svc.ListByCollector(ctx, collectorID)

	require.NoError(t, err)
	assert.NotNil(t, forms)
	assert.Empty(t, forms)
	assert.NoError(t, mock.ExpectationsWereMet())
}
