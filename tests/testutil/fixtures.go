package testutil

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/satari/satari-api/internal/database"
	"github.com/satari/satari-api/internal/models"
	"github.com/satari/satari-api/internal/services"
)

// Fixtures provides factory methods for creating test data
type Fixtures struct {
	db      *database.DB
	counter int
}

// NewFixtures creates a new fixtures factory
func NewFixtures(db *database.DB) *Fixtures {
	return &Fixtures{db: db}
}

// CreateUser creates a test user with default values
func (f *Fixtures) CreateUser(t *testing.T, opts ...UserOption) *models.User {
	t.Helper()
	f.counter++

	user := &models.User{
		Username:  fmt.Sprintf("user%d", f.counter),
		Email:     fmt.Sprintf("user%d@example.com", f.counter),
		IPAddress: "127.0.0.1",
	}
	password := "test-password"

	for _, opt := range opts {
		opt(user, &password)
	}

	hash, err := services.HashPassword(password)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	ctx := context.Background()
	err = f.db.Pool.QueryRow(ctx, `
		INSERT INTO users (username, email, password_hash, ip_address)
		VALUES ($1, $2, $3, $4)
		RETURNING id, token_version, created_at, updated_at
	`, user.Username, user.Email, hash, user.IPAddress).Scan(
		&user.ID, &user.TokenVersion, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("failed to create user: %v", err)
	}
	user.PasswordHash = hash

	return user
}

// UserOption configures a test user
type UserOption func(*models.User, *string)

// WithUsername sets the user's username
func WithUsername(username string) UserOption {
	return func(u *models.User, _ *string) {
		u.Username = username
	}
}

// WithEmail sets the user's email
func WithEmail(email string) UserOption {
	return func(u *models.User, _ *string) {
		u.Email = email
	}
}

// WithPassword sets the user's plaintext password
func WithPassword(password string) UserOption {
	return func(_ *models.User, p *string) {
		*p = password
	}
}

// CreateWorkspace creates a test workspace owned by the given user
func (f *Fixtures) CreateWorkspace(t *testing.T, owner *models.User, opts ...WorkspaceOption) *models.Workspace {
	t.Helper()
	f.counter++

	ws := &models.Workspace{
		OwnerID: owner.ID,
		Name:    fmt.Sprintf("Test Workspace %d", f.counter),
	}

	for _, opt := range opts {
		opt(ws)
	}

	ctx := context.Background()
	tx, err := f.db.Pool.Begin(ctx)
	if err != nil {
		t.Fatalf("failed to begin transaction: %v", err)
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx, `
		INSERT INTO workspaces (owner_id, name, description)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at
	`, ws.OwnerID, ws.Name, ws.Description).Scan(&ws.ID, &ws.CreatedAt, &ws.UpdatedAt)
	if err != nil {
		t.Fatalf("failed to create workspace: %v", err)
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO workspace_members (workspace_id, user_id, role)
		VALUES ($1, $2, $3)
	`, ws.ID, ws.OwnerID, models.RoleManager)
	if err != nil {
		t.Fatalf("failed to add owner as manager: %v", err)
	}

	if err := tx.Commit(ctx); err != nil {
		t.Fatalf("failed to commit transaction: %v", err)
	}

	return ws
}

// WorkspaceOption configures a test workspace
type WorkspaceOption func(*models.Workspace)

// WithWorkspaceName sets the workspace name
func WithWorkspaceName(name string) WorkspaceOption {
	return func(w *models.Workspace) {
		w.Name = name
	}
}

// AddMember adds a user to a workspace with the given role
func (f *Fixtures) AddMember(t *testing.T, ws *models.Workspace, user *models.User, role string) {
	t.Helper()
	ctx := context.Background()

	_, err := f.db.Pool.Exec(ctx, `
		INSERT INTO workspace_members (workspace_id, user_id, role)
		VALUES ($1, $2, $3)
		ON CONFLICT (workspace_id, user_id) DO UPDATE SET role = $3
	`, ws.ID, user.ID, role)
	if err != nil {
		t.Fatalf("failed to add workspace member: %v", err)
	}
}

// CreateCollector creates a test collector in a workspace
func (f *Fixtures) CreateCollector(t *testing.T, ws *models.Workspace, opts ...CollectorOption) *models.Collector {
	t.Helper()
	f.counter++

	col := &models.Collector{
		WorkspaceID:    ws.ID,
		Name:           fmt.Sprintf("Test Collector %d", f.counter),
		SourceType:     models.SourceTypeWebsite,
		AllowedDomains: []string{"example.com"},
		FormStructure: models.FormStructure{
			Fields: map[string]models.FormField{
				"email": {Name: "email", Type: models.FieldTypeString, Required: true},
			},
		},
	}

	for _, opt := range opts {
		opt(col)
	}

	encoded, err := json.Marshal(col.FormStructure)
	if err != nil {
		t.Fatalf("failed to encode form structure: %v", err)
	}

	ctx := context.Background()
	err = f.db.Pool.QueryRow(ctx, `
		INSERT INTO collectors (workspace_id, name, source_type, allowed_domains, form_structure)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`, col.WorkspaceID, col.Name, col.SourceType, col.AllowedDomains, encoded).Scan(&col.ID, &col.CreatedAt)
	if err != nil {
		t.Fatalf("failed to create collector: %v", err)
	}

	return col
}

// CollectorOption configures a test collector
type CollectorOption func(*models.Collector)

// WithCollectorName sets the collector name
func WithCollectorName(name string) CollectorOption {
	return func(c *models.Collector) {
		c.Name = name
	}
}

// WithAllowedDomains sets the collector's allowed domains
func WithAllowedDomains(domains ...string) CollectorOption {
	return func(c *models.Collector) {
		c.AllowedDomains = domains
	}
}

// WithFormStructure sets the collector's declared schema
func WithFormStructure(structure models.FormStructure) CollectorOption {
	return func(c *models.Collector) {
		c.FormStructure = structure
	}
}
