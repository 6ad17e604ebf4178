package handlers

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/satari/satari-api/internal/models"
	"github.com/satari/satari-api/internal/services"
)

// UserServiceInterface defines the methods used by handlers from UserService
type UserServiceInterface interface {
	Register(ctx context.Context, username, email, passwordHash, ipAddress string) (*models.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	IncrementTokenVersion(ctx context.Context, id uuid.UUID) error
}

// TokenServiceInterface defines the methods used by handlers from TokenService
type TokenServiceInterface interface {
	Store(ctx context.Context, userID uuid.UUID, tokenHash string, expiresAt time.Time) error
}

// JWTServiceInterface defines the methods used by handlers from JWTService
type JWTServiceInterface interface {
	Generate(userUID uuid.UUID, tokenVersion int) (string, error)
	Validate(token string) (*services.Claims, error)
	Expiry() time.Duration
}

// WorkspaceServiceInterface defines the methods used by handlers from WorkspaceService
type WorkspaceServiceInterface interface {
	Create(ctx context.Context, name, description string, ownerID uuid.UUID) (*models.Workspace, error)
	GetByID(ctx context.Context, workspaceID uuid.UUID) (*models.Workspace, error)
	Authorize(ctx context.Context, workspaceID, userID uuid.UUID, minRank int) (*models.Workspace, int, error)
	Members(ctx context.Context, workspaceID uuid.UUID) ([]uuid.UUID, []uuid.UUID, error)
	GetUserWorkspaces(ctx context.Context, userID uuid.UUID) ([]models.WorkspaceDetail, error)
	AddManager(ctx context.Context, workspaceID, targetID uuid.UUID) error
	AddTeamMember(ctx context.Context, workspaceID, targetID uuid.UUID, requesterIsOwner bool) error
}

// CollectorServiceInterface defines the methods used by handlers from CollectorService
type CollectorServiceInterface interface {
	Create(ctx context.Context, workspaceID uuid.UUID, name, sourceType string, allowedDomains []string, structure models.FormStructure) (*models.Collector, error)
	GetByID(ctx context.Context, collectorID uuid.UUID) (*models.Collector, error)
	ListByWorkspace(ctx context.Context, workspaceID uuid.UUID) ([]models.Collector, error)
	Delete(ctx context.Context, workspaceID, collectorID uuid.UUID) error
}

// FormServiceInterface defines the methods used by handlers from FormService
type FormServiceInterface interface {
	Store(ctx context.Context, collector *models.Collector, formData map[string]any, sourceDomain *string) (*models.CollectedForm, error)
	ListByCollector(ctx context.Context, collectorID uuid.UUID) ([]models.CollectedForm, error)
}
