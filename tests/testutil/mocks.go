package testutil

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/satari/satari-api/internal/models"
	"github.com/satari/satari-api/internal/services"
	"github.com/stretchr/testify/mock"
)

// MockUserService mocks the UserService
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) Register(ctx context.Context, username, email, passwordHash, ipAddress string) (*models.User, error) {
	args := m.Called(ctx, username, email, passwordHash, ipAddress)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserService) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserService) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserService) IncrementTokenVersion(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockTokenService mocks the TokenService
type MockTokenService struct {
	mock.Mock
}

func (m *MockTokenService) Store(ctx context.Context, userID uuid.UUID, tokenHash string, expiresAt time.Time) error {
	args := m.Called(ctx, userID, tokenHash, expiresAt)
	return args.Error(0)
}

// MockWorkspaceService mocks the WorkspaceService
type MockWorkspaceService struct {
	mock.Mock
}

func (m *MockWorkspaceService) Create(ctx context.Context, name, description string, ownerID uuid.UUID) (*models.Workspace, error) {
	args := m.Called(ctx, name, description, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Workspace), args.Error(1)
}

func (m *MockWorkspaceService) GetByID(ctx context.Context, workspaceID uuid.UUID) (*models.Workspace, error) {
	args := m.Called(ctx, workspaceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Workspace), args.Error(1)
}

func (m *MockWorkspaceService) Authorize(ctx context.Context, workspaceID, userID uuid.UUID, minRank int) (*models.Workspace, int, error) {
	args := m.Called(ctx, workspaceID, userID, minRank)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).(*models.Workspace), args.Int(1), args.Error(2)
}

func (m *MockWorkspaceService) Members(ctx context.Context, workspaceID uuid.UUID) ([]uuid.UUID, []uuid.UUID, error) {
	args := m.Called(ctx, workspaceID)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).([]uuid.UUID), args.Get(1).([]uuid.UUID), args.Error(2)
}

func (m *MockWorkspaceService) GetUserWorkspaces(ctx context.Context, userID uuid.UUID) ([]models.WorkspaceDetail, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.WorkspaceDetail), args.Error(1)
}

func (m *MockWorkspaceService) AddManager(ctx context.Context, workspaceID, targetID uuid.UUID) error {
	args := m.Called(ctx, workspaceID, targetID)
	return args.Error(0)
}

func (m *MockWorkspaceService) AddTeamMember(ctx context.Context, workspaceID, targetID uuid.UUID, requesterIsOwner bool) error {
	args := m.Called(ctx, workspaceID, targetID, requesterIsOwner)
	return args.Error(0)
}

// MockCollectorService mocks the CollectorService
type MockCollectorService struct {
	mock.Mock
}

func (m *MockCollectorService) Create(ctx context.Context, workspaceID uuid.UUID, name, sourceType string, allowedDomains []string, structure models.FormStructure) (*models.Collector, error) {
	args := m.Called(ctx, workspaceID, name, sourceType, allowedDomains, structure)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Collector), args.Error(1)
}

func (m *MockCollectorService) GetByID(ctx context.Context, collectorID uuid.UUID) (*models.Collector, error) {
	args := m.Called(ctx, collectorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Collector), args.Error(1)
}

func (m *MockCollectorService) ListByWorkspace(ctx context.Context, workspaceID uuid.UUID) ([]models.Collector, error) {
	args := m.Called(ctx, workspaceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Collector), args.Error(1)
}

func (m *MockCollectorService) Delete(ctx context.Context, workspaceID, collectorID uuid.UUID) error {
	args := m.Called(ctx, workspaceID, collectorID)
	return args.Error(0)
}

// MockFormService mocks the FormService
type MockFormService struct {
	mock.Mock
}

func (m *MockFormService) Store(ctx context.Context, collector *models.Collector, formData map[string]any, sourceDomain *string) (*models.CollectedForm, error) {
	args := m.Called(ctx, collector, formData, sourceDomain)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.CollectedForm), args.Error(1)
}

func (m *MockFormService) ListByCollector(ctx context.Context, collectorID uuid.UUID) ([]models.CollectedForm, error) {
	args := m.Called(ctx, collectorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.CollectedForm), args.Error(1)
}

// MockJWTService mocks the JWTService
type MockJWTService struct {
	mock.Mock
}

func (m *MockJWTService) Generate(userUID uuid.UUID, tokenVersion int) (string, error) {
	args := m.Called(userUID, tokenVersion)
	return args.String(0), args.Error(1)
}

func (m *MockJWTService) Validate(token string) (*services.Claims, error) {
	args := m.Called(token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.Claims), args.Error(1)
}

func (m *MockJWTService) Expiry() time.Duration {
	args := m.Called()
	return args.Get(0).(time.Duration)
}
