package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/satari/satari-api/internal/database"
	"github.com/satari/satari-api/internal/models"
)

var (
	ErrWorkspaceNotFound  = errors.New("workspace not found")
	ErrWorkspaceQuota     = errors.New("maximum number of owned workspaces reached")
	ErrForbidden          = errors.New("insufficient workspace role")
	ErrAlreadyManager     = errors.New("user is already a manager of this workspace")
	ErrAlreadyTeamMember  = errors.New("user is already a team member of this workspace")
	ErrOnlyOwnerCanDemote = errors.New("only the owner can demote a manager to a team member")
)

// MaxOwnedWorkspaces caps how many workspaces a single user may own.
const MaxOwnedWorkspaces = 5

type WorkspaceService struct {
	db *database.DB
}

func NewWorkspaceService(db *database.DB) *WorkspaceService {
	return &WorkspaceService{db: db}
}

const workspaceColumns = `id, owner_id, name, description, created_at, updated_at`

func scanWorkspace(row pgx.Row) (*models.Workspace, error) {
	var ws models.Workspace
	err := row.Scan(&ws.ID, &ws.OwnerID, &ws.Name, &ws.Description, &ws.CreatedAt, &ws.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &ws, nil
}

// Create makes a new workspace owned by ownerID, who also gets a manager
// membership row up front.
func (s *WorkspaceService) Create(ctx context.Context, name, description string, ownerID uuid.UUID) (*models.Workspace, error) {
	var owned int
	err := s.db.Pool.QueryRow(ctx, `
		SELECT COUNT(*) FROM workspaces WHERE owner_id = $1
	`, ownerID).Scan(&owned)
	if err != nil {
		return nil, fmt.Errorf("failed to count owned workspaces: %w", err)
	}
	if owned >= MaxOwnedWorkspaces {
		return nil, ErrWorkspaceQuota
	}

	tx, err := s.db.Pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	ws, err := scanWorkspace(tx.QueryRow(ctx, `
		INSERT INTO workspaces (owner_id, name, description)
		VALUES ($1, $2, $3)
		RETURNING `+workspaceColumns+`
	`, ownerID, name, description))
	if err != nil {
		return nil, fmt.Errorf("failed to create workspace: %w", err)
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO workspace_members (workspace_id, user_id, role)
		VALUES ($1, $2, $3)
	`, ws.ID, ownerID, models.RoleManager)
	if err != nil {
		return nil, fmt.Errorf("failed to add owner as manager: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return ws, nil
}

func (s *WorkspaceService) GetByID(ctx context.Context, workspaceID uuid.UUID) (*models.Workspace, error) {
	ws, err := scanWorkspace(s.db.Pool.QueryRow(ctx, `
		SELECT `+workspaceColumns+` FROM workspaces WHERE id = $1
	`, workspaceID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrWorkspaceNotFound
		}
		return nil, err
	}
	return ws, nil
}

func rankOf(role string) int {
	if role == models.RoleManager {
		return models.RankManager
	}
	return models.RankTeamMember
}

// Authorize re-reads the workspace and the caller's membership, then checks
// the caller's rank against minRank. Every handler that touches a workspace
// goes through here; there is no cached role state.
func (s *WorkspaceService) Authorize(ctx context.Context, workspaceID, userID uuid.UUID, minRank int) (*models.Workspace, int, error) {
	ws, err := s.GetByID(ctx, workspaceID)
	if err != nil {
		return nil, 0, err
	}

	var rank int
	if ws.OwnerID == userID {
		rank = models.RankOwner
	} else {
		var role string
		err := s.db.Pool.QueryRow(ctx, `
			SELECT role FROM workspace_members WHERE workspace_id = $1 AND user_id = $2
		`, workspaceID, userID).Scan(&role)
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, 0, ErrForbidden
		}
		if err != nil {
			return nil, 0, err
		}
		rank = rankOf(role)
	}

	if rank < minRank {
		return nil, 0, ErrForbidden
	}
	return ws, rank, nil
}

// Members returns the manager and team-member ID sets of a workspace. Both
// slices are non-nil so they serialize as empty arrays.
func (s *WorkspaceService) Members(ctx context.Context, workspaceID uuid.UUID) ([]uuid.UUID, []uuid.UUID, error) {
	rows, err := s.db.Pool.Query(ctx, `
		SELECT user_id, role FROM workspace_members
		WHERE workspace_id = $1
		ORDER BY created_at
	`, workspaceID)
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	managers := []uuid.UUID{}
	teamMembers := []uuid.UUID{}
	for rows.Next() {
		var userID uuid.UUID
		var role string
		if err := rows.Scan(&userID, &role); err != nil {
			return nil, nil, err
		}
		if role == models.RoleManager {
			managers = append(managers, userID)
		} else {
			teamMembers = append(teamMembers, userID)
		}
	}
	return managers, teamMembers, rows.Err()
}

// GetUserWorkspaces lists every workspace the user owns or belongs to,
// together with the user's rank and the full membership split.
func (s *WorkspaceService) GetUserWorkspaces(ctx context.Context, userID uuid.UUID) ([]models.WorkspaceDetail, error) {
	rows, err := s.db.Pool.Query(ctx, `
		SELECT `+workspaceColumns+` FROM workspaces w
		WHERE w.owner_id = $1
		   OR EXISTS (
			SELECT 1 FROM workspace_members wm
			WHERE wm.workspace_id = w.id AND wm.user_id = $1
		   )
		ORDER BY w.created_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var workspaces []models.Workspace
	for rows.Next() {
		ws, err := scanWorkspace(rows)
		if err != nil {
			return nil, err
		}
		workspaces = append(workspaces, *ws)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	details := make([]models.WorkspaceDetail, 0, len(workspaces))
	for _, ws := range workspaces {
		managers, teamMembers, err := s.Members(ctx, ws.ID)
		if err != nil {
			return nil, err
		}

		rank := models.RankTeamMember
		if ws.OwnerID == userID {
			rank = models.RankOwner
		} else {
			for _, m := range managers {
				if m == userID {
					rank = models.RankManager
					break
				}
			}
		}

		details = append(details, models.WorkspaceDetail{
			Workspace:   ws,
			Rank:        rank,
			Managers:    managers,
			TeamMembers: teamMembers,
		})
	}
	return details, nil
}

// AddManager promotes targetID to manager. A current team member is flipped
// in place; a current manager is a duplicate error. Permission (owner only)
// is checked by the caller through Authorize.
func (s *WorkspaceService) AddManager(ctx context.Context, workspaceID, targetID uuid.UUID) error {
	tx, err := s.db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var role string
	err = tx.QueryRow(ctx, `
		SELECT role FROM workspace_members WHERE workspace_id = $1 AND user_id = $2
	`, workspaceID, targetID).Scan(&role)
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		_, err = tx.Exec(ctx, `
			INSERT INTO workspace_members (workspace_id, user_id, role)
			VALUES ($1, $2, $3)
		`, workspaceID, targetID, models.RoleManager)
		if err != nil {
			return fmt.Errorf("failed to add manager: %w", err)
		}
	case err != nil:
		return err
	case role == models.RoleManager:
		return ErrAlreadyManager
	default:
		_, err = tx.Exec(ctx, `
			UPDATE workspace_members SET role = $1
			WHERE workspace_id = $2 AND user_id = $3
		`, models.RoleManager, workspaceID, targetID)
		if err != nil {
			return fmt.Errorf("failed to promote member: %w", err)
		}
	}

	return tx.Commit(ctx)
}

// AddTeamMember adds targetID as a team member. A current manager may only be
// demoted when the requester is the workspace owner; a current team member is
// a duplicate error.
func (s *WorkspaceService) AddTeamMember(ctx context.Context, workspaceID, targetID uuid.UUID, requesterIsOwner bool) error {
	tx, err := s.db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var role string
	err = tx.QueryRow(ctx, `
		SELECT role FROM workspace_members WHERE workspace_id = $1 AND user_id = $2
	`, workspaceID, targetID).Scan(&role)
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		_, err = tx.Exec(ctx, `
			INSERT INTO workspace_members (workspace_id, user_id, role)
			VALUES ($1, $2, $3)
		`, workspaceID, targetID, models.RoleTeamMember)
		if err != nil {
			return fmt.Errorf("failed to add team member: %w", err)
		}
	case err != nil:
		return err
	case role == models.RoleManager:
		if !requesterIsOwner {
			return ErrOnlyOwnerCanDemote
		}
		_, err = tx.Exec(ctx, `
			UPDATE workspace_members SET role = $1
			WHERE workspace_id = $2 AND user_id = $3
		`, models.RoleTeamMember, workspaceID, targetID)
		if err != nil {
			return fmt.Errorf("failed to demote manager: %w", err)
		}
	default:
		return ErrAlreadyTeamMember
	}

	return tx.Commit(ctx)
}
