package models

import (
	"time"

	"github.com/google/uuid"
)

type Workspace struct {
	ID          uuid.UUID `json:"workspaceId"`
	OwnerID     uuid.UUID `json:"ownerId"`
	Name        string    `json:"workspaceName"`
	Description string    `json:"workspaceDescription"`
	CreatedAt   time.Time `json:"-"`
	UpdatedAt   time.Time `json:"-"`
}

type WorkspaceMember struct {
	ID          uuid.UUID `json:"id"`
	WorkspaceID uuid.UUID `json:"workspace_id"`
	UserID      uuid.UUID `json:"user_id"`
	Role        string    `json:"role"`
	CreatedAt   time.Time `json:"created_at"`
}

// Membership roles stored in workspace_members. Ownership is not a stored
// role; it lives on the workspace row and outranks both.
const (
	RoleManager    = "manager"
	RoleTeamMember = "team_member"
)

// Role ranks for permission checks: team member < manager < owner.
const (
	RankTeamMember = 1
	RankManager    = 2
	RankOwner      = 3
)

// WorkspaceDetail is a workspace together with the caller's rank and the
// current membership split, as returned by fetch-user-workspaces.
type WorkspaceDetail struct {
	Workspace
	Rank        int         `json:"-"`
	Managers    []uuid.UUID `json:"managers"`
	TeamMembers []uuid.UUID `json:"teamMembers"`
}
