package dto

import "github.com/google/uuid"

type CreateWorkspaceRequest struct {
	Token                string `json:"token"`
	WorkspaceName        string `json:"workspaceName"`
	WorkspaceDescription string `json:"workspaceDescription"`
}

type FetchWorkspacesRequest struct {
	Token string `json:"token"`
}

type AddManagerRequest struct {
	Token           string    `json:"token"`
	WorkspaceID     uuid.UUID `json:"workspaceId"`
	ManagerUsername string    `json:"managerUsername"`
}

type AddTeamMemberRequest struct {
	Token              string    `json:"token"`
	WorkspaceID        uuid.UUID `json:"workspaceId"`
	TeamMemberUsername string    `json:"teamMemberUsername"`
}

type WorkspaceResponse struct {
	WorkspaceID          uuid.UUID   `json:"workspaceId"`
	OwnerID              uuid.UUID   `json:"ownerId"`
	Managers             []uuid.UUID `json:"managers"`
	TeamMembers          []uuid.UUID `json:"teamMembers"`
	WorkspaceName        string      `json:"workspaceName"`
	WorkspaceDescription string      `json:"workspaceDescription"`
}

type WorkspaceMessageResponse struct {
	Message   string            `json:"message"`
	Workspace WorkspaceResponse `json:"workspace"`
}

// WorkspaceSummary is one entry of the fetch-user-workspaces response; Role is
// "Owner", "Manager" or "Team Member" from the caller's point of view.
type WorkspaceSummary struct {
	WorkspaceID uuid.UUID   `json:"workspaceId"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Role        string      `json:"role"`
	Managers    []uuid.UUID `json:"managers"`
	TeamMembers []uuid.UUID `json:"teamMembers"`
	OwnerID     uuid.UUID   `json:"ownerId"`
}

type FetchWorkspacesResponse struct {
	Workspaces []WorkspaceSummary `json:"workspaces"`
}
