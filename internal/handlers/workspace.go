package handlers

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/m1z23r/drift/pkg/drift"
	"github.com/rs/zerolog/log"
	"github.com/satari/satari-api/internal/models"
	"github.com/satari/satari-api/internal/services"
	"github.com/satari/satari-api/pkg/dto"
)

type WorkspaceHandler struct {
	workspaceService WorkspaceServiceInterface
	userService      UserServiceInterface
	jwtService       JWTServiceInterface
}

func NewWorkspaceHandler(workspaceService WorkspaceServiceInterface, userService UserServiceInterface, jwtService JWTServiceInterface) *WorkspaceHandler {
	return &WorkspaceHandler{
		workspaceService: workspaceService,
		userService:      userService,
		jwtService:       jwtService,
	}
}

func roleName(rank int) string {
	switch rank {
	case models.RankOwner:
		return "Owner"
	case models.RankManager:
		return "Manager"
	default:
		return "Team Member"
	}
}

// workspaceResponse re-reads the workspace and its member lists so mutation
// responses always reflect the committed state.
func (h *WorkspaceHandler) workspaceResponse(ctx context.Context, workspaceID uuid.UUID) (dto.WorkspaceResponse, error) {
	workspace, err := h.workspaceService.GetByID(ctx, workspaceID)
	if err != nil {
		return dto.WorkspaceResponse{}, err
	}
	managers, teamMembers, err := h.workspaceService.Members(ctx, workspaceID)
	if err != nil {
		return dto.WorkspaceResponse{}, err
	}
	return dto.WorkspaceResponse{
		WorkspaceID:          workspace.ID,
		OwnerID:              workspace.OwnerID,
		Managers:             managers,
		TeamMembers:          teamMembers,
		WorkspaceName:        workspace.Name,
		WorkspaceDescription: workspace.Description,
	}, nil
}

func (h *WorkspaceHandler) Create(c *drift.Context) {
	var req dto.CreateWorkspaceRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("Invalid request body")
		return
	}
	userUID, ok := authenticate(c, h.jwtService, req.Token)
	if !ok {
		return
	}
	if req.WorkspaceName == "" {
		c.BadRequest("workspaceName is required")
		return
	}

	ctx := context.Background()
	workspace, err := h.workspaceService.Create(ctx, req.WorkspaceName, req.WorkspaceDescription, userUID)
	if err != nil {
		if errors.Is(err, services.ErrWorkspaceQuota) {
			c.Forbidden("You have reached the maximum limit of owned workspaces")
			return
		}
		log.Error().Err(err).Msg("failed to create workspace")
		c.InternalServerError("Workspace creation failed")
		return
	}

	c.JSON(201, dto.WorkspaceMessageResponse{
		Message: "Workspace creation successful",
		Workspace: dto.WorkspaceResponse{
			WorkspaceID:          workspace.ID,
			OwnerID:              workspace.OwnerID,
			Managers:             []uuid.UUID{workspace.OwnerID},
			TeamMembers:          []uuid.UUID{},
			WorkspaceName:        workspace.Name,
			WorkspaceDescription: workspace.Description,
		},
	})
}

func (h *WorkspaceHandler) Fetch(c *drift.Context) {
	var req dto.FetchWorkspacesRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("Invalid request body")
		return
	}
	userUID, ok := authenticate(c, h.jwtService, req.Token)
	if !ok {
		return
	}

	details, err := h.workspaceService.GetUserWorkspaces(context.Background(), userUID)
	if err != nil {
		log.Error().Err(err).Msg("failed to fetch workspaces")
		c.InternalServerError("Failed to fetch workspaces")
		return
	}

	workspaces := make([]dto.WorkspaceSummary, 0, len(details))
	for _, d := range details {
		workspaces = append(workspaces, dto.WorkspaceSummary{
			WorkspaceID: d.ID,
			Title:       d.Name,
			Description: d.Description,
			Role:        roleName(d.Rank),
			Managers:    d.Managers,
			TeamMembers: d.TeamMembers,
			OwnerID:     d.OwnerID,
		})
	}

	c.JSON(200, dto.FetchWorkspacesResponse{Workspaces: workspaces})
}

func (h *WorkspaceHandler) AddManager(c *drift.Context) {
	var req dto.AddManagerRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("Invalid request body")
		return
	}
	userUID, ok := authenticate(c, h.jwtService, req.Token)
	if !ok {
		return
	}
	if req.WorkspaceID == uuid.Nil || req.ManagerUsername == "" {
		c.BadRequest("workspaceId and managerUsername are required")
		return
	}

	ctx := context.Background()
	if _, _, err := h.workspaceService.Authorize(ctx, req.WorkspaceID, userUID, models.RankOwner); err != nil {
		switch {
		case errors.Is(err, services.ErrWorkspaceNotFound):
			c.NotFound("Workspace not found")
		case errors.Is(err, services.ErrForbidden):
			c.Forbidden("You are not authorized to add managers to this workspace")
		default:
			log.Error().Err(err).Msg("failed to authorize workspace access")
			c.InternalServerError("Failed to add manager")
		}
		return
	}

	target, err := h.userService.GetByUsername(ctx, req.ManagerUsername)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			c.NotFound("Manager user not found")
			return
		}
		log.Error().Err(err).Msg("failed to fetch user")
		c.InternalServerError("Failed to add manager")
		return
	}

	if err := h.workspaceService.AddManager(ctx, req.WorkspaceID, target.ID); err != nil {
		if errors.Is(err, services.ErrAlreadyManager) {
			c.BadRequest("The user is already a manager of this workspace")
			return
		}
		log.Error().Err(err).Msg("failed to add manager")
		c.InternalServerError("Failed to add manager")
		return
	}

	workspace, err := h.workspaceResponse(ctx, req.WorkspaceID)
	if err != nil {
		log.Error().Err(err).Msg("failed to reload workspace")
		c.InternalServerError("Failed to add manager")
		return
	}

	c.JSON(200, dto.WorkspaceMessageResponse{
		Message:   "Manager added successfully",
		Workspace: workspace,
	})
}

func (h *WorkspaceHandler) AddTeamMember(c *drift.Context) {
	var req dto.AddTeamMemberRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("Invalid request body")
		return
	}
	userUID, ok := authenticate(c, h.jwtService, req.Token)
	if !ok {
		return
	}
	if req.WorkspaceID == uuid.Nil || req.TeamMemberUsername == "" {
		c.BadRequest("workspaceId and teamMemberUsername are required")
		return
	}

	ctx := context.Background()
	_, rank, err := h.workspaceService.Authorize(ctx, req.WorkspaceID, userUID, models.RankManager)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrWorkspaceNotFound):
			c.NotFound("Workspace not found")
		case errors.Is(err, services.ErrForbidden):
			c.Forbidden("You are not authorized to add team members to this workspace")
		default:
			log.Error().Err(err).Msg("failed to authorize workspace access")
			c.InternalServerError("Failed to add team member")
		}
		return
	}

	target, err := h.userService.GetByUsername(ctx, req.TeamMemberUsername)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			c.NotFound("Team member user not found")
			return
		}
		log.Error().Err(err).Msg("failed to fetch user")
		c.InternalServerError("Failed to add team member")
		return
	}

	if err := h.workspaceService.AddTeamMember(ctx, req.WorkspaceID, target.ID, rank == models.RankOwner); err != nil {
		switch {
		case errors.Is(err, services.ErrOnlyOwnerCanDemote):
			c.Forbidden("Only the owner can demote a manager to a team member")
		case errors.Is(err, services.ErrAlreadyTeamMember):
			c.BadRequest("The user is already a team member of this workspace")
		default:
			log.Error().Err(err).Msg("failed to add team member")
			c.InternalServerError("Failed to add team member")
		}
		return
	}

	workspace, err := h.workspaceResponse(ctx, req.WorkspaceID)
	if err != nil {
		log.Error().Err(err).Msg("failed to reload workspace")
		c.InternalServerError("Failed to add team member")
		return
	}

	c.JSON(200, dto.WorkspaceMessageResponse{
		Message:   "Team member added successfully",
		Workspace: workspace,
	})
}
