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

type CollectorHandler struct {
	collectorService CollectorServiceInterface
	workspaceService WorkspaceServiceInterface
	userService      UserServiceInterface
	jwtService       JWTServiceInterface
}

func NewCollectorHandler(collectorService CollectorServiceInterface, workspaceService WorkspaceServiceInterface, userService UserServiceInterface, jwtService JWTServiceInterface) *CollectorHandler {
	return &CollectorHandler{
		collectorService: collectorService,
		workspaceService: workspaceService,
		userService:      userService,
		jwtService:       jwtService,
	}
}

func validCollectorData(data dto.CollectorData) bool {
	if data.WorkspaceID == uuid.Nil || data.Name == "" || data.SourceType == "" {
		return false
	}
	if len(data.FormStructure.Fields) == 0 {
		return false
	}
	for _, field := range data.FormStructure.Fields {
		if field.Name == "" {
			return false
		}
		switch field.Type {
		case models.FieldTypeString, models.FieldTypeNumber, models.FieldTypeArray:
		default:
			return false
		}
	}
	return true
}

func (h *CollectorHandler) Create(c *drift.Context) {
	var req dto.CreateCollectorRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("Invalid request body")
		return
	}
	userUID, ok := authenticate(c, h.jwtService, req.Token)
	if !ok {
		return
	}
	if !validCollectorData(req.CollectorData) {
		c.BadRequest("Invalid collector data")
		return
	}

	ctx := context.Background()
	if _, err := h.userService.GetByID(ctx, userUID); err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			c.NotFound("User not found")
			return
		}
		log.Error().Err(err).Msg("failed to fetch user")
		c.InternalServerError("Collector creation failed")
		return
	}

	if _, _, err := h.workspaceService.Authorize(ctx, req.CollectorData.WorkspaceID, userUID, models.RankManager); err != nil {
		switch {
		case errors.Is(err, services.ErrWorkspaceNotFound):
			c.NotFound("Workspace not found")
		case errors.Is(err, services.ErrForbidden):
			c.Forbidden("User does not have permission to create collectors")
		default:
			log.Error().Err(err).Msg("failed to authorize workspace access")
			c.InternalServerError("Collector creation failed")
		}
		return
	}

	collector, err := h.collectorService.Create(ctx, req.CollectorData.WorkspaceID, req.CollectorData.Name, req.CollectorData.SourceType, req.CollectorData.AllowedDomains, req.CollectorData.FormStructure)
	if err != nil {
		if errors.Is(err, services.ErrCollectorQuota) {
			c.BadRequest("Maximum limit of 10 forms for this workspace reached")
			return
		}
		log.Error().Err(err).Msg("failed to create collector")
		c.InternalServerError("Collector creation failed")
		return
	}

	c.JSON(201, dto.CreateCollectorResponse{
		Message:     "Collector created successfully",
		CollectorID: collector.ID,
	})
}

func (h *CollectorHandler) Fetch(c *drift.Context) {
	var req dto.FetchCollectorsRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("Invalid request body")
		return
	}
	if req.Token == "" || req.WorkspaceID == uuid.Nil {
		c.BadRequest("Token or workspaceId is missing")
		return
	}
	userUID, ok := authenticate(c, h.jwtService, req.Token)
	if !ok {
		return
	}

	ctx := context.Background()
	if _, _, err := h.workspaceService.Authorize(ctx, req.WorkspaceID, userUID, models.RankTeamMember); err != nil {
		switch {
		case errors.Is(err, services.ErrWorkspaceNotFound):
			c.NotFound("Workspace not found")
		case errors.Is(err, services.ErrForbidden):
			c.Forbidden("User is not a member of this workspace")
		default:
			log.Error().Err(err).Msg("failed to authorize workspace access")
			c.InternalServerError("Failed to fetch collectors")
		}
		return
	}

	collectors, err := h.collectorService.ListByWorkspace(ctx, req.WorkspaceID)
	if err != nil {
		log.Error().Err(err).Msg("failed to fetch collectors")
		c.InternalServerError("Failed to fetch collectors")
		return
	}

	c.JSON(200, dto.FetchCollectorsResponse{Collectors: collectors})
}

func (h *CollectorHandler) Delete(c *drift.Context) {
	var req dto.DeleteCollectorRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("Invalid request body")
		return
	}
	if req.Token == "" || req.WorkspaceID == uuid.Nil || req.CollectorID == uuid.Nil {
		c.BadRequest("Token, workspaceId, or collectorId is missing")
		return
	}
	userUID, ok := authenticate(c, h.jwtService, req.Token)
	if !ok {
		return
	}

	ctx := context.Background()
	if _, _, err := h.workspaceService.Authorize(ctx, req.WorkspaceID, userUID, models.RankManager); err != nil {
		switch {
		case errors.Is(err, services.ErrWorkspaceNotFound):
			c.NotFound("Workspace not found")
		case errors.Is(err, services.ErrForbidden):
			c.Forbidden("User is not authorized to delete collectors in this workspace")
		default:
			log.Error().Err(err).Msg("failed to authorize workspace access")
			c.InternalServerError("Failed to delete collector")
		}
		return
	}

	if err := h.collectorService.Delete(ctx, req.WorkspaceID, req.CollectorID); err != nil {
		if errors.Is(err, services.ErrCollectorNotFound) {
			c.NotFound("Collector not found")
			return
		}
		log.Error().Err(err).Msg("failed to delete collector")
		c.InternalServerError("Failed to delete collector")
		return
	}

	c.JSON(200, map[string]string{"message": "Collector deleted successfully"})
}
