package handlers

import (
	"context"
	"errors"
	"net/url"
	"slices"

	"github.com/google/uuid"
	"github.com/m1z23r/drift/pkg/drift"
	"github.com/rs/zerolog/log"
	"github.com/satari/satari-api/internal/models"
	"github.com/satari/satari-api/internal/services"
	"github.com/satari/satari-api/internal/validation"
	"github.com/satari/satari-api/pkg/dto"
)

type CollectHandler struct {
	collectorService CollectorServiceInterface
	formService      FormServiceInterface
	workspaceService WorkspaceServiceInterface
	jwtService       JWTServiceInterface
}

func NewCollectHandler(collectorService CollectorServiceInterface, formService FormServiceInterface, workspaceService WorkspaceServiceInterface, jwtService JWTServiceInterface) *CollectHandler {
	return &CollectHandler{
		collectorService: collectorService,
		formService:      formService,
		workspaceService: workspaceService,
		jwtService:       jwtService,
	}
}

// originDomain extracts the hostname from an Origin header value.
func originDomain(origin string) (string, bool) {
	if origin == "" {
		return "", false
	}
	u, err := url.Parse(origin)
	if err != nil || u.Hostname() == "" {
		return "", false
	}
	return u.Hostname(), true
}

// CollectFormData ingests a website submission. The request carries no token;
// the Origin header is checked against the collector's allowed domains instead.
func (h *CollectHandler) CollectFormData(c *drift.Context) {
	var req dto.CollectFormRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("Invalid request body")
		return
	}
	if req.CollectorID == uuid.Nil || req.FormData == nil {
		c.BadRequest("collectorId and formData are required")
		return
	}

	ctx := context.Background()
	collector, err := h.collectorService.GetByID(ctx, req.CollectorID)
	if err != nil {
		if errors.Is(err, services.ErrCollectorNotFound) {
			c.NotFound("Collector not found")
			return
		}
		log.Error().Err(err).Msg("failed to fetch collector")
		c.InternalServerError("Failed to store the form")
		return
	}

	domain, ok := originDomain(c.GetHeader("Origin"))
	if !ok || !slices.Contains(collector.AllowedDomains, domain) {
		c.Forbidden("Source domain not allowed")
		return
	}

	formData, valid := validation.ValidateFormData(req.FormData, collector.FormStructure.Fields)
	if !valid {
		c.BadRequest("Invalid form data")
		return
	}

	if _, err := h.formService.Store(ctx, collector, formData, &domain); err != nil {
		log.Error().Err(err).Msg("failed to store form")
		c.InternalServerError("Failed to store the form")
		return
	}

	c.JSON(201, map[string]string{"message": "Form collected and stored successfully"})
}

// CollectFormThroughLink ingests a submission made through a shared link.
// There is no Origin to check, so the stored form has no source domain.
func (h *CollectHandler) CollectFormThroughLink(c *drift.Context) {
	var req dto.CollectFormRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("Invalid request body")
		return
	}
	if req.CollectorID == uuid.Nil || req.FormData == nil {
		c.BadRequest("collectorId and formData are required")
		return
	}

	ctx := context.Background()
	collector, err := h.collectorService.GetByID(ctx, req.CollectorID)
	if err != nil {
		if errors.Is(err, services.ErrCollectorNotFound) {
			c.NotFound("Collector/Form not found")
			return
		}
		log.Error().Err(err).Msg("failed to fetch collector")
		c.InternalServerError("Failed to store the form")
		return
	}

	formData, valid := validation.ValidateFormData(req.FormData, collector.FormStructure.Fields)
	if !valid {
		c.BadRequest("Invalid form data")
		return
	}

	if _, err := h.formService.Store(ctx, collector, formData, nil); err != nil {
		log.Error().Err(err).Msg("failed to store form")
		c.InternalServerError("Failed to store the form")
		return
	}

	c.JSON(201, map[string]string{"message": "Form collected and stored successfully"})
}

// FetchCollectedForms lists a collector's stored submissions for any member
// of its workspace.
func (h *CollectHandler) FetchCollectedForms(c *drift.Context) {
	var req dto.FetchCollectedFormsRequest
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
	if _, _, err := h.workspaceService.Authorize(ctx, req.WorkspaceID, userUID, models.RankTeamMember); err != nil {
		switch {
		case errors.Is(err, services.ErrWorkspaceNotFound):
			c.NotFound("Workspace not found")
		case errors.Is(err, services.ErrForbidden):
			c.Forbidden("User is not a member of this workspace")
		default:
			log.Error().Err(err).Msg("failed to authorize workspace access")
			c.InternalServerError("Failed to fetch collected forms")
		}
		return
	}

	collector, err := h.collectorService.GetByID(ctx, req.CollectorID)
	if err != nil || collector.WorkspaceID != req.WorkspaceID {
		if err != nil && !errors.Is(err, services.ErrCollectorNotFound) {
			log.Error().Err(err).Msg("failed to fetch collector")
			c.InternalServerError("Failed to fetch collected forms")
			return
		}
		c.NotFound("Collector not found")
		return
	}

	forms, err := h.formService.ListByCollector(ctx, req.CollectorID)
	if err != nil {
		log.Error().Err(err).Msg("failed to fetch collected forms")
		c.InternalServerError("Failed to fetch collected forms")
		return
	}

	c.JSON(200, dto.FetchCollectedFormsResponse{CollectedForms: forms})
}
