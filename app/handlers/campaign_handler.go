package handlers

import (
	"log"

	businessflow "github.com/amirphl/vendor-campaigns/business_flow"
	"github.com/gofiber/fiber/v3"
)

// CampaignHandlerInterface defines the contract for public campaign handlers
type CampaignHandlerInterface interface {
	ListCampaigns(c fiber.Ctx) error
}

// CampaignHandler handles public campaign listing
type CampaignHandler struct {
	baseHandler
	campaignFlow businessflow.CampaignFlow
}

// NewCampaignHandler creates a new campaign handler
func NewCampaignHandler(campaignFlow businessflow.CampaignFlow) *CampaignHandler {
	return &CampaignHandler{
		baseHandler:  newBaseHandler(),
		campaignFlow: campaignFlow,
	}
}

// ListCampaigns returns every campaign, newest start date first
// @Summary List Campaigns
// @Description List all campaigns ordered by start date descending
// @Tags Campaigns
// @Produce json
// @Success 200 {array} dto.CampaignResponse "Campaigns"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/campaigns [get]
func (h *CampaignHandler) ListCampaigns(c fiber.Ctx) error {
	ctx, cancel := h.createRequestContext(c, "/api/campaigns")
	defer cancel()

	campaigns, err := h.campaignFlow.ListCampaigns(ctx)
	if err != nil {
		log.Println("List campaigns failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to list campaigns", "LIST_CAMPAIGNS_FAILED", nil)
	}
	return c.Status(fiber.StatusOK).JSON(campaigns)
}
