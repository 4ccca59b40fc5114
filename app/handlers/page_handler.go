package handlers

import (
	"log"

	"github.com/amirphl/vendor-campaigns/app/middleware"
	"github.com/amirphl/vendor-campaigns/app/views"
	businessflow "github.com/amirphl/vendor-campaigns/business_flow"
	"github.com/amirphl/vendor-campaigns/utils"
	"github.com/gofiber/fiber/v3"
)

const pageTitle = "کمپین‌های باسلام"

// PageHandlerInterface defines the contract for the server-rendered pages
type PageHandlerInterface interface {
	Index(c fiber.Ctx) error
	CampaignDetail(c fiber.Ctx) error
	Dashboard(c fiber.Ctx) error
}

// PageHandler renders the HTML pages
type PageHandler struct {
	baseHandler
	campaignFlow businessflow.CampaignFlow
	sessions     SessionStore
}

// NewPageHandler creates a new page handler
func NewPageHandler(campaignFlow businessflow.CampaignFlow, sessions SessionStore) *PageHandler {
	return &PageHandler{
		baseHandler:  newBaseHandler(),
		campaignFlow: campaignFlow,
		sessions:     sessions,
	}
}

// Index renders the campaign list, with the create form for admins
func (h *PageHandler) Index(c fiber.Ctx) error {
	ctx, cancel := h.createRequestContext(c, "/")
	defer cancel()

	campaigns, err := h.campaignFlow.ListCampaignViews(ctx)
	if err != nil {
		log.Println("List campaign views failed", err)
		return fiber.ErrInternalServerError
	}

	data := h.pageData(c)
	data.Campaigns = campaigns
	return c.Render(views.PageIndex, data)
}

// CampaignDetail renders one campaign
func (h *PageHandler) CampaignDetail(c fiber.Ctx) error {
	id, ok := campaignIDParam(c)
	if !ok {
		return h.notFound(c)
	}

	ctx, cancel := h.createRequestContext(c, "/campaign/:id")
	defer cancel()

	campaign, err := h.campaignFlow.GetCampaignView(ctx, id)
	if err != nil {
		if businessflow.IsCampaignNotFound(err) {
			return h.notFound(c)
		}
		log.Println("Get campaign view failed", err)
		return fiber.ErrInternalServerError
	}

	data := h.pageData(c)
	data.Title = campaign.Title
	data.Campaign = campaign
	return c.Render(views.PageDetail, data)
}

// Dashboard is kept for old links
func (h *PageHandler) Dashboard(c fiber.Ctx) error {
	return c.Redirect().Status(fiber.StatusFound).To("/")
}

func (h *PageHandler) notFound(c fiber.Ctx) error {
	c.Status(fiber.StatusNotFound)
	return c.Render(views.PageNotFound, h.pageData(c))
}

// pageData builds the common binding and consumes the pending flash messages
func (h *PageHandler) pageData(c fiber.Ctx) *views.PageData {
	session := middleware.SessionFrom(c)
	data := &views.PageData{
		Title:       pageTitle,
		LoggedIn:    session.IsLoggedIn(),
		IsAdmin:     session.IsLoggedIn() && session.IsAdmin,
		DisplayName: session.DisplayName(),
		VendorID:    session.VendorID,
		TodayJalali: utils.ToDisplay(utils.LocalToday()),
	}
	if flashes := session.PopFlashes(); len(flashes) > 0 {
		data.Flashes = flashes
		if err := h.sessions.Save(c, session); err != nil {
			log.Println("Session save failed", err)
		}
	}
	return data
}
