package handlers

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/amirphl/vendor-campaigns/app/dto"
	"github.com/amirphl/vendor-campaigns/app/middleware"
	"github.com/amirphl/vendor-campaigns/app/services"
	businessflow "github.com/amirphl/vendor-campaigns/business_flow"
	"github.com/gofiber/fiber/v3"
)

// Flash messages of the admin campaign form
const (
	flashFieldsRequired  = "همهٔ فیلدهای ضروری را پر کنید."
	flashInvalidDate     = "فرمت تاریخ نامعتبر است."
	flashInvalidRange    = "تاریخ شروع باید قبل از تاریخ پایان باشد."
	flashCampaignCreated = "کمپین ایجاد شد."
	flashCampaignDeleted = "کمپین حذف شد."
	flashActionFailed    = "خطا در انجام عملیات."
)

// CampaignAdminHandlerInterface defines the contract for campaign admin handlers
type CampaignAdminHandlerInterface interface {
	CreateCampaign(c fiber.Ctx) error
	DeleteCampaign(c fiber.Ctx) error
	Selections(c fiber.Ctx) error
	ExportCSV(c fiber.Ctx) error
	ExportXLSX(c fiber.Ctx) error
}

// CampaignAdminHandler handles campaign management and selection reports
type CampaignAdminHandler struct {
	baseHandler
	campaignFlow businessflow.CampaignFlow
	adminFlow    businessflow.AdminCampaignFlow
	sessions     SessionStore
}

// NewCampaignAdminHandler creates a new campaign admin handler
func NewCampaignAdminHandler(campaignFlow businessflow.CampaignFlow, adminFlow businessflow.AdminCampaignFlow, sessions SessionStore) *CampaignAdminHandler {
	return &CampaignAdminHandler{
		baseHandler:  newBaseHandler(),
		campaignFlow: campaignFlow,
		adminFlow:    adminFlow,
		sessions:     sessions,
	}
}

// CreateCampaign handles the admin create form
// @Summary Create Campaign
// @Description Creates a campaign from Jalali dates and redirects to the index with a flash message
// @Tags Admin Campaigns
// @Accept x-www-form-urlencoded
// @Param title formData string true "Title"
// @Param description formData string false "Description"
// @Param start_date formData string true "Start date (Jalali YYYY/MM/DD)"
// @Param end_date formData string true "End date (Jalali YYYY/MM/DD)"
// @Success 302 "Redirect to the index page"
// @Failure 401 {object} dto.APIResponse "Login required"
// @Failure 403 {object} dto.APIResponse "Administrator access required"
// @Router /admin/campaigns/create [post]
func (h *CampaignAdminHandler) CreateCampaign(c fiber.Ctx) error {
	var form dto.CreateCampaignForm
	if err := c.Bind().Form(&form); err != nil {
		return h.redirectWithFlash(c, services.FlashDanger, flashFieldsRequired)
	}
	if errs := h.validate(&form); len(errs) > 0 {
		return h.redirectWithFlash(c, services.FlashDanger, strings.Join(errs, "; "))
	}

	ctx, cancel := h.createRequestContext(c, "/admin/campaigns/create")
	defer cancel()

	if _, err := h.campaignFlow.CreateCampaign(ctx, &form, clientMetadata(c)); err != nil {
		switch {
		case businessflow.IsTitleRequired(err):
			return h.redirectWithFlash(c, services.FlashDanger, flashFieldsRequired)
		case businessflow.IsInvalidDateFormat(err):
			return h.redirectWithFlash(c, services.FlashDanger, flashInvalidDate)
		case businessflow.IsInvalidDateRange(err):
			return h.redirectWithFlash(c, services.FlashDanger, flashInvalidRange)
		}
		log.Println("Create campaign failed", err)
		return h.redirectWithFlash(c, services.FlashDanger, flashActionFailed)
	}
	return h.redirectWithFlash(c, services.FlashSuccess, flashCampaignCreated)
}

// DeleteCampaign removes a campaign together with its selections
// @Summary Delete Campaign
// @Tags Admin Campaigns
// @Param id path int true "Campaign ID"
// @Success 302 "Redirect to the index page"
// @Failure 401 {object} dto.APIResponse "Login required"
// @Failure 403 {object} dto.APIResponse "Administrator access required"
// @Failure 404 {object} dto.APIResponse "Campaign not found"
// @Router /admin/campaigns/{id}/delete [post]
func (h *CampaignAdminHandler) DeleteCampaign(c fiber.Ctx) error {
	id, ok := campaignIDParam(c)
	if !ok {
		return h.ErrorResponse(c, fiber.StatusNotFound, "Campaign not found", "CAMPAIGN_NOT_FOUND", nil)
	}

	ctx, cancel := h.createRequestContext(c, "/admin/campaigns/:id/delete")
	defer cancel()

	if err := h.campaignFlow.DeleteCampaign(ctx, id, clientMetadata(c)); err != nil {
		if businessflow.IsCampaignNotFound(err) {
			return h.ErrorResponse(c, fiber.StatusNotFound, "Campaign not found", "CAMPAIGN_NOT_FOUND", nil)
		}
		log.Println("Delete campaign failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to delete campaign", "CAMPAIGN_DELETION_FAILED", nil)
	}
	return h.redirectWithFlash(c, services.FlashSuccess, flashCampaignDeleted)
}

// Selections returns a campaign's selections grouped by vendor
// @Summary Campaign Selections
// @Tags Admin Campaigns
// @Produce json
// @Param id path int true "Campaign ID"
// @Success 200 {object} dto.AdminSelectionsResponse "Selections grouped by vendor id"
// @Failure 401 {object} dto.APIResponse "Login required"
// @Failure 403 {object} dto.APIResponse "Administrator access required"
// @Router /api/admin/campaigns/{id}/selections [get]
func (h *CampaignAdminHandler) Selections(c fiber.Ctx) error {
	id, ok := campaignIDParam(c)
	if !ok {
		return c.Status(fiber.StatusOK).JSON(dto.AdminSelectionsResponse{})
	}

	ctx, cancel := h.createRequestContext(c, "/api/admin/campaigns/:id/selections")
	defer cancel()

	res, err := h.adminFlow.SelectionsForCampaign(ctx, id)
	if err != nil {
		log.Println("Admin selections failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to load selections", "LOAD_SELECTIONS_FAILED", nil)
	}
	return c.Status(fiber.StatusOK).JSON(res)
}

// ExportCSV downloads a campaign's selections as CSV
// @Summary Export Selections CSV
// @Tags Admin Campaigns
// @Produce text/csv
// @Param id path int true "Campaign ID"
// @Success 200 {file} file "CSV attachment"
// @Failure 404 {object} dto.APIResponse "Campaign not found or no selections"
// @Router /api/admin/campaigns/{id}/export-csv [get]
func (h *CampaignAdminHandler) ExportCSV(c fiber.Ctx) error {
	return h.export(c, "/api/admin/campaigns/:id/export-csv", h.adminFlow.ExportCSV)
}

// ExportXLSX downloads a campaign's selections as an Excel workbook
// @Summary Export Selections XLSX
// @Tags Admin Campaigns
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param id path int true "Campaign ID"
// @Success 200 {file} file "XLSX attachment"
// @Failure 404 {object} dto.APIResponse "Campaign not found or no selections"
// @Router /api/admin/campaigns/{id}/export-xlsx [get]
func (h *CampaignAdminHandler) ExportXLSX(c fiber.Ctx) error {
	return h.export(c, "/api/admin/campaigns/:id/export-xlsx", h.adminFlow.ExportXLSX)
}

func (h *CampaignAdminHandler) export(c fiber.Ctx, endpoint string, render func(context.Context, uint) (*dto.ExportFile, error)) error {
	id, ok := campaignIDParam(c)
	if !ok {
		return h.ErrorResponse(c, fiber.StatusNotFound, "Campaign not found", "CAMPAIGN_NOT_FOUND", nil)
	}

	ctx, cancel := h.createRequestContext(c, endpoint)
	defer cancel()

	file, err := render(ctx, id)
	if err != nil {
		switch {
		case businessflow.IsCampaignNotFound(err):
			return h.ErrorResponse(c, fiber.StatusNotFound, "Campaign not found", "CAMPAIGN_NOT_FOUND", nil)
		case businessflow.IsNoSelections(err):
			return h.ErrorResponse(c, fiber.StatusNotFound, "No selections for this campaign", "NO_SELECTIONS", nil)
		}
		log.Println("Export failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Export failed", "EXPORT_FAILED", nil)
	}

	c.Set(fiber.HeaderContentType, file.ContentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%s", file.Filename))
	return c.Status(fiber.StatusOK).Send(file.Data)
}

// redirectWithFlash queues a flash message and sends the admin back to the index
func (h *CampaignAdminHandler) redirectWithFlash(c fiber.Ctx, category, message string) error {
	session := middleware.SessionFrom(c)
	session.AddFlash(category, message)
	if err := h.sessions.Save(c, session); err != nil {
		log.Println("Session save failed", err)
	}
	return c.Redirect().Status(fiber.StatusFound).To("/")
}
