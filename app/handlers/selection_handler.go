package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"log"

	"github.com/amirphl/vendor-campaigns/app/dto"
	"github.com/amirphl/vendor-campaigns/app/middleware"
	businessflow "github.com/amirphl/vendor-campaigns/business_flow"
	"github.com/gofiber/fiber/v3"
)

const minDiscountMessage = "تخفیف کمتر از ۳٪ مجاز نیست."

// SelectionHandlerInterface defines the contract for vendor selection handlers
type SelectionHandlerInterface interface {
	MySelections(c fiber.Ctx) error
	SelectProducts(c fiber.Ctx) error
}

// SelectionHandler handles a vendor's product selections for a campaign
type SelectionHandler struct {
	baseHandler
	selectionFlow businessflow.SelectionFlow
}

// NewSelectionHandler creates a new selection handler
func NewSelectionHandler(selectionFlow businessflow.SelectionFlow) *SelectionHandler {
	return &SelectionHandler{
		baseHandler:   newBaseHandler(),
		selectionFlow: selectionFlow,
	}
}

// MySelections lists the current vendor's selections for a campaign
// @Summary My Selections
// @Tags Selections
// @Produce json
// @Param id path int true "Campaign ID"
// @Success 200 {array} dto.SelectionResponse "Stored selections"
// @Failure 401 {object} dto.APIResponse "Login required"
// @Failure 404 {object} dto.APIResponse "Campaign not found"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/campaigns/{id}/my-selections [get]
func (h *SelectionHandler) MySelections(c fiber.Ctx) error {
	id, ok := campaignIDParam(c)
	if !ok {
		return h.ErrorResponse(c, fiber.StatusNotFound, "Campaign not found", "CAMPAIGN_NOT_FOUND", nil)
	}

	ctx, cancel := h.createRequestContext(c, "/api/campaigns/:id/my-selections")
	defer cancel()

	items, err := h.selectionFlow.MySelections(ctx, id, middleware.SessionFrom(c).VendorID)
	if err != nil {
		log.Println("My selections failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to load selections", "LOAD_SELECTIONS_FAILED", nil)
	}
	return c.Status(fiber.StatusOK).JSON(items)
}

// SelectProducts replaces the current vendor's selections for a campaign
// @Summary Select Products
// @Description Atomically replaces the vendor's selections. Every discount must be at least 3 percent.
// @Tags Selections
// @Accept json
// @Produce json
// @Param id path int true "Campaign ID"
// @Param request body dto.SelectProductsRequest true "Selections"
// @Success 200 {object} dto.SelectProductsResponse "Selections stored"
// @Failure 400 {object} dto.MinDiscountErrorResponse "Discount under the minimum"
// @Failure 401 {object} dto.APIResponse "Login required"
// @Failure 404 {object} dto.APIResponse "Campaign not found"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/campaigns/{id}/select-products [post]
func (h *SelectionHandler) SelectProducts(c fiber.Ctx) error {
	id, ok := campaignIDParam(c)
	if !ok {
		return h.ErrorResponse(c, fiber.StatusNotFound, "Campaign not found", "CAMPAIGN_NOT_FOUND", nil)
	}

	req, err := decodeSelectProducts(c.Body())
	if err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}

	ctx, cancel := h.createRequestContext(c, "/api/campaigns/:id/select-products")
	defer cancel()

	metadata := clientMetadata(c)
	res, err := h.selectionFlow.ReplaceSelections(ctx, id, metadata.VendorID, req.Items, metadata)
	if err != nil {
		var minErr *businessflow.MinDiscountError
		switch {
		case errors.As(err, &minErr):
			return c.Status(fiber.StatusBadRequest).JSON(dto.MinDiscountErrorResponse{
				OK:      false,
				Error:   "MIN_DISCOUNT",
				Message: minDiscountMessage,
				Items:   minErr.Items,
			})
		case businessflow.IsCampaignNotFound(err):
			return h.ErrorResponse(c, fiber.StatusNotFound, "Campaign not found", "CAMPAIGN_NOT_FOUND", nil)
		}
		log.Println("Select products failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to store selections", "SELECTION_SAVE_FAILED", nil)
	}
	return c.Status(fiber.StatusOK).JSON(res)
}

// decodeSelectProducts keeps numbers as json.Number so product ids survive untouched
func decodeSelectProducts(body []byte) (*dto.SelectProductsRequest, error) {
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, errors.New("empty request body")
	}
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	var req dto.SelectProductsRequest
	if err := dec.Decode(&req); err != nil {
		return nil, err
	}
	return &req, nil
}
