package handlers

import (
	"log"

	"github.com/amirphl/vendor-campaigns/app/dto"
	"github.com/amirphl/vendor-campaigns/app/middleware"
	businessflow "github.com/amirphl/vendor-campaigns/business_flow"
	"github.com/gofiber/fiber/v3"
)

// CatalogHandlerInterface defines the contract for catalog pass-through handlers
type CatalogHandlerInterface interface {
	MyProducts(c fiber.Ctx) error
}

// CatalogHandler proxies the vendor's product list
type CatalogHandler struct {
	baseHandler
	catalogFlow businessflow.CatalogFlow
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(catalogFlow businessflow.CatalogFlow) *CatalogHandler {
	return &CatalogHandler{
		baseHandler: newBaseHandler(),
		catalogFlow: catalogFlow,
	}
}

// MyProducts returns one page of the vendor's products as the upstream JSON
// @Summary My Products
// @Description Pass-through of the vendor's product list. An unavailable upstream yields an empty page.
// @Tags Catalog
// @Produce json
// @Param page query int false "Page (default 1)"
// @Param per_page query int false "Page size (default 50, max 100)"
// @Success 200 {object} dto.EmptyCatalogResponse "Upstream product page"
// @Failure 401 {object} dto.APIResponse "Login required"
// @Failure 502 {object} dto.APIResponse "Catalog unavailable"
// @Router /api/my-products [get]
func (h *CatalogHandler) MyProducts(c fiber.Ctx) error {
	req := &dto.MyProductsRequest{
		Page:    c.Query("page"),
		PerPage: c.Query("per_page"),
	}

	ctx, cancel := h.createRequestContext(c, "/api/my-products")
	defer cancel()

	session := middleware.SessionFrom(c)
	body, err := h.catalogFlow.ListMyProducts(ctx, session.VendorID, session.AccessToken, req)
	if err != nil {
		if businessflow.IsCatalogUnavailable(err) {
			return h.ErrorResponse(c, fiber.StatusBadGateway, "Catalog unavailable", "CATALOG_UNAVAILABLE", businessflow.UpstreamStatusOf(err))
		}
		log.Println("My products failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to load products", "CATALOG_FAILED", nil)
	}

	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSONCharsetUTF8)
	return c.Status(fiber.StatusOK).Send(body)
}
