package businessflow

import (
	"context"
	"encoding/json"
	"log"
	"strconv"
	"strings"

	"github.com/amirphl/vendor-campaigns/app/dto"
	"github.com/amirphl/vendor-campaigns/app/services"
	"github.com/amirphl/vendor-campaigns/config"
	"github.com/amirphl/vendor-campaigns/utils"
)

// CatalogFlow proxies the vendor's own product catalog from the remote API
type CatalogFlow interface {
	ListMyProducts(ctx context.Context, vendorID, accessToken string, req *dto.MyProductsRequest) (json.RawMessage, error)
}

// CatalogFlowImpl implements CatalogFlow
type CatalogFlowImpl struct {
	client   services.CatalogClient
	cache    services.CatalogCache
	failSoft bool
}

// NewCatalogFlow creates a new catalog flow instance
func NewCatalogFlow(client services.CatalogClient, cache services.CatalogCache, catalogConfig config.CatalogConfig) CatalogFlow {
	if cache == nil {
		cache = services.NewCatalogCache(nil, "", 0)
	}
	return &CatalogFlowImpl{
		client:   client,
		cache:    cache,
		failSoft: catalogConfig.FailSoft,
	}
}

// ListMyProducts returns one page of the vendor's products as the upstream JSON.
// With fail-soft enabled any upstream failure yields an empty page echoing the pagination.
func (f *CatalogFlowImpl) ListMyProducts(ctx context.Context, vendorID, accessToken string, req *dto.MyProductsRequest) (json.RawMessage, error) {
	page, perPage := NormalizePagination(req.Page, req.PerPage)

	if cached, ok := f.cache.Get(ctx, vendorID, page, perPage); ok {
		return cached, nil
	}

	payload, err := f.client.ListVendorProducts(ctx, accessToken, vendorID, page, perPage)
	if err != nil {
		if !f.failSoft {
			return nil, NewBusinessError("CATALOG_UNAVAILABLE", "Catalog is unavailable", &UpstreamFailure{Kind: ErrCatalogUnavailable, StatusCode: services.UpstreamStatus(err), Err: err})
		}

		catalogFallbacks.Inc()
		log.Printf("catalog fallback vendor=%s page=%d per_page=%d: %v", vendorID, page, perPage, err)
		return emptyCatalogPage(page, perPage), nil
	}

	f.cache.Set(ctx, vendorID, page, perPage, payload)
	return payload, nil
}

// NormalizePagination parses the raw query values. If either is not an integer both reset to
// the defaults; per_page is clamped to [1,100] and page to at least 1.
func NormalizePagination(rawPage, rawPerPage string) (int, int) {
	page, perPage := utils.DefaultCatalogPage, utils.DefaultCatalogPerPage

	p, errPage := parsePaginationValue(rawPage, utils.DefaultCatalogPage)
	pp, errPer := parsePaginationValue(rawPerPage, utils.DefaultCatalogPerPage)
	if errPage == nil && errPer == nil {
		page, perPage = p, pp
	}

	perPage = max(1, min(utils.MaxCatalogPerPage, perPage))
	page = max(1, page)
	return page, perPage
}

func parsePaginationValue(raw string, def int) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return def, nil
	}
	return strconv.Atoi(raw)
}

func emptyCatalogPage(page, perPage int) json.RawMessage {
	body, _ := json.Marshal(dto.EmptyCatalogResponse{
		Data:    []any{},
		Total:   0,
		Page:    page,
		PerPage: perPage,
	})
	return body
}
