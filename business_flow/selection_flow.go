package businessflow

import (
	"context"
	"log"

	"github.com/amirphl/vendor-campaigns/app/dto"
	"github.com/amirphl/vendor-campaigns/models"
	"github.com/amirphl/vendor-campaigns/repository"
	"github.com/amirphl/vendor-campaigns/utils"
)

// SelectionFlow handles a vendor's product selections for campaigns
type SelectionFlow interface {
	ReplaceSelections(ctx context.Context, campaignID uint, vendorID string, items []dto.RawSelectionItem, metadata *ClientMetadata) (*dto.SelectProductsResponse, error)
	MySelections(ctx context.Context, campaignID uint, vendorID string) ([]dto.SelectionResponse, error)
}

// SelectionFlowImpl implements SelectionFlow
type SelectionFlowImpl struct {
	campaignRepo repository.CampaignRepository
	itemRepo     repository.CampaignItemRepository
}

// NewSelectionFlow creates a new selection flow instance
func NewSelectionFlow(campaignRepo repository.CampaignRepository, itemRepo repository.CampaignItemRepository) SelectionFlow {
	return &SelectionFlowImpl{
		campaignRepo: campaignRepo,
		itemRepo:     itemRepo,
	}
}

// ReplaceSelections validates items and swaps the vendor's whole selection set for the campaign.
// A rejected batch writes nothing.
func (f *SelectionFlowImpl) ReplaceSelections(ctx context.Context, campaignID uint, vendorID string, items []dto.RawSelectionItem, metadata *ClientMetadata) (*dto.SelectProductsResponse, error) {
	selections, err := ValidateSelections(items)
	if err != nil {
		selectionReplacements.WithLabelValues("rejected").Inc()
		return nil, err
	}

	campaign, err := f.campaignRepo.ByID(ctx, campaignID)
	if err != nil {
		return nil, NewBusinessError("CAMPAIGN_LOOKUP_FAILED", "Failed to lookup campaign", err)
	}
	if campaign == nil {
		return nil, ErrCampaignNotFound
	}

	now := utils.UTCNow()
	rows := make([]*models.CampaignItem, 0, len(selections))
	for _, s := range selections {
		item := &models.CampaignItem{
			ProductID:       s.ProductID,
			DiscountPercent: s.Discount,
			SelectedAt:      now,
		}
		if s.Title != "" {
			item.ProductTitle = utils.ToPtr(s.Title)
		}
		rows = append(rows, item)
	}

	count, err := f.itemRepo.ReplaceForVendor(ctx, campaignID, vendorID, rows)
	if err != nil {
		selectionReplacements.WithLabelValues("failed").Inc()
		return nil, NewBusinessError("SELECTION_SAVE_FAILED", "Failed to save selections", err)
	}

	selectionReplacements.WithLabelValues("stored").Inc()
	selectionsStored.Add(float64(count))
	log.Printf("selections replaced campaign=%d count=%d %s", campaignID, count, metadata)

	return &dto.SelectProductsResponse{OK: true, Count: count}, nil
}

// MySelections returns the vendor's stored selections for a campaign ordered by product id
func (f *SelectionFlowImpl) MySelections(ctx context.Context, campaignID uint, vendorID string) ([]dto.SelectionResponse, error) {
	rows, err := f.itemRepo.ListByCampaignAndVendor(ctx, campaignID, vendorID)
	if err != nil {
		return nil, NewBusinessError("SELECTION_LIST_FAILED", "Failed to list selections", err)
	}

	out := make([]dto.SelectionResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.SelectionResponse{
			ProductID: r.ProductID,
			Discount:  r.DiscountPercent,
			Title:     utils.Deref(r.ProductTitle),
		})
	}
	return out, nil
}
