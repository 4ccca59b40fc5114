package repository

import (
	"context"
	"fmt"

	"github.com/amirphl/vendor-campaigns/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CampaignItemRepositoryImpl implements CampaignItemRepository interface
type CampaignItemRepositoryImpl struct {
	*BaseRepository[models.CampaignItem, models.CampaignItemFilter]
}

// NewCampaignItemRepository creates a new campaign item repository
func NewCampaignItemRepository(db *gorm.DB) CampaignItemRepository {
	return &CampaignItemRepositoryImpl{
		BaseRepository: NewBaseRepository[models.CampaignItem, models.CampaignItemFilter](db),
	}
}

// ListByCampaign returns all selections of a campaign
func (r *CampaignItemRepositoryImpl) ListByCampaign(ctx context.Context, campaignID uint) ([]*models.CampaignItem, error) {
	filter := models.CampaignItemFilter{CampaignID: &campaignID}
	return r.ByFilter(ctx, filter, "vendor_id ASC, product_id ASC", 0, 0)
}

// ListByCampaignAndVendor returns one vendor's selections for a campaign
func (r *CampaignItemRepositoryImpl) ListByCampaignAndVendor(ctx context.Context, campaignID uint, vendorID string) ([]*models.CampaignItem, error) {
	filter := models.CampaignItemFilter{CampaignID: &campaignID, VendorID: &vendorID}
	return r.ByFilter(ctx, filter, "product_id ASC", 0, 0)
}

// ReplaceForVendor swaps the vendor's whole selection set for a campaign in one transaction
func (r *CampaignItemRepositoryImpl) ReplaceForVendor(ctx context.Context, campaignID uint, vendorID string, items []*models.CampaignItem) (int64, error) {
	var stored int64
	err := r.getDB(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("campaign_id = ? AND vendor_id = ?", campaignID, vendorID).
			Delete(&models.CampaignItem{}).Error; err != nil {
			return fmt.Errorf("failed to delete previous selections: %w", err)
		}
		if len(items) == 0 {
			return nil
		}

		for _, it := range items {
			it.CampaignID = campaignID
			it.VendorID = vendorID
		}

		res := tx.Clauses(clause.OnConflict{DoNothing: true}).CreateInBatches(items, 100)
		if res.Error != nil {
			return fmt.Errorf("failed to insert selections: %w", res.Error)
		}
		stored = res.RowsAffected
		return nil
	})
	if err != nil {
		return 0, err
	}
	return stored, nil
}

// CountByCampaign returns the number of selections of a campaign
func (r *CampaignItemRepositoryImpl) CountByCampaign(ctx context.Context, campaignID uint) (int64, error) {
	return r.Count(ctx, models.CampaignItemFilter{CampaignID: &campaignID})
}

// applyFilter applies filter criteria to a GORM query
func (r *CampaignItemRepositoryImpl) applyFilter(query *gorm.DB, filter models.CampaignItemFilter) *gorm.DB {
	if filter.CampaignID != nil {
		query = query.Where("campaign_id = ?", *filter.CampaignID)
	}
	if filter.VendorID != nil {
		query = query.Where("vendor_id = ?", *filter.VendorID)
	}
	if filter.ProductID != nil {
		query = query.Where("product_id = ?", *filter.ProductID)
	}
	return query
}

// ByFilter retrieves campaign items based on filter criteria
func (r *CampaignItemRepositoryImpl) ByFilter(ctx context.Context, filter models.CampaignItemFilter, orderBy string, limit, offset int) ([]*models.CampaignItem, error) {
	db := r.getDB(ctx)
	query := r.applyFilter(db.Model(&models.CampaignItem{}), filter)

	if orderBy == "" {
		orderBy = "id ASC"
	}
	query = query.Order(orderBy)

	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	var rows []*models.CampaignItem
	if err := query.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list campaign items: %w", err)
	}
	return rows, nil
}

// Count returns the number of campaign items matching the filter
func (r *CampaignItemRepositoryImpl) Count(ctx context.Context, filter models.CampaignItemFilter) (int64, error) {
	db := r.getDB(ctx)
	query := r.applyFilter(db.Model(&models.CampaignItem{}), filter)

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Exists checks if any campaign item matching the filter exists
func (r *CampaignItemRepositoryImpl) Exists(ctx context.Context, filter models.CampaignItemFilter) (bool, error) {
	c, err := r.Count(ctx, filter)
	if err != nil {
		return false, err
	}
	return c > 0, nil
}
