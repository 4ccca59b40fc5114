// Package repository provides data access layer implementations and interfaces for database operations
package repository

import (
	"context"

	"github.com/amirphl/vendor-campaigns/models"
)

// RepositoryContext key for transaction in context
type contextKey string

const TxContextKey contextKey = "tx"

type Repository[T any, F any] interface {
	ByID(ctx context.Context, id uint) (*T, error)
	ByFilter(ctx context.Context, filter F, orderBy string, limit, offset int) ([]*T, error)
	Save(ctx context.Context, entity *T) error
	SaveBatch(ctx context.Context, entities []*T) error
	Count(ctx context.Context, filter F) (int64, error)
	Exists(ctx context.Context, filter F) (bool, error)
}

// CampaignRepository defines operations for campaigns
type CampaignRepository interface {
	Repository[models.Campaign, models.CampaignFilter]
	// ListByStartDate returns all campaigns, newest start date first
	ListByStartDate(ctx context.Context) ([]*models.Campaign, error)
	// DeleteCascade removes the campaign and all of its items in one transaction.
	// It reports false when no campaign had the given id.
	DeleteCascade(ctx context.Context, id uint) (bool, error)
}

// CampaignItemRepository defines operations for vendor selections
type CampaignItemRepository interface {
	Repository[models.CampaignItem, models.CampaignItemFilter]
	// ListByCampaign returns every selection of a campaign ordered by vendor then product
	ListByCampaign(ctx context.Context, campaignID uint) ([]*models.CampaignItem, error)
	// ListByCampaignAndVendor returns one vendor's selections ordered by product
	ListByCampaignAndVendor(ctx context.Context, campaignID uint, vendorID string) ([]*models.CampaignItem, error)
	// ReplaceForVendor atomically deletes the vendor's selections for the campaign and
	// inserts items in their place. It returns the number of rows stored.
	ReplaceForVendor(ctx context.Context, campaignID uint, vendorID string, items []*models.CampaignItem) (int64, error)
	// CountByCampaign returns the number of selections stored for a campaign
	CountByCampaign(ctx context.Context, campaignID uint) (int64, error)
}
