package testing

import (
	"fmt"
	"time"

	"github.com/amirphl/vendor-campaigns/models"
	"github.com/amirphl/vendor-campaigns/utils"
)

// TestFixtures provides helper methods for creating test data
type TestFixtures struct {
	DB *TestDB
}

// NewTestFixtures creates a new test fixtures instance
func NewTestFixtures(db *TestDB) *TestFixtures {
	return &TestFixtures{DB: db}
}

// CreateTestCampaign stores a campaign spanning the given number of days from start
func (tf *TestFixtures) CreateTestCampaign(title string, start time.Time, days int) (*models.Campaign, error) {
	campaign := NewCampaign(title, start, days)
	if err := tf.DB.DB.Create(campaign).Error; err != nil {
		return nil, fmt.Errorf("failed to create test campaign: %w", err)
	}
	return campaign, nil
}

// CreateTestSelections stores one selection per product id for the vendor
func (tf *TestFixtures) CreateTestSelections(campaignID uint, vendorID string, discount float64, productIDs ...string) ([]*models.CampaignItem, error) {
	items := make([]*models.CampaignItem, 0, len(productIDs))
	for _, pid := range productIDs {
		items = append(items, &models.CampaignItem{
			CampaignID:      campaignID,
			VendorID:        vendorID,
			ProductID:       pid,
			DiscountPercent: discount,
			SelectedAt:      utils.UTCNow(),
		})
	}
	if len(items) == 0 {
		return items, nil
	}
	if err := tf.DB.DB.Create(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to create test selections: %w", err)
	}
	return items, nil
}

// NewCampaign builds an unsaved campaign spanning the given number of days from start
func NewCampaign(title string, start time.Time, days int) *models.Campaign {
	start = utils.DateOnly(start)
	return &models.Campaign{
		Title:     title,
		StartDate: start,
		EndDate:   start.AddDate(0, 0, days),
		CreatedAt: utils.UTCNow(),
	}
}
