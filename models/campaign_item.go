package models

import (
	"fmt"
	"time"
)

// CampaignItem is a vendor's product selection for a campaign.
// Table: campaign_items
// Unique by (campaign_id, vendor_id, product_id); discount_percent >= 3 for stored rows
type CampaignItem struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	CampaignID      uint      `gorm:"not null;uniqueIndex:uk_campaign_items_campaign_vendor_product,priority:1;index:idx_campaign_items_campaign_vendor,priority:1" json:"campaign_id"`
	VendorID        string    `gorm:"size:64;not null;uniqueIndex:uk_campaign_items_campaign_vendor_product,priority:2;index:idx_campaign_items_campaign_vendor,priority:2" json:"vendor_id"`
	ProductID       string    `gorm:"size:128;not null;uniqueIndex:uk_campaign_items_campaign_vendor_product,priority:3" json:"product_id"`
	ProductTitle    *string   `gorm:"size:512" json:"product_title,omitempty"`
	DiscountPercent float64   `gorm:"not null" json:"discount_percent"`
	SelectedAt      time.Time `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC')" json:"selected_at"`
}

func (CampaignItem) TableName() string { return "campaign_items" }

// DisplayTitle returns the captured title or a synthesized placeholder
func (i *CampaignItem) DisplayTitle() string {
	if i.ProductTitle != nil && *i.ProductTitle != "" {
		return *i.ProductTitle
	}
	return fmt.Sprintf("Product %s", i.ProductID)
}

// CampaignItemFilter represents filter criteria for campaign item queries
type CampaignItemFilter struct {
	CampaignID *uint
	VendorID   *string
	ProductID  *string
}
