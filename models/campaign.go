package models

import (
	"time"
)

// CampaignPhase is the advisory display window of a campaign. It never blocks selection.
type CampaignPhase string

const (
	CampaignPhaseUpcoming CampaignPhase = "upcoming"
	CampaignPhaseActive   CampaignPhase = "active"
	CampaignPhaseEnded    CampaignPhase = "ended"
)

// Campaign represents an admin-defined promotional event vendors opt products into.
// Table: campaigns
// Dates are Gregorian calendar dates stored as DATE; start_date < end_date at creation
type Campaign struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"size:255;not null" json:"title"`
	Description *string   `gorm:"type:text" json:"description,omitempty"`
	StartDate   time.Time `gorm:"type:date;not null;index:idx_campaigns_start_date" json:"start_date"`
	EndDate     time.Time `gorm:"type:date;not null" json:"end_date"`
	CreatedAt   time.Time `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC')" json:"created_at"`

	Items []CampaignItem `gorm:"foreignKey:CampaignID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Campaign) TableName() string { return "campaigns" }

// PhaseAt returns the display phase of the campaign for the given calendar day
func (c *Campaign) PhaseAt(day time.Time) CampaignPhase {
	switch {
	case day.Before(c.StartDate):
		return CampaignPhaseUpcoming
	case day.After(c.EndDate):
		return CampaignPhaseEnded
	default:
		return CampaignPhaseActive
	}
}

// DaysRemaining returns the number of whole days from day until the end date, never negative
func (c *Campaign) DaysRemaining(day time.Time) int {
	d := int(c.EndDate.Sub(day).Hours() / 24)
	if d < 0 {
		return 0
	}
	return d
}

// CampaignFilter represents filter criteria for campaign queries
type CampaignFilter struct {
	ID            *uint
	Title         *string
	StartDateFrom *time.Time
	StartDateTo   *time.Time
	ActiveOn      *time.Time
	CreatedAfter  *time.Time
	CreatedBefore *time.Time
}
