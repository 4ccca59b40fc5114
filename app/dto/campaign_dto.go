package dto

// CreateCampaignForm represents the admin form posted to create a campaign.
// Dates are Jalali display strings (YYYY/MM/DD)
type CreateCampaignForm struct {
	Title       string `form:"title" json:"title" validate:"max=255"`
	Description string `form:"description" json:"description" validate:"max=5000"`
	StartDate   string `form:"start_date" json:"start_date" validate:"max=32"`
	EndDate     string `form:"end_date" json:"end_date" validate:"max=32"`
}

// CampaignResponse represents a campaign in API responses
type CampaignResponse struct {
	ID              uint    `json:"id"`
	Title           string  `json:"title"`
	Description     *string `json:"description"`
	StartDate       string  `json:"start_date"`
	EndDate         string  `json:"end_date"`
	CreatedAt       string  `json:"created_at"`
	StartDateJalali string  `json:"start_date_jalali"`
	EndDateJalali   string  `json:"end_date_jalali"`
}

// CampaignView is a campaign prepared for the HTML pages
type CampaignView struct {
	CampaignResponse
	Phase         string
	DaysRemaining int
	Selections    int64
}
