// Package businessflow contains the business logic for the application.
package businessflow

import (
	"time"

	"github.com/amirphl/vendor-campaigns/app/dto"
	"github.com/amirphl/vendor-campaigns/models"
	"github.com/amirphl/vendor-campaigns/utils"
)

const RequestIDKey = "X-Request-ID"

// ClientMetadata holds client information attached to admin action logs
type ClientMetadata struct {
	IPAddress string `json:"ip_address"`
	UserAgent string `json:"user_agent"`
	RequestID string `json:"request_id,omitempty"`
	VendorID  string `json:"vendor_id,omitempty"`
}

// NewClientMetadata creates a new ClientMetadata instance with basic information
func NewClientMetadata(ipAddress, userAgent string) *ClientMetadata {
	return &ClientMetadata{
		IPAddress: ipAddress,
		UserAgent: userAgent,
	}
}

// SetRequestID sets the request ID
func (cm *ClientMetadata) SetRequestID(requestID string) {
	cm.RequestID = requestID
}

// SetVendorID sets the acting vendor
func (cm *ClientMetadata) SetVendorID(vendorID string) {
	cm.VendorID = vendorID
}

// String renders the metadata for log lines
func (cm *ClientMetadata) String() string {
	if cm == nil {
		return "-"
	}
	return "request_id=" + cm.RequestID + " ip=" + cm.IPAddress + " vendor=" + cm.VendorID
}

// ToCampaignResponse converts a campaign model to its API representation
func ToCampaignResponse(c models.Campaign) dto.CampaignResponse {
	return dto.CampaignResponse{
		ID:              c.ID,
		Title:           c.Title,
		Description:     c.Description,
		StartDate:       c.StartDate.Format(utils.ISODate),
		EndDate:         c.EndDate.Format(utils.ISODate),
		CreatedAt:       c.CreatedAt.UTC().Format(time.RFC3339),
		StartDateJalali: utils.ToDisplay(c.StartDate),
		EndDateJalali:   utils.ToDisplay(c.EndDate),
	}
}
