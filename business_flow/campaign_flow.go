package businessflow

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/amirphl/vendor-campaigns/app/dto"
	"github.com/amirphl/vendor-campaigns/models"
	"github.com/amirphl/vendor-campaigns/repository"
	"github.com/amirphl/vendor-campaigns/utils"
)

// CampaignFlow handles the campaign business logic
type CampaignFlow interface {
	ListCampaigns(ctx context.Context) ([]dto.CampaignResponse, error)
	GetCampaign(ctx context.Context, id uint) (*dto.CampaignResponse, error)
	ListCampaignViews(ctx context.Context) ([]dto.CampaignView, error)
	GetCampaignView(ctx context.Context, id uint) (*dto.CampaignView, error)
	CreateCampaign(ctx context.Context, form *dto.CreateCampaignForm, metadata *ClientMetadata) (*dto.CampaignResponse, error)
	DeleteCampaign(ctx context.Context, id uint, metadata *ClientMetadata) error
}

// CampaignFlowImpl implements the campaign business flow
type CampaignFlowImpl struct {
	campaignRepo repository.CampaignRepository
	itemRepo     repository.CampaignItemRepository
	today        func() time.Time
}

// NewCampaignFlow creates a new campaign flow instance
func NewCampaignFlow(campaignRepo repository.CampaignRepository, itemRepo repository.CampaignItemRepository) CampaignFlow {
	return &CampaignFlowImpl{
		campaignRepo: campaignRepo,
		itemRepo:     itemRepo,
		today:        utils.LocalToday,
	}
}

// ListCampaigns returns all campaigns, newest start date first
func (s *CampaignFlowImpl) ListCampaigns(ctx context.Context) ([]dto.CampaignResponse, error) {
	rows, err := s.campaignRepo.ListByStartDate(ctx)
	if err != nil {
		return nil, NewBusinessError("LIST_CAMPAIGNS_FAILED", "Failed to list campaigns", err)
	}

	out := make([]dto.CampaignResponse, 0, len(rows))
	for _, c := range rows {
		out = append(out, ToCampaignResponse(*c))
	}
	return out, nil
}

// GetCampaign returns a single campaign
func (s *CampaignFlowImpl) GetCampaign(ctx context.Context, id uint) (*dto.CampaignResponse, error) {
	c, err := s.getCampaign(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToCampaignResponse(*c)
	return &resp, nil
}

// ListCampaignViews returns the campaigns with their display phase for the index page
func (s *CampaignFlowImpl) ListCampaignViews(ctx context.Context) ([]dto.CampaignView, error) {
	rows, err := s.campaignRepo.ListByStartDate(ctx)
	if err != nil {
		return nil, NewBusinessError("LIST_CAMPAIGNS_FAILED", "Failed to list campaigns", err)
	}

	today := s.today()
	out := make([]dto.CampaignView, 0, len(rows))
	for _, c := range rows {
		out = append(out, toCampaignView(c, today))
	}
	return out, nil
}

// GetCampaignView returns one campaign with its phase and selection count for the detail page
func (s *CampaignFlowImpl) GetCampaignView(ctx context.Context, id uint) (*dto.CampaignView, error) {
	c, err := s.getCampaign(ctx, id)
	if err != nil {
		return nil, err
	}

	view := toCampaignView(c, s.today())
	count, err := s.itemRepo.CountByCampaign(ctx, id)
	if err != nil {
		return nil, NewBusinessError("COUNT_SELECTIONS_FAILED", "Failed to count selections", err)
	}
	view.Selections = count
	return &view, nil
}

// CreateCampaign validates the admin form and stores a new campaign
func (s *CampaignFlowImpl) CreateCampaign(ctx context.Context, form *dto.CreateCampaignForm, metadata *ClientMetadata) (*dto.CampaignResponse, error) {
	title := strings.TrimSpace(form.Title)
	if title == "" {
		return nil, ErrTitleRequired
	}

	start, err := utils.FromDisplay(form.StartDate)
	if err != nil {
		return nil, err
	}
	end, err := utils.FromDisplay(form.EndDate)
	if err != nil {
		return nil, err
	}
	if !start.Before(end) {
		return nil, ErrInvalidDateRange
	}

	campaign := &models.Campaign{
		Title:     title,
		StartDate: start,
		EndDate:   end,
		CreatedAt: utils.UTCNow(),
	}
	if desc := strings.TrimSpace(form.Description); desc != "" {
		campaign.Description = &desc
	}

	if err := s.campaignRepo.Save(ctx, campaign); err != nil {
		return nil, NewBusinessError("CAMPAIGN_CREATION_FAILED", "Campaign creation failed", err)
	}

	log.Printf("campaign created id=%d title=%q %s", campaign.ID, campaign.Title, metadata)
	resp := ToCampaignResponse(*campaign)
	return &resp, nil
}

// DeleteCampaign removes a campaign and all of its selections
func (s *CampaignFlowImpl) DeleteCampaign(ctx context.Context, id uint, metadata *ClientMetadata) error {
	deleted, err := s.campaignRepo.DeleteCascade(ctx, id)
	if err != nil {
		return NewBusinessError("CAMPAIGN_DELETION_FAILED", "Campaign deletion failed", err)
	}
	if !deleted {
		return ErrCampaignNotFound
	}

	log.Printf("campaign deleted id=%d %s", id, metadata)
	return nil
}

func (s *CampaignFlowImpl) getCampaign(ctx context.Context, id uint) (*models.Campaign, error) {
	c, err := s.campaignRepo.ByID(ctx, id)
	if err != nil {
		return nil, NewBusinessError("CAMPAIGN_LOOKUP_FAILED", "Failed to lookup campaign", err)
	}
	if c == nil {
		return nil, ErrCampaignNotFound
	}
	return c, nil
}

func toCampaignView(c *models.Campaign, today time.Time) dto.CampaignView {
	return dto.CampaignView{
		CampaignResponse: ToCampaignResponse(*c),
		Phase:            string(c.PhaseAt(today)),
		DaysRemaining:    c.DaysRemaining(today),
	}
}
