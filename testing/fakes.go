package testing

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"strings"
	"sync"

	"github.com/amirphl/vendor-campaigns/app/services"
	"github.com/amirphl/vendor-campaigns/models"
	"github.com/amirphl/vendor-campaigns/repository"
	"github.com/amirphl/vendor-campaigns/utils"
)

// MemoryStore is an in-memory stand-in for the campaigns and campaign_items tables
type MemoryStore struct {
	mu         sync.Mutex
	campaigns  map[uint]*models.Campaign
	items      []*models.CampaignItem
	nextCampID uint
	nextItemID uint

	// ReplaceErr, when set, makes ReplaceForVendor fail without touching stored rows
	ReplaceErr error
}

// NewMemoryStore creates an empty store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{campaigns: make(map[uint]*models.Campaign)}
}

// Campaigns returns a CampaignRepository backed by the store
func (s *MemoryStore) Campaigns() repository.CampaignRepository {
	return &memoryCampaignRepository{store: s}
}

// Items returns a CampaignItemRepository backed by the store
func (s *MemoryStore) Items() repository.CampaignItemRepository {
	return &memoryItemRepository{store: s}
}

// AddCampaign stores c and assigns its id
func (s *MemoryStore) AddCampaign(c *models.Campaign) *models.Campaign {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextCampID++
	c.ID = s.nextCampID
	cp := *c
	s.campaigns[c.ID] = &cp
	return c
}

// AllItems returns a copy of every stored selection
func (s *MemoryStore) AllItems() []models.CampaignItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.CampaignItem, 0, len(s.items))
	for _, it := range s.items {
		out = append(out, *it)
	}
	return out
}

type memoryCampaignRepository struct {
	store *MemoryStore
}

func (r *memoryCampaignRepository) ByID(ctx context.Context, id uint) (*models.Campaign, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	c, ok := r.store.campaigns[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (r *memoryCampaignRepository) ByFilter(ctx context.Context, filter models.CampaignFilter, orderBy string, limit, offset int) ([]*models.Campaign, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	out := make([]*models.Campaign, 0, len(r.store.campaigns))
	for _, c := range r.store.campaigns {
		if filter.ID != nil && c.ID != *filter.ID {
			continue
		}
		if filter.Title != nil && !strings.Contains(strings.ToLower(c.Title), strings.ToLower(*filter.Title)) {
			continue
		}
		if filter.ActiveOn != nil && (filter.ActiveOn.Before(c.StartDate) || filter.ActiveOn.After(c.EndDate)) {
			continue
		}
		cp := *c
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].StartDate.Equal(out[j].StartDate) {
			return out[i].StartDate.After(out[j].StartDate)
		}
		return out[i].ID > out[j].ID
	})
	return page(out, limit, offset), nil
}

func (r *memoryCampaignRepository) Save(ctx context.Context, c *models.Campaign) error {
	r.store.AddCampaign(c)
	return nil
}

func (r *memoryCampaignRepository) SaveBatch(ctx context.Context, cs []*models.Campaign) error {
	for _, c := range cs {
		r.store.AddCampaign(c)
	}
	return nil
}

func (r *memoryCampaignRepository) Count(ctx context.Context, filter models.CampaignFilter) (int64, error) {
	rows, _ := r.ByFilter(ctx, filter, "", 0, 0)
	return int64(len(rows)), nil
}

func (r *memoryCampaignRepository) Exists(ctx context.Context, filter models.CampaignFilter) (bool, error) {
	n, _ := r.Count(ctx, filter)
	return n > 0, nil
}

func (r *memoryCampaignRepository) ListByStartDate(ctx context.Context) ([]*models.Campaign, error) {
	return r.ByFilter(ctx, models.CampaignFilter{}, "start_date DESC, id DESC", 0, 0)
}

func (r *memoryCampaignRepository) DeleteCascade(ctx context.Context, id uint) (bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.campaigns[id]; !ok {
		return false, nil
	}
	delete(r.store.campaigns, id)
	kept := r.store.items[:0]
	for _, it := range r.store.items {
		if it.CampaignID != id {
			kept = append(kept, it)
		}
	}
	r.store.items = kept
	return true, nil
}

type memoryItemRepository struct {
	store *MemoryStore
}

func (r *memoryItemRepository) ByID(ctx context.Context, id uint) (*models.CampaignItem, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, it := range r.store.items {
		if it.ID == id {
			cp := *it
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memoryItemRepository) ByFilter(ctx context.Context, filter models.CampaignItemFilter, orderBy string, limit, offset int) ([]*models.CampaignItem, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	out := make([]*models.CampaignItem, 0)
	for _, it := range r.store.items {
		if filter.CampaignID != nil && it.CampaignID != *filter.CampaignID {
			continue
		}
		if filter.VendorID != nil && it.VendorID != *filter.VendorID {
			continue
		}
		if filter.ProductID != nil && it.ProductID != *filter.ProductID {
			continue
		}
		cp := *it
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].VendorID != out[j].VendorID {
			return out[i].VendorID < out[j].VendorID
		}
		return out[i].ProductID < out[j].ProductID
	})
	return page(out, limit, offset), nil
}

func (r *memoryItemRepository) Save(ctx context.Context, it *models.CampaignItem) error {
	return r.SaveBatch(ctx, []*models.CampaignItem{it})
}

func (r *memoryItemRepository) SaveBatch(ctx context.Context, items []*models.CampaignItem) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, it := range items {
		if !r.store.insertLocked(it) {
			return errors.New("duplicate key value violates unique constraint \"uk_campaign_items_campaign_vendor_product\"")
		}
	}
	return nil
}

func (r *memoryItemRepository) Count(ctx context.Context, filter models.CampaignItemFilter) (int64, error) {
	rows, _ := r.ByFilter(ctx, filter, "", 0, 0)
	return int64(len(rows)), nil
}

func (r *memoryItemRepository) Exists(ctx context.Context, filter models.CampaignItemFilter) (bool, error) {
	n, _ := r.Count(ctx, filter)
	return n > 0, nil
}

func (r *memoryItemRepository) ListByCampaign(ctx context.Context, campaignID uint) ([]*models.CampaignItem, error) {
	return r.ByFilter(ctx, models.CampaignItemFilter{CampaignID: &campaignID}, "vendor_id ASC, product_id ASC", 0, 0)
}

func (r *memoryItemRepository) ListByCampaignAndVendor(ctx context.Context, campaignID uint, vendorID string) ([]*models.CampaignItem, error) {
	return r.ByFilter(ctx, models.CampaignItemFilter{CampaignID: &campaignID, VendorID: &vendorID}, "product_id ASC", 0, 0)
}

func (r *memoryItemRepository) ReplaceForVendor(ctx context.Context, campaignID uint, vendorID string, items []*models.CampaignItem) (int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if r.store.ReplaceErr != nil {
		return 0, r.store.ReplaceErr
	}
	if _, ok := r.store.campaigns[campaignID]; !ok {
		return 0, errors.New("insert or update on table \"campaign_items\" violates foreign key constraint")
	}

	kept := r.store.items[:0]
	for _, it := range r.store.items {
		if it.CampaignID == campaignID && it.VendorID == vendorID {
			continue
		}
		kept = append(kept, it)
	}
	r.store.items = kept

	var stored int64
	for _, it := range items {
		it.CampaignID = campaignID
		it.VendorID = vendorID
		if r.store.insertLocked(it) {
			stored++
		}
	}
	return stored, nil
}

func (r *memoryItemRepository) CountByCampaign(ctx context.Context, campaignID uint) (int64, error) {
	return r.Count(ctx, models.CampaignItemFilter{CampaignID: &campaignID})
}

// insertLocked appends it unless the (campaign, vendor, product) key already exists
func (s *MemoryStore) insertLocked(it *models.CampaignItem) bool {
	for _, existing := range s.items {
		if existing.CampaignID == it.CampaignID && existing.VendorID == it.VendorID && existing.ProductID == it.ProductID {
			return false
		}
	}
	s.nextItemID++
	it.ID = s.nextItemID
	if it.SelectedAt.IsZero() {
		it.SelectedAt = utils.UTCNow()
	}
	cp := *it
	s.items = append(s.items, &cp)
	return true
}

func page[T any](rows []T, limit, offset int) []T {
	if offset > 0 {
		if offset >= len(rows) {
			return rows[:0]
		}
		rows = rows[offset:]
	}
	if limit > 0 && limit < len(rows) {
		rows = rows[:limit]
	}
	return rows
}

// FakeBasalamClient is a scripted BasalamClient and CatalogClient
type FakeBasalamClient struct {
	mu sync.Mutex

	Token      *services.TokenResponse
	TokenErr   error
	Profile    json.RawMessage
	ProfileErr error

	Catalog    json.RawMessage
	CatalogErr error

	ExchangedCodes []string
	CatalogCalls   []CatalogCall
}

// CatalogCall records the arguments of a ListVendorProducts call
type CatalogCall struct {
	AccessToken string
	VendorID    string
	Page        int
	PerPage     int
}

func (f *FakeBasalamClient) AuthorizeURL(state string) string {
	return "https://sso.example/authorize?state=" + state
}

func (f *FakeBasalamClient) ExchangeCode(ctx context.Context, code string) (*services.TokenResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ExchangedCodes = append(f.ExchangedCodes, code)
	if f.TokenErr != nil {
		return nil, f.TokenErr
	}
	if f.Token == nil {
		return &services.TokenResponse{AccessToken: "access-token", RefreshToken: "refresh-token"}, nil
	}
	return f.Token, nil
}

func (f *FakeBasalamClient) FetchProfile(ctx context.Context, accessToken string) (*services.UserProfile, error) {
	if f.ProfileErr != nil {
		return nil, f.ProfileErr
	}
	raw := f.Profile
	if raw == nil {
		raw = json.RawMessage(`{"id":1,"name":"Vendor","mobile":"09120000000","vendor":{"id":42}}`)
	}
	return services.ParseUserProfile(raw)
}

func (f *FakeBasalamClient) ListVendorProducts(ctx context.Context, accessToken, vendorID string, pageNo, perPage int) (json.RawMessage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.CatalogCalls = append(f.CatalogCalls, CatalogCall{AccessToken: accessToken, VendorID: vendorID, Page: pageNo, PerPage: perPage})
	if f.CatalogErr != nil {
		return nil, f.CatalogErr
	}
	if f.Catalog == nil {
		return json.RawMessage(`{"data":[],"total_count":0}`), nil
	}
	return f.Catalog, nil
}

// MemoryCatalogCache is a map-backed CatalogCache
type MemoryCatalogCache struct {
	mu      sync.Mutex
	entries map[CatalogCall]json.RawMessage
}

// NewMemoryCatalogCache creates an empty cache
func NewMemoryCatalogCache() *MemoryCatalogCache {
	return &MemoryCatalogCache{entries: make(map[CatalogCall]json.RawMessage)}
}

func (c *MemoryCatalogCache) Get(ctx context.Context, vendorID string, pageNo, perPage int) (json.RawMessage, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.entries[CatalogCall{VendorID: vendorID, Page: pageNo, PerPage: perPage}]
	return v, ok
}

func (c *MemoryCatalogCache) Set(ctx context.Context, vendorID string, pageNo, perPage int, payload json.RawMessage) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[CatalogCall{VendorID: vendorID, Page: pageNo, PerPage: perPage}] = payload
}

var (
	_ repository.CampaignRepository     = (*memoryCampaignRepository)(nil)
	_ repository.CampaignItemRepository = (*memoryItemRepository)(nil)
	_ services.BasalamClient            = (*FakeBasalamClient)(nil)
	_ services.CatalogClient            = (*FakeBasalamClient)(nil)
	_ services.CatalogCache             = (*MemoryCatalogCache)(nil)
)
