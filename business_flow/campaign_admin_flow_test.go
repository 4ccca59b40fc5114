package businessflow

import (
	"bytes"
	"context"
	"encoding/csv"
	"testing"
	"time"

	"github.com/amirphl/vendor-campaigns/app/dto"
	"github.com/amirphl/vendor-campaigns/models"
	testutil "github.com/amirphl/vendor-campaigns/testing"
	"github.com/amirphl/vendor-campaigns/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func newAdminFixture(t *testing.T) (*testutil.MemoryStore, *AdminCampaignFlowImpl, uint) {
	t.Helper()
	ctx := context.Background()
	store := testutil.NewMemoryStore()
	c := store.AddCampaign(testutil.NewCampaign("Yalda", time.Date(2024, 12, 15, 0, 0, 0, 0, time.UTC), 7))

	_, err := store.Items().ReplaceForVendor(ctx, c.ID, "20", []*models.CampaignItem{
		{ProductID: "5", DiscountPercent: 10},
		{ProductID: "1", ProductTitle: utils.ToPtr("Kilim, red"), DiscountPercent: 12.5},
	})
	require.NoError(t, err)
	_, err = store.Items().ReplaceForVendor(ctx, c.ID, "10", []*models.CampaignItem{
		{ProductID: "7", DiscountPercent: 3},
	})
	require.NoError(t, err)

	flow := NewAdminCampaignFlow(store.Campaigns(), store.Items()).(*AdminCampaignFlowImpl)
	flow.today = func() time.Time { return time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC) }
	return store, flow, c.ID
}

func TestSelectionsForCampaign(t *testing.T) {
	_, flow, cid := newAdminFixture(t)

	got, err := flow.SelectionsForCampaign(context.Background(), cid)
	require.NoError(t, err)

	assert.Equal(t, dto.AdminSelectionsResponse{
		"10": {{ProductID: "7", Title: "Product 7", Discount: 3}},
		"20": {
			{ProductID: "1", Title: "Kilim, red", Discount: 12.5},
			{ProductID: "5", Title: "Product 5", Discount: 10},
		},
	}, got)

	empty, err := flow.SelectionsForCampaign(context.Background(), 999)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestExportCSV(t *testing.T) {
	_, flow, cid := newAdminFixture(t)

	file, err := flow.ExportCSV(context.Background(), cid)
	require.NoError(t, err)

	assert.Equal(t, "text/csv; charset=utf-8", file.ContentType)
	assert.Equal(t, "campaign_1_products_2025-01-02.csv", file.Filename)

	records, err := csv.NewReader(bytes.NewReader(file.Data)).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"Product ID", "Title", "Vendor ID", "Discount (%)"},
		{"7", "Product 7", "10", "3"},
		{"1", "Kilim, red", "20", "12.5"},
		{"5", "Product 5", "20", "10"},
	}, records)
	assert.True(t, bytes.HasPrefix(file.Data, []byte("Product ID,Title,Vendor ID,Discount (%)\n")))
}

func TestExportNotFound(t *testing.T) {
	ctx := context.Background()
	store, flow, cid := newAdminFixture(t)

	_, err := flow.ExportCSV(ctx, 999)
	assert.True(t, IsCampaignNotFound(err))

	empty := store.AddCampaign(testutil.NewCampaign("empty", time.Now(), 2))
	_, err = flow.ExportCSV(ctx, empty.ID)
	assert.True(t, IsNoSelections(err))
	_, err = flow.ExportXLSX(ctx, empty.ID)
	assert.True(t, IsNoSelections(err))

	deleted, err := store.Campaigns().DeleteCascade(ctx, cid)
	require.NoError(t, err)
	require.True(t, deleted)
	_, err = flow.ExportCSV(ctx, cid)
	assert.True(t, IsCampaignNotFound(err))
}

func TestExportXLSX(t *testing.T) {
	_, flow, cid := newAdminFixture(t)

	file, err := flow.ExportXLSX(context.Background(), cid)
	require.NoError(t, err)
	assert.Equal(t, "campaign_1_products_2025-01-02.xlsx", file.Filename)

	xl, err := excelize.OpenReader(bytes.NewReader(file.Data))
	require.NoError(t, err)
	defer func() { _ = xl.Close() }()

	assert.Equal(t, []string{"Selections"}, xl.GetSheetList())
	rows, err := xl.GetRows("Selections")
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, []string{"Product ID", "Title", "Vendor ID", "Discount (%)"}, rows[0])
	assert.Equal(t, []string{"7", "Product 7", "10", "3"}, rows[1])
	assert.Equal(t, "Kilim, red", rows[2][1])
}
