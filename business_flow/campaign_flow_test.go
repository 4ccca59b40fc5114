package businessflow

import (
	"context"
	"testing"
	"time"

	"github.com/amirphl/vendor-campaigns/app/dto"
	testutil "github.com/amirphl/vendor-campaigns/testing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCampaignFlowForTest(store *testutil.MemoryStore, today time.Time) *CampaignFlowImpl {
	flow := NewCampaignFlow(store.Campaigns(), store.Items()).(*CampaignFlowImpl)
	flow.today = func() time.Time { return today }
	return flow
}

func TestCreateCampaign(t *testing.T) {
	store := testutil.NewMemoryStore()
	flow := newCampaignFlowForTest(store, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC))

	resp, err := flow.CreateCampaign(context.Background(), &dto.CreateCampaignForm{
		Title:       "  Nowruz Sale ",
		Description: " ",
		StartDate:   "1403/01/01",
		EndDate:     "۱۴۰۳/۰۱/۱۳",
	}, nil)
	require.NoError(t, err)

	assert.NotZero(t, resp.ID)
	assert.Equal(t, "Nowruz Sale", resp.Title)
	assert.Nil(t, resp.Description)
	assert.Equal(t, "2024-03-20", resp.StartDate)
	assert.Equal(t, "2024-04-01", resp.EndDate)
	assert.Equal(t, "1403/01/01", resp.StartDateJalali)
	assert.Equal(t, "1403/01/13", resp.EndDateJalali)
}

func TestCreateCampaignValidation(t *testing.T) {
	tests := []struct {
		name  string
		form  dto.CreateCampaignForm
		check func(error) bool
	}{
		{"blank title", dto.CreateCampaignForm{Title: "   ", StartDate: "1403/01/01", EndDate: "1403/01/05"}, IsTitleRequired},
		{"bad start", dto.CreateCampaignForm{Title: "x", StartDate: "2024-03-20", EndDate: "1403/01/05"}, IsInvalidDateFormat},
		{"missing end", dto.CreateCampaignForm{Title: "x", StartDate: "1403/01/01"}, IsInvalidDateFormat},
		{"impossible day", dto.CreateCampaignForm{Title: "x", StartDate: "1402/12/30", EndDate: "1403/01/05"}, IsInvalidDateFormat},
		{"equal dates", dto.CreateCampaignForm{Title: "x", StartDate: "1403/01/05", EndDate: "1403/01/05"}, IsInvalidDateRange},
		{"reversed dates", dto.CreateCampaignForm{Title: "x", StartDate: "1403/02/01", EndDate: "1403/01/05"}, IsInvalidDateRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := testutil.NewMemoryStore()
			flow := newCampaignFlowForTest(store, time.Now())

			_, err := flow.CreateCampaign(context.Background(), &tt.form, nil)
			require.Error(t, err)
			assert.True(t, tt.check(err), "unexpected error %v", err)

			all, err := flow.ListCampaigns(context.Background())
			require.NoError(t, err)
			assert.Empty(t, all)
		})
	}
}

func TestListCampaignsOrder(t *testing.T) {
	store := testutil.NewMemoryStore()
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	a := store.AddCampaign(testutil.NewCampaign("a", base, 5))
	b := store.AddCampaign(testutil.NewCampaign("b", base.AddDate(0, 1, 0), 5))
	c := store.AddCampaign(testutil.NewCampaign("c", base, 5))

	flow := newCampaignFlowForTest(store, base)
	list, err := flow.ListCampaigns(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 3)

	assert.Equal(t, []uint{b.ID, c.ID, a.ID}, []uint{list[0].ID, list[1].ID, list[2].ID})
}

func TestCampaignViewsPhase(t *testing.T) {
	store := testutil.NewMemoryStore()
	today := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
	store.AddCampaign(testutil.NewCampaign("past", today.AddDate(0, 0, -20), 5))
	active := store.AddCampaign(testutil.NewCampaign("now", today.AddDate(0, 0, -2), 7))
	store.AddCampaign(testutil.NewCampaign("soon", today.AddDate(0, 0, 3), 5))

	flow := newCampaignFlowForTest(store, today)
	views, err := flow.ListCampaignViews(context.Background())
	require.NoError(t, err)

	phases := map[string]string{}
	for _, v := range views {
		phases[v.Title] = v.Phase
	}
	assert.Equal(t, map[string]string{"past": "ended", "now": "active", "soon": "upcoming"}, phases)

	view, err := flow.GetCampaignView(context.Background(), active.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, view.DaysRemaining)
	assert.Equal(t, int64(0), view.Selections)
}

func TestGetAndDeleteCampaign(t *testing.T) {
	ctx := context.Background()
	store := testutil.NewMemoryStore()
	c := store.AddCampaign(testutil.NewCampaign("x", time.Now(), 3))
	_, err := store.Items().ReplaceForVendor(ctx, c.ID, "9", nil)
	require.NoError(t, err)

	flow := newCampaignFlowForTest(store, time.Now())

	got, err := flow.GetCampaign(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, "x", got.Title)

	require.NoError(t, flow.DeleteCampaign(ctx, c.ID, nil))

	_, err = flow.GetCampaign(ctx, c.ID)
	assert.True(t, IsCampaignNotFound(err))

	err = flow.DeleteCampaign(ctx, c.ID, nil)
	assert.True(t, IsCampaignNotFound(err))
}
