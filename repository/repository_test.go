package repository_test

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/amirphl/vendor-campaigns/models"
	"github.com/amirphl/vendor-campaigns/repository"
	testutil "github.com/amirphl/vendor-campaigns/testing"
	"github.com/amirphl/vendor-campaigns/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withDB(t *testing.T, fn func(testDB *testutil.TestDB) error) {
	t.Helper()
	err := testutil.TestWithDB(fn)
	if errors.Is(err, testutil.ErrDatabaseUnavailable) {
		t.Skipf("skipping: %v", err)
	}
	require.NoError(t, err)
}

func productIDs(items []*models.CampaignItem) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.ProductID)
	}
	return out
}

func TestCampaignRepository(t *testing.T) {
	withDB(t, func(testDB *testutil.TestDB) error {
		repo := repository.NewCampaignRepository(testDB.DB)
		fixtures := testutil.NewTestFixtures(testDB)
		ctx := testutil.CreateTestContext()

		older, err := fixtures.CreateTestCampaign("Older", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), 10)
		require.NoError(t, err)
		newer, err := fixtures.CreateTestCampaign("Newer", time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC), 14)
		require.NoError(t, err)

		t.Run("ByID", func(t *testing.T) {
			c, err := repo.ByID(ctx, newer.ID)
			require.NoError(t, err)
			require.NotNil(t, c)
			assert.Equal(t, "Newer", c.Title)
			assert.Equal(t, "2025-03-15", c.StartDate.Format(utils.ISODate))
			assert.Nil(t, c.Description)
		})

		t.Run("ByIDNotFound", func(t *testing.T) {
			c, err := repo.ByID(ctx, 999999)
			assert.NoError(t, err)
			assert.Nil(t, c)
		})

		t.Run("ListByStartDate", func(t *testing.T) {
			list, err := repo.ListByStartDate(ctx)
			require.NoError(t, err)
			require.Len(t, list, 2)
			assert.Equal(t, newer.ID, list[0].ID)
			assert.Equal(t, older.ID, list[1].ID)
		})

		t.Run("BlankTitleRejected", func(t *testing.T) {
			c := testutil.NewCampaign("   ", time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), 3)
			assert.Error(t, repo.Save(ctx, c))
		})

		t.Run("DeleteCascade", func(t *testing.T) {
			_, err := fixtures.CreateTestSelections(older.ID, "42", 10, "1", "2")
			require.NoError(t, err)

			deleted, err := repo.DeleteCascade(ctx, older.ID)
			require.NoError(t, err)
			assert.True(t, deleted)

			items := repository.NewCampaignItemRepository(testDB.DB)
			count, err := items.CountByCampaign(ctx, older.ID)
			require.NoError(t, err)
			assert.Zero(t, count)

			deleted, err = repo.DeleteCascade(ctx, older.ID)
			require.NoError(t, err)
			assert.False(t, deleted)
		})

		return nil
	})
}

func TestCampaignItemRepositoryReplace(t *testing.T) {
	withDB(t, func(testDB *testutil.TestDB) error {
		repo := repository.NewCampaignItemRepository(testDB.DB)
		fixtures := testutil.NewTestFixtures(testDB)
		ctx := testutil.CreateTestContext()

		c, err := fixtures.CreateTestCampaign("Nowruz", time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC), 14)
		require.NoError(t, err)

		t.Run("ReplaceSwapsWholeSet", func(t *testing.T) {
			n, err := repo.ReplaceForVendor(ctx, c.ID, "42", []*models.CampaignItem{
				{ProductID: "b", DiscountPercent: 5},
				{ProductID: "a", ProductTitle: utils.ToPtr("Rug"), DiscountPercent: 10},
			})
			require.NoError(t, err)
			assert.Equal(t, int64(2), n)

			n, err = repo.ReplaceForVendor(ctx, c.ID, "42", []*models.CampaignItem{
				{ProductID: "c", DiscountPercent: 3},
			})
			require.NoError(t, err)
			assert.Equal(t, int64(1), n)

			rows, err := repo.ListByCampaignAndVendor(ctx, c.ID, "42")
			require.NoError(t, err)
			assert.Equal(t, []string{"c"}, productIDs(rows))
		})

		t.Run("ReplaceIsIdempotent", func(t *testing.T) {
			items := func() []*models.CampaignItem {
				return []*models.CampaignItem{{ProductID: "x", DiscountPercent: 7}, {ProductID: "y", DiscountPercent: 8}}
			}
			_, err := repo.ReplaceForVendor(ctx, c.ID, "7", items())
			require.NoError(t, err)
			n, err := repo.ReplaceForVendor(ctx, c.ID, "7", items())
			require.NoError(t, err)
			assert.Equal(t, int64(2), n)

			count, err := repo.Count(ctx, models.CampaignItemFilter{CampaignID: &c.ID, VendorID: utils.ToPtr("7")})
			require.NoError(t, err)
			assert.Equal(t, int64(2), count)
		})

		t.Run("ReplaceLeavesOtherVendors", func(t *testing.T) {
			_, err := repo.ReplaceForVendor(ctx, c.ID, "7", nil)
			require.NoError(t, err)

			rows, err := repo.ListByCampaignAndVendor(ctx, c.ID, "42")
			require.NoError(t, err)
			assert.Equal(t, []string{"c"}, productIDs(rows))
		})

		t.Run("FailedInsertRollsBackDelete", func(t *testing.T) {
			_, err := repo.ReplaceForVendor(ctx, c.ID, "42", []*models.CampaignItem{
				{ProductID: "ok", DiscountPercent: 10},
				{ProductID: strings.Repeat("z", 200), DiscountPercent: 10},
			})
			require.Error(t, err)

			rows, err := repo.ListByCampaignAndVendor(ctx, c.ID, "42")
			require.NoError(t, err)
			assert.Equal(t, []string{"c"}, productIDs(rows))
		})

		t.Run("UnknownCampaign", func(t *testing.T) {
			_, err := repo.ReplaceForVendor(ctx, 999999, "42", []*models.CampaignItem{{ProductID: "a", DiscountPercent: 10}})
			assert.Error(t, err)
		})

		t.Run("ListByCampaignOrder", func(t *testing.T) {
			_, err := repo.ReplaceForVendor(ctx, c.ID, "10", []*models.CampaignItem{
				{ProductID: "2", DiscountPercent: 4},
				{ProductID: "1", DiscountPercent: 4},
			})
			require.NoError(t, err)

			rows, err := repo.ListByCampaign(ctx, c.ID)
			require.NoError(t, err)
			require.Len(t, rows, 3)
			assert.Equal(t, "10", rows[0].VendorID)
			assert.Equal(t, "1", rows[0].ProductID)
			assert.Equal(t, "2", rows[1].ProductID)
			assert.Equal(t, "42", rows[2].VendorID)
			assert.False(t, rows[2].SelectedAt.IsZero())
		})

		return nil
	})
}
