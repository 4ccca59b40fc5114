package businessflow

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/amirphl/vendor-campaigns/app/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func item(pid, title, discount any) dto.RawSelectionItem {
	return dto.RawSelectionItem{ProductID: pid, Title: title, Discount: discount}
}

func TestValidateSelectionsCoercion(t *testing.T) {
	tests := []struct {
		name string
		in   dto.RawSelectionItem
		want Selection
	}{
		{"string fields", item(" 101 ", " Rug ", "5"), Selection{ProductID: "101", Title: "Rug", Discount: 5}},
		{"json numbers", item(json.Number("102"), nil, json.Number("7.5")), Selection{ProductID: "102", Discount: 7.5}},
		{"float id without trailing zero", item(103.0, "x", 10.0), Selection{ProductID: "103", Title: "x", Discount: 10}},
		{"json float id", item(json.Number("104.0"), "", json.Number("3")), Selection{ProductID: "104", Discount: 3}},
		{"clamped above 100", item("105", "", 250), Selection{ProductID: "105", Discount: 100}},
		{"infinite discount", item("106", "", "1e400"), Selection{ProductID: "106", Discount: 100}},
		{"large integer id", item(json.Number("123456789012345"), "", 3), Selection{ProductID: "123456789012345", Discount: 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ValidateSelections([]dto.RawSelectionItem{tt.in})
			require.NoError(t, err)
			require.Len(t, got, 1)
			assert.Equal(t, tt.want, got[0])
		})
	}
}

func TestValidateSelectionsSkipsEmptyProductIDs(t *testing.T) {
	got, err := ValidateSelections([]dto.RawSelectionItem{
		item(nil, "no id", 1),
		item("", "empty", 0),
		item("   ", "blank", 50),
		item(false, "false", 50),
		item(json.Number("0"), "zero", 0),
		item("7", "kept", 10),
	})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "7", got[0].ProductID)
}

func TestValidateSelectionsRejectsUnderMinimum(t *testing.T) {
	tests := []struct {
		name     string
		discount any
		want     float64
	}{
		{"below floor", 2.99, 2.99},
		{"zero", 0, 0},
		{"negative clamps to zero", -5, 0},
		{"unparseable string", "abc", 0},
		{"null", nil, 0},
		{"true is one", true, 1},
		{"nan", math.NaN(), 0},
		{"object", map[string]any{"v": 10}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ValidateSelections([]dto.RawSelectionItem{
				item("1", "ok", 10),
				item("2", "bad", tt.discount),
			})
			require.Error(t, err)
			assert.True(t, IsMinDiscountViolation(err))

			var mde *MinDiscountError
			require.ErrorAs(t, err, &mde)
			assert.Equal(t, []dto.InvalidDiscount{{ProductID: "2", Discount: tt.want}}, mde.Items)
		})
	}
}

func TestValidateSelectionsExactlyThreeIsAccepted(t *testing.T) {
	got, err := ValidateSelections([]dto.RawSelectionItem{item("1", "", 3)})
	require.NoError(t, err)
	assert.Equal(t, 3.0, got[0].Discount)

	got, err = ValidateSelections([]dto.RawSelectionItem{item("1", "", "3.0")})
	require.NoError(t, err)
	assert.Equal(t, 3.0, got[0].Discount)
}

func TestValidateSelectionsDedupSortCollapse(t *testing.T) {
	got, err := ValidateSelections([]dto.RawSelectionItem{
		item("20", "b", 10),
		item("10", "z", 15),
		item("20", "b", 10),
		item("10", "a", 15),
		item("10", "a", 5),
		item("30", "", 3),
	})
	require.NoError(t, err)

	assert.Equal(t, []Selection{
		{ProductID: "10", Title: "a", Discount: 5},
		{ProductID: "20", Title: "b", Discount: 10},
		{ProductID: "30", Title: "", Discount: 3},
	}, got)
}

func TestValidateSelectionsEmpty(t *testing.T) {
	got, err := ValidateSelections(nil)
	require.NoError(t, err)
	assert.Empty(t, got)
}
