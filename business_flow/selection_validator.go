package businessflow

import (
	"encoding/json"
	"errors"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/amirphl/vendor-campaigns/app/dto"
	"github.com/amirphl/vendor-campaigns/utils"
)

// Selection is a validated product selection ready to be stored
type Selection struct {
	ProductID string
	Title     string
	Discount  float64
}

// ValidateSelections coerces raw items and enforces the discount floor.
// It returns *MinDiscountError when any item with a product id is under the floor.
// Accepted items are deduplicated, sorted by product id, discount then title, and
// collapsed to one entry per product id.
func ValidateSelections(raw []dto.RawSelectionItem) ([]Selection, error) {
	valid := make([]Selection, 0, len(raw))
	var invalid []dto.InvalidDiscount

	for _, it := range raw {
		pid := coerceProductID(it.ProductID)
		if pid == "" {
			continue
		}
		disc := clampDiscount(coerceDiscount(it.Discount))
		if disc < utils.MinDiscountPercent {
			invalid = append(invalid, dto.InvalidDiscount{ProductID: pid, Discount: disc})
			continue
		}
		valid = append(valid, Selection{ProductID: pid, Title: coerceTitle(it.Title), Discount: disc})
	}

	if len(invalid) > 0 {
		return nil, &MinDiscountError{Items: invalid}
	}

	seen := make(map[Selection]struct{}, len(valid))
	unique := valid[:0]
	for _, s := range valid {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		unique = append(unique, s)
	}

	sort.Slice(unique, func(i, j int) bool {
		a, b := unique[i], unique[j]
		if a.ProductID != b.ProductID {
			return a.ProductID < b.ProductID
		}
		if a.Discount != b.Discount {
			return a.Discount < b.Discount
		}
		return a.Title < b.Title
	})

	out := make([]Selection, 0, len(unique))
	for _, s := range unique {
		if n := len(out); n > 0 && out[n-1].ProductID == s.ProductID {
			continue
		}
		out = append(out, s)
	}
	return out, nil
}

// coerceProductID renders a raw id as a trimmed string; falsy values become ""
func coerceProductID(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(t)
	case bool:
		if !t {
			return ""
		}
		return "true"
	case json.Number:
		f, err := t.Float64()
		if err == nil && f == 0 {
			return ""
		}
		return numberString(t)
	case float64:
		if t == 0 || math.IsNaN(t) {
			return ""
		}
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		if t == 0 {
			return ""
		}
		return strconv.Itoa(t)
	default:
		return ""
	}
}

// numberString keeps integer literals verbatim and renders other numbers without a trailing .0
func numberString(n json.Number) string {
	s := n.String()
	if _, err := strconv.ParseInt(s, 10, 64); err == nil {
		return s
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return strings.TrimSpace(s)
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func coerceDiscount(v any) float64 {
	switch t := v.(type) {
	case json.Number:
		return parseDiscount(t.String())
	case float64:
		return t
	case int:
		return float64(t)
	case string:
		return parseDiscount(t)
	case bool:
		if t {
			return 1
		}
		return 0
	default:
		return 0
	}
}

// parseDiscount parses a numeric literal; out-of-range values keep their infinite sign
func parseDiscount(s string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0
	}
	return f
}

func clampDiscount(d float64) float64 {
	if math.IsNaN(d) {
		return 0
	}
	return math.Max(0, math.Min(utils.MaxDiscountPercent, d))
}

func coerceTitle(v any) string {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case json.Number:
		return numberString(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return ""
	}
}
