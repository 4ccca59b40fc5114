package dto

// SelectProductsRequest is the body of a selection replace. Item fields arrive untyped
// from the browser and are coerced by the selection validator
type SelectProductsRequest struct {
	Items []RawSelectionItem `json:"items"`
}

// RawSelectionItem is a single unvalidated selection
type RawSelectionItem struct {
	ProductID any `json:"product_id"`
	Title     any `json:"title"`
	Discount  any `json:"discount"`
}

// SelectProductsResponse is returned when a selection set was stored
type SelectProductsResponse struct {
	OK    bool  `json:"ok"`
	Count int64 `json:"count"`
}

// InvalidDiscount names a selection rejected for being under the minimum discount
type InvalidDiscount struct {
	ProductID string  `json:"product_id"`
	Discount  float64 `json:"discount"`
}

// MinDiscountErrorResponse is returned when any selection is under the minimum discount
type MinDiscountErrorResponse struct {
	OK      bool              `json:"ok"`
	Error   string            `json:"error"`
	Message string            `json:"message"`
	Items   []InvalidDiscount `json:"items"`
}

// SelectionResponse is one stored selection of the current vendor
type SelectionResponse struct {
	ProductID string  `json:"product_id"`
	Discount  float64 `json:"discount"`
	Title     string  `json:"title"`
}
