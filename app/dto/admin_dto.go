package dto

// AdminSelectionItem is one product selection in the per-vendor admin view
type AdminSelectionItem struct {
	ProductID string  `json:"product_id"`
	Title     string  `json:"title"`
	Discount  float64 `json:"discount"`
}

// AdminSelectionsResponse groups a campaign's selections by vendor id
type AdminSelectionsResponse map[string][]AdminSelectionItem

// ExportFile is a rendered export ready to be sent as an attachment
type ExportFile struct {
	Filename    string
	ContentType string
	Data        []byte
}
