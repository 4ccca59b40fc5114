package dto

// MyProductsRequest carries the raw pagination query of the catalog pass-through
type MyProductsRequest struct {
	Page    string `query:"page"`
	PerPage string `query:"per_page"`
}

// EmptyCatalogResponse is served in place of an unavailable upstream catalog page
type EmptyCatalogResponse struct {
	Data    []any `json:"data"`
	Total   int   `json:"total"`
	Page    int   `json:"page"`
	PerPage int   `json:"per_page"`
}
