package dto

// APIResponse is the envelope returned by every endpoint.
type APIResponse struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    interface{}     `json:"data,omitempty"`
	Errors  interface{}     `json:"errors,omitempty"`
	Meta    *PaginationMeta `json:"meta,omitempty"`
}

// PaginationMeta describes a length-aware page of results.
type PaginationMeta struct {
	CurrentPage int        `json:"current_page"`
	LastPage    int        `json:"last_page"`
	PerPage     int        `json:"per_page"`
	Total       int64      `json:"total"`
	From        *int       `json:"from"`
	To          *int       `json:"to"`
	Links       []PageLink `json:"links"`
}

// PageLink is one entry of the pagination link list. URL is null for disabled links.
type PageLink struct {
	URL    *string `json:"url"`
	Label  string  `json:"label"`
	Active bool    `json:"active"`
}

// NewSuccessResponse wraps data in a successful envelope.
func NewSuccessResponse(data interface{}, message string) APIResponse {
	return APIResponse{Success: true, Message: message, Data: data}
}

// NewPaginatedResponse wraps a page of rows and its metadata.
func NewPaginatedResponse(data interface{}, meta PaginationMeta, message string) APIResponse {
	return APIResponse{Success: true, Message: message, Data: data, Meta: &meta}
}

// NewErrorResponse builds a failed envelope. errs is omitted when nil.
func NewErrorResponse(message string, errs interface{}) APIResponse {
	return APIResponse{Success: false, Message: message, Errors: errs}
}

// GroupedCount is one bucket of a grouped aggregate.
type GroupedCount struct {
	Name  string `json:"name"`
	Total int64  `json:"total"`
}

// ChartResponse is the study program chart payload.
type ChartResponse struct {
	Labels      []string  `json:"labels"`
	Data        []int64   `json:"data"`
	Percentages []float64 `json:"percentages"`
	Colors      []string  `json:"colors"`
	Total       int64     `json:"total"`
}

// ImportResult reports a successful spreadsheet import.
type ImportResult struct {
	Imported int    `json:"imported"`
	Archive  string `json:"archive,omitempty"`
}

// DashboardSummary holds record totals keyed by entity name.
type DashboardSummary map[string]int64
