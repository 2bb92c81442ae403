package types

type ResponsePagination struct {
	Status     bool        `json:"status"`
	Body       interface{} `json:"body,omitempty"`
	Message    string      `json:"message"`
	TotalCount uint64      `json:"total_count"`
	Page       uint64      `json:"page"`
	Limit      uint64      `json:"limit"`
	TotalPages uint64      `json:"total_pages"`
}
