package models

// Pagination is the server-side page descriptor attached to list responses.
type Pagination struct {
	CurrentPage int `json:"current_page"`
	PerPage     int `json:"per_page"`
	Total       int `json:"total"`
	LastPage    int `json:"last_page"`
}

func (p *Pagination) HasNext() bool {
	return p != nil && p.CurrentPage < p.LastPage
}
