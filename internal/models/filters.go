package models

// Filters narrows the complaints list. Nil fields mean "all" and are
// sent as JSON null, which the API treats as no filter.
type Filters struct {
	Status   *string `json:"status"`
	BranchID *int    `json:"branch_id"`
}

// Pagination is the envelope the server returns alongside each list
// query. The client never computes these values locally.
type Pagination struct {
	CurrentPage int `json:"current_page"`
	LastPage    int `json:"last_page"`
	PerPage     int `json:"per_page"`
	Total       int `json:"total"`
}
