package models

// Branch is a business location used to tag and filter complaints.
// Reference data: fetched once per session and cached.
type Branch struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}
