package models

// Complaint statuses as reported by the API.
const (
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
)

// Complaint is a customer complaint record as returned by the API.
type Complaint struct {
	ID             int      `json:"id"`
	Status         string   `json:"status"`
	ClientName     string   `json:"client_name"`
	ClientPhoneOne string   `json:"client_phone_one"`
	ClientPhoneTwo *string  `json:"client_phone_two"`
	ComplaintText  string   `json:"complaint_text"`
	RentNumber     string   `json:"rent_number"`
	BranchID       int      `json:"branch_id"`
	BranchName     string   `json:"branch_name"`
	Images         []string `json:"images"`
	WorkerID       int      `json:"worker_id"`
	WorkerName     string   `json:"worker_name"`
	CreatedAt      string   `json:"created_at"`
}

// Completed reports whether the complaint is closed. Completed complaints
// are immutable from the client's perspective.
func (c Complaint) Completed() bool {
	return c.Status == StatusCompleted
}

// ComplaintRequest is the payload for creating or updating a complaint.
// Images carries server-assigned URLs only — raw file data never travels
// with the record.
type ComplaintRequest struct {
	ClientName     string   `json:"client_name"`
	ClientPhoneOne string   `json:"client_phone_one"`
	ClientPhoneTwo *string  `json:"client_phone_two"`
	ComplaintText  string   `json:"complaint_text"`
	RentNumber     string   `json:"rent_number"`
	BranchID       int      `json:"branch_id"`
	Images         []string `json:"images"`
	WorkerID       int      `json:"worker_id"`
	WorkerName     string   `json:"worker_name"`
}
