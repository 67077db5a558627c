package models

// Session identifies the authenticated call-center worker. Token is set
// only when the API runs in the bearer-token auth mode.
type Session struct {
	WorkerID   int    `json:"worker_id" yaml:"worker_id"`
	WorkerName string `json:"worker_name" yaml:"worker_name"`
	Token      string `json:"token,omitempty" yaml:"token,omitempty"`
}
