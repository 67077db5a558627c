package query

import (
	"fmt"

	"github.com/ravshan77/shikoyatlar-web/internal/models"
)

// Request-key prefixes. Keys embed every parameter that changes the
// result, so a late response for an old page/filter combination can
// never overwrite the entry for a new one.
const (
	KeyBranches         = "branches"
	ComplaintsPrefix    = "complaints"
	ComplaintShowPrefix = "complaint"
)

// ComplaintsKey builds the cache key for one page of the complaints
// list under the given filters.
func ComplaintsKey(page int, f models.Filters) string {
	status := "all"
	if f.Status != nil {
		status = *f.Status
	}
	branch := "all"
	if f.BranchID != nil {
		branch = fmt.Sprintf("%d", *f.BranchID)
	}
	return fmt.Sprintf("%s/p=%d/s=%s/b=%s", ComplaintsPrefix, page, status, branch)
}

// ComplaintKey builds the cache key for a single complaint lookup.
func ComplaintKey(id int) string {
	return fmt.Sprintf("%s/%d", ComplaintShowPrefix, id)
}
