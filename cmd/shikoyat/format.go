package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/ravshan77/shikoyatlar-web/internal/format"
	"github.com/ravshan77/shikoyatlar-web/internal/models"
)

// printComplaintTable renders one page of complaints plus a pagination
// footer.
func printComplaintTable(out io.Writer, list []models.Complaint, pg models.Pagination) {
	if len(list) == 0 {
		fmt.Fprintln(out, "No complaints found.")
		return
	}

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tSTATUS\tCLIENT\tPHONE\tBRANCH\tTEXT\tDATE")
	for _, c := range list {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t%s\n",
			c.ID,
			format.StatusLabel(c.Status),
			c.ClientName,
			c.ClientPhoneOne,
			c.BranchName,
			format.Truncate(c.ComplaintText, 40),
			c.CreatedAt,
		)
	}
	tw.Flush()

	if pg.LastPage > 1 {
		fmt.Fprintf(out, "\nPage %d of %d (%d total)  [%s]\n",
			pg.CurrentPage, pg.LastPage, pg.Total,
			strings.Join(format.PageWindow(pg.CurrentPage, pg.LastPage), " "))
	}
}

// printComplaintDetail renders the full record.
func printComplaintDetail(out io.Writer, c models.Complaint) {
	fmt.Fprintf(out, "Complaint #%d — %s\n", c.ID, format.StatusLabel(c.Status))
	fmt.Fprintf(out, "  Client:  %s\n", c.ClientName)
	fmt.Fprintf(out, "  Phone:   %s\n", c.ClientPhoneOne)
	if c.ClientPhoneTwo != nil && *c.ClientPhoneTwo != "" {
		fmt.Fprintf(out, "  Phone 2: %s\n", *c.ClientPhoneTwo)
	}
	fmt.Fprintf(out, "  Branch:  %s\n", c.BranchName)
	if c.RentNumber != "" {
		fmt.Fprintf(out, "  Rent:    %s\n", c.RentNumber)
	}
	fmt.Fprintf(out, "  Worker:  %s\n", c.WorkerName)
	fmt.Fprintf(out, "  Date:    %s\n", c.CreatedAt)
	fmt.Fprintf(out, "\n  %s\n", c.ComplaintText)
	if len(c.Images) > 0 {
		fmt.Fprintln(out, "\n  Images:")
		for _, url := range c.Images {
			fmt.Fprintf(out, "    %s\n", url)
		}
	}
}

// parseFilters builds the list filters from CLI flag values. An empty
// status or zero branch means no constraint on that axis.
func parseFilters(status string, branch int) (models.Filters, error) {
	var f models.Filters
	switch status {
	case "":
	case models.StatusInProgress, models.StatusCompleted:
		f.Status = &status
	default:
		return f, fmt.Errorf("status must be %q or %q", models.StatusInProgress, models.StatusCompleted)
	}
	if branch > 0 {
		f.BranchID = &branch
	}
	return f, nil
}
