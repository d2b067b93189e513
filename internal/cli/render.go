package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"gopkg.in/yaml.v3"

	"github.com/rshade/adminui/internal/members"
	"github.com/rshade/adminui/internal/pagination"
)

// Output formats accepted by --output.
const (
	OutputTable = "table"
	OutputJSON  = "json"
	OutputYAML  = "yaml"
)

// tabPadding is the minimum column padding for tabwriter output.
const tabPadding = 2

// membersOutput is the json/yaml document printed by list.
type membersOutput struct {
	Query      string           `json:"query,omitempty" yaml:"query,omitempty"`
	Members    []members.Record `json:"members"         yaml:"members"`
	Pagination pagination.Meta  `json:"pagination"      yaml:"pagination"`
}

func isValidOutputFormat(format string) bool {
	switch format {
	case OutputTable, OutputJSON, OutputYAML:
		return true
	default:
		return false
	}
}

// renderMembers writes one page of records in format.
func renderMembers(w io.Writer, format string, out membersOutput) error {
	switch format {
	case OutputJSON:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(out)
	case OutputYAML:
		encoder := yaml.NewEncoder(w)
		defer encoder.Close()
		return encoder.Encode(out)
	case OutputTable:
		return renderMembersTable(w, out)
	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}
}

// renderMembersTable writes records as an aligned plain text table followed
// by a page summary line.
func renderMembersTable(w io.Writer, out membersOutput) error {
	tw := tabwriter.NewWriter(w, 0, 0, tabPadding, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tEMAIL\tROLE")
	fmt.Fprintln(tw, "--\t----\t-----\t----")
	for _, r := range out.Members {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", r.ID, r.Name, r.Email, r.Role)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	meta := out.Pagination
	summary := fmt.Sprintf("Page %d of %d (%d members)", meta.CurrentPage, meta.TotalPages, meta.TotalItems)
	if out.Query != "" {
		summary += fmt.Sprintf(" matching %q", out.Query)
	}
	if len(out.Members) == 0 {
		summary = "No members. " + summary
	}
	_, err := fmt.Fprintln(w, "\n"+strings.TrimSpace(summary))
	return err
}
