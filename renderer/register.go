package renderer

import (
	"fmt"
	"strings"

	hledger "github.com/chiendo97/hledger-webapp"
)

// RegisterMarkdown renders an account register: one row per posting with
// the running balance after it.
func RegisterMarkdown(account string, rows []hledger.RegisterRow) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Register: %s\n\n", account)
	if len(rows) == 0 {
		fmt.Fprintf(&b, "No postings.\n")
		return b.String()
	}

	fmt.Fprintf(&b, "| Date | Description | Amount | Balance |\n")
	fmt.Fprintf(&b, "|:---|:---|---:|---:|\n")
	for _, row := range rows {
		fmt.Fprintf(&b, "| %s | %s | %s | %s |\n",
			row.Date, escapePipes(row.Description), row.Display, row.RunningStr)
	}
	return b.String()
}

// escapePipes keeps a user-written description from breaking the table row
// it is printed into.
func escapePipes(s string) string {
	return strings.ReplaceAll(s, "|", "\\|")
}
