package output

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/crucial707/asset-registry/internal/models"
	"github.com/jedib0t/go-pretty/v6/table"
)

const auditTimeLayout = "2006-01-02 15:04:05"

// RenderTable writes headers and rows to w as a light-style table with a
// count footer.
func RenderTable(w io.Writer, headers []string, rows [][]interface{}) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)

	header := make(table.Row, 0, len(headers))
	for _, h := range headers {
		header = append(header, h)
	}
	t.AppendHeader(header)
	for _, row := range rows {
		t.AppendRow(table.Row(row))
	}
	t.AppendFooter(table.Row{"Total", len(rows)})

	t.Render()
}

// Assets renders assets one per row, with "-" for absent optional fields.
func Assets(w io.Writer, list []models.Asset) {
	rows := make([][]interface{}, 0, len(list))
	for _, a := range list {
		date := "-"
		if a.Date != nil {
			date = a.Date.String()
		}
		rows = append(rows, []interface{}{
			a.ID, a.Location, a.SerialNumber, a.AssetTag, a.Status, date, orDash(a.IP), a.SignedTerm,
		})
	}
	RenderTable(w,
		[]string{"ID", "Location", "Serial Number", "Asset Tag", "Status", "Date", "IP", "Signed Term"},
		rows)
}

// Audit renders audit entries in the order given.
func Audit(w io.Writer, entries []models.AuditEntry) {
	rows := make([][]interface{}, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []interface{}{
			e.Seq, e.Action, e.AssetID, e.CreatedAt.UTC().Format(auditTimeLayout), e.RequestID,
		})
	}
	RenderTable(w, []string{"Seq", "Action", "Asset ID", "At (UTC)", "Request ID"}, rows)
}

// JSON writes v as indented JSON followed by a newline.
func JSON(w io.Writer, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(b))
	return err
}

func orDash(s *string) string {
	if s == nil {
		return "-"
	}
	return *s
}
