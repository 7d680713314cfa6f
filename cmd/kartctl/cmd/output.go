package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	domain "github.com/campuskart/campuskart/pkg/types"
)

// tabWriter wraps tabwriter with error tracking.
type tabWriter struct {
	*tabwriter.Writer
	err error
}

func newTabWriter(w io.Writer) *tabWriter {
	return &tabWriter{Writer: tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)}
}

func (tw *tabWriter) writef(format string, args ...any) {
	if tw.err != nil {
		return
	}
	_, tw.err = fmt.Fprintf(tw.Writer, format, args...)
}

func (tw *tabWriter) finish() error {
	if tw.err != nil {
		return tw.err
	}
	return tw.Flush()
}

func printProductsTable(products []domain.Product) error {
	tw := newTabWriter(os.Stdout)
	tw.writef("ID\tTITLE\tPRICE\tCONDITION\tSELLER\tSTATUS\n")
	for i := range products {
		p := &products[i]
		tw.writef("%s\t%s\t$%.2f\t%s\t%s\t%s\n",
			p.ID,
			truncate(p.Title, 40),
			p.Price,
			p.Condition,
			p.SellerName,
			statusBadge(p.Status),
		)
	}
	return tw.finish()
}

func printProductDetail(p *domain.Product) error {
	tw := newTabWriter(os.Stdout)
	tw.writef("ID:\t%s\n", p.ID)
	tw.writef("Title:\t%s\n", p.Title)
	if p.Description != "" {
		tw.writef("Description:\t%s\n", p.Description)
	}
	tw.writef("Price:\t$%.2f\n", p.Price)
	tw.writef("Condition:\t%s\n", p.Condition)
	tw.writef("Seller:\t%s <%s>\n", p.SellerName, p.SellerEmail)
	tw.writef("Status:\t%s\n", statusBadge(p.Status))
	tw.writef("Listed:\t%s\n", p.CreatedAt.Format("2006-01-02 15:04"))
	return tw.finish()
}

func printMessagesTable(msgs []domain.Message) error {
	tw := newTabWriter(os.Stdout)
	tw.writef("WHEN\tFROM\tMESSAGE\n")
	for i := range msgs {
		m := &msgs[i]
		tw.writef("%s\t%s\t%s\n",
			m.CreatedAt.Format("2006-01-02 15:04"),
			m.SenderID,
			truncate(m.Body, 60),
		)
	}
	return tw.finish()
}

// statusBadge renders sold listings loudly, matching how the grid
// shows them.
func statusBadge(s domain.Status) string {
	if s.Terminal() {
		return strings.ToUpper(string(s))
	}
	return string(s)
}

func outputJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
