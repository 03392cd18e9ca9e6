package sales

import (
	"encoding/csv"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/Brighttier/Chatbot-Peptides-sub001/models"

	"github.com/pkg/errors"
)

// Export column order is a compatibility contract with the dashboard's
// spreadsheet tooling; do not reorder.
var exportHeader = []string{
	"Sale ID", "Date", "Customer Name", "Customer Phone", "Customer Instagram",
	"Channel", "Sale Amount", "Commission Rate", "Commission Amount", "Status",
	"Detection Method", "Rep Name", "Rep Phone", "Product Details", "Notes",
	"Verified By", "Verified At", "Conversation ID",
}

var exportEvidenceHeader = []string{"Keywords Found", "Message Count"}

// WriteCSV streams every sale as one CSV row (RFC 4180 quoting via
// encoding/csv). Free-text fields get literal commas replaced with
// semicolons per the export contract.
func (m *Manager) WriteCSV(w io.Writer, includeEvidence bool) error {
	var sales []models.Sale
	if err := m.db.Order("id asc").Find(&sales).Error; err != nil {
		return errors.Wrap(err, "query sales for export")
	}

	evidence := map[int64]models.SaleEvidence{}
	if includeEvidence {
		var rows []models.SaleEvidence
		if err := m.db.Find(&rows).Error; err != nil {
			return errors.Wrap(err, "query evidence for export")
		}
		for _, ev := range rows {
			evidence[ev.SaleID] = ev
		}
	}

	cw := csv.NewWriter(w)

	header := exportHeader
	if includeEvidence {
		header = append(append([]string{}, header...), exportEvidenceHeader...)
	}
	if err := cw.Write(header); err != nil {
		return errors.Wrap(err, "write csv header")
	}

	for _, s := range sales {
		row := exportRow(s)
		if includeEvidence {
			ev, ok := evidence[s.ID]
			if ok {
				row = append(row, scrubCommas(joinKeywords(ev.Matches())),
					strconv.Itoa(ev.MessageCount))
			} else {
				row = append(row, "", "0")
			}
		}
		if err := cw.Write(row); err != nil {
			return errors.Wrap(err, "write csv row")
		}
	}

	cw.Flush()
	return errors.Wrap(cw.Error(), "flush csv")
}

func exportRow(s models.Sale) []string {
	verifiedAt := ""
	if s.VerifiedAt != nil {
		verifiedAt = s.VerifiedAt.Format(time.RFC3339)
	}
	return []string{
		strconv.FormatInt(s.ID, 10),
		s.SaleDate.Format("2006-01-02"),
		scrubCommas(s.CustomerName),
		scrubCommas(s.CustomerPhone),
		scrubCommas(s.CustomerInstagram),
		s.Channel,
		formatAmount(s.SaleAmount),
		formatRate(s.CommissionRate),
		formatAmount(s.CommissionAmount),
		s.Status,
		s.DetectionMethod,
		scrubCommas(s.RepName),
		scrubCommas(s.RepPhoneNumber),
		scrubCommas(s.ProductDetails),
		scrubCommas(s.Notes),
		scrubCommas(s.VerifiedBy),
		verifiedAt,
		strconv.FormatInt(s.ConversationID, 10),
	}
}

func joinKeywords(matches []models.KeywordMatch) string {
	kws := make([]string, 0, len(matches))
	for _, m := range matches {
		kws = append(kws, m.Keyword)
	}
	return strings.Join(kws, "; ")
}

func scrubCommas(s string) string {
	return strings.ReplaceAll(s, ",", ";")
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// formatRate keeps the configured rate's full precision; only the money
// columns are fixed at cents.
func formatRate(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
