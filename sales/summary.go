package sales

import (
	"sort"
	"time"

	"github.com/Brighttier/Chatbot-Peptides-sub001/models"

	"github.com/pkg/errors"
)

// GroupSummary is one by-channel or by-rep bucket. Count covers every sale
// in the bucket; the monetary totals cover verified sales only, so bucket
// totals always sum to the overall totals.
type GroupSummary struct {
	Key             string  `json:"key"`
	Count           int64   `json:"count"`
	TotalSales      float64 `json:"totalSales"`
	TotalCommission float64 `json:"totalCommission"`
}

// Summary is the period report behind GET /sales/summary.
type Summary struct {
	StartDate time.Time `json:"startDate"`
	EndDate   time.Time `json:"endDate"`

	// Recognized totals: verified sales only. Rejected sales never count
	// toward money, but they do show up in CountsByStatus.
	TotalSales      float64 `json:"totalSales"`
	TotalCommission float64 `json:"totalCommission"`

	CountsByStatus map[string]int64 `json:"countsByStatus"`
	ByChannel      []GroupSummary   `json:"byChannel"`
	ByRep          []GroupSummary   `json:"byRep"`
}

// Summarize aggregates sales whose SaleDate falls within [start, end],
// both bounds inclusive. Callers pass day boundaries (start of day, end of
// day) so plain YYYY-MM-DD ranges behave as expected. Pure read.
func (m *Manager) Summarize(start, end time.Time) (*Summary, error) {
	var sales []models.Sale
	if err := m.db.
		Where("sale_date >= ? AND sale_date <= ?", start, end).
		Find(&sales).Error; err != nil {
		return nil, errors.Wrap(err, "query sales by date range")
	}

	sum := &Summary{
		StartDate:      start,
		EndDate:        end,
		CountsByStatus: map[string]int64{},
	}

	byChannel := map[string]*GroupSummary{}
	byRep := map[string]*GroupSummary{}

	for _, s := range sales {
		sum.CountsByStatus[s.Status]++

		ch := upsertGroup(byChannel, s.Channel)
		rep := upsertGroup(byRep, repKey(s))
		ch.Count++
		rep.Count++

		if s.Status != models.SALE_STATUS_VERIFIED {
			continue
		}

		sum.TotalSales += s.SaleAmount
		sum.TotalCommission += s.CommissionAmount
		ch.TotalSales += s.SaleAmount
		ch.TotalCommission += s.CommissionAmount
		rep.TotalSales += s.SaleAmount
		rep.TotalCommission += s.CommissionAmount
	}

	sum.TotalSales = RoundCents(sum.TotalSales)
	sum.TotalCommission = RoundCents(sum.TotalCommission)
	sum.ByChannel = sortedGroups(byChannel)
	sum.ByRep = sortedGroups(byRep)

	return sum, nil
}

func repKey(s models.Sale) string {
	if s.RepName != "" {
		return s.RepName
	}
	if s.RepPhoneNumber != "" {
		return s.RepPhoneNumber
	}
	return "unassigned"
}

func upsertGroup(groups map[string]*GroupSummary, key string) *GroupSummary {
	if g, ok := groups[key]; ok {
		return g
	}
	g := &GroupSummary{Key: key}
	groups[key] = g
	return g
}

func sortedGroups(groups map[string]*GroupSummary) []GroupSummary {
	out := make([]GroupSummary, 0, len(groups))
	for _, g := range groups {
		g.TotalSales = RoundCents(g.TotalSales)
		g.TotalCommission = RoundCents(g.TotalCommission)
		out = append(out, *g)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Key < out[j].Key
	})
	return out
}
