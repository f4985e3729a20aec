// Package stats derives dashboard aggregates and kanban groupings from a
// client list snapshot. Every function is pure: callers fetch the full list
// once and recompute locally, there is no store or HTTP access here and no
// server endpoint exposes these numbers.
package stats

import (
	"time"

	"github.com/crmlite/crm-api/internal/core/domain"
)

// HistogramMonths is the size of the monthly-creation histogram window.
const HistogramMonths = 6

// Dashboard holds the aggregate counts shown on the dashboard cards.
type Dashboard struct {
	Total        int
	WithEmail    int
	WithPhone    int
	NewThisMonth int
}

// MonthBucket is a single column of the monthly-creation histogram.
type MonthBucket struct {
	Label string // short month name, e.g. "Aug"
	Year  int
	Month time.Month
	Count int
}

// Compute returns the dashboard aggregates for the given snapshot.
// NewThisMonth counts clients created in the calendar month containing now.
func Compute(clients []domain.Client, now time.Time) Dashboard {
	d := Dashboard{Total: len(clients)}
	for _, c := range clients {
		if c.Email != "" {
			d.WithEmail++
		}
		if c.Phone != "" {
			d.WithPhone++
		}
		if c.CreatedAt.Year() == now.Year() && c.CreatedAt.Month() == now.Month() {
			d.NewThisMonth++
		}
	}
	return d
}

// MonthlyHistogram buckets client creation over the last HistogramMonths
// calendar months, oldest first, ending with the month containing now.
// Clients created outside the window are ignored.
func MonthlyHistogram(clients []domain.Client, now time.Time) []MonthBucket {
	buckets := make([]MonthBucket, 0, HistogramMonths)
	index := make(map[string]int, HistogramMonths)
	for i := HistogramMonths - 1; i >= 0; i-- {
		m := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -i, 0)
		index[monthKey(m)] = len(buckets)
		buckets = append(buckets, MonthBucket{
			Label: m.Format("Jan"),
			Year:  m.Year(),
			Month: m.Month(),
		})
	}
	for _, c := range clients {
		if idx, ok := index[monthKey(c.CreatedAt)]; ok {
			buckets[idx].Count++
		}
	}
	return buckets
}

func monthKey(t time.Time) string {
	return t.Format("2006-01")
}

// KanbanColumns lists the user-visible pipeline columns in board order.
// INACTIVE is deliberately absent: soft-deleted clients never reach the board.
var KanbanColumns = []domain.ClientStatus{
	domain.StatusNew,
	domain.StatusFollowUp,
	domain.StatusClosed,
	domain.StatusLost,
}

// KanbanGroups partitions clients into the board columns. A missing or
// unrecognized status is displayed under FOLLOW_UP; the default is purely
// presentational and never written back.
func KanbanGroups(clients []domain.Client) map[domain.ClientStatus][]domain.Client {
	groups := make(map[domain.ClientStatus][]domain.Client, len(KanbanColumns))
	for _, col := range KanbanColumns {
		groups[col] = []domain.Client{}
	}
	for _, c := range clients {
		col := c.Status
		if !col.Known() {
			col = domain.StatusFollowUp
		}
		groups[col] = append(groups[col], c)
	}
	return groups
}
