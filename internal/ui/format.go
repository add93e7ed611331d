package ui

import (
	"fmt"
	"strconv"

	"github.com/ekinsoft/vitrin/internal/api"
)

// truncate truncates a string to max length with ellipsis.
func truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}
	if len(s) <= max {
		return s
	}
	if max <= 3 {
		return s[:max]
	}
	return s[:max-3] + "..."
}

// formatMoney renders a money value with the configured currency symbol.
func (m Model) formatMoney(v api.Money) string {
	return m.formatAmount(v.Float())
}

func (m Model) formatAmount(v float64) string {
	return m.currency + strconv.FormatFloat(v, 'f', 2, 64)
}

func formatOrderPlaced(order api.Order) string {
	if order.ID == 0 {
		return "order placed"
	}
	return fmt.Sprintf("order #%d placed", order.ID)
}
