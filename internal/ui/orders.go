package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ekinsoft/vitrin/internal/api"
)

// renderOrders renders the order history view.
func (m Model) renderOrders() string {
	styles := m.theme.Styles()
	var b strings.Builder

	b.WriteString(styles.Title.Render("Orders"))
	b.WriteString("\n")

	if m.accounts == nil || !m.accounts.Authenticated() {
		b.WriteString(styles.MutedText.Render("  Sign in to see your orders."))
		b.WriteString("\n")
		return b.String()
	}

	if len(m.orderRows) == 0 {
		b.WriteString(styles.MutedText.Render("  No orders yet."))
		b.WriteString("\n")
		return b.String()
	}

	for i, order := range m.orderRows {
		row := fmt.Sprintf("#%-6d %-12s %10s  %s",
			order.ID,
			order.Status,
			m.formatMoney(order.TotalPrice),
			truncate(order.CreatedAt, 19),
		)
		style := m.orderStyle(order.Status, styles)
		if i == m.orderSel {
			b.WriteString(styles.Selected.Render("> " + row))
		} else {
			b.WriteString("  " + style.Render(row))
		}
		b.WriteString("\n")
	}

	return b.String()
}

func (m Model) orderStyle(status string, styles Styles) lipgloss.Style {
	switch status {
	case api.OrderStatusDelivered:
		return styles.SuccessText
	case api.OrderStatusCancelled:
		return styles.FaintText
	case api.OrderStatusInTransit:
		return styles.WarningText
	default:
		return styles.Text
	}
}

func (m Model) selectedOrder() *api.Order {
	if m.orderSel < 0 || m.orderSel >= len(m.orderRows) {
		return nil
	}
	return &m.orderRows[m.orderSel]
}

// handleOrdersKey processes keyboard input for the orders view.
func (m Model) handleOrdersKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Down):
		if m.orderSel < len(m.orderRows)-1 {
			m.orderSel++
		}
		return m, nil

	case key.Matches(msg, m.keys.Up):
		if m.orderSel > 0 {
			m.orderSel--
		}
		return m, nil

	case key.Matches(msg, m.keys.Remove):
		order := m.selectedOrder()
		if order == nil {
			return m, nil
		}
		if order.Status != api.OrderStatusProcessing {
			m.setError("only processing orders can be cancelled")
			return m, nil
		}
		return m, cancelOrderCmd(m.ctx, m.client, order.ID)
	}

	return m, nil
}
