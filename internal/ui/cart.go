package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ekinsoft/vitrin/internal/checkout"
	"github.com/ekinsoft/vitrin/internal/store"
)

// renderCart renders the unified cart view.
func (m Model) renderCart() string {
	styles := m.theme.Styles()
	var b strings.Builder

	title := "Cart"
	if !m.cartSynced {
		title += " · local"
	}
	b.WriteString(styles.Title.Render(title))
	b.WriteString("\n")

	if len(m.cartLines) == 0 {
		b.WriteString(styles.MutedText.Render("  Your cart is empty."))
		b.WriteString("\n")
		return b.String()
	}

	nameWidth := 36
	for i, line := range m.cartLines {
		row := fmt.Sprintf("%-*s  x%-3d %10s",
			nameWidth, truncate(lineLabel(line), nameWidth),
			line.Qty,
			m.lineTotal(line),
		)
		if i == m.cartSel {
			b.WriteString(styles.Selected.Render("> " + row))
		} else {
			b.WriteString("  " + styles.Text.Render(row))
		}
		b.WriteString("\n")
	}

	totals := checkout.ComputeTotals(m.cartLines)
	b.WriteString("\n")
	b.WriteString("  " + styles.MutedText.Render("Subtotal ") + styles.Text.Render(m.formatAmount(totals.Subtotal)))
	b.WriteString("\n")
	shipping := m.formatAmount(totals.Shipping)
	if totals.Shipping == 0 {
		shipping = "free"
	}
	b.WriteString("  " + styles.MutedText.Render("Shipping ") + styles.Text.Render(shipping))
	b.WriteString("\n")
	b.WriteString("  " + styles.MutedText.Render("Total    ") + styles.AccentText.Render(m.formatAmount(totals.Total)))
	b.WriteString("\n")

	return b.String()
}

// lineLabel names a cart line. Guest lines carry no product name, only the
// id persisted locally.
func lineLabel(line store.Line) string {
	if line.Name != "" {
		return line.Name
	}
	return fmt.Sprintf("product #%d", line.ProductID)
}

func (m Model) lineTotal(line store.Line) string {
	price := line.Price.Float()
	if price == 0 {
		return "-"
	}
	return m.formatAmount(price * float64(line.Qty))
}

func (m Model) selectedLine() *store.Line {
	if m.cartSel < 0 || m.cartSel >= len(m.cartLines) {
		return nil
	}
	return &m.cartLines[m.cartSel]
}

// handleCartKey processes keyboard input for the cart view.
func (m Model) handleCartKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Down):
		if m.cartSel < len(m.cartLines)-1 {
			m.cartSel++
		}
		return m, nil

	case key.Matches(msg, m.keys.Up):
		if m.cartSel > 0 {
			m.cartSel--
		}
		return m, nil

	case key.Matches(msg, m.keys.IncQty):
		line := m.selectedLine()
		if line == nil {
			return m, nil
		}
		id, qty := line.ProductID, line.Qty+1
		return m, cartActionCmd("quantity updated", func() bool {
			return m.carts.UpdateQty(m.ctx, id, qty)
		})

	case key.Matches(msg, m.keys.DecQty):
		line := m.selectedLine()
		if line == nil {
			return m, nil
		}
		if line.Qty <= 1 {
			// Quantities floor at one; removal is explicit.
			return m, nil
		}
		id, qty := line.ProductID, line.Qty-1
		return m, cartActionCmd("quantity updated", func() bool {
			return m.carts.UpdateQty(m.ctx, id, qty)
		})

	case key.Matches(msg, m.keys.Remove):
		line := m.selectedLine()
		if line == nil {
			return m, nil
		}
		id := line.ProductID
		note := "removed " + truncate(lineLabel(*line), 24)
		return m, cartActionCmd(note, func() bool {
			return m.carts.Remove(m.ctx, id)
		})

	case key.Matches(msg, m.keys.ClearAll):
		if len(m.cartLines) == 0 {
			return m, nil
		}
		return m, cartActionCmd("cart cleared", func() bool {
			return m.carts.Clear(m.ctx)
		})

	case key.Matches(msg, m.keys.Checkout):
		if len(m.cartLines) == 0 {
			m.setError("your cart is empty")
			return m, nil
		}
		m.currentView = ViewCheckout
		return m, tea.Batch(m.focusCheckoutInput(0), m.reloadCurrent())
	}

	return m, nil
}
