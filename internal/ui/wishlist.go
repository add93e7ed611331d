package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ekinsoft/vitrin/internal/store"
)

// renderWishlist renders the wishlist view.
func (m Model) renderWishlist() string {
	styles := m.theme.Styles()
	var b strings.Builder

	title := "Wishlist"
	if !m.wishSynced {
		title += " · local"
	}
	b.WriteString(styles.Title.Render(title))
	b.WriteString("\n")

	if len(m.wishEntries) == 0 {
		b.WriteString(styles.MutedText.Render("  Your wishlist is empty."))
		b.WriteString("\n")
		return b.String()
	}

	nameWidth := 36
	for i, entry := range m.wishEntries {
		price := "-"
		if entry.Price.Float() > 0 {
			price = m.formatMoney(entry.Price)
		}
		row := fmt.Sprintf("%-*s %10s", nameWidth, truncate(entryLabel(entry), nameWidth), price)
		if i == m.wishSel {
			b.WriteString(styles.Selected.Render("> " + row))
		} else {
			b.WriteString("  " + styles.Text.Render(row))
		}
		b.WriteString("\n")
	}

	return b.String()
}

func entryLabel(entry store.Entry) string {
	if entry.Name != "" {
		return entry.Name
	}
	return fmt.Sprintf("product #%d", entry.ProductID)
}

func (m Model) selectedEntry() *store.Entry {
	if m.wishSel < 0 || m.wishSel >= len(m.wishEntries) {
		return nil
	}
	return &m.wishEntries[m.wishSel]
}

// handleWishlistKey processes keyboard input for the wishlist view.
func (m Model) handleWishlistKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Down):
		if m.wishSel < len(m.wishEntries)-1 {
			m.wishSel++
		}
		return m, nil

	case key.Matches(msg, m.keys.Up):
		if m.wishSel > 0 {
			m.wishSel--
		}
		return m, nil

	case key.Matches(msg, m.keys.AddCart):
		entry := m.selectedEntry()
		if entry == nil {
			return m, nil
		}
		id := entry.ProductID
		note := "added " + truncate(entryLabel(*entry), 24) + " to cart"
		return m, cartActionCmd(note, func() bool {
			return m.carts.Add(m.ctx, id, 1)
		})

	case key.Matches(msg, m.keys.Remove):
		entry := m.selectedEntry()
		if entry == nil {
			return m, nil
		}
		id := entry.ProductID
		note := "removed " + truncate(entryLabel(*entry), 24)
		return m, cartActionCmd(note, func() bool {
			return m.wishes.Remove(m.ctx, id)
		})
	}

	return m, nil
}
