package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ekinsoft/vitrin/internal/api"
)

func (m *Model) initSearchInput() {
	ti := textinput.New()
	ti.Placeholder = "search products"
	ti.CharLimit = 64
	ti.Width = 32
	m.searchInput = ti
}

// renderCatalog renders the product listing.
func (m Model) renderCatalog() string {
	styles := m.theme.Styles()
	var b strings.Builder

	title := "Catalog"
	if m.searchQuery != "" {
		title += fmt.Sprintf(" · %q", m.searchQuery)
	}
	if m.totalCount > 0 {
		title += fmt.Sprintf(" · %d products · page %d", m.totalCount, m.page)
	}
	b.WriteString(styles.Title.Render(title))
	b.WriteString("\n")

	if m.searching {
		b.WriteString("  " + m.searchInput.View())
		b.WriteString("\n")
	}

	if len(m.products) == 0 {
		b.WriteString(styles.MutedText.Render("  No products."))
		b.WriteString("\n")
		return b.String()
	}

	nameWidth := 36
	for i, p := range m.products {
		heart := "  "
		if m.wished[p.ID] {
			heart = styles.DangerText.Render("♥") + " "
		}

		stock := styles.MutedText.Render(fmt.Sprintf("%3d in stock", p.Stock))
		if p.Stock == 0 {
			stock = styles.DangerText.Render("   sold out")
		}

		rating := ""
		if p.AverageRating > 0 {
			rating = styles.WarningText.Render(fmt.Sprintf("★%.1f", p.AverageRating))
		}

		row := fmt.Sprintf("%s%-*s %10s  %s  %s",
			heart,
			nameWidth, truncate(p.Name, nameWidth),
			m.formatMoney(p.Price),
			stock,
			rating,
		)

		if i == m.catalogSel {
			b.WriteString(styles.Selected.Render("> " + row))
		} else {
			b.WriteString("  " + styles.Text.Render(row))
		}
		b.WriteString("\n")
	}

	if sel := m.selectedProduct(); sel != nil && sel.Description != "" {
		b.WriteString("\n")
		b.WriteString("  " + styles.FaintText.Render(truncate(sel.Description, m.width-4)))
		b.WriteString("\n")
	}

	return b.String()
}

func (m Model) selectedProduct() *api.Product {
	if m.catalogSel < 0 || m.catalogSel >= len(m.products) {
		return nil
	}
	return &m.products[m.catalogSel]
}

// handleCatalogKey processes keyboard input for the catalog view.
func (m Model) handleCatalogKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Down):
		if m.catalogSel < len(m.products)-1 {
			m.catalogSel++
		}
		return m, nil

	case key.Matches(msg, m.keys.Up):
		if m.catalogSel > 0 {
			m.catalogSel--
		}
		return m, nil

	case key.Matches(msg, m.keys.Search):
		m.searching = true
		m.searchInput.SetValue(m.searchQuery)
		return m, m.searchInput.Focus()

	case key.Matches(msg, m.keys.NextPage):
		if !m.hasNext {
			return m, nil
		}
		m.page++
		return m, m.reloadCurrent()

	case key.Matches(msg, m.keys.PrevPage):
		if !m.hasPrev || m.page <= 1 {
			return m, nil
		}
		m.page--
		return m, m.reloadCurrent()

	case key.Matches(msg, m.keys.AddCart):
		sel := m.selectedProduct()
		if sel == nil {
			return m, nil
		}
		id := sel.ID
		note := "added " + truncate(sel.Name, 24) + " to cart"
		return m, cartActionCmd(note, func() bool {
			return m.carts.Add(m.ctx, id, 1)
		})

	case key.Matches(msg, m.keys.Wish):
		sel := m.selectedProduct()
		if sel == nil {
			return m, nil
		}
		id := sel.ID
		note := "added " + truncate(sel.Name, 24) + " to wishlist"
		if m.wished[id] {
			note = "removed " + truncate(sel.Name, 24) + " from wishlist"
		}
		return m, cartActionCmd(note, func() bool {
			return m.wishes.Toggle(m.ctx, id)
		})
	}

	return m, nil
}

// handleSearchKey processes keyboard input while the search box is focused.
func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.searching = false
		m.searchInput.Blur()
		m.searchQuery = strings.TrimSpace(m.searchInput.Value())
		m.page = 1
		m.catalogSel = 0
		return m, m.reloadCurrent()

	case "esc":
		m.searching = false
		m.searchInput.Blur()
		return m, nil

	case "ctrl+c":
		return m, tea.Quit
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	return m, cmd
}
