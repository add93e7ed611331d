package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
)

// renderHelp renders the full-screen help overlay.
func (m Model) renderHelp() string {
	styles := m.theme.Styles()
	var b strings.Builder

	b.WriteString(styles.Title.Render("vitrin help"))
	b.WriteString("\n\n")

	section := func(name string, bindings ...key.Binding) {
		b.WriteString("  " + styles.AccentText.Render(name) + "\n")
		for _, binding := range bindings {
			h := binding.Help()
			b.WriteString(fmt.Sprintf("    %s  %s\n",
				styles.Text.Render(fmt.Sprintf("%-8s", h.Key)),
				styles.MutedText.Render(h.Desc)))
		}
		b.WriteString("\n")
	}

	section("Views",
		m.keys.Catalog, m.keys.Cart, m.keys.Wishlist, m.keys.Orders)
	section("Catalog",
		m.keys.Up, m.keys.Down, m.keys.Search, m.keys.PrevPage, m.keys.NextPage,
		m.keys.AddCart, m.keys.Wish)
	section("Cart",
		m.keys.IncQty, m.keys.DecQty, m.keys.Remove, m.keys.ClearAll, m.keys.Checkout)
	section("Session",
		m.keys.Login, m.keys.Logout)
	section("General",
		m.keys.Refresh, m.keys.Theme, m.keys.Back, m.keys.Quit)

	b.WriteString("  " + styles.FaintText.Render("press any key to close"))
	b.WriteString("\n")

	return b.String()
}
