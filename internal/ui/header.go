package ui

import (
	"fmt"
	"strings"
)

// renderHeader renders the top bar: logo, badges, session state and the
// offline indicator.
func (m Model) renderHeader() string {
	styles := m.theme.Styles()
	sep := "  "

	parts := []string{
		styles.Logo.Render("vitrin"),
		styles.MutedText.Render("Cart:") + " " + styles.Text.Render(fmt.Sprintf("%d", m.snapshot.CartCount)),
		styles.MutedText.Render("Wishlist:") + " " + styles.Text.Render(fmt.Sprintf("%d", m.snapshot.WishlistCount)),
	}

	if m.snapshot.Authenticated {
		who := m.snapshot.Username
		if who == "" {
			who = "signed in"
		}
		parts = append(parts, styles.SuccessText.Render("● "+who))
	} else {
		parts = append(parts, styles.MutedText.Render("guest"))
	}

	if m.snapshot.IsOffline() {
		parts = append(parts, styles.WarningText.Render("OFFLINE, showing local data"))
	}

	if m.status != "" {
		text := truncate(m.status, 60)
		if m.statusErr {
			parts = append(parts, styles.DangerText.Render("! ")+styles.DangerText.Render(text))
		} else {
			parts = append(parts, styles.AccentText.Render(text))
		}
	}

	return styles.Header.Width(m.width).Render(strings.Join(parts, sep))
}

// renderFooter renders the command hints bar for the active view.
func (m Model) renderFooter() string {
	styles := m.theme.Styles()

	type hint struct{ key, desc string }
	var hints []hint

	switch m.currentView {
	case ViewCart:
		hints = []hint{
			{"j/k", "navigate"},
			{"+/-", "quantity"},
			{"x", "remove"},
			{"C", "clear"},
			{"o", "checkout"},
			{"1", "catalog"},
			{"?", "more"},
		}
	case ViewWishlist:
		hints = []hint{
			{"j/k", "navigate"},
			{"a", "to cart"},
			{"x", "remove"},
			{"1", "catalog"},
			{"?", "more"},
		}
	case ViewOrders:
		hints = []hint{
			{"j/k", "navigate"},
			{"x", "cancel order"},
			{"r", "refresh"},
			{"1", "catalog"},
			{"?", "more"},
		}
	case ViewLogin:
		if m.registering {
			hints = []hint{
				{"Tab", "next field"},
				{"Enter", "create account"},
				{"Ctrl+r", "sign in instead"},
				{"Esc", "back"},
			}
		} else {
			hints = []hint{
				{"Tab", "next field"},
				{"Enter", "sign in"},
				{"Ctrl+r", "register"},
				{"Esc", "back"},
			}
		}
	case ViewCheckout:
		hints = []hint{
			{"Tab", "next field"},
			{"Enter", "place order"},
			{"Esc", "back to cart"},
		}
	default:
		hints = []hint{
			{"j/k", "navigate"},
			{"a", "add to cart"},
			{"w", "wishlist"},
			{"/", "search"},
			{"[/]", "page"},
			{"2", "cart"},
			{"?", "more"},
		}
	}

	segments := make([]string, 0, len(hints)+1)
	for _, h := range hints {
		segments = append(segments, styles.AccentText.Render(h.key)+":"+styles.MutedText.Render(h.desc))
	}
	segments = append(segments, styles.AccentText.Render("T")+":"+styles.FaintText.Render(m.theme.Name))

	return styles.Footer.Width(m.width).Render(strings.Join(segments, "  "))
}
