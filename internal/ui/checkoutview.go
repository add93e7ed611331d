package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ekinsoft/vitrin/internal/api"
	"github.com/ekinsoft/vitrin/internal/checkout"
)

const (
	checkoutFieldName = iota
	checkoutFieldAddress
	checkoutFieldCity
	checkoutFieldPhone
	checkoutFieldEmail
	checkoutFieldNotes
	checkoutFieldCount
)

var checkoutLabels = [checkoutFieldCount]string{
	"Full name", "Address", "City", "Phone", "Email", "Notes",
}

func (m *Model) initCheckoutInputs() {
	inputs := make([]textinput.Model, checkoutFieldCount)
	widths := [checkoutFieldCount]int{32, 48, 24, 20, 32, 48}
	for i := range inputs {
		ti := textinput.New()
		ti.Placeholder = strings.ToLower(checkoutLabels[i])
		ti.CharLimit = 128
		ti.Width = widths[i]
		inputs[i] = ti
	}
	m.checkoutInputs = inputs
}

func (m *Model) resetCheckoutForm() {
	for i := range m.checkoutInputs {
		m.checkoutInputs[i].SetValue("")
		m.checkoutInputs[i].Blur()
	}
	m.checkoutFocus = 0
}

func (m *Model) focusCheckoutInput(idx int) tea.Cmd {
	m.checkoutFocus = idx
	var cmd tea.Cmd
	for i := range m.checkoutInputs {
		if i == idx {
			cmd = m.checkoutInputs[i].Focus()
		} else {
			m.checkoutInputs[i].Blur()
		}
	}
	return cmd
}

// renderCheckout renders the checkout form with live totals for the cart
// being ordered.
func (m Model) renderCheckout() string {
	styles := m.theme.Styles()
	var b strings.Builder

	b.WriteString(styles.Title.Render("Checkout"))
	b.WriteString("\n")

	for i := range m.checkoutInputs {
		label := styles.MutedText.Render(checkoutLabels[i])
		if i == m.checkoutFocus {
			label = styles.AccentText.Render(checkoutLabels[i])
		}
		b.WriteString("  " + label + "\n")
		b.WriteString("  " + m.checkoutInputs[i].View() + "\n")
	}

	totals := checkout.ComputeTotals(m.cartLines)
	shipping := m.formatAmount(totals.Shipping)
	if totals.Shipping == 0 {
		shipping = "free"
	}
	b.WriteString("\n")
	b.WriteString("  " + styles.MutedText.Render("Subtotal ") + styles.Text.Render(m.formatAmount(totals.Subtotal)) + "\n")
	b.WriteString("  " + styles.MutedText.Render("Shipping ") + styles.Text.Render(shipping) + "\n")
	b.WriteString("  " + styles.MutedText.Render("Total    ") + styles.AccentText.Render(m.formatAmount(totals.Total)) + "\n")

	if m.placing {
		b.WriteString("\n  " + styles.MutedText.Render("Placing order..."))
		b.WriteString("\n")
	}

	return b.String()
}

// handleCheckoutKey processes keyboard input for the checkout view.
func (m Model) handleCheckoutKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit

	case "esc":
		return m.switchView(ViewCart)

	case "tab", "down":
		return m, m.focusCheckoutInput((m.checkoutFocus + 1) % checkoutFieldCount)

	case "shift+tab", "up":
		return m, m.focusCheckoutInput((m.checkoutFocus + checkoutFieldCount - 1) % checkoutFieldCount)

	case "enter":
		return m.submitCheckout()
	}

	var cmd tea.Cmd
	m.checkoutInputs[m.checkoutFocus], cmd = m.checkoutInputs[m.checkoutFocus].Update(msg)
	return m, cmd
}

func (m Model) submitCheckout() (tea.Model, tea.Cmd) {
	if m.placing {
		return m, nil
	}

	in := checkout.Input{
		Shipping: api.ShippingInfo{
			FullName: strings.TrimSpace(m.checkoutInputs[checkoutFieldName].Value()),
			Address:  strings.TrimSpace(m.checkoutInputs[checkoutFieldAddress].Value()),
			City:     strings.TrimSpace(m.checkoutInputs[checkoutFieldCity].Value()),
			Phone:    strings.TrimSpace(m.checkoutInputs[checkoutFieldPhone].Value()),
			Notes:    strings.TrimSpace(m.checkoutInputs[checkoutFieldNotes].Value()),
		},
		Customer: api.CustomerInfo{
			Email: strings.TrimSpace(m.checkoutInputs[checkoutFieldEmail].Value()),
		},
		Payment: api.PaymentInfo{Method: "cash_on_delivery"},
	}

	m.placing = true
	return m, placeOrderCmd(m.ctx, m.orders, in)
}
