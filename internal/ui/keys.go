package ui

import (
	"github.com/charmbracelet/bubbles/key"
)

// keyMap holds the key bindings shown in the help overlay. Bindings that
// only apply in one view are matched there; globals are matched in handleKey.
type keyMap struct {
	Up       key.Binding
	Down     key.Binding
	Catalog  key.Binding
	Cart     key.Binding
	Wishlist key.Binding
	Orders   key.Binding
	Search   key.Binding
	PrevPage key.Binding
	NextPage key.Binding
	AddCart  key.Binding
	Wish     key.Binding
	IncQty   key.Binding
	DecQty   key.Binding
	Remove   key.Binding
	ClearAll key.Binding
	Checkout key.Binding
	Login    key.Binding
	Logout   key.Binding
	Refresh  key.Binding
	Theme    key.Binding
	Help     key.Binding
	Back     key.Binding
	Quit     key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() keyMap {
	return keyMap{
		Up:       key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("k/↑", "up")),
		Down:     key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j/↓", "down")),
		Catalog:  key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "catalog")),
		Cart:     key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "cart")),
		Wishlist: key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "wishlist")),
		Orders:   key.NewBinding(key.WithKeys("4"), key.WithHelp("4", "orders")),
		Search:   key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		PrevPage: key.NewBinding(key.WithKeys("["), key.WithHelp("[", "prev page")),
		NextPage: key.NewBinding(key.WithKeys("]"), key.WithHelp("]", "next page")),
		AddCart:  key.NewBinding(key.WithKeys("a", "enter"), key.WithHelp("a", "add to cart")),
		Wish:     key.NewBinding(key.WithKeys("w"), key.WithHelp("w", "toggle wishlist")),
		IncQty:   key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "more")),
		DecQty:   key.NewBinding(key.WithKeys("-"), key.WithHelp("-", "fewer")),
		Remove:   key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "remove")),
		ClearAll: key.NewBinding(key.WithKeys("C"), key.WithHelp("C", "clear cart")),
		Checkout: key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "checkout")),
		Login:    key.NewBinding(key.WithKeys("l"), key.WithHelp("l", "sign in")),
		Logout:   key.NewBinding(key.WithKeys("L"), key.WithHelp("L", "sign out")),
		Refresh:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		Theme:    key.NewBinding(key.WithKeys("T"), key.WithHelp("T", "theme")),
		Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Back:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		Quit:     key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
	}
}
