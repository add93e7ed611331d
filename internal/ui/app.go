// Package ui provides the Bubble Tea storefront interface: catalog browsing,
// the unified cart and wishlist, sign-in, checkout and order history.
package ui

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ekinsoft/vitrin/internal/account"
	"github.com/ekinsoft/vitrin/internal/api"
	"github.com/ekinsoft/vitrin/internal/checkout"
	"github.com/ekinsoft/vitrin/internal/prefs"
	"github.com/ekinsoft/vitrin/internal/state"
	"github.com/ekinsoft/vitrin/internal/store"
)

// View represents the current active view.
type View int

const (
	ViewCatalog View = iota
	ViewCart
	ViewWishlist
	ViewOrders
	ViewLogin
	ViewCheckout
)

// Options configures the UI.
type Options struct {
	Context   context.Context
	Client    *api.Client
	Carts     *store.CartService
	Wishes    *store.WishlistService
	Accounts  *account.Manager
	Orders    *checkout.Service
	Badges    *state.Store
	PollTick  time.Duration
	ThemeName string
	Currency  string
	PrefsPath string
}

// Model is the root application state for Bubble Tea.
type Model struct {
	ctx       context.Context
	client    *api.Client
	carts     *store.CartService
	wishes    *store.WishlistService
	accounts  *account.Manager
	orders    *checkout.Service
	badges    *state.Store
	prefsPath string
	pollTick  time.Duration

	theme       Theme
	currency    string
	keys        keyMap
	currentView View
	width       int
	height      int
	ready       bool

	snapshot state.Snapshot

	// Transient status line, cleared on the next action.
	status    string
	statusErr bool

	// Results from a superseded load are dropped.
	gen int

	// Catalog state
	products    []api.Product
	page        int
	totalCount  int64
	hasNext     bool
	hasPrev     bool
	catalogSel  int
	searchInput textinput.Model
	searching   bool
	searchQuery string
	wished      map[int64]bool

	// Cart state
	cartLines  []store.Line
	cartSynced bool
	cartSel    int

	// Wishlist state
	wishEntries []store.Entry
	wishSynced  bool
	wishSel     int

	// Orders state
	orderRows []api.Order
	orderSel  int

	// Login / register form
	registering bool
	loginInputs []textinput.Model
	loginFocus  int
	loggingIn   bool

	// Checkout form
	checkoutInputs []textinput.Model
	checkoutFocus  int
	placing        bool

	showHelp bool
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	pollTick := opts.PollTick
	if pollTick == 0 {
		pollTick = time.Second
	}

	themeName := opts.ThemeName
	if themeName == "" {
		themeName = "Dracula"
	}

	currency := opts.Currency
	if currency == "" {
		currency = "$"
	}

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	m := Model{
		ctx:         ctx,
		client:      opts.Client,
		carts:       opts.Carts,
		wishes:      opts.Wishes,
		accounts:    opts.Accounts,
		orders:      opts.Orders,
		badges:      opts.Badges,
		prefsPath:   prefsPath,
		pollTick:    pollTick,
		theme:       GetTheme(themeName),
		currency:    currency,
		keys:        DefaultKeyMap(),
		currentView: ViewCatalog,
		page:        1,
		wished:      make(map[int64]bool),
	}
	m.initSearchInput()
	m.initLoginInputs()
	m.initCheckoutInputs()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		tea.EnterAltScreen,
		tickCmd(m.pollTick),
		loadCatalogCmd(m.ctx, m.client, m.catalogQuery(), m.gen),
		loadWishIDsCmd(m.ctx, m.wishes, m.gen),
	}
	if m.badges != nil {
		cmds = append(cmds, fetchSnapshotCmd(m.badges))
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		return m, nil

	case tickMsg:
		var cmds []tea.Cmd
		if m.badges != nil {
			cmds = append(cmds, fetchSnapshotCmd(m.badges))
		}
		cmds = append(cmds, tickCmd(m.pollTick))
		return m, tea.Batch(cmds...)

	case snapshotMsg:
		m.snapshot = state.Snapshot(msg)
		return m, nil

	case catalogMsg:
		if msg.gen != m.gen {
			return m, nil
		}
		if msg.err != nil {
			m.setError("catalog: " + msg.err.Error())
			return m, nil
		}
		m.products = msg.page.Results
		m.totalCount = msg.page.Count
		m.hasNext = msg.page.Next != ""
		m.hasPrev = msg.page.Previous != ""
		m.catalogSel = clampSel(m.catalogSel, len(m.products))
		return m, nil

	case wishIDsMsg:
		if msg.gen != m.gen {
			return m, nil
		}
		m.wished = make(map[int64]bool, len(msg.ids))
		for _, id := range msg.ids {
			m.wished[id] = true
		}
		return m, nil

	case cartMsg:
		if msg.gen != m.gen {
			return m, nil
		}
		m.cartLines = msg.lines
		m.cartSynced = msg.synced
		m.cartSel = clampSel(m.cartSel, len(m.cartLines))
		return m, nil

	case wishlistMsg:
		if msg.gen != m.gen {
			return m, nil
		}
		m.wishEntries = msg.entries
		m.wishSynced = msg.synced
		m.wishSel = clampSel(m.wishSel, len(m.wishEntries))
		return m, nil

	case ordersMsg:
		if msg.gen != m.gen {
			return m, nil
		}
		if msg.err != nil {
			m.setError("orders: " + msg.err.Error())
			return m, nil
		}
		m.orderRows = msg.orders
		m.orderSel = clampSel(m.orderSel, len(m.orderRows))
		return m, nil

	case actionMsg:
		if msg.synced {
			m.setStatus(msg.note)
		} else {
			m.setStatus(msg.note + " (saved locally, syncing later)")
		}
		return m, m.reloadCurrent()

	case loginMsg:
		m.loggingIn = false
		if msg.err != nil {
			m.setError(msg.err.Error())
			return m, nil
		}
		m.setStatus("signed in as " + msg.user.Username)
		m.resetLoginForm()
		m.currentView = ViewCatalog
		return m, m.reloadCurrent()

	case registerMsg:
		m.loggingIn = false
		if msg.err != nil {
			m.setError(msg.err.Error())
			return m, nil
		}
		m.setStatus("account created, sign in to continue")
		m.registering = false
		m.resetLoginForm()
		return m, nil

	case orderPlacedMsg:
		m.placing = false
		if msg.err != nil {
			m.setError(msg.err.Error())
			return m, nil
		}
		m.setStatus(formatOrderPlaced(msg.order))
		m.resetCheckoutForm()
		m.currentView = ViewOrders
		return m, m.reloadCurrent()

	case orderCancelledMsg:
		if msg.err != nil {
			m.setError(msg.err.Error())
			return m, nil
		}
		m.setStatus("order cancelled")
		return m, m.reloadCurrent()
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	if m.showHelp {
		return m.renderHelp()
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderContent())
	b.WriteString("\n")
	b.WriteString(m.renderFooter())
	return b.String()
}

func (m Model) renderContent() string {
	switch m.currentView {
	case ViewCart:
		return m.renderCart()
	case ViewWishlist:
		return m.renderWishlist()
	case ViewOrders:
		return m.renderOrders()
	case ViewLogin:
		return m.renderLogin()
	case ViewCheckout:
		return m.renderCheckout()
	default:
		return m.renderCatalog()
	}
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		// Any key closes help
		m.showHelp = false
		return m, nil
	}

	// Text entry views consume most keys before the globals run.
	if m.searching && m.currentView == ViewCatalog {
		return m.handleSearchKey(msg)
	}
	if m.currentView == ViewLogin {
		return m.handleLoginKey(msg)
	}
	if m.currentView == ViewCheckout {
		return m.handleCheckoutKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.Theme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		if m.prefsPath != "" {
			_ = prefs.Save(m.prefsPath, prefs.Prefs{Theme: m.theme.Name, Currency: m.currency})
		}
		return m, nil

	case key.Matches(msg, m.keys.Catalog):
		return m.switchView(ViewCatalog)
	case key.Matches(msg, m.keys.Cart):
		return m.switchView(ViewCart)
	case key.Matches(msg, m.keys.Wishlist):
		return m.switchView(ViewWishlist)
	case key.Matches(msg, m.keys.Orders):
		return m.switchView(ViewOrders)

	case key.Matches(msg, m.keys.Login):
		if m.accounts != nil && m.accounts.Authenticated() {
			m.setStatus("already signed in")
			return m, nil
		}
		m.currentView = ViewLogin
		return m, m.focusLoginInput(0)

	case key.Matches(msg, m.keys.Logout):
		if m.accounts == nil || !m.accounts.Authenticated() {
			return m, nil
		}
		m.accounts.Logout()
		m.setStatus("signed out")
		return m, m.reloadCurrent()

	case key.Matches(msg, m.keys.Refresh):
		return m, m.reloadCurrent()

	case key.Matches(msg, m.keys.Back):
		return m.switchView(ViewCatalog)
	}

	switch m.currentView {
	case ViewCatalog:
		return m.handleCatalogKey(msg)
	case ViewCart:
		return m.handleCartKey(msg)
	case ViewWishlist:
		return m.handleWishlistKey(msg)
	case ViewOrders:
		return m.handleOrdersKey(msg)
	}

	return m, nil
}

// switchView changes the active view and kicks off its data load.
func (m Model) switchView(v View) (tea.Model, tea.Cmd) {
	m.currentView = v
	return m, m.reloadCurrent()
}

// reloadCurrent bumps the load generation and reloads the active view's
// data. Wishlist membership reloads with the catalog so the heart markers
// stay honest.
func (m *Model) reloadCurrent() tea.Cmd {
	m.gen++
	switch m.currentView {
	case ViewCart, ViewCheckout:
		return loadCartCmd(m.ctx, m.carts, m.gen)
	case ViewWishlist:
		return loadWishlistCmd(m.ctx, m.wishes, m.gen)
	case ViewOrders:
		return loadOrdersCmd(m.ctx, m.client, m.gen)
	case ViewLogin:
		return nil
	default:
		return tea.Batch(
			loadCatalogCmd(m.ctx, m.client, m.catalogQuery(), m.gen),
			loadWishIDsCmd(m.ctx, m.wishes, m.gen),
		)
	}
}

func (m *Model) catalogQuery() api.ProductQuery {
	return api.ProductQuery{Page: m.page, Search: m.searchQuery}
}

func (m *Model) setStatus(s string) {
	m.status = s
	m.statusErr = false
}

func (m *Model) setError(s string) {
	m.status = s
	m.statusErr = true
}

func clampSel(sel, count int) int {
	if count == 0 {
		return 0
	}
	if sel >= count {
		return count - 1
	}
	if sel < 0 {
		return 0
	}
	return sel
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(m.ctx))
	_, err := p.Run()
	return err
}
