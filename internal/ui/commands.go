package ui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ekinsoft/vitrin/internal/account"
	"github.com/ekinsoft/vitrin/internal/api"
	"github.com/ekinsoft/vitrin/internal/checkout"
	"github.com/ekinsoft/vitrin/internal/state"
	"github.com/ekinsoft/vitrin/internal/store"
)

// Messages

type tickMsg time.Time

type snapshotMsg state.Snapshot

type catalogMsg struct {
	gen  int
	page api.ProductPage
	err  error
}

type wishIDsMsg struct {
	gen int
	ids []int64
}

type cartMsg struct {
	gen    int
	lines  []store.Line
	synced bool
}

type wishlistMsg struct {
	gen     int
	entries []store.Entry
	synced  bool
}

type ordersMsg struct {
	gen    int
	orders []api.Order
	err    error
}

// actionMsg reports a cart or wishlist mutation. synced false means the
// change landed in the guest store instead of the remote one.
type actionMsg struct {
	synced bool
	note   string
}

type loginMsg struct {
	user api.User
	err  error
}

type registerMsg struct {
	err error
}

type orderPlacedMsg struct {
	order api.Order
	err   error
}

type orderCancelledMsg struct {
	err error
}

// Commands

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func fetchSnapshotCmd(badges *state.Store) tea.Cmd {
	return func() tea.Msg {
		return snapshotMsg(badges.Snapshot())
	}
}

func loadCatalogCmd(ctx context.Context, client *api.Client, query api.ProductQuery, gen int) tea.Cmd {
	return func() tea.Msg {
		page, err := client.FetchProducts(ctx, query)
		return catalogMsg{gen: gen, page: page, err: err}
	}
}

func loadWishIDsCmd(ctx context.Context, wishes *store.WishlistService, gen int) tea.Cmd {
	return func() tea.Msg {
		ids, _ := wishes.ProductIDs(ctx)
		return wishIDsMsg{gen: gen, ids: ids}
	}
}

func loadCartCmd(ctx context.Context, carts *store.CartService, gen int) tea.Cmd {
	return func() tea.Msg {
		lines, synced := carts.Lines(ctx)
		return cartMsg{gen: gen, lines: lines, synced: synced}
	}
}

func loadWishlistCmd(ctx context.Context, wishes *store.WishlistService, gen int) tea.Cmd {
	return func() tea.Msg {
		entries, synced := wishes.Entries(ctx)
		return wishlistMsg{gen: gen, entries: entries, synced: synced}
	}
}

func loadOrdersCmd(ctx context.Context, client *api.Client, gen int) tea.Cmd {
	return func() tea.Msg {
		orders, err := client.FetchOrders(ctx)
		return ordersMsg{gen: gen, orders: orders, err: err}
	}
}

// cartActionCmd runs a mutation that never fails outright and reports
// whether it reached the remote store.
func cartActionCmd(note string, fn func() bool) tea.Cmd {
	return func() tea.Msg {
		return actionMsg{synced: fn(), note: note}
	}
}

func loginCmd(ctx context.Context, accounts *account.Manager, username, password string) tea.Cmd {
	return func() tea.Msg {
		user, err := accounts.Login(ctx, username, password)
		return loginMsg{user: user, err: err}
	}
}

func registerCmd(ctx context.Context, accounts *account.Manager, in api.RegisterInput) tea.Cmd {
	return func() tea.Msg {
		return registerMsg{err: accounts.Register(ctx, in)}
	}
}

func placeOrderCmd(ctx context.Context, orders *checkout.Service, in checkout.Input) tea.Cmd {
	return func() tea.Msg {
		order, err := orders.PlaceOrder(ctx, in)
		return orderPlacedMsg{order: order, err: err}
	}
}

func cancelOrderCmd(ctx context.Context, client *api.Client, orderID int64) tea.Cmd {
	return func() tea.Msg {
		return orderCancelledMsg{err: client.CancelOrder(ctx, orderID)}
	}
}
