package app

import (
	"context"
	"fmt"
	"time"

	"github.com/ekinsoft/vitrin/internal/account"
	"github.com/ekinsoft/vitrin/internal/api"
	"github.com/ekinsoft/vitrin/internal/checkout"
	"github.com/ekinsoft/vitrin/internal/config"
	"github.com/ekinsoft/vitrin/internal/localstore"
	"github.com/ekinsoft/vitrin/internal/prefs"
	"github.com/ekinsoft/vitrin/internal/session"
	"github.com/ekinsoft/vitrin/internal/state"
	"github.com/ekinsoft/vitrin/internal/store"
	"github.com/ekinsoft/vitrin/internal/ui"
)

// Options configure the vitrin application.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/vitrin/prefs.toml
	PollEvery  int    // seconds; zero uses the config value
}

// Run boots the vitrin TUI until the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	userPrefs, _ := prefs.Load(opts.PrefsPath)

	local := localstore.Open(cfg.DataDir)
	sess := session.New(local)

	client, err := api.NewClient(cfg.APIBaseURL, sess)
	if err != nil {
		return fmt.Errorf("init api client: %w", err)
	}

	carts := store.NewCart(local, client, sess)
	wishes := store.NewWishlist(local, client, sess)
	accounts := account.New(sess, client, carts, wishes)
	orders := checkout.New(carts, client)

	badges := &state.Store{}

	interval := time.Duration(cfg.PollSeconds) * time.Second
	if opts.PollEvery > 0 {
		interval = time.Duration(opts.PollEvery) * time.Second
	}
	if interval <= 0 {
		interval = defaultPollInterval
	}

	// Start background badge poller
	StartPoller(ctx, badges, carts, wishes, sess, interval)

	// Do initial refresh to populate badges before the UI starts
	refresh(ctx, badges, carts, wishes, sess)

	uiOpts := ui.Options{
		Context:   ctx,
		Client:    client,
		Carts:     carts,
		Wishes:    wishes,
		Accounts:  accounts,
		Orders:    orders,
		Badges:    badges,
		PollTick:  interval,
		ThemeName: userPrefs.Theme,
		Currency:  userPrefs.Currency,
		PrefsPath: opts.PrefsPath,
	}
	return ui.Run(uiOpts)
}
