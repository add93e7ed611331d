package app

import (
	"context"
	"errors"
	"time"

	"github.com/ekinsoft/vitrin/internal/session"
	"github.com/ekinsoft/vitrin/internal/state"
	"github.com/ekinsoft/vitrin/internal/store"
)

const defaultPollInterval = 5 * time.Second

var errUnsynced = errors.New("storefront API unreachable, showing local data")

// StartPoller launches a background goroutine that refreshes the badge store
// at a fixed cadence and immediately after any cart or wishlist change. It
// returns immediately.
func StartPoller(ctx context.Context, badges *state.Store, carts *store.CartService, wishes *store.WishlistService, sess *session.Context, interval time.Duration) {
	if interval <= 0 {
		interval = defaultPollInterval
	}

	kick := make(chan struct{}, 1)
	bump := func() {
		select {
		case kick <- struct{}{}:
		default:
		}
	}
	unsubscribeCart := carts.Changed().Subscribe(bump)
	unsubscribeWish := wishes.Changed().Subscribe(bump)

	go func() {
		defer unsubscribeCart()
		defer unsubscribeWish()

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			case <-kick:
			}
			refresh(ctx, badges, carts, wishes, sess)
		}
	}()
}

// refresh re-derives both badge counts. Counts never fail, since the
// services fall back to guest data, so the recorded error only flags that
// the remote store did not answer.
func refresh(ctx context.Context, badges *state.Store, carts *store.CartService, wishes *store.WishlistService, sess *session.Context) {
	cartCount, cartSynced := carts.Count(ctx)
	wishCount, wishSynced := wishes.Count(ctx)

	var err error
	if !cartSynced || !wishSynced {
		err = errUnsynced
	}
	badges.Update(cartCount, wishCount, sess.Authenticated(), sess.Claims().Username, err)
}
