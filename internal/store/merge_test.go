package store

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMerge_BulkSuccessClearsGuestCart(t *testing.T) {
	var mergeCalls int
	mux := http.NewServeMux()
	mux.HandleFunc("/api/cart/merge/", func(w http.ResponseWriter, r *http.Request) {
		mergeCalls++
		assert.Equal(t, http.MethodPost, r.Method)
		w.Write([]byte(`{"merged_items":2}`))
	})
	h := newHarness(t, mux)
	ctx := context.Background()

	h.carts.Add(ctx, 1, 2)
	h.carts.Add(ctx, 2, 1)
	h.login()

	var fired int
	h.carts.Changed().Subscribe(func() { fired++ })

	h.carts.MergeGuestCartIfAny(ctx)

	assert.Equal(t, 1, mergeCalls)
	assert.Equal(t, 1, fired, "a merge fires the change signal once")

	h.sess.Clear()
	lines, _ := h.carts.Lines(ctx)
	assert.Empty(t, lines, "guest cart must be empty after merge")
}

func TestMerge_BulkFailureFallsBackPerLineInOrder(t *testing.T) {
	var mu sync.Mutex
	var added []int64
	mux := http.NewServeMux()
	mux.HandleFunc("/api/cart/merge/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	mux.HandleFunc("/api/cart/add/", func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			ProductID int64 `json:"product_id"`
			Quantity  int64 `json:"quantity"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		mu.Lock()
		added = append(added, body.ProductID)
		mu.Unlock()
		if body.ProductID == 2 {
			// One line failing must not stop the rest.
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"detail":"Not enough stock"}`))
			return
		}
		w.Write([]byte(`{}`))
	})
	h := newHarness(t, mux)
	ctx := context.Background()

	h.carts.Add(ctx, 1, 1)
	h.carts.Add(ctx, 2, 1)
	h.carts.Add(ctx, 3, 1)
	h.login()

	h.carts.MergeGuestCartIfAny(ctx)

	assert.Equal(t, []int64{1, 2, 3}, added, "per-line migration preserves guest order")

	h.sess.Clear()
	lines, _ := h.carts.Lines(ctx)
	assert.Empty(t, lines, "guest cart clears even when some lines fail")
}

func TestMerge_EmptyGuestCartIsNoOp(t *testing.T) {
	var calls int
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Write([]byte(`{}`))
	})
	h := newHarness(t, mux)
	h.login()

	h.carts.MergeGuestCartIfAny(context.Background())
	assert.Zero(t, calls, "no requests for an empty guest cart")
}

func TestMerge_GuestModeIsNoOp(t *testing.T) {
	h := newHarness(t, nil)
	ctx := context.Background()

	h.carts.Add(ctx, 1, 1)
	h.carts.MergeGuestCartIfAny(ctx)

	lines, _ := h.carts.Lines(ctx)
	assert.Len(t, lines, 1, "guest cart untouched without a session")
}

func TestMerge_RunningTwiceCannotDuplicate(t *testing.T) {
	var mergeCalls int
	mux := http.NewServeMux()
	mux.HandleFunc("/api/cart/merge/", func(w http.ResponseWriter, r *http.Request) {
		mergeCalls++
		w.Write([]byte(`{"merged_items":1}`))
	})
	h := newHarness(t, mux)
	ctx := context.Background()

	h.carts.Add(ctx, 1, 1)
	h.login()

	h.carts.MergeGuestCartIfAny(ctx)
	h.carts.MergeGuestCartIfAny(ctx)

	assert.Equal(t, 1, mergeCalls, "second call sees an empty guest cart")
}
