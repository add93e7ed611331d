package checkout

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ekinsoft/vitrin/internal/api"
	"github.com/ekinsoft/vitrin/internal/localstore"
	"github.com/ekinsoft/vitrin/internal/session"
	"github.com/ekinsoft/vitrin/internal/store"
)

func newService(t *testing.T, handler http.Handler) (*Service, *store.CartService) {
	t.Helper()

	baseURL := "http://127.0.0.1:1/api"
	if handler != nil {
		srv := httptest.NewServer(handler)
		t.Cleanup(srv.Close)
		baseURL = srv.URL + "/api"
	}

	local := localstore.Open(t.TempDir())
	sess := session.New(local)
	client, err := api.NewClient(baseURL, sess)
	require.NoError(t, err)
	carts := store.NewCart(local, client, sess)
	return New(carts, client), carts
}

func validInput() Input {
	return Input{
		Shipping: api.ShippingInfo{
			FullName: "Ayşe Yılmaz",
			Address:  "Atatürk Cad. 5",
			City:     "İzmir",
			Phone:    "05551112233",
		},
		Customer: api.CustomerInfo{Email: "ayse@example.com"},
		Payment:  api.PaymentInfo{Method: "cash_on_delivery"},
	}
}

func TestComputeTotals(t *testing.T) {
	tests := []struct {
		name         string
		lines        []store.Line
		wantSubtotal float64
		wantShipping float64
	}{
		{"empty cart", nil, 0, 0},
		{
			"below free shipping",
			[]store.Line{{ProductID: 1, Qty: 2, Price: "100.00"}},
			200, standardShippingFee,
		},
		{
			"at free shipping threshold",
			[]store.Line{{ProductID: 1, Qty: 1, Price: "1000.00"}},
			1000, 0,
		},
		{
			"unknown prices count as zero",
			[]store.Line{{ProductID: 1, Qty: 3}},
			0, standardShippingFee,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			totals := ComputeTotals(tt.lines)
			assert.Equal(t, tt.wantSubtotal, totals.Subtotal)
			assert.Equal(t, tt.wantShipping, totals.Shipping)
			assert.Equal(t, tt.wantSubtotal+tt.wantShipping, totals.Total)
		})
	}
}

func TestPlaceOrder_EmptyCart(t *testing.T) {
	svc, _ := newService(t, nil)

	_, err := svc.PlaceOrder(context.Background(), validInput())
	require.Error(t, err)
	assert.Equal(t, "your cart is empty", err.Error())
}

func TestPlaceOrder_MissingShippingFields(t *testing.T) {
	svc, carts := newService(t, nil)
	ctx := context.Background()
	carts.Add(ctx, 1, 1)

	in := validInput()
	in.Shipping.Phone = "  "

	_, err := svc.PlaceOrder(ctx, in)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "required shipping fields")
}

func TestPlaceOrder_ServerErrorIsSurfaced(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/orders/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"detail":"Not enough stock for Kahve"}`))
	})
	svc, carts := newService(t, mux)
	ctx := context.Background()
	carts.Add(ctx, 1, 1)

	_, err := svc.PlaceOrder(ctx, validInput())
	require.Error(t, err)
	assert.Equal(t, "Not enough stock for Kahve", err.Error(), "order failures carry the server's message")

	lines, _ := carts.Lines(ctx)
	assert.Len(t, lines, 1, "a failed order leaves the cart intact")
}

func TestPlaceOrder_SuccessClearsGuestCartAndSendsTotals(t *testing.T) {
	var got api.OrderInput
	mux := http.NewServeMux()
	mux.HandleFunc("/api/orders/", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Write([]byte(`{"id":42,"status":"processing","total_price":"249.80"}`))
	})
	svc, carts := newService(t, mux)
	ctx := context.Background()

	carts.Add(ctx, 1, 2)

	order, err := svc.PlaceOrder(ctx, validInput())
	require.NoError(t, err)
	assert.Equal(t, int64(42), order.ID)
	assert.Equal(t, api.OrderStatusProcessing, order.Status)

	require.Len(t, got.Items, 1)
	assert.Equal(t, int64(1), got.Items[0].ProductID)
	assert.Equal(t, int64(2), got.Items[0].Quantity)
	assert.Equal(t, "Ayşe Yılmaz", got.Shipping.FullName)
	assert.Equal(t, got.Totals.Subtotal+got.Totals.Shipping, got.Totals.Total)

	lines, _ := carts.Lines(ctx)
	assert.Empty(t, lines, "a placed order empties the guest cart")
}
