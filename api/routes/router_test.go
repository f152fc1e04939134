package routes

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	"github.com/ubnaturals/express-checkout/internal/catalog"
	"github.com/ubnaturals/express-checkout/internal/checkout"
	"github.com/ubnaturals/express-checkout/internal/coupons"
	"github.com/ubnaturals/express-checkout/pkg/config"
	"github.com/ubnaturals/express-checkout/pkg/logger"
	"github.com/ubnaturals/express-checkout/pkg/metrics"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	cfg := &config.Config{
		App: config.AppConfig{Env: "test", Port: "0"},
		Checkout: config.CheckoutConfig{
			CODShippingFee:    99,
			TaxRatePercent:    5,
			LoyaltyPercent:    5,
			BaseTierOne:       10,
			BaseTierTwo:       20,
			BaseTierThreePlus: 30,
			SimulatedDelay:    0,
		},
	}

	registry := prometheus.NewRegistry()
	svc, err := checkout.NewService(checkout.ServiceParams{
		Catalog:     catalog.Default(),
		CouponTable: coupons.Default(),
		CheckoutCfg: cfg.Checkout,
		SessionCfg:  cfg.Session,
		Metrics:     metrics.NewCheckoutMetrics(registry),
	})
	require.NoError(t, err)

	return NewRouter(cfg, logger.New(logger.Options{ServiceName: "test", Output: bytes.NewBuffer(nil)}), svc, registry)
}

func doJSON(t *testing.T, router http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeData(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var envelope struct {
		Data map[string]any `json:"data"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&envelope))
	return envelope.Data
}

func TestRouterHealthAndMetrics(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, http.MethodGet, "/health/live", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, http.MethodGet, "/health/ready", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, w.Code)
}

func TestRouterCheckoutFlow(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, http.MethodPost, "/api/v1/sessions", nil)
	require.Equal(t, http.StatusCreated, w.Code)
	data := decodeData(t, w)
	sessionID, ok := data["session_id"].(string)
	require.True(t, ok, "session_id missing from snapshot")
	require.Len(t, data["cart_items"], 4)

	base := "/api/v1/sessions/" + sessionID

	w = doJSON(t, router, http.MethodGet, base, nil)
	require.Equal(t, http.StatusOK, w.Code)

	// Pack offer doubles the target item.
	w = doJSON(t, router, http.MethodPost, base+"/upsells/toggle", map[string]string{
		"upsell_id": "pack-black-thunder-2-500ml",
	})
	require.Equal(t, http.StatusOK, w.Code)
	data = decodeData(t, w)
	require.Contains(t, data["applied_upsells"], "pack-black-thunder-2-500ml")

	// Unknown coupon is a validation error.
	w = doJSON(t, router, http.MethodPost, base+"/coupon", map[string]string{"code": "NOPE"})
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, router, http.MethodPost, base+"/coupon", map[string]string{"code": "WELCOME10"})
	require.Equal(t, http.StatusOK, w.Code)
	data = decodeData(t, w)
	require.NotNil(t, data["coupon"])

	w = doJSON(t, router, http.MethodDelete, base+"/coupon", nil)
	require.Equal(t, http.StatusOK, w.Code)

	// Switching to COD returns the cost-delta notice.
	w = doJSON(t, router, http.MethodPost, base+"/payment-method", map[string]string{"method": "cod"})
	require.Equal(t, http.StatusOK, w.Code)
	var paymentEnvelope struct {
		Data struct {
			Notice *checkout.SwitchNotice `json:"notice"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&paymentEnvelope))
	require.NotNil(t, paymentEnvelope.Data.Notice)
	require.Equal(t, "extra", string(paymentEnvelope.Data.Notice.Direction))

	// Editing flow: bump a quantity, save, verify it stuck.
	w = doJSON(t, router, http.MethodPost, base+"/cart/edit", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, http.MethodPatch, base+"/cart/items/liver-kidney", map[string]int{"quantity": 3})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, http.MethodPost, base+"/cart/edit/save", nil)
	require.Equal(t, http.StatusOK, w.Code)
	data = decodeData(t, w)
	found := false
	for _, raw := range data["cart_items"].([]any) {
		item := raw.(map[string]any)
		if item["id"] == "liver-kidney" {
			found = true
			require.EqualValues(t, 3, item["quantity"])
		}
	}
	require.True(t, found)

	w = doJSON(t, router, http.MethodDelete, base, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, http.MethodGet, base, nil)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestRouterSizeSwitchClearsUpsells(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, http.MethodPost, "/api/v1/sessions", nil)
	require.Equal(t, http.StatusCreated, w.Code)
	sessionID := decodeData(t, w)["session_id"].(string)
	base := "/api/v1/sessions/" + sessionID

	w = doJSON(t, router, http.MethodPost, base+"/upsells/toggle", map[string]string{
		"upsell_id": "pack-black-thunder-2-500ml",
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, http.MethodPost, base+"/size", map[string]string{"size": "250ml"})
	require.Equal(t, http.StatusOK, w.Code)
	data := decodeData(t, w)
	require.Empty(t, data["applied_upsells"])
	require.Empty(t, data["selected_upsells"])
	require.Equal(t, "250ml", data["bottle_size"])
}

func TestRouterUnknownSession(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, http.MethodGet, "/api/v1/sessions/8f14e45f-ea3e-4c1f-9f38-0123456789ab", nil)
	require.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, router, http.MethodGet, "/api/v1/sessions/not-a-uuid", nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
}
