package payment

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"
)

func paypalServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/oauth2/token", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"access_token":"tok","token_type":"Bearer","expires_in":3600}`)
	})
	mux.HandleFunc("/v2/checkout/orders", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]interface{}
		_ = json.NewDecoder(r.Body).Decode(&body)
		units := body["purchase_units"].([]interface{})
		amount := units[0].(map[string]interface{})["amount"].(map[string]interface{})
		if amount["value"] != "25.50" {
			t.Errorf("amount: got %v, want 25.50", amount["value"])
		}
		w.WriteHeader(http.StatusCreated)
		fmt.Fprint(w, `{"id":"ORDER1","status":"CREATED","links":[{"href":"https://paypal.test/self","rel":"self"},{"href":"https://paypal.test/approve","rel":"approve"}]}`)
	})
	mux.HandleFunc("/v2/checkout/orders/ORDER1/capture", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		fmt.Fprint(w, `{"id":"ORDER1","status":"COMPLETED","purchase_units":[{"payments":{"captures":[{"id":"CAP1","status":"COMPLETED"}]}}]}`)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestPayPalGateway(t *testing.T) {
	srv := paypalServer(t)
	g, err := NewPayPalGateway("id", "secret", srv.URL)
	if err != nil {
		t.Fatal(err)
	}

	order, err := g.CreateOrder(context.Background(), OrderRequest{Amount: 25.5})
	if err != nil {
		t.Fatal(err)
	}
	if order.ID != "ORDER1" || order.ApproveURL != "https://paypal.test/approve" {
		t.Errorf("order: got %+v", order)
	}

	capture, err := g.CaptureOrder(context.Background(), "ORDER1")
	if err != nil {
		t.Fatal(err)
	}
	if !capture.Completed() || capture.TransactionID != "CAP1" {
		t.Errorf("capture: got %+v", capture)
	}
}

func TestParsePayPalWebhook(t *testing.T) {
	tests := []struct {
		body string
		kind EventKind
	}{
		{`{"event_type":"PAYMENT.CAPTURE.COMPLETED","resource":{"id":"CAP1","supplementary_data":{"related_ids":{"order_id":"O1"}}}}`, EventCompleted},
		{`{"event_type":"PAYMENT.CAPTURE.DENIED","resource":{"id":"CAP1"}}`, EventFailed},
		{`{"event_type":"PAYMENT.CAPTURE.DECLINED","resource":{"id":"CAP1"}}`, EventFailed},
		{`{"event_type":"PAYMENT.CAPTURE.REFUNDED","resource":{"id":"CAP1"}}`, EventRefunded},
		{`{"event_type":"CHECKOUT.ORDER.APPROVED","resource":{"id":"O1"}}`, EventIgnored},
	}
	for _, tt := range tests {
		evt, err := ParsePayPalWebhook([]byte(tt.body))
		if err != nil {
			t.Fatal(err)
		}
		if evt.Kind != tt.kind {
			t.Errorf("%s: got %v, want %v", evt.Type, evt.Kind, tt.kind)
		}
	}

	evt, _ := ParsePayPalWebhook([]byte(tests[0].body))
	if evt.OrderID != "O1" || evt.TransactionID != "CAP1" {
		t.Errorf("ids: got %+v", evt)
	}
	if _, err := ParsePayPalWebhook([]byte("{")); err == nil {
		t.Error("expected error for malformed body")
	}
}

func sign(payload []byte, secret string, ts time.Time) string {
	t := strconv.FormatInt(ts.Unix(), 10)
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(t + "."))
	mac.Write(payload)
	return "t=" + t + ",v1=" + hex.EncodeToString(mac.Sum(nil))
}

func TestParseStripeWebhook(t *testing.T) {
	const secret = "whsec_test"
	payload := []byte(`{"id":"evt_1","object":"event","type":"payment_intent.succeeded","data":{"object":{"id":"pi_1","object":"payment_intent","status":"succeeded","latest_charge":"ch_1"}}}`)

	evt, err := ParseStripeWebhook(payload, sign(payload, secret, time.Now()), secret)
	if err != nil {
		t.Fatal(err)
	}
	if evt.Kind != EventCompleted || evt.OrderID != "pi_1" || evt.TransactionID != "ch_1" {
		t.Errorf("event: got %+v", evt)
	}

	refund := []byte(`{"id":"evt_2","object":"event","type":"charge.refunded","data":{"object":{"id":"ch_1","object":"charge","payment_intent":"pi_1"}}}`)
	evt, err = ParseStripeWebhook(refund, sign(refund, secret, time.Now()), secret)
	if err != nil {
		t.Fatal(err)
	}
	if evt.Kind != EventRefunded || evt.TransactionID != "ch_1" {
		t.Errorf("refund: got %+v", evt)
	}

	if _, err := ParseStripeWebhook(payload, sign(payload, "other", time.Now()), secret); err == nil {
		t.Error("expected signature error")
	}
}
