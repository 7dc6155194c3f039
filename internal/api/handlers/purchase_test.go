package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/arjunm/coursehub/internal/domain"
	"github.com/arjunm/coursehub/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signin(t *testing.T, ts *testutil.TestServer, email, password string) *http.Cookie {
	t.Helper()

	body, _ := json.Marshal(map[string]string{"email": email, "password": password})
	resp, err := http.Post(ts.APIURL("/users/signin"), "application/json", bytes.NewBuffer(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	return testutil.SessionCookie(t, resp)
}

func postJSON(t *testing.T, url string, cookie *http.Cookie, payload interface{}) *http.Response {
	t.Helper()

	body, _ := json.Marshal(payload)
	req, err := http.NewRequest(http.MethodPost, url, bytes.NewBuffer(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if cookie != nil {
		req.AddCookie(cookie)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func TestPurchaseHandler_CheckoutFlow(t *testing.T) {
	ts := testutil.NewTestServer(t)

	instructor, _ := testutil.NewUserBuilder().WithRole(domain.RoleInstructor).Build(t, ts.DB.DB)
	_, password := testutil.NewUserBuilder().WithEmail("buyer@example.com").Build(t, ts.DB.DB)
	course := testutil.NewCourseBuilder(instructor.ID).WithPrice(499.00).Build(t, ts.DB.DB)

	cookie := signin(t, ts, "buyer@example.com", password)

	// Order creation requires a session.
	resp := postJSON(t, ts.APIURL("/purchases/orders"), nil, map[string]string{"courseId": course.ID.String()})
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	// Create the order.
	resp = postJSON(t, ts.APIURL("/purchases/orders"), cookie, map[string]string{"courseId": course.ID.String()})
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var order struct {
		OrderID  string `json:"orderId"`
		Amount   int64  `json:"amount"`
		Currency string `json:"currency"`
	}
	testutil.AssertJSONResponse(t, resp, &order)
	assert.Equal(t, int64(49900), order.Amount)
	assert.Equal(t, "INR", order.Currency)
	require.NotEmpty(t, order.OrderID)

	// A forged signature is rejected and the ledger stays pending.
	resp = postJSON(t, ts.APIURL("/purchases/verify"), cookie, map[string]string{
		"razorpay_order_id":   order.OrderID,
		"razorpay_payment_id": "pay_123",
		"razorpay_signature":  "deadbeef",
	})
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	stored, err := ts.Repos.Purchase.GetByGatewayOrderID(context.Background(), order.OrderID)
	require.NoError(t, err)
	assert.Equal(t, domain.PurchasePending, stored.Status)

	// The genuine signature completes the purchase.
	resp = postJSON(t, ts.APIURL("/purchases/verify"), cookie, map[string]string{
		"razorpay_order_id":   order.OrderID,
		"razorpay_payment_id": "pay_123",
		"razorpay_signature":  ts.Gateway.Sign(order.OrderID, "pay_123"),
	})
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var verified struct {
		CourseID string `json:"courseId"`
	}
	testutil.AssertJSONResponse(t, resp, &verified)
	assert.Equal(t, course.ID.String(), verified.CourseID)

	// Replaying the callback conflicts instead of re-applying.
	resp = postJSON(t, ts.APIURL("/purchases/verify"), cookie, map[string]string{
		"razorpay_order_id":   order.OrderID,
		"razorpay_payment_id": "pay_123",
		"razorpay_signature":  ts.Gateway.Sign(order.OrderID, "pay_123"),
	})
	resp.Body.Close()
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestPurchaseHandler_VerifyUnknownOrder(t *testing.T) {
	ts := testutil.NewTestServer(t)

	_, password := testutil.NewUserBuilder().WithEmail("nobody@example.com").Build(t, ts.DB.DB)
	cookie := signin(t, ts, "nobody@example.com", password)

	resp := postJSON(t, ts.APIURL("/purchases/verify"), cookie, map[string]string{
		"razorpay_order_id":   "order_ghost",
		"razorpay_payment_id": "pay_ghost",
		"razorpay_signature":  ts.Gateway.Sign("order_ghost", "pay_ghost"),
	})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
