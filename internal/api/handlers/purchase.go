package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/arjunm/coursehub/internal/api/middleware"
	"github.com/arjunm/coursehub/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type PurchaseHandler struct {
	paymentService *service.PaymentService
}

func NewPurchaseHandler(paymentService *service.PaymentService) *PurchaseHandler {
	return &PurchaseHandler{paymentService: paymentService}
}

type CreateOrderRequest struct {
	CourseID string `json:"courseId"`
}

type OrderResponse struct {
	OrderID  string `json:"orderId"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Course   struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	} `json:"course"`
}

func (h *PurchaseHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "You are not logged in")
		return
	}

	var req CreateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	courseID, err := uuid.Parse(req.CourseID)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid course id")
		return
	}

	result, err := h.paymentService.CreateOrder(r.Context(), courseID, userID)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	resp := OrderResponse{
		OrderID:  result.Order.ID,
		Amount:   result.Order.Amount,
		Currency: result.Order.Currency,
	}
	resp.Course.Name = result.Course.Title
	resp.Course.Description = result.Course.Description

	writeJSON(w, http.StatusOK, resp)
}

// VerifyPaymentRequest carries the checkout callback fields the gateway hands
// to the client after a successful payment.
type VerifyPaymentRequest struct {
	RazorpayOrderID   string `json:"razorpay_order_id"`
	RazorpayPaymentID string `json:"razorpay_payment_id"`
	RazorpaySignature string `json:"razorpay_signature"`
}

func (h *PurchaseHandler) VerifyPayment(w http.ResponseWriter, r *http.Request) {
	if _, ok := middleware.GetUserID(r.Context()); !ok {
		writeError(w, http.StatusUnauthorized, "You are not logged in")
		return
	}

	var req VerifyPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.RazorpayOrderID == "" || req.RazorpayPaymentID == "" || req.RazorpaySignature == "" {
		writeError(w, http.StatusBadRequest, "Order id, payment id and signature are required")
		return
	}

	purchase, err := h.paymentService.VerifyPayment(r.Context(), req.RazorpayOrderID, req.RazorpayPaymentID, req.RazorpaySignature)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message":  "Payment verified successfully",
		"courseId": purchase.CourseID.String(),
		"purchase": purchase,
	})
}

type RefundRequest struct {
	Reason string `json:"reason"`
}

func (h *PurchaseHandler) Refund(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "You are not logged in")
		return
	}

	purchaseID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid purchase id")
		return
	}

	var req RefundRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	purchase, err := h.paymentService.Refund(r.Context(), purchaseID, userID, req.Reason)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message":  "Purchase refunded",
		"purchase": purchase,
	})
}

type MarkFailedRequest struct {
	OrderID string `json:"orderId"`
}

func (h *PurchaseHandler) MarkFailed(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "You are not logged in")
		return
	}

	var req MarkFailedRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.OrderID == "" {
		writeError(w, http.StatusBadRequest, "Order id is required")
		return
	}

	purchase, err := h.paymentService.MarkFailed(r.Context(), req.OrderID, userID)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message":  "Purchase marked failed",
		"purchase": purchase,
	})
}

func (h *PurchaseHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "You are not logged in")
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	purchases, err := h.paymentService.ListPurchases(r.Context(), userID, limit, offset)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"purchases": purchases})
}
