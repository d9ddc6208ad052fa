package handler

import (
	"math"
	"net/http"
	"slices"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/paydesk/payment-service/internal/api/metrics"
	"github.com/paydesk/payment-service/internal/core/payment"
	"github.com/paydesk/payment-service/internal/core/ports"
)

// PaymentHandler handles HTTP requests under /v1/payment.
type PaymentHandler struct {
	service ports.PaymentService
}

func NewPaymentHandler(service ports.PaymentService) *PaymentHandler {
	return &PaymentHandler{service: service}
}

// Pay handles POST /v1/payment/pay. The confirmation text is returned
// whether or not the method is registered.
//
// @Summary      Execute a payment
// @Tags         payment
// @Produce      plain
// @Security     BearerAuth
// @Param        method  query     string  true  "Payment method (e.g. creditCard)"
// @Param        amount  query     number  true  "Amount"
// @Success      200     {string}  string
// @Failure      400     {object}  errorResponse
// @Failure      401     {object}  errorResponse
// @Failure      500     {object}  errorResponse
// @Router       /v1/payment/pay [post]
func (h *PaymentHandler) Pay(c echo.Context) error {
	var req payRequest
	if err := (&echo.DefaultBinder{}).BindQueryParams(c, &req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid query")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	amount, err := strconv.ParseFloat(req.Amount, 64)
	if err != nil || math.IsNaN(amount) || math.IsInf(amount, 0) {
		return echo.NewHTTPError(http.StatusBadRequest, "amount must be a number")
	}

	start := time.Now()
	tx, err := h.service.ExecutePayment(c.Request().Context(), req.Method, amount)
	result := "recorded"
	switch {
	case err != nil:
		result = "error"
	case tx == nil:
		result = "unknown_method"
	}
	metrics.PaymentsTotal.WithLabelValues(h.methodLabel(req.Method), result).Inc()
	metrics.PaymentDuration.WithLabelValues(result).Observe(time.Since(start).Seconds())
	if err != nil {
		return err
	}

	return c.String(http.StatusOK,
		"Payment of ₹"+payment.FormatAmount(amount)+" using "+req.Method+" is being processed.")
}

// methodLabel keeps the metric's method label within the registered keys so
// arbitrary client input cannot create new series.
func (h *PaymentHandler) methodLabel(method string) string {
	if slices.Contains(h.service.Methods(), method) {
		return method
	}
	return metrics.UnknownMethod
}

// Transactions handles GET /v1/payment/transactions.
//
// @Summary      List recorded transactions
// @Tags         payment
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.PaymentTransaction
// @Failure      401  {object}  errorResponse
// @Failure      500  {object}  errorResponse
// @Router       /v1/payment/transactions [get]
func (h *PaymentHandler) Transactions(c echo.Context) error {
	txs, err := h.service.ListTransactions(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, txs)
}

// Methods handles GET /v1/payment/methods.
//
// @Summary      List payment methods
// @Tags         payment
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  methodsResponse
// @Failure      401  {object}  errorResponse
// @Router       /v1/payment/methods [get]
func (h *PaymentHandler) Methods(c echo.Context) error {
	return c.JSON(http.StatusOK, methodsResponse{Methods: h.service.Methods()})
}

// Stats handles GET /v1/payment/stats.
//
// @Summary      Per-method payment counters
// @Tags         payment
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  statsResponse
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Failure      500  {object}  errorResponse
// @Router       /v1/payment/stats [get]
func (h *PaymentHandler) Stats(c echo.Context) error {
	stats, err := h.service.LedgerStats(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, statsResponse{Methods: stats})
}
