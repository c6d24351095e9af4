package handler

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/rahulchiluka-megaviztech/telugu-association-backend/internal/models"
	"github.com/rahulchiluka-megaviztech/telugu-association-backend/internal/repository"
	"github.com/rahulchiluka-megaviztech/telugu-association-backend/internal/service"
	"github.com/rahulchiluka-megaviztech/telugu-association-backend/pkg/payment"
	"go.uber.org/zap"
)

type PaymentHandler struct {
	payments      *service.PaymentService
	webhookSecret string
	logger        *zap.Logger
}

// NewPaymentHandler builds the membership payment routes. webhookSecret
// verifies Stripe webhook signatures.
func NewPaymentHandler(payments *service.PaymentService, webhookSecret string, logger *zap.Logger) *PaymentHandler {
	return &PaymentHandler{payments: payments, webhookSecret: webhookSecret, logger: logger}
}

func (h *PaymentHandler) CreateOrder(c *fiber.Ctx) error {
	var req models.CreateOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}
	order, err := h.payments.CreateOrder(c.UserContext(), req)
	if err != nil {
		return respond(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"status":     true,
		"orderId":    order.OrderID,
		"paymentId":  order.PaymentID,
		"approveUrl": order.ApproveURL,
	})
}

func (h *PaymentHandler) CaptureOrder(c *fiber.Ctx) error {
	var req models.CaptureOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}
	result, err := h.payments.CaptureOrder(c.UserContext(), req.OrderID)
	var failed *service.CaptureFailedError
	if errors.As(err, &failed) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":        false,
			"message":       failed.Error(),
			"paymentStatus": failed.PaymentStatus,
		})
	}
	if err != nil {
		return respond(c, err)
	}
	return c.JSON(fiber.Map{
		"status":        true,
		"message":       "Payment successful",
		"transactionId": result.TransactionID,
		"paymentStatus": result.PaymentStatus,
	})
}

func (h *PaymentHandler) webhook(c *fiber.Ctx, ev *payment.WebhookEvent, err error) error {
	if err != nil {
		h.logger.Warn("rejected webhook", zap.String("path", c.Path()), zap.Error(err))
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid webhook payload"))
	}
	if err := h.payments.HandleWebhook(c.UserContext(), ev); err != nil {
		return respond(c, err)
	}
	return c.JSON(models.MessageResponse("Webhook processed"))
}

// PayPalWebhook takes PayPal event notifications. They are not signature
// checked.
func (h *PaymentHandler) PayPalWebhook(c *fiber.Ctx) error {
	ev, err := payment.ParsePayPalWebhook(c.Body())
	return h.webhook(c, ev, err)
}

func (h *PaymentHandler) StripeWebhook(c *fiber.Ctx) error {
	ev, err := payment.ParseStripeWebhook(c.Body(), c.Get("Stripe-Signature"), h.webhookSecret)
	return h.webhook(c, ev, err)
}

func (h *PaymentHandler) History(c *fiber.Ctx) error {
	payments, err := h.payments.History(c.UserContext(), account(c).ID)
	if err != nil {
		return respond(c, err)
	}
	return c.JSON(fiber.Map{"status": true, "payments": payments})
}

type DonationHandler struct {
	donations *service.DonationService
}

func NewDonationHandler(donations *service.DonationService) *DonationHandler {
	return &DonationHandler{donations: donations}
}

func (h *DonationHandler) Create(c *fiber.Ctx) error {
	var req models.DonationRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}
	donation, order, err := h.donations.Create(c.UserContext(), req)
	if err != nil {
		return respond(c, err)
	}
	return c.JSON(fiber.Map{
		"status":     true,
		"message":    "Donation order created. Proceed to payment.",
		"orderId":    order.ID,
		"approveUrl": order.ApproveURL,
		"data":       donation,
	})
}

func (h *DonationHandler) Complete(c *fiber.Ctx) error {
	donation, err := h.donations.Complete(c.UserContext(), c.Params("orderId"))
	if err != nil {
		return respond(c, err)
	}
	return c.JSON(models.SuccessResponse(donation, "Order captured successfully"))
}

func (h *DonationHandler) Cancel(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"success": false, "message": "Payment was cancelled."})
}

func (h *DonationHandler) All(c *fiber.Ctx) error {
	f := repository.DonationFilter{
		Page:               queryInt(c, "page"),
		Limit:              queryInt(c, "limit"),
		Firstname:          c.Query("firstname"),
		PaymentInformation: c.Query("paymentInformation"),
		OrderID:            c.Query("orderId"),
		TransactionID:      c.Query("transactionId"),
	}
	if raw := c.Query("totalAmount"); raw != "" {
		if amount, err := strconv.ParseFloat(raw, 64); err == nil {
			f.TotalAmount = &amount
		}
	}
	donations, page, err := h.donations.List(c.UserContext(), f)
	if err != nil {
		return respond(c, err)
	}
	return c.JSON(withPage(fiber.Map{"status": true, "data": donations}, page))
}
