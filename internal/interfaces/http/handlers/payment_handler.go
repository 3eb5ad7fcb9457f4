package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"payzen.backend/internal/domain/entities"
	domainerrors "payzen.backend/internal/domain/errors"
	"payzen.backend/internal/interfaces/http/middleware"
	"payzen.backend/internal/interfaces/http/response"
)

type PaymentService interface {
	SendPayment(ctx context.Context, fromWallet string, input *entities.SendPaymentInput) (*entities.Transaction, error)
	AttachProof(ctx context.Context, id uuid.UUID, requesterWallet string, input *entities.UpdateTransactionInput) (*entities.Transaction, error)
	GetTransaction(ctx context.Context, id uuid.UUID, requesterWallet string) (*entities.Transaction, *entities.TransactionDetail, error)
	ListTransactions(ctx context.Context, walletAddress string, limit, offset int) ([]*entities.Transaction, error)
	ListSent(ctx context.Context, walletAddress string, limit int) ([]*entities.Transaction, error)
	ListReceived(ctx context.Context, walletAddress string, limit int) ([]*entities.Transaction, error)
	CreatePaymentLink(ctx context.Context, ownerID uuid.UUID, input *entities.CreatePaymentLinkInput) (*entities.PaymentLink, string, error)
	GetPaymentLink(ctx context.Context, code string) (*entities.PaymentLinkWithOwner, error)
	ListPaymentLinks(ctx context.Context, ownerID uuid.UUID) ([]*entities.PaymentLink, error)
	DeactivatePaymentLink(ctx context.Context, code string, ownerID uuid.UUID) error
}

// PaymentHandler handles ledger and payment link endpoints
type PaymentHandler struct {
	paymentUsecase PaymentService
}

// NewPaymentHandler creates a new payment handler
func NewPaymentHandler(paymentUsecase PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentUsecase: paymentUsecase}
}

// Send creates a pending transaction
// POST /api/v1/payments/send
func (h *PaymentHandler) Send(c *gin.Context) {
	wallet, ok := middleware.GetWalletAddress(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("missing authentication context"))
		return
	}

	var input entities.SendPaymentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	tx, err := h.paymentUsecase.SendPayment(c.Request.Context(), wallet, &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, tx)
}

// UpdateTransaction attaches on-chain proof and finalizes the record
// PUT /api/v1/payments/transactions/:id
func (h *PaymentHandler) UpdateTransaction(c *gin.Context) {
	wallet, ok := middleware.GetWalletAddress(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("missing authentication context"))
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("invalid transaction id"))
		return
	}

	var input entities.UpdateTransactionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	tx, err := h.paymentUsecase.AttachProof(c.Request.Context(), id, wallet, &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, tx)
}

// GetTransaction returns one transaction with best-effort chain detail
// GET /api/v1/payments/transactions/:id
func (h *PaymentHandler) GetTransaction(c *gin.Context) {
	wallet, ok := middleware.GetWalletAddress(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("missing authentication context"))
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("invalid transaction id"))
		return
	}

	tx, detail, err := h.paymentUsecase.GetTransaction(c.Request.Context(), id, wallet)
	if err != nil {
		response.Error(c, err)
		return
	}

	payload := gin.H{"transaction": tx}
	if detail != nil {
		payload["onchain"] = detail
	}
	response.Success(c, http.StatusOK, payload)
}

// ListTransactions lists both sides of the caller's ledger
// GET /api/v1/payments/transactions?limit=&offset=
func (h *PaymentHandler) ListTransactions(c *gin.Context) {
	wallet, ok := middleware.GetWalletAddress(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("missing authentication context"))
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	txs, err := h.paymentUsecase.ListTransactions(c.Request.Context(), wallet, limit, offset)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, txs)
}

// ListSent lists completed payments the caller sent
// GET /api/v1/payments/transactions/sent
func (h *PaymentHandler) ListSent(c *gin.Context) {
	h.listCompleted(c, h.paymentUsecase.ListSent)
}

// ListReceived lists completed payments the caller received
// GET /api/v1/payments/transactions/received
func (h *PaymentHandler) ListReceived(c *gin.Context) {
	h.listCompleted(c, h.paymentUsecase.ListReceived)
}

func (h *PaymentHandler) listCompleted(c *gin.Context, list func(ctx context.Context, wallet string, limit int) ([]*entities.Transaction, error)) {
	wallet, ok := middleware.GetWalletAddress(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("missing authentication context"))
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	txs, err := list(c.Request.Context(), wallet, limit)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, txs)
}

// CreateLink creates a payment link
// POST /api/v1/payments/links
func (h *PaymentHandler) CreateLink(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("missing authentication context"))
		return
	}

	var input entities.CreatePaymentLinkInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	link, linkURL, err := h.paymentUsecase.CreatePaymentLink(c.Request.Context(), userID, &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{
		"payment_link": link,
		"link_url":     linkURL,
	})
}

// GetLink is the public payer-facing lookup
// GET /api/v1/payments/links/:code
func (h *PaymentHandler) GetLink(c *gin.Context) {
	link, err := h.paymentUsecase.GetPaymentLink(c.Request.Context(), c.Param("code"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, link)
}

// ListLinks lists the caller's payment links
// GET /api/v1/payments/links
func (h *PaymentHandler) ListLinks(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("missing authentication context"))
		return
	}

	links, err := h.paymentUsecase.ListPaymentLinks(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, links)
}

// DeactivateLink disables one of the caller's links
// DELETE /api/v1/payments/links/:code
func (h *PaymentHandler) DeactivateLink(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("missing authentication context"))
		return
	}

	if err := h.paymentUsecase.DeactivatePaymentLink(c.Request.Context(), c.Param("code"), userID); err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithMessage(c, http.StatusOK, nil, "payment link deactivated")
}
