package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/waste3d/courseplatform-api/pkg/learningpb"
)

type TransactionHandler struct {
	base
}

func NewTransactionHandler(client learningpb.LearningServiceClient, timeout time.Duration) *TransactionHandler {
	return &TransactionHandler{base{client: client, timeout: timeout}}
}

type createTransactionReq struct {
	UserID          string      `json:"userId"`
	CourseID        string      `json:"courseId" binding:"required"`
	TransactionID   string      `json:"transactionId" binding:"required"`
	Amount          json.Number `json:"amount"`
	PaymentProvider string      `json:"paymentProvider" binding:"required"`
}

// GET /api/v1/transactions?userId=
func (h *TransactionHandler) List(c *gin.Context) {
	ctx, cancel := h.rpcContext(c)
	defer cancel()

	res, err := h.client.ListTransactions(ctx, &learningpb.ListTransactionsRequest{
		CallerId: callerID(c),
		UserId:   c.Query("userId"),
	})
	if err != nil {
		respondRPCError(c, err)
		return
	}
	respond(c, http.StatusOK, "Transactions retrieved successfully", res.Transactions)
}

// POST /api/v1/transactions
func (h *TransactionHandler) Create(c *gin.Context) {
	var req createTransactionReq
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid_input", err.Error())
		return
	}

	// Сумма в минимальных единицах валюты, отсутствие суммы = 0
	var amount int64
	if req.Amount != "" {
		parsed, err := strconv.ParseInt(req.Amount.String(), 10, 64)
		if err != nil {
			respondError(c, http.StatusBadRequest, "invalid_input", "amount must be an integer number of minor currency units")
			return
		}
		if parsed > learningpb.MaxSafeInt || parsed < -learningpb.MaxSafeInt {
			respondError(c, http.StatusBadRequest, "invalid_input", "amount is out of range")
			return
		}
		amount = parsed
	}

	userID := req.UserID
	if userID == "" {
		userID = callerID(c)
	}

	ctx, cancel := h.rpcContext(c)
	defer cancel()

	res, err := h.client.RecordPurchase(ctx, &learningpb.RecordPurchaseRequest{
		CallerId:        callerID(c),
		UserId:          userID,
		CourseId:        req.CourseID,
		TransactionId:   req.TransactionID,
		Amount:          amount,
		PaymentProvider: req.PaymentProvider,
	})
	if err != nil {
		respondRPCError(c, err)
		return
	}
	respondPurchase(c, http.StatusCreated, "Purchased Course successfully", res)
}

// POST /api/v1/transactions/:transactionId/resume
func (h *TransactionHandler) Resume(c *gin.Context) {
	var req struct {
		CourseID string `json:"courseId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid_input", err.Error())
		return
	}

	ctx, cancel := h.rpcContext(c)
	defer cancel()

	res, err := h.client.ResumeEnrollment(ctx, &learningpb.ResumeEnrollmentRequest{
		CallerId:      callerID(c),
		UserId:        callerID(c),
		CourseId:      req.CourseID,
		TransactionId: c.Param("transactionId"),
	})
	if err != nil {
		respondRPCError(c, err)
		return
	}
	respondPurchase(c, http.StatusOK, "Enrollment completed", res)
}

// При частичном зачислении оплата уже записана: 202 и предупреждение вместо ошибки.
func respondPurchase(c *gin.Context, okStatus int, message string, res *learningpb.PurchaseResponse) {
	data := gin.H{"transaction": res.Transaction, "courseProgress": res.Progress}
	if res.Warning != nil {
		c.JSON(http.StatusAccepted, gin.H{
			"message": "Payment recorded, enrollment incomplete",
			"data":    data,
			"warning": res.Warning,
		})
		return
	}
	respond(c, okStatus, message, data)
}
