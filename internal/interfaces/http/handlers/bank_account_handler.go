package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"trust-fund.backend/internal/domain/entities"
	domainerrors "trust-fund.backend/internal/domain/errors"
	"trust-fund.backend/internal/interfaces/http/middleware"
	"trust-fund.backend/internal/interfaces/http/response"
	"trust-fund.backend/internal/usecases"
)

// BankAccountHandler handles payout bank account endpoints
type BankAccountHandler struct {
	bankUsecase *usecases.BankAccountUsecase
}

// NewBankAccountHandler creates a new bank account handler
func NewBankAccountHandler(bankUsecase *usecases.BankAccountUsecase) *BankAccountHandler {
	return &BankAccountHandler{bankUsecase: bankUsecase}
}

// Create attaches a bank account to the caller
// POST /api/v1/bank-accounts
func (h *BankAccountHandler) Create(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("Authentication required"))
		return
	}

	var input entities.CreateBankAccountInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	account, err := h.bankUsecase.Create(c.Request.Context(), userID, &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, account)
}

// ListMine lists the caller's bank accounts
// GET /api/v1/bank-accounts
func (h *BankAccountHandler) ListMine(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("Authentication required"))
		return
	}

	accounts, err := h.bankUsecase.ListByUserID(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"bankAccounts": accounts})
}

// GetByID returns one of the caller's bank accounts
// GET /api/v1/bank-accounts/:id
func (h *BankAccountHandler) GetByID(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("Authentication required"))
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("invalid bank account id"))
		return
	}

	account, err := h.bankUsecase.GetOwned(c.Request.Context(), userID, id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, account)
}

// Review records a staff verification decision
// PATCH /api/v1/bank-accounts/:id
func (h *BankAccountHandler) Review(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("invalid bank account id"))
		return
	}

	var input entities.UpdateBankAccountStatusInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	if err := h.bankUsecase.Review(c.Request.Context(), id, &input); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "bank account reviewed"})
}
