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

// KYCHandler handles KYC submission and review endpoints
type KYCHandler struct {
	kycUsecase *usecases.KYCUsecase
}

// NewKYCHandler creates a new KYC handler
func NewKYCHandler(kycUsecase *usecases.KYCUsecase) *KYCHandler {
	return &KYCHandler{kycUsecase: kycUsecase}
}

// Submit files the caller's KYC submission
// POST /api/v1/kyc
func (h *KYCHandler) Submit(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("Authentication required"))
		return
	}

	var input entities.SubmitKYCInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	kyc, err := h.kycUsecase.Submit(c.Request.Context(), userID, &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, kyc)
}

// GetMine returns the caller's KYC submission
// GET /api/v1/kyc/me
func (h *KYCHandler) GetMine(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("Authentication required"))
		return
	}

	kyc, err := h.kycUsecase.GetByUserID(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, kyc)
}

// List lists submissions for staff review
// GET /api/v1/kyc?status=
func (h *KYCHandler) List(c *gin.Context) {
	status := entities.KYCStatus(c.Query("status"))

	items, err := h.kycUsecase.List(c.Request.Context(), status)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"submissions": items})
}

// Review records a staff decision
// PATCH /api/v1/kyc/:id
func (h *KYCHandler) Review(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("invalid submission id"))
		return
	}

	var input entities.UpdateKYCStatusInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	reviewer, _ := middleware.GetUserEmail(c)
	if err := h.kycUsecase.Review(c.Request.Context(), id, &input, reviewer); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "KYC submission reviewed"})
}
