// Package http provides HTTP handlers for card vault operations.
package http

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	cardDomain "github.com/allisson/cardvault/internal/card/domain"
	"github.com/allisson/cardvault/internal/card/http/dto"
	cardUseCase "github.com/allisson/cardvault/internal/card/usecase"
	"github.com/allisson/cardvault/internal/httputil"
	customValidation "github.com/allisson/cardvault/internal/validation"
)

// CardHandler handles HTTP requests for card vault operations.
type CardHandler struct {
	cardUseCase cardUseCase.CardUseCase
	logger      *slog.Logger
}

// NewCardHandler creates a new card handler with required dependencies.
func NewCardHandler(useCase cardUseCase.CardUseCase, logger *slog.Logger) *CardHandler {
	return &CardHandler{
		cardUseCase: useCase,
		logger:      logger,
	}
}

// cardID parses the :id URL parameter.
func cardID(c *gin.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("card id must be a positive integer")
	}
	return id, nil
}

// AddHandler encrypts and stores a card.
// POST /v1/cards
// Returns 201 Created with the stored card, or 409 Conflict when the number
// is already in the vault and force was not set.
func (h *CardHandler) AddHandler(c *gin.Context) {
	var req dto.AddCardRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	payload := cardDomain.Payload{
		CardNumber: req.CardNumber,
		CVV:        req.CVV,
		Expiry:     req.Expiry,
	}

	card, err := h.cardUseCase.Add(c.Request.Context(), payload, req.Label, req.Force)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.MapCardToResponse(card))
}

// GetHandler retrieves and decrypts a single card.
// GET /v1/cards/:id
func (h *CardHandler) GetHandler(c *gin.Context) {
	id, err := cardID(c)
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	card, err := h.cardUseCase.Get(c.Request.Context(), id)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapCardToResponse(card))
}

// ListHandler lists stored cards without decrypting payloads.
// GET /v1/cards
func (h *CardHandler) ListHandler(c *gin.Context) {
	summaries, err := h.cardUseCase.List(c.Request.Context())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapSummariesToResponse(summaries))
}

// DeleteHandler removes a card.
// DELETE /v1/cards/:id
// Returns 204 No Content on success.
func (h *CardHandler) DeleteHandler(c *gin.Context) {
	id, err := cardID(c)
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := h.cardUseCase.Delete(c.Request.Context(), id); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Status(http.StatusNoContent)
}

// RenameHandler updates the label of a card.
// PATCH /v1/cards/:id
func (h *CardHandler) RenameHandler(c *gin.Context) {
	id, err := cardID(c)
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	var req dto.RenameCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	if err := h.cardUseCase.Rename(c.Request.Context(), id, req.Label); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Status(http.StatusNoContent)
}

// ExistsHandler checks whether a card number is already stored.
// POST /v1/cards/exists
// Uses POST so the card number travels in the body, never in a URL that
// would end up in access logs.
func (h *CardHandler) ExistsHandler(c *gin.Context) {
	var req dto.ExistsCardRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	exists, err := h.cardUseCase.Exists(c.Request.Context(), req.CardNumber)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.ExistsCardResponse{Exists: exists})
}

// ScanHandler extracts card candidates from free-form text.
// POST /v1/scan
// Returns 200 OK with annotated candidates, or 422 when no card number is found.
func (h *CardHandler) ScanHandler(c *gin.Context) {
	var req dto.ScanRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	results, err := h.cardUseCase.Scan(c.Request.Context(), req.Text)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapScanResultsToResponse(results))
}
