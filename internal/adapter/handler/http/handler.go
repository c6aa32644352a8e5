package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/vperfumes/ordertrack/internal/core/domain"
	"go.uber.org/zap"
)

var errorStatusMap = map[error]int{
	domain.ErrInternal:        http.StatusInternalServerError,
	domain.ErrDataNotFound:    http.StatusNotFound,
	domain.ErrConflictingData: http.StatusConflict,

	domain.ErrInvalidCredentials:         http.StatusUnauthorized,
	domain.ErrUnauthorized:               http.StatusUnauthorized,
	domain.ErrEmptyAuthorizationHeader:   http.StatusUnauthorized,
	domain.ErrInvalidAuthorizationHeader: http.StatusUnauthorized,
	domain.ErrInvalidAuthorizationType:   http.StatusUnauthorized,
	domain.ErrInvalidToken:               http.StatusUnauthorized,
	domain.ErrExpiredToken:               http.StatusUnauthorized,
	domain.ErrForbidden:                  http.StatusForbidden,

	domain.ErrBadRequest: http.StatusBadRequest,
	domain.ErrValidation: http.StatusBadRequest,
	domain.ErrBadStatus:  http.StatusUnprocessableEntity,

	domain.ErrEmptyChangeSet:  http.StatusInternalServerError,
	domain.ErrLedgerCorrupted: http.StatusInternalServerError,
}

// statusFor resolves an error to an HTTP status, matching wrapped
// sentinels (validation errors carry the offending field name).
func statusFor(err error) (int, bool) {
	if code, ok := errorStatusMap[err]; ok {
		return code, true
	}
	for sentinel, code := range errorStatusMap {
		if errors.Is(err, sentinel) {
			return code, true
		}
	}
	return http.StatusInternalServerError, false
}

type Handler struct {
	logger *zap.Logger
}

func NewHandler(logger *zap.Logger) *Handler {
	return &Handler{logger: logger}
}

// handleValidationError sends an error response for some specific request validation error
func (h *Handler) handleValidationError(ctx *gin.Context, err error) {
	ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}

// handleAbort sends an error response and aborts the request with the specified status code and error message
func (h *Handler) handleAbort(ctx *gin.Context, err error) {
	statusCode, known := statusFor(err)
	if !known {
		h.logger.Error("aborting request", zap.Error(err))
	}
	ctx.AbortWithStatusJSON(statusCode, gin.H{"error": err.Error()})
}

func (h *Handler) handleError(ctx *gin.Context, err error) {
	statusCode, known := statusFor(err)
	if !known {
		h.logger.Error("error processing request", zap.Error(err))
	}
	ctx.JSON(statusCode, gin.H{"error": err.Error()})
}

// handleSuccess sends a success response with the specified status code and optional data
func (h *Handler) handleSuccessWithStatus(ctx *gin.Context, data any, status int) {
	if data != nil {
		ctx.JSON(status, data)
	} else {
		ctx.Status(status)
	}
}

func (h *Handler) handleSuccess(ctx *gin.Context, data any) {
	h.handleSuccessWithStatus(ctx, data, http.StatusOK)
}
