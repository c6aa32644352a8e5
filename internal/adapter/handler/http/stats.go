package http

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/vperfumes/ordertrack/internal/core/domain"
	"github.com/vperfumes/ordertrack/internal/core/port"
	"go.uber.org/zap"
)

type StatsHandler struct {
	Handler
	service port.Service
}

func NewStatsHandler(service port.Service, logger *zap.Logger) (*StatsHandler, error) {
	return &StatsHandler{
		Handler: *NewHandler(logger),
		service: service,
	}, nil
}

func (sh *StatsHandler) Stats(ctx *gin.Context) {
	var companyID *uint64
	if raw := ctx.Query("company_id"); raw != "" && raw != "all" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			sh.handleValidationError(ctx, domain.ValidationError("company_id"))
			return
		}
		companyID = &id
	}

	stats, err := sh.service.Stats(ctx, getActor(ctx), companyID)
	if err != nil {
		sh.handleError(ctx, err)
		return
	}

	sh.handleSuccess(ctx, stats)
}
