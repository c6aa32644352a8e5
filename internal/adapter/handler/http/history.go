package http

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/vperfumes/ordertrack/internal/core/domain"
)

type HistoryEntryResp struct {
	ID         uint64           `json:"id"`
	OrderID    uint64           `json:"order_id"`
	Action     string           `json:"action"`
	ActorName  string           `json:"actor_name"`
	Changes    domain.ChangeSet `json:"changes,omitempty"`
	RecordedAt time.Time        `json:"recorded_at"`
}

func (oh *OrderHandler) OrderHistory(ctx *gin.Context) {
	orderID, err := orderIDParam(ctx)
	if err != nil {
		oh.handleValidationError(ctx, err)
		return
	}

	entries, err := oh.service.OrderHistory(ctx, getActor(ctx), orderID)
	if err != nil {
		oh.handleError(ctx, err)
		return
	}

	result := make([]HistoryEntryResp, 0, len(entries))
	for _, e := range entries {
		result = append(result, HistoryEntryResp{
			ID:         e.ID,
			OrderID:    e.OrderID,
			Action:     string(e.Action),
			ActorName:  e.ActorName,
			Changes:    e.Changes,
			RecordedAt: e.RecordedAt,
		})
	}

	oh.handleSuccess(ctx, result)
}
