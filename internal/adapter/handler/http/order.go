package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/govalues/decimal"
	"github.com/vperfumes/ordertrack/internal/core/domain"
	"github.com/vperfumes/ordertrack/internal/core/port"
	"go.uber.org/zap"
)

type OrderHandler struct {
	Handler
	service port.Service
}

func NewOrderHandler(service port.Service, logger *zap.Logger) (*OrderHandler, error) {
	return &OrderHandler{
		Handler: *NewHandler(logger),
		service: service,
	}, nil
}

type OrderRequest struct {
	CompanyID     uint64   `json:"company_id"`
	CustomerName  string   `json:"customer_name"`
	CustomerPhone string   `json:"customer_phone"`
	DeliveryArea  string   `json:"delivery_area"`
	OrderPrice    *float64 `json:"order_price"`
	DeliveryCost  *float64 `json:"delivery_cost"`
	OrderDate     string   `json:"order_date"`
	Notes         string   `json:"notes"`
}

type OrderUpdateRequest struct {
	CustomerName  *string  `json:"customer_name"`
	CustomerPhone *string  `json:"customer_phone"`
	DeliveryArea  *string  `json:"delivery_area"`
	OrderPrice    *float64 `json:"order_price"`
	DeliveryCost  *float64 `json:"delivery_cost"`
	Status        *string  `json:"status"`
	OrderDate     *string  `json:"order_date"`
	Notes         *string  `json:"notes"`
}

type OrderResp struct {
	ID            uint64          `json:"id"`
	Number        uint64          `json:"order_number"`
	CompanyID     uint64          `json:"company_id"`
	CustomerName  string          `json:"customer_name"`
	CustomerPhone string          `json:"customer_phone"`
	DeliveryArea  string          `json:"delivery_area"`
	OrderPrice    decimal.Decimal `json:"order_price"`
	DeliveryCost  decimal.Decimal `json:"delivery_cost"`
	Status        string          `json:"status"`
	Notes         string          `json:"notes,omitempty"`
	OrderDate     string          `json:"order_date"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

func orderResp(o *domain.Order) OrderResp {
	return OrderResp{
		ID:            o.ID,
		Number:        o.Number,
		CompanyID:     o.CompanyID,
		CustomerName:  o.CustomerName,
		CustomerPhone: o.CustomerPhone,
		DeliveryArea:  o.DeliveryArea,
		OrderPrice:    o.OrderPrice,
		DeliveryCost:  o.DeliveryCost,
		Status:        string(o.Status),
		Notes:         o.Notes,
		OrderDate:     o.OrderDate,
		CreatedAt:     o.CreatedAt,
		UpdatedAt:     o.UpdatedAt,
	}
}

func parseMoney(field string, value *float64) (*decimal.Decimal, error) {
	if value == nil {
		return nil, nil
	}
	d, err := decimal.NewFromFloat64(*value)
	if err != nil {
		return nil, domain.ValidationError(field)
	}
	return &d, nil
}

func (oh *OrderHandler) CreateOrder(ctx *gin.Context) {
	req := OrderRequest{}
	err := ctx.ShouldBindBodyWithJSON(&req)
	if err != nil {
		oh.handleValidationError(ctx, domain.ErrBadRequest)
		return
	}

	price, err := parseMoney("order_price", req.OrderPrice)
	if err != nil {
		oh.handleValidationError(ctx, err)
		return
	}
	cost, err := parseMoney("delivery_cost", req.DeliveryCost)
	if err != nil {
		oh.handleValidationError(ctx, err)
		return
	}

	draft := &domain.OrderDraft{
		CompanyID:     req.CompanyID,
		CustomerName:  req.CustomerName,
		CustomerPhone: req.CustomerPhone,
		DeliveryArea:  req.DeliveryArea,
		OrderPrice:    price,
		DeliveryCost:  cost,
		OrderDate:     req.OrderDate,
		Notes:         req.Notes,
	}

	order, err := oh.service.CreateOrder(ctx, getActor(ctx), draft)
	if err != nil {
		oh.handleError(ctx, err)
		return
	}

	oh.handleSuccessWithStatus(ctx, orderResp(order), http.StatusOK)
}

func (oh *OrderHandler) UpdateOrder(ctx *gin.Context) {
	orderID, err := orderIDParam(ctx)
	if err != nil {
		oh.handleValidationError(ctx, err)
		return
	}

	req := OrderUpdateRequest{}
	err = ctx.ShouldBindBodyWithJSON(&req)
	if err != nil {
		oh.handleValidationError(ctx, domain.ErrBadRequest)
		return
	}

	price, err := parseMoney("order_price", req.OrderPrice)
	if err != nil {
		oh.handleValidationError(ctx, err)
		return
	}
	cost, err := parseMoney("delivery_cost", req.DeliveryCost)
	if err != nil {
		oh.handleValidationError(ctx, err)
		return
	}

	patch := &domain.OrderPatch{
		CustomerName:  req.CustomerName,
		CustomerPhone: req.CustomerPhone,
		DeliveryArea:  req.DeliveryArea,
		OrderPrice:    price,
		DeliveryCost:  cost,
		OrderDate:     req.OrderDate,
		Notes:         req.Notes,
	}
	if req.Status != nil {
		status := domain.OrderStatus(*req.Status)
		patch.Status = &status
	}

	order, err := oh.service.UpdateOrder(ctx, getActor(ctx), orderID, patch)
	if err != nil {
		oh.handleError(ctx, err)
		return
	}

	oh.handleSuccess(ctx, orderResp(order))
}

func (oh *OrderHandler) GetOrder(ctx *gin.Context) {
	orderID, err := orderIDParam(ctx)
	if err != nil {
		oh.handleValidationError(ctx, err)
		return
	}

	order, err := oh.service.GetOrder(ctx, getActor(ctx), orderID)
	if err != nil {
		oh.handleError(ctx, err)
		return
	}

	oh.handleSuccess(ctx, orderResp(order))
}

func (oh *OrderHandler) ListOrders(ctx *gin.Context) {
	filter := domain.OrderFilter{Search: ctx.Query("search")}

	if raw := ctx.Query("company_id"); raw != "" && raw != "all" {
		companyID, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			oh.handleValidationError(ctx, domain.ValidationError("company_id"))
			return
		}
		filter.CompanyID = &companyID
	}
	if raw := ctx.Query("status"); raw != "" && raw != "all" {
		status := domain.OrderStatus(raw)
		if !status.Valid() {
			oh.handleValidationError(ctx, domain.ErrBadStatus)
			return
		}
		filter.Status = &status
	}

	list, err := oh.service.ListOrders(ctx, getActor(ctx), filter)
	if err != nil {
		oh.handleError(ctx, err)
		return
	}

	result := make([]OrderResp, 0, len(list))
	for _, o := range list {
		result = append(result, orderResp(o))
	}

	oh.handleSuccess(ctx, result)
}

func orderIDParam(ctx *gin.Context) (uint64, error) {
	orderID, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		return 0, domain.ErrBadRequest
	}
	return orderID, nil
}
