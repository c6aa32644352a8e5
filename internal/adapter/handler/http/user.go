package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/vperfumes/ordertrack/internal/core/domain"
	"github.com/vperfumes/ordertrack/internal/core/port"
	"github.com/vperfumes/ordertrack/internal/core/utils"
	"go.uber.org/zap"
)

type UserHandler struct {
	Handler
	service port.Service
}

func NewUserHandler(service port.Service, logger *zap.Logger) (*UserHandler, error) {
	return &UserHandler{
		Handler: *NewHandler(logger),
		service: service,
	}, nil
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type ActorResp struct {
	ID          uint64  `json:"id"`
	Username    string  `json:"username"`
	Role        string  `json:"role"`
	CompanyID   *uint64 `json:"company_id,omitempty"`
	CompanyName string  `json:"company_name,omitempty"`
}

func (uh *UserHandler) LoginUser(ctx *gin.Context) {
	req := LoginRequest{}
	err := ctx.ShouldBindBodyWithJSON(&req)
	if err != nil {
		uh.handleValidationError(ctx, domain.ErrBadRequest)
		return
	}

	token, actor, err := uh.service.LoginUser(ctx, req.Username, req.Password)
	if err != nil {
		uh.handleError(ctx, err)
		return
	}

	resp := ActorResp{
		ID:        actor.UserID,
		Username:  actor.DisplayName,
		Role:      string(actor.Role),
		CompanyID: actor.CompanyID,
	}
	if actor.Role == domain.UserRoleCompany {
		resp.CompanyName = actor.DisplayName
	}

	uh.handleSuccess(ctx, struct {
		Token string    `json:"token"`
		User  ActorResp `json:"user"`
	}{Token: token, User: resp})
}

type RegisterCompanyRequest struct {
	Username    string `json:"username"`
	Password    string `json:"password"`
	CompanyName string `json:"company_name"`
}

func (uh *UserHandler) RegisterCompany(ctx *gin.Context) {
	req := RegisterCompanyRequest{}
	err := ctx.ShouldBindBodyWithJSON(&req)
	if err != nil {
		uh.handleValidationError(ctx, domain.ErrBadRequest)
		return
	}

	if req.Password == "" {
		uh.handleValidationError(ctx, domain.ValidationError("password"))
		return
	}

	hashed, err := utils.HashPassword(req.Password)
	if err != nil {
		uh.handleError(ctx, domain.ErrInternal)
		return
	}

	user := &domain.User{
		Login:    req.Username,
		Password: hashed,
	}

	company, err := uh.service.RegisterCompany(ctx, getActor(ctx), req.CompanyName, user)
	if err != nil {
		uh.handleError(ctx, err)
		return
	}

	uh.handleSuccessWithStatus(ctx, struct {
		Message   string `json:"message"`
		CompanyID uint64 `json:"company_id"`
	}{Message: "User created successfully", CompanyID: company.ID}, http.StatusOK)
}

type CompanyResp struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`
}

func (uh *UserHandler) ListCompanies(ctx *gin.Context) {
	list, err := uh.service.ListCompanies(ctx, getActor(ctx))
	if err != nil {
		uh.handleError(ctx, err)
		return
	}

	result := make([]CompanyResp, 0, len(list))
	for _, c := range list {
		result = append(result, CompanyResp{ID: c.ID, Name: c.Name})
	}

	uh.handleSuccess(ctx, result)
}
