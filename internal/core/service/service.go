package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/govalues/decimal"
	"go.uber.org/zap"

	"github.com/vperfumes/ordertrack/internal/core/diff"
	"github.com/vperfumes/ordertrack/internal/core/domain"
	"github.com/vperfumes/ordertrack/internal/core/ledger"
	"github.com/vperfumes/ordertrack/internal/core/port"
	"github.com/vperfumes/ordertrack/internal/core/utils"
)

const orderDateLayout = "2006-01-02"

type Service struct {
	repo         port.Repository
	ledger       *ledger.Ledger
	tokenService port.TokenService
	notifier     port.StatusNotifier
	logger       *zap.Logger
}

func NewService(repo port.Repository, ledger *ledger.Ledger, tokenService port.TokenService,
	notifier port.StatusNotifier, logger *zap.Logger) (*Service, error) {
	return &Service{
		repo:         repo,
		ledger:       ledger,
		tokenService: tokenService,
		notifier:     notifier,
		logger:       logger,
	}, nil
}

func (s *Service) LoginUser(ctx context.Context, login string, password string) (string, *domain.Actor, error) {
	user, err := s.repo.GetUserByLogin(ctx, login)
	if err != nil {
		if errors.Is(err, domain.ErrDataNotFound) {
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, domain.ErrInternal
	}

	err = utils.ComparePassword(password, user.Password)
	if err != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	actor, err := s.actorForUser(ctx, user)
	if err != nil {
		return "", nil, err
	}

	token, err := s.tokenService.CreateToken(actor)
	if err != nil {
		s.logger.Error("Create token", zap.Error(err))
		return "", nil, domain.ErrTokenCreation
	}

	return token, actor, nil
}

// actorForUser resolves the display identity attached to ledger
// entries: company users act under their company's name.
func (s *Service) actorForUser(ctx context.Context, user *domain.User) (*domain.Actor, error) {
	actor := &domain.Actor{
		UserID:      user.ID,
		DisplayName: user.Login,
		Role:        user.Role,
		CompanyID:   user.CompanyID,
	}

	if user.Role == domain.UserRoleCompany {
		if user.CompanyID == nil {
			s.logger.Error("company user without company", zap.Uint64("user", user.ID))
			return nil, domain.ErrInternal
		}
		company, err := s.repo.ReadCompany(ctx, *user.CompanyID)
		if err != nil {
			return nil, err
		}
		actor.DisplayName = company.Name
	}

	return actor, nil
}

func (s *Service) RegisterCompany(ctx context.Context, actor domain.Actor,
	companyName string, user *domain.User) (*domain.Company, error) {
	if !actor.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	if strings.TrimSpace(companyName) == "" {
		return nil, domain.ValidationError("company_name")
	}
	if strings.TrimSpace(user.Login) == "" {
		return nil, domain.ValidationError("username")
	}
	if user.Password == "" {
		return nil, domain.ValidationError("password")
	}

	user.Role = domain.UserRoleCompany
	company := &domain.Company{Name: companyName, CreatedAt: time.Now()}

	newCompany, err := s.repo.CreateCompanyAccount(ctx, company, user)
	if err != nil {
		if errors.Is(err, domain.ErrConflictingData) {
			return nil, err
		}
		s.logger.Error("Create company account", zap.Error(err))
		return nil, domain.ErrInternal
	}

	return newCompany, nil
}

// EnsureAdmin creates the bootstrap admin login if it does not exist.
func (s *Service) EnsureAdmin(ctx context.Context, login string, password string) error {
	_, err := s.repo.GetUserByLogin(ctx, login)
	if err == nil {
		return nil
	}
	if !errors.Is(err, domain.ErrDataNotFound) {
		return err
	}

	hashed, err := utils.HashPassword(password)
	if err != nil {
		return err
	}

	_, err = s.repo.CreateUser(ctx, &domain.User{
		Login:    login,
		Password: hashed,
		Role:     domain.UserRoleAdmin,
	})
	if errors.Is(err, domain.ErrConflictingData) {
		return nil
	}
	return err
}

func (s *Service) CreateOrder(ctx context.Context, actor domain.Actor, draft *domain.OrderDraft) (*domain.Order, error) {
	companyID, err := s.resolveCompanyScope(ctx, actor, draft.CompanyID)
	if err != nil {
		return nil, err
	}

	if err := validateDraft(draft); err != nil {
		return nil, err
	}

	now := time.Now()

	price := decimal.Zero
	if draft.OrderPrice != nil {
		price = *draft.OrderPrice
	}
	orderDate := draft.OrderDate
	if orderDate == "" {
		orderDate = now.Format(orderDateLayout)
	}

	order := &domain.Order{
		CompanyID:     companyID,
		CustomerName:  strings.TrimSpace(draft.CustomerName),
		CustomerPhone: strings.TrimSpace(draft.CustomerPhone),
		DeliveryArea:  strings.TrimSpace(draft.DeliveryArea),
		OrderPrice:    price,
		DeliveryCost:  *draft.DeliveryCost,
		Status:        domain.OrderStatusOngoing,
		Notes:         draft.Notes,
		OrderDate:     orderDate,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	entry := s.ledger.NewCreationEntry(order, actor)

	newOrder, err := s.repo.CreateOrder(ctx, order, entry)
	if err != nil {
		s.logger.Error("Create order", zap.Error(err))
		return nil, err
	}

	return newOrder, nil
}

func (s *Service) UpdateOrder(ctx context.Context, actor domain.Actor,
	orderID uint64, patch *domain.OrderPatch) (*domain.Order, error) {
	if err := validatePatch(patch); err != nil {
		return nil, err
	}

	var prevStatus domain.OrderStatus
	statusChanged := false

	order, err := s.repo.UpdateOrder(ctx, orderID, func(current *domain.Order) (*domain.HistoryEntry, error) {
		if !actor.IsAdmin() && !actor.OwnsCompany(current.CompanyID) {
			return nil, domain.ErrForbidden
		}

		before := *current
		applyPatch(current, patch)

		changes := diff.Compute(&before, current)
		if len(changes) == 0 {
			// No actual change: nothing is written, nothing is audited.
			return nil, nil
		}

		prevStatus = before.Status
		statusChanged = before.Status != current.Status
		current.UpdatedAt = time.Now()

		return s.ledger.NewUpdateEntry(current, actor, changes)
	})
	if err != nil {
		if errors.Is(err, domain.ErrEmptyChangeSet) || errors.Is(err, domain.ErrLedgerCorrupted) {
			s.logger.Error("Update order aborted on ledger invariant", zap.Uint64("order", orderID), zap.Error(err))
		}
		return nil, err
	}

	if statusChanged {
		if nerr := s.notifier.OrderStatusChanged(ctx, order, prevStatus); nerr != nil {
			s.logger.Warn("status notification failed",
				zap.Uint64("order", order.ID), zap.Error(nerr))
		}
	}

	return order, nil
}

func (s *Service) GetOrder(ctx context.Context, actor domain.Actor, orderID uint64) (*domain.Order, error) {
	order, err := s.repo.ReadOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !actor.IsAdmin() && !actor.OwnsCompany(order.CompanyID) {
		return nil, domain.ErrForbidden
	}
	return order, nil
}

func (s *Service) ListOrders(ctx context.Context, actor domain.Actor, filter domain.OrderFilter) ([]*domain.Order, error) {
	// Company actors are force-scoped to their own company no matter
	// what filter the request carried.
	if !actor.IsAdmin() {
		if actor.CompanyID == nil {
			return nil, domain.ErrForbidden
		}
		filter.CompanyID = actor.CompanyID
	}

	list, err := s.repo.ListOrders(ctx, filter)
	if err != nil {
		s.logger.Error("List orders", zap.Error(err))
		return nil, err
	}
	return list, nil
}

func (s *Service) OrderHistory(ctx context.Context, actor domain.Actor, orderID uint64) ([]*domain.HistoryEntry, error) {
	order, err := s.repo.ReadOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !actor.IsAdmin() && !actor.OwnsCompany(order.CompanyID) {
		return nil, domain.ErrForbidden
	}

	return s.ledger.EntriesFor(ctx, orderID)
}

func (s *Service) Stats(ctx context.Context, actor domain.Actor, companyID *uint64) (*domain.StatusCounts, error) {
	scope := companyID
	if !actor.IsAdmin() {
		if actor.CompanyID == nil {
			return nil, domain.ErrForbidden
		}
		if companyID != nil && *companyID != *actor.CompanyID {
			return nil, domain.ErrForbidden
		}
		scope = actor.CompanyID
	}

	counts, err := s.repo.CountOrdersByStatus(ctx, scope)
	if err != nil {
		s.logger.Error("Count orders", zap.Error(err))
		return nil, err
	}

	stats := &domain.StatusCounts{
		Ongoing:   counts[domain.OrderStatusOngoing],
		Completed: counts[domain.OrderStatusCompleted],
		Cancelled: counts[domain.OrderStatusCancelled],
	}
	stats.Total = stats.Ongoing + stats.Completed + stats.Cancelled

	return stats, nil
}

func (s *Service) ListCompanies(ctx context.Context, actor domain.Actor) ([]*domain.Company, error) {
	if !actor.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	return s.repo.ListCompanies(ctx)
}

// resolveCompanyScope picks the owning company of a new order: company
// actors always create into their own company, admins must name an
// existing one.
func (s *Service) resolveCompanyScope(ctx context.Context, actor domain.Actor, requested uint64) (uint64, error) {
	if !actor.IsAdmin() {
		if actor.CompanyID == nil {
			return 0, domain.ErrForbidden
		}
		if requested != 0 && requested != *actor.CompanyID {
			return 0, domain.ErrForbidden
		}
		return *actor.CompanyID, nil
	}

	if requested == 0 {
		return 0, domain.ValidationError("company_id")
	}
	if _, err := s.repo.ReadCompany(ctx, requested); err != nil {
		return 0, err
	}
	return requested, nil
}

func validateDraft(draft *domain.OrderDraft) error {
	if strings.TrimSpace(draft.CustomerName) == "" {
		return domain.ValidationError("customer_name")
	}
	if strings.TrimSpace(draft.CustomerPhone) == "" {
		return domain.ValidationError("customer_phone")
	}
	if strings.TrimSpace(draft.DeliveryArea) == "" {
		return domain.ValidationError("delivery_area")
	}
	if draft.DeliveryCost == nil || draft.DeliveryCost.IsNeg() {
		return domain.ValidationError("delivery_cost")
	}
	if draft.OrderPrice != nil && draft.OrderPrice.IsNeg() {
		return domain.ValidationError("order_price")
	}
	if draft.OrderDate != "" {
		if _, err := time.Parse(orderDateLayout, draft.OrderDate); err != nil {
			return domain.ValidationError("order_date")
		}
	}
	return nil
}

func validatePatch(patch *domain.OrderPatch) error {
	if patch.CustomerName != nil && strings.TrimSpace(*patch.CustomerName) == "" {
		return domain.ValidationError("customer_name")
	}
	if patch.CustomerPhone != nil && strings.TrimSpace(*patch.CustomerPhone) == "" {
		return domain.ValidationError("customer_phone")
	}
	if patch.DeliveryArea != nil && strings.TrimSpace(*patch.DeliveryArea) == "" {
		return domain.ValidationError("delivery_area")
	}
	if patch.DeliveryCost != nil && patch.DeliveryCost.IsNeg() {
		return domain.ValidationError("delivery_cost")
	}
	if patch.OrderPrice != nil && patch.OrderPrice.IsNeg() {
		return domain.ValidationError("order_price")
	}
	if patch.OrderDate != nil {
		if _, err := time.Parse(orderDateLayout, *patch.OrderDate); err != nil {
			return domain.ValidationError("order_date")
		}
	}
	if patch.Status != nil && !patch.Status.Valid() {
		return domain.ErrBadStatus
	}
	return nil
}

func applyPatch(order *domain.Order, patch *domain.OrderPatch) {
	if patch.CustomerName != nil {
		order.CustomerName = strings.TrimSpace(*patch.CustomerName)
	}
	if patch.CustomerPhone != nil {
		order.CustomerPhone = strings.TrimSpace(*patch.CustomerPhone)
	}
	if patch.DeliveryArea != nil {
		order.DeliveryArea = strings.TrimSpace(*patch.DeliveryArea)
	}
	if patch.OrderPrice != nil {
		order.OrderPrice = *patch.OrderPrice
	}
	if patch.DeliveryCost != nil {
		order.DeliveryCost = *patch.DeliveryCost
	}
	if patch.Status != nil {
		order.Status = *patch.Status
	}
	if patch.Notes != nil {
		order.Notes = *patch.Notes
	}
	if patch.OrderDate != nil {
		order.OrderDate = *patch.OrderDate
	}
}
