package repository

import (
	"context"
	"encoding/json"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/vperfumes/ordertrack/internal/adapter/storage"
	"github.com/vperfumes/ordertrack/internal/core/domain"
	"github.com/vperfumes/ordertrack/internal/core/port"
)

var orderColumns = []string{
	"id", "number", "company_id", "customer_name", "customer_phone",
	"delivery_area", "order_price", "delivery_cost", "status", "notes",
	"order_date", "created_at", "updated_at",
}

type Repository struct {
	db *storage.DB
}

func NewRepository(db *storage.DB) (*Repository, error) {
	return &Repository{db: db}, nil
}

func scanOrder(row pgx.Row, order *domain.Order) error {
	return row.Scan(
		&order.ID,
		&order.Number,
		&order.CompanyID,
		&order.CustomerName,
		&order.CustomerPhone,
		&order.DeliveryArea,
		&order.OrderPrice,
		&order.DeliveryCost,
		&order.Status,
		&order.Notes,
		&order.OrderDate,
		&order.CreatedAt,
		&order.UpdatedAt,
	)
}

func (r *Repository) CreateOrder(ctx context.Context, order *domain.Order, entry *domain.HistoryEntry) (*domain.Order, error) {
	err := pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		statement := r.db.QueryBuilder.Insert("orders").
			Columns("company_id", "customer_name", "customer_phone", "delivery_area",
				"order_price", "delivery_cost", "status", "notes", "order_date",
				"created_at", "updated_at").
			Values(order.CompanyID, order.CustomerName, order.CustomerPhone, order.DeliveryArea,
				order.OrderPrice, order.DeliveryCost, order.Status, order.Notes, order.OrderDate,
				order.CreatedAt, order.UpdatedAt).
			Suffix("returning id, number")

		sql, args, err := statement.ToSql()
		if err != nil {
			return err
		}

		err = tx.QueryRow(ctx, sql, args...).Scan(&order.ID, &order.Number)
		if err != nil {
			return err
		}

		entry.OrderID = order.ID
		return r.appendHistory(ctx, tx, entry)
	})
	if err != nil {
		if pgErr, ok := err.(*pgconn.PgError); ok && pgErr.Code == pgerrcode.UniqueViolation {
			return nil, domain.ErrConflictingData
		}
		return nil, err
	}
	return order, nil
}

func (r *Repository) ReadOrder(ctx context.Context, orderID uint64) (*domain.Order, error) {
	statement := r.db.QueryBuilder.
		Select(orderColumns...).
		From("orders").
		Where(sq.Eq{"id": orderID})

	sql, args, err := statement.ToSql()
	if err != nil {
		return nil, err
	}

	order := domain.Order{}
	err = scanOrder(r.db.QueryRow(ctx, sql, args...), &order)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrDataNotFound
		}
		return nil, err
	}

	return &order, nil
}

// UpdateOrder serializes the read-modify-append-write sequence for one
// order: the row is locked for the whole transaction, so a concurrent
// update can never diff against a stale record.
func (r *Repository) UpdateOrder(ctx context.Context, orderID uint64, updateFn port.UpdateOrderFn) (*domain.Order, error) {
	order := domain.Order{}

	err := pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		statement := r.db.QueryBuilder.
			Select(orderColumns...).
			From("orders").
			Where(sq.Eq{"id": orderID}).
			Suffix("FOR UPDATE")

		sql, args, err := statement.ToSql()
		if err != nil {
			return err
		}

		err = scanOrder(tx.QueryRow(ctx, sql, args...), &order)
		if err != nil {
			if err == pgx.ErrNoRows {
				return domain.ErrDataNotFound
			}
			return err
		}

		entry, err := updateFn(&order)
		if err != nil {
			return err
		}
		if entry == nil {
			// No-op update: the record and the ledger stay untouched.
			return nil
		}

		update := r.db.QueryBuilder.Update("orders").
			Set("customer_name", order.CustomerName).
			Set("customer_phone", order.CustomerPhone).
			Set("delivery_area", order.DeliveryArea).
			Set("order_price", order.OrderPrice).
			Set("delivery_cost", order.DeliveryCost).
			Set("status", order.Status).
			Set("notes", order.Notes).
			Set("order_date", order.OrderDate).
			Set("updated_at", order.UpdatedAt).
			Where(sq.Eq{"id": orderID})

		sql, args, err = update.ToSql()
		if err != nil {
			return err
		}

		_, err = tx.Exec(ctx, sql, args...)
		if err != nil {
			return err
		}

		return r.appendHistory(ctx, tx, entry)
	})
	if err != nil {
		return nil, err
	}

	return &order, nil
}

func (r *Repository) ListOrders(ctx context.Context, filter domain.OrderFilter) ([]*domain.Order, error) {
	statement := buildListOrdersQuery(r.db.QueryBuilder, filter)

	sql, args, err := statement.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := make([]*domain.Order, 0)
	for rows.Next() {
		order := domain.Order{}
		err := scanOrder(rows, &order)
		if err != nil {
			return nil, err
		}
		list = append(list, &order)
	}

	err = rows.Err()
	if err != nil {
		return nil, err
	}

	return list, nil
}

// buildListOrdersQuery compiles an OrderFilter into a single WHERE:
// every active filter must hold (logical AND).
func buildListOrdersQuery(qb *sq.StatementBuilderType, filter domain.OrderFilter) sq.SelectBuilder {
	statement := qb.
		Select(orderColumns...).
		From("orders").
		OrderBy("created_at DESC")

	if filter.CompanyID != nil {
		statement = statement.Where(sq.Eq{"company_id": *filter.CompanyID})
	}
	if filter.Status != nil {
		statement = statement.Where(sq.Eq{"status": *filter.Status})
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		like := "%" + search + "%"
		statement = statement.Where(sq.Or{
			sq.Expr("number::text ILIKE ?", like),
			sq.ILike{"customer_name": like},
			sq.Like{"customer_phone": like},
		})
	}

	return statement
}

func (r *Repository) appendHistory(ctx context.Context, tx pgx.Tx, entry *domain.HistoryEntry) error {
	var changes any
	if len(entry.Changes) > 0 {
		raw, err := json.Marshal(entry.Changes)
		if err != nil {
			return err
		}
		changes = raw
	}

	statement := r.db.QueryBuilder.Insert("order_history").
		Columns("order_id", "actor_id", "actor_name", "action", "changes", "recorded_at").
		Values(entry.OrderID, entry.ActorID, entry.ActorName, entry.Action, changes, entry.RecordedAt).
		Suffix("returning id")

	sql, args, err := statement.ToSql()
	if err != nil {
		return err
	}

	return tx.QueryRow(ctx, sql, args...).Scan(&entry.ID)
}

func (r *Repository) ListHistory(ctx context.Context, orderID uint64) ([]*domain.HistoryEntry, error) {
	statement := r.db.QueryBuilder.
		Select("id", "order_id", "actor_id", "actor_name", "action", "changes", "recorded_at").
		From("order_history").
		Where(sq.Eq{"order_id": orderID}).
		OrderBy("id ASC")

	sql, args, err := statement.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := make([]*domain.HistoryEntry, 0)
	for rows.Next() {
		entry := domain.HistoryEntry{}
		var changes []byte
		err := rows.Scan(
			&entry.ID,
			&entry.OrderID,
			&entry.ActorID,
			&entry.ActorName,
			&entry.Action,
			&changes,
			&entry.RecordedAt,
		)
		if err != nil {
			return nil, err
		}
		if len(changes) > 0 {
			if err := json.Unmarshal(changes, &entry.Changes); err != nil {
				return nil, err
			}
		}
		list = append(list, &entry)
	}

	err = rows.Err()
	if err != nil {
		return nil, err
	}

	return list, nil
}

func (r *Repository) CountOrdersByStatus(ctx context.Context, companyID *uint64) (map[domain.OrderStatus]int, error) {
	statement := r.db.QueryBuilder.
		Select("status", "count(*)").
		From("orders").
		GroupBy("status")

	if companyID != nil {
		statement = statement.Where(sq.Eq{"company_id": *companyID})
	}

	sql, args, err := statement.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[domain.OrderStatus]int)
	for rows.Next() {
		var status domain.OrderStatus
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		counts[status] = count
	}

	err = rows.Err()
	if err != nil {
		return nil, err
	}

	return counts, nil
}

func (r *Repository) CreateCompanyAccount(ctx context.Context, company *domain.Company, user *domain.User) (*domain.Company, error) {
	err := pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		companySt := r.db.QueryBuilder.
			Insert("companies").
			Columns("name", "created_at").
			Values(company.Name, company.CreatedAt).
			Suffix("returning id")

		sql, args, err := companySt.ToSql()
		if err != nil {
			return err
		}

		err = tx.QueryRow(ctx, sql, args...).Scan(&company.ID)
		if err != nil {
			return err
		}

		user.CompanyID = &company.ID
		userSt := r.db.QueryBuilder.
			Insert("users").
			Columns("login", "password", "role", "company_id").
			Values(user.Login, user.Password, user.Role, user.CompanyID).
			Suffix("returning id")

		sql, args, err = userSt.ToSql()
		if err != nil {
			return err
		}

		return tx.QueryRow(ctx, sql, args...).Scan(&user.ID)
	})
	if err != nil {
		if pgErr, ok := err.(*pgconn.PgError); ok && pgErr.Code == pgerrcode.UniqueViolation {
			return nil, domain.ErrConflictingData
		}
		return nil, err
	}

	return company, nil
}

func (r *Repository) ReadCompany(ctx context.Context, companyID uint64) (*domain.Company, error) {
	statement := r.db.QueryBuilder.
		Select("id", "name", "created_at").
		From("companies").
		Where(sq.Eq{"id": companyID})

	sql, args, err := statement.ToSql()
	if err != nil {
		return nil, err
	}

	company := domain.Company{}
	err = r.db.QueryRow(ctx, sql, args...).Scan(&company.ID, &company.Name, &company.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrDataNotFound
		}
		return nil, err
	}

	return &company, nil
}

func (r *Repository) ListCompanies(ctx context.Context) ([]*domain.Company, error) {
	statement := r.db.QueryBuilder.
		Select("id", "name", "created_at").
		From("companies").
		OrderBy("name ASC")

	sql, args, err := statement.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := make([]*domain.Company, 0)
	for rows.Next() {
		company := domain.Company{}
		if err := rows.Scan(&company.ID, &company.Name, &company.CreatedAt); err != nil {
			return nil, err
		}
		list = append(list, &company)
	}

	err = rows.Err()
	if err != nil {
		return nil, err
	}

	return list, nil
}

func (r *Repository) CreateUser(ctx context.Context, user *domain.User) (*domain.User, error) {
	statement := r.db.QueryBuilder.
		Insert("users").
		Columns("login", "password", "role", "company_id").
		Values(user.Login, user.Password, user.Role, user.CompanyID).
		Suffix("returning id")

	sql, args, err := statement.ToSql()
	if err != nil {
		return nil, err
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&user.ID)
	if err != nil {
		if pgErr, ok := err.(*pgconn.PgError); ok && pgErr.Code == pgerrcode.UniqueViolation {
			return nil, domain.ErrConflictingData
		}
		return nil, err
	}

	return user, nil
}

func (r *Repository) GetUserByLogin(ctx context.Context, login string) (*domain.User, error) {
	statement := r.db.QueryBuilder.
		Select("id", "login", "password", "role", "company_id").
		From("users").
		Where(sq.Eq{"login": login})

	sql, args, err := statement.ToSql()
	if err != nil {
		return nil, err
	}

	user := domain.User{}
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&user.ID,
		&user.Login,
		&user.Password,
		&user.Role,
		&user.CompanyID,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrDataNotFound
		}
		return nil, err
	}

	return &user, nil
}
