// Package ledger owns the append-only audit trail of order mutations.
// Entries are built here so their invariants hold before anything is
// persisted: the first entry of an order is always CREATED, and an
// UPDATED entry always carries a non-empty change set.
package ledger

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/vperfumes/ordertrack/internal/core/domain"
	"github.com/vperfumes/ordertrack/internal/core/port"
)

type Ledger struct {
	repo   port.Repository
	logger *zap.Logger
}

func New(repo port.Repository, logger *zap.Logger) (*Ledger, error) {
	return &Ledger{repo: repo, logger: logger}, nil
}

// NewCreationEntry builds the CREATED entry recorded alongside a new
// order. It carries no change set.
func (l *Ledger) NewCreationEntry(order *domain.Order, actor domain.Actor) *domain.HistoryEntry {
	return &domain.HistoryEntry{
		OrderID:    order.ID,
		ActorID:    actor.UserID,
		ActorName:  actor.DisplayName,
		Action:     domain.HistoryActionCreated,
		RecordedAt: time.Now(),
	}
}

// NewUpdateEntry builds an UPDATED entry for a mutation. An empty
// change set is a contract breach by the caller: no-op updates must
// never reach the ledger.
func (l *Ledger) NewUpdateEntry(order *domain.Order, actor domain.Actor, changes domain.ChangeSet) (*domain.HistoryEntry, error) {
	if len(changes) == 0 {
		l.logger.Error("empty change set reached the ledger",
			zap.Uint64("order", order.ID), zap.Uint64("actor", actor.UserID))
		return nil, domain.ErrEmptyChangeSet
	}
	return &domain.HistoryEntry{
		OrderID:    order.ID,
		ActorID:    actor.UserID,
		ActorName:  actor.DisplayName,
		Action:     domain.HistoryActionUpdated,
		Changes:    changes,
		RecordedAt: time.Now(),
	}, nil
}

// EntriesFor returns an order's entries oldest first. An order that
// never existed yields ErrDataNotFound; an existing order with a
// missing or misplaced CREATED entry means the ledger itself is broken
// and the read is refused.
func (l *Ledger) EntriesFor(ctx context.Context, orderID uint64) ([]*domain.HistoryEntry, error) {
	entries, err := l.repo.ListHistory(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if len(entries) == 0 {
		_, err := l.repo.ReadOrder(ctx, orderID)
		if err != nil {
			if errors.Is(err, domain.ErrDataNotFound) {
				return nil, domain.ErrDataNotFound
			}
			return nil, err
		}
		l.logger.Error("order exists but has no history", zap.Uint64("order", orderID))
		return nil, domain.ErrLedgerCorrupted
	}

	if entries[0].Action != domain.HistoryActionCreated {
		l.logger.Error("first history entry is not CREATED", zap.Uint64("order", orderID))
		return nil, domain.ErrLedgerCorrupted
	}

	return entries, nil
}
