package ledger_test

import (
	"context"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/vperfumes/ordertrack/internal/core/domain"
	"github.com/vperfumes/ordertrack/internal/core/ledger"
	"github.com/vperfumes/ordertrack/internal/core/port/mock"
)

var actor = domain.Actor{UserID: 3, DisplayName: "Acme Delivery", Role: domain.UserRoleCompany}

func TestLedger_NewCreationEntry(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	logger, _ := zap.NewProduction()
	l, err := ledger.New(mock.NewMockRepository(mockCtrl), logger)
	assert.NoError(t, err)

	order := &domain.Order{ID: 11}
	entry := l.NewCreationEntry(order, actor)

	assert.Equal(t, domain.HistoryActionCreated, entry.Action)
	assert.Equal(t, order.ID, entry.OrderID)
	assert.Equal(t, actor.UserID, entry.ActorID)
	assert.Equal(t, actor.DisplayName, entry.ActorName)
	assert.Empty(t, entry.Changes)
}

func TestLedger_NewUpdateEntry(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	logger, _ := zap.NewProduction()
	l, err := ledger.New(mock.NewMockRepository(mockCtrl), logger)
	assert.NoError(t, err)

	order := &domain.Order{ID: 11}

	t.Run("non-empty change set", func(t *testing.T) {
		changes := domain.ChangeSet{
			domain.FieldDeliveryCost: {Old: "3", New: "5"},
		}

		entry, err := l.NewUpdateEntry(order, actor, changes)

		assert.NoError(t, err)
		assert.Equal(t, domain.HistoryActionUpdated, entry.Action)
		assert.Equal(t, changes, entry.Changes)
		assert.Equal(t, actor.DisplayName, entry.ActorName)
	})

	t.Run("empty change set is an invariant violation", func(t *testing.T) {
		entry, err := l.NewUpdateEntry(order, actor, domain.ChangeSet{})

		assert.Nil(t, entry)
		assert.ErrorIs(t, err, domain.ErrEmptyChangeSet)
	})
}

func TestLedger_EntriesFor(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	logger, _ := zap.NewProduction()

	created := &domain.HistoryEntry{ID: 1, OrderID: 11, Action: domain.HistoryActionCreated, RecordedAt: time.Now()}
	updated := &domain.HistoryEntry{ID: 2, OrderID: 11, Action: domain.HistoryActionUpdated,
		Changes: domain.ChangeSet{domain.FieldStatus: {Old: "ONGOING", New: "COMPLETED"}}, RecordedAt: time.Now()}

	tests := []struct {
		name       string
		mock       func(repo *mock.MockRepository)
		expError   error
		expEntries []*domain.HistoryEntry
	}{
		{
			name: "entries in append order",
			mock: func(repo *mock.MockRepository) {
				repo.EXPECT().ListHistory(gomock.Any(), uint64(11)).
					Return([]*domain.HistoryEntry{created, updated}, nil)
			},
			expEntries: []*domain.HistoryEntry{created, updated},
		},
		{
			name: "order never existed",
			mock: func(repo *mock.MockRepository) {
				repo.EXPECT().ListHistory(gomock.Any(), uint64(11)).
					Return([]*domain.HistoryEntry{}, nil)
				repo.EXPECT().ReadOrder(gomock.Any(), uint64(11)).
					Return(nil, domain.ErrDataNotFound)
			},
			expError: domain.ErrDataNotFound,
		},
		{
			name: "order exists with empty ledger",
			mock: func(repo *mock.MockRepository) {
				repo.EXPECT().ListHistory(gomock.Any(), uint64(11)).
					Return([]*domain.HistoryEntry{}, nil)
				repo.EXPECT().ReadOrder(gomock.Any(), uint64(11)).
					Return(&domain.Order{ID: 11}, nil)
			},
			expError: domain.ErrLedgerCorrupted,
		},
		{
			name: "first entry is not CREATED",
			mock: func(repo *mock.MockRepository) {
				repo.EXPECT().ListHistory(gomock.Any(), uint64(11)).
					Return([]*domain.HistoryEntry{updated}, nil)
			},
			expError: domain.ErrLedgerCorrupted,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			repo := mock.NewMockRepository(mockCtrl)
			test.mock(repo)

			l, err := ledger.New(repo, logger)
			assert.NoError(t, err)

			entries, err := l.EntriesFor(context.Background(), 11)

			if test.expError != nil {
				assert.ErrorIs(t, err, test.expError)
				assert.Nil(t, entries)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, test.expEntries, entries)
		})
	}
}
