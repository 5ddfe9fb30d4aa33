package invoicing

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/timebill/backend/internal/domain/billing"
	"github.com/timebill/backend/internal/domain/partner"
	"github.com/timebill/backend/internal/domain/shared"
	"github.com/timebill/backend/internal/domain/timesheet"
)

type MockClockingRepository struct {
	mock.Mock
}

func (m *MockClockingRepository) FindByID(ctx context.Context, id uuid.UUID) (*timesheet.Clocking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*timesheet.Clocking), args.Error(1)
}

func (m *MockClockingRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]timesheet.Clocking, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]timesheet.Clocking), args.Error(1)
}

func (m *MockClockingRepository) FindForSelection(ctx context.Context, q timesheet.SelectionQuery) ([]timesheet.Clocking, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]timesheet.Clocking), args.Error(1)
}

func (m *MockClockingRepository) Save(ctx context.Context, clocking *timesheet.Clocking) error {
	args := m.Called(ctx, clocking)
	return args.Error(0)
}

func (m *MockClockingRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockCustomerRepository struct {
	mock.Mock
}

func (m *MockCustomerRepository) FindByCode(ctx context.Context, code string) (*partner.Customer, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Customer), args.Error(1)
}

func (m *MockCustomerRepository) FindAll(ctx context.Context, filter shared.Filter) ([]partner.Customer, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]partner.Customer), args.Error(1)
}

func (m *MockCustomerRepository) Save(ctx context.Context, customer *partner.Customer) error {
	args := m.Called(ctx, customer)
	return args.Error(0)
}

type MockDocumentRepository struct {
	mock.Mock
}

func (m *MockDocumentRepository) FindByID(ctx context.Context, id uuid.UUID) (*billing.Document, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.Document), args.Error(1)
}

func (m *MockDocumentRepository) FindByNumber(ctx context.Context, documentNumber string) (*billing.Document, error) {
	args := m.Called(ctx, documentNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.Document), args.Error(1)
}

func (m *MockDocumentRepository) FindAll(ctx context.Context, filter shared.Filter) ([]billing.Document, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]billing.Document), args.Error(1)
}

func (m *MockDocumentRepository) DetailsForDocument(ctx context.Context, documentID uuid.UUID) ([]billing.DocumentDetail, error) {
	args := m.Called(ctx, documentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]billing.DocumentDetail), args.Error(1)
}

func (m *MockDocumentRepository) LatestDetailsFor(ctx context.Context, clockingIDs []uuid.UUID) (map[uuid.UUID]billing.EffectiveDocument, error) {
	args := m.Called(ctx, clockingIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[uuid.UUID]billing.EffectiveDocument), args.Error(1)
}

type MockNumberAllocator struct {
	mock.Mock
}

func (m *MockNumberAllocator) Peek(ctx context.Context, docType billing.DocumentType) (string, error) {
	args := m.Called(ctx, docType)
	return args.String(0), args.Error(1)
}

type MockDocumentWriter struct {
	mock.Mock
}

func (m *MockDocumentWriter) Persist(ctx context.Context, draft billing.DocumentDraft) (*billing.Document, error) {
	args := m.Called(ctx, draft)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.Document), args.Error(1)
}
