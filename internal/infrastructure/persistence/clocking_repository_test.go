package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/timebill/backend/internal/domain/billing"
	"github.com/timebill/backend/internal/domain/shared"
	"github.com/timebill/backend/internal/domain/timesheet"
	"github.com/timebill/backend/internal/infrastructure/persistence/models"
)

func TestGormClockingRepository_SaveAndFind(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormClockingRepository(db)
	ctx := context.Background()

	start := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	c := mustClocking(t, "RES-1", "CUST-1", "PROJ-1", "Design review", start, 90, 50)
	require.NoError(t, repo.Save(ctx, c))

	found, err := repo.FindByID(ctx, c.ID)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "RES-1", found.ResourceCode)
	assert.Equal(t, "CUST-1", found.CustomerCode)
	assert.Equal(t, timesheet.InvoiceStateNotInvoiced, found.InvoiceState)
	assert.True(t, found.Amount.Equal(c.Amount))
	assert.Equal(t, int64(90), found.DurationMinutes())
}

func TestGormClockingRepository_FindByID_NotFound(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormClockingRepository(db)

	found, err := repo.FindByID(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Nil(t, found)
}

func TestGormClockingRepository_FindForSelection_InvoiceMode(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormClockingRepository(db)
	ctx := context.Background()

	start := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	open := mustClocking(t, "RES-1", "CUST-1", "PROJ-1", "", start, 60, 50)
	billed := mustClocking(t, "RES-1", "CUST-1", "PROJ-1", "", start.Add(2*time.Hour), 60, 50)
	require.NoError(t, billed.MarkInvoiced("100001"))
	otherCustomer := mustClocking(t, "RES-1", "CUST-2", "PROJ-2", "", start.Add(time.Hour), 30, 40)
	require.NoError(t, repo.Save(ctx, open))
	require.NoError(t, repo.Save(ctx, billed))
	require.NoError(t, repo.Save(ctx, otherCustomer))

	result, err := repo.FindForSelection(ctx, timesheet.SelectionQuery{
		Mode:         timesheet.ModeInvoice,
		CustomerCode: "CUST-1",
	})
	require.NoError(t, err)
	require.Len(t, result, 1)
	assert.Equal(t, open.ID, result[0].ID)
}

func TestGormClockingRepository_FindForSelection_ReportMode(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormClockingRepository(db)
	ctx := context.Background()

	start := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	open := mustClocking(t, "RES-1", "CUST-1", "", "", start, 60, 50)
	billed := mustClocking(t, "RES-1", "CUST-1", "", "", start.Add(time.Hour), 60, 50)
	require.NoError(t, billed.MarkInvoiced("100042"))
	require.NoError(t, repo.Save(ctx, open))
	require.NoError(t, repo.Save(ctx, billed))

	t.Run("excludes invoiced by default", func(t *testing.T) {
		result, err := repo.FindForSelection(ctx, timesheet.SelectionQuery{Mode: timesheet.ModeReport})
		require.NoError(t, err)
		require.Len(t, result, 1)
		assert.Equal(t, open.ID, result[0].ID)
	})

	t.Run("includes invoiced on request, ordered by start time", func(t *testing.T) {
		result, err := repo.FindForSelection(ctx, timesheet.SelectionQuery{
			Mode:            timesheet.ModeReport,
			IncludeInvoiced: true,
		})
		require.NoError(t, err)
		require.Len(t, result, 2)
		assert.Equal(t, open.ID, result[0].ID)
		assert.Equal(t, billed.ID, result[1].ID)
	})

	t.Run("invoice number prefix filter", func(t *testing.T) {
		result, err := repo.FindForSelection(ctx, timesheet.SelectionQuery{
			Mode:            timesheet.ModeReport,
			IncludeInvoiced: true,
			DocumentNumber:  "1000",
			NumberIsPrefix:  true,
		})
		require.NoError(t, err)
		require.Len(t, result, 1)
		assert.Equal(t, billed.ID, result[0].ID)
	})

	t.Run("rejects inverted range", func(t *testing.T) {
		_, err := repo.FindForSelection(ctx, timesheet.SelectionQuery{
			Mode: timesheet.ModeReport,
			From: start.Add(time.Hour),
			To:   start,
		})
		assert.ErrorIs(t, err, timesheet.ErrInvalidRange)
	})
}

func TestGormClockingRepository_FindForSelection_CreditMode(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormClockingRepository(db)
	ctx := context.Background()

	start := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	invoiced := mustClocking(t, "RES-1", "CUST-1", "", "", start, 60, 50)
	require.NoError(t, invoiced.MarkInvoiced("100001"))
	credited := mustClocking(t, "RES-1", "CUST-1", "", "", start.Add(time.Hour), 60, 50)
	require.NoError(t, credited.MarkInvoiced("100002"))
	require.NoError(t, repo.Save(ctx, invoiced))
	require.NoError(t, repo.Save(ctx, credited))

	invoiceA := seedDocument(t, db, "CUST-1", billing.DocumentTypeInvoice, "100001", start)
	invoiceB := seedDocument(t, db, "CUST-1", billing.DocumentTypeInvoice, "100002", start)
	creditB := seedDocument(t, db, "CUST-1", billing.DocumentTypeCreditNote, "200001", start.Add(24*time.Hour))
	seedDetail(t, db, invoiceA, invoiced.ID)
	seedDetail(t, db, invoiceB, credited.ID)
	seedDetail(t, db, creditB, credited.ID)

	t.Run("offers only clockings whose latest document is an invoice", func(t *testing.T) {
		result, err := repo.FindForSelection(ctx, timesheet.SelectionQuery{Mode: timesheet.ModeCredit})
		require.NoError(t, err)
		require.Len(t, result, 1)
		assert.Equal(t, invoiced.ID, result[0].ID)
	})

	t.Run("filters by originating invoice number", func(t *testing.T) {
		result, err := repo.FindForSelection(ctx, timesheet.SelectionQuery{
			Mode:           timesheet.ModeCredit,
			DocumentNumber: "100002",
		})
		require.NoError(t, err)
		assert.Empty(t, result)
	})
}

func TestGormClockingRepository_FindForSelection_ReprintMode(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormClockingRepository(db)
	ctx := context.Background()

	start := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	a := mustClocking(t, "RES-1", "CUST-1", "", "", start, 60, 50)
	require.NoError(t, a.MarkInvoiced("100001"))
	b := mustClocking(t, "RES-2", "CUST-1", "", "", start.Add(time.Hour), 30, 50)
	require.NoError(t, b.MarkInvoiced("100001"))
	unrelated := mustClocking(t, "RES-1", "CUST-1", "", "", start, 60, 50)
	require.NoError(t, repo.Save(ctx, a))
	require.NoError(t, repo.Save(ctx, b))
	require.NoError(t, repo.Save(ctx, unrelated))

	doc := seedDocument(t, db, "CUST-1", billing.DocumentTypeInvoice, "100001", start)
	seedDetail(t, db, doc, a.ID)
	seedDetail(t, db, doc, b.ID)

	result, err := repo.FindForSelection(ctx, timesheet.SelectionQuery{
		Mode:           timesheet.ModeReprint,
		DocumentNumber: "100001",
	})
	require.NoError(t, err)
	require.Len(t, result, 2)
	assert.Equal(t, a.ID, result[0].ID)
	assert.Equal(t, b.ID, result[1].ID)

	t.Run("unknown document", func(t *testing.T) {
		_, err := repo.FindForSelection(ctx, timesheet.SelectionQuery{
			Mode:           timesheet.ModeReprint,
			DocumentNumber: "999999",
		})
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "NOT_FOUND", domainErr.Code)
	})
}

func TestGormClockingRepository_Delete(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormClockingRepository(db)
	ctx := context.Background()

	start := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	open := mustClocking(t, "RES-1", "CUST-1", "", "", start, 60, 50)
	billed := mustClocking(t, "RES-1", "CUST-1", "", "", start, 60, 50)
	require.NoError(t, billed.MarkInvoiced("100001"))
	require.NoError(t, repo.Save(ctx, open))
	require.NoError(t, repo.Save(ctx, billed))

	require.NoError(t, repo.Delete(ctx, open.ID))
	found, err := repo.FindByID(ctx, open.ID)
	require.NoError(t, err)
	assert.Nil(t, found)

	err = repo.Delete(ctx, billed.ID)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "ALREADY_INVOICED", domainErr.Code)

	assert.ErrorIs(t, repo.Delete(ctx, uuid.New()), shared.ErrNotFound)
}

// seedDocument inserts a document row directly, bypassing the writer
func seedDocument(t *testing.T, db *gorm.DB, customer string, docType billing.DocumentType, number string, generatedAt time.Time) uuid.UUID {
	t.Helper()
	model := &models.DocumentModel{
		ID:             uuid.New(),
		CustomerCode:   customer,
		DocumentType:   string(docType),
		DocumentNumber: number,
		DocumentDate:   generatedAt,
		GeneratedAt:    generatedAt,
		Version:        1,
		CreatedAt:      generatedAt,
		UpdatedAt:      generatedAt,
	}
	require.NoError(t, db.Create(model).Error)
	return model.ID
}

func seedDetail(t *testing.T, db *gorm.DB, documentID, clockingID uuid.UUID) {
	t.Helper()
	var doc models.DocumentModel
	require.NoError(t, db.Where("id = ?", documentID).First(&doc).Error)
	detail := &models.DocumentDetailModel{
		ID:          uuid.New(),
		DocumentID:  documentID,
		ClockingID:  clockingID,
		GeneratedAt: doc.GeneratedAt,
		CreatedAt:   time.Now(),
	}
	require.NoError(t, db.Create(detail).Error)
}
