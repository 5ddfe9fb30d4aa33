package persistence

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/timebill/backend/internal/domain/billing"
	"github.com/timebill/backend/internal/domain/shared"
	"github.com/timebill/backend/internal/infrastructure/persistence/models"
)

// GormDocumentRepository implements billing.DocumentRepository using GORM
type GormDocumentRepository struct {
	db *gorm.DB
}

// NewGormDocumentRepository creates a new repository instance
func NewGormDocumentRepository(db *gorm.DB) *GormDocumentRepository {
	return &GormDocumentRepository{db: db}
}

var _ billing.DocumentRepository = (*GormDocumentRepository)(nil)

// FindByID finds a document by its ID
func (r *GormDocumentRepository) FindByID(ctx context.Context, id uuid.UUID) (*billing.Document, error) {
	var model models.DocumentModel
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByNumber finds a document by its allocated number. Numbers are drawn
// from disjoint counter ranges, so a number identifies at most one document.
func (r *GormDocumentRepository) FindByNumber(ctx context.Context, documentNumber string) (*billing.Document, error) {
	var model models.DocumentModel
	err := r.db.WithContext(ctx).Where("document_number = ?", documentNumber).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll returns documents with pagination, newest first by default
func (r *GormDocumentRepository) FindAll(ctx context.Context, filter shared.Filter) ([]billing.Document, error) {
	var rows []models.DocumentModel
	err := r.db.WithContext(ctx).
		Order(orderClause(filter)).
		Offset((filter.Page - 1) * filter.PageSize).
		Limit(filter.PageSize).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	result := make([]billing.Document, len(rows))
	for i := range rows {
		result[i] = *rows[i].ToDomain()
	}
	return result, nil
}

// DetailsForDocument returns all detail rows linked to one document
func (r *GormDocumentRepository) DetailsForDocument(ctx context.Context, documentID uuid.UUID) ([]billing.DocumentDetail, error) {
	var rows []models.DocumentDetailModel
	err := r.db.WithContext(ctx).
		Where("document_id = ?", documentID).
		Order("generated_at ASC, id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	result := make([]billing.DocumentDetail, len(rows))
	for i := range rows {
		result[i] = rows[i].ToDomain()
	}
	return result, nil
}

// LatestDetailsFor resolves each clocking's effective document
func (r *GormDocumentRepository) LatestDetailsFor(ctx context.Context, clockingIDs []uuid.UUID) (map[uuid.UUID]billing.EffectiveDocument, error) {
	return latestDetails(r.db.WithContext(ctx), clockingIDs)
}

var documentOrderColumns = map[string]string{
	"document_number": "document_number",
	"document_date":   "document_date",
	"generated_at":    "generated_at",
	"customer_code":   "customer_code",
}

func orderClause(filter shared.Filter) string {
	column, ok := documentOrderColumns[filter.OrderBy]
	if !ok {
		return "generated_at DESC"
	}
	dir := "ASC"
	if strings.EqualFold(filter.OrderDir, "desc") {
		dir = "DESC"
	}
	return fmt.Sprintf("%s %s", column, dir)
}
