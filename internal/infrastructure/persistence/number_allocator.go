package persistence

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"gorm.io/gorm"

	"github.com/timebill/backend/internal/domain/billing"
	"github.com/timebill/backend/internal/infrastructure/persistence/models"
)

// GormNumberAllocator keeps the two document counters in the settings
// table. Peek reads without advancing; Allocate advances and must be called
// inside the document writer's transaction so a rollback restores the
// counter.
type GormNumberAllocator struct {
	db *gorm.DB
}

// NewGormNumberAllocator creates a new allocator instance
func NewGormNumberAllocator(db *gorm.DB) *GormNumberAllocator {
	return &GormNumberAllocator{db: db}
}

var _ billing.NumberAllocator = (*GormNumberAllocator)(nil)

// EnsureSeeds creates the counter settings if they do not exist yet.
// Existing counters are never reset.
func (a *GormNumberAllocator) EnsureSeeds(ctx context.Context, invoiceSeed, creditSeed int64) error {
	seeds := map[string]int64{
		models.SettingNextInvoiceNo: invoiceSeed,
		models.SettingNextCreditNo:  creditSeed,
	}
	for name, seed := range seeds {
		var setting models.SettingModel
		err := a.db.WithContext(ctx).Where("name = ?", name).First(&setting).Error
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		setting = models.SettingModel{Name: name, Value: strconv.FormatInt(seed, 10)}
		if err := a.db.WithContext(ctx).Create(&setting).Error; err != nil {
			return err
		}
	}
	return nil
}

// Peek returns the number the next document of the given type will receive
func (a *GormNumberAllocator) Peek(ctx context.Context, docType billing.DocumentType) (string, error) {
	next, err := a.read(a.db.WithContext(ctx), docType)
	if err != nil {
		return "", err
	}
	return strconv.FormatInt(next, 10), nil
}

// Allocate returns the next number of the given type and advances the
// counter, both within tx
func (a *GormNumberAllocator) Allocate(tx *gorm.DB, docType billing.DocumentType) (string, error) {
	next, err := a.read(tx, docType)
	if err != nil {
		return "", fmt.Errorf("%w: %v", billing.ErrAllocationFailed, err)
	}

	result := tx.Model(&models.SettingModel{}).
		Where("name = ?", counterName(docType)).
		Update("value", strconv.FormatInt(next+1, 10))
	if result.Error != nil {
		return "", fmt.Errorf("%w: %v", billing.ErrAllocationFailed, result.Error)
	}
	if result.RowsAffected != 1 {
		return "", fmt.Errorf("%w: counter %s missing", billing.ErrAllocationFailed, counterName(docType))
	}
	return strconv.FormatInt(next, 10), nil
}

func (a *GormNumberAllocator) read(tx *gorm.DB, docType billing.DocumentType) (int64, error) {
	var setting models.SettingModel
	if err := tx.Where("name = ?", counterName(docType)).First(&setting).Error; err != nil {
		return 0, err
	}
	next, err := strconv.ParseInt(setting.Value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("counter %s holds %q: %w", counterName(docType), setting.Value, err)
	}
	return next, nil
}

func counterName(docType billing.DocumentType) string {
	if docType == billing.DocumentTypeCreditNote {
		return models.SettingNextCreditNo
	}
	return models.SettingNextInvoiceNo
}
