package models

import "time"

// Setting names for the document number counters.
const (
	SettingNextInvoiceNo = "nextInvoiceNo"
	SettingNextCreditNo  = "nextCreditNo"
)

// SettingModel is a named scalar setting. Document number counters live
// here so that allocation participates in the same transaction as the
// document insert.
type SettingModel struct {
	Name      string    `gorm:"size:50;primaryKey"`
	Value     string    `gorm:"size:200;not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// TableName specifies the table name
func (SettingModel) TableName() string {
	return "settings"
}
