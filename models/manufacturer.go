package models

// Manufacturer represents manufacturers table
type Manufacturer struct {
	ManufacturerID uint   `gorm:"primaryKey;column:manufacturer_id" json:"manufacturer_id"`
	Name           string `gorm:"type:varchar(200);not null;unique" json:"name"`
}

// TableName specifies the table name for Manufacturer
func (Manufacturer) TableName() string {
	return "manufacturers"
}
