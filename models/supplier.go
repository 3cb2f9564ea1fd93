package models

// Supplier represents suppliers table
type Supplier struct {
	SupplierID uint   `gorm:"primaryKey;column:supplier_id" json:"supplier_id"`
	Name       string `gorm:"type:varchar(200);not null;unique" json:"name"`
}

// TableName specifies the table name for Supplier
func (Supplier) TableName() string {
	return "suppliers"
}
