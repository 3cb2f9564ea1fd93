package models

// Category represents categories table
type Category struct {
	CategoryID uint   `gorm:"primaryKey;column:category_id" json:"category_id"`
	Name       string `gorm:"type:varchar(100);not null;unique" json:"name"`
}

// TableName specifies the table name for Category
func (Category) TableName() string {
	return "categories"
}
