package models

// AllModels returns all model structs for auto-migration
// IMPORTANT: Order matters! Parent tables must be created before child tables
func AllModels() []interface{} {
	return []interface{}{
		// 1. Independent tables (no foreign keys)
		&User{},
		&Category{},
		&Manufacturer{},
		&Supplier{},

		// 2. Tables with single dependencies
		&Product{}, // depends on: Category, Manufacturer, Supplier
		&Order{},

		// 3. Detail/junction tables
		&OrderItem{}, // depends on: Order, Product
	}
}
