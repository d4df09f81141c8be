package models

// InventoryItem is a retail or back-bar product tracked in stock.
// MaxStock of zero means no ceiling was configured.
type InventoryItem struct {
	ID           string  `json:"id" db:"id"`
	Name         string  `json:"name" db:"name"`
	SKU          *string `json:"sku,omitempty" db:"sku"`
	CurrentStock int     `json:"currentStock" db:"current_stock"`
	MinStock     int     `json:"minStock" db:"min_stock"`
	MaxStock     int     `json:"maxStock" db:"max_stock"`
	UnitCost     float64 `json:"unitCost" db:"unit_cost"`
}
