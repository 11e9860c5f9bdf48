package inventory

// InventoryItem represents the t_inventory table: on-hand quantity per SKU.
type InventoryItem struct {
	ID       uint   `gorm:"column:id;primaryKey;autoIncrement" json:"id,omitempty"`
	SkuCode  string `gorm:"column:sku_code;type:varchar(64);not null;uniqueIndex:uq_inventory_sku_code" json:"skuCode"`
	Quantity int    `gorm:"column:quantity;not null;default:0" json:"quantity"`
}

func (InventoryItem) TableName() string {
	return "t_inventory"
}
