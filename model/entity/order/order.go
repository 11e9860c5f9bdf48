package order

import "github.com/shopspring/decimal"

// Order represents the t_orders table. Rows are written once on a successful
// submission and never updated.
type Order struct {
	ID          uint            `gorm:"column:id;primaryKey;autoIncrement" json:"id,omitempty"`
	OrderNumber string          `gorm:"column:order_number;type:varchar(64);not null;uniqueIndex:uq_orders_order_number" json:"orderNumber"`
	SkuCode     string          `gorm:"column:sku_code;type:varchar(64);not null" json:"skuCode"`
	Price       decimal.Decimal `gorm:"column:price;type:decimal(19,2);not null" json:"price"`
	Quantity    int             `gorm:"column:quantity;not null" json:"quantity"`
}

func (Order) TableName() string {
	return "t_orders"
}
