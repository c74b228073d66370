package request

// ProductRequest uses pointers so a zero price or quantity counts as present.
// Price bounds follow the NUMERIC(12,2) column.
type ProductRequest struct {
	Name       string   `json:"name" validate:"required,max=200"`
	Price      *float64 `json:"price" validate:"required,gte=0,lte=9999999999.99,decimals=2"`
	Quantity   *int     `json:"quantity" validate:"required,gte=0"`
	CategoryID string   `json:"category_id" validate:"required,uuid"`
}
