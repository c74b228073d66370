package response

import (
	"time"

	"shop-backend/internal/data/entity"
)

type ProductResponse struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Price      float64   `json:"price"`
	Quantity   int       `json:"quantity"`
	CategoryID string    `json:"category_id"`
	CreatedAt  time.Time `json:"created_at"`
}

func ProductToResponse(product *entity.Product) ProductResponse {
	return ProductResponse{
		ID:         product.ID.String(),
		Name:       product.Name,
		Price:      product.Price,
		Quantity:   product.Quantity,
		CategoryID: product.CategoryID.String(),
		CreatedAt:  product.CreatedAt,
	}
}
