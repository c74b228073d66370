package entity

import "github.com/google/uuid"

type Product struct {
	Base
	Name       string    `db:"name"`
	Price      float64   `db:"price"`
	Quantity   int       `db:"quantity"`
	CategoryID uuid.UUID `db:"category_id"`
}
