package wire

import (
	"shop-backend/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireCatalog(
	r chi.Router,
	categoryHandler *adaptor.CategoryHandler,
	productHandler *adaptor.ProductHandler,
) {
	r.Route("/api/categories", func(r chi.Router) {
		r.Get("/", categoryHandler.GetCategories)
		r.Post("/", categoryHandler.CreateCategory)
	})

	r.Route("/api/products", func(r chi.Router) {
		r.Get("/", productHandler.GetProducts)
		r.Post("/", productHandler.CreateProduct)
		r.Get("/{id}", productHandler.GetProductByID)
	})
}
