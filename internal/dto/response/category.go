package response

import "shop-backend/internal/data/entity"

type CategoryResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func CategoryToResponse(category *entity.Category) CategoryResponse {
	return CategoryResponse{
		ID:   category.ID.String(),
		Name: category.Name,
	}
}
