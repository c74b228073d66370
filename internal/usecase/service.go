package usecase

import (
	"shop-backend/internal/data/repository"
	"shop-backend/pkg/security"

	"go.uber.org/zap"
)

type Service struct {
	Auth     AuthService
	User     UserService
	Category CategoryService
	Product  ProductService
}

func NewService(
	repo *repository.Repository,
	hasher security.PasswordHasher,
	passwordMinLength int,
	log *zap.Logger,
) *Service {
	return &Service{
		Auth:     NewAuthService(repo.User, hasher, passwordMinLength, log),
		User:     NewUserService(repo.User, log),
		Category: NewCategoryService(repo.Category, log),
		Product:  NewProductService(repo.Product, repo.Category, log),
	}
}
