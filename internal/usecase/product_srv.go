package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"shop-backend/internal/data/entity"
	"shop-backend/internal/data/repository"
	"shop-backend/internal/dto/request"
	"shop-backend/internal/dto/response"
	"shop-backend/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ProductService interface {
	CreateProduct(ctx context.Context, req *request.ProductRequest) (*response.ProductResponse, error)
	GetProduct(ctx context.Context, productID string) (*response.ProductResponse, error)
	ListProducts(ctx context.Context, req *request.PaginatedRequest, categoryID *string) (*response.PaginatedResponse[response.ProductResponse], error)
}

type productService struct {
	products   repository.ProductRepository
	categories repository.CategoryRepository
	log        *zap.Logger
}

func NewProductService(
	products repository.ProductRepository,
	categories repository.CategoryRepository,
	log *zap.Logger,
) ProductService {
	return &productService{
		products:   products,
		categories: categories,
		log:        log.With(zap.String("service", "product")),
	}
}

func (s *productService) CreateProduct(ctx context.Context, req *request.ProductRequest) (*response.ProductResponse, error) {
	req.Name = strings.TrimSpace(req.Name)

	errs := utils.ValidateStruct(req)

	// the category reference must point at a stored row
	categoryID, parseErr := uuid.Parse(req.CategoryID)
	if parseErr != nil && !errs.Has(fieldCategoryID) {
		errs = append(errs, utils.FieldError{Field: fieldCategoryID, Message: "Category must be a valid UUID"})
	}
	if !errs.Has(fieldCategoryID) {
		exists, err := s.categories.Exists(ctx, categoryID)
		if err != nil {
			return nil, fmt.Errorf("check category: %w", err)
		}
		if !exists {
			errs = append(errs, utils.FieldError{Field: fieldCategoryID, Message: msgCategoryGone})
		}
	}

	if len(errs) > 0 {
		s.log.Warn("Create product validation failed", zap.Strings("errors", errs.FullMessages()))
		return nil, newValidationError(errs)
	}

	product := &entity.Product{
		Base:       entity.NewBase(time.Now()),
		Name:       req.Name,
		Price:      *req.Price,
		Quantity:   *req.Quantity,
		CategoryID: categoryID,
	}

	if err := s.products.Create(ctx, product); err != nil {
		if errors.Is(err, repository.ErrMissingCategory) {
			return nil, fieldError(fieldCategoryID, msgCategoryGone)
		}
		return nil, fmt.Errorf("create product: %w", err)
	}

	s.log.Info("Product created",
		zap.String("product_id", product.ID.String()),
		zap.String("name", product.Name),
		zap.String("category_id", categoryID.String()))

	resp := response.ProductToResponse(product)
	return &resp, nil
}

func (s *productService) GetProduct(ctx context.Context, productID string) (*response.ProductResponse, error) {
	id, err := uuid.Parse(productID)
	if err != nil {
		return nil, fmt.Errorf("product %q: %w", productID, ErrInvalidID)
	}

	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get product: %w", err)
	}
	if product == nil {
		return nil, fmt.Errorf("product %s: %w", productID, ErrNotFound)
	}

	resp := response.ProductToResponse(product)
	return &resp, nil
}

func (s *productService) ListProducts(ctx context.Context, req *request.PaginatedRequest, categoryID *string) (*response.PaginatedResponse[response.ProductResponse], error) {
	limit := req.Limit()
	offset := req.Offset()

	var categoryFilter *uuid.UUID
	if categoryID != nil && *categoryID != "" {
		id, err := uuid.Parse(*categoryID)
		if err != nil {
			return nil, fmt.Errorf("category %q: %w", *categoryID, ErrInvalidID)
		}
		categoryFilter = &id
	}

	products, err := s.products.FindAll(ctx, limit, offset, categoryFilter)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}

	total, err := s.products.CountAll(ctx, categoryFilter)
	if err != nil {
		return nil, fmt.Errorf("count products: %w", err)
	}

	productResponses := make([]response.ProductResponse, len(products))
	for i, product := range products {
		productResponses[i] = response.ProductToResponse(product)
	}

	return response.NewPaginatedResponse(productResponses, req.Page, limit, total), nil
}
