package service

import (
	"context"
	"errors"

	gosimple "github.com/gosimple/slug"
	"gorm.io/gorm"

	"electronics-store/internal/dto"
	"electronics-store/internal/model"
	"electronics-store/internal/repository"
)

type CatalogService interface {
	ListCategories(ctx context.Context) ([]*model.Category, error)
	ListProducts(ctx context.Context, categorySlug, sort string, inStockOnly bool) ([]*model.Product, error)
	GetProduct(ctx context.Context, slug string) (*model.Product, error)

	CreateCategory(ctx context.Context, req *dto.CategoryRequest) (*model.Category, error)
	DeleteCategory(ctx context.Context, slug string) error
	CreateProduct(ctx context.Context, req *dto.ProductRequest) (*model.Product, error)
	UpdateProduct(ctx context.Context, productID uint, req *dto.ProductRequest) (*model.Product, error)
}

type catalogServiceImpl struct {
	categoryRepo repository.CategoryRepository
	productRepo  repository.ProductRepository
}

func NewCatalogService(
	categoryRepo repository.CategoryRepository,
	productRepo repository.ProductRepository,
) CatalogService {
	return &catalogServiceImpl{
		categoryRepo: categoryRepo,
		productRepo:  productRepo,
	}
}

func (s *catalogServiceImpl) ListCategories(ctx context.Context) ([]*model.Category, error) {
	return s.categoryRepo.List(ctx)
}

func (s *catalogServiceImpl) ListProducts(ctx context.Context, categorySlug, sort string, inStockOnly bool) ([]*model.Product, error) {
	if categorySlug != "" {
		if _, err := s.categoryRepo.FindBySlug(ctx, categorySlug); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrCategoryNotFound
			}
			return nil, err
		}
	}

	return s.productRepo.List(ctx, categorySlug, sort, inStockOnly)
}

func (s *catalogServiceImpl) GetProduct(ctx context.Context, slug string) (*model.Product, error) {
	product, err := s.productRepo.FindBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	return product, nil
}

func (s *catalogServiceImpl) CreateCategory(ctx context.Context, req *dto.CategoryRequest) (*model.Category, error) {
	if req.Name == "" {
		return nil, ValidationErrors{"name": "name is required"}
	}

	category := &model.Category{
		Name: req.Name,
		Slug: gosimple.Make(req.Name),
	}
	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, err
	}

	return category, nil
}

func (s *catalogServiceImpl) DeleteCategory(ctx context.Context, slug string) error {
	category, err := s.categoryRepo.FindBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCategoryNotFound
		}
		return err
	}

	// A category stays while any product references it: order items point at
	// products, products point here.
	count, err := s.productRepo.CountByCategory(ctx, category.ID)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrCategoryInUse
	}

	return s.categoryRepo.Delete(ctx, category.ID)
}

func (s *catalogServiceImpl) CreateProduct(ctx context.Context, req *dto.ProductRequest) (*model.Product, error) {
	if errs := validateProduct(req); len(errs) > 0 {
		return nil, errs
	}

	product := &model.Product{
		CategoryID: req.CategoryID,
		Name:       req.Name,
		Slug:       gosimple.Make(req.Name),
		Price:      req.Price,
		Year:       req.Year,
		Country:    req.Country,
		Model:      req.Model,
		InStock:    true,
	}
	if req.Stock != nil {
		product.Stock = *req.Stock
	}
	if req.InStock != nil {
		product.InStock = *req.InStock
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}

	return product, nil
}

func (s *catalogServiceImpl) UpdateProduct(ctx context.Context, productID uint, req *dto.ProductRequest) (*model.Product, error) {
	if errs := validateProduct(req); len(errs) > 0 {
		return nil, errs
	}

	products, err := s.productRepo.FindMany(ctx, []uint{productID})
	if err != nil {
		return nil, err
	}
	if len(products) == 0 {
		return nil, ErrProductNotFound
	}

	product := products[0]
	product.CategoryID = req.CategoryID
	product.Name = req.Name
	product.Price = req.Price
	product.Year = req.Year
	product.Country = req.Country
	product.Model = req.Model
	// Stock and the in-stock flag are independently settable: staff can
	// pull a product from sale without touching its counted stock.
	if req.Stock != nil {
		product.Stock = *req.Stock
	}
	if req.InStock != nil {
		product.InStock = *req.InStock
	}

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}

	return product, nil
}

func validateProduct(req *dto.ProductRequest) ValidationErrors {
	errs := ValidationErrors{}
	if req.Name == "" {
		errs["name"] = "name is required"
	}
	if req.CategoryID == 0 {
		errs["category_id"] = "category is required"
	}
	if req.Price.IsNegative() {
		errs["price"] = "price must not be negative"
	}
	if req.Stock != nil && *req.Stock < 0 {
		errs["stock"] = "stock must not be negative"
	}
	return errs
}
