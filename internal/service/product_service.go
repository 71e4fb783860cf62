package service

import (
	"context"
	"errors"
	"math"
	"strings"

	"shopping-assistant-be/internal/dto"
	"shopping-assistant-be/internal/entity"
	"shopping-assistant-be/internal/repository/contract"
)

var ErrProductNotFound = errors.New("product not found")

type IProductService interface {
	List(ctx context.Context) (*dto.ProductListResponse, error)
	Show(ctx context.Context, id int) (*entity.Product, error)
	Search(ctx context.Context, request *dto.ProductSearchRequest) (*dto.ProductListResponse, error)
	Categories(ctx context.Context) (*dto.CategoriesResponse, error)
}

type productService struct {
	products contract.ProductRepository
}

func NewProductService(products contract.ProductRepository) IProductService {
	return &productService{products: products}
}

func (ps *productService) List(ctx context.Context) (*dto.ProductListResponse, error) {
	products, err := ps.products.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return &dto.ProductListResponse{Products: products, Count: len(products)}, nil
}

func (ps *productService) Show(ctx context.Context, id int) (*entity.Product, error) {
	product, err := ps.products.FindById(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	return product, nil
}

// Search with no criteria at all returns the whole catalog.
func (ps *productService) Search(ctx context.Context, request *dto.ProductSearchRequest) (*dto.ProductListResponse, error) {
	criteria := entity.SearchCriteria{
		Color:    request.Color,
		Category: request.Category,
		MaxPrice: request.MaxPrice,
		Gender:   request.Gender,
		AgeGroup: request.AgeGroup,
	}
	for _, tag := range request.Tags {
		if tag = strings.TrimSpace(tag); tag != "" {
			criteria.AddTag(tag)
		}
	}

	var products []*entity.Product
	var err error
	if criteria.IsEmpty() {
		products, err = ps.products.FindAll(ctx)
	} else {
		products, err = ps.products.Search(ctx, criteria)
	}
	if err != nil {
		return nil, err
	}
	return &dto.ProductListResponse{Products: products, Count: len(products)}, nil
}

func (ps *productService) Categories(ctx context.Context) (*dto.CategoriesResponse, error) {
	categories, err := ps.products.Categories(ctx)
	if err != nil {
		return nil, err
	}
	colors, err := ps.products.Colors(ctx)
	if err != nil {
		return nil, err
	}
	products, err := ps.products.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	var priceRange dto.PriceRange
	if len(products) > 0 {
		priceRange.Min = math.Inf(1)
		for _, p := range products {
			priceRange.Min = math.Min(priceRange.Min, p.Price)
			priceRange.Max = math.Max(priceRange.Max, p.Price)
		}
	}

	return &dto.CategoriesResponse{
		Categories: categories,
		Colors:     colors,
		PriceRange: priceRange,
	}, nil
}
