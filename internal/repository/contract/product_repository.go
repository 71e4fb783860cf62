package contract

import (
	"context"

	"shopping-assistant-be/internal/entity"
)

type ProductRepository interface {
	FindAll(ctx context.Context) ([]*entity.Product, error)
	FindById(ctx context.Context, id int) (*entity.Product, error)
	Search(ctx context.Context, criteria entity.SearchCriteria) ([]*entity.Product, error)
	Categories(ctx context.Context) ([]string, error)
	Colors(ctx context.Context) ([]string, error)
	Count(ctx context.Context) (int64, error)
}
