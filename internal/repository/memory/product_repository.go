package memory

import (
	"context"
	_ "embed"
	"fmt"
	"sort"
	"strings"

	"shopping-assistant-be/internal/entity"

	"gopkg.in/yaml.v3"
)

//go:embed seed/products.yaml
var seedProducts []byte

type catalogFile struct {
	Products []*entity.Product `yaml:"products"`
}

// ProductRepository serves the catalog from memory. The product slice is never
// mutated after construction, so reads need no locking.
type ProductRepository struct {
	products []*entity.Product
	byId     map[int]*entity.Product
}

// NewProductRepository loads the embedded seed catalog.
func NewProductRepository() (*ProductRepository, error) {
	return NewProductRepositoryFromYAML(seedProducts)
}

func NewProductRepositoryFromYAML(data []byte) (*ProductRepository, error) {
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}
	return NewProductRepositoryFromSlice(file.Products)
}

func NewProductRepositoryFromSlice(products []*entity.Product) (*ProductRepository, error) {
	repo := &ProductRepository{
		products: make([]*entity.Product, 0, len(products)),
		byId:     make(map[int]*entity.Product, len(products)),
	}
	for _, p := range products {
		if p == nil {
			continue
		}
		if _, exists := repo.byId[p.Id]; exists {
			return nil, fmt.Errorf("duplicate product id %d", p.Id)
		}
		repo.products = append(repo.products, p)
		repo.byId[p.Id] = p
	}
	return repo, nil
}

func (r *ProductRepository) FindAll(ctx context.Context) ([]*entity.Product, error) {
	return append([]*entity.Product(nil), r.products...), nil
}

func (r *ProductRepository) FindById(ctx context.Context, id int) (*entity.Product, error) {
	p, ok := r.byId[id]
	if !ok {
		return nil, nil
	}
	return p, nil
}

// Search keeps catalog order. Text criteria are case-insensitive substring
// matches; a gender criterion also accepts unisex products.
func (r *ProductRepository) Search(ctx context.Context, criteria entity.SearchCriteria) ([]*entity.Product, error) {
	results := make([]*entity.Product, 0)
	for _, p := range r.products {
		if matches(p, criteria) {
			results = append(results, p)
		}
	}
	return results, nil
}

func (r *ProductRepository) Categories(ctx context.Context) ([]string, error) {
	return r.distinct(func(p *entity.Product) string { return p.Category }), nil
}

func (r *ProductRepository) Colors(ctx context.Context) ([]string, error) {
	return r.distinct(func(p *entity.Product) string { return p.Color }), nil
}

func (r *ProductRepository) Count(ctx context.Context) (int64, error) {
	return int64(len(r.products)), nil
}

func (r *ProductRepository) distinct(field func(p *entity.Product) string) []string {
	seen := make(map[string]struct{})
	out := make([]string, 0)
	for _, p := range r.products {
		v := field(p)
		if _, ok := seen[v]; ok || v == "" {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

func matches(p *entity.Product, c entity.SearchCriteria) bool {
	if c.Color != "" && !contains(p.Color, c.Color) {
		return false
	}
	if c.Category != "" && !contains(p.Category, c.Category) && !contains(p.Subcategory, c.Category) {
		return false
	}
	if c.MaxPrice > 0 && (p.Price < 0 || p.Price > c.MaxPrice) {
		return false
	}
	if len(c.Tags) > 0 && !anyTag(p.Tags, c.Tags) {
		return false
	}
	if c.Gender != "" && !contains(p.Gender, c.Gender) && !strings.EqualFold(p.Gender, "unisexe") {
		return false
	}
	if c.AgeGroup != "" && !contains(p.AgeGroup, c.AgeGroup) {
		return false
	}
	return true
}

func anyTag(productTags, wanted []string) bool {
	for _, w := range wanted {
		for _, t := range productTags {
			if contains(t, w) {
				return true
			}
		}
	}
	return false
}

func contains(value, sub string) bool {
	return strings.Contains(strings.ToLower(value), strings.ToLower(sub))
}
