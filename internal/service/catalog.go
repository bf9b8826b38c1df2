package service

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/mmeshcher/flora-console/internal/model"
)

// Products возвращает каталог. Неактивные товары включаются по запросу.
func (s *Service) Products(ctx context.Context, includeInactive bool) ([]model.Product, error) {
	products, err := s.api.ListProducts(ctx)
	if err != nil {
		return nil, err
	}
	if includeInactive {
		return products, nil
	}
	return activeOnly(products), nil
}

// Catalog возвращает товары, доступные для новых продаж и пополнений.
func (s *Service) Catalog(ctx context.Context) ([]model.Product, error) {
	return s.Products(ctx, false)
}

func activeOnly(products []model.Product) []model.Product {
	res := make([]model.Product, 0, len(products))
	for _, p := range products {
		if p.Active {
			res = append(res, p)
		}
	}
	return res
}

// CreateProduct проверяет форму и создаёт товар.
func (s *Service) CreateProduct(ctx context.Context, f model.ProductForm) (*model.Product, error) {
	if err := s.validator.Product(&f); err != nil {
		return nil, err
	}
	return s.api.CreateProduct(ctx, productPayload(f))
}

// UpdateProduct проверяет форму и изменяет товар.
func (s *Service) UpdateProduct(ctx context.Context, id int64, f model.ProductForm) (*model.Product, error) {
	if err := s.validator.Product(&f); err != nil {
		return nil, err
	}
	return s.api.UpdateProduct(ctx, id, productPayload(f))
}

func productPayload(f model.ProductForm) model.ProductPayload {
	return model.ProductPayload{
		Name:   f.Name,
		Price:  decimal.NewFromFloat(*f.Price),
		Active: f.Active,
	}
}

// DeactivateProduct снимает товар с продажи.
func (s *Service) DeactivateProduct(ctx context.Context, id int64) error {
	return s.api.DeleteProduct(ctx, id)
}

// Sales возвращает продажи филиала.
func (s *Service) Sales(ctx context.Context) ([]model.Sale, error) {
	return s.api.ListSales(ctx)
}

// Sale возвращает продажу со строками.
func (s *Service) Sale(ctx context.Context, id int64) (*model.SaleDetail, error) {
	return s.api.GetSale(ctx, id)
}

// CreateSale оформляет продажу. Цена каждой строки берётся из каталога в момент оформления
// и дальше не зависит от изменений каталога.
func (s *Service) CreateSale(ctx context.Context, f model.SaleForm) (*model.Sale, error) {
	if err := s.validator.Sale(&f); err != nil {
		return nil, err
	}

	catalog, err := s.Catalog(ctx)
	if err != nil {
		return nil, err
	}
	prices := make(map[int64]decimal.Decimal, len(catalog))
	for _, p := range catalog {
		prices[p.ID] = p.Price
	}

	// одинаковые товары сливаются в одну строку
	payload := model.SalePayload{Products: make([]model.SaleProductPayload, 0, len(f.Products))}
	index := make(map[int64]int, len(f.Products))
	for _, line := range f.Products {
		price, ok := prices[line.ProductID]
		if !ok {
			return nil, fmt.Errorf("%w: %d", ErrProductNotFound, line.ProductID)
		}
		if i, ok := index[line.ProductID]; ok {
			payload.Products[i].Quantity += line.Quantity
			continue
		}
		index[line.ProductID] = len(payload.Products)
		payload.Products = append(payload.Products, model.SaleProductPayload{
			ProductID:   line.ProductID,
			Quantity:    line.Quantity,
			PriceAtSale: price,
		})
	}

	return s.api.CreateSale(ctx, payload)
}

// CancelSale отменяет продажу.
func (s *Service) CancelSale(ctx context.Context, id int64) error {
	return s.api.CancelSale(ctx, id)
}
