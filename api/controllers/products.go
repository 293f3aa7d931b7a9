package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/hoangsoi/vinashop-backend/api/responses"
	"github.com/hoangsoi/vinashop-backend/api/validators"
	productsvc "github.com/hoangsoi/vinashop-backend/internal/products"
	pkgerrors "github.com/hoangsoi/vinashop-backend/pkg/errors"
	"github.com/hoangsoi/vinashop-backend/pkg/logger"
)

// ProductsList returns the public catalog, filtered and paginated.
func ProductsList(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}

		params, err := validators.ParsePagination(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		filter := productsvc.ListFilter{
			Category:   validators.SanitizeString(r.URL.Query().Get("category"), 100),
			Search:     validators.SanitizeString(r.URL.Query().Get("search"), 200),
			OnlyActive: true,
		}

		items, page, err := svc.List(r.Context(), filter, params)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, listPayload{Items: items, Page: page})
	}
}

// ProductsGet returns a single catalog product.
func ProductsGet(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}

		id, err := validators.ParseUUIDParam(chi.URLParam(r, "productId"), "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := svc.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, product)
	}
}

type createProductRequest struct {
	Name          string   `json:"name" validate:"required"`
	Description   *string  `json:"description,omitempty"`
	Price         string   `json:"price" validate:"required"`
	OriginalPrice *string  `json:"original_price,omitempty"`
	Images        []string `json:"images,omitempty"`
	Category      string   `json:"category" validate:"required"`
	Brand         *string  `json:"brand,omitempty"`
	Stock         int      `json:"stock" validate:"min=0"`
}

func (r createProductRequest) toInput() (productsvc.CreateProductInput, error) {
	price, err := decimal.NewFromString(strings.TrimSpace(r.Price))
	if err != nil {
		return productsvc.CreateProductInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid price")
	}

	var originalPrice *decimal.Decimal
	if r.OriginalPrice != nil {
		parsed, err := decimal.NewFromString(strings.TrimSpace(*r.OriginalPrice))
		if err != nil {
			return productsvc.CreateProductInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid original price")
		}
		originalPrice = &parsed
	}

	return productsvc.CreateProductInput{
		Name:          strings.TrimSpace(r.Name),
		Description:   r.Description,
		Price:         price,
		OriginalPrice: originalPrice,
		Images:        r.Images,
		Category:      strings.TrimSpace(r.Category),
		Brand:         r.Brand,
		Stock:         r.Stock,
	}, nil
}

type updateProductRequest struct {
	Name          *string  `json:"name,omitempty"`
	Description   *string  `json:"description,omitempty"`
	Price         *string  `json:"price,omitempty"`
	OriginalPrice *string  `json:"original_price,omitempty"`
	Images        []string `json:"images,omitempty"`
	Category      *string  `json:"category,omitempty"`
	Brand         *string  `json:"brand,omitempty"`
	Stock         *int     `json:"stock,omitempty" validate:"omitempty,min=0"`
	IsActive      *bool    `json:"is_active,omitempty"`
}

func (r updateProductRequest) toInput() (productsvc.UpdateProductInput, error) {
	input := productsvc.UpdateProductInput{
		Name:        r.Name,
		Description: r.Description,
		Images:      r.Images,
		Category:    r.Category,
		Brand:       r.Brand,
		Stock:       r.Stock,
		IsActive:    r.IsActive,
	}

	if r.Price != nil {
		price, err := decimal.NewFromString(strings.TrimSpace(*r.Price))
		if err != nil {
			return productsvc.UpdateProductInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid price")
		}
		input.Price = &price
	}
	if r.OriginalPrice != nil {
		price, err := decimal.NewFromString(strings.TrimSpace(*r.OriginalPrice))
		if err != nil {
			return productsvc.UpdateProductInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid original price")
		}
		input.OriginalPrice = &price
	}

	return input, nil
}
