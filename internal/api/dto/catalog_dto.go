package dto

import "github.com/spec-kit/print-shop/internal/domain"

// ProductCreateRequest payload for admin product creation.
type ProductCreateRequest struct {
	Name        string  `json:"name"`
	Slug        string  `json:"slug"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	ImageURL    string  `json:"imageUrl"`
	CategoryID  string  `json:"categoryId"`
	Stock       int     `json:"stock"`
	Featured    bool    `json:"featured"`
}

// ToDraft maps the request onto a product draft.
func (r ProductCreateRequest) ToDraft() domain.Product {
	return domain.Product{
		Name:        r.Name,
		Slug:        r.Slug,
		Description: r.Description,
		Price:       r.Price,
		ImageURL:    r.ImageURL,
		CategoryID:  r.CategoryID,
		Stock:       r.Stock,
		Featured:    r.Featured,
	}
}

// ProductPatchRequest payload for admin product updates.
type ProductPatchRequest struct {
	Name        *string  `json:"name"`
	Slug        *string  `json:"slug"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	ImageURL    *string  `json:"imageUrl"`
	CategoryID  *string  `json:"categoryId"`
	Stock       *int     `json:"stock"`
	Featured    *bool    `json:"featured"`
}

// ToPatch maps the request onto the constrained patch type.
func (r ProductPatchRequest) ToPatch() domain.ProductPatch {
	return domain.ProductPatch{
		Name:        r.Name,
		Slug:        r.Slug,
		Description: r.Description,
		Price:       r.Price,
		ImageURL:    r.ImageURL,
		CategoryID:  r.CategoryID,
		Stock:       r.Stock,
		Featured:    r.Featured,
	}
}

// CategoryCreateRequest payload for admin category creation.
type CategoryCreateRequest struct {
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
}

// ToDraft maps the request onto a category draft.
func (r CategoryCreateRequest) ToDraft() domain.Category {
	return domain.Category{Name: r.Name, Slug: r.Slug, Description: r.Description}
}

// CategoryPatchRequest payload for admin category updates.
type CategoryPatchRequest struct {
	Name        *string `json:"name"`
	Slug        *string `json:"slug"`
	Description *string `json:"description"`
}

// ToPatch maps the request onto the constrained patch type.
func (r CategoryPatchRequest) ToPatch() domain.CategoryPatch {
	return domain.CategoryPatch{Name: r.Name, Slug: r.Slug, Description: r.Description}
}

// SettingsPatchRequest payload for the admin settings form.
type SettingsPatchRequest struct {
	StoreName        *string  `json:"storeName"`
	Currency         *string  `json:"currency"`
	TaxRate          *float64 `json:"taxRate"`
	ShippingFee      *float64 `json:"shippingFee"`
	FreeShippingOver *float64 `json:"freeShippingOver"`
}

// ToPatch maps the request onto the constrained patch type.
func (r SettingsPatchRequest) ToPatch() domain.SettingsPatch {
	return domain.SettingsPatch{
		StoreName:        r.StoreName,
		Currency:         r.Currency,
		TaxRate:          r.TaxRate,
		ShippingFee:      r.ShippingFee,
		FreeShippingOver: r.FreeShippingOver,
	}
}
