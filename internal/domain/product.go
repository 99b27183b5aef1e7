package domain

import "time"

// Product is a catalog entry for a printable good. Image handling is a plain
// URL; upload mechanics live outside this service.
type Product struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	ImageURL    string    `json:"imageUrl"`
	CategoryID  string    `json:"categoryId"`
	Stock       int       `json:"stock"`
	Featured    bool      `json:"featured"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// ProductPatch restricts product updates to the mutable fields.
type ProductPatch struct {
	Name        *string
	Slug        *string
	Description *string
	Price       *float64
	ImageURL    *string
	CategoryID  *string
	Stock       *int
	Featured    *bool
}

// CategoryPatch restricts category updates to the mutable fields.
type CategoryPatch struct {
	Name        *string
	Slug        *string
	Description *string
}

// Category groups catalog products for browsing.
type Category struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
