package domain

import "time"

// Settings is the singleton shop configuration edited from the admin console.
type Settings struct {
	StoreName        string    `json:"storeName"`
	Currency         string    `json:"currency"`
	TaxRate          float64   `json:"taxRate"`
	ShippingFee      float64   `json:"shippingFee"`
	FreeShippingOver float64   `json:"freeShippingOver"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

// SettingsPatch restricts settings updates to the editable fields.
type SettingsPatch struct {
	StoreName        *string
	Currency         *string
	TaxRate          *float64
	ShippingFee      *float64
	FreeShippingOver *float64
}

// DefaultSettings returns the values used before an admin first saves.
func DefaultSettings() Settings {
	return Settings{
		StoreName:        "Print Shop",
		Currency:         "USD",
		TaxRate:          0,
		ShippingFee:      5,
		FreeShippingOver: 50,
	}
}
