package models

// BusinessType classifies a partner business
type BusinessType string

const (
	Restaurant BusinessType = "restaurant"
	Retail     BusinessType = "retail"
	Service    BusinessType = "service"
)

// Business is a partner offering a discount in a neighborhood
type Business struct {
	Name               string       `json:"name"`
	Type               BusinessType `json:"type"`
	Neighborhood       string       `json:"neighborhood"`
	DiscountHours      string       `json:"discountHours"`
	DiscountPercentage int          `json:"discountPercentage"`
	DiscountMethod     string       `json:"discountMethod"`
}

// BusinessSubmission is a listing request sent by a business owner
type BusinessSubmission struct {
	BusinessName       string   `json:"businessName" validate:"required"`
	BusinessType       string   `json:"businessType" validate:"required"`
	Email              string   `json:"email" validate:"required,email"`
	Website            string   `json:"website" validate:"omitempty,url"`
	City               string   `json:"city" validate:"required"`
	Neighborhood       string   `json:"neighborhood" validate:"required"`
	DiscountHours      string   `json:"discountHours"`
	DiscountPercentage *float64 `json:"discountPercentage" validate:"required,gte=0,lte=100"`
	DiscountMethod     string   `json:"discountMethod"`
}
