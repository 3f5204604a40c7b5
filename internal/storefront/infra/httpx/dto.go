package httpx

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/dekoratoriai/storefront/internal/business"
	"github.com/dekoratoriai/storefront/internal/cart"
	"github.com/dekoratoriai/storefront/internal/catalog"
	"github.com/dekoratoriai/storefront/internal/listing"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// ConflictResponse reports a skipped business operation with the state
// that made it impossible.
type ConflictResponse struct {
	Error    string            `json:"error"`
	Message  string            `json:"message"`
	Business business.Snapshot `json:"business"`
}

type CategoryResponse struct {
	Key    string                  `json:"key"`
	Title  string                  `json:"title"`
	URL    string                  `json:"url"`
	Layout catalog.DimensionLayout `json:"layout"`
}

type ProductResponse struct {
	catalog.Product
	UnitPricePerMetre *decimal.Decimal        `json:"unitPricePerMetre,omitempty"`
	Layout            catalog.DimensionLayout `json:"layout"`
}

type ListingResponse struct {
	Category  CategoryResponse  `json:"category"`
	Screen    listing.Screen    `json:"screen,omitempty"`
	Products  []ProductResponse `json:"products"`
	Displayed int               `json:"displayed"`
	Total     int               `json:"total"`
	HasMore   bool              `json:"hasMore"`
	Filters   listing.Filters   `json:"filters"`
}

type ProductDetailResponse struct {
	Product       ProductResponse    `json:"product"`
	Reviews       []catalog.Review   `json:"reviews"`
	ReviewCount   int                `json:"reviewCount"`
	AverageRating float64            `json:"averageRating"`
	Sort          catalog.ReviewSort `json:"sort"`
}

type QuoteResponse struct {
	Code              string          `json:"code"`
	Metres            decimal.Decimal `json:"metres"`
	UnitPricePerMetre decimal.Decimal `json:"unitPricePerMetre"`
	Total             decimal.Decimal `json:"total"`
}

type CartResponse struct {
	Items []cart.Item     `json:"items"`
	Total decimal.Decimal `json:"total"`
	Count int             `json:"count"`
	Slot  string          `json:"slot"`
}

// SessionResponse is returned by every business operation since a mode
// change also swaps the cart.
type SessionResponse struct {
	Business business.Snapshot `json:"business"`
	Cart     CartResponse      `json:"cart"`
}

type AccountRequest struct {
	Email        string     `json:"email"`
	CompanyName  string     `json:"companyName"`
	CompanyCode  string     `json:"companyCode"`
	Phone        string     `json:"phone"`
	RegisteredAt *time.Time `json:"registeredAt,omitempty"`
}

type AddItemRequest struct {
	Category string `json:"category"`
	Code     string `json:"code"`
}

type UpdateQuantityRequest struct {
	Quantity *int `json:"quantity"`
}

type AppointmentResponse struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	Error     string `json:"error,omitempty"`
	InquiryID string `json:"inquiryId,omitempty"`
}
