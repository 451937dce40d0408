package request

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CategoryRequest is the body of category create and update
type CategoryRequest struct {
	Name string `json:"name" binding:"required,max=255" example:"Drinks"`
}

// ItemRequest is the body of item create and update. Price is a decimal
// amount in the shop currency. Stock fields are only read on create.
type ItemRequest struct {
	Name       string          `json:"name" binding:"required,max=255" example:"Iced Latte"`
	Price      decimal.Decimal `json:"price" swaggertype:"number" example:"3.50"`
	CategoryID uuid.UUID       `json:"category_id" binding:"required" swaggertype:"string" format:"uuid"`
	Image      *string         `json:"image"`
	TrackStock bool            `json:"track_stock"`
	Stock      int             `json:"stock" binding:"min=0"`
}

// StockRequest sets the stock level of an item
type StockRequest struct {
	Stock *int `json:"stock" binding:"required,min=0" example:"24"`
}

// ItemFilterRequest holds the item list query parameters
type ItemFilterRequest struct {
	CategoryID string `form:"category_id" binding:"omitempty,uuid"`
	Search     string `form:"search" binding:"omitempty,max=255"`
}

// ModifierRequest is the body of modifier create and update
type ModifierRequest struct {
	Name        string          `json:"name" binding:"required,max=255" example:"Extra shot"`
	Cost        decimal.Decimal `json:"cost" swaggertype:"number" example:"0.50"`
	CategoryIDs []uuid.UUID     `json:"category_ids" binding:"required,min=1" swaggertype:"array,string"`
}
