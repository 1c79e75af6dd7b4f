package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto; el stock inicia en 0 y solo
// lo mueve el libro de inventario.
type CreateProductRequest struct {
	Name       string          `json:"name" validate:"required,min=1,max=200"`
	CategoryID *string         `json:"categoryId"`
	Price      decimal.Decimal `json:"price"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	CategoryID *string         `json:"categoryId"`
	Price      decimal.Decimal `json:"price"`
	Stock      int64           `json:"stock"`
	CreatedAt  time.Time       `json:"createdAt"`
	UpdatedAt  time.Time       `json:"updatedAt"`
}

// CreateMaterialRequest entrada para crear una materia prima.
type CreateMaterialRequest struct {
	Name string `json:"name" validate:"required,min=1,max=200"`
	Unit string `json:"unit" validate:"required,max=20"`
}

// MaterialResponse salida de una materia prima.
type MaterialResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Unit      string    `json:"unit"`
	CreatedAt time.Time `json:"createdAt"`
}

// CreatePartyRequest alta de proveedor o cliente.
type CreatePartyRequest struct {
	Name  string  `json:"name" validate:"required,min=1,max=200"`
	Phone string  `json:"phone" validate:"omitempty,max=30"`
	Email *string `json:"email" validate:"omitempty,email"`
}

// PartyResponse proveedor o cliente.
type PartyResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	Email     *string   `json:"email,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}
