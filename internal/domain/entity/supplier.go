package entity

import "time"

// Supplier proveedor de productos terminados o de materia prima. Name es único.
type Supplier struct {
	ID        string
	Name      string
	Phone     string
	Email     *string
	CreatedAt time.Time
}
