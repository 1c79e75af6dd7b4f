package entity

import "time"

// Customer cliente registrado. Las ventas de mostrador (invitado) no referencian cliente.
type Customer struct {
	ID        string
	Name      string
	Phone     string
	Email     *string
	CreatedAt time.Time
}
