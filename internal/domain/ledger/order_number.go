package ledger

import (
	"crypto/rand"
	"fmt"
	"io"
	"math/big"
)

// OrderNumberGenerator emite tokens de ancho fijo: prefijo + N dígitos aleatorios.
// La unicidad no se asume; el caso de uso verifica colisiones contra las ventas existentes.
type OrderNumberGenerator struct {
	prefix string
	digits int
	max    *big.Int
	rand   io.Reader
}

// NewOrderNumberGenerator construye el generador. digits se limita a [4, 18].
func NewOrderNumberGenerator(prefix string, digits int) *OrderNumberGenerator {
	return NewOrderNumberGeneratorWithSource(prefix, digits, rand.Reader)
}

// NewOrderNumberGeneratorWithSource permite inyectar la fuente aleatoria (tests).
func NewOrderNumberGeneratorWithSource(prefix string, digits int, src io.Reader) *OrderNumberGenerator {
	if digits < 4 {
		digits = 4
	}
	if digits > 18 {
		digits = 18
	}
	return &OrderNumberGenerator{
		prefix: prefix,
		digits: digits,
		max:    new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(digits)), nil),
		rand:   src,
	}
}

// Next genera un número de orden candidato.
func (g *OrderNumberGenerator) Next() (string, error) {
	n, err := rand.Int(g.rand, g.max)
	if err != nil {
		return "", fmt.Errorf("generar número de orden: %w", err)
	}
	return fmt.Sprintf("%s%0*d", g.prefix, g.digits, n), nil
}
