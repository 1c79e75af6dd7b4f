package ledger

import (
	"github.com/jhoicas/peakers-pos-api/internal/domain"
	"github.com/jhoicas/peakers-pos-api/internal/domain/entity"
)

// StockEffect efecto sobre el stock de las líneas al cambiar el estado de una venta.
type StockEffect int

const (
	EffectNone    StockEffect = iota // sin movimiento
	EffectRestock                    // devolver las cantidades de las líneas al stock
	EffectDeduct                     // volver a descontar las líneas (falla si no hay stock)
)

func (e StockEffect) String() string {
	switch e {
	case EffectRestock:
		return "restock"
	case EffectDeduct:
		return "deduct"
	default:
		return "none"
	}
}

type transitionKey struct {
	from entity.SaleStatus
	to   entity.SaleStatus
}

// transitions es exhaustiva: los nueve pares (from, to) están definidos.
// voided <-> refunded no mueve stock porque la reposición ya ocurrió al salir de completed.
var transitions = map[transitionKey]StockEffect{
	{entity.SaleStatusCompleted, entity.SaleStatusCompleted}: EffectNone,
	{entity.SaleStatusCompleted, entity.SaleStatusVoided}:    EffectRestock,
	{entity.SaleStatusCompleted, entity.SaleStatusRefunded}:  EffectRestock,
	{entity.SaleStatusVoided, entity.SaleStatusVoided}:       EffectNone,
	{entity.SaleStatusVoided, entity.SaleStatusRefunded}:     EffectNone,
	{entity.SaleStatusVoided, entity.SaleStatusCompleted}:    EffectDeduct,
	{entity.SaleStatusRefunded, entity.SaleStatusRefunded}:   EffectNone,
	{entity.SaleStatusRefunded, entity.SaleStatusVoided}:     EffectNone,
	{entity.SaleStatusRefunded, entity.SaleStatusCompleted}:  EffectDeduct,
}

// Transition devuelve el efecto de stock de pasar de from a to.
func Transition(from, to entity.SaleStatus) (StockEffect, error) {
	effect, ok := transitions[transitionKey{from, to}]
	if !ok {
		return EffectNone, domain.Invalid("status", "transición no soportada: "+string(from)+" -> "+string(to))
	}
	return effect, nil
}
