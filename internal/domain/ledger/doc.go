// Package ledger contiene los servicios de dominio puros del libro de inventario:
// tabla de transiciones de estado de venta, plan FIFO sobre lotes de material,
// necesidades de material por receta, totales de venta, saldos de pagos y
// emisión de números de orden. No conoce la base de datos; los casos de uso
// aplican sus resultados dentro de la transacción.
package ledger
