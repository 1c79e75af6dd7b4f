// Package memory implementa los puertos de repositorio y el TxRunner en memoria. Las
// transacciones trabajan sobre una copia del estado y solo la publican al confirmar, de modo
// que un error deja el estado intacto. Se usa en tests y con STORE_DRIVER=memory.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/jhoicas/peakers-pos-api/internal/domain"
	"github.com/jhoicas/peakers-pos-api/internal/domain/entity"
	"github.com/jhoicas/peakers-pos-api/internal/domain/repository"
)

type state struct {
	products         map[string]entity.Product
	sales            map[string]entity.Sale
	orderNumbers     map[string]string
	saleLines        map[string][]entity.SaleLine
	materials        map[string]entity.RawMaterial
	materialNames    map[string]string
	lots             map[string]entity.MaterialLot
	recipes          map[string][]entity.RecipeEntry
	supplierProducts map[string]entity.SupplierProduct
	suppliers        map[string]entity.Supplier
	supplierNames    map[string]string
	customers        map[string]entity.Customer
	payments         []entity.Payment
}

func newState() *state {
	return &state{
		products:         map[string]entity.Product{},
		sales:            map[string]entity.Sale{},
		orderNumbers:     map[string]string{},
		saleLines:        map[string][]entity.SaleLine{},
		materials:        map[string]entity.RawMaterial{},
		materialNames:    map[string]string{},
		lots:             map[string]entity.MaterialLot{},
		recipes:          map[string][]entity.RecipeEntry{},
		supplierProducts: map[string]entity.SupplierProduct{},
		suppliers:        map[string]entity.Supplier{},
		supplierNames:    map[string]string{},
		customers:        map[string]entity.Customer{},
	}
}

func (s *state) clone() *state {
	c := newState()
	copyMap(c.products, s.products)
	copyMap(c.sales, s.sales)
	copyMap(c.orderNumbers, s.orderNumbers)
	for k, v := range s.saleLines {
		c.saleLines[k] = append([]entity.SaleLine(nil), v...)
	}
	copyMap(c.materials, s.materials)
	copyMap(c.materialNames, s.materialNames)
	copyMap(c.lots, s.lots)
	for k, v := range s.recipes {
		c.recipes[k] = append([]entity.RecipeEntry(nil), v...)
	}
	copyMap(c.supplierProducts, s.supplierProducts)
	copyMap(c.suppliers, s.suppliers)
	copyMap(c.supplierNames, s.supplierNames)
	copyMap(c.customers, s.customers)
	c.payments = append([]entity.Payment(nil), s.payments...)
	return c
}

func copyMap[K comparable, V any](dst, src map[K]V) {
	for k, v := range src {
		dst[k] = v
	}
}

// Store estado compartido. Las transacciones se serializan con un semáforo de una plaza; las
// lecturas fuera de tx ven siempre el último estado confirmado.
type Store struct {
	mu  sync.RWMutex
	st  *state
	sem chan struct{}
}

// NewStore crea un store vacío.
func NewStore() *Store {
	return &Store{st: newState(), sem: make(chan struct{}, 1)}
}

// Repos repositorios sin tx: lecturas del estado confirmado y escrituras de una sola fila.
func (s *Store) Repos() repository.Repos {
	return reposFor(&view{store: s})
}

// Run ejecuta fn sobre una copia del estado; si fn devuelve nil la copia pasa a ser el estado
// confirmado, si no se descarta. Esperar el turno respeta la cancelación de ctx.
func (s *Store) Run(ctx context.Context, fn func(repos repository.Repos) error) error {
	if err := s.acquire(ctx); err != nil {
		return err
	}
	defer s.release()

	s.mu.RLock()
	work := s.st.clone()
	s.mu.RUnlock()

	if err := fn(reposFor(&view{store: s, tx: work})); err != nil {
		return err
	}
	s.mu.Lock()
	s.st = work
	s.mu.Unlock()
	return nil
}

func (s *Store) acquire(ctx context.Context) error {
	select {
	case s.sem <- struct{}{}:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("memory: esperando transacción: %w: %v", domain.ErrResourceUnavailable, ctx.Err())
	}
}

func (s *Store) release() { <-s.sem }

// view estado sobre el que opera un repositorio: la copia de una tx o el estado confirmado.
type view struct {
	store *Store
	tx    *state
}

func (v *view) read(fn func(st *state) error) error {
	if v.tx != nil {
		return fn(v.tx)
	}
	v.store.mu.RLock()
	defer v.store.mu.RUnlock()
	return fn(v.store.st)
}

// write fuera de tx toma el turno de transacción para no perder actualizaciones de una tx en
// curso. fn debe validar antes de mutar.
func (v *view) write(ctx context.Context, fn func(st *state) error) error {
	if v.tx != nil {
		return fn(v.tx)
	}
	if err := v.store.acquire(ctx); err != nil {
		return err
	}
	defer v.store.release()
	v.store.mu.Lock()
	defer v.store.mu.Unlock()
	return fn(v.store.st)
}

func reposFor(v *view) repository.Repos {
	return repository.Repos{
		Products:         &productRepo{v: v},
		Sales:            &saleRepo{v: v},
		Materials:        &materialRepo{v: v},
		Recipes:          &recipeRepo{v: v},
		SupplierProducts: &supplierProductRepo{v: v},
		Suppliers:        &supplierRepo{v: v},
		Customers:        &customerRepo{v: v},
		Payments:         &paymentRepo{v: v},
	}
}
