package memory

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/peakers-pos-api/internal/domain"
	"github.com/jhoicas/peakers-pos-api/internal/domain/entity"
	"github.com/jhoicas/peakers-pos-api/internal/domain/ledger"
)

type saleRepo struct{ v *view }

func (r *saleRepo) Create(ctx context.Context, s *entity.Sale) error {
	return r.v.write(ctx, func(st *state) error {
		if _, dup := st.orderNumbers[s.OrderNumber]; dup {
			return &domain.ConflictError{Field: "orderNumber", Value: s.OrderNumber}
		}
		st.sales[s.ID] = *s
		st.orderNumbers[s.OrderNumber] = s.ID
		return nil
	})
}

func (r *saleRepo) CreateLine(ctx context.Context, l *entity.SaleLine) error {
	return r.v.write(ctx, func(st *state) error {
		if _, ok := st.sales[l.SaleID]; !ok {
			return domain.NotFound("sale", l.SaleID)
		}
		st.saleLines[l.SaleID] = append(st.saleLines[l.SaleID], *l)
		return nil
	})
}

func (r *saleRepo) GetByID(_ context.Context, id string) (*entity.Sale, error) {
	var out *entity.Sale
	err := r.v.read(func(st *state) error {
		if s, ok := st.sales[id]; ok {
			out = &s
		}
		return nil
	})
	return out, err
}

func (r *saleRepo) GetForUpdate(ctx context.Context, id string) (*entity.Sale, error) {
	return r.GetByID(ctx, id)
}

func (r *saleRepo) ExistsOrderNumber(_ context.Context, orderNumber string) (bool, error) {
	var exists bool
	err := r.v.read(func(st *state) error {
		_, exists = st.orderNumbers[orderNumber]
		return nil
	})
	return exists, err
}

func (r *saleRepo) ListLines(_ context.Context, saleID string) ([]*entity.SaleLine, error) {
	var out []*entity.SaleLine
	err := r.v.read(func(st *state) error {
		for _, l := range st.saleLines[saleID] {
			out = append(out, &l)
		}
		return nil
	})
	return out, err
}

func (r *saleRepo) UpdateStatus(ctx context.Context, id string, status entity.SaleStatus, at time.Time) error {
	return r.v.write(ctx, func(st *state) error {
		s, ok := st.sales[id]
		if !ok {
			return domain.NotFound("sale", id)
		}
		s.Status = status
		s.UpdatedAt = at
		st.sales[id] = s
		return nil
	})
}

type materialRepo struct{ v *view }

func (r *materialRepo) Create(ctx context.Context, m *entity.RawMaterial) error {
	return r.v.write(ctx, func(st *state) error {
		key := strings.ToLower(m.Name)
		if _, dup := st.materialNames[key]; dup {
			return &domain.ConflictError{Field: "name", Value: m.Name}
		}
		st.materials[m.ID] = *m
		st.materialNames[key] = m.ID
		return nil
	})
}

func (r *materialRepo) GetByID(_ context.Context, id string) (*entity.RawMaterial, error) {
	var out *entity.RawMaterial
	err := r.v.read(func(st *state) error {
		if m, ok := st.materials[id]; ok {
			out = &m
		}
		return nil
	})
	return out, err
}

func (r *materialRepo) CreateLot(ctx context.Context, lot *entity.MaterialLot) error {
	return r.v.write(ctx, func(st *state) error {
		if _, ok := st.materials[lot.MaterialID]; !ok {
			return domain.NotFound("material", lot.MaterialID)
		}
		st.lots[lot.ID] = *lot
		return nil
	})
}

func (r *materialRepo) GetLot(_ context.Context, lotID string) (*entity.MaterialLot, error) {
	var out *entity.MaterialLot
	err := r.v.read(func(st *state) error {
		if l, ok := st.lots[lotID]; ok {
			out = &l
		}
		return nil
	})
	return out, err
}

func (r *materialRepo) ListLots(_ context.Context, materialID string) ([]entity.MaterialLot, error) {
	var out []entity.MaterialLot
	err := r.v.read(func(st *state) error {
		for _, l := range st.lots {
			if l.MaterialID == materialID {
				out = append(out, l)
			}
		}
		return nil
	})
	ledger.SortLotsFIFO(out)
	return out, err
}

func (r *materialRepo) ListLotsForUpdate(ctx context.Context, materialID string) ([]entity.MaterialLot, error) {
	return r.ListLots(ctx, materialID)
}

func (r *materialRepo) UpdateLotQuantity(ctx context.Context, lotID string, quantity decimal.Decimal) error {
	return r.v.write(ctx, func(st *state) error {
		l, ok := st.lots[lotID]
		if !ok {
			return domain.NotFound("material_lot", lotID)
		}
		if quantity.IsNegative() {
			return domain.Invalid("quantity", "un lote no puede quedar negativo")
		}
		l.Quantity = quantity
		st.lots[lotID] = l
		return nil
	})
}

type recipeRepo struct{ v *view }

func (r *recipeRepo) ListByProduct(_ context.Context, productID string) ([]entity.RecipeEntry, error) {
	var out []entity.RecipeEntry
	err := r.v.read(func(st *state) error {
		out = append(out, st.recipes[productID]...)
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].MaterialID < out[j].MaterialID })
	return out, err
}

func (r *recipeRepo) Replace(ctx context.Context, productID string, entries []entity.RecipeEntry) error {
	return r.v.write(ctx, func(st *state) error {
		if _, ok := st.products[productID]; !ok {
			return domain.NotFound("product", productID)
		}
		for _, e := range entries {
			if _, ok := st.materials[e.MaterialID]; !ok {
				return domain.NotFound("material", e.MaterialID)
			}
		}
		if len(entries) == 0 {
			delete(st.recipes, productID)
			return nil
		}
		st.recipes[productID] = append([]entity.RecipeEntry(nil), entries...)
		return nil
	})
}

type supplierProductRepo struct{ v *view }

func (r *supplierProductRepo) Create(ctx context.Context, sp *entity.SupplierProduct) error {
	return r.v.write(ctx, func(st *state) error {
		if _, ok := st.suppliers[sp.SupplierID]; !ok {
			return domain.NotFound("supplier", sp.SupplierID)
		}
		if _, ok := st.products[sp.ProductID]; !ok {
			return domain.NotFound("product", sp.ProductID)
		}
		st.supplierProducts[sp.ID] = *sp
		return nil
	})
}

func (r *supplierProductRepo) GetByID(_ context.Context, id string) (*entity.SupplierProduct, error) {
	var out *entity.SupplierProduct
	err := r.v.read(func(st *state) error {
		if sp, ok := st.supplierProducts[id]; ok {
			out = &sp
		}
		return nil
	})
	return out, err
}

func (r *supplierProductRepo) GetForUpdate(ctx context.Context, id string) (*entity.SupplierProduct, error) {
	return r.GetByID(ctx, id)
}

func (r *supplierProductRepo) Update(ctx context.Context, sp *entity.SupplierProduct) error {
	return r.v.write(ctx, func(st *state) error {
		if _, ok := st.supplierProducts[sp.ID]; !ok {
			return domain.NotFound("supplier_product", sp.ID)
		}
		st.supplierProducts[sp.ID] = *sp
		return nil
	})
}

type paymentRepo struct{ v *view }

func (r *paymentRepo) Create(ctx context.Context, p *entity.Payment) error {
	return r.v.write(ctx, func(st *state) error {
		st.payments = append(st.payments, *p)
		return nil
	})
}

// ListByEntity más reciente primero; a igual fecha, el último insertado primero.
func (r *paymentRepo) ListByEntity(_ context.Context, kind entity.PayableKind, entityID string) ([]*entity.Payment, error) {
	var out []*entity.Payment
	err := r.v.read(func(st *state) error {
		for i := len(st.payments) - 1; i >= 0; i-- {
			p := st.payments[i]
			if p.Kind == kind && p.EntityID == entityID {
				out = append(out, &p)
			}
		}
		return nil
	})
	sort.SliceStable(out, func(i, j int) bool { return out[i].PaymentDate.After(out[j].PaymentDate) })
	return out, err
}
