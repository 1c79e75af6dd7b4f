package memory

import (
	"context"
	"strings"

	"github.com/jhoicas/peakers-pos-api/internal/domain"
	"github.com/jhoicas/peakers-pos-api/internal/domain/entity"
)

type productRepo struct{ v *view }

func (r *productRepo) Create(ctx context.Context, p *entity.Product) error {
	return r.v.write(ctx, func(st *state) error {
		st.products[p.ID] = *p
		return nil
	})
}

func (r *productRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	var out *entity.Product
	err := r.v.read(func(st *state) error {
		if p, ok := st.products[id]; ok {
			out = &p
		}
		return nil
	})
	return out, err
}

// GetForUpdate la tx en memoria ya tiene acceso exclusivo al estado.
func (r *productRepo) GetForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	return r.GetByID(ctx, id)
}

func (r *productRepo) UpdateStock(ctx context.Context, id string, stock int64) error {
	return r.v.write(ctx, func(st *state) error {
		p, ok := st.products[id]
		if !ok {
			return domain.NotFound("product", id)
		}
		p.Stock = stock
		st.products[id] = p
		return nil
	})
}

type supplierRepo struct{ v *view }

func (r *supplierRepo) Create(ctx context.Context, s *entity.Supplier) error {
	return r.v.write(ctx, func(st *state) error {
		key := strings.ToLower(s.Name)
		if _, dup := st.supplierNames[key]; dup {
			return &domain.ConflictError{Field: "name", Value: s.Name}
		}
		st.suppliers[s.ID] = *s
		st.supplierNames[key] = s.ID
		return nil
	})
}

func (r *supplierRepo) GetByID(_ context.Context, id string) (*entity.Supplier, error) {
	var out *entity.Supplier
	err := r.v.read(func(st *state) error {
		if s, ok := st.suppliers[id]; ok {
			out = &s
		}
		return nil
	})
	return out, err
}

type customerRepo struct{ v *view }

func (r *customerRepo) Create(ctx context.Context, c *entity.Customer) error {
	return r.v.write(ctx, func(st *state) error {
		st.customers[c.ID] = *c
		return nil
	})
}

func (r *customerRepo) GetByID(_ context.Context, id string) (*entity.Customer, error) {
	var out *entity.Customer
	err := r.v.read(func(st *state) error {
		if c, ok := st.customers[id]; ok {
			out = &c
		}
		return nil
	})
	return out, err
}
