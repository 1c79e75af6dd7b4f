package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/peakers-pos-api/internal/application/dto"
	"github.com/jhoicas/peakers-pos-api/internal/application/ports"
	"github.com/jhoicas/peakers-pos-api/internal/domain"
	"github.com/jhoicas/peakers-pos-api/internal/domain/entity"
	"github.com/jhoicas/peakers-pos-api/internal/domain/ledger"
	"github.com/jhoicas/peakers-pos-api/internal/domain/repository"
)

// RecipeUseCase lectura y edición de la receta (BOM) de un producto.
type RecipeUseCase struct {
	txRunner TxRunner
	repos    repository.Repos
	metrics  ports.LedgerMetrics
	log      zerolog.Logger
	now      func() time.Time
}

// NewRecipeUseCase construye el caso de uso. repos se usa solo para lecturas fuera de tx.
func NewRecipeUseCase(txRunner TxRunner, repos repository.Repos, metrics ports.LedgerMetrics, log zerolog.Logger) *RecipeUseCase {
	if metrics == nil {
		metrics = ports.NopMetrics{}
	}
	return &RecipeUseCase{
		txRunner: txRunner,
		repos:    repos,
		metrics:  metrics,
		log:      log,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// GetRecipe devuelve la receta vigente; un producto sin receta devuelve lista vacía.
func (uc *RecipeUseCase) GetRecipe(ctx context.Context, productID string) (*dto.RecipeResponse, error) {
	p, err := uc.repos.Products.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.NotFound("product", productID)
	}
	bom, err := uc.repos.Recipes.ListByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	return toRecipeResponse(productID, bom), nil
}

// EditRecipe reconcilia los lotes con la nueva receta en una sola tx: devuelve el material del
// stock actual bajo la receta anterior y consume el mismo stock bajo la nueva. Si la nueva
// receta no se puede cubrir, no cambia ningún lote ni la receta.
func (uc *RecipeUseCase) EditRecipe(ctx context.Context, productID string, in dto.EditRecipeRequest) (res *dto.RecipeResponse, err error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	entries, err := recipeEntries(productID, in)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	defer func() { uc.metrics.ObserveTx("recipe_edit", ports.Outcome(err), time.Since(start)) }()

	var moved Movement
	err = uc.txRunner.Run(ctx, func(repos repository.Repos) error {
		for _, e := range entries {
			m, err := repos.Materials.GetByID(ctx, e.MaterialID)
			if err != nil {
				return err
			}
			if m == nil {
				return domain.NotFound("material", e.MaterialID)
			}
		}
		product, err := NewStockLedger(repos.Products).Lock(ctx, productID)
		if err != nil {
			return err
		}
		old, err := repos.Recipes.ListByProduct(ctx, productID)
		if err != nil {
			return err
		}
		if product.Stock > 0 {
			returned := ledger.MaterialNeeds{}
			returned.AddRecipe(old, product.Stock)
			consumed := ledger.MaterialNeeds{}
			consumed.AddRecipe(entries, product.Stock)

			allocator := NewMaterialAllocator(repos.Materials, uc.now)
			if err := allocator.Lock(ctx, unionIDs(returned, consumed)); err != nil {
				return err
			}
			if err := allocator.Return(ctx, returned); err != nil {
				return err
			}
			if err := allocator.Consume(ctx, consumed); err != nil {
				return err
			}
			moved = allocator.Moved()
		}
		return repos.Recipes.Replace(ctx, productID, entries)
	})
	if err != nil {
		uc.log.Warn().Err(err).Str("product_id", productID).Msg("edición de receta rechazada")
		return nil, err
	}
	if moved.Returned.IsPositive() {
		uc.metrics.MaterialMoved("return", moved.Returned.InexactFloat64())
	}
	if moved.Consumed.IsPositive() {
		uc.metrics.MaterialMoved("consume", moved.Consumed.InexactFloat64())
	}
	uc.log.Info().Str("product_id", productID).Int("materials", len(entries)).Msg("receta actualizada")
	return toRecipeResponse(productID, entries), nil
}

func recipeEntries(productID string, in dto.EditRecipeRequest) ([]entity.RecipeEntry, error) {
	seen := make(map[string]struct{}, len(in.Materials))
	entries := make([]entity.RecipeEntry, 0, len(in.Materials))
	for i, m := range in.Materials {
		if _, dup := seen[m.MaterialID]; dup {
			return nil, domain.Invalid(fmt.Sprintf("materials[%d].materialId", i), "material repetido en la receta")
		}
		seen[m.MaterialID] = struct{}{}
		if err := requireQuantity(fmt.Sprintf("materials[%d].quantityPerUnit", i), m.QuantityPerUnit); err != nil {
			return nil, err
		}
		entries = append(entries, entity.RecipeEntry{
			ProductID:       productID,
			MaterialID:      m.MaterialID,
			QuantityPerUnit: m.QuantityPerUnit,
		})
	}
	return entries, nil
}

func unionIDs(a, b ledger.MaterialNeeds) []string {
	all := ledger.MaterialNeeds{}
	for id, q := range a {
		all[id] = q
	}
	for id, q := range b {
		if cur, ok := all[id]; ok {
			all[id] = cur.Add(q)
		} else {
			all[id] = q
		}
	}
	return all.MaterialIDs()
}

func toRecipeResponse(productID string, bom []entity.RecipeEntry) *dto.RecipeResponse {
	out := &dto.RecipeResponse{ProductID: productID, Materials: make([]dto.RecipeMaterialRequest, 0, len(bom))}
	for _, e := range bom {
		out.Materials = append(out.Materials, dto.RecipeMaterialRequest{
			MaterialID:      e.MaterialID,
			QuantityPerUnit: e.QuantityPerUnit,
		})
	}
	return out
}
