package sales_test

import (
	"bytes"
	"regexp"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/peakers-pos-api/internal/application/dto"
	"github.com/jhoicas/peakers-pos-api/internal/domain"
	"github.com/jhoicas/peakers-pos-api/internal/domain/ledger"
)

var orderNumberRe = regexp.MustCompile(`^ORD\d{8}$`)

func TestProcessSale_DescuentaStock(t *testing.T) {
	e := newEnv(t)
	a := e.product(t, 10)

	out, err := e.process.ProcessSale(e.ctx, cashSale(item(a, 3, "30")))
	require.NoError(t, err)
	assert.Regexp(t, orderNumberRe, out.OrderNumber)
	assert.True(t, out.Total.Equal(decimal.NewFromInt(30)))
	assert.Equal(t, int64(7), e.stock(t, a))

	sale, err := e.repos.Sales.GetByID(e.ctx, out.SaleID)
	require.NoError(t, err)
	require.NotNil(t, sale)
	assert.Equal(t, "completed", string(sale.Status))
}

func TestProcessSale_TotalConIVAYDescuento(t *testing.T) {
	e := newEnv(t)
	a := e.product(t, 10)
	b := e.product(t, 10)
	vat := decimal.RequireFromString("19.5")
	discount := decimal.RequireFromString("5")

	in := cashSale(item(a, 1, "100"), item(b, 2, "50.25"))
	in.VAT = &vat
	in.Discount = &discount
	out, err := e.process.ProcessSale(e.ctx, in)
	require.NoError(t, err)
	assert.Equal(t, "164.75", out.Total.String())
}

func TestProcessSale_StockInsuficienteNoTocaNingunaLinea(t *testing.T) {
	e := newEnv(t)
	a := e.product(t, 2)
	b := e.product(t, 5)

	_, err := e.process.ProcessSale(e.ctx, cashSale(item(a, 3, "30"), item(b, 1, "10")))
	require.Error(t, err)

	var insufficient *domain.InsufficientStockError
	require.ErrorAs(t, err, &insufficient)
	assert.Equal(t, a, insufficient.ProductID)
	assert.Equal(t, int64(3), insufficient.Required)
	assert.Equal(t, int64(2), insufficient.Available)

	assert.Equal(t, int64(2), e.stock(t, a))
	assert.Equal(t, int64(5), e.stock(t, b))
}

func TestProcessSale_ConsumeMaterialFIFO(t *testing.T) {
	e := newEnv(t)
	x := e.product(t, 10)
	m := e.material(t)
	older := e.lot(t, m, 8, 10)
	newer := e.lot(t, m, 10, 1)
	e.recipe(t, x, m, 2)

	_, err := e.process.ProcessSale(e.ctx, cashSale(item(x, 5, "50")))
	require.NoError(t, err)

	assert.Equal(t, "0", e.lotQty(t, older))
	assert.Equal(t, "8", e.lotQty(t, newer))
	assert.Equal(t, int64(5), e.stock(t, x))
}

func TestProcessSale_MaterialInsuficienteRevierteStock(t *testing.T) {
	e := newEnv(t)
	x := e.product(t, 10)
	m := e.material(t)
	l := e.lot(t, m, 3, 1)
	e.recipe(t, x, m, 2)

	_, err := e.process.ProcessSale(e.ctx, cashSale(item(x, 2, "20")))
	var shortage *domain.InsufficientMaterialError
	require.ErrorAs(t, err, &shortage)
	assert.Equal(t, m, shortage.MaterialID)
	assert.Equal(t, "1", shortage.Shortfall.String())

	assert.Equal(t, int64(10), e.stock(t, x))
	assert.Equal(t, "3", e.lotQty(t, l))
}

func TestProcessSale_LineasDelMismoProductoSeAgregan(t *testing.T) {
	e := newEnv(t)
	a := e.product(t, 5)

	_, err := e.process.ProcessSale(e.ctx, cashSale(item(a, 3, "30"), item(a, 3, "30")))
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, int64(5), e.stock(t, a))

	_, err = e.process.ProcessSale(e.ctx, cashSale(item(a, 2, "20"), item(a, 3, "30")))
	require.NoError(t, err)
	assert.Equal(t, int64(0), e.stock(t, a))
}

func TestProcessSale_Validaciones(t *testing.T) {
	e := newEnv(t)
	a := e.product(t, 5)
	neg := decimal.NewFromInt(-1)
	vat := decimal.RequireFromString("19.005")
	ghost := uuid.NewString()

	tests := []struct {
		name  string
		in    dto.ProcessSaleRequest
		field string
	}{
		{"carrito vacío", dto.ProcessSaleRequest{PaymentType: "Cash"}, "cartItems"},
		{"medio de pago desconocido", dto.ProcessSaleRequest{PaymentType: "Card", CartItems: []dto.CartItemRequest{item(a, 1, "1")}}, "paymentType"},
		{"cantidad cero", cashSale(item(a, 0, "1")), "cartItems[0].quantity"},
		{"producto vacío", cashSale(item("", 1, "1")), "cartItems[0].productId"},
		{"subtotal negativo", cashSale(item(a, 1, "-1")), "cartItems[0].subtotal"},
		{"subtotal con tres decimales", cashSale(item(a, 1, "1"), item(a, 1, "1.005")), "cartItems[1].subtotal"},
		{"iva con tres decimales", dto.ProcessSaleRequest{PaymentType: "Cash", CartItems: []dto.CartItemRequest{item(a, 1, "1")}, VAT: &vat}, "vat"},
		{"descuento negativo", dto.ProcessSaleRequest{PaymentType: "Mpesa", CartItems: []dto.CartItemRequest{item(a, 1, "1")}, Discount: &neg}, "discount"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := e.process.ProcessSale(e.ctx, tt.in)
			var verr *domain.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.field, verr.Field)
		})
	}
	assert.Equal(t, int64(5), e.stock(t, a))

	t.Run("cliente inexistente", func(t *testing.T) {
		in := cashSale(item(a, 1, "1"))
		in.CustomerID = &ghost
		_, err := e.process.ProcessSale(e.ctx, in)
		assert.ErrorIs(t, err, domain.ErrNotFound)
		assert.Equal(t, int64(5), e.stock(t, a))
	})

	t.Run("producto inexistente", func(t *testing.T) {
		_, err := e.process.ProcessSale(e.ctx, cashSale(item(ghost, 1, "1")))
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestProcessSale_ColisionDeNumeroDeOrdenSeReintenta(t *testing.T) {
	e := newEnv(t)
	a := e.product(t, 5)
	// 4 dígitos: rand.Int lee 2 bytes por intento. 0000, 0000 (colisión), 0001.
	src := bytes.NewReader([]byte{0, 0, 0, 0, 0, 1})
	e.process.WithOrderNumbers(ledger.NewOrderNumberGeneratorWithSource("ORD", 4, src))

	first, err := e.process.ProcessSale(e.ctx, cashSale(item(a, 1, "1")))
	require.NoError(t, err)
	second, err := e.process.ProcessSale(e.ctx, cashSale(item(a, 1, "1")))
	require.NoError(t, err)

	assert.Equal(t, "ORD0000", first.OrderNumber)
	assert.Equal(t, "ORD0001", second.OrderNumber)
	assert.Equal(t, int64(3), e.stock(t, a))
}

func TestProcessSale_ReintentosAgotados(t *testing.T) {
	e := newEnv(t)
	a := e.product(t, 5)
	e.process.WithOrderNumbers(ledger.NewOrderNumberGeneratorWithSource("ORD", 4, bytes.NewReader(make([]byte, 64))))

	_, err := e.process.ProcessSale(e.ctx, cashSale(item(a, 1, "1")))
	require.NoError(t, err)

	_, err = e.process.ProcessSale(e.ctx, cashSale(item(a, 1, "1")))
	var conflict *domain.ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, "orderNumber", conflict.Field)
	assert.Equal(t, int64(4), e.stock(t, a))
}

func TestProcessSale_ConcurrenteNumerosUnicosYSinSobreventa(t *testing.T) {
	e := newEnv(t)
	a := e.product(t, 10)
	b := e.product(t, 100)

	const workers = 25
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		numbers = map[string]bool{}
		failed  int
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			// orden de carrito alternado: el bloqueo siempre sigue el orden por producto
			items := []dto.CartItemRequest{item(a, 1, "1"), item(b, 1, "1")}
			if i%2 == 0 {
				items[0], items[1] = items[1], items[0]
			}
			out, err := e.process.ProcessSale(e.ctx, cashSale(items...))
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				assert.ErrorIs(t, err, domain.ErrInsufficientStock)
				failed++
				return
			}
			assert.False(t, numbers[out.OrderNumber], "número de orden repetido %s", out.OrderNumber)
			numbers[out.OrderNumber] = true
		}(i)
	}
	wg.Wait()

	assert.Len(t, numbers, 10)
	assert.Equal(t, workers-10, failed)
	assert.Equal(t, int64(0), e.stock(t, a))
	assert.Equal(t, int64(90), e.stock(t, b))
}
