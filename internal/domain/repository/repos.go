package repository

// Repos agrupa los repositorios atados a un mismo Querier: la transacción abierta por un
// TxRunner o, para lecturas, el pool.
type Repos struct {
	Products         ProductRepository
	Sales            SaleRepository
	Materials        MaterialRepository
	Recipes          RecipeRepository
	SupplierProducts SupplierProductRepository
	Suppliers        SupplierRepository
	Customers        CustomerRepository
	Payments         PaymentRepository
}
