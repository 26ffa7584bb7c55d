package entity

// StockRecord saldo de un artículo en una bodega del marketplace.
type StockRecord struct {
	Article   string
	Subject   string
	Quantity  int
	Warehouse string
}

// RawStock campos opcionales tal como llegan del marketplace.
type RawStock struct {
	Article   *string
	Subject   *string
	Quantity  *int
	Warehouse *string
}

// NewStockRecord normaliza un saldo crudo.
func NewStockRecord(raw RawStock) StockRecord {
	return StockRecord{
		Article:   str(raw.Article),
		Subject:   str(raw.Subject),
		Quantity:  nonNegative(count(raw.Quantity)),
		Warehouse: str(raw.Warehouse),
	}
}
