package ledger

// StockStatus clasificación de un producto frente a su mínimo.
type StockStatus string

// Estados de alerta.
const (
	StatusOutOfStock StockStatus = "OUT_OF_STOCK"
	StatusLowStock   StockStatus = "LOW_STOCK"
	StatusOK         StockStatus = "OK"
)

// AlertThreshold = floor(stockMin * alertPercentage / 100). Entradas negativas cuentan como 0.
func AlertThreshold(stockMin, alertPercentage int64) int64 {
	if stockMin <= 0 || alertPercentage <= 0 {
		return 0
	}
	return stockMin * alertPercentage / 100
}

// Classify: 0 → OUT_OF_STOCK; <= umbral → LOW_STOCK; resto OK.
func Classify(currentStock, threshold int64) StockStatus {
	switch {
	case currentStock <= 0:
		return StatusOutOfStock
	case currentStock <= threshold:
		return StatusLowStock
	default:
		return StatusOK
	}
}

// Flagged indica si el estado debe aparecer en el reporte de stock bajo.
func (s StockStatus) Flagged() bool {
	return s == StatusOutOfStock || s == StatusLowStock
}
