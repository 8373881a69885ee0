package ledger_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Estoque-api/internal/domain/ledger"
)

func TestAlertThreshold(t *testing.T) {
	assert.Equal(t, int64(5), ledger.AlertThreshold(10, 50))
	assert.Equal(t, int64(3), ledger.AlertThreshold(7, 50), "floor(3.5) = 3")
	assert.Equal(t, int64(0), ledger.AlertThreshold(0, 50))
	assert.Equal(t, int64(0), ledger.AlertThreshold(10, 0))
	assert.Equal(t, int64(12), ledger.AlertThreshold(10, 120))
}

// Frontera: stockMin=10, alertPercentage=50 → umbral 5.
func TestClassify_Frontera(t *testing.T) {
	threshold := ledger.AlertThreshold(10, 50)

	assert.Equal(t, ledger.StatusOutOfStock, ledger.Classify(0, threshold))
	assert.Equal(t, ledger.StatusLowStock, ledger.Classify(5, threshold))
	assert.Equal(t, ledger.StatusOK, ledger.Classify(6, threshold))
	assert.True(t, ledger.Classify(5, threshold).Flagged())
	assert.False(t, ledger.Classify(6, threshold).Flagged())
}

func TestClassify_UmbralCeroSoloAgotado(t *testing.T) {
	assert.Equal(t, ledger.StatusOutOfStock, ledger.Classify(0, 0))
	assert.Equal(t, ledger.StatusOK, ledger.Classify(1, 0))
}
