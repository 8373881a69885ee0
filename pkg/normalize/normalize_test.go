package normalize_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Estoque-api/pkg/normalize"
)

func TestKey(t *testing.T) {
	cases := map[string]string{
		"  Café  Açúcar ":   "cafe acucar",
		"BEBIDAS":           "bebidas",
		"Limpeza e Higiene": "limpeza e higiene",
		"":                  "",
	}
	for in, want := range cases {
		assert.Equal(t, want, normalize.Key(in), in)
	}
}

func TestTitle(t *testing.T) {
	assert.Equal(t, "Create Product", normalize.Title("CREATE_PRODUCT"))
	assert.Equal(t, "Read Stock", normalize.Title("READ_STOCK"))
}
