package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsSupportedCurrency(t *testing.T) {
	for _, c := range []string{"USD", "EUR", "JPY", "BRL", "GBP"} {
		assert.True(t, IsSupportedCurrency(c), c)
	}
	for _, c := range []string{"XYZ", "ZZZ", "usd", "", "US", "DOLLARS"} {
		assert.False(t, IsSupportedCurrency(c), c)
	}
}
