package payments

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAmountInCentsRoundsHalfCents(t *testing.T) {
	cases := []struct {
		price float64
		cents int64
	}{
		{19.99, 1999},
		{49.99, 4999},
		{29.95, 2995},
		{10.00, 1000},
		{0.01, 1},
		{0, 0},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.cents, amountInCents(tc.price), "price %.2f", tc.price)
	}
}
