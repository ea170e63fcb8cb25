package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mkolev/routecatalog/internal/domain"
)

func TestRandomFlightValues_Bounds(t *testing.T) {
	for i := 0; i < 1000; i++ {
		price, cabin := randomFlightValues()

		assert.GreaterOrEqual(t, price, minPrice)
		assert.LessOrEqual(t, price, maxPrice)
		assert.True(t, domain.Cabin(cabin).Valid(), "cabin %d out of range", cabin)
	}
}
