package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestProductCloneIsIndependent(t *testing.T) {
	product := &Product{
		Name:     "Slim Case",
		Category: CategoryCases,
		Models: map[string]*Model{
			"iPhone 15": {
				Price:            decimal.NewFromInt(10),
				Colors:           map[string]int{"Black": 8},
				UnitsSoldByColor: map[string]int{"Black": 2},
			},
		},
	}

	clone := product.Clone()
	clone.Models["iPhone 15"].Colors["Black"] = 0
	clone.Models["iPhone 15"].UnitsSoldByColor["Black"] = 99

	assert.Equal(t, 8, product.Models["iPhone 15"].Colors["Black"])
	assert.Equal(t, 2, product.Models["iPhone 15"].UnitsSoldByColor["Black"])
}

func TestModelNamesSorted(t *testing.T) {
	product := &Product{
		Models: map[string]*Model{
			"iPhone 15":     {},
			"Galaxy S24":    {},
			"iPhone 15 Pro": {},
		},
	}
	assert.Equal(t, []string{"Galaxy S24", "iPhone 15", "iPhone 15 Pro"}, product.ModelNames())
}

func TestCategoryIsValid(t *testing.T) {
	for _, category := range Categories() {
		assert.True(t, category.IsValid(), "category %q should be valid", category)
	}
	assert.False(t, Category("Laptops").IsValid())
	assert.False(t, Category("").IsValid())
}

func TestOrderStatusIsValid(t *testing.T) {
	assert.True(t, OrderStatusOrdered.IsValid())
	assert.True(t, OrderStatusRefunded.IsValid())
	assert.False(t, OrderStatus("PENDING").IsValid())
}
