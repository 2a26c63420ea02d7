package domain

// OrderStatus represents the direction of a ledger entry
type OrderStatus string

const (
	OrderStatusOrdered  OrderStatus = "ORDERED"
	OrderStatusRefunded OrderStatus = "REFUNDED"
)

// IsValid checks if the order status is valid
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusOrdered, OrderStatusRefunded:
		return true
	default:
		return false
	}
}

// Category represents a product category
type Category string

const (
	CategoryCases            Category = "Cases"
	CategoryScreenProtectors Category = "Screen Protectors"
	CategoryChargers         Category = "Chargers"
	CategoryHeadphones       Category = "Headphones"
	CategorySpeakers         Category = "Speakers"
	CategoryCables           Category = "Cables"
	CategoryPowerBanks       Category = "Power Banks"
	CategoryMounts           Category = "Mounts"
	CategoryStands           Category = "Stands"
	CategoryOther            Category = "Other"
)

// Categories lists every valid category in display order.
func Categories() []Category {
	return []Category{
		CategoryCases,
		CategoryScreenProtectors,
		CategoryChargers,
		CategoryHeadphones,
		CategorySpeakers,
		CategoryCables,
		CategoryPowerBanks,
		CategoryMounts,
		CategoryStands,
		CategoryOther,
	}
}

// IsValid checks if the category is one of the predefined set
func (c Category) IsValid() bool {
	for _, known := range Categories() {
		if c == known {
			return true
		}
	}
	return false
}
