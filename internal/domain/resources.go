package domain

import "time"

// ResourceCategory identifies a ledger stock category. Scalar categories
// (money, water) carry a single quantity; keyed categories hold one
// quantity per item (seeds by crop, fertilizers by kind, ...).
type ResourceCategory string

const (
	ResourceMoney          ResourceCategory = "money"
	ResourceWater          ResourceCategory = "water"
	ResourceSeeds          ResourceCategory = "seeds"
	ResourceFertilizers    ResourceCategory = "fertilizers"
	ResourcePesticides     ResourceCategory = "pesticides"
	ResourceHarvest        ResourceCategory = "harvest"
	ResourceAnimalProducts ResourceCategory = "animal_products"
)

// IsScalar reports whether the category carries a single unkeyed quantity.
func (c ResourceCategory) IsScalar() bool {
	return c == ResourceMoney || c == ResourceWater
}

// ResourceAmount is a quantity of one (category, item) stock.
// Item is empty for scalar categories.
type ResourceAmount struct {
	Category ResourceCategory `json:"category"`
	Item     string           `json:"item,omitempty"`
	Quantity float64          `json:"quantity"`
}

// Cost is the set of resources an operation consumes or grants.
type Cost []ResourceAmount

// Money builds a money amount.
func Money(quantity float64) ResourceAmount {
	return ResourceAmount{Category: ResourceMoney, Quantity: quantity}
}

// Water builds a water amount in litres.
func Water(quantity float64) ResourceAmount {
	return ResourceAmount{Category: ResourceWater, Quantity: quantity}
}

// Seeds builds a seed amount for a crop.
func Seeds(cropID string, quantity float64) ResourceAmount {
	return ResourceAmount{Category: ResourceSeeds, Item: cropID, Quantity: quantity}
}

// Fertilizer builds a fertilizer amount for a kind (organic, npk, urea, phosphate).
func Fertilizer(kind string, quantity float64) ResourceAmount {
	return ResourceAmount{Category: ResourceFertilizers, Item: kind, Quantity: quantity}
}

// Pesticide builds a pesticide amount for a kind (natural, chemical).
func Pesticide(kind string, quantity float64) ResourceAmount {
	return ResourceAmount{Category: ResourcePesticides, Item: kind, Quantity: quantity}
}

// HarvestGoods builds a harvested-goods amount for a crop, in tonnes.
func HarvestGoods(cropID string, quantity float64) ResourceAmount {
	return ResourceAmount{Category: ResourceHarvest, Item: cropID, Quantity: quantity}
}

// AnimalProduct builds an animal-product amount for a kind (eggs, milk, manure).
func AnimalProduct(kind string, quantity float64) ResourceAmount {
	return ResourceAmount{Category: ResourceAnimalProducts, Item: kind, Quantity: quantity}
}

// TransactionKind classifies a ledger mutation.
type TransactionKind string

const (
	TransactionExpense TransactionKind = "expense"
	TransactionIncome  TransactionKind = "income"
)

// Transaction is one append-only ledger log record.
type Transaction struct {
	Timestamp time.Time       `json:"timestamp"`
	Kind      TransactionKind `json:"kind"`
	Reason    string          `json:"reason"`
	Deltas    Cost            `json:"deltas"`
}

// LedgerState is the serializable state of the resource ledger.
// Stocks maps category -> item -> quantity; scalar categories use the
// empty item key.
type LedgerState struct {
	Stocks       map[ResourceCategory]map[string]float64 `json:"stocks"`
	Transactions []Transaction                           `json:"transactions,omitempty"`
}
