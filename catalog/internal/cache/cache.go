package cache

import "github.com/google/uuid"

const prefix = "handcraft:catalog:"

// KeyProductById is the cache slot for a single product.
func KeyProductById(productID uuid.UUID) string {
	return prefix + "product:" + productID.String()
}

// KeyCategories is the cache slot for the full category listing.
const KeyCategories = prefix + "categories"
