package cache

import "github.com/google/uuid"

const ttlPrefix = "handcraft:carts:"

// KeyCartByUser is the cache slot for a user's materialized cart.
func KeyCartByUser(userID uuid.UUID) string {
	return ttlPrefix + "user:" + userID.String()
}

// KeyWishlistByUser is the cache slot for a user's wishlist.
func KeyWishlistByUser(userID uuid.UUID) string {
	return ttlPrefix + "wishlist:" + userID.String()
}
