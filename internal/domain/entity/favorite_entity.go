package entity

import "time"

// Favorite marks that a user saved a product.
// (UserID, ProductID) is unique; a Favorite is never updated, only created or deleted.
type Favorite struct {
	UserID    string
	ProductID string
	SavedAt   time.Time
}
