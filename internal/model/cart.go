package model

// CartRow is a cart entry joined with its menu item and restaurant,
// as produced by the cart repository query.
type CartRow struct {
	ID             int64   `json:"id"`
	UserID         int64   `json:"user_id"`
	RestaurantID   int64   `json:"restaurant_id"`
	ItemID         int64   `json:"item_id"`
	Quantity       int     `json:"quantity"`
	ItemName       string  `json:"item_name"`
	Description    string  `json:"description"`
	Price          float64 `json:"price"`
	Category       string  `json:"category"`
	RestaurantName string  `json:"restaurant_name"`
	Address        string  `json:"address"`
	Lat            float64 `json:"lat"`
	Lon            float64 `json:"lon"`
}
