package model

import "errors"

var (
	ErrRestaurantNotFound = errors.New("restaurant not found")
	ErrMenuItemNotFound   = errors.New("menu item not found")
)

type Restaurant struct {
	ID           int64   `json:"id"`
	Name         string  `json:"name"`
	Address      string  `json:"address"`
	CuisineType  string  `json:"cuisine_type"`
	Rating       float64 `json:"rating"`
	DeliveryTime int     `json:"delivery_time"`
	Lat          float64 `json:"lat"`
	Lon          float64 `json:"lon"`
	Description  string  `json:"description"`
}

type MenuItem struct {
	ID           int64   `json:"id"`
	RestaurantID int64   `json:"restaurant_id"`
	ItemName     string  `json:"item_name"`
	Description  string  `json:"description"`
	Price        float64 `json:"price"`
	Category     string  `json:"category"`
}
