package models

import "github.com/shopspring/decimal"

// MenuItem represents a single entry of the café menu.
// Menu data is read-only reference data fetched once per session.
type MenuItem struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	ImageURL    string          `json:"imageUrl"`
	Category    string          `json:"category"`
}

// MenuIndex builds a lookup table from item id to menu item.
func MenuIndex(items []MenuItem) map[string]MenuItem {
	index := make(map[string]MenuItem, len(items))
	for _, item := range items {
		index[item.ID] = item
	}
	return index
}
