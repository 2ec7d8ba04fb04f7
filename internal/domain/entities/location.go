package entities

// Location is a Square merchant location (a store, a warehouse, an online shop).
type Location struct {
	ID     string `json:"id"`
	Name   string `json:"name,omitempty"`
	Status string `json:"status,omitempty"`
}
