package domain

// Product is a catalog entry. The catalog is static and read-only.
type Product struct {
	ID       int     `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	ImageURL string  `json:"img"`
}
