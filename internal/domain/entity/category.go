package entity

// Category agrupa productos; su nombre se proyecta en la vista de stock.
type Category struct {
	ID   string
	Name string
}
