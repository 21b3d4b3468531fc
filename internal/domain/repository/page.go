package repository

// Page límite y desplazamiento para listados.
type Page struct {
	Limit  int
	Offset int
}
