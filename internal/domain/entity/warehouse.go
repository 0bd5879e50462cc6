package entity

import "time"

// Nombres de las bodegas principales por tipo.
var PrincipalWarehouseNames = map[string]string{
	MaterialRaw:                "Bodega Materias Primas",
	MaterialPrimaryPackaging:   "Bodega Envase Primario",
	MaterialSecondaryPackaging: "Bodega Envase Secundario",
	MaterialFinishedGood:       "Bodega Producto Terminado",
}

// Warehouse bodega identificada por tipo. Existe una sola principal por tipo.
type Warehouse struct {
	ID        string
	Name      string
	Kind      string
	Location  string
	Principal bool
	CreatedAt time.Time
}
