package repository

// Repos agrupa los repositorios atados a una misma transacción (o al pool).
type Repos struct {
	Users           UserRepository
	Signatures      SignatureRepository
	Sheets          SheetRepository
	QualityControls QualityControlRepository
	Materials       MaterialRepository
	Warehouses      WarehouseRepository
	Stock           StockRepository
	Sequences       SequenceRepository
}
