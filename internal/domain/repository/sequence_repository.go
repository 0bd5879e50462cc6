package repository

import "context"

// SequenceRepository contadores atómicos para códigos correlativos (CC-0001, MEP-0001...).
type SequenceRepository interface {
	Next(ctx context.Context, name string) (int64, error)
}
