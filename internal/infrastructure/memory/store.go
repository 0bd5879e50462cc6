// Package memory implementa los repositorios sobre un estado en memoria con transacciones
// serializadas: cada Run trabaja sobre una copia y solo la publica si fn no falla.
package memory

import (
	"context"
	"sync"

	"github.com/DanySando/Proyecto-GPQ/internal/application/ports"
	"github.com/DanySando/Proyecto-GPQ/internal/domain/entity"
	"github.com/DanySando/Proyecto-GPQ/internal/domain/repository"
)

var _ ports.TxRunner = (*Store)(nil)

type stockKey struct {
	warehouseID string
	materialID  string
}

type state struct {
	users      map[string]entity.User
	profiles   map[string]entity.Profile
	signatures map[string]entity.Signature
	sigOrder   []string
	sheets     map[string]*entity.Sheet
	qcs        map[string]entity.QualityControl
	materials  map[string]entity.Material
	warehouses map[string]entity.Warehouse
	stock      map[stockKey]entity.StockLevel
	sequences  map[string]int64
}

func newState() *state {
	return &state{
		users:      map[string]entity.User{},
		profiles:   map[string]entity.Profile{},
		signatures: map[string]entity.Signature{},
		sheets:     map[string]*entity.Sheet{},
		qcs:        map[string]entity.QualityControl{},
		materials:  map[string]entity.Material{},
		warehouses: map[string]entity.Warehouse{},
		stock:      map[stockKey]entity.StockLevel{},
		sequences:  map[string]int64{},
	}
}

func (s *state) clone() *state {
	c := newState()
	for k, v := range s.users {
		c.users[k] = v
	}
	for k, v := range s.profiles {
		c.profiles[k] = v
	}
	for k, v := range s.signatures {
		c.signatures[k] = v
	}
	c.sigOrder = append([]string(nil), s.sigOrder...)
	for k, v := range s.sheets {
		c.sheets[k] = v.Clone()
	}
	for k, v := range s.qcs {
		c.qcs[k] = v
	}
	for k, v := range s.materials {
		c.materials[k] = v
	}
	for k, v := range s.warehouses {
		c.warehouses[k] = v
	}
	for k, v := range s.stock {
		c.stock[k] = v
	}
	for k, v := range s.sequences {
		c.sequences[k] = v
	}
	return c
}

// view da acceso al estado: directo dentro de una transacción o bajo el mutex fuera de ella.
type view interface {
	do(fn func(st *state) error) error
}

type txView struct{ st *state }

func (v txView) do(fn func(st *state) error) error { return fn(v.st) }

type lockedView struct{ s *Store }

func (v lockedView) do(fn func(st *state) error) error {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	return fn(v.s.state)
}

// Store almacenamiento en memoria. Las transacciones se serializan con un único mutex,
// lo que equivale a bloquear todas las filas que toca.
type Store struct {
	mu    sync.Mutex
	state *state
}

// New crea un store vacío.
func New() *Store {
	return &Store{state: newState()}
}

// Run ejecuta fn sobre una copia del estado y la publica solo si fn no devuelve error.
func (s *Store) Run(ctx context.Context, fn func(repos repository.Repos) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return err
	}
	tx := s.state.clone()
	if err := fn(reposFor(txView{st: tx})); err != nil {
		return err
	}
	s.state = tx
	return nil
}

// Repos repositorios en modo autocommit (cada operación toma el mutex).
// No usar dentro de fn de Run: el mutex no es reentrante.
func (s *Store) Repos() repository.Repos {
	return reposFor(lockedView{s: s})
}

func reposFor(v view) repository.Repos {
	return repository.Repos{
		Users:           &userRepo{v: v},
		Signatures:      &signatureRepo{v: v},
		Sheets:          &sheetRepo{v: v},
		QualityControls: &qualityControlRepo{v: v},
		Materials:       &materialRepo{v: v},
		Warehouses:      &warehouseRepo{v: v},
		Stock:           &stockRepo{v: v},
		Sequences:       &sequenceRepo{v: v},
	}
}
