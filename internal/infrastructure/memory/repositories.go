package memory

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/DanySando/Proyecto-GPQ/internal/domain"
	"github.com/DanySando/Proyecto-GPQ/internal/domain/entity"
	"github.com/DanySando/Proyecto-GPQ/internal/domain/repository"
)

var (
	_ repository.UserRepository           = (*userRepo)(nil)
	_ repository.SignatureRepository      = (*signatureRepo)(nil)
	_ repository.SheetRepository          = (*sheetRepo)(nil)
	_ repository.QualityControlRepository = (*qualityControlRepo)(nil)
	_ repository.MaterialRepository       = (*materialRepo)(nil)
	_ repository.WarehouseRepository      = (*warehouseRepo)(nil)
	_ repository.StockRepository          = (*stockRepo)(nil)
	_ repository.SequenceRepository       = (*sequenceRepo)(nil)
)

// ── usuarios ────────────────────────────────────────────────────────────────

type userRepo struct{ v view }

func (r *userRepo) Create(_ context.Context, u *entity.User) error {
	return r.v.do(func(st *state) error {
		if _, ok := st.users[u.ID]; ok {
			return domain.ErrConflict
		}
		for _, other := range st.users {
			if other.RUT == u.RUT {
				return domain.NewFieldError(domain.ErrConflict, "rut", "ya existe un usuario con ese RUT")
			}
		}
		c := *u
		c.Profile = nil
		st.users[u.ID] = c
		if u.Profile != nil {
			p := *u.Profile
			p.UserID = u.ID
			st.profiles[u.ID] = p
		}
		return nil
	})
}

func withProfile(st *state, u entity.User) *entity.User {
	if p, ok := st.profiles[u.ID]; ok {
		u.Profile = &p
	}
	if u.LastAccessAt != nil {
		t := *u.LastAccessAt
		u.LastAccessAt = &t
	}
	return &u
}

func (r *userRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	var out *entity.User
	err := r.v.do(func(st *state) error {
		if u, ok := st.users[id]; ok {
			out = withProfile(st, u)
		}
		return nil
	})
	return out, err
}

func (r *userRepo) GetByRUT(_ context.Context, rut string) (*entity.User, error) {
	var out *entity.User
	err := r.v.do(func(st *state) error {
		for _, u := range st.users {
			if u.RUT == rut {
				out = withProfile(st, u)
				return nil
			}
		}
		return nil
	})
	return out, err
}

func (r *userRepo) UpsertProfile(_ context.Context, p *entity.Profile) error {
	return r.v.do(func(st *state) error {
		if _, ok := st.users[p.UserID]; !ok {
			return domain.ErrNotFound
		}
		st.profiles[p.UserID] = *p
		return nil
	})
}

func (r *userRepo) TouchLastAccess(_ context.Context, id string) error {
	return r.v.do(func(st *state) error {
		u, ok := st.users[id]
		if !ok {
			return domain.ErrNotFound
		}
		now := time.Now().UTC()
		u.LastAccessAt = &now
		st.users[id] = u
		return nil
	})
}

// ── firmas ──────────────────────────────────────────────────────────────────

type signatureRepo struct{ v view }

func (r *signatureRepo) Create(_ context.Context, s *entity.Signature) error {
	return r.v.do(func(st *state) error {
		if _, ok := st.signatures[s.ID]; ok {
			return domain.ErrConflict
		}
		st.signatures[s.ID] = *s
		st.sigOrder = append(st.sigOrder, s.ID)
		return nil
	})
}

func (r *signatureRepo) GetByID(_ context.Context, id string) (*entity.Signature, error) {
	var out *entity.Signature
	err := r.v.do(func(st *state) error {
		if s, ok := st.signatures[id]; ok {
			out = &s
		}
		return nil
	})
	return out, err
}

func (r *signatureRepo) ListByTarget(_ context.Context, target entity.SignatureTarget) ([]*entity.Signature, error) {
	var out []*entity.Signature
	err := r.v.do(func(st *state) error {
		for _, id := range st.sigOrder {
			s := st.signatures[id]
			if s.Target == target {
				out = append(out, &s)
			}
		}
		return nil
	})
	return out, err
}

// ── planillas ───────────────────────────────────────────────────────────────

type sheetRepo struct{ v view }

func (r *sheetRepo) Create(_ context.Context, s *entity.Sheet) error {
	return r.v.do(func(st *state) error {
		if _, ok := st.sheets[s.ID]; ok {
			return domain.ErrConflict
		}
		st.sheets[s.ID] = s.Clone()
		return nil
	})
}

func (r *sheetRepo) GetByID(_ context.Context, id string) (*entity.Sheet, error) {
	var out *entity.Sheet
	err := r.v.do(func(st *state) error {
		if s, ok := st.sheets[id]; ok {
			out = s.Clone()
		}
		return nil
	})
	return out, err
}

// GetForUpdate el aislamiento lo da Run; equivale a GetByID.
func (r *sheetRepo) GetForUpdate(ctx context.Context, id string) (*entity.Sheet, error) {
	return r.GetByID(ctx, id)
}

func (r *sheetRepo) Update(_ context.Context, s *entity.Sheet) error {
	return r.v.do(func(st *state) error {
		if _, ok := st.sheets[s.ID]; !ok {
			return domain.ErrNotFound
		}
		st.sheets[s.ID] = s.Clone()
		return nil
	})
}

// ── controles de calidad ────────────────────────────────────────────────────

type qualityControlRepo struct{ v view }

func (r *qualityControlRepo) Create(_ context.Context, qc *entity.QualityControl) error {
	return r.v.do(func(st *state) error {
		if _, ok := st.qcs[qc.ID]; ok {
			return domain.ErrConflict
		}
		for _, other := range st.qcs {
			if other.Code == qc.Code {
				return domain.NewFieldError(domain.ErrConflict, "code", "código duplicado")
			}
		}
		st.qcs[qc.ID] = *qc
		return nil
	})
}

func (r *qualityControlRepo) GetByID(_ context.Context, id string) (*entity.QualityControl, error) {
	var out *entity.QualityControl
	err := r.v.do(func(st *state) error {
		if qc, ok := st.qcs[id]; ok {
			out = &qc
		}
		return nil
	})
	return out, err
}

func (r *qualityControlRepo) GetForUpdate(ctx context.Context, id string) (*entity.QualityControl, error) {
	return r.GetByID(ctx, id)
}

func (r *qualityControlRepo) Update(_ context.Context, qc *entity.QualityControl) error {
	return r.v.do(func(st *state) error {
		if _, ok := st.qcs[qc.ID]; !ok {
			return domain.ErrNotFound
		}
		st.qcs[qc.ID] = *qc
		return nil
	})
}

func (r *qualityControlRepo) LatestApprovedForMaterial(_ context.Context, materialID string) (*entity.QualityControl, error) {
	var out *entity.QualityControl
	err := r.v.do(func(st *state) error {
		for _, qc := range st.qcs {
			if qc.MaterialID != materialID || !qc.Approved {
				continue
			}
			if out == nil || newer(qc, *out) {
				c := qc
				out = &c
			}
		}
		return nil
	})
	return out, err
}

// newer fecha de verificación desc, luego correlativo desc.
func newer(a, b entity.QualityControl) bool {
	if !a.VerifiedOn.Equal(b.VerifiedOn) {
		return a.VerifiedOn.After(b.VerifiedOn)
	}
	return a.Number > b.Number
}

func (r *qualityControlRepo) List(_ context.Context, limit, offset int) ([]*entity.QualityControl, error) {
	var all []entity.QualityControl
	err := r.v.do(func(st *state) error {
		for _, qc := range st.qcs {
			all = append(all, qc)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Number > all[j].Number })
	if offset >= len(all) {
		return nil, nil
	}
	all = all[offset:]
	if limit > 0 && limit < len(all) {
		all = all[:limit]
	}
	out := make([]*entity.QualityControl, len(all))
	for i := range all {
		out[i] = &all[i]
	}
	return out, nil
}

// ── materiales ──────────────────────────────────────────────────────────────

type materialRepo struct{ v view }

func (r *materialRepo) Create(_ context.Context, m *entity.Material) error {
	return r.v.do(func(st *state) error {
		if _, ok := st.materials[m.ID]; ok {
			return domain.ErrConflict
		}
		if m.Code != "" {
			for _, other := range st.materials {
				if other.Kind == m.Kind && other.Code == m.Code {
					return domain.NewFieldError(domain.ErrConflict, "code", "ya existe un material con ese código")
				}
			}
		}
		st.materials[m.ID] = *m
		return nil
	})
}

func (r *materialRepo) GetByID(_ context.Context, id string) (*entity.Material, error) {
	var out *entity.Material
	err := r.v.do(func(st *state) error {
		if m, ok := st.materials[id]; ok {
			out = &m
		}
		return nil
	})
	return out, err
}

func (r *materialRepo) GetForUpdate(ctx context.Context, id string) (*entity.Material, error) {
	return r.GetByID(ctx, id)
}

func (r *materialRepo) GetByCodeForUpdate(_ context.Context, kind, code string) (*entity.Material, error) {
	var out *entity.Material
	err := r.v.do(func(st *state) error {
		for _, m := range st.materials {
			if m.Kind == kind && m.Code == code {
				out = &m
				return nil
			}
		}
		return nil
	})
	return out, err
}

func (r *materialRepo) Update(_ context.Context, m *entity.Material) error {
	return r.v.do(func(st *state) error {
		if _, ok := st.materials[m.ID]; !ok {
			return domain.ErrNotFound
		}
		st.materials[m.ID] = *m
		return nil
	})
}

// ── bodegas y stock ─────────────────────────────────────────────────────────

type warehouseRepo struct{ v view }

func (r *warehouseRepo) EnsurePrincipal(_ context.Context, kind, name string) (*entity.Warehouse, error) {
	var out *entity.Warehouse
	err := r.v.do(func(st *state) error {
		for _, w := range st.warehouses {
			if w.Kind == kind && w.Principal {
				out = &w
				return nil
			}
		}
		w := entity.Warehouse{
			ID:        uuid.New().String(),
			Name:      name,
			Kind:      kind,
			Principal: true,
			CreatedAt: time.Now().UTC(),
		}
		st.warehouses[w.ID] = w
		out = &w
		return nil
	})
	return out, err
}

func (r *warehouseRepo) GetByID(_ context.Context, id string) (*entity.Warehouse, error) {
	var out *entity.Warehouse
	err := r.v.do(func(st *state) error {
		if w, ok := st.warehouses[id]; ok {
			out = &w
		}
		return nil
	})
	return out, err
}

type stockRepo struct{ v view }

func (r *stockRepo) Get(_ context.Context, warehouseID, materialID string) (*entity.StockLevel, error) {
	out := &entity.StockLevel{WarehouseID: warehouseID, MaterialID: materialID, Available: decimal.Zero}
	err := r.v.do(func(st *state) error {
		if l, ok := st.stock[stockKey{warehouseID, materialID}]; ok {
			*out = l
		}
		return nil
	})
	return out, err
}

func (r *stockRepo) LockForUpdate(_ context.Context, warehouseID, materialID string) (*entity.StockLevel, error) {
	var out *entity.StockLevel
	err := r.v.do(func(st *state) error {
		key := stockKey{warehouseID, materialID}
		l, ok := st.stock[key]
		if !ok {
			l = entity.StockLevel{WarehouseID: warehouseID, MaterialID: materialID, Available: decimal.Zero, UpdatedAt: time.Now().UTC()}
			st.stock[key] = l
		}
		out = &l
		return nil
	})
	return out, err
}

func (r *stockRepo) Upsert(_ context.Context, l *entity.StockLevel) error {
	return r.v.do(func(st *state) error {
		st.stock[stockKey{l.WarehouseID, l.MaterialID}] = *l
		return nil
	})
}

type sequenceRepo struct{ v view }

func (r *sequenceRepo) Next(_ context.Context, name string) (int64, error) {
	var n int64
	err := r.v.do(func(st *state) error {
		st.sequences[name]++
		n = st.sequences[name]
		return nil
	})
	return n, err
}
