package usecase_test

import (
	"context"
	"fmt"
	"sort"

	"github.com/nmendes/servicos-api/internal/domain"
	"github.com/nmendes/servicos-api/internal/domain/entity"
	"github.com/nmendes/servicos-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Repos en memoria para los tests de casos de uso
// ──────────────────────────────────────────────────────────────────────────────

type fakeCategoryRepo struct {
	items map[string]*entity.Category
}

func newFakeCategoryRepo() *fakeCategoryRepo {
	return &fakeCategoryRepo{items: map[string]*entity.Category{}}
}

func (r *fakeCategoryRepo) Create(c *entity.Category) error {
	for _, existing := range r.items {
		if existing.Name == c.Name {
			return domain.ErrDuplicate
		}
	}
	cp := *c
	r.items[c.ID] = &cp
	return nil
}

func (r *fakeCategoryRepo) GetByID(id string) (*entity.Category, error) {
	if c, ok := r.items[id]; ok {
		cp := *c
		return &cp, nil
	}
	return nil, nil
}

func (r *fakeCategoryRepo) GetByName(name string) (*entity.Category, error) {
	for _, c := range r.items {
		if c.Name == name {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeCategoryRepo) List() ([]*entity.Category, error) {
	out := make([]*entity.Category, 0, len(r.items))
	for _, c := range r.items {
		cp := *c
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *fakeCategoryRepo) Delete(id string) error {
	if _, ok := r.items[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.items, id)
	return nil
}

type fakeBrandRepo struct {
	items map[string]*entity.Brand
}

func newFakeBrandRepo() *fakeBrandRepo {
	return &fakeBrandRepo{items: map[string]*entity.Brand{}}
}

func (r *fakeBrandRepo) Create(b *entity.Brand) error {
	for _, existing := range r.items {
		if existing.Name == b.Name {
			return domain.ErrDuplicate
		}
	}
	cp := *b
	r.items[b.ID] = &cp
	return nil
}

func (r *fakeBrandRepo) GetByID(id string) (*entity.Brand, error) {
	if b, ok := r.items[id]; ok {
		cp := *b
		return &cp, nil
	}
	return nil, nil
}

func (r *fakeBrandRepo) GetByName(name string) (*entity.Brand, error) {
	for _, b := range r.items {
		if b.Name == name {
			cp := *b
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeBrandRepo) List() ([]*entity.Brand, error) {
	out := make([]*entity.Brand, 0, len(r.items))
	for _, b := range r.items {
		cp := *b
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *fakeBrandRepo) Delete(id string) error {
	if _, ok := r.items[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.items, id)
	return nil
}

type fakeProductRepo struct {
	items map[string]*entity.Product
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{items: map[string]*entity.Product{}}
}

func (r *fakeProductRepo) Create(p *entity.Product) error {
	cp := *p
	r.items[p.ID] = &cp
	return nil
}

func (r *fakeProductRepo) GetByID(id string) (*entity.Product, error) {
	if p, ok := r.items[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, nil
}

func (r *fakeProductRepo) Update(p *entity.Product) error {
	if _, ok := r.items[p.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *p
	r.items[p.ID] = &cp
	return nil
}

func (r *fakeProductRepo) List() ([]*entity.Product, error) {
	out := make([]*entity.Product, 0, len(r.items))
	for _, p := range r.items {
		cp := *p
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *fakeProductRepo) Delete(id string) error {
	if _, ok := r.items[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.items, id)
	return nil
}

type fakeServiceRepo struct {
	items map[string]*entity.Service
	order []string
	// failCreate simula el almacén remoto caído.
	failCreate bool
	// beforeUpdateStatus se ejecuta una vez justo antes del UPDATE, para
	// intercalar una transición concurrente entre la lectura y la escritura.
	beforeUpdateStatus func()
}

func newFakeServiceRepo() *fakeServiceRepo {
	return &fakeServiceRepo{items: map[string]*entity.Service{}}
}

func (r *fakeServiceRepo) Create(s *entity.Service) error {
	if r.failCreate {
		return fmt.Errorf("remoto indisponible")
	}
	cp := *s
	r.items[s.ID] = &cp
	r.order = append(r.order, s.ID)
	return nil
}

func (r *fakeServiceRepo) GetByID(id string) (*entity.Service, error) {
	if s, ok := r.items[id]; ok {
		cp := *s
		return &cp, nil
	}
	return nil, nil
}

// UpdateStatus replica el contrato del almacén real: solo un servicio
// pendiente cambia de estado; uno terminal devuelve ErrInvalidStatus.
func (r *fakeServiceRepo) UpdateStatus(id, status string) error {
	if r.beforeUpdateStatus != nil {
		hook := r.beforeUpdateStatus
		r.beforeUpdateStatus = nil
		hook()
	}
	s, ok := r.items[id]
	if !ok {
		return domain.ErrNotFound
	}
	if s.Status != entity.StatusPending {
		return domain.ErrInvalidStatus
	}
	s.Status = status
	return nil
}

func (r *fakeServiceRepo) List() ([]*entity.Service, error) {
	out := make([]*entity.Service, 0, len(r.order))
	for i := len(r.order) - 1; i >= 0; i-- {
		cp := *r.items[r.order[i]]
		out = append(out, &cp)
	}
	return out, nil
}

type fakeLineRepo struct {
	items []*entity.ServiceProduct
	fail  bool
}

func (r *fakeLineRepo) CreateBatch(items []*entity.ServiceProduct) error {
	if r.fail {
		return fmt.Errorf("remoto indisponible")
	}
	r.items = append(r.items, items...)
	return nil
}

// fakeTxRunner corre el callback sin transacción real, contra los fakes.
type fakeTxRunner struct {
	services *fakeServiceRepo
	lines    *fakeLineRepo
}

func (r *fakeTxRunner) Run(_ context.Context, fn func(
	serviceRepo repository.ServiceRepository,
	lineRepo repository.ServiceProductRepository,
) error) error {
	return fn(r.services, r.lines)
}
