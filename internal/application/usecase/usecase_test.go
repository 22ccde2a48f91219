package usecase_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/invorya/inventra-api/internal/application/dto"
	"github.com/invorya/inventra-api/internal/application/usecase"
	"github.com/invorya/inventra-api/internal/domain"
	"github.com/invorya/inventra-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeCategoryRepo struct {
	items map[string]*entity.Category
}

func newFakeCategoryRepo() *fakeCategoryRepo {
	return &fakeCategoryRepo{items: map[string]*entity.Category{}}
}

func (r *fakeCategoryRepo) Create(c *entity.Category) error {
	cp := *c
	r.items[c.ID] = &cp
	return nil
}

func (r *fakeCategoryRepo) GetByID(id string) (*entity.Category, error) {
	c, ok := r.items[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
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
	return out, nil
}

func (r *fakeCategoryRepo) Update(c *entity.Category) error {
	cp := *c
	r.items[c.ID] = &cp
	return nil
}

func (r *fakeCategoryRepo) Delete(id string) error {
	delete(r.items, id)
	return nil
}

type fakeSupplierRepo struct {
	items map[string]*entity.Supplier
	// productos asociados por proveedor (para CountProducts)
	productCount map[string]int
}

func newFakeSupplierRepo() *fakeSupplierRepo {
	return &fakeSupplierRepo{items: map[string]*entity.Supplier{}, productCount: map[string]int{}}
}

func (r *fakeSupplierRepo) Create(s *entity.Supplier) error {
	cp := *s
	r.items[s.ID] = &cp
	return nil
}

func (r *fakeSupplierRepo) GetByID(id string) (*entity.Supplier, error) {
	s, ok := r.items[id]
	if !ok {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (r *fakeSupplierRepo) GetByEmail(email string) (*entity.Supplier, error) {
	for _, s := range r.items {
		if s.Email == email {
			cp := *s
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeSupplierRepo) List() ([]*entity.Supplier, error) {
	out := make([]*entity.Supplier, 0, len(r.items))
	for _, s := range r.items {
		cp := *s
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeSupplierRepo) Update(s *entity.Supplier) error {
	cp := *s
	r.items[s.ID] = &cp
	return nil
}

func (r *fakeSupplierRepo) Delete(id string) error {
	delete(r.items, id)
	return nil
}

func (r *fakeSupplierRepo) CountProducts(id string) (int, error) {
	return r.productCount[id], nil
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
	p, ok := r.items[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *fakeProductRepo) GetBySKU(sku string) (*entity.Product, error) {
	for _, p := range r.items {
		if p.SKU == sku {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeProductRepo) GetForUpdate(id string) (*entity.Product, error) { return r.GetByID(id) }

func (r *fakeProductRepo) UpdateStock(id string, quantity int) error {
	p, ok := r.items[id]
	if !ok {
		return domain.ErrNotFound
	}
	p.QuantityInStock = quantity
	return nil
}

func (r *fakeProductRepo) List() ([]*entity.Product, error) {
	out := make([]*entity.Product, 0, len(r.items))
	for _, p := range r.items {
		cp := *p
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeProductRepo) ListBelowReorderLevel() ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range r.items {
		if p.BelowReorderLevel() {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeProductRepo) Update(p *entity.Product) error {
	// No toca quantity_in_stock, igual que el repositorio real
	existing, ok := r.items[p.ID]
	if !ok {
		return domain.ErrNotFound
	}
	cp := *p
	cp.QuantityInStock = existing.QuantityInStock
	r.items[p.ID] = &cp
	return nil
}

func (r *fakeProductRepo) Delete(id string) error {
	delete(r.items, id)
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Categorías
// ──────────────────────────────────────────────────────────────────────────────

func TestCategoryCreate_NombreDuplicado(t *testing.T) {
	repo := newFakeCategoryRepo()
	uc := usecase.NewCategoryUseCase(repo)

	_, err := uc.Create(dto.CreateCategoryRequest{Name: "Periféricos"})
	require.NoError(t, err)

	_, err = uc.Create(dto.CreateCategoryRequest{Name: "Periféricos"})
	assert.ErrorIs(t, err, domain.ErrDuplicate, "el nombre de categoría es único")
}

func TestCategoryUpdate_NombrePuedeMantenerse(t *testing.T) {
	repo := newFakeCategoryRepo()
	uc := usecase.NewCategoryUseCase(repo)

	created, err := uc.Create(dto.CreateCategoryRequest{Name: "Periféricos", Description: "original"})
	require.NoError(t, err)

	// Mantener el mismo nombre no debe contar como duplicado
	updated, err := uc.Update(created.ID, dto.UpdateCategoryRequest{Name: "Periféricos", Description: "editada"})
	require.NoError(t, err)
	assert.Equal(t, "editada", updated.Description)
}

func TestCategoryUpdate_NombreChocaConOtra(t *testing.T) {
	repo := newFakeCategoryRepo()
	uc := usecase.NewCategoryUseCase(repo)

	_, err := uc.Create(dto.CreateCategoryRequest{Name: "Periféricos"})
	require.NoError(t, err)
	otra, err := uc.Create(dto.CreateCategoryRequest{Name: "Monitores"})
	require.NoError(t, err)

	_, err = uc.Update(otra.ID, dto.UpdateCategoryRequest{Name: "Periféricos"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestCategoryDelete_Inexistente(t *testing.T) {
	uc := usecase.NewCategoryUseCase(newFakeCategoryRepo())
	assert.ErrorIs(t, uc.Delete("no-existe"), domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Proveedores
// ──────────────────────────────────────────────────────────────────────────────

func supplierRequest(email string) dto.CreateSupplierRequest {
	return dto.CreateSupplierRequest{
		Name:        "Distribuidora Norte",
		ContactName: "Carlos Ruiz",
		Email:       email,
		Phone:       "+57 300 000 0000",
		Address:     "Calle 10 #20-30",
	}
}

func TestSupplierCreate_EmailDuplicado(t *testing.T) {
	uc := usecase.NewSupplierUseCase(newFakeSupplierRepo())

	_, err := uc.Create(supplierRequest("ventas@norte.com"))
	require.NoError(t, err)

	_, err = uc.Create(supplierRequest("ventas@norte.com"))
	assert.ErrorIs(t, err, domain.ErrDuplicate, "el email de proveedor es único")
}

// Un proveedor con productos asociados no puede eliminarse.
func TestSupplierDelete_ConProductosAsociados(t *testing.T) {
	repo := newFakeSupplierRepo()
	uc := usecase.NewSupplierUseCase(repo)

	created, err := uc.Create(supplierRequest("ventas@norte.com"))
	require.NoError(t, err)
	repo.productCount[created.ID] = 3

	err = uc.Delete(created.ID)
	assert.ErrorIs(t, err, domain.ErrSupplierInUse)

	got, err := uc.GetByID(created.ID)
	require.NoError(t, err)
	assert.NotNil(t, got, "el proveedor debe seguir existiendo")
}

func TestSupplierDelete_SinProductos(t *testing.T) {
	repo := newFakeSupplierRepo()
	uc := usecase.NewSupplierUseCase(repo)

	created, err := uc.Create(supplierRequest("ventas@norte.com"))
	require.NoError(t, err)

	require.NoError(t, uc.Delete(created.ID))
	got, err := uc.GetByID(created.ID)
	require.NoError(t, err)
	assert.Nil(t, got)
}

// ──────────────────────────────────────────────────────────────────────────────
// Productos
// ──────────────────────────────────────────────────────────────────────────────

type productFixture struct {
	productRepo  *fakeProductRepo
	categoryRepo *fakeCategoryRepo
	supplierRepo *fakeSupplierRepo
	uc           *usecase.ProductUseCase
	categoryID   string
	supplierID   string
}

func newProductFixture(t *testing.T) *productFixture {
	t.Helper()
	f := &productFixture{
		productRepo:  newFakeProductRepo(),
		categoryRepo: newFakeCategoryRepo(),
		supplierRepo: newFakeSupplierRepo(),
	}
	f.uc = usecase.NewProductUseCase(f.productRepo, f.categoryRepo, f.supplierRepo)

	f.categoryID = "cat-1"
	f.supplierID = "sup-1"
	require.NoError(t, f.categoryRepo.Create(&entity.Category{ID: f.categoryID, Name: "Periféricos"}))
	require.NoError(t, f.supplierRepo.Create(&entity.Supplier{ID: f.supplierID, Name: "Distribuidora Norte"}))
	return f
}

func (f *productFixture) createRequest(sku string) dto.CreateProductRequest {
	return dto.CreateProductRequest{
		Name:            "Teclado mecánico",
		SKU:             sku,
		CategoryID:      f.categoryID,
		SupplierID:      f.supplierID,
		Price:           decimal.NewFromInt(250),
		CostPrice:       decimal.NewFromInt(180),
		QuantityInStock: 12,
		ReorderLevel:    5,
	}
}

// El alta fija el stock inicial y anida categoría y proveedor en la respuesta.
func TestProductCreate_ConStockInicialYRelaciones(t *testing.T) {
	f := newProductFixture(t)

	resp, err := f.uc.Create(f.createRequest("TEC-001"))
	require.NoError(t, err)

	assert.Equal(t, 12, resp.QuantityInStock, "el stock inicial viene del request")
	require.NotNil(t, resp.Category)
	assert.Equal(t, "Periféricos", resp.Category.Name)
	require.NotNil(t, resp.Supplier)
	assert.Equal(t, "Distribuidora Norte", resp.Supplier.Name)
}

func TestProductCreate_SKUDuplicado(t *testing.T) {
	f := newProductFixture(t)

	_, err := f.uc.Create(f.createRequest("TEC-001"))
	require.NoError(t, err)

	_, err = f.uc.Create(f.createRequest("TEC-001"))
	assert.ErrorIs(t, err, domain.ErrDuplicate, "el SKU es único")
}

func TestProductCreate_CategoriaInexistente(t *testing.T) {
	f := newProductFixture(t)

	in := f.createRequest("TEC-001")
	in.CategoryID = "no-existe"
	_, err := f.uc.Create(in)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProductCreate_ProveedorInexistente(t *testing.T) {
	f := newProductFixture(t)

	in := f.createRequest("TEC-001")
	in.SupplierID = "no-existe"
	_, err := f.uc.Create(in)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// La edición nunca toca el stock: solo compras y ventas lo mueven.
func TestProductUpdate_NoTocaElStock(t *testing.T) {
	f := newProductFixture(t)

	created, err := f.uc.Create(f.createRequest("TEC-001"))
	require.NoError(t, err)

	updated, err := f.uc.Update(created.ID, dto.UpdateProductRequest{
		Name:         "Teclado mecánico RGB",
		SKU:          "TEC-001",
		CategoryID:   f.categoryID,
		SupplierID:   f.supplierID,
		Price:        decimal.NewFromInt(300),
		CostPrice:    decimal.NewFromInt(180),
		ReorderLevel: 8,
	})
	require.NoError(t, err)

	assert.Equal(t, "Teclado mecánico RGB", updated.Name)
	assert.Equal(t, 8, updated.ReorderLevel)

	stored, err := f.productRepo.GetByID(created.ID)
	require.NoError(t, err)
	assert.Equal(t, 12, stored.QuantityInStock, "el stock persistido no debe cambiar con la edición")
}

// Cambiar el SKU a uno que ya usa otro producto se rechaza; mantener el propio no.
func TestProductUpdate_SKUChocaConOtro(t *testing.T) {
	f := newProductFixture(t)

	_, err := f.uc.Create(f.createRequest("TEC-001"))
	require.NoError(t, err)
	otro, err := f.uc.Create(f.createRequest("MOU-002"))
	require.NoError(t, err)

	in := dto.UpdateProductRequest{
		Name:       "Mouse",
		SKU:        "TEC-001",
		CategoryID: f.categoryID,
		SupplierID: f.supplierID,
	}
	_, err = f.uc.Update(otro.ID, in)
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	in.SKU = "MOU-002"
	_, err = f.uc.Update(otro.ID, in)
	assert.NoError(t, err, "mantener el SKU propio no es duplicado")
}

func TestProductDelete_Inexistente(t *testing.T) {
	f := newProductFixture(t)
	assert.ErrorIs(t, f.uc.Delete("no-existe"), domain.ErrNotFound)
}
