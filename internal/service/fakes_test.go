package service

import (
	"context"
	"database/sql"
	"time"

	"github.com/dukalink/duka_api/internal/models"
)

// In-memory store fakes used across service tests. They mimic the database
// contract the repositories provide: RETURNING-style field assignment on
// create and sql.ErrNoRows on misses.

type fakeUserStore struct {
	users       map[int]*models.User
	nextID      int
	createCalls int
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: map[int]*models.User{}}
}

func (f *fakeUserStore) Create(u *models.User) error {
	f.createCalls++
	f.nextID++
	u.ID = f.nextID
	u.IsAdmin = false
	u.IsActive = false
	u.CreatedAt = time.Now()
	cp := *u
	f.users[u.ID] = &cp
	return nil
}

func (f *fakeUserStore) GetByID(id int) (*models.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUserStore) GetByEmail(email string) (*models.User, error) {
	var found *models.User
	for _, u := range f.users {
		if u.Email == email && (found == nil || u.ID > found.ID) {
			found = u
		}
	}
	if found == nil {
		return nil, sql.ErrNoRows
	}
	cp := *found
	return &cp, nil
}

func (f *fakeUserStore) Update(u *models.User) error {
	if _, ok := f.users[u.ID]; !ok {
		return sql.ErrNoRows
	}
	cp := *u
	f.users[u.ID] = &cp
	return nil
}

func (f *fakeUserStore) SetActive(id int, active bool) error {
	u, ok := f.users[id]
	if !ok {
		return sql.ErrNoRows
	}
	u.IsActive = active
	return nil
}

func (f *fakeUserStore) List(limit, offset int) ([]*models.User, error) {
	var out []*models.User
	for _, u := range f.users {
		cp := *u
		out = append(out, &cp)
	}
	return out, nil
}

func (f *fakeUserStore) Count() (int, error) {
	return len(f.users), nil
}

type fakeCategoryStore struct {
	categories map[int]*models.Category
	nextID     int
}

func newFakeCategoryStore() *fakeCategoryStore {
	return &fakeCategoryStore{categories: map[int]*models.Category{}}
}

func (f *fakeCategoryStore) Create(c *models.Category) error {
	f.nextID++
	c.ID = f.nextID
	cp := *c
	f.categories[c.ID] = &cp
	return nil
}

func (f *fakeCategoryStore) GetByID(id int) (*models.Category, error) {
	c, ok := f.categories[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	cp := *c
	return &cp, nil
}

func (f *fakeCategoryStore) List() ([]*models.Category, error) {
	var out []*models.Category
	for _, c := range f.categories {
		cp := *c
		out = append(out, &cp)
	}
	return out, nil
}

func (f *fakeCategoryStore) Update(c *models.Category) error {
	if _, ok := f.categories[c.ID]; !ok {
		return sql.ErrNoRows
	}
	cp := *c
	f.categories[c.ID] = &cp
	return nil
}

func (f *fakeCategoryStore) Delete(id int) error {
	if _, ok := f.categories[id]; !ok {
		return sql.ErrNoRows
	}
	delete(f.categories, id)
	return nil
}

type fakeProductStore struct {
	products map[int]*models.Product
	nextID   int
}

func newFakeProductStore() *fakeProductStore {
	return &fakeProductStore{products: map[int]*models.Product{}}
}

func (f *fakeProductStore) Create(p *models.Product) error {
	f.nextID++
	p.ID = f.nextID
	cp := *p
	f.products[p.ID] = &cp
	return nil
}

func (f *fakeProductStore) GetByID(id int) (*models.Product, error) {
	p, ok := f.products[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	cp := *p
	return &cp, nil
}

func (f *fakeProductStore) List(categoryID int) ([]*models.Product, error) {
	var out []*models.Product
	for _, p := range f.products {
		if categoryID > 0 && p.CategoryID != categoryID {
			continue
		}
		cp := *p
		out = append(out, &cp)
	}
	return out, nil
}

func (f *fakeProductStore) Update(p *models.Product) error {
	if _, ok := f.products[p.ID]; !ok {
		return sql.ErrNoRows
	}
	cp := *p
	f.products[p.ID] = &cp
	return nil
}

func (f *fakeProductStore) UpdateImageURL(id int, url string) error {
	p, ok := f.products[id]
	if !ok {
		return sql.ErrNoRows
	}
	p.ImageURL = &url
	return nil
}

func (f *fakeProductStore) Delete(id int) error {
	if _, ok := f.products[id]; !ok {
		return sql.ErrNoRows
	}
	delete(f.products, id)
	return nil
}

type fakeOrderStore struct {
	orders map[int]*models.Order
	items  map[int][]*models.OrderItem
	nextID int
}

func newFakeOrderStore() *fakeOrderStore {
	return &fakeOrderStore{
		orders: map[int]*models.Order{},
		items:  map[int][]*models.OrderItem{},
	}
}

func (f *fakeOrderStore) CreateWithItems(order *models.Order, items []*models.OrderItem) error {
	f.nextID++
	order.ID = f.nextID
	order.Status = models.OrderStatusPending
	order.CreatedAt = time.Now()
	cp := *order
	f.orders[order.ID] = &cp

	for i, item := range items {
		item.ID = i + 1
		item.OrderID = order.ID
		icp := *item
		f.items[order.ID] = append(f.items[order.ID], &icp)
	}
	return nil
}

func (f *fakeOrderStore) GetByID(id int) (*models.Order, error) {
	o, ok := f.orders[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	cp := *o
	return &cp, nil
}

func (f *fakeOrderStore) ListByUser(userID int) ([]*models.Order, error) {
	var out []*models.Order
	for _, o := range f.orders {
		if o.UserID == userID {
			cp := *o
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeOrderStore) List(limit, offset int, status string) ([]*models.Order, error) {
	var out []*models.Order
	for _, o := range f.orders {
		if status != "" && o.Status != status {
			continue
		}
		cp := *o
		out = append(out, &cp)
	}
	return out, nil
}

func (f *fakeOrderStore) Count(status string) (int, error) {
	n := 0
	for _, o := range f.orders {
		if status == "" || o.Status == status {
			n++
		}
	}
	return n, nil
}

func (f *fakeOrderStore) ListItems(orderID int) ([]*models.OrderItem, error) {
	var out []*models.OrderItem
	for _, item := range f.items[orderID] {
		cp := *item
		out = append(out, &cp)
	}
	return out, nil
}

func (f *fakeOrderStore) UpdateStatus(id int, status string) error {
	o, ok := f.orders[id]
	if !ok {
		return sql.ErrNoRows
	}
	o.Status = status
	return nil
}

type fakeProductCache struct {
	entries map[int][]byte
	hits    int
}

func newFakeProductCache() *fakeProductCache {
	return &fakeProductCache{entries: map[int][]byte{}}
}

func (f *fakeProductCache) GetProduct(ctx context.Context, id int) ([]byte, bool, error) {
	payload, ok := f.entries[id]
	if ok {
		f.hits++
	}
	return payload, ok, nil
}

func (f *fakeProductCache) SetProduct(ctx context.Context, id int, payload []byte) error {
	f.entries[id] = payload
	return nil
}

func (f *fakeProductCache) DeleteProduct(ctx context.Context, id int) error {
	delete(f.entries, id)
	return nil
}
