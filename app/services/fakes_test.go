package services_test

import (
	"context"
	"errors"

	"github.com/shashiranjanraj/storefront/app/models"
	"github.com/shashiranjanraj/storefront/app/services"
)

// In-memory stores backing the service tests. Each one counts writes so
// tests can assert not just outcomes but how many persistence calls a flow
// took.

type memUsers struct {
	users  map[uint]*models.User
	nextID uint
	saves  int
}

func newMemUsers() *memUsers {
	return &memUsers{users: map[uint]*models.User{}, nextID: 1}
}

func (m *memUsers) add(u *models.User) *models.User {
	if u.ID == 0 {
		u.ID = m.nextID
		m.nextID++
	}
	m.users[u.ID] = u
	return u
}

func (m *memUsers) FindByEmail(email string) (*models.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (m *memUsers) FindByID(id uint) (*models.User, error) {
	return m.users[id], nil
}

func (m *memUsers) Save(u *models.User) error {
	m.saves++
	m.add(u)
	return nil
}

func (m *memUsers) All() ([]models.User, error) {
	out := make([]models.User, 0, len(m.users))
	for _, u := range m.users {
		out = append(out, *u)
	}
	return out, nil
}

type memProducts struct {
	products map[uint]*models.Product
	nextID   uint
	saves    int
}

func newMemProducts() *memProducts {
	return &memProducts{products: map[uint]*models.Product{}, nextID: 1}
}

func (m *memProducts) add(p *models.Product) *models.Product {
	if p.ID == 0 {
		p.ID = m.nextID
		m.nextID++
	}
	m.products[p.ID] = p
	return p
}

func (m *memProducts) FindByID(id uint) (*models.Product, error) {
	return m.products[id], nil
}

func (m *memProducts) Save(p *models.Product) error {
	m.saves++
	m.add(p)
	// Mimic the ORM assigning ids to appended images on save.
	for i := range p.Images {
		if p.Images[i].ID == 0 {
			p.Images[i].ID = m.nextID * 100
			m.nextID++
		}
		p.Images[i].ProductID = p.ID
	}
	return nil
}

func (m *memProducts) Delete(p *models.Product) error {
	delete(m.products, p.ID)
	return nil
}

func (m *memProducts) FindActiveByTitle(title string) ([]models.Product, error) {
	var out []models.Product
	for _, p := range m.products {
		if p.Active && p.Title == title {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (m *memProducts) AllActive() ([]models.Product, error) {
	var out []models.Product
	for _, p := range m.products {
		if p.Active {
			out = append(out, *p)
		}
	}
	return out, nil
}

type memImages struct {
	images  map[uint]*models.Image
	saves   int
	deleted []uint
}

func newMemImages() *memImages {
	return &memImages{images: map[uint]*models.Image{}}
}

func (m *memImages) FindByID(id uint) (*models.Image, error) {
	return m.images[id], nil
}

func (m *memImages) Save(img *models.Image) error {
	m.saves++
	m.images[img.ID] = img
	return nil
}

func (m *memImages) Delete(img *models.Image) error {
	m.deleted = append(m.deleted, img.ID)
	delete(m.images, img.ID)
	return nil
}

type memCarts struct {
	carts  map[uint]*models.Cart // keyed by cart id
	nextID uint
	saves  int
}

func newMemCarts() *memCarts {
	return &memCarts{carts: map[uint]*models.Cart{}, nextID: 1}
}

func (m *memCarts) FindByUserID(userID uint) (*models.Cart, error) {
	for _, c := range m.carts {
		if c.UserID == userID {
			return c, nil
		}
	}
	return nil, nil
}

func (m *memCarts) FindByID(id uint) (*models.Cart, error) {
	return m.carts[id], nil
}

func (m *memCarts) Save(c *models.Cart) error {
	m.saves++
	if c.ID == 0 {
		c.ID = m.nextID
		m.nextID++
	}
	m.carts[c.ID] = c
	return nil
}

func (m *memCarts) Delete(c *models.Cart) error {
	delete(m.carts, c.ID)
	return nil
}

type memCartItems struct {
	items   map[uint]*models.CartItem
	nextID  uint
	saves   int
	deletes int
}

func newMemCartItems() *memCartItems {
	return &memCartItems{items: map[uint]*models.CartItem{}, nextID: 1}
}

func (m *memCartItems) FindByID(id uint) (*models.CartItem, error) {
	return m.items[id], nil
}

func (m *memCartItems) Save(item *models.CartItem) error {
	m.saves++
	if item.ID == 0 {
		item.ID = m.nextID
		m.nextID++
	}
	m.items[item.ID] = item
	return nil
}

func (m *memCartItems) Delete(item *models.CartItem) error {
	m.deletes++
	delete(m.items, item.ID)
	return nil
}

// memArchive records archive activity; failing toggles every call.
type memArchive struct {
	puts    map[string][]byte
	deletes []string
	failing bool
}

func newMemArchive() *memArchive {
	return &memArchive{puts: map[string][]byte{}}
}

func (a *memArchive) Put(path string, data []byte) error {
	if a.failing {
		return errors.New("archive disk offline")
	}
	a.puts[path] = data
	return nil
}

func (a *memArchive) Delete(path string) error {
	if a.failing {
		return errors.New("archive disk offline")
	}
	a.deletes = append(a.deletes, path)
	return nil
}

// sentNotification is one recorded confirmation.
type sentNotification struct {
	email string
	title string
	qty   int
}

type memNotifier struct {
	sent []sentNotification
	err  error
}

func (n *memNotifier) SendPurchaseConfirmation(email, title string, qty int) error {
	n.sent = append(n.sent, sentNotification{email: email, title: title, qty: qty})
	return n.err
}

// memAtomic hands the same stores to the callback. There is no real
// transaction: tests that need rollback semantics assert on the returned
// error instead.
type memAtomic struct {
	stores services.Stores
}

func (a *memAtomic) Transact(_ context.Context, fn func(services.Stores) error) error {
	return fn(a.stores)
}

// world bundles everything a service test needs.
type world struct {
	users    *memUsers
	products *memProducts
	images   *memImages
	carts    *memCarts
	items    *memCartItems
	archive  *memArchive
	notifier *memNotifier
	atomic   *memAtomic
}

func newWorld() *world {
	w := &world{
		users:    newMemUsers(),
		products: newMemProducts(),
		images:   newMemImages(),
		carts:    newMemCarts(),
		items:    newMemCartItems(),
		archive:  newMemArchive(),
		notifier: &memNotifier{},
	}
	w.atomic = &memAtomic{stores: services.Stores{
		Users:     w.users,
		Products:  w.products,
		Images:    w.images,
		Carts:     w.carts,
		CartItems: w.items,
	}}
	return w
}

func (w *world) cartService() *services.CartService {
	return services.NewCartService(w.users, w.products, w.carts, w.items, w.atomic)
}

func (w *world) checkoutService() *services.CheckoutService {
	return services.NewCheckoutService(w.users, w.carts, w.notifier, w.atomic)
}

func (w *world) productService() *services.ProductService {
	return services.NewProductService(w.products, w.users, w.images, w.archive)
}

func (w *world) userService() *services.UserService {
	return services.NewUserService(w.users)
}

// seedUser inserts an active account.
func (w *world) seedUser(email string) *models.User {
	return w.users.add(&models.User{Email: email, Password: "x", Active: true, Roles: models.RoleUser})
}

// seedProduct inserts an active product owned by owner.
func (w *world) seedProduct(owner *models.User, title string, price int) *models.Product {
	return w.products.add(&models.Product{Title: title, Price: price, Active: true, UserID: owner.ID})
}
