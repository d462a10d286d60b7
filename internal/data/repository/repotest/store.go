// Package repotest provides in-memory repositories with the same atomic
// guarantees as the SQL implementations, for tests of the layers above.
package repotest

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"plantnet/internal/data/entity"
	"plantnet/internal/data/repository"
	"plantnet/pkg/utils"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ErrStore is returned by every call while Store.Fail is set.
var ErrStore = errors.New("store unavailable")

var (
	_ repository.UserRepository  = userRepo{}
	_ repository.PlantRepository = plantRepo{}
	_ repository.OrderRepository = orderRepo{}
	_ repository.StatsRepository = statsRepo{}
)

type Store struct {
	mu     sync.Mutex
	users  map[string]*entity.User
	plants map[uuid.UUID]*entity.Plant
	orders map[uuid.UUID]*entity.Order

	// Fail makes every repository call return ErrStore.
	Fail bool
}

func NewStore() *Store {
	return &Store{
		users:  map[string]*entity.User{},
		plants: map[uuid.UUID]*entity.Plant{},
		orders: map[uuid.UUID]*entity.Order{},
	}
}

// Repository exposes the store through the repository interfaces.
func (s *Store) Repository() *repository.Repository {
	return &repository.Repository{
		User:  userRepo{s},
		Plant: plantRepo{s},
		Order: orderRepo{s},
		Stats: statsRepo{s},
	}
}

func (s *Store) lock() error {
	s.mu.Lock()
	if s.Fail {
		s.mu.Unlock()
		return ErrStore
	}
	return nil
}

// PutUser stores a copy of user, replacing any user with the same email.
func (s *Store) PutUser(user entity.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if user.ID == uuid.Nil {
		user.ID = utils.NewID()
	}
	s.users[user.Email] = &user
}

// PutPlant stores a copy of plant.
func (s *Store) PutPlant(plant entity.Plant) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if plant.ID == uuid.Nil {
		plant.ID = utils.NewID()
	}
	s.plants[plant.ID] = &plant
}

// PutOrder stores a copy of order.
func (s *Store) PutOrder(order entity.Order) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if order.ID == uuid.Nil {
		order.ID = utils.NewID()
	}
	s.orders[order.ID] = &order
}

func (s *Store) UserCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.users)
}

func (s *Store) Order(id uuid.UUID) (entity.Order, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.orders[id]
	if !ok {
		return entity.Order{}, false
	}
	return *o, true
}

func (s *Store) Plant(id uuid.UUID) (entity.Plant, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.plants[id]
	if !ok {
		return entity.Plant{}, false
	}
	return *p, true
}

func (s *Store) Orders() []entity.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]entity.Order, 0, len(s.orders))
	for _, o := range s.orders {
		out = append(out, *o)
	}
	return out
}

type userRepo struct{ s *Store }

func (r userRepo) Ensure(_ context.Context, user *entity.User) (*entity.User, error) {
	if err := r.s.lock(); err != nil {
		return nil, err
	}
	defer r.s.mu.Unlock()

	if existing, ok := r.s.users[user.Email]; ok {
		cp := *existing
		return &cp, nil
	}
	cp := *user
	if cp.Profile == nil {
		cp.Profile = map[string]any{}
	}
	r.s.users[user.Email] = &cp
	out := cp
	return &out, nil
}

func (r userRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	if err := r.s.lock(); err != nil {
		return nil, err
	}
	defer r.s.mu.Unlock()

	u, ok := r.s.users[email]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r userRepo) FindAllExcept(_ context.Context, email string) ([]*entity.User, error) {
	if err := r.s.lock(); err != nil {
		return nil, err
	}
	defer r.s.mu.Unlock()

	users := []*entity.User{}
	for _, u := range r.s.users {
		if u.Email == email {
			continue
		}
		cp := *u
		users = append(users, &cp)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].CreatedAt.After(users[j].CreatedAt) })
	return users, nil
}

func (r userRepo) MarkRoleRequested(_ context.Context, email string) (bool, error) {
	if err := r.s.lock(); err != nil {
		return false, err
	}
	defer r.s.mu.Unlock()

	u, ok := r.s.users[email]
	if !ok || u.Status == entity.RoleStatusRequested {
		return false, nil
	}
	u.Status = entity.RoleStatusRequested
	u.UpdatedAt = time.Now().UTC()
	return true, nil
}

func (r userRepo) GrantRole(_ context.Context, email string, role entity.UserRole) (bool, error) {
	if err := r.s.lock(); err != nil {
		return false, err
	}
	defer r.s.mu.Unlock()

	u, ok := r.s.users[email]
	if !ok {
		return false, nil
	}
	if u.Status != entity.RoleStatusRequested && role != entity.RoleCustomer {
		return false, nil
	}
	u.Role = role
	u.Status = entity.RoleStatusVerified
	u.UpdatedAt = time.Now().UTC()
	return true, nil
}

func (r userRepo) CountAll(context.Context) (int64, error) {
	if err := r.s.lock(); err != nil {
		return 0, err
	}
	defer r.s.mu.Unlock()
	return int64(len(r.s.users)), nil
}

type plantRepo struct{ s *Store }

func (r plantRepo) Create(_ context.Context, plant *entity.Plant) error {
	if err := r.s.lock(); err != nil {
		return err
	}
	defer r.s.mu.Unlock()

	cp := *plant
	r.s.plants[plant.ID] = &cp
	return nil
}

func (r plantRepo) filter(keep func(*entity.Plant) bool) ([]*entity.Plant, error) {
	if err := r.s.lock(); err != nil {
		return nil, err
	}
	defer r.s.mu.Unlock()

	plants := []*entity.Plant{}
	for _, p := range r.s.plants {
		if keep(p) {
			cp := *p
			plants = append(plants, &cp)
		}
	}
	sort.Slice(plants, func(i, j int) bool { return plants[i].ID.String() > plants[j].ID.String() })
	return plants, nil
}

func (r plantRepo) FindAll(context.Context) ([]*entity.Plant, error) {
	return r.filter(func(*entity.Plant) bool { return true })
}

func (r plantRepo) FindBySeller(_ context.Context, sellerEmail string) ([]*entity.Plant, error) {
	return r.filter(func(p *entity.Plant) bool { return p.SellerEmail == sellerEmail })
}

func (r plantRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Plant, error) {
	if err := r.s.lock(); err != nil {
		return nil, err
	}
	defer r.s.mu.Unlock()

	p, ok := r.s.plants[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r plantRepo) AdjustQuantity(_ context.Context, id uuid.UUID, delta int, floor bool) (bool, error) {
	if err := r.s.lock(); err != nil {
		return false, err
	}
	defer r.s.mu.Unlock()

	p, ok := r.s.plants[id]
	if !ok {
		return false, nil
	}
	if floor && delta < 0 && p.Quantity+delta < 0 {
		return false, nil
	}
	p.Quantity += delta
	return true, nil
}

func (r plantRepo) Delete(_ context.Context, id uuid.UUID, sellerEmail string) (bool, error) {
	if err := r.s.lock(); err != nil {
		return false, err
	}
	defer r.s.mu.Unlock()

	p, ok := r.s.plants[id]
	if !ok || p.SellerEmail != sellerEmail {
		return false, nil
	}
	delete(r.s.plants, id)
	return true, nil
}

func (r plantRepo) CountAll(context.Context) (int64, error) {
	if err := r.s.lock(); err != nil {
		return 0, err
	}
	defer r.s.mu.Unlock()
	return int64(len(r.s.plants)), nil
}

type orderRepo struct{ s *Store }

func (r orderRepo) Create(_ context.Context, order *entity.Order) error {
	if err := r.s.lock(); err != nil {
		return err
	}
	defer r.s.mu.Unlock()

	cp := *order
	r.s.orders[order.ID] = &cp
	return nil
}

func (r orderRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Order, error) {
	if err := r.s.lock(); err != nil {
		return nil, err
	}
	defer r.s.mu.Unlock()

	o, ok := r.s.orders[id]
	if !ok {
		return nil, nil
	}
	cp := *o
	return &cp, nil
}

func partyEmail(o *entity.Order, party repository.OrderParty) string {
	if party == repository.PartySeller {
		return o.SellerEmail
	}
	return o.Customer.Email
}

func (r orderRepo) FindEnriched(_ context.Context, party repository.OrderParty, email string) ([]*entity.EnrichedOrder, error) {
	if err := r.s.lock(); err != nil {
		return nil, err
	}
	defer r.s.mu.Unlock()

	orders := []*entity.EnrichedOrder{}
	for _, o := range r.s.orders {
		if partyEmail(o, party) != email {
			continue
		}
		p, ok := r.s.plants[o.ProductID]
		if !ok {
			continue
		}
		orders = append(orders, &entity.EnrichedOrder{
			Order:         *o,
			PlantName:     p.Name,
			PlantImage:    p.Image,
			PlantCategory: p.Category,
		})
	}
	sort.Slice(orders, func(i, j int) bool { return orders[i].ID.String() > orders[j].ID.String() })
	return orders, nil
}

func (r orderRepo) UpdateStatus(_ context.Context, id uuid.UUID, sellerEmail string, status entity.OrderStatus) (bool, error) {
	if err := r.s.lock(); err != nil {
		return false, err
	}
	defer r.s.mu.Unlock()

	o, ok := r.s.orders[id]
	if !ok || o.SellerEmail != sellerEmail || o.Status.Terminal() {
		return false, nil
	}
	o.Status = status
	o.UpdatedAt = time.Now().UTC()
	return true, nil
}

func (r orderRepo) DeleteUndelivered(_ context.Context, id uuid.UUID, party repository.OrderParty, email string) (bool, error) {
	if err := r.s.lock(); err != nil {
		return false, err
	}
	defer r.s.mu.Unlock()

	o, ok := r.s.orders[id]
	if !ok || partyEmail(o, party) != email || o.Status == entity.OrderStatusDelivered {
		return false, nil
	}
	delete(r.s.orders, id)
	return true, nil
}

type statsRepo struct{ s *Store }

func (r statsRepo) OrderTotals(context.Context) (*entity.OrderTotals, error) {
	if err := r.s.lock(); err != nil {
		return nil, err
	}
	defer r.s.mu.Unlock()

	totals := &entity.OrderTotals{Revenue: decimal.Zero}
	for _, o := range r.s.orders {
		totals.Revenue = totals.Revenue.Add(o.Price)
		totals.Orders++
	}
	return totals, nil
}

func (r statsRepo) DailyOrders(context.Context) ([]*entity.DailyOrders, error) {
	if err := r.s.lock(); err != nil {
		return nil, err
	}
	defer r.s.mu.Unlock()

	byDay := map[string]*entity.DailyOrders{}
	latest := map[string]time.Time{}
	for _, o := range r.s.orders {
		created := utils.IDTime(o.ID)
		if created.IsZero() {
			created = o.CreatedAt.UTC()
		}
		day := o.CreatedAt.UTC().Format("2006-01-02")

		d, ok := byDay[day]
		if !ok {
			d = &entity.DailyOrders{Date: day, Price: decimal.Zero}
			byDay[day] = d
		}
		d.Quantity += int64(o.Quantity)
		d.Price = d.Price.Add(o.Price)
		d.Orders++
		if created.After(latest[day]) {
			latest[day] = created
		}
	}

	days := make([]*entity.DailyOrders, 0, len(byDay))
	for _, d := range byDay {
		days = append(days, d)
	}
	sort.Slice(days, func(i, j int) bool { return latest[days[i].Date].After(latest[days[j].Date]) })
	return days, nil
}
