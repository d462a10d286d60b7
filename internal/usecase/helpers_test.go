package usecase_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"plantnet/internal/data/entity"
	"plantnet/internal/data/repository/repotest"
	"plantnet/internal/usecase"
	"plantnet/pkg/credential"
	"plantnet/pkg/payment"
	"plantnet/pkg/utils"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type sentMessage struct {
	recipient, subject, message string
}

// recordingNotifier captures notifications and signals each one on sent.
type recordingNotifier struct {
	mu   sync.Mutex
	msgs []sentMessage
	sent chan struct{}
	err  error
}

func newRecordingNotifier() *recordingNotifier {
	return &recordingNotifier{sent: make(chan struct{}, 16)}
}

func (n *recordingNotifier) Notify(_ context.Context, recipient, subject, message string) error {
	n.mu.Lock()
	n.msgs = append(n.msgs, sentMessage{recipient, subject, message})
	n.mu.Unlock()
	n.sent <- struct{}{}
	return n.err
}

func (n *recordingNotifier) wait(t *testing.T, count int) []sentMessage {
	t.Helper()
	for i := 0; i < count; i++ {
		select {
		case <-n.sent:
		case <-time.After(2 * time.Second):
			t.Fatalf("timed out waiting for notification %d of %d", i+1, count)
		}
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]sentMessage(nil), n.msgs...)
}

type fakeGateway struct {
	mu       sync.Mutex
	amount   int64
	currency string
	metadata map[string]string
	err      error
}

func (g *fakeGateway) CreateIntent(_ context.Context, amount int64, currency string, metadata map[string]string) (*payment.Intent, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.err != nil {
		return nil, g.err
	}
	g.amount, g.currency, g.metadata = amount, currency, metadata
	return &payment.Intent{ID: "pi_test", ClientSecret: "pi_test_secret", Amount: amount, Currency: currency}, nil
}

type fixture struct {
	store    *repotest.Store
	notifier *recordingNotifier
	gateway  *fakeGateway
	signer   *credential.Signer
	svc      *usecase.Service
}

func newFixture(t *testing.T, allowBackorder bool) *fixture {
	t.Helper()

	store := repotest.NewStore()
	n := newRecordingNotifier()
	gw := &fakeGateway{}
	signer := credential.NewSigner("test-secret", time.Hour)
	config := &utils.Config{
		Payment:   utils.PaymentConfig{Currency: "usd"},
		Inventory: utils.InventoryConfig{AllowBackorder: allowBackorder},
	}

	return &fixture{
		store:    store,
		notifier: n,
		gateway:  gw,
		signer:   signer,
		svc:      usecase.NewService(store.Repository(), gw, n, signer, config, zap.NewNop()),
	}
}

func (f *fixture) addUser(email string, role entity.UserRole) {
	now := time.Now().UTC()
	f.store.PutUser(entity.User{
		Base:   entity.Base{ID: utils.NewID(), CreatedAt: now, UpdatedAt: now},
		Email:  email,
		Role:   role,
		Status: entity.RoleStatusNone,
	})
}

func (f *fixture) addPlant(seller string, price string, quantity int) entity.Plant {
	now := time.Now().UTC()
	plant := entity.Plant{
		Base:        entity.Base{ID: utils.NewID(), CreatedAt: now, UpdatedAt: now},
		SellerEmail: seller,
		SellerName:  "Seller",
		Name:        "Monstera",
		Category:    "Indoor",
		Price:       decimal.RequireFromString(price),
		Quantity:    quantity,
		Image:       "https://img.example/monstera.png",
	}
	f.store.PutPlant(plant)
	return plant
}

func (f *fixture) addOrder(plant entity.Plant, customer string, status entity.OrderStatus) entity.Order {
	now := time.Now().UTC()
	order := entity.Order{
		Base:        entity.Base{ID: utils.NewID(), CreatedAt: now, UpdatedAt: now},
		ProductID:   plant.ID,
		SellerEmail: plant.SellerEmail,
		Customer:    entity.Customer{Email: customer},
		Quantity:    1,
		Price:       plant.Price,
		Status:      status,
	}
	f.store.PutOrder(order)
	return order
}
