package application

import (
	"context"
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/oksasatya/catalog-favorites/config"
	"github.com/oksasatya/catalog-favorites/internal/domain/entity"
	"github.com/oksasatya/catalog-favorites/internal/infrastructure/memory"
	"github.com/oksasatya/catalog-favorites/pkg/helpers"
)

type fixture struct {
	store     *memory.Store
	accounts  *AccountService
	favorites *FavoriteService
	catalog   *CatalogService
}

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	s := memory.NewStore()
	tx := s.TxManager()
	logger := quietLogger()
	return &fixture{
		store:     s,
		accounts:  NewAccountService(s.Users(), tx, helpers.NewBcryptHasher(bcrypt.MinCost), logger, nil, &config.Config{}),
		favorites: NewFavoriteService(s.Users(), s.Products(), s.Favorites(), tx, logger),
		catalog:   NewCatalogService(s.Products(), nil, 0, nil, "", logger),
	}
}

func (f *fixture) addProduct(t *testing.T, name, category string, price float64, available bool) entity.Product {
	t.Helper()
	p := entity.Product{Name: name, Category: category, Price: price, IsAvailable: available}
	if err := f.store.Products().Save(context.Background(), &p); err != nil {
		t.Fatalf("save product %s: %v", name, err)
	}
	return p
}

func (f *fixture) register(t *testing.T, username, email, password string) *entity.User {
	t.Helper()
	u, err := f.accounts.Register(context.Background(), RegisterInput{
		Username: username,
		Name:     username,
		Email:    email,
		Password: password,
	})
	if err != nil {
		t.Fatalf("register %s: %v", username, err)
	}
	return u
}
