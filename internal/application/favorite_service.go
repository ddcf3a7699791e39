package application

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/catalog-favorites/internal/domain/apperr"
	"github.com/oksasatya/catalog-favorites/internal/domain/entity"
	repo "github.com/oksasatya/catalog-favorites/internal/domain/repository"
)

var ErrProductNotFound = apperr.NotFound("Product not found")

// ErrNotSaved is returned when un-saving a product the user has not saved.
var ErrNotSaved = apperr.InvalidRequest("User does not have this product saved")

// UserView is the public shape of a user. It never carries the password hash.
type UserView struct {
	ID                 string   `json:"id"`
	Username           string   `json:"username"`
	Name               string   `json:"name"`
	Email              string   `json:"email"`
	Phone              string   `json:"phone"`
	SavedProducts      []string `json:"saved_products"`
	SavedProductsCount int      `json:"saved_products_count"`
}

type FavoriteService struct {
	Users     repo.UserRepository
	Products  repo.ProductRepository
	Favorites repo.FavoriteRepository
	Tx        repo.TxManager
	Logger    *logrus.Logger
}

func NewFavoriteService(users repo.UserRepository, products repo.ProductRepository, favorites repo.FavoriteRepository, tx repo.TxManager, logger *logrus.Logger) *FavoriteService {
	return &FavoriteService{Users: users, Products: products, Favorites: favorites, Tx: tx, Logger: logger}
}

// SetSavedStatus moves the (user, product) membership to the desired state.
//
//	save=true,  saved   -> no-op
//	save=true,  absent  -> add
//	save=false, absent  -> ErrNotSaved
//	save=false, saved   -> remove
//
// Product existence is only checked when adding.
func (s *FavoriteService) SetSavedStatus(ctx context.Context, userID, productID string, save bool) (*UserView, error) {
	var (
		u       *entity.User
		changed bool
	)
	err := s.Tx.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		u, err = s.Users.FindByID(ctx, userID)
		if err != nil {
			return err
		}
		if u == nil {
			return ErrUserNotFound
		}
		if save {
			p, err := s.Products.FindByID(ctx, productID)
			if err != nil {
				return err
			}
			if p == nil {
				return ErrProductNotFound
			}
		}

		saved, err := s.Favorites.Exists(ctx, userID, productID)
		if err != nil {
			return err
		}
		switch {
		case save && saved:
			return nil
		case save:
			if _, err := s.Favorites.Add(ctx, userID, productID); err != nil {
				return err
			}
		case !saved:
			return ErrNotSaved
		default:
			err := s.Favorites.Remove(ctx, userID, productID)
			if errors.Is(err, apperr.ErrNotFound) {
				// removed by a concurrent request after the Exists check
				return ErrNotSaved
			}
			if err != nil {
				return err
			}
		}
		changed = true
		return nil
	})
	// A concurrent request inserted the same pair first; the desired state holds.
	if save && errors.Is(err, apperr.ErrConflict) {
		err = nil
	}
	if err != nil {
		return nil, err
	}

	if changed {
		if save {
			metricFavoritesAdded.Add(1)
		} else {
			metricFavoritesRemoved.Add(1)
		}
		if s.Logger != nil {
			s.Logger.WithFields(logrus.Fields{"user_id": userID, "product_id": productID, "saved": save}).Debug("saved status changed")
		}
	}
	return s.ViewOf(ctx, u)
}

// IsSaved reports membership without validating either id.
func (s *FavoriteService) IsSaved(ctx context.Context, userID, productID string) (bool, error) {
	return s.Favorites.Exists(ctx, userID, productID)
}

// ListSavedProducts returns the user's saved products; empty when none.
func (s *FavoriteService) ListSavedProducts(ctx context.Context, userID string) ([]entity.Product, error) {
	products, err := s.Favorites.ListProductsForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if products == nil {
		products = []entity.Product{}
	}
	return products, nil
}

func (s *FavoriteService) ListSavedProductIDs(ctx context.Context, userID string) ([]string, error) {
	ids, err := s.Favorites.ListProductIDsForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if ids == nil {
		ids = []string{}
	}
	return ids, nil
}

func (s *FavoriteService) CountSaved(ctx context.Context, userID string) (int, error) {
	return s.Favorites.CountForUser(ctx, userID)
}

// ViewOf builds the public view of u with its saved product ids.
func (s *FavoriteService) ViewOf(ctx context.Context, u *entity.User) (*UserView, error) {
	ids, err := s.ListSavedProductIDs(ctx, u.ID)
	if err != nil {
		return nil, err
	}
	return &UserView{
		ID:                 u.ID,
		Username:           u.Username,
		Name:               u.Name,
		Email:              u.Email,
		Phone:              u.Phone,
		SavedProducts:      ids,
		SavedProductsCount: len(ids),
	}, nil
}
