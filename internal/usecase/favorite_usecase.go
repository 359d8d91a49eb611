package usecase

import (
	"context"
	"net/http"
	"strings"

	"glow/internal/domain/model"
	repo "glow/internal/repository"
)

type FavoriteUsecase struct {
	favoriteRepo repo.FavoriteRepository
	idGen        IDGenerator
	clock        Clock
}

// DI
func NewFavoriteUsecase(favoriteRepo repo.FavoriteRepository, idGen IDGenerator, clock Clock) *FavoriteUsecase {
	return &FavoriteUsecase{
		favoriteRepo: favoriteRepo,
		idGen:        idGen,
		clock:        clock,
	}
}

// ユーザー名が無ければゲスト
func userOrGuest(userName string) string {
	if s := strings.TrimSpace(userName); s != "" {
		return s
	}
	return model.GuestUser
}

func (u *FavoriteUsecase) List(ctx context.Context, userName string) ([]model.Favorite, error) {
	items, err := u.favoriteRepo.ListByUser(ctx, userOrGuest(userName))
	if err != nil {
		return nil, dbError(err)
	}
	return items, nil
}

func (u *FavoriteUsecase) Add(ctx context.Context, userName string, productID model.ID) (model.Favorite, error) {
	if productID.IsZero() {
		return model.Favorite{}, NewHTTPError(http.StatusBadRequest, "product_id is required")
	}

	f, err := u.favoriteRepo.Add(ctx, model.Favorite{
		ID:        model.ID(u.idGen.NewID()),
		UserName:  userOrGuest(userName),
		ProductID: productID,
		CreatedAt: u.clock.Now(),
	})
	if err != nil {
		return model.Favorite{}, dbError(err)
	}
	return f, nil
}

func (u *FavoriteUsecase) Remove(ctx context.Context, userName string, productID model.ID) error {
	if productID.IsZero() {
		return NewHTTPError(http.StatusBadRequest, "product_id is required")
	}
	if err := u.favoriteRepo.Remove(ctx, userOrGuest(userName), productID); err != nil {
		return dbError(err)
	}
	return nil
}
