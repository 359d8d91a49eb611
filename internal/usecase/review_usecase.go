package usecase

import (
	"context"
	"net/http"
	"strings"

	"glow/internal/domain/model"
	repo "glow/internal/repository"
)

type ReviewUsecase struct {
	reviewRepo repo.ReviewRepository
	idGen      IDGenerator
	clock      Clock
}

// DI
func NewReviewUsecase(reviewRepo repo.ReviewRepository, idGen IDGenerator, clock Clock) *ReviewUsecase {
	return &ReviewUsecase{
		reviewRepo: reviewRepo,
		idGen:      idGen,
		clock:      clock,
	}
}

func (u *ReviewUsecase) List(ctx context.Context, productID model.ID) ([]model.Review, error) {
	items, err := u.reviewRepo.List(ctx, productID)
	if err != nil {
		return nil, dbError(err)
	}
	return items, nil
}

// POST /api/reviews の入力DTO
type SubmitReviewInput struct {
	ProductID model.ID
	Rating    int
	Review    string
}

func (u *ReviewUsecase) Submit(ctx context.Context, in SubmitReviewInput) (model.Review, error) {
	text := strings.TrimSpace(in.Review)

	//必須チェック
	if in.ProductID.IsZero() || in.Rating == 0 || text == "" {
		return model.Review{}, NewHTTPError(http.StatusBadRequest, "product_id, rating and review are required")
	}
	if !model.ValidReviewRating(in.Rating) {
		return model.Review{}, NewHTTPError(http.StatusBadRequest, "rating must be between 1 and 5")
	}

	created, err := u.reviewRepo.Create(ctx, model.Review{
		ID:        model.ID(u.idGen.NewID()),
		ProductID: in.ProductID,
		Rating:    in.Rating,
		Review:    text,
		CreatedAt: u.clock.Now(),
	})
	if err != nil {
		return model.Review{}, dbError(err)
	}
	return created, nil
}
