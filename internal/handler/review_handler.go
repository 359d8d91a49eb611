package handler

import (
	"net/http"

	"glow/internal/domain/model"
	"glow/internal/usecase"

	"github.com/labstack/echo/v4"
)

type ReviewHandler struct {
	uc *usecase.ReviewUsecase
}

// DI
func NewReviewHandler(uc *usecase.ReviewUsecase) *ReviewHandler {
	return &ReviewHandler{uc: uc}
}

type SubmitReviewRequest struct {
	ProductID model.ID `json:"product_id"`
	Rating    int      `json:"rating"`
	Review    string   `json:"review"`
}

// POSTにだけレート制限をかける
func (h *ReviewHandler) RegisterRoutes(g *echo.Group, submitLimit echo.MiddlewareFunc) {
	g.GET("/reviews", h.list)
	g.POST("/reviews", h.submit, submitLimit)
}

func (h *ReviewHandler) list(c echo.Context) error {
	items, err := h.uc.List(c.Request().Context(), model.ParseID(c.QueryParam("product_id")))
	if err != nil {
		return writeError(c, err)
	}
	return writeData(c, items)
}

func (h *ReviewHandler) submit(c echo.Context) error {
	var req SubmitReviewRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.uc.Submit(c.Request().Context(), usecase.SubmitReviewInput{
		ProductID: req.ProductID,
		Rating:    req.Rating,
		Review:    req.Review,
	})
	if err != nil {
		return writeError(c, err)
	}
	return writeData(c, out)
}
