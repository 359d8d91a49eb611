package handler

import (
	"net/http"

	"glow/internal/domain/model"
	"glow/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /api/favorites（ユーザーは固定のゲスト。?user= で上書き可）
type FavoriteHandler struct {
	uc *usecase.FavoriteUsecase
}

// DI
func NewFavoriteHandler(uc *usecase.FavoriteUsecase) *FavoriteHandler {
	return &FavoriteHandler{uc: uc}
}

type AddFavoriteRequest struct {
	UserName  string   `json:"user_name"`
	ProductID model.ID `json:"product_id"`
}

func (h *FavoriteHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/favorites", h.list)
	g.POST("/favorites", h.add)
	g.DELETE("/favorites/:product_id", h.remove)
}

func (h *FavoriteHandler) list(c echo.Context) error {
	items, err := h.uc.List(c.Request().Context(), c.QueryParam("user"))
	if err != nil {
		return writeError(c, err)
	}
	return writeData(c, items)
}

func (h *FavoriteHandler) add(c echo.Context) error {
	var req AddFavoriteRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.uc.Add(c.Request().Context(), req.UserName, req.ProductID)
	if err != nil {
		return writeError(c, err)
	}
	return writeData(c, out)
}

func (h *FavoriteHandler) remove(c echo.Context) error {
	err := h.uc.Remove(c.Request().Context(), c.QueryParam("user"), model.ParseID(c.Param("product_id")))
	if err != nil {
		return writeError(c, err)
	}
	return writeData(c, nil)
}
