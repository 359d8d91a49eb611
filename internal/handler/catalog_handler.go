package handler

import (
	"glow/internal/domain/model"
	"glow/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /api/categories, /api/products の公開API
type CatalogHandler struct {
	uc *usecase.CatalogUsecase
}

// DI
func NewCatalogHandler(uc *usecase.CatalogUsecase) *CatalogHandler {
	return &CatalogHandler{uc: uc}
}

func (h *CatalogHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/categories", h.categories)

	g.GET("/products", h.list)
	g.GET("/products/new", h.newest)
	g.GET("/products/best", h.best)
	g.GET("/products/recommended", h.recommended)
	g.GET("/products/search", h.search)
	g.GET("/products/:id", h.detail)
}

func (h *CatalogHandler) categories(c echo.Context) error {
	items, err := h.uc.ListCategories(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return writeData(c, items)
}

func (h *CatalogHandler) list(c echo.Context) error {
	items, err := h.uc.ListProducts(c.Request().Context(), usecase.ListProductsInput{
		Q:          c.QueryParam("q"),
		CategoryID: model.ParseID(c.QueryParam("category")),
		Limit:      queryInt(c, "limit"),
		Offset:     queryInt(c, "offset"),
	})
	if err != nil {
		return writeError(c, err)
	}
	return writeData(c, items)
}

func (h *CatalogHandler) newest(c echo.Context) error {
	items, err := h.uc.ListNewest(c.Request().Context(), queryInt(c, "limit"))
	if err != nil {
		return writeError(c, err)
	}
	return writeData(c, items)
}

func (h *CatalogHandler) best(c echo.Context) error {
	items, err := h.uc.ListBest(c.Request().Context(), queryInt(c, "limit"))
	if err != nil {
		return writeError(c, err)
	}
	return writeData(c, items)
}

func (h *CatalogHandler) recommended(c echo.Context) error {
	items, err := h.uc.ListRecommended(c.Request().Context(), queryInt(c, "limit"))
	if err != nil {
		return writeError(c, err)
	}
	return writeData(c, items)
}

func (h *CatalogHandler) search(c echo.Context) error {
	items, err := h.uc.Search(c.Request().Context(), c.QueryParam("q"), queryInt(c, "limit"))
	if err != nil {
		return writeError(c, err)
	}
	return writeData(c, items)
}

// 見つからない場合も200で {data: null}
func (h *CatalogHandler) detail(c echo.Context) error {
	p, err := h.uc.GetProduct(c.Request().Context(), model.ParseID(c.Param("id")))
	if err != nil {
		return writeError(c, err)
	}
	if p == nil {
		return writeData(c, nil)
	}
	return writeData(c, p)
}
