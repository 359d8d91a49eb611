package handler

import (
	"net/http"
	"strconv"

	"glow/internal/usecase"

	"github.com/labstack/echo/v4"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

// 一覧は {data: [...]}、詳細は {data: {...} | null}
type DataResponse struct {
	Data any `json:"data"`
}

func writeData(c echo.Context, data any) error {
	return c.JSON(http.StatusOK, DataResponse{Data: data})
}

func writeError(c echo.Context, err error) error {
	if err == nil {
		return nil
	}
	if he, ok := usecase.AsHTTPError(err); ok {
		return c.JSON(he.Status, ErrorResponse{Error: he.Message})
	}

	//500
	return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
}

// 数値でない・未指定は0（usecase側でdefaultに寄せる）
func queryInt(c echo.Context, name string) int {
	v := c.QueryParam(name)
	if v == "" {
		return 0
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0
	}
	return n
}

// 404（未定義ルート）
func NotFound(c echo.Context) error {
	return c.JSON(http.StatusNotFound, ErrorResponse{Error: "Not found"})
}

// echoのHTTPErrorHandler。未定義ルートは {error: "Not found"} に統一。
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	status := http.StatusInternalServerError
	msg := err.Error()
	if he, ok := err.(*echo.HTTPError); ok {
		status = he.Code
		if m, ok := he.Message.(string); ok {
			msg = m
		}
	}
	if status == http.StatusNotFound {
		msg = "Not found"
	}

	_ = c.JSON(status, ErrorResponse{Error: msg})
}

// GET / ヘルスチェック
func Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{"ok": true, "message": "glow-api running"})
}
