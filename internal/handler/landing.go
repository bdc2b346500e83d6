package handler

import (
	_ "embed"
	"fmt"
	"net/http"

	"github.com/bhaumin/boilerplate-project-exercisetracker/internal/server"
	"github.com/labstack/echo/v4"
)

//go:embed views/index.html
var indexHTML string

// LandingHandler serves the HTML page with the registration and exercise forms.
type LandingHandler struct {
	Handler
}

func NewLandingHandler(s *server.Server) *LandingHandler {
	return &LandingHandler{
		Handler: NewHandler(s),
	}
}

func (h *LandingHandler) ServeIndex(c echo.Context) error {
	c.Response().Header().Set("Cache-Control", "no-cache")

	if err := c.HTML(http.StatusOK, indexHTML); err != nil {
		return fmt.Errorf("failed to write HTML response: %w", err)
	}

	return nil
}
