package demoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/carelink/carelink/pkg/pagination"
)

func (s *Server) handleListProducts(c echo.Context) error {
	all := s.store.Products()
	params := pagination.FromContext(c)
	lo, hi := params.Slice(len(all))
	return c.JSON(http.StatusOK, pagination.NewResponse(all[lo:hi], len(all), params.Limit, params.Offset))
}
