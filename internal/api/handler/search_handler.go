package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/estatehub/realty-platform/internal/core/ports"
)

// SearchHandler exposes the in-memory property index.
type SearchHandler struct {
	service ports.SearchService
}

func NewSearchHandler(service ports.SearchService) *SearchHandler {
	return &SearchHandler{service: service}
}

// Search handles GET /search. Results reflect the index as of the last
// rebuild; listings changed since then are not visible until the next
// one.
//
// @Summary      Search listings
// @Tags         search
// @Produce      json
// @Param        q              query     string  false  "Free-text query over title, description, city and address"
// @Param        city           query     string  false  "City filter (substring)"
// @Param        property_type  query     string  false  "Type filter (exact)"
// @Success      200  {object}  map[string]any
// @Router       /search [get]
func (h *SearchHandler) Search(c echo.Context) error {
	results, err := h.service.Search(
		c.Request().Context(),
		c.QueryParam("q"),
		c.QueryParam("city"),
		c.QueryParam("property_type"),
	)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"count": len(results), "results": results})
}

// Rebuild handles POST /search/rebuild. Agent only. Pulls the full
// catalog from the property service and swaps the index atomically.
//
// @Summary      Rebuild the search index
// @Tags         search
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]int
// @Failure      502  {object}  map[string]string
// @Router       /search/rebuild [post]
func (h *SearchHandler) Rebuild(c echo.Context) error {
	n, err := h.service.Rebuild(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"indexed": n})
}
