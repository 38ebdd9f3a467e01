package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/estatehub/realty-platform/internal/core/domain"
	"github.com/estatehub/realty-platform/internal/core/ports"
)

// PropertyHandler handles HTTP requests for the listing catalog.
type PropertyHandler struct {
	service ports.PropertyService
}

func NewPropertyHandler(service ports.PropertyService) *PropertyHandler {
	return &PropertyHandler{service: service}
}

type createPropertyRequest struct {
	Title        string   `json:"title"         validate:"required"`
	Description  string   `json:"description"`
	City         string   `json:"city"          validate:"required"`
	Address      string   `json:"address"       validate:"required"`
	PriceEUR     float64  `json:"price_eur"     validate:"required,gt=0"`
	PropertyType string   `json:"property_type" validate:"omitempty,oneof=apartment house land commercial"`
	Rooms        int      `json:"rooms"`
	AreaM2       float64  `json:"area_m2"`
	IsForSale    bool     `json:"is_for_sale"`
	IsForRent    bool     `json:"is_for_rent"`
	PhotoPaths   []string `json:"photo_paths"`
}

type updatePropertyRequest struct {
	Title        *string  `json:"title"`
	Description  *string  `json:"description"`
	City         *string  `json:"city"`
	Address      *string  `json:"address"`
	PriceEUR     *float64 `json:"price_eur"`
	PropertyType *string  `json:"property_type"`
	Rooms        *int     `json:"rooms"`
	AreaM2       *float64 `json:"area_m2"`
	IsForSale    *bool    `json:"is_for_sale"`
	IsForRent    *bool    `json:"is_for_rent"`
}

// Create handles POST /properties. Agent only.
//
// @Summary      Create a listing
// @Tags         properties
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createPropertyRequest  true  "Listing details"
// @Success      201   {object}  domain.Property
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Router       /properties [post]
func (h *PropertyHandler) Create(c echo.Context) error {
	var req createPropertyRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	prop, err := h.service.Create(c.Request().Context(), ports.CreatePropertyInput{
		Title:        req.Title,
		Description:  req.Description,
		City:         req.City,
		Address:      req.Address,
		PriceEUR:     req.PriceEUR,
		PropertyType: domain.PropertyType(req.PropertyType),
		Rooms:        req.Rooms,
		AreaM2:       req.AreaM2,
		IsForSale:    req.IsForSale,
		IsForRent:    req.IsForRent,
		PhotoPaths:   req.PhotoPaths,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, prop)
}

// Get handles GET /properties/:id. Public.
//
// @Summary      Get a listing
// @Tags         properties
// @Produce      json
// @Param        id   path      int  true  "Property id"
// @Success      200  {object}  domain.Property
// @Failure      404  {object}  map[string]string
// @Router       /properties/{id} [get]
func (h *PropertyHandler) Get(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	prop, err := h.service.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, prop)
}

// List handles GET /properties with optional filters. Public.
//
// @Summary      List listings
// @Tags         properties
// @Produce      json
// @Param        city           query     string  false  "City filter (substring)"
// @Param        property_type  query     string  false  "Type filter (exact)"
// @Param        min_price      query     number  false  "Minimum price in EUR"
// @Param        max_price      query     number  false  "Maximum price in EUR"
// @Success      200  {array}  domain.Property
// @Router       /properties [get]
func (h *PropertyHandler) List(c echo.Context) error {
	filter := domain.PropertyFilter{
		City:         c.QueryParam("city"),
		PropertyType: domain.PropertyType(c.QueryParam("property_type")),
	}
	if v := c.QueryParam("min_price"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			filter.MinPrice = f
		}
	}
	if v := c.QueryParam("max_price"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			filter.MaxPrice = f
		}
	}

	props, err := h.service.List(c.Request().Context(), filter)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, props)
}

// Update handles PATCH /properties/:id. Agent only; absent fields keep
// their current values.
//
// @Summary      Update a listing
// @Tags         properties
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int                    true  "Property id"
// @Param        body  body      updatePropertyRequest  true  "Fields to change"
// @Success      200   {object}  domain.Property
// @Failure      404   {object}  map[string]string
// @Router       /properties/{id} [patch]
func (h *PropertyHandler) Update(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req updatePropertyRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	in := ports.UpdatePropertyInput{
		Title:       req.Title,
		Description: req.Description,
		City:        req.City,
		Address:     req.Address,
		PriceEUR:    req.PriceEUR,
		Rooms:       req.Rooms,
		AreaM2:      req.AreaM2,
		IsForSale:   req.IsForSale,
		IsForRent:   req.IsForRent,
	}
	if req.PropertyType != nil {
		t := domain.PropertyType(*req.PropertyType)
		in.PropertyType = &t
	}

	prop, err := h.service.Update(c.Request().Context(), id, in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, prop)
}

// Delete handles DELETE /properties/:id. Agent only.
//
// @Summary      Delete a listing
// @Tags         properties
// @Security     BearerAuth
// @Param        id  path  int  true  "Property id"
// @Success      204
// @Failure      404  {object}  map[string]string
// @Router       /properties/{id} [delete]
func (h *PropertyHandler) Delete(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
