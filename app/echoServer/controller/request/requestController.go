package request

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"shareit/app/echoServer/identity"
	"shareit/apperr"
	requestsvc "shareit/service/request"
)

type Controller struct {
	Svc requestsvc.Service
	V   *validator.Validate
	Log *slog.Logger
}

// POST /requests
func (h *Controller) Create(c echo.Context) error {
	var req CreateRequestReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "validation error", "errors": err.Error()})
	}

	view, err := h.Svc.Create(c.Request().Context(), identity.CallerID(c), req.Description)
	if err != nil {
		return h.fail(c, "request create", err)
	}
	return c.JSON(http.StatusCreated, view)
}

// PUT /requests
func (h *Controller) Update(c echo.Context) error {
	var req UpdateRequestReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}
	if req.ID <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "id required"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "validation error", "errors": err.Error()})
	}

	view, err := h.Svc.Update(c.Request().Context(), identity.CallerID(c), req.ID, req.Description)
	if err != nil {
		return h.fail(c, "request update", err)
	}
	return c.JSON(http.StatusOK, view)
}

// GET /requests
func (h *Controller) ByRequestor(c echo.Context) error {
	views, err := h.Svc.ByRequestor(c.Request().Context(), identity.CallerID(c))
	if err != nil {
		return h.fail(c, "request list", err)
	}
	return c.JSON(http.StatusOK, views)
}

// GET /requests/all
func (h *Controller) Others(c echo.Context) error {
	views, err := h.Svc.Others(c.Request().Context(), identity.CallerID(c))
	if err != nil {
		return h.fail(c, "request others", err)
	}
	return c.JSON(http.StatusOK, views)
}

// GET /requests/:id
func (h *Controller) ByID(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	view, err := h.Svc.ByID(c.Request().Context(), id)
	if err != nil {
		return h.fail(c, "request fetch", err)
	}
	return c.JSON(http.StatusOK, view)
}

// DELETE /requests/:id
func (h *Controller) Delete(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	if err := h.Svc.Delete(c.Request().Context(), id); err != nil {
		return h.fail(c, "request delete", err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Controller) fail(c echo.Context, op string, err error) error {
	st := apperr.HTTPStatus(err)
	if st == http.StatusInternalServerError {
		h.Log.Error(op, "err", err)
		return c.JSON(st, echo.Map{"message": "internal error"})
	}
	return c.JSON(st, echo.Map{"message": err.Error()})
}
