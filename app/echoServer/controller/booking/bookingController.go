package booking

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"shareit/app/echoServer/identity"
	"shareit/apperr"
	"shareit/model"
	bookingsvc "shareit/service/booking"
)

type Controller struct {
	Svc bookingsvc.Service
	V   *validator.Validate
	Log *slog.Logger
}

// POST /bookings
func (h *Controller) Create(c echo.Context) error {
	var req CreateBookingReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "validation error", "errors": err.Error()})
	}
	if !req.End.After(req.Start) {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "end must be after start"})
	}
	if req.Start.Before(time.Now()) {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "start must not be in the past"})
	}

	view, err := h.Svc.Create(c.Request().Context(), identity.CallerID(c), req.ItemID, req.Start, req.End)
	if err != nil {
		return h.fail(c, "booking create", err)
	}
	return c.JSON(http.StatusCreated, view)
}

// PATCH /bookings/:id?approved=
func (h *Controller) Decide(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	approved, _ := strconv.ParseBool(c.QueryParam("approved"))

	view, err := h.Svc.Decide(c.Request().Context(), id, identity.CallerID(c), approved)
	if err != nil {
		return h.fail(c, "booking decide", err)
	}
	return c.JSON(http.StatusOK, view)
}

// GET /bookings/:id
func (h *Controller) ByID(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	view, err := h.Svc.ByID(c.Request().Context(), id, identity.CallerID(c))
	if err != nil {
		return h.fail(c, "booking fetch", err)
	}
	return c.JSON(http.StatusOK, view)
}

// GET /bookings?state=
func (h *Controller) ListByBooker(c echo.Context) error {
	state, err := model.ParseState(c.QueryParam("state"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": err.Error()})
	}
	views, err := h.Svc.ListByBooker(c.Request().Context(), identity.CallerID(c), state)
	if err != nil {
		return h.fail(c, "booking list", err)
	}
	return c.JSON(http.StatusOK, views)
}

// GET /bookings/owner?state=
func (h *Controller) ListByOwner(c echo.Context) error {
	state, err := model.ParseState(c.QueryParam("state"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": err.Error()})
	}
	views, err := h.Svc.ListByOwner(c.Request().Context(), identity.CallerID(c), state)
	if err != nil {
		return h.fail(c, "booking owner list", err)
	}
	return c.JSON(http.StatusOK, views)
}

// PUT /bookings
func (h *Controller) Update(c echo.Context) error {
	var req UpdateBookingReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}
	if req.ID <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "id required"})
	}

	upd := bookingsvc.Update{ID: req.ID, Start: req.Start, End: req.End}
	if req.Status != nil {
		status, err := model.ParseStatus(*req.Status)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": err.Error()})
		}
		upd.Status = &status
	}

	view, err := h.Svc.Update(c.Request().Context(), identity.CallerID(c), upd)
	if err != nil {
		return h.fail(c, "booking update", err)
	}
	return c.JSON(http.StatusOK, view)
}

// DELETE /bookings/:id
func (h *Controller) Delete(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	if err := h.Svc.Delete(c.Request().Context(), id); err != nil {
		return h.fail(c, "booking delete", err)
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
