package gateway

import (
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	bookingdto "shareit/app/echoServer/controller/booking"
	"shareit/app/echoServer/identity"
	"shareit/model"
)

func (h *Controller) CreateBooking(c echo.Context) error {
	var req bookingdto.CreateBookingReq
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid JSON")
	}
	if err := h.V.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}
	if !req.End.After(req.Start) {
		return badRequest(c, "end must be after start")
	}
	if req.Start.Before(time.Now()) {
		return badRequest(c, "start must not be in the past")
	}
	st, body, err := h.Client.Forward(c.Request().Context(), http.MethodPost, "/bookings", nil, identity.CallerID(c), req)
	if err != nil {
		return h.upstreamErr(c, "booking create", err)
	}
	return h.relay(c, st, body)
}

func (h *Controller) DecideBooking(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return badRequest(c, "invalid id")
	}
	approved, _ := strconv.ParseBool(c.QueryParam("approved"))
	q := url.Values{"approved": {strconv.FormatBool(approved)}}
	st, body, err := h.Client.Forward(c.Request().Context(), http.MethodPatch, "/bookings/"+strconv.FormatInt(id, 10), q, identity.CallerID(c), nil)
	if err != nil {
		return h.upstreamErr(c, "booking decide", err)
	}
	return h.relay(c, st, body)
}

func (h *Controller) BookingByID(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return badRequest(c, "invalid id")
	}
	st, body, err := h.Client.Forward(c.Request().Context(), http.MethodGet, "/bookings/"+strconv.FormatInt(id, 10), nil, identity.CallerID(c), nil)
	if err != nil {
		return h.upstreamErr(c, "booking fetch", err)
	}
	return h.relay(c, st, body)
}

func (h *Controller) BookingsByBooker(c echo.Context) error {
	return h.listBookings(c, "/bookings")
}

func (h *Controller) BookingsByOwner(c echo.Context) error {
	return h.listBookings(c, "/bookings/owner")
}

func (h *Controller) listBookings(c echo.Context, path string) error {
	state, err := model.ParseState(c.QueryParam("state"))
	if err != nil {
		return badRequest(c, err.Error())
	}
	q := url.Values{"state": {string(state)}}
	st, body, err := h.Client.Forward(c.Request().Context(), http.MethodGet, path, q, identity.CallerID(c), nil)
	if err != nil {
		return h.upstreamErr(c, "booking list", err)
	}
	return h.relay(c, st, body)
}

func (h *Controller) UpdateBooking(c echo.Context) error {
	var req bookingdto.UpdateBookingReq
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid JSON")
	}
	if req.ID <= 0 {
		return badRequest(c, "id required")
	}
	if req.Status != nil {
		if _, err := model.ParseStatus(*req.Status); err != nil {
			return badRequest(c, err.Error())
		}
	}
	st, body, err := h.Client.Forward(c.Request().Context(), http.MethodPut, "/bookings", nil, identity.CallerID(c), req)
	if err != nil {
		return h.upstreamErr(c, "booking update", err)
	}
	return h.relay(c, st, body)
}

func (h *Controller) DeleteBooking(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return badRequest(c, "invalid id")
	}
	st, body, err := h.Client.Forward(c.Request().Context(), http.MethodDelete, "/bookings/"+strconv.FormatInt(id, 10), nil, identity.CallerID(c), nil)
	if err != nil {
		return h.upstreamErr(c, "booking delete", err)
	}
	return h.relay(c, st, body)
}
