package gateway

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	requestdto "shareit/app/echoServer/controller/request"
	"shareit/app/echoServer/identity"
)

func (h *Controller) CreateRequest(c echo.Context) error {
	var req requestdto.CreateRequestReq
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid JSON")
	}
	if err := h.V.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}
	st, body, err := h.Client.Forward(c.Request().Context(), http.MethodPost, "/requests", nil, identity.CallerID(c), req)
	if err != nil {
		return h.upstreamErr(c, "request create", err)
	}
	return h.relay(c, st, body)
}

func (h *Controller) UpdateRequest(c echo.Context) error {
	var req requestdto.UpdateRequestReq
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid JSON")
	}
	if req.ID <= 0 {
		return badRequest(c, "id required")
	}
	if err := h.V.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}
	st, body, err := h.Client.Forward(c.Request().Context(), http.MethodPut, "/requests", nil, identity.CallerID(c), req)
	if err != nil {
		return h.upstreamErr(c, "request update", err)
	}
	return h.relay(c, st, body)
}

func (h *Controller) RequestsByRequestor(c echo.Context) error {
	st, body, err := h.Client.Forward(c.Request().Context(), http.MethodGet, "/requests", nil, identity.CallerID(c), nil)
	if err != nil {
		return h.upstreamErr(c, "request list", err)
	}
	return h.relay(c, st, body)
}

func (h *Controller) OtherRequests(c echo.Context) error {
	st, body, err := h.Client.Forward(c.Request().Context(), http.MethodGet, "/requests/all", nil, identity.CallerID(c), nil)
	if err != nil {
		return h.upstreamErr(c, "request others", err)
	}
	return h.relay(c, st, body)
}

func (h *Controller) RequestByID(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return badRequest(c, "invalid id")
	}
	st, body, err := h.Client.Forward(c.Request().Context(), http.MethodGet, "/requests/"+strconv.FormatInt(id, 10), nil, identity.CallerID(c), nil)
	if err != nil {
		return h.upstreamErr(c, "request fetch", err)
	}
	return h.relay(c, st, body)
}

func (h *Controller) DeleteRequest(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return badRequest(c, "invalid id")
	}
	st, body, err := h.Client.Forward(c.Request().Context(), http.MethodDelete, "/requests/"+strconv.FormatInt(id, 10), nil, identity.CallerID(c), nil)
	if err != nil {
		return h.upstreamErr(c, "request delete", err)
	}
	return h.relay(c, st, body)
}
