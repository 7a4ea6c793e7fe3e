package gateway

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	userdto "shareit/app/echoServer/controller/user"
)

func (h *Controller) CreateUser(c echo.Context) error {
	var req userdto.CreateUserReq
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid JSON")
	}
	if err := h.V.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}
	st, body, err := h.Client.Forward(c.Request().Context(), http.MethodPost, "/users", nil, 0, req)
	if err != nil {
		return h.upstreamErr(c, "user create", err)
	}
	return h.relay(c, st, body)
}

func (h *Controller) UpdateUser(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return badRequest(c, "invalid id")
	}
	var req userdto.UpdateUserReq
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid JSON")
	}
	if err := h.V.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}
	st, body, err := h.Client.Forward(c.Request().Context(), http.MethodPatch, "/users/"+strconv.FormatInt(id, 10), nil, 0, req)
	if err != nil {
		return h.upstreamErr(c, "user update", err)
	}
	return h.relay(c, st, body)
}

func (h *Controller) UserByID(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return badRequest(c, "invalid id")
	}
	st, body, err := h.Client.Forward(c.Request().Context(), http.MethodGet, "/users/"+strconv.FormatInt(id, 10), nil, 0, nil)
	if err != nil {
		return h.upstreamErr(c, "user fetch", err)
	}
	return h.relay(c, st, body)
}

func (h *Controller) ListUsers(c echo.Context) error {
	st, body, err := h.Client.Forward(c.Request().Context(), http.MethodGet, "/users", nil, 0, nil)
	if err != nil {
		return h.upstreamErr(c, "user list", err)
	}
	return h.relay(c, st, body)
}

func (h *Controller) DeleteUser(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return badRequest(c, "invalid id")
	}
	st, body, err := h.Client.Forward(c.Request().Context(), http.MethodDelete, "/users/"+strconv.FormatInt(id, 10), nil, 0, nil)
	if err != nil {
		return h.upstreamErr(c, "user delete", err)
	}
	return h.relay(c, st, body)
}

func pathID(c echo.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
