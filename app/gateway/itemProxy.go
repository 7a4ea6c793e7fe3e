package gateway

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/labstack/echo/v4"

	itemdto "shareit/app/echoServer/controller/item"
	"shareit/app/echoServer/identity"
)

func (h *Controller) CreateItem(c echo.Context) error {
	var req itemdto.CreateItemReq
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid JSON")
	}
	if err := h.V.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}
	st, body, err := h.Client.Forward(c.Request().Context(), http.MethodPost, "/items", nil, identity.CallerID(c), req)
	if err != nil {
		return h.upstreamErr(c, "item create", err)
	}
	return h.relay(c, st, body)
}

func (h *Controller) UpdateItem(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return badRequest(c, "invalid id")
	}
	var req itemdto.UpdateItemReq
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid JSON")
	}
	if err := h.V.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}
	st, body, err := h.Client.Forward(c.Request().Context(), http.MethodPatch, "/items/"+strconv.FormatInt(id, 10), nil, identity.CallerID(c), req)
	if err != nil {
		return h.upstreamErr(c, "item update", err)
	}
	return h.relay(c, st, body)
}

func (h *Controller) ItemByID(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return badRequest(c, "invalid id")
	}
	st, body, err := h.Client.Forward(c.Request().Context(), http.MethodGet, "/items/"+strconv.FormatInt(id, 10), nil, identity.CallerID(c), nil)
	if err != nil {
		return h.upstreamErr(c, "item fetch", err)
	}
	return h.relay(c, st, body)
}

func (h *Controller) ItemsByOwner(c echo.Context) error {
	st, body, err := h.Client.Forward(c.Request().Context(), http.MethodGet, "/items", nil, identity.CallerID(c), nil)
	if err != nil {
		return h.upstreamErr(c, "item list", err)
	}
	return h.relay(c, st, body)
}

func (h *Controller) SearchItems(c echo.Context) error {
	q := url.Values{"text": {c.QueryParam("text")}}
	st, body, err := h.Client.Forward(c.Request().Context(), http.MethodGet, "/items/search", q, identity.CallerID(c), nil)
	if err != nil {
		return h.upstreamErr(c, "item search", err)
	}
	return h.relay(c, st, body)
}

func (h *Controller) DeleteItem(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return badRequest(c, "invalid id")
	}
	st, body, err := h.Client.Forward(c.Request().Context(), http.MethodDelete, "/items/"+strconv.FormatInt(id, 10), nil, identity.CallerID(c), nil)
	if err != nil {
		return h.upstreamErr(c, "item delete", err)
	}
	return h.relay(c, st, body)
}

func (h *Controller) AddComment(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return badRequest(c, "invalid id")
	}
	var req itemdto.CreateCommentReq
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid JSON")
	}
	if err := h.V.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}
	st, body, err := h.Client.Forward(c.Request().Context(), http.MethodPost, "/items/"+strconv.FormatInt(id, 10)+"/comment", nil, identity.CallerID(c), req)
	if err != nil {
		return h.upstreamErr(c, "comment create", err)
	}
	return h.relay(c, st, body)
}
