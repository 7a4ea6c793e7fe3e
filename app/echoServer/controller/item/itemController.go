package item

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"shareit/app/echoServer/identity"
	"shareit/apperr"
	commentsvc "shareit/service/comment"
	itemsvc "shareit/service/item"
)

type Controller struct {
	Svc      itemsvc.Service
	Comments commentsvc.Service
	V        *validator.Validate
	Log      *slog.Logger
}

// POST /items
func (h *Controller) Create(c echo.Context) error {
	var req CreateItemReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "validation error", "errors": err.Error()})
	}
	ownerID := identity.CallerID(c)

	it, err := h.Svc.Create(c.Request().Context(), ownerID, req.Name, req.Description, *req.Available, req.RequestID)
	if err != nil {
		return h.fail(c, "item create", err)
	}
	return c.JSON(http.StatusCreated, it)
}

// PATCH /items/:id
func (h *Controller) Update(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	var req UpdateItemReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}
	ownerID := identity.CallerID(c)

	it, err := h.Svc.Update(c.Request().Context(), ownerID, id, req.Name, req.Description, req.Available)
	if err != nil {
		return h.fail(c, "item update", err)
	}
	return c.JSON(http.StatusOK, it)
}

// GET /items/:id
func (h *Controller) ByID(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	view, err := h.Svc.ByID(c.Request().Context(), identity.CallerID(c), id)
	if err != nil {
		return h.fail(c, "item fetch", err)
	}
	return c.JSON(http.StatusOK, view)
}

// GET /items
func (h *Controller) ByOwner(c echo.Context) error {
	views, err := h.Svc.ByOwner(c.Request().Context(), identity.CallerID(c))
	if err != nil {
		return h.fail(c, "item list", err)
	}
	return c.JSON(http.StatusOK, views)
}

// GET /items/search?text=
func (h *Controller) Search(c echo.Context) error {
	items, err := h.Svc.Search(c.Request().Context(), c.QueryParam("text"))
	if err != nil {
		return h.fail(c, "item search", err)
	}
	return c.JSON(http.StatusOK, items)
}

// DELETE /items/:id
func (h *Controller) Delete(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	if err := h.Svc.Delete(c.Request().Context(), identity.CallerID(c), id); err != nil {
		return h.fail(c, "item delete", err)
	}
	return c.NoContent(http.StatusNoContent)
}

// POST /items/:id/comment
func (h *Controller) AddComment(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	var req CreateCommentReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "validation error", "errors": err.Error()})
	}

	view, err := h.Comments.Add(c.Request().Context(), identity.CallerID(c), id, req.Text)
	if err != nil {
		return h.fail(c, "comment add", err)
	}
	return c.JSON(http.StatusCreated, view)
}

func (h *Controller) fail(c echo.Context, op string, err error) error {
	st := apperr.HTTPStatus(err)
	if st == http.StatusInternalServerError {
		h.Log.Error(op, "err", err)
		return c.JSON(st, echo.Map{"message": "internal error"})
	}
	return c.JSON(st, echo.Map{"message": err.Error()})
}
