package gateway

import (
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"shareit/app/echoServer/identity"
)

type Controller struct {
	Client *Client
	V      *validator.Validate
	Log    *slog.Logger
}

func Register(e *echo.Echo, h *Controller) {
	users := e.Group("/users")
	users.POST("", h.CreateUser)
	users.GET("", h.ListUsers)
	users.GET("/:id", h.UserByID)
	users.PATCH("/:id", h.UpdateUser)
	users.DELETE("/:id", h.DeleteUser)

	items := e.Group("/items", identity.Require())
	items.POST("", h.CreateItem)
	items.GET("", h.ItemsByOwner)
	items.GET("/search", h.SearchItems)
	items.GET("/:id", h.ItemByID)
	items.PATCH("/:id", h.UpdateItem)
	items.DELETE("/:id", h.DeleteItem)
	items.POST("/:id/comment", h.AddComment)

	bookings := e.Group("/bookings", identity.Require())
	bookings.POST("", h.CreateBooking)
	bookings.PUT("", h.UpdateBooking)
	bookings.GET("", h.BookingsByBooker)
	bookings.GET("/owner", h.BookingsByOwner)
	bookings.GET("/:id", h.BookingByID)
	bookings.PATCH("/:id", h.DecideBooking)
	bookings.DELETE("/:id", h.DeleteBooking)

	requests := e.Group("/requests", identity.Require())
	requests.POST("", h.CreateRequest)
	requests.PUT("", h.UpdateRequest)
	requests.GET("", h.RequestsByRequestor)
	requests.GET("/all", h.OtherRequests)
	requests.GET("/:id", h.RequestByID)
	requests.DELETE("/:id", h.DeleteRequest)
}

// relay writes the upstream response through unchanged.
func (h *Controller) relay(c echo.Context, status int, body []byte) error {
	if len(body) == 0 {
		return c.NoContent(status)
	}
	return c.Blob(status, echo.MIMEApplicationJSON, body)
}

func (h *Controller) upstreamErr(c echo.Context, op string, err error) error {
	h.Log.Error(op, "err", err)
	return c.JSON(http.StatusBadGateway, echo.Map{"message": "upstream unavailable"})
}

func badRequest(c echo.Context, msg string) error {
	return c.JSON(http.StatusBadRequest, echo.Map{"message": msg})
}
