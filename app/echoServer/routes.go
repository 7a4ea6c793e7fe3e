package echoServer

import (
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	"shareit/app/echoServer/controller/booking"
	"shareit/app/echoServer/controller/item"
	"shareit/app/echoServer/controller/request"
	"shareit/app/echoServer/controller/user"
	"shareit/app/echoServer/identity"
)

type C struct {
	User    *user.Controller
	Item    *item.Controller
	Booking *booking.Controller
	Request *request.Controller

	// ServiceTokenSecret, when set, requires every request to carry a
	// bearer token signed by the gateway.
	ServiceTokenSecret string
}

func Register(e *echo.Echo, c C) {
	root := e.Group("")
	if c.ServiceTokenSecret != "" {
		root.Use(echojwt.WithConfig(echojwt.Config{
			SigningKey: []byte(c.ServiceTokenSecret),
		}))
	}

	// Users carry no identity header: the user record itself is the subject.
	users := root.Group("/users")
	users.POST("", c.User.Create)
	users.GET("", c.User.List)
	users.GET("/:id", c.User.ByID)
	users.PATCH("/:id", c.User.Update)
	users.DELETE("/:id", c.User.Delete)

	items := root.Group("/items", identity.Require())
	items.POST("", c.Item.Create)
	items.GET("", c.Item.ByOwner)
	items.GET("/search", c.Item.Search)
	items.GET("/:id", c.Item.ByID)
	items.PATCH("/:id", c.Item.Update)
	items.DELETE("/:id", c.Item.Delete)
	items.POST("/:id/comment", c.Item.AddComment)

	bookings := root.Group("/bookings", identity.Require())
	bookings.POST("", c.Booking.Create)
	bookings.PUT("", c.Booking.Update)
	bookings.GET("", c.Booking.ListByBooker)
	bookings.GET("/owner", c.Booking.ListByOwner)
	bookings.GET("/:id", c.Booking.ByID)
	bookings.PATCH("/:id", c.Booking.Decide)
	bookings.DELETE("/:id", c.Booking.Delete)

	requests := root.Group("/requests", identity.Require())
	requests.POST("", c.Request.Create)
	requests.PUT("", c.Request.Update)
	requests.GET("", c.Request.ByRequestor)
	requests.GET("/all", c.Request.Others)
	requests.GET("/:id", c.Request.ByID)
	requests.DELETE("/:id", c.Request.Delete)
}
