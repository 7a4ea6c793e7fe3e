package echoServer_test

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"shareit/app/echoServer"
	bookingctrl "shareit/app/echoServer/controller/booking"
	itemctrl "shareit/app/echoServer/controller/item"
	requestctrl "shareit/app/echoServer/controller/request"
	userctrl "shareit/app/echoServer/controller/user"
	"shareit/app/echoServer/identity"
	"shareit/app/echoServer/validation"
	bookingrepo "shareit/repository/booking"
	commentrepo "shareit/repository/comment"
	itemrepo "shareit/repository/item"
	"shareit/repository/repotest"
	requestrepo "shareit/repository/request"
	userrepo "shareit/repository/user"
	bookingsvc "shareit/service/booking"
	commentsvc "shareit/service/comment"
	itemsvc "shareit/service/item"
	requestsvc "shareit/service/request"
	usersvc "shareit/service/user"
	"shareit/util/token"
)

func newServer(t *testing.T, secret string) *echo.Echo {
	t.Helper()
	db := repotest.NewDB(t)
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	ur := userrepo.New(db)
	ir := itemrepo.New(db)
	br := bookingrepo.New(db)
	rr := requestrepo.New(db)
	cr := commentrepo.New(db)

	us := usersvc.New(ur)
	is := itemsvc.New(ir, ur, br, cr)
	bs := bookingsvc.New(db, br, ur, ir)
	rs := requestsvc.New(rr, ur, ir)
	cs := commentsvc.New(cr, ur, ir, br)

	v := validator.New()
	e := echo.New()
	e.Validator = validation.New()
	e.JSONSerializer = echoServer.JSONSerializer{}

	echoServer.Register(e, echoServer.C{
		User:    &userctrl.Controller{Svc: us, V: v, Log: log},
		Item:    &itemctrl.Controller{Svc: is, Comments: cs, V: v, Log: log},
		Booking: &bookingctrl.Controller{Svc: bs, V: v, Log: log},
		Request: &requestctrl.Controller{Svc: rs, V: v, Log: log},

		ServiceTokenSecret: secret,
	})
	return e
}

func call(e *echo.Echo, method, path, body string, callerID string) *httptest.ResponseRecorder {
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rd)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if callerID != "" {
		req.Header.Set(identity.Header, callerID)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestUserLifecycle(t *testing.T) {
	e := newServer(t, "")

	rec := call(e, http.MethodPost, "/users", `{"name":"alice","email":"a@example.com"}`, "")
	require.Equal(t, http.StatusCreated, rec.Code)
	require.Contains(t, rec.Body.String(), `"id":1`)

	// duplicate email
	rec = call(e, http.MethodPost, "/users", `{"name":"other","email":"a@example.com"}`, "")
	require.Equal(t, http.StatusConflict, rec.Code)

	rec = call(e, http.MethodPatch, "/users/1", `{"name":"alicia"}`, "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "alicia")

	rec = call(e, http.MethodGet, "/users", "", "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = call(e, http.MethodDelete, "/users/1", "", "")
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = call(e, http.MethodGet, "/users/1", "", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestBookingFlow(t *testing.T) {
	e := newServer(t, "")

	require.Equal(t, http.StatusCreated,
		call(e, http.MethodPost, "/users", `{"name":"owner","email":"o@example.com"}`, "").Code)
	require.Equal(t, http.StatusCreated,
		call(e, http.MethodPost, "/users", `{"name":"booker","email":"b@example.com"}`, "").Code)

	rec := call(e, http.MethodPost, "/items", `{"name":"Drill","description":"cordless","available":true}`, "1")
	require.Equal(t, http.StatusCreated, rec.Code)

	start := time.Now().UTC().Add(time.Hour).Format(time.RFC3339)
	end := time.Now().UTC().Add(2 * time.Hour).Format(time.RFC3339)
	rec = call(e, http.MethodPost, "/bookings",
		`{"item_id":1,"start":"`+start+`","end":"`+end+`"}`, "2")
	require.Equal(t, http.StatusCreated, rec.Code)
	require.Contains(t, rec.Body.String(), "WAITING")

	// only the owner decides
	rec = call(e, http.MethodPatch, "/bookings/1?approved=true", "", "2")
	require.Equal(t, http.StatusForbidden, rec.Code)

	rec = call(e, http.MethodPatch, "/bookings/1?approved=true", "", "1")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "APPROVED")

	// second decision is refused
	rec = call(e, http.MethodPatch, "/bookings/1?approved=false", "", "1")
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = call(e, http.MethodGet, "/bookings?state=ALL", "", "2")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = call(e, http.MethodGet, "/bookings/owner?state=FUTURE", "", "1")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "Drill")
}

func TestIdentityHeaderRequired(t *testing.T) {
	e := newServer(t, "")

	rec := call(e, http.MethodGet, "/items", "", "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), identity.Header)
}

func TestServiceTokenGuard(t *testing.T) {
	e := newServer(t, "topsecret")

	rec := call(e, http.MethodGet, "/users", "", "")
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	tok, err := token.Issue("topsecret", 0, time.Minute)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/users", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	out := httptest.NewRecorder()
	e.ServeHTTP(out, req)
	require.Equal(t, http.StatusOK, out.Code)
}

func TestSearchAndRequests(t *testing.T) {
	e := newServer(t, "")

	require.Equal(t, http.StatusCreated,
		call(e, http.MethodPost, "/users", `{"name":"alice","email":"a@example.com"}`, "").Code)
	require.Equal(t, http.StatusCreated,
		call(e, http.MethodPost, "/users", `{"name":"bob","email":"b@example.com"}`, "").Code)

	rec := call(e, http.MethodPost, "/requests", `{"description":"need a drill"}`, "2")
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = call(e, http.MethodPost, "/items",
		`{"name":"Drill","description":"cordless","available":true,"request_id":1}`, "1")
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = call(e, http.MethodGet, "/items/search?text=drill", "", "2")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "Drill")

	// blank search finds nothing
	rec = call(e, http.MethodGet, "/items/search?text=", "", "2")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "[]\n", rec.Body.String())

	// the request now shows the offered item
	rec = call(e, http.MethodGet, "/requests/1", "", "2")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "Drill")

	// the other board excludes one's own postings
	rec = call(e, http.MethodGet, "/requests/all", "", "2")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "[]\n", rec.Body.String())

	rec = call(e, http.MethodGet, "/requests/all", "", "1")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "need a drill")
}
