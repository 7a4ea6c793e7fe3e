package bookingrepo

import (
	"time"

	"github.com/doug-martin/goqu/v9"

	"shareit/apperr"
	"shareit/model"
)

// StatePredicate maps a list state onto a predicate over the bookings
// table. ALL yields nil (no restriction). CURRENT means
// start <= now < end; PAST means end < now; FUTURE means start > now;
// WAITING and REJECTED match the status regardless of time.
func StatePredicate(state model.State, now time.Time) (goqu.Expression, error) {
	switch state {
	case model.StateAll:
		return nil, nil
	case model.StateCurrent:
		return goqu.And(
			goqu.C("start_date").Lte(now),
			goqu.C("end_date").Gt(now),
		), nil
	case model.StatePast:
		return goqu.C("end_date").Lt(now), nil
	case model.StateFuture:
		return goqu.C("start_date").Gt(now), nil
	case model.StateWaiting:
		return goqu.C("status").Eq(string(model.StatusWaiting)), nil
	case model.StateRejected:
		return goqu.C("status").Eq(string(model.StatusRejected)), nil
	}
	return nil, apperr.Invalid("unknown state %q", string(state))
}
