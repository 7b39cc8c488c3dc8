package gamerapi

import (
	"errors"
	"fmt"

	"github.com/valyala/fasthttp"
)

// StatusError is a non-2xx response from the store. The store has no
// structured error schema; the status code is all the client can rely on.
type StatusError struct {
	Status int
	Body   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("gamer api error: status=%d body=%s", e.Status, e.Body)
}

// IsConflict reports whether err is the store rejecting a write on a
// uniqueness constraint.
func IsConflict(err error) bool {
	var se *StatusError
	return errors.As(err, &se) && se.Status == fasthttp.StatusConflict
}

// IsNotFound reports whether err is a 404 from the store.
func IsNotFound(err error) bool {
	var se *StatusError
	return errors.As(err, &se) && se.Status == fasthttp.StatusNotFound
}
