// Package hoststatus interprets the status every host capability response
// carries.
package hoststatus

import (
	"errors"
	"fmt"

	"github.com/risparfinance/camus"
)

// Host status codes.
const (
	OK       = int32(200)
	Partial  = int32(206)
	BadInput = int32(400)
	Missing  = int32(404)
	Error    = int32(500)
)

// Validate maps a host status to an error. present is false when the
// response carried no status at all. callErr is the error the host call
// itself returned alongside a payload, if any.
func Validate(code int32, msg string, present bool, callErr error) error {
	if !present {
		if callErr != nil {
			return errors.Join(camus.ErrHostCall, callErr, camus.ErrHostResponseInvalid)
		}
		return camus.ErrHostResponseInvalid
	}

	switch code {
	case OK, Partial:
		return nil
	case BadInput, Missing, Error:
		detail := fmt.Sprintf("host status %d", code)
		if msg != "" {
			detail = fmt.Sprintf("%s: %s", detail, msg)
		}
		if callErr != nil {
			return errors.Join(camus.ErrHostCall, callErr, camus.ErrHostError, errors.New(detail))
		}
		return errors.Join(camus.ErrHostError, errors.New(detail))
	default:
		statusErr := fmt.Errorf("unexpected host status code %d", code)
		if callErr != nil {
			return errors.Join(camus.ErrHostCall, callErr, camus.ErrHostResponseInvalid, statusErr)
		}
		return errors.Join(camus.ErrHostResponseInvalid, statusErr)
	}
}
