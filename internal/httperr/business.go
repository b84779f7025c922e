package httperr

import "errors"

// BusinessError is a domain-rule failure identified by a stable code.
// Handlers match on the code to pick a status; everything else bubbles
// up as an internal or store error.
type BusinessError struct {
	Code string
}

func (e BusinessError) Error() string {
	return e.Code
}

func ErrBusiness(code string) error {
	return BusinessError{Code: code}
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}
