package utils

import (
	"errors"
	"fmt"
)

var ErrorRecordNotFound = errors.New("record not found")

// User-facing errors. ErrorInvalidCredentials deliberately covers both
// "no such email" and "wrong password" so responses don't reveal which
// addresses are registered.
var (
	ErrorDuplicateAccount    = errors.New("an account with this email already exists")
	ErrorInvalidCredentials  = errors.New("invalid email or password")
	ErrorInvalidRange        = errors.New("start date must not be after end date")
	ErrorReferentialMismatch = errors.New("product does not belong to this shop")
)

// ErrorStoreUnavailable marks database/transport failures so handlers can
// map them to 503 with errors.Is.
var ErrorStoreUnavailable = errors.New("store unavailable")

// StoreUnavailable tags a database/transport failure with its cause.
func StoreUnavailable(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %v", ErrorStoreUnavailable, err)
}

func ErrorPanic(err error) {
	if err != nil {
		panic(err)
	}
}
