// Package repository implements raw-SQL persistence over MySQL. Sentinel
// errors defined here let the service layer distinguish failure scenarios
// without inspecting driver-specific error strings at every call site.
package repository

import "errors"

// ErrEmailExists is returned by UserRepo.Create when the email column's
// unique constraint rejects the insert. The auth service translates it
// into a conflict error for the client.
var ErrEmailExists = errors.New("email already exists")
