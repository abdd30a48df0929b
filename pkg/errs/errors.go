package errs

import (
	"errors"
	"net/http"
)

const (
	ErrStatusInternalServer         = http.StatusInternalServerError
	ErrStatusClient                 = http.StatusBadRequest
	ErrStatusUnauthorized           = http.StatusUnauthorized
	ErrStatusNotFound               = http.StatusNotFound
	ErrStatusMethodNotAllowed       = http.StatusMethodNotAllowed
	ErrStatusFileSizeExceedingLimit = http.StatusRequestEntityTooLarge
	ErrStatusBadGateway             = http.StatusBadGateway
)

var (
	ErrInternalServer          = errors.New("Internal server error")
	ErrClient                  = errors.New("Bad request")
	ErrValidation              = errors.New("Validation failed")
	ErrNotFound                = errors.New("Resource not found")
	ErrMethodNotAllowed        = errors.New("Method not allowed")
	ErrInvalidCredentialsEmail = errors.New("Email or password is incorrect")
	ErrNotAnImage              = errors.New("Uploaded file is not an image")
	ErrImageRequired           = errors.New("Image file is required")
	ErrFileSizeExceedingLimit  = errors.New("Image size must not exceed 150KB")
	ErrBadGateway              = errors.New("Image backup to cloud storage failed")

	ErrVersionConflict          = errors.New("Version with this slug or version number already exists")
	ErrVersionNotFound          = errors.New("Flagship event version not found")
	ErrNoCurrentVersion         = errors.New("No active flagship event version found")
	ErrArchivedVersionImmutable = errors.New("Archived versions cannot be updated")
	ErrActiveVersionDelete      = errors.New("Active versions cannot be deleted")
	ErrInvalidDateRange         = errors.New("start_date must be before end_date")
)

var errorMap = map[error]int{
	ErrInternalServer:          ErrStatusInternalServer,
	ErrClient:                  ErrStatusClient,
	ErrValidation:              ErrStatusClient,
	ErrNotFound:                ErrStatusNotFound,
	ErrMethodNotAllowed:        ErrStatusMethodNotAllowed,
	ErrInvalidCredentialsEmail: ErrStatusUnauthorized,
	ErrNotAnImage:              ErrStatusClient,
	ErrImageRequired:           ErrStatusClient,
	ErrFileSizeExceedingLimit:  ErrStatusFileSizeExceedingLimit,
	ErrBadGateway:              ErrStatusBadGateway,

	ErrVersionConflict:          ErrStatusClient,
	ErrVersionNotFound:          ErrStatusNotFound,
	ErrNoCurrentVersion:         ErrStatusNotFound,
	ErrArchivedVersionImmutable: ErrStatusClient,
	ErrActiveVersionDelete:      ErrStatusClient,
	ErrInvalidDateRange:         ErrStatusClient,
}

// Resolve returns the registered sentinel that err wraps, or ErrInternalServer
// when err is not one of ours.
func Resolve(err error) error {
	if _, ok := errorMap[err]; ok {
		return err
	}

	for sentinel := range errorMap {
		if errors.Is(err, sentinel) {
			return sentinel
		}
	}

	return ErrInternalServer
}

func GetErrorStatusCode(err error) int {
	return errorMap[Resolve(err)]
}
