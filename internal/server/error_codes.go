package server

const (
	// Validation (1xxx)
	ErrCodeInvalidArgument  = 1000
	ErrCodeInvalidJSON      = 1001
	ErrCodeRequestTooLarge  = 1002
	ErrCodeInvalidQuery     = 1003
	ErrCodeInvalidID        = 1004
	ErrCodeValidationFailed = 1015

	// Domain state (2xxx)
	ErrCodeNotFound          = 2000
	ErrCodeTaskNotFound      = 2001
	ErrCodeDeveloperNotFound = 2002
	ErrCodeSprintNotFound    = 2003

	// Access (3xxx)
	ErrCodeForbiddenOrigin = 3002

	// Internal/system (4xxx)
	ErrCodeInternal     = 4001
	ErrCodeStoreFailure = 4002
)

func notFoundCodeFor(entityName string) int {
	switch entityName {
	case "tasks":
		return ErrCodeTaskNotFound
	case "developers":
		return ErrCodeDeveloperNotFound
	case "sprints":
		return ErrCodeSprintNotFound
	default:
		return ErrCodeNotFound
	}
}

func defaultErrorCodeByStatus(status int) int {
	switch status {
	case 400:
		return ErrCodeInvalidArgument
	case 403:
		return ErrCodeForbiddenOrigin
	case 404:
		return ErrCodeNotFound
	case 500:
		return ErrCodeInternal
	default:
		return 0
	}
}
