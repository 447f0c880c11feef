package session

import "errors"

var (
	// ErrNotConfigured means the identity service endpoint is missing; all
	// auth operations short-circuit without touching the network.
	ErrNotConfigured = errors.New("identity service is not configured")

	// ErrNoSession is the Bootstrap result when no persisted session exists.
	ErrNoSession = errors.New("no persisted session")

	// ErrInvalidCredentials is user-displayable: wrong email or password.
	ErrInvalidCredentials = errors.New("Invalid email or password. Please try again.")

	// ErrDuplicateEmail is distinct from generic failure so callers can
	// suggest signing in instead.
	ErrDuplicateEmail = errors.New("This email is already registered. Please log in instead.")

	ErrInvalidEmail  = errors.New("Please enter a valid email address")
	ErrShortPassword = errors.New("Password must be at least 6 characters")
	ErrShortName     = errors.New("Name must be at least 2 characters")
	ErrInvalidRole   = errors.New("Role must be admin, faculty or student")
)
