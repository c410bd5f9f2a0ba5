package intl

import "errors"

var (
	// ErrNotInstalled is returned when a scoped composer is requested while
	// no root instance is reachable.
	ErrNotInstalled = errors.New("intl: no root instance installed")

	// ErrMustBeCalledInSetup is returned when a scoped composer is requested
	// outside a valid scope context.
	ErrMustBeCalledInSetup = errors.New("intl: must be called inside a setup context")

	// ErrNotAvailableInLegacyMode is returned when local scope features are
	// requested from a root configured in legacy mode.
	ErrNotAvailableInLegacyMode = errors.New("intl: local scope is not available in legacy mode")

	// ErrComposerDisposed marks use of a composer after its scope was torn
	// down. It is raised as a panic: calling a dead composer is a programmer
	// error, not a runtime data gap.
	ErrComposerDisposed = errors.New("intl: composer used after dispose")

	// ErrEmptyLocale rejects empty locale identifiers at construction time.
	ErrEmptyLocale = errors.New("intl: locale cannot be empty")
)
