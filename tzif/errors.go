package tzif

import (
	"errors"
	"fmt"
)

// Sentinel errors for the TZif reject conditions enumerated in spec §7.
var (
	ErrMagicMismatch                = errors.New("tzif: bad magic")
	ErrUnsupportedFileVersion       = errors.New("tzif: unsupported file version")
	ErrInvalidLength                = errors.New("tzif: truncated or malformed body")
	ErrInvalidFooter                = errors.New("tzif: invalid POSIX-TZ footer delimiter")
	ErrInvalidPosixTZ               = errors.New("tzif: malformed POSIX-TZ rule string")
	ErrInvalidDesignation           = errors.New("tzif: invalid designation string")
	ErrInvalidLeapSecond            = errors.New("tzif: leap second not on a UTC month boundary")
	ErrNoTransitions                = errors.New("tzif: no transitions and no rules")
	ErrTypeIndexOutOfBounds         = errors.New("tzif: local-time type index out of bounds")
	ErrWallStdUniversalDisagreement = errors.New("tzif: UT-indicated record not also standard-indicated")
	ErrTransitionsNotOrdered        = errors.New("tzif: transition timestamps not strictly increasing")
	ErrMissingStandardTime          = errors.New("tzif: no standard (non-DST) local-time type")
	ErrMissingVersionData           = errors.New("tzif: v2+ data block missing")
	ErrFieldLimitExceeded           = errors.New("tzif: header count exceeds implementation limit")
	ErrStdOrUniversalCountMismatch  = errors.New("tzif: standard/UT indicator count does not match type count")
)

// UnsupportedFileVersionError carries the offending version byte.
type UnsupportedFileVersionError struct {
	Version byte
}

func (e *UnsupportedFileVersionError) Error() string {
	return fmt.Sprintf("tzif: unsupported file version %q", string(e.Version))
}

func (e *UnsupportedFileVersionError) Unwrap() error { return ErrUnsupportedFileVersion }
