package sentinel

var _ error = Error("")

// Error is a constant-friendly error type. Two Error values match under
// errors.Is when their text is equal, because the type is comparable and
// errors.Is falls back to ==.
type Error string

// Error implements the error interface.
func (e Error) Error() string {
	return string(e)
}
