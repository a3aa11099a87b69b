package appointment

type Error string

const (
	ErrInvalidIdentifier Error = "invalid appointment identifier"
	ErrNotCancellable    Error = "appointment is not pending arrival"
)

func (e Error) Error() string {
	return string(e)
}
