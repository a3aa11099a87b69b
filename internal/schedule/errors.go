package schedule

type Error string

const (
	ErrInvalidDateReference Error = "invalid date reference - e.g. 2026-01-10"
)

func (e Error) Error() string {
	return string(e)
}
