package registration

type Error string

const (
	ErrPatientNotFound      Error = "patient not found"
	ErrInvalidIdentifier    Error = "invalid patient identifier"
	ErrInvalidDateReference Error = "invalid date reference - e.g. 2026-01-10"
)

func (e Error) Error() string {
	return string(e)
}
