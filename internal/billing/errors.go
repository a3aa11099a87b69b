package billing

type Error string

const (
	ErrVisitNotFound       Error = "visit not found"
	ErrVisitAlreadySettled Error = "visit already settled and departed"
)

func (e Error) Error() string {
	return string(e)
}
