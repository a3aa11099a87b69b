package reporting

type Error string

const (
	ErrUnknownStatisticsType Error = "unknown statistics type - expected daily, department or doctor"
	ErrInvalidDateReference  Error = "invalid date reference - e.g. 2026-01-10"
)

func (e Error) Error() string {
	return string(e)
}
