package domain

type NoHistoryError struct{}

func (e NoHistoryError) Error() string {
	return "no tool invocations recorded"
}

func IsNoHistoryError(err error) bool {
	_, ok := err.(NoHistoryError)
	return ok
}
