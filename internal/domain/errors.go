package domain

type NoThreadError struct{}

func (e NoThreadError) Error() string {
	return "no previous threads found"
}

func IsNoThreadError(err error) bool {
	_, ok := err.(NoThreadError)
	return ok
}
