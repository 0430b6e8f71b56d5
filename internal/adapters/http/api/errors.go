package api

// healthError marks a db-health failure so writeFailure can render the
// {status,message} body instead of the generic {error} one.
type healthError struct {
	err error
}

func (e *healthError) Error() string { return e.err.Error() }
func (e *healthError) Unwrap() error { return e.err }
