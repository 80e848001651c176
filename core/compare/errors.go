package compare

// InputError signals an invalid comparison request. It is surfaced
// synchronously, before any computation starts.
type InputError struct {
	msg string
}

func (e *InputError) Error() string {
	return e.msg
}

func newInputError(msg string) error {
	return &InputError{msg: msg}
}
