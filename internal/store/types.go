package store

// StorageError reports a failed database operation. Its message is the raw
// driver message so callers can surface it unchanged.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return e.Err.Error()
}

func (e *StorageError) Unwrap() error {
	return e.Err
}
