package storage

// records is the ordered, position-addressed sequence both stores share.
type records[T any] []T

func (r records[T]) get(index int) (T, error) {
	if index < 0 || index >= len(r) {
		var zero T
		return zero, &IndexError{Index: index, Count: len(r)}
	}
	return r[index], nil
}

func (r *records[T]) remove(index int) (T, error) {
	item, err := r.get(index)
	if err != nil {
		return item, err
	}
	s := *r
	copy(s[index:], s[index+1:])
	var zero T
	s[len(s)-1] = zero
	*r = s[:len(s)-1]
	return item, nil
}
