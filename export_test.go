package mtree

// Check exposes the consistency checker to external tests.
func (t *Tree[T]) Check() error { return t.check() }
