package loader

// Loaded reports whether kind has been constructed successfully.
func (l *Loader) Loaded(kind Kind) bool {
	_, ok := l.instance(kind)
	return ok
}
