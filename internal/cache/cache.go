package cache

// Key builds a namespaced cache key. Keys are versioned so a change to the
// static tables can invalidate old entries by bumping the version.
func Key(namespace, text string) string {
	return "deserts:v1:" + namespace + ":" + text
}
