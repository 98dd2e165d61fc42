package plugin

// Dispatch calls fn on every registered plugin implementing hook H and
// collects the results. Like most hook systems, the last registered plugin
// runs first: results are in reverse registration order. Callers that need
// registration order reverse the slice.
func Dispatch[H any, R any](m *Manager, fn func(H) R) []R {
	plugins := m.Plugins()
	var results []R
	for i := len(plugins) - 1; i >= 0; i-- {
		if h, ok := plugins[i].(H); ok {
			results = append(results, fn(h))
		}
	}
	return results
}

// Each calls fn on every registered plugin implementing hook H, in
// registration order. It is meant for hooks whose result is not collected.
func Each[H any](m *Manager, fn func(H)) int {
	n := 0
	for _, p := range m.Plugins() {
		if h, ok := p.(H); ok {
			fn(h)
			n++
		}
	}
	return n
}

// Reverse reverses s in place and returns it.
func Reverse[T any](s []T) []T {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
	return s
}
