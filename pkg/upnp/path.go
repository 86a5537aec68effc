package upnp

import "strings"

// GetPath returns the node's route path: the '/'-joined targets of its
// ancestor chain from root to the node inclusive, with a leading '/'.
// The path is recomputed on every call rather than cached. Targets may
// legally change only before wiring; mutating one afterwards produces
// stale routes.
func GetPath(o Object) string {
	var targets []string
	for cur := o; cur != nil; cur = cur.Parent() {
		targets = append(targets, cur.Target())
	}

	var b strings.Builder
	for i := len(targets) - 1; i >= 0; i-- {
		b.WriteByte('/')
		b.WriteString(targets[i])
	}
	return b.String()
}

// HandlerPath returns the route path for a named handler below the
// node: GetPath(o) + "/" + name.
func HandlerPath(o Object, name string) string {
	return GetPath(o) + "/" + name
}

// EncodePath percent-encodes the reserved path characters '/', '?',
// '=', '&' and '+' so a path can be embedded as a value. All other
// bytes pass through unchanged. '+' maps to "%20" to match the decode
// side of form-encoded queries. Use this when embedding a path, not
// when registering a route.
func EncodePath(path string) string {
	var b strings.Builder
	b.Grow(len(path))
	for i := 0; i < len(path); i++ {
		switch path[i] {
		case '/':
			b.WriteString("%2F")
		case '?':
			b.WriteString("%3F")
		case '=':
			b.WriteString("%3D")
		case '&':
			b.WriteString("%26")
		case '+':
			b.WriteString("%20")
		default:
			b.WriteByte(path[i])
		}
	}
	return b.String()
}
