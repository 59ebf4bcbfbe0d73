package telemetry

// API is what components report problems and counts through, tests swap in
// MemoryAPI to assert on them.
type API interface {
	// ReportBroken reports a component that broke in a way someone has to fix,
	// like the portal changing the markup of its login form.
	//
	// id names the component, not the line that broke: a failed login request
	// is `client.login`, further detail goes into params or a wrapped error.
	// ids are lowercase, underscores separate words of a component name and a
	// dot separates the component from its method.
	ReportBroken(id string, params ...any)

	// ReportWarning reports something unexpected that did not stop the
	// component from working. ids follow ReportBroken.
	ReportWarning(id string, params ...any)

	ReportDebug(msg string, params ...any)

	// ReportCount reports the size of something at this point in time, like the
	// number of results on a page. Counts are samples and must not be summed.
	ReportCount(id string, count int64)
}

// ScopedAPI prefixes every id with a namespace, usually the package name.
type ScopedAPI struct {
	prefix string
	inner  API
}

func NewScopedAPI(namespace string, inner API) ScopedAPI {
	return ScopedAPI{prefix: namespace + ": ", inner: inner}
}

func (s ScopedAPI) ReportBroken(id string, params ...any) {
	s.inner.ReportBroken(s.prefix+id, params...)
}

func (s ScopedAPI) ReportWarning(id string, params ...any) {
	s.inner.ReportWarning(s.prefix+id, params...)
}

func (s ScopedAPI) ReportDebug(msg string, params ...any) {
	s.inner.ReportDebug(s.prefix+msg, params...)
}

func (s ScopedAPI) ReportCount(id string, count int64) {
	s.inner.ReportCount(s.prefix+id, count)
}
