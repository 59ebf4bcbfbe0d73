package telemetry

import (
	"sync"
)

type Report struct {
	Kind   string
	Id     string
	Params []any
	Count  int64
}

// MemoryAPI records every report it receives, it is meant for asserting on
// telemetry in tests.
type MemoryAPI struct {
	mutex   sync.Mutex
	reports []Report
}

func (m *MemoryAPI) add(r Report) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.reports = append(m.reports, r)
}

func (m *MemoryAPI) ReportBroken(id string, params ...any) {
	m.add(Report{Kind: "broken", Id: id, Params: params})
}

func (m *MemoryAPI) ReportWarning(id string, params ...any) {
	m.add(Report{Kind: "warning", Id: id, Params: params})
}

func (m *MemoryAPI) ReportDebug(msg string, params ...any) {
	m.add(Report{Kind: "debug", Id: msg, Params: params})
}

func (m *MemoryAPI) ReportCount(id string, count int64) {
	m.add(Report{Kind: "count", Id: id, Count: count})
}

// Reports returns the reports of the given kind, all reports if kind is empty.
func (m *MemoryAPI) Reports(kind string) []Report {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	var out []Report
	for _, r := range m.reports {
		if kind != "" && r.Kind != kind {
			continue
		}
		out = append(out, r)
	}
	return out
}
