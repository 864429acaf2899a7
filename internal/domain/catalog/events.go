package catalog

import "time"

const (
	EventFiltersChanged = "FiltersChanged"
	EventFiltersCleared = "FiltersCleared"
)

type FiltersChanged struct {
	Criteria  Criteria  `json:"criteria"`
	Results   int       `json:"results"`
	ChangedAt time.Time `json:"changed_at"`
}

type FiltersCleared struct {
	ClearedAt time.Time `json:"cleared_at"`
}
