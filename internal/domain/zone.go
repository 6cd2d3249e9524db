package domain

import "strings"

// Zone is the closed set of performance classifications a product can land in.
type Zone string

const (
	ZoneOptimal        Zone = "OPTIMAL"
	ZoneOpportunity    Zone = "OPPORTUNITY"
	ZoneWorkInProgress Zone = "WORK_IN_PROGRESS"
)

// Zones lists every valid zone, in rule evaluation order.
func Zones() []Zone {
	return []Zone{ZoneOptimal, ZoneOpportunity, ZoneWorkInProgress}
}

// Valid reports whether z is one of the three known zones.
func (z Zone) Valid() bool {
	switch z {
	case ZoneOptimal, ZoneOpportunity, ZoneWorkInProgress:
		return true
	}
	return false
}

// ParseZone returns the zone for a given label (case-insensitive).
func ParseZone(label string) (Zone, bool) {
	z := Zone(strings.ToUpper(strings.TrimSpace(label)))
	return z, z.Valid()
}

// Level is the computation granularity of a classification pass.
type Level string

const (
	LevelAccount Level = "ACCOUNT"
	LevelProduct Level = "PRODUCT"
)

// Valid reports whether l is a known level.
func (l Level) Valid() bool {
	return l == LevelAccount || l == LevelProduct
}

// BlendsBrand reports whether sponsored-brand aggregates are folded into row
// totals at this level. Only the account-wide pass blends brand contributions;
// the product-filtered pass intentionally does not.
func (l Level) BlendsBrand() bool {
	return l == LevelAccount
}

// ParseLevel returns the level for a given label (case-insensitive).
func ParseLevel(label string) (Level, bool) {
	l := Level(strings.ToUpper(strings.TrimSpace(label)))
	return l, l.Valid()
}

// JobStatus represents the state of a zone computation job.
type JobStatus string

const (
	JobStatusPending   JobStatus = "pending"
	JobStatusRunning   JobStatus = "running"
	JobStatusCompleted JobStatus = "completed"
	JobStatusError     JobStatus = "error"
)
