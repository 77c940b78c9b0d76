package models

// Identifiers are opaque integers, unique within their store for the life
// of a document. They are assigned from monotonic counters stored on
// UserData and never reused after deletion.

type TrackableID int

type ChartableID int

type ChartID int
