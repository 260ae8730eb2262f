package events

// Event represents an arbitrary analysis event passed on the bus. The
// concrete types are the *Event structs in this package.
type Event any
