package types

// ProductID identifies a tracked product in the product directory
type ProductID string

func (x ProductID) String() string { return string(x) }

// SnapshotID identifies a single release snapshot
type SnapshotID string

func (x SnapshotID) String() string { return string(x) }

// Version is the service version, overridden at build time via ldflags
var Version = "dev"
