package app

// Config describes user-provided application options.
type Config struct {
	// Root is the directory the filesystem provider serves.
	Root string
	// CacheFile is the SQLite listing cache path; empty disables caching.
	CacheFile string
	// Watch enables filesystem invalidation watching.
	Watch bool
	// MaxEntries caps the number of children shown per folder ring.
	MaxEntries int
	// CenterRadius is the close-zone radius in points.
	CenterRadius float64
	// RingThickness is the radial thickness of an expanded ring.
	RingThickness float64
	// ShowFooter enables the footer hint row.
	ShowFooter bool
	// Verbose prints success messages for actions.
	Verbose bool
}
