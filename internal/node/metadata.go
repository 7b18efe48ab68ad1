package node

// Metadata is the closed set of typed payloads a provider can attach to
// a node. Each node kind gets its own small struct instead of a
// stringly-typed map.
type Metadata interface {
	metadata()
}

// FolderMeta tags a node backed by a filesystem directory.
type FolderMeta struct {
	Path      string
	ItemCount int // optional hint, 0 when unknown
}

// FileMeta tags a node backed by a regular file.
type FileMeta struct {
	Path string
	Size int64
}

// AppMeta tags a launchable application node.
type AppMeta struct {
	BundleID string
}

func (FolderMeta) metadata() {}
func (FileMeta) metadata()   {}
func (AppMeta) metadata()    {}

// ContentPath returns the opaque content identifier a metadata payload
// carries, if any. It keys cache lookups and dynamic loading.
func ContentPath(m Metadata) (string, bool) {
	switch meta := m.(type) {
	case FolderMeta:
		return meta.Path, meta.Path != ""
	case FileMeta:
		return meta.Path, meta.Path != ""
	default:
		return "", false
	}
}
