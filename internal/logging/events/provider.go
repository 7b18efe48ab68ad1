package events

import "github.com/atomicstack/radial-shell/internal/logging"

type ProviderTracer struct{}

type CacheTracer struct{}

var (
	Provider = ProviderTracer{}
	Cache    = CacheTracer{}
)

func (ProviderTracer) Registered(id, instance string) {
	logging.Trace("provider.registered", map[string]interface{}{"id": id, "instance": instance})
}

// Missing records a provider-registration bug: a node flagged for
// dynamic loading referenced a provider id nobody registered.
func (ProviderTracer) Missing(id, nodeID string) {
	logging.Trace("provider.missing", map[string]interface{}{"id": id, "node": nodeID})
}

func (ProviderTracer) Loaded(id, nodeID string, count int) {
	logging.Trace("provider.loaded", map[string]interface{}{"id": id, "node": nodeID, "count": count})
}

func (ProviderTracer) LoadError(id, nodeID string, err error) {
	payload := map[string]interface{}{"id": id, "node": nodeID}
	if err != nil {
		payload["error"] = err.Error()
	}
	logging.Trace("provider.load-error", payload)
}

func (CacheTracer) Hit(path string, count int) {
	logging.Trace("cache.hit", map[string]interface{}{"path": path, "count": count})
}

func (CacheTracer) Miss(path string) {
	logging.Trace("cache.miss", map[string]interface{}{"path": path})
}

func (CacheTracer) Store(path string, count int) {
	logging.Trace("cache.store", map[string]interface{}{"path": path, "count": count})
}

func (CacheTracer) Invalidate(path string) {
	logging.Trace("cache.invalidate", map[string]interface{}{"path": path})
}

func (CacheTracer) WatchError(err error) {
	if err == nil {
		return
	}
	logging.Trace("cache.watch-error", map[string]interface{}{"error": err.Error()})
}
