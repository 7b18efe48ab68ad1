package events

import "github.com/atomicstack/radial-shell/internal/logging"

type EngineTracer struct{}

type PointerTracer struct{}

var (
	Engine  = EngineTracer{}
	Pointer = PointerTracer{}
)

func (EngineTracer) ShowRoot(snapshot string, count int) {
	logging.Trace("engine.show-root", map[string]interface{}{"snapshot": snapshot, "count": count})
}

func (EngineTracer) Expand(level, index int, nodeID string, children int) {
	logging.Trace("engine.expand", map[string]interface{}{
		"level":    level,
		"index":    index,
		"node":     nodeID,
		"children": children,
	})
}

func (EngineTracer) NavigateBegin(level, index int, nodeID string, token uint64) {
	logging.Trace("engine.navigate-begin", map[string]interface{}{
		"level": level,
		"index": index,
		"node":  nodeID,
		"token": token,
	})
}

func (EngineTracer) NavigateBlocked(level, index int) {
	logging.Trace("engine.navigate-blocked", map[string]interface{}{"level": level, "index": index})
}

func (EngineTracer) NavigateComplete(token uint64, children int) {
	logging.Trace("engine.navigate-complete", map[string]interface{}{"token": token, "children": children})
}

func (EngineTracer) NavigateStale(token uint64, reason string) {
	logging.Trace("engine.navigate-stale", map[string]interface{}{"token": token, "reason": reason})
}

func (EngineTracer) Collapse(level int, depth int) {
	logging.Trace("engine.collapse", map[string]interface{}{"level": level, "depth": depth})
}

func (EngineTracer) Reset() {
	logging.Trace("engine.reset", nil)
}

func (PointerTracer) Hover(level, index int, nodeID string) {
	logging.Trace("pointer.hover", map[string]interface{}{"level": level, "index": index, "node": nodeID})
}

func (PointerTracer) BoundaryCross(level, index int, nodeID string) {
	logging.Trace("pointer.boundary-cross", map[string]interface{}{"level": level, "index": index, "node": nodeID})
}

func (PointerTracer) Dismiss() {
	logging.Trace("pointer.dismiss", nil)
}
