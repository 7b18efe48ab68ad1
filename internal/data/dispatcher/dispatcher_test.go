package dispatcher

import (
	"testing"

	"github.com/atomicstack/radial-shell/internal/cache"
)

func TestHandleIgnoresUndisplayedDirs(t *testing.T) {
	d := New()
	res := d.Handle(cache.Event{Dir: "/somewhere"})
	if res.Refresh {
		t.Fatalf("undisplayed directory must not request a refresh")
	}
}

func TestHandleRequestsRefreshForDisplayedRing(t *testing.T) {
	d := New()
	d.SetDisplayed(map[string]int{"/home/u/docs": 1, "/home/u": 0})
	res := d.Handle(cache.Event{Dir: "/home/u/docs"})
	if !res.Refresh || res.Level != 1 {
		t.Fatalf("expected refresh of level 1, got %+v", res)
	}

	// The mapping is replaced wholesale when the stack changes.
	d.SetDisplayed(map[string]int{"/home/u": 0})
	res = d.Handle(cache.Event{Dir: "/home/u/docs"})
	if res.Refresh {
		t.Fatalf("stale mapping must not survive SetDisplayed")
	}
}
