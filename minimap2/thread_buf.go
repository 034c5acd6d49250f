package minimap2

/*
#include "minimap.h"
*/
import "C"

// maxBufUses bounds how many times a thread-local buffer is reused before
// it is freed and reinitialized, to bound long-lived allocations (spec §5:
// "recycled periodically, e.g. re-init every 15 uses").
const maxBufUses = 15

// threadBuf wraps one minimap2 mm_tbuf_t, which holds per-call scratch
// memory the aligner reuses across Map calls. Go has no stable thread
// identity to hang a true thread-local off of, so buffers are instead
// pooled with sync.Pool and handed back to whichever goroutine calls Map
// next; this preserves the "per-worker scratch, periodically recycled"
// behavior spec §5 describes without requiring a 1:1 goroutine-to-OS-thread
// mapping.
type threadBuf struct {
	buf  *C.mm_tbuf_t
	uses int
}

func newThreadBuf() *threadBuf {
	return &threadBuf{buf: C.mm_tbuf_init()}
}

// get returns the underlying mm_tbuf_t, recycling it first if it has
// exceeded maxBufUses.
func (t *threadBuf) get() *C.mm_tbuf_t {
	if t.uses >= maxBufUses {
		C.mm_tbuf_destroy(t.buf)
		t.buf = C.mm_tbuf_init()
		t.uses = 0
	}
	t.uses++
	return t.buf
}

func (t *threadBuf) destroy() {
	C.mm_tbuf_destroy(t.buf)
}
