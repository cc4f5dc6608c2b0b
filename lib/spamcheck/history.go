package spamcheck

import (
	"container/ring"
	"sync"
)

// LastDetections keeps track of last N detections, thread-safe.
// Used as history when no persistent storage configured.
type LastDetections struct {
	detections *ring.Ring
	size       int
	count      int
	lastID     int64
	lock       sync.RWMutex
}

// NewLastDetections creates new detections tracker, size is at least 1
func NewLastDetections(size int) *LastDetections {
	if size < 1 {
		size = 1
	}
	return &LastDetections{detections: ring.New(size), size: size}
}

// Push adds a detection to the history and returns its assigned id
func (h *LastDetections) Push(d Detection) int64 {
	h.lock.Lock()
	defer h.lock.Unlock()

	h.lastID++
	d.ID = h.lastID
	h.detections.Value = d
	h.detections = h.detections.Next()
	if h.count < h.size {
		h.count++
	}
	return d.ID
}

// Page returns detections newest first, page numbers start from 1
func (h *LastDetections) Page(page, perPage int) HistoryPage {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 10
	}

	h.lock.RLock()
	defer h.lock.RUnlock()

	all := make([]Detection, 0, h.count)
	h.detections.Do(func(v any) {
		if d, ok := v.(Detection); ok {
			all = append(all, d)
		}
	})
	// ring iterates oldest to newest starting from the current (next to write) position
	for i, j := 0, len(all)-1; i < j; i, j = i+1, j-1 {
		all[i], all[j] = all[j], all[i]
	}

	res := HistoryPage{History: []Detection{}, Total: len(all), Pages: Pages(len(all), perPage), CurrentPage: page}
	start := (page - 1) * perPage
	if start >= len(all) {
		return res
	}
	end := min(start+perPage, len(all))
	res.History = append(res.History, all[start:end]...)
	return res
}

// Size returns the capacity of the history
func (h *LastDetections) Size() int {
	return h.size
}
