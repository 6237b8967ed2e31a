package internal

import (
	"bytes"
	"sync"
)

// bufferPool holds scratch buffers for snapshot encoding.
var bufferPool = sync.Pool{
	New: func() any {
		return bytes.NewBuffer(make([]byte, 0, 256))
	},
}

// GetBuffer returns an empty buffer from the pool.
func GetBuffer() *bytes.Buffer {
	buf := bufferPool.Get().(*bytes.Buffer)
	buf.Reset()
	return buf
}

// PutBuffer returns buf to the pool. Buffers grown past 64 KiB are dropped instead of being
// kept alive by the pool.
func PutBuffer(buf *bytes.Buffer) {
	if buf.Cap() > 64<<10 {
		return
	}
	bufferPool.Put(buf)
}
