package internal

import (
	"bytes"
	"testing"
)

func TestGetBufferIsEmpty(t *testing.T) {
	buf := GetBuffer()
	buf.WriteString("dirty")
	PutBuffer(buf)

	if got := GetBuffer(); got.Len() != 0 {
		t.Fatalf("expected an empty buffer, got %q", got.String())
	}
}

func TestPutBufferDropsLargeBuffers(t *testing.T) {
	PutBuffer(bytes.NewBuffer(make([]byte, 0, 1<<20)))
	if buf := GetBuffer(); buf.Cap() > 64<<10 {
		t.Fatalf("expected large buffers not to be pooled, got capacity %d", buf.Cap())
	}
}
