package structpages

import (
	"bytes"
	"net/http"
	"sync"
)

var bufferPool = sync.Pool{
	New: func() any {
		return new(bytes.Buffer)
	},
}

func getBuffer() *bytes.Buffer {
	return bufferPool.Get().(*bytes.Buffer)
}

func releaseBuffer(b *bytes.Buffer) {
	b.Reset()
	bufferPool.Put(b)
}

// buffered holds back the body until close, so that a render error can still
// be answered with an error status.
type buffered struct {
	http.ResponseWriter
	buf *bytes.Buffer
}

func newBuffered(w http.ResponseWriter) *buffered {
	return &buffered{ResponseWriter: w, buf: getBuffer()}
}

func (w *buffered) Write(b []byte) (int, error) {
	return w.buf.Write(b)
}

// discard drops the buffered body.
func (w *buffered) discard() {
	releaseBuffer(w.buf)
	w.buf = nil
}

func (w *buffered) close() error {
	defer w.discard()
	_, err := w.ResponseWriter.Write(w.buf.Bytes())
	return err
}
