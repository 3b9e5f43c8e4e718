package middleware

import (
	"io"
	"net/http"
	"strconv"
	"strings"
	"sync"

	"github.com/andybalholm/brotli"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"

	"serverhub/internal/types"
)

// CompressionPool manages compression writers with pooling
type CompressionPool struct {
	gzipPool sync.Pool
	brPool   sync.Pool
	zstdPool sync.Pool
}

// NewCompressionPool creates a pool producing writers at level.
// gzip levels above 9 are clamped.
func NewCompressionPool(level int) *CompressionPool {
	gzLevel := min(level, gzip.BestCompression)
	cp := &CompressionPool{}
	cp.gzipPool.New = func() any {
		w, err := gzip.NewWriterLevel(io.Discard, gzLevel)
		if err != nil {
			w = gzip.NewWriter(io.Discard)
		}
		return w
	}
	cp.brPool.New = func() any {
		return brotli.NewWriterLevel(io.Discard, level)
	}
	cp.zstdPool.New = func() any {
		enc, _ := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.EncoderLevelFromZstd(level)))
		return enc
	}
	return cp
}

// Get returns a writer for encoding that writes to w, and a release func that
// closes the writer and returns it to the pool
func (cp *CompressionPool) Get(encoding string, w io.Writer) (io.Writer, func() error) {
	switch encoding {
	case "br":
		br := cp.brPool.Get().(*brotli.Writer)
		br.Reset(w)
		return br, func() error {
			err := br.Close()
			cp.brPool.Put(br)
			return err
		}
	case "zstd":
		enc := cp.zstdPool.Get().(*zstd.Encoder)
		enc.Reset(w)
		return enc, func() error {
			err := enc.Close()
			cp.zstdPool.Put(enc)
			return err
		}
	case "gzip":
		gz := cp.gzipPool.Get().(*gzip.Writer)
		gz.Reset(w)
		return gz, func() error {
			err := gz.Close()
			cp.gzipPool.Put(gz)
			return err
		}
	}
	return nil, nil
}

// Compression creates compression middleware. The encoding is the first of
// the configured algorithms the client accepts.
func Compression(config *types.HubConfig) types.Middleware {
	cfg := config.Middleware.Compression
	pool := NewCompressionPool(cfg.Level)

	compressible := make(map[string]bool, len(cfg.Types))
	for _, t := range cfg.Types {
		compressible[t] = true
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Add("Vary", "Accept-Encoding")

			encoding := negotiateEncoding(r.Header.Get("Accept-Encoding"), cfg.Algorithms)
			if encoding == "" || r.Method == http.MethodHead {
				next.ServeHTTP(w, r)
				return
			}

			cw := &compressionWriter{
				ResponseWriter: w,
				pool:           pool,
				encoding:       encoding,
				compressible:   compressible,
			}
			defer cw.close()

			next.ServeHTTP(cw, r)
		})
	}
}

// negotiateEncoding picks the first algorithm accepted with a non-zero q value
func negotiateEncoding(acceptEncoding string, algorithms []string) string {
	if acceptEncoding == "" {
		return ""
	}

	accepted := make(map[string]bool)
	for _, part := range strings.Split(acceptEncoding, ",") {
		name, params, _ := strings.Cut(strings.TrimSpace(part), ";")
		name = strings.ToLower(strings.TrimSpace(name))
		q := 1.0
		if v, ok := strings.CutPrefix(strings.TrimSpace(params), "q="); ok {
			if parsed, err := strconv.ParseFloat(v, 64); err == nil {
				q = parsed
			}
		}
		accepted[name] = q > 0
	}

	for _, algo := range algorithms {
		if ok, listed := accepted[algo]; listed {
			if ok {
				return algo
			}
			continue
		}
		if wildcard, listed := accepted["*"]; listed && wildcard {
			return algo
		}
	}
	return ""
}

// compressionWriter decides on the first write whether the response body is
// compressed, based on its status and content type
type compressionWriter struct {
	http.ResponseWriter
	pool         *CompressionPool
	encoding     string
	compressible map[string]bool

	decided bool
	writer  io.Writer
	release func() error
}

func (cw *compressionWriter) WriteHeader(code int) {
	if !cw.decided {
		cw.decide(code)
	}
	cw.ResponseWriter.WriteHeader(code)
}

func (cw *compressionWriter) Write(b []byte) (int, error) {
	if !cw.decided {
		if cw.Header().Get("Content-Type") == "" {
			cw.Header().Set("Content-Type", http.DetectContentType(b))
		}
		cw.WriteHeader(http.StatusOK)
	}
	if cw.writer != nil {
		return cw.writer.Write(b)
	}
	return cw.ResponseWriter.Write(b)
}

func (cw *compressionWriter) Flush() {
	if f, ok := cw.writer.(interface{ Flush() error }); ok {
		f.Flush()
	}
	if f, ok := cw.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

func (cw *compressionWriter) decide(code int) {
	cw.decided = true

	h := cw.Header()
	if code < http.StatusOK || code == http.StatusNoContent || code == http.StatusPartialContent || code == http.StatusNotModified {
		return
	}
	if h.Get("Content-Encoding") != "" {
		return
	}
	contentType, _, _ := strings.Cut(h.Get("Content-Type"), ";")
	if !cw.compressible[strings.TrimSpace(contentType)] {
		return
	}

	h.Set("Content-Encoding", cw.encoding)
	h.Del("Content-Length")
	cw.writer, cw.release = cw.pool.Get(cw.encoding, cw.ResponseWriter)
}

func (cw *compressionWriter) close() error {
	if cw.release == nil {
		return nil
	}
	return cw.release()
}
