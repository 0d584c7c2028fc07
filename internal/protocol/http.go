package protocol

import (
	"compress/flate"
	"compress/gzip"
	"compress/zlib"
	"errors"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/andybalholm/brotli"
	"go.uber.org/zap"

	"github.com/kestrelweb/kestrel/internal/uri"
)

// DefaultRequestTimeout bounds one whole fetch, body included.
const DefaultRequestTimeout = 30 * time.Second

// HTTPHandler fetches http and https URIs. Its transport negotiates gzip,
// deflate, and brotli encodings and decodes them transparently, so Body is
// always plain text.
type HTTPHandler struct {
	client *http.Client
	logger *zap.Logger
}

// NewHTTPHandler builds a handler with a compression-aware transport. A nil
// logger is replaced with a no-op one.
func NewHTTPHandler(timeout time.Duration, logger *zap.Logger) *HTTPHandler {
	if timeout <= 0 {
		timeout = DefaultRequestTimeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	transport := http.DefaultTransport.(*http.Transport).Clone()
	// The middleware owns content negotiation; the transport's built-in gzip
	// handling would fight it.
	transport.DisableCompression = true

	return &HTTPHandler{
		client: &http.Client{
			Transport: &compressionTransport{base: transport},
			Timeout:   timeout,
		},
		logger: logger,
	}
}

// Handle performs the fetch and folds every failure into an Error kind:
// name-resolution problems become ErrorUnresolved, everything else that keeps
// us from reading a complete response is ErrorInvalidResponse.
func (h *HTTPHandler) Handle(u uri.URI) Response {
	req, err := http.NewRequest(http.MethodGet, u.String(), nil)
	if err != nil {
		h.logger.Debug("building request failed", zap.String("uri", u.Raw), zap.Error(err))
		return Response{Err: ErrorInvalidResponse}
	}

	resp, err := h.client.Do(req)
	if err != nil {
		var dnsErr *net.DNSError
		if errors.As(err, &dnsErr) {
			h.logger.Debug("host did not resolve", zap.String("host", u.Authority.Host))
			return Response{Err: ErrorUnresolved}
		}
		h.logger.Debug("request failed", zap.String("uri", u.Raw), zap.Error(err))
		return Response{Err: ErrorInvalidResponse}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		h.logger.Debug("reading body failed", zap.String("uri", u.Raw), zap.Error(err))
		return Response{Err: ErrorInvalidResponse}
	}

	out := Response{
		Err: ErrorOK,
		Status: StatusLine{
			Version: resp.Proto,
			Code:    resp.StatusCode,
			Reason:  reasonFromStatus(resp.Status),
		},
		Body: string(body),
	}
	for name, values := range resp.Header {
		if len(values) > 0 {
			out.Headers.Add(name, values[0])
		}
	}
	return out
}

// reasonFromStatus strips the leading numeric code from "200 OK".
func reasonFromStatus(status string) string {
	if i := strings.IndexByte(status, ' '); i != -1 {
		return status[i+1:]
	}
	return status
}

// compressionTransport is an http.RoundTripper that advertises the encodings
// we can decode and unwraps the response body accordingly.
type compressionTransport struct {
	base http.RoundTripper
}

func (t *compressionTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.Header.Get("Accept-Encoding") == "" {
		req.Header.Set("Accept-Encoding", "gzip, deflate, br")
	}

	resp, err := t.base.RoundTrip(req)
	if err != nil {
		return nil, err
	}

	encoding := strings.ToLower(strings.TrimSpace(resp.Header.Get("Content-Encoding")))
	switch encoding {
	case "", "identity":
		return resp, nil
	case "gzip":
		reader, err := gzip.NewReader(resp.Body)
		if err != nil {
			resp.Body.Close()
			return nil, err
		}
		resp.Body = &decodedBody{reader: reader, underlying: resp.Body}
	case "deflate":
		// Servers disagree on whether deflate means zlib-wrapped or raw;
		// try zlib first and fall back to raw flate.
		raw, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			return nil, err
		}
		reader, err := zlib.NewReader(strings.NewReader(string(raw)))
		if err != nil {
			resp.Body = io.NopCloser(flate.NewReader(strings.NewReader(string(raw))))
		} else {
			resp.Body = reader
		}
	case "br":
		resp.Body = &decodedBody{
			reader:     io.NopCloser(brotli.NewReader(resp.Body)),
			underlying: resp.Body,
		}
	default:
		// Unknown encoding: hand the body through untouched and let the
		// caller decide what to do with it.
		return resp, nil
	}

	resp.Header.Del("Content-Encoding")
	resp.Header.Del("Content-Length")
	resp.ContentLength = -1
	return resp, nil
}

// decodedBody reads from the decompressor but closes the network body too.
type decodedBody struct {
	reader     io.ReadCloser
	underlying io.ReadCloser
}

func (d *decodedBody) Read(p []byte) (int, error) { return d.reader.Read(p) }

func (d *decodedBody) Close() error {
	rerr := d.reader.Close()
	uerr := d.underlying.Close()
	if rerr != nil {
		return rerr
	}
	return uerr
}
