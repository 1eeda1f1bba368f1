package server

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Fl0zWer/PaimbnailsGeode-sub002/internal/codec"
)

// echoCodec "encodes" by prefixing the dimensions; Decode reverses it.
type echoCodec struct{}

func (echoCodec) Name() string    { return "echo" }
func (echoCodec) Available() bool { return true }

func (echoCodec) Encode(pix []byte, width, height, quality int) ([]byte, error) {
	if len(pix) == 0 || width <= 0 || height <= 0 || len(pix) != width*height*4 {
		return nil, &codec.Error{Kind: codec.KindInvalidInput, Op: "encode"}
	}
	out := append([]byte{byte(width), byte(height)}, pix...)
	return out, nil
}

func (echoCodec) Decode(data []byte) (*codec.Image, error) {
	if len(data) == 0 {
		return nil, &codec.Error{Kind: codec.KindInvalidInput, Op: "decode"}
	}
	if len(data) < 2 {
		return nil, &codec.Error{Kind: codec.KindProbe, Op: "decode", Err: errors.New("short")}
	}
	return &codec.Image{Width: int(data[0]), Height: int(data[1]), Pix: append([]byte(nil), data[2:]...)}, nil
}

func quiet() *slog.Logger { return slog.New(slog.NewTextHandler(io.Discard, nil)) }

func newTestServer(c codec.Codec) *Server {
	return New(Config{Codec: c, Registry: codec.NewRegistry(quiet()), Logger: quiet()})
}

func TestHealth(t *testing.T) {
	s := newTestServer(echoCodec{})

	resp, err := s.App().Test(httptest.NewRequest("GET", "/healthz", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "echo", body["codec"])
	assert.Equal(t, true, body["available"])
}

func TestEncodeDecode(t *testing.T) {
	s := newTestServer(echoCodec{})
	pix := bytes.Repeat([]byte{0xFF}, 16)

	req := httptest.NewRequest("POST", "/v1/encode?width=2&height=2&quality=90", bytes.NewReader(pix))
	resp, err := s.App().Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "image/webp", resp.Header.Get(fiber.HeaderContentType))
	encoded, _ := io.ReadAll(resp.Body)

	req = httptest.NewRequest("POST", "/v1/decode", bytes.NewReader(encoded))
	resp, err = s.App().Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "2", resp.Header.Get(HeaderWidth))
	assert.Equal(t, "2", resp.Header.Get(HeaderHeight))
	decoded, _ := io.ReadAll(resp.Body)
	assert.Equal(t, pix, decoded)
}

func TestErrorStatuses(t *testing.T) {
	cases := []struct {
		name   string
		codec  codec.Codec
		method string
		path   string
		body   []byte
		status int
		kind   string
	}{
		{"missing dims", echoCodec{}, "POST", "/v1/encode", []byte{1, 2, 3, 4}, 400, "invalid_input"},
		{"bad query", echoCodec{}, "POST", "/v1/encode?width=abc", nil, 400, "request"},
		{"empty decode", echoCodec{}, "POST", "/v1/decode", nil, 400, "invalid_input"},
		{"probe failure", echoCodec{}, "POST", "/v1/decode", []byte{9}, 415, "probe_failed"},
		{"unavailable", codec.NewUnavailable("none", quiet()), "POST", "/v1/encode?width=1&height=1",
			[]byte{1, 2, 3, 4}, 503, "unavailable"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := newTestServer(tc.codec)
			resp, err := s.App().Test(httptest.NewRequest(tc.method, tc.path, bytes.NewReader(tc.body)))
			require.NoError(t, err)
			assert.Equal(t, tc.status, resp.StatusCode)

			var body map[string]string
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			assert.Equal(t, tc.kind, body["kind"])
			assert.NotEmpty(t, body["error"])
		})
	}
}

func TestCodecsList(t *testing.T) {
	s := newTestServer(echoCodec{})
	resp, err := s.App().Test(httptest.NewRequest("GET", "/v1/codecs", nil))
	require.NoError(t, err)

	var list []codecInfo
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&list))
	require.Len(t, list, 2)
	assert.Equal(t, codec.BackendLibWebP, list[0].Name)
	assert.Equal(t, codec.BackendNative, list[1].Name)
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, 422, statusFor(codec.KindEncode))
	assert.Equal(t, 422, statusFor(codec.KindDecode))
	assert.Equal(t, 500, statusFor(codec.KindNone))
}

// vp8lHeader returns a RIFF/VP8L stream carrying only a header that
// claims width x height.
func vp8lHeader(width, height int) []byte {
	payload := make([]byte, 6)
	payload[0] = 0x2f
	binary.LittleEndian.PutUint32(payload[1:5], uint32(width-1)|uint32(height-1)<<14)

	var b bytes.Buffer
	b.WriteString("RIFF")
	binary.Write(&b, binary.LittleEndian, uint32(4+8+len(payload)))
	b.WriteString("WEBPVP8L")
	binary.Write(&b, binary.LittleEndian, uint32(len(payload)))
	b.Write(payload)
	return b.Bytes()
}

// countingCodec records whether Decode was reached.
type countingCodec struct {
	echoCodec
	decodes atomic.Int64
}

func (c *countingCodec) Decode(data []byte) (*codec.Image, error) {
	c.decodes.Add(1)
	return nil, &codec.Error{Kind: codec.KindDecode, Op: "decode", Err: errors.New("header only")}
}

func TestDecode_PixelLimit(t *testing.T) {
	c := &countingCodec{}
	s := New(Config{Codec: c, Registry: codec.NewRegistry(quiet()), Logger: quiet(), MaxPixels: 100})

	resp, err := s.App().Test(httptest.NewRequest("POST", "/v1/decode", bytes.NewReader(vp8lHeader(16384, 16384))))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusRequestEntityTooLarge, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "too_large", body["kind"])
	assert.Zero(t, c.decodes.Load(), "codec must not allocate for an oversized header")

	// Under the limit the stream reaches the codec.
	resp, err = s.App().Test(httptest.NewRequest("POST", "/v1/decode", bytes.NewReader(vp8lHeader(10, 10))))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)
	assert.EqualValues(t, 1, c.decodes.Load())
}

func TestEncode_PixelLimit(t *testing.T) {
	s := New(Config{Codec: echoCodec{}, Registry: codec.NewRegistry(quiet()), Logger: quiet(), MaxPixels: 3})

	req := httptest.NewRequest("POST", "/v1/encode?width=2&height=2", bytes.NewReader(make([]byte, 16)))
	resp, err := s.App().Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusRequestEntityTooLarge, resp.StatusCode)
}

func TestRequestLog_RecordsSentStatus(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	s := New(Config{Codec: echoCodec{}, Registry: codec.NewRegistry(quiet()), Logger: logger})

	resp, err := s.App().Test(httptest.NewRequest("POST", "/v1/decode", bytes.NewReader([]byte{9})))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusUnsupportedMediaType, resp.StatusCode)

	var rec map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &rec))
	assert.Equal(t, "request failed", rec["msg"])
	assert.EqualValues(t, fiber.StatusUnsupportedMediaType, rec["status"])
	assert.Contains(t, rec["error"], "probe_failed")

	buf.Reset()
	resp, err = s.App().Test(httptest.NewRequest("GET", "/nope", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &rec))
	assert.EqualValues(t, fiber.StatusNotFound, rec["status"])
}
