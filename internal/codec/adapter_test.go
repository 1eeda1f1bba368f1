package codec

import (
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeLibrary records calls and returns canned results.
type fakeLibrary struct {
	encodeOut []byte
	encodeErr error
	probeW    int
	probeH    int
	probeErr  error
	decodeErr error

	encodeCalls int
	probeCalls  int
	decodeCalls int

	gotStride  int
	gotQuality float32
	gotDstLen  int
}

func (f *fakeLibrary) encode(pix []byte, width, height, stride int, quality float32) ([]byte, error) {
	f.encodeCalls++
	f.gotStride = stride
	f.gotQuality = quality
	return f.encodeOut, f.encodeErr
}

func (f *fakeLibrary) probe(data []byte) (int, int, error) {
	f.probeCalls++
	return f.probeW, f.probeH, f.probeErr
}

func (f *fakeLibrary) decodeInto(data []byte, dst []byte, stride int) error {
	f.decodeCalls++
	f.gotStride = stride
	f.gotDstLen = len(dst)
	if f.decodeErr != nil {
		return f.decodeErr
	}
	for i := range dst {
		dst[i] = 0x7F
	}
	return nil
}

func TestAdapterEncode_InvalidInput(t *testing.T) {
	cases := []struct {
		name          string
		pix           []byte
		width, height int
	}{
		{"nil buffer", nil, 0, 0},
		{"nil buffer valid dims", nil, 2, 2},
		{"zero width", whitePixels(2, 2), 0, 2},
		{"zero height", whitePixels(2, 2), 2, 0},
		{"negative width", whitePixels(2, 2), -2, 2},
		{"short buffer", make([]byte, 15), 2, 2},
		{"long buffer", make([]byte, 17), 2, 2},
		{"width wraps int64 product", make([]byte, 4), 1<<62 + 1, 1},
		{"height wraps int64 product", make([]byte, 4), 1, 1<<62 + 1},
		{"width past webp limit", make([]byte, (MaxDimension+1)*4), MaxDimension + 1, 1},
		{"width truncates to c int", make([]byte, 4), 1<<32 + 1, 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			for _, q := range []int{-5, 0, 80, 100, 250} {
				lib := &fakeLibrary{encodeOut: []byte{1}}
				logs, logger := newCapture()
				a := newAdapter("fake", lib, logger)

				out, err := a.Encode(tc.pix, tc.width, tc.height, q)
				assert.Nil(t, out)
				assert.ErrorIs(t, err, ErrInvalidInput)
				assert.Zero(t, lib.encodeCalls, "library must not be called")
				assert.Zero(t, logs.total())
			}
		})
	}
}

func TestAdapterEncode_Success(t *testing.T) {
	lib := &fakeLibrary{encodeOut: []byte("RIFF....WEBP")}
	logs, logger := newCapture()
	a := newAdapter("fake", lib, logger)

	out, err := a.Encode(whitePixels(3, 2), 3, 2, 90)
	require.NoError(t, err)
	assert.Equal(t, []byte("RIFF....WEBP"), out)
	assert.Equal(t, 12, lib.gotStride)
	assert.Equal(t, float32(90), lib.gotQuality)
	assert.Zero(t, logs.total())
}

func TestAdapterEncode_QualityPassedThrough(t *testing.T) {
	lib := &fakeLibrary{encodeOut: []byte{1}}
	_, logger := newCapture()
	a := newAdapter("fake", lib, logger)

	_, err := a.Encode(whitePixels(1, 1), 1, 1, 150)
	require.NoError(t, err)
	assert.Equal(t, float32(150), lib.gotQuality)
}

func TestAdapterEncode_LibraryFailure(t *testing.T) {
	cases := []struct {
		name string
		lib  *fakeLibrary
	}{
		{"empty output", &fakeLibrary{}},
		{"zero length", &fakeLibrary{encodeOut: []byte{}}},
		{"error", &fakeLibrary{encodeErr: errors.New("boom")}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			logs, logger := newCapture()
			a := newAdapter("fake", tc.lib, logger)

			out, err := a.Encode(whitePixels(2, 2), 2, 2, 80)
			assert.Nil(t, out)
			assert.ErrorIs(t, err, ErrEncode)
			assert.Equal(t, 1, tc.lib.encodeCalls)
			assert.Equal(t, 1, logs.count(slog.LevelError))
			assert.Equal(t, 1, logs.total())
		})
	}
}

func TestAdapterDecode_InvalidInput(t *testing.T) {
	for _, data := range [][]byte{nil, {}} {
		lib := &fakeLibrary{probeW: 1, probeH: 1}
		logs, logger := newCapture()
		a := newAdapter("fake", lib, logger)

		img, err := a.Decode(data)
		assert.Nil(t, img)
		assert.ErrorIs(t, err, ErrInvalidInput)
		assert.Zero(t, lib.probeCalls)
		assert.Zero(t, lib.decodeCalls)
		assert.Zero(t, logs.total())
	}
}

func TestAdapterDecode_ProbeFailure(t *testing.T) {
	cases := []struct {
		name string
		lib  *fakeLibrary
	}{
		{"probe error", &fakeLibrary{probeErr: errors.New("not webp")}},
		{"zero width", &fakeLibrary{probeW: 0, probeH: 4}},
		{"negative height", &fakeLibrary{probeW: 4, probeH: -1}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			logs, logger := newCapture()
			a := newAdapter("fake", tc.lib, logger)

			img, err := a.Decode([]byte{1, 2, 3})
			assert.Nil(t, img)
			assert.ErrorIs(t, err, ErrProbe)
			assert.Zero(t, tc.lib.decodeCalls)
			assert.Equal(t, 1, logs.count(slog.LevelError))
			assert.Equal(t, 1, logs.total())
		})
	}
}

func TestAdapterDecode_DecodeFailure(t *testing.T) {
	lib := &fakeLibrary{probeW: 2, probeH: 2, decodeErr: errors.New("truncated")}
	logs, logger := newCapture()
	a := newAdapter("fake", lib, logger)

	img, err := a.Decode([]byte{1, 2, 3})
	assert.Nil(t, img)
	assert.ErrorIs(t, err, ErrDecode)
	assert.Equal(t, KindDecode, KindOf(err))
	assert.Equal(t, 1, logs.count(slog.LevelError))
	assert.Equal(t, 1, logs.total())
}

func TestAdapterDecode_Success(t *testing.T) {
	lib := &fakeLibrary{probeW: 3, probeH: 5}
	logs, logger := newCapture()
	a := newAdapter("fake", lib, logger)

	img, err := a.Decode([]byte{1, 2, 3})
	require.NoError(t, err)
	assert.Equal(t, 3, img.Width)
	assert.Equal(t, 5, img.Height)
	assert.Len(t, img.Pix, 3*5*4)
	assert.Equal(t, 12, lib.gotStride)
	assert.Equal(t, 60, lib.gotDstLen)
	assert.Equal(t, byte(0x7F), img.Pix[59])
	assert.Zero(t, logs.total())
}

func TestAdapter_NilLoggerUsesDefault(t *testing.T) {
	a := newAdapter("fake", &fakeLibrary{}, nil)
	assert.NotNil(t, a.logger)
	assert.True(t, a.Available())
	assert.Equal(t, "fake", a.Name())
}
