package stream

// Recording container for filter runs. The layout is a 4-byte magic,
// a length-prefixed JSON header carrying the session identity and
// filter config, then one length-prefixed zstd payload per raw RGBA
// frame. Lengths are big-endian uint32.

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/klauspost/compress/zstd"
	"github.com/samblenny/webwavecam/pkg/wavecam"
)

const recordMagic = "WVC1"

// maxChunk bounds a single header or frame payload so a corrupt
// length prefix cannot drive a huge allocation.
const maxChunk = 64 << 20

// Header is the recording metadata written after the magic.
type Header struct {
	Session     string         `json:"session"`
	Fingerprint string         `json:"fingerprint,omitempty"`
	Width       int            `json:"width"`
	Height      int            `json:"height"`
	Config      wavecam.Config `json:"config"`
	Started     time.Time      `json:"started"`
}

// Recorder appends compressed frames to w.
type Recorder struct {
	w       io.Writer
	enc     *zstd.Encoder
	scratch []byte
	frames  int
}

// NewRecorder writes the header for sess and returns a recorder ready
// for frames. The caller keeps ownership of w.
func NewRecorder(w io.Writer, sess *Session) (*Recorder, error) {
	enc, err := zstd.NewWriter(nil)
	if err != nil {
		return nil, err
	}
	hdr, err := json.Marshal(Header{
		Session:     sess.ID,
		Fingerprint: sess.Fingerprint,
		Width:       sess.Width,
		Height:      sess.Height,
		Config:      sess.Config,
		Started:     sess.Started,
	})
	if err != nil {
		enc.Close()
		return nil, err
	}
	var out bytes.Buffer
	out.WriteString(recordMagic)
	var lenBuf [4]byte
	binary.BigEndian.PutUint32(lenBuf[:], uint32(len(hdr)))
	out.Write(lenBuf[:])
	out.Write(hdr)
	if _, err := w.Write(out.Bytes()); err != nil {
		enc.Close()
		return nil, err
	}
	return &Recorder{w: w, enc: enc}, nil
}

// WriteFrame compresses and appends one raw RGBA frame.
func (r *Recorder) WriteFrame(frame []byte) error {
	payload := r.enc.EncodeAll(frame, r.scratch[:0])
	r.scratch = payload
	var lenBuf [4]byte
	binary.BigEndian.PutUint32(lenBuf[:], uint32(len(payload)))
	if _, err := r.w.Write(lenBuf[:]); err != nil {
		return err
	}
	if _, err := r.w.Write(payload); err != nil {
		return err
	}
	r.frames++
	return nil
}

// Frames reports how many frames have been written.
func (r *Recorder) Frames() int { return r.frames }

// Close releases the encoder. The underlying writer stays open.
func (r *Recorder) Close() error {
	return r.enc.Close()
}

// Reader plays a recording back frame by frame.
type Reader struct {
	r       io.Reader
	dec     *zstd.Decoder
	hdr     Header
	payload []byte
}

// NewReader checks the magic and decodes the header.
func NewReader(r io.Reader) (*Reader, error) {
	var magic [4]byte
	if _, err := io.ReadFull(r, magic[:]); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadRecording, err)
	}
	if string(magic[:]) != recordMagic {
		return nil, fmt.Errorf("%w: magic %q", ErrBadRecording, magic)
	}
	hdrBytes, err := readChunk(r, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: missing header", ErrBadRecording)
	}
	var hdr Header
	if err := json.Unmarshal(hdrBytes, &hdr); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadRecording, err)
	}
	dec, err := zstd.NewReader(nil)
	if err != nil {
		return nil, err
	}
	return &Reader{r: r, dec: dec, hdr: hdr}, nil
}

// Header returns the recording metadata.
func (rd *Reader) Header() Header { return rd.hdr }

// Next decompresses the next frame into buf, growing it as needed.
// io.EOF marks a clean end of recording.
func (rd *Reader) Next(buf []byte) ([]byte, error) {
	payload, err := readChunk(rd.r, rd.payload)
	if err != nil {
		return nil, err
	}
	rd.payload = payload
	return rd.dec.DecodeAll(payload, buf[:0])
}

// Close releases the decoder. The underlying reader stays open.
func (rd *Reader) Close() {
	rd.dec.Close()
}

// readChunk reads one length-prefixed chunk, reusing buf when it has
// the capacity. io.EOF passes through untouched only when it lands on
// a chunk boundary.
func readChunk(r io.Reader, buf []byte) ([]byte, error) {
	var lenBuf [4]byte
	if _, err := io.ReadFull(r, lenBuf[:]); err != nil {
		if err == io.ErrUnexpectedEOF {
			return nil, fmt.Errorf("%w: truncated chunk length", ErrBadRecording)
		}
		return nil, err
	}
	n := binary.BigEndian.Uint32(lenBuf[:])
	if n > maxChunk {
		return nil, fmt.Errorf("%w: chunk of %d bytes", ErrBadRecording, n)
	}
	if cap(buf) < int(n) {
		buf = make([]byte, n)
	}
	buf = buf[:n]
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, fmt.Errorf("%w: truncated chunk", ErrBadRecording)
	}
	return buf, nil
}
