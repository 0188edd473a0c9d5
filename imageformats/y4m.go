package imageformats

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/kpfaulkner/descratch-go/image"
)

const (
	y4mSignature = "YUV4MPEG2"
	y4mFrameTag  = "FRAME"

	// longest header or frame line we accept
	maxY4MLine = 4096
)

var (
	ErrNotY4M                = errors.New("y4m: missing YUV4MPEG2 signature")
	ErrUnsupportedColorspace = errors.New("y4m: unsupported colorspace")
	ErrBadY4MHeader          = errors.New("y4m: malformed header")
)

// Y4MHeader is the stream header of a YUV4MPEG2 file. Unknown parameters
// are kept in Extra and written back unchanged.
type Y4MHeader struct {
	Width      int
	Height     int
	FrameRate  string
	Interlace  string
	Aspect     string
	Colorspace string
	Format     image.Format
	Extra      []string
}

// colorspaceFormat maps the C parameter to a plane layout. A missing C
// parameter means 4:2:0.
func colorspaceFormat(cs string) (image.Format, error) {
	switch cs {
	case "", "420", "420jpeg", "420paldv", "420mpeg2":
		return image.FormatYUV420P8, nil
	case "422":
		return image.FormatYUV422P8, nil
	case "444":
		return image.FormatYUV444P8, nil
	}
	return image.FormatUnknown, fmt.Errorf("%w: C%s", ErrUnsupportedColorspace, cs)
}

func ParseY4MHeader(line string) (*Y4MHeader, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 || fields[0] != y4mSignature {
		return nil, ErrNotY4M
	}

	h := &Y4MHeader{}
	var err error
	for _, f := range fields[1:] {
		value := f[1:]
		switch f[0] {
		case 'W':
			h.Width, err = strconv.Atoi(value)
		case 'H':
			h.Height, err = strconv.Atoi(value)
		case 'F':
			h.FrameRate = value
		case 'I':
			h.Interlace = value
		case 'A':
			h.Aspect = value
		case 'C':
			h.Colorspace = value
		default:
			h.Extra = append(h.Extra, f)
		}
		if err != nil {
			return nil, fmt.Errorf("%w: parameter %q: %w", ErrBadY4MHeader, f, err)
		}
	}
	if h.Width <= 0 || h.Height <= 0 {
		return nil, fmt.Errorf("%w: frame size %dx%d", ErrBadY4MHeader, h.Width, h.Height)
	}
	if h.Format, err = colorspaceFormat(h.Colorspace); err != nil {
		return nil, err
	}
	return h, nil
}

// String renders the header line without the trailing newline.
func (h *Y4MHeader) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s W%d H%d", y4mSignature, h.Width, h.Height)
	if h.FrameRate != "" {
		b.WriteString(" F" + h.FrameRate)
	}
	if h.Interlace != "" {
		b.WriteString(" I" + h.Interlace)
	}
	if h.Aspect != "" {
		b.WriteString(" A" + h.Aspect)
	}
	if h.Colorspace != "" {
		b.WriteString(" C" + h.Colorspace)
	}
	for _, e := range h.Extra {
		b.WriteString(" " + e)
	}
	return b.String()
}

// FrameSize is the number of sample bytes in one frame.
func (h *Y4MHeader) FrameSize() int {
	xs, ys := h.Format.Subsampling()
	cw := (h.Width + (1 << xs) - 1) >> xs
	ch := (h.Height + (1 << ys) - 1) >> ys
	return h.Width*h.Height + 2*cw*ch
}

type Y4MReader struct {
	r      *bufio.Reader
	header *Y4MHeader
	frames int
}

// NewY4MReader reads and validates the stream header.
func NewY4MReader(r io.Reader) (*Y4MReader, error) {
	br := bufio.NewReader(r)
	line, err := readLine(br)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrNotY4M
		}
		return nil, fmt.Errorf("y4m: reading header: %w", err)
	}
	header, err := ParseY4MHeader(line)
	if err != nil {
		return nil, err
	}
	return &Y4MReader{r: br, header: header}, nil
}

func readLine(r *bufio.Reader) (string, error) {
	var buf bytes.Buffer
	for {
		c, err := r.ReadByte()
		if err != nil {
			if err == io.EOF && buf.Len() > 0 {
				return "", io.ErrUnexpectedEOF
			}
			return "", err
		}
		if c == '\n' {
			return buf.String(), nil
		}
		if buf.Len() >= maxY4MLine {
			return "", fmt.Errorf("%w: line longer than %d bytes", ErrBadY4MHeader, maxY4MLine)
		}
		buf.WriteByte(c)
	}
}

func (r *Y4MReader) Header() *Y4MHeader {
	return r.header
}

// Frames is the number of frames read so far.
func (r *Y4MReader) Frames() int {
	return r.frames
}

// ReadFrame returns the next frame, or io.EOF once the stream ends cleanly.
func (r *Y4MReader) ReadFrame() (*image.Frame, error) {
	f := image.NewFrame(r.header.Format, r.header.Width, r.header.Height)
	if err := r.ReadFrameInto(f); err != nil {
		return nil, err
	}
	return f, nil
}

// ReadFrameInto fills an existing frame of the stream geometry.
func (r *Y4MReader) ReadFrameInto(f *image.Frame) error {
	if f.Format != r.header.Format || f.Width != r.header.Width || f.Height != r.header.Height {
		return fmt.Errorf("%w: frame %s %dx%d for stream %s %dx%d", image.ErrPlaneGeometry,
			f.Format, f.Width, f.Height, r.header.Format, r.header.Width, r.header.Height)
	}

	line, err := readLine(r.r)
	if err != nil {
		if err == io.EOF {
			return io.EOF
		}
		return fmt.Errorf("y4m: frame %d: %w", r.frames, err)
	}
	if !strings.HasPrefix(line, y4mFrameTag) {
		return fmt.Errorf("%w: frame %d starts with %q", ErrBadY4MHeader, r.frames, line)
	}

	for _, p := range f.Planes {
		for y := 0; y < p.Height; y++ {
			if _, err := io.ReadFull(r.r, p.Row(y)); err != nil {
				if err == io.EOF {
					err = io.ErrUnexpectedEOF
				}
				return fmt.Errorf("y4m: frame %d: %w", r.frames, err)
			}
		}
	}
	r.frames++
	return nil
}

type Y4MWriter struct {
	w             *bufio.Writer
	header        Y4MHeader
	headerWritten bool
	frames        int
}

// NewY4MWriter writes frames using header. The header line is emitted with
// the first frame.
func NewY4MWriter(w io.Writer, header Y4MHeader) *Y4MWriter {
	return &Y4MWriter{w: bufio.NewWriter(w), header: header}
}

func (w *Y4MWriter) WriteFrame(f *image.Frame) error {
	if f.Format != w.header.Format || f.Width != w.header.Width || f.Height != w.header.Height {
		return fmt.Errorf("%w: frame %s %dx%d for stream %s %dx%d", image.ErrPlaneGeometry,
			f.Format, f.Width, f.Height, w.header.Format, w.header.Width, w.header.Height)
	}
	if !w.headerWritten {
		if _, err := w.w.WriteString(w.header.String() + "\n"); err != nil {
			return fmt.Errorf("y4m: writing header: %w", err)
		}
		w.headerWritten = true
	}
	if _, err := w.w.WriteString(y4mFrameTag + "\n"); err != nil {
		return fmt.Errorf("y4m: frame %d: %w", w.frames, err)
	}
	for _, p := range f.Planes {
		for y := 0; y < p.Height; y++ {
			if _, err := w.w.Write(p.Row(y)); err != nil {
				return fmt.Errorf("y4m: frame %d: %w", w.frames, err)
			}
		}
	}
	w.frames++
	return nil
}

func (w *Y4MWriter) Flush() error {
	return w.w.Flush()
}
