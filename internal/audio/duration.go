package audio

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jfreymuth/oggvorbis"
	"github.com/pkg/errors"
	"github.com/tcolgate/mp3"
)

var (
	// ErrUnsupportedFormat is returned for files that are neither MP3 nor Ogg Vorbis.
	ErrUnsupportedFormat = errors.New("unsupported audio format")

	// ErrNoAudioFrames is returned when an MP3 file contains no decodable frame.
	ErrNoAudioFrames = errors.New("no audio frames found")
)

// supportedExtensions lists the audio extensions the playlist builder picks up
// (lowercase, with leading dot).
var supportedExtensions = map[string]bool{
	".mp3": true,
	".ogg": true,
}

// IsSupported reports whether the file name has a supported audio extension.
// The comparison is case-insensitive.
func IsSupported(name string) bool {
	return supportedExtensions[strings.ToLower(filepath.Ext(name))]
}

// DurationReader returns the playing time of an audio file.
type DurationReader interface {
	Duration(path string) (time.Duration, error)
}

// FileDurationReader reads durations straight from MP3 and Ogg Vorbis files.
type FileDurationReader struct{}

// NewFileDurationReader creates a new FileDurationReader.
func NewFileDurationReader() *FileDurationReader {
	return &FileDurationReader{}
}

// Duration returns the playing time of the file at path.
//
// The format is chosen from the file extension. Returns ErrUnsupportedFormat
// for unknown extensions and a wrapped decoder error for corrupt files.
func (r *FileDurationReader) Duration(path string) (time.Duration, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, errors.Wrapf(err, "open %s", path)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".mp3":
		d, err := mp3Duration(f)
		if err != nil {
			return 0, errors.Wrapf(err, "read mp3 duration of %s", path)
		}
		return d, nil
	case ".ogg":
		d, err := oggDuration(f)
		if err != nil {
			return 0, errors.Wrapf(err, "read ogg duration of %s", path)
		}
		return d, nil
	default:
		return 0, errors.Wrapf(ErrUnsupportedFormat, "%s", path)
	}
}

// mp3Duration sums the duration of every MPEG audio frame in r.
//
// Leading ID3v2 tags are skipped before decoding, since the decoder would
// otherwise pick up frame syncs inside embedded pictures. A Xing, Info or
// VBRI header in the first frame marks it as silent metadata and it is not
// counted.
func mp3Duration(r io.ReadSeeker) (time.Duration, error) {
	if err := skipID3v2(r); err != nil {
		return 0, err
	}

	dec := mp3.NewDecoder(r)

	var (
		frame   mp3.Frame
		skipped int
		total   time.Duration
		frames  int
	)
	for {
		if err := dec.Decode(&frame, &skipped); err != nil {
			if err == io.EOF || err == io.ErrUnexpectedEOF {
				break
			}
			return 0, err
		}
		frames++
		if frames == 1 && isInfoFrame(&frame) {
			continue
		}
		total += frame.Duration()
	}

	if frames == 0 {
		return 0, ErrNoAudioFrames
	}
	return total, nil
}

const id3v2HeaderSize = 10

// skipID3v2 positions r after any ID3v2 tags at its current offset. When no
// tag is present r is left where it was.
func skipID3v2(r io.ReadSeeker) error {
	header := make([]byte, id3v2HeaderSize)
	for {
		n, err := io.ReadFull(r, header)
		if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
			return errors.Wrap(err, "read id3v2 header")
		}
		if n < id3v2HeaderSize || string(header[:3]) != "ID3" {
			_, err := r.Seek(int64(-n), io.SeekCurrent)
			return errors.Wrap(err, "rewind after id3v2 check")
		}

		// The tag size is stored as four 7-bit bytes and excludes the
		// header and the optional footer.
		size := int64(header[6]&0x7F)<<21 | int64(header[7]&0x7F)<<14 |
			int64(header[8]&0x7F)<<7 | int64(header[9]&0x7F)
		if header[5]&0x10 != 0 {
			size += id3v2HeaderSize
		}
		if _, err := r.Seek(size, io.SeekCurrent); err != nil {
			return errors.Wrap(err, "seek past id3v2 tag")
		}
	}
}

// isInfoFrame reports whether frame carries a Xing/Info or VBRI header
// instead of audio.
func isInfoFrame(frame *mp3.Frame) bool {
	raw, err := io.ReadAll(frame.Reader())
	if err != nil {
		return false
	}

	offset := 4
	if frame.Header().Protection() {
		offset += 2
	}
	if sideLen, err := frame.SideInfoLength(); err == nil {
		offset += sideLen
		if len(raw) >= offset+4 {
			if tag := string(raw[offset : offset+4]); tag == "Xing" || tag == "Info" {
				return true
			}
		}
	}

	// VBRI sits 32 bytes after the header regardless of channel mode.
	return len(raw) >= 40 && string(raw[36:40]) == "VBRI"
}

// oggDuration derives the duration from the sample count and sample rate
// reported by the Vorbis stream.
func oggDuration(r io.ReadSeeker) (time.Duration, error) {
	samples, format, err := oggvorbis.GetLength(r)
	if err != nil {
		return 0, err
	}
	if format == nil || format.SampleRate <= 0 {
		return 0, errors.New("invalid vorbis sample rate")
	}
	seconds := float64(samples) / float64(format.SampleRate)
	return time.Duration(seconds * float64(time.Second)), nil
}
