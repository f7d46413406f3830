// Package media turns captured audio and image payloads into note attachments.
package media

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/gabriel-vasile/mimetype"
	tcmp3 "github.com/tcolgate/mp3"
)

// DefaultMaxBytes caps a single payload when no limit is configured.
const DefaultMaxBytes int64 = 10 << 20

var (
	// ErrTooLarge is returned when a payload exceeds the session limit.
	ErrTooLarge = errors.New("media payload too large")
	// ErrEmpty is returned when a capture produced no data.
	ErrEmpty = errors.New("media payload is empty")
	// ErrNotStarted is returned by Finish when no capture is in progress.
	ErrNotStarted = errors.New("no capture in progress")
)

// AccessError reports that the capture source (microphone, file) could not be opened.
type AccessError struct {
	Err error
}

func (e *AccessError) Error() string {
	return fmt.Sprintf("media access error: %v", e.Err)
}

func (e *AccessError) Unwrap() error {
	return e.Err
}

// Session is a single capture. The handle it opens is always released by Finish or Cancel.
type Session struct {
	maxBytes int64

	mu     sync.Mutex
	handle io.ReadCloser
}

// NewSession creates a session that accepts payloads up to maxBytes (DefaultMaxBytes if <= 0).
func NewSession(maxBytes int64) *Session {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	return &Session{maxBytes: maxBytes}
}

// Start opens the capture handle. Failure to open is reported as *AccessError and
// leaves the session idle.
func (s *Session) Start(open func() (io.ReadCloser, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.handle != nil {
		return errors.New("capture already in progress")
	}
	h, err := open()
	if err != nil {
		return &AccessError{Err: err}
	}
	if h == nil {
		return &AccessError{Err: errors.New("capture source returned no handle")}
	}
	s.handle = h
	return nil
}

// Recording reports whether a capture is in progress.
func (s *Session) Recording() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.handle != nil
}

// Finish reads the captured payload and releases the handle.
func (s *Session) Finish() ([]byte, error) {
	h := s.take()
	if h == nil {
		return nil, ErrNotStarted
	}
	defer func() {
		_ = h.Close()
	}()

	data, err := io.ReadAll(io.LimitReader(h, s.maxBytes+1))
	if err != nil {
		return nil, &AccessError{Err: err}
	}
	if int64(len(data)) > s.maxBytes {
		return nil, ErrTooLarge
	}
	if len(data) == 0 {
		return nil, ErrEmpty
	}
	return data, nil
}

// Cancel discards the capture and releases the handle. It is safe to call at any time.
func (s *Session) Cancel() {
	if h := s.take(); h != nil {
		_ = h.Close()
	}
}

func (s *Session) take() io.ReadCloser {
	s.mu.Lock()
	defer s.mu.Unlock()
	h := s.handle
	s.handle = nil
	return h
}

// Info describes a payload.
type Info struct {
	MediaType       string
	DurationSeconds float64
}

// recorderAudioTypes maps containers that browser recorders write audio into
// but that sniff as video. Chromium's MediaRecorder produces WebM.
var recorderAudioTypes = map[string]string{
	"video/webm": "audio/webm",
}

// IsAudio reports whether the payload sniffed as audio or as a recorder container.
func (i Info) IsAudio() bool {
	if strings.HasPrefix(i.MediaType, "audio/") {
		return true
	}
	_, ok := recorderAudioTypes[i.MediaType]
	return ok
}

// AudioType is the media type to store for an audio payload.
func (i Info) AudioType() string {
	if t, ok := recorderAudioTypes[i.MediaType]; ok {
		return t
	}
	return i.MediaType
}

// IsImage reports whether the payload sniffed as an image.
func (i Info) IsImage() bool {
	return strings.HasPrefix(i.MediaType, "image/")
}

// Inspect sniffs the payload's MIME type. MP3 payloads also get their duration.
func Inspect(payload []byte) Info {
	mt := mimetype.Detect(payload)
	info := Info{MediaType: mt.String()}
	// Drop parameters such as "; charset=utf-8".
	if i := strings.Index(info.MediaType, ";"); i >= 0 {
		info.MediaType = strings.TrimSpace(info.MediaType[:i])
	}
	if mt.Is("audio/mpeg") {
		if d, err := MP3Duration(bytes.NewReader(payload)); err == nil {
			info.DurationSeconds = d
		}
	}
	return info
}

// MP3Duration sums the frame durations of an MP3 stream, in seconds.
func MP3Duration(r io.Reader) (float64, error) {
	var (
		dur     float64
		dec     = tcmp3.NewDecoder(r)
		frame   tcmp3.Frame
		skipped int
	)

	for {
		if err := dec.Decode(&frame, &skipped); err != nil {
			if err == io.EOF {
				break
			}
			return 0, err
		}
		dur += frame.Duration().Seconds()
	}

	return dur, nil
}

// DataURL encodes the payload as a base64 data URL.
func DataURL(mediaType string, payload []byte) string {
	return "data:" + mediaType + ";base64," + base64.StdEncoding.EncodeToString(payload)
}
