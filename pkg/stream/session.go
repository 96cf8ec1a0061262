package stream

import (
	"crypto/md5"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/samblenny/webwavecam/pkg/wavecam"
)

// Session identifies one filter run: a random id for log correlation,
// a deterministic fingerprint of the filter settings so runs with the
// same config can be matched across sessions, and the geometry every
// frame of the run shares.
type Session struct {
	ID          string
	Fingerprint string
	Width       int
	Height      int
	Config      wavecam.Config
	Started     time.Time
}

func NewSession(width, height int, cfg wavecam.Config) *Session {
	return &Session{
		ID:          uuid.NewString(),
		Fingerprint: ConfigFingerprint(cfg),
		Width:       width,
		Height:      height,
		Config:      cfg,
		Started:     time.Now().UTC(),
	}
}

// LogGroup returns the session identity as a log attribute group.
func (s *Session) LogGroup() slog.Attr {
	return slog.Group("session",
		slog.String("id", s.ID),
		slog.Int("width", s.Width),
		slog.Int("height", s.Height),
		slog.String("scheme", s.Config.Scheme.String()),
		slog.Int("levels", s.Config.Levels),
	)
}

// ConfigFingerprint hashes the filter settings into a stable UUID.
// Equal configs always map to the same fingerprint.
func ConfigFingerprint(cfg wavecam.Config) string {
	raw, err := json.Marshal(cfg)
	if err != nil {
		return ""
	}
	sum := md5.Sum(raw)
	id, err := uuid.FromBytes(sum[:])
	if err != nil {
		return ""
	}
	return id.String()
}
