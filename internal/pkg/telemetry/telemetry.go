// Package telemetry records query events in an append-only Redis list.
// Appends tolerate concurrency without coordination and never fail a
// request: a write error is logged and dropped.
package telemetry

import (
	"context"
	"encoding/json"
	"time"

	pkgredis "github.com/astucieuxx/atenea-core/internal/pkg/redis"
	"go.uber.org/zap"
)

const (
	listKey    = "atenea:telemetry:queries"
	maxEntries = 10000
)

// Event is one recorded query.
type Event struct {
	Kind        string    `json:"kind"` // analyze | ask
	Query       string    `json:"query"`
	ResultCount int       `json:"result_count"`
	HasEvidence bool      `json:"has_evidence"`
	DurationMS  int64     `json:"duration_ms"`
	At          time.Time `json:"at"`
}

// Recorder appends query events.
type Recorder struct {
	rc     *pkgredis.Client
	logger *zap.Logger
}

func NewRecorder(rc *pkgredis.Client, logger *zap.Logger) *Recorder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Recorder{rc: rc, logger: logger.Named("Telemetry")}
}

// Record appends one event, trimming the log to its cap.
func (r *Recorder) Record(ctx context.Context, ev Event) {
	if r == nil || r.rc == nil {
		return
	}
	if ev.At.IsZero() {
		ev.At = time.Now()
	}
	data, err := json.Marshal(ev)
	if err != nil {
		return
	}
	if err := r.rc.RPush(ctx, listKey, data); err != nil {
		r.logger.Warn("telemetry append failed", zap.Error(err))
		return
	}
	_ = r.rc.LTrim(ctx, listKey, -int64(maxEntries), -1)
}
