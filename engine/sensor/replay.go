package sensor

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Carmen-Shannon/oxy-pano/internal/logger"
	"gopkg.in/yaml.v3"
)

// RecordedEvent is an event stamped with its offset from the start of the recording.
type RecordedEvent struct {
	T     float64 `json:"t" yaml:"t"` // seconds
	Event `yaml:",inline"`
}

// Recording is a replayable sequence of orientation events.
//
// YAML form:
//
//	loop: true
//	period: 4.0
//	samples:
//	  - {t: 0.0, alpha: 0, beta: 90, gamma: 0, screenOrientationAngle: 0}
//	  - {t: 0.5, alpha: 10, beta: 90, gamma: 0}
//
// JSON-lines form is one {"t": ..., "alpha": ...} object per line and never loops on its own.
type Recording struct {
	Loop bool `yaml:"loop"`

	// Period is the length of one loop in seconds. Zero means the last sample's offset.
	Period  float64         `yaml:"period"`
	Samples []RecordedEvent `yaml:"samples"`
}

// LoadRecording reads a recording, choosing JSON lines for .jsonl and .ndjson files and YAML otherwise.
//
// Parameters:
//   - path: recording file path
//
// Returns:
//   - *Recording: the validated recording
//   - error: error if the file cannot be read, parsed or validated
func LoadRecording(path string) (*Recording, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read recording %s: %w", path, err)
	}

	var rec *Recording
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jsonl", ".ndjson":
		rec, err = parseJSONLines(data)
	default:
		rec, err = parseYAML(data)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse recording %s: %w", path, err)
	}
	if err := rec.Validate(); err != nil {
		return nil, fmt.Errorf("invalid recording %s: %w", path, err)
	}
	return rec, nil
}

func parseYAML(data []byte) (*Recording, error) {
	var rec Recording
	if err := yaml.Unmarshal(data, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

func parseJSONLines(data []byte) (*Recording, error) {
	rec := &Recording{}
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for line := 1; scanner.Scan(); line++ {
		text := bytes.TrimSpace(scanner.Bytes())
		if len(text) == 0 {
			continue
		}
		var sample RecordedEvent
		if err := json.Unmarshal(text, &sample); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		rec.Samples = append(rec.Samples, sample)
	}
	return rec, scanner.Err()
}

// Validate reports every problem with the recording.
func (r *Recording) Validate() error {
	var errs []error
	if len(r.Samples) == 0 {
		errs = append(errs, errors.New("recording has no samples"))
	}
	prev := 0.0
	for i, s := range r.Samples {
		if s.T < prev {
			errs = append(errs, fmt.Errorf("sample %d: offset %.3fs is before the previous sample", i, s.T))
		}
		prev = max(prev, s.T)
	}
	if r.Period < 0 {
		errs = append(errs, fmt.Errorf("period %.3fs is negative", r.Period))
	}
	if r.Loop && r.period() <= 0 {
		errs = append(errs, errors.New("looping recording needs a positive period"))
	}
	if r.Loop && r.Period > 0 && len(r.Samples) > 0 {
		if last := r.Samples[len(r.Samples)-1].T; r.Period < last {
			errs = append(errs, fmt.Errorf("period %.3fs is shorter than the last sample offset %.3fs", r.Period, last))
		}
	}
	return errors.Join(errs...)
}

func (r *Recording) period() time.Duration {
	p := r.Period
	if p == 0 && len(r.Samples) > 0 {
		p = r.Samples[len(r.Samples)-1].T
	}
	return seconds(p)
}

// ReplaySource plays a recording back at its recorded timing. Run logs through the
// logger attached to its context with logger.WithLogger.
type ReplaySource struct {
	rec *Recording
}

var _ Source = &ReplaySource{}

// NewReplaySource creates a source over a validated recording.
func NewReplaySource(rec *Recording) *ReplaySource {
	return &ReplaySource{rec: rec}
}

func (s *ReplaySource) Run(ctx context.Context, handler Handler) error {
	log := logger.FromContext(ctx)
	log.Info("replaying sensor recording",
		logger.F("samples", len(s.rec.Samples)),
		logger.F("loop", s.rec.Loop),
		logger.F("period_s", s.rec.period().Seconds()),
	)

	timer := time.NewTimer(0)
	defer timer.Stop()
	<-timer.C

	start := time.Now()
	for {
		for _, sample := range s.rec.Samples {
			if wait := time.Until(start.Add(seconds(sample.T))); wait > 0 {
				timer.Reset(wait)
				select {
				case <-ctx.Done():
					return nil
				case <-timer.C:
				}
			} else if ctx.Err() != nil {
				return nil
			}
			handler(sample.Event)
		}
		if !s.rec.Loop {
			log.Debug("sensor recording finished")
			return nil
		}
		start = start.Add(s.rec.period())
	}
}

func seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}
