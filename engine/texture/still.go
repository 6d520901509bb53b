package texture

import (
	"sync"
	"time"

	"github.com/Carmen-Shannon/oxy-pano/common"
)

// Still is a single image. It reports dirty exactly once, after load.
type Still struct {
	mu       sync.Mutex
	frame    *common.TextureStagingData
	uploaded bool
}

var _ Source = &Still{}

// NewStill wraps already decoded pixels.
func NewStill(frame *common.TextureStagingData) *Still {
	return &Still{frame: frame}
}

// LoadStill decodes an image file into a Still source.
//
// Parameters:
//   - path: image file path
//   - maxDim: largest texture edge, 0 disables scaling
//
// Returns:
//   - *Still: loaded source
//   - error: error if decoding fails
func LoadStill(path string, maxDim int) (*Still, error) {
	frame, err := DecodeFile(path, maxDim)
	if err != nil {
		return nil, err
	}
	return NewStill(frame), nil
}

func (s *Still) Kind() Kind {
	return KindImage
}

func (s *Still) Size() (uint32, uint32) {
	return s.frame.Width, s.frame.Height
}

func (s *Still) Advance(time.Duration) (*common.TextureStagingData, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	dirty := !s.uploaded
	s.uploaded = true
	return s.frame, dirty
}
