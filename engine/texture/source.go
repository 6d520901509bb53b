package texture

import (
	"fmt"
	"time"

	"github.com/Carmen-Shannon/oxy-pano/common"
)

// Kind identifies the texture source type.
type Kind int

const (
	KindImage Kind = iota
	KindVideo
)

// String returns the config name of the kind.
func (k Kind) String() string {
	switch k {
	case KindImage:
		return "image"
	case KindVideo:
		return "video"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Source supplies panorama pixels to the renderer. A source is chosen once
// at startup and never swapped.
type Source interface {
	// Kind reports whether this is a still image or a video.
	Kind() Kind

	// Size returns the frame dimensions in pixels. All frames share one size.
	//
	// Returns:
	//   - width, height: frame size
	Size() (width, height uint32)

	// Advance moves the source forward by dt and reports the frame to upload.
	//
	// Parameters:
	//   - dt: wall-clock time since the previous call
	//
	// Returns:
	//   - *common.TextureStagingData: current frame
	//   - bool: true if the frame must be uploaded
	Advance(dt time.Duration) (*common.TextureStagingData, bool)
}

// Pausable is implemented by sources with a playback clock.
type Pausable interface {
	Paused() bool
	SetPaused(paused bool)
}
