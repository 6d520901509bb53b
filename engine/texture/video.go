package texture

import (
	"errors"
	"fmt"
	"image"
	"image/gif"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/oxy-pano/common"
	"golang.org/x/image/draw"
)

// defaultGIFDelay is used for GIF frames that declare a zero delay.
const defaultGIFDelay = 100 * time.Millisecond

// Video is a looping sequence of frames played back on a wall-clock timeline.
// Frames are decoded up front; playback only picks which one to upload.
type Video struct {
	mu sync.Mutex

	frames    []*common.TextureStagingData
	durations []time.Duration
	total     time.Duration

	clock   time.Duration
	index   int
	paused  bool
	started bool
}

var (
	_ Source   = &Video{}
	_ Pausable = &Video{}
)

// NewVideo builds a looping video from decoded frames.
//
// Parameters:
//   - frames: decoded frames, all the same size
//   - durations: display time of each frame, one per frame, all positive
//
// Returns:
//   - *Video: the video source
//   - error: error if frames are empty, sizes differ, or durations are invalid
func NewVideo(frames []*common.TextureStagingData, durations []time.Duration) (*Video, error) {
	if len(frames) == 0 {
		return nil, errors.New("video has no frames")
	}
	if len(durations) != len(frames) {
		return nil, fmt.Errorf("video has %d frames but %d durations", len(frames), len(durations))
	}

	v := &Video{
		frames:    frames,
		durations: durations,
	}
	for i, f := range frames {
		if f == nil {
			return nil, fmt.Errorf("frame %d is nil", i)
		}
	}
	w, h := frames[0].Width, frames[0].Height
	for i, f := range frames {
		if f.Width != w || f.Height != h {
			return nil, fmt.Errorf("frame %d is %dx%d, expected %dx%d", i, f.Width, f.Height, w, h)
		}
		if durations[i] <= 0 {
			return nil, fmt.Errorf("frame %d has non-positive duration %s", i, durations[i])
		}
		v.total += durations[i]
	}
	return v, nil
}

// LoadVideo loads an animated GIF, or a frame sequence when path is a
// directory or glob pattern.
//
// Parameters:
//   - path: .gif file, directory of frames, or glob such as "frames/*.jpg"
//   - fps: playback rate for frame sequences, ignored for GIFs
//   - maxDim: largest texture edge, 0 disables scaling
//   - workers: number of parallel decoders for frame sequences
//
// Returns:
//   - *Video: loaded video
//   - error: error if no frames could be decoded
func LoadVideo(path string, fps float64, maxDim, workers int) (*Video, error) {
	if strings.EqualFold(filepath.Ext(path), ".gif") {
		return LoadGIF(path, maxDim)
	}

	pattern := path
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		pattern = filepath.Join(path, "*")
	}
	return LoadFrameSequence(pattern, fps, maxDim, workers)
}

// LoadGIF decodes every frame of an animated GIF, compositing each frame over
// the previous ones according to its disposal method.
//
// Parameters:
//   - path: GIF file path
//   - maxDim: largest texture edge, 0 disables scaling
//
// Returns:
//   - *Video: looping video with per-frame GIF delays
//   - error: error if the file cannot be decoded
func LoadGIF(path string, maxDim int) (*Video, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open video file %s: %w", path, err)
	}
	defer file.Close()

	g, err := gif.DecodeAll(file)
	if err != nil {
		return nil, fmt.Errorf("failed to decode gif %s: %w", path, err)
	}
	return gifToVideo(g, maxDim)
}

func gifToVideo(g *gif.GIF, maxDim int) (*Video, error) {
	if len(g.Image) == 0 {
		return nil, errors.New("gif has no frames")
	}

	canvasRect := image.Rect(0, 0, g.Config.Width, g.Config.Height)
	if canvasRect.Empty() {
		canvasRect = g.Image[0].Bounds()
	}
	canvas := image.NewRGBA(canvasRect)

	frames := make([]*common.TextureStagingData, 0, len(g.Image))
	durations := make([]time.Duration, 0, len(g.Image))
	for i, paletted := range g.Image {
		var previous *image.RGBA
		disposal := byte(0)
		if i < len(g.Disposal) {
			disposal = g.Disposal[i]
		}
		if disposal == gif.DisposalPrevious {
			previous = image.NewRGBA(canvasRect)
			draw.Draw(previous, canvasRect, canvas, canvasRect.Min, draw.Src)
		}

		draw.Draw(canvas, paletted.Bounds(), paletted, paletted.Bounds().Min, draw.Over)

		frame, err := ToStaging(canvas, maxDim)
		if err != nil {
			return nil, fmt.Errorf("frame %d: %w", i, err)
		}
		frames = append(frames, frame)

		delay := defaultGIFDelay
		if i < len(g.Delay) && g.Delay[i] > 0 {
			delay = time.Duration(g.Delay[i]) * 10 * time.Millisecond
		}
		durations = append(durations, delay)

		switch disposal {
		case gif.DisposalBackground:
			draw.Draw(canvas, paletted.Bounds(), image.Transparent, image.Point{}, draw.Src)
		case gif.DisposalPrevious:
			draw.Draw(canvas, canvasRect, previous, canvasRect.Min, draw.Src)
		}
	}

	return NewVideo(frames, durations)
}

// LoadFrameSequence decodes every file matching pattern, in lexical order, as
// one video frame. Frames are decoded in parallel on a worker pool.
//
// Parameters:
//   - pattern: filepath.Glob pattern
//   - fps: playback rate, must be positive
//   - maxDim: largest texture edge, 0 disables scaling
//   - workers: number of parallel decoders, at least 1
//
// Returns:
//   - *Video: looping video at a constant frame rate
//   - error: joined decode errors, or an error if nothing matched
func LoadFrameSequence(pattern string, fps float64, maxDim, workers int) (*Video, error) {
	if fps <= 0 {
		return nil, fmt.Errorf("frame rate must be positive, got %v", fps)
	}

	paths, err := filepath.Glob(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid frame pattern %q: %w", pattern, err)
	}
	paths = filterImages(paths)
	if len(paths) == 0 {
		return nil, fmt.Errorf("no frames match %q", pattern)
	}
	sort.Strings(paths)

	frames, err := decodeParallel(paths, maxDim, workers)
	if err != nil {
		return nil, err
	}

	frameTime := time.Duration(float64(time.Second) / fps)
	durations := make([]time.Duration, len(frames))
	for i := range durations {
		durations[i] = frameTime
	}
	return NewVideo(frames, durations)
}

// decodeParallel decodes paths on a dynamic worker pool. A WaitGroup is the
// barrier since pool.Wait() blocks until workers idle out.
func decodeParallel(paths []string, maxDim, workers int) ([]*common.TextureStagingData, error) {
	pool := worker.NewDynamicWorkerPool(max(1, workers), len(paths), 5*time.Second)
	defer pool.Stop()

	frames := make([]*common.TextureStagingData, len(paths))
	errs := make([]error, len(paths))

	var wg sync.WaitGroup
	for i, path := range paths {
		wg.Add(1)
		pool.SubmitTask(worker.Task{
			ID: i,
			Do: func() (any, error) {
				defer wg.Done()
				frames[i], errs[i] = DecodeFile(path, maxDim)
				return nil, errs[i]
			},
		})
	}
	wg.Wait()

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return frames, nil
}

var imageExtensions = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true, ".gif": true,
	".webp": true, ".bmp": true, ".tif": true, ".tiff": true,
}

func filterImages(paths []string) []string {
	out := paths[:0]
	for _, p := range paths {
		if imageExtensions[strings.ToLower(filepath.Ext(p))] {
			out = append(out, p)
		}
	}
	return out
}

func (v *Video) Kind() Kind {
	return KindVideo
}

func (v *Video) Size() (uint32, uint32) {
	return v.frames[0].Width, v.frames[0].Height
}

// FrameCount returns the number of frames in one loop.
func (v *Video) FrameCount() int {
	return len(v.frames)
}

// Duration returns the length of one loop.
func (v *Video) Duration() time.Duration {
	return v.total
}

func (v *Video) Paused() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.paused
}

func (v *Video) SetPaused(paused bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.paused = paused
}

// Advance moves the playback clock by dt, wrapping at the end of the loop.
// The first call always reports the frame as dirty.
func (v *Video) Advance(dt time.Duration) (*common.TextureStagingData, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if !v.paused && dt > 0 {
		v.clock = (v.clock + dt) % v.total
	}

	idx := v.frameAt(v.clock)
	dirty := !v.started || idx != v.index
	v.started = true
	v.index = idx
	return v.frames[idx], dirty
}

// frameAt maps a clock position inside one loop to a frame index.
// Caller must hold the mutex.
func (v *Video) frameAt(t time.Duration) int {
	for i, d := range v.durations {
		if t < d {
			return i
		}
		t -= d
	}
	return len(v.durations) - 1
}
