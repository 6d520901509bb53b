package material

import (
	_ "embed"
	"encoding/binary"
	"math"
	"unsafe"
)

//go:embed assets/panorama.vert.wgsl
var BasicVertexSource string

//go:embed assets/panorama.frag.wgsl
var BasicFragmentSource string

// GPUPanoramaParams is the optional per-frame uniform a custom panorama shader may declare
// as a buffer in the texture group. Layout matches:
//
//	struct PanoramaParams {
//	    resolution: vec2<f32>,
//	    time: f32,
//	    frame: u32,
//	};
type GPUPanoramaParams struct {
	Resolution [2]float32 // offset 0: texture width and height in texels
	Time       float32    // offset 8: seconds since the viewer started
	Frame      uint32     // offset 12: rendered frame counter
}

func (g *GPUPanoramaParams) Size() int {
	return int(unsafe.Sizeof(*g))
}

func (g *GPUPanoramaParams) Marshal() []byte {
	buf := make([]byte, 16)
	binary.LittleEndian.PutUint32(buf[0:4], math.Float32bits(g.Resolution[0]))
	binary.LittleEndian.PutUint32(buf[4:8], math.Float32bits(g.Resolution[1]))
	binary.LittleEndian.PutUint32(buf[8:12], math.Float32bits(g.Time))
	binary.LittleEndian.PutUint32(buf[12:16], g.Frame)
	return buf
}
