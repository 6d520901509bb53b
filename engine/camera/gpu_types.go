package camera

import (
	"encoding/binary"
	"math"
	"unsafe"

	"github.com/go-gl/mathgl/mgl32"
)

// GPUCameraUniform is the camera uniform buffer at @group(0) @binding(0):
//
//	struct Camera {
//	    viewProj: mat4x4<f32>,
//	};
type GPUCameraUniform struct {
	ViewProj mgl32.Mat4 // offset 0: column-major view-projection matrix
}

func (g *GPUCameraUniform) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the uniform in little-endian column-major order.
func (g *GPUCameraUniform) Marshal() []byte {
	buf := make([]byte, g.Size())
	for i, v := range g.ViewProj {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(v))
	}
	return buf
}
