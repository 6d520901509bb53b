package scene

import _ "embed"

// FisheyeFragmentSource is an example custom fragment shader for raw fisheye footage.
// Pair it with material.BasicVertexSource.
//
//go:embed assets/fisheye.frag.wgsl
var FisheyeFragmentSource string
