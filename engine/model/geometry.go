package model

import "math"

// SphereParams describes a UV sphere, optionally a partial one.
// Phi sweeps around the vertical axis, theta runs from the north pole down.
type SphereParams struct {
	Radius         float32
	WidthSegments  int
	HeightSegments int
	PhiStart       float64
	PhiLength      float64
	ThetaStart     float64
	ThetaLength    float64
}

// CylinderParams describes an open cylinder centred on the origin.
type CylinderParams struct {
	RadiusTop      float32
	RadiusBottom   float32
	Height         float32
	RadialSegments int
	HeightSegments int
}

// Sphere generates a UV sphere with counter-clockwise outward faces.
// Rows of triangles touching a pole collapse to a single triangle per quad.
//
// Parameters:
//   - p: sphere parameters; segment counts below 3 and 2 are raised to those minimums
//
// Returns:
//   - []GPUVertex: (w+1)*(h+1) vertices
//   - []uint32: triangle list indices
func Sphere(p SphereParams) ([]GPUVertex, []uint32) {
	ws := max(3, p.WidthSegments)
	hs := max(2, p.HeightSegments)
	thetaEnd := math.Min(p.ThetaStart+p.ThetaLength, math.Pi)

	vertices := make([]GPUVertex, 0, (ws+1)*(hs+1))
	grid := make([][]uint32, hs+1)
	for iy := 0; iy <= hs; iy++ {
		v := float64(iy) / float64(hs)
		theta := p.ThetaStart + v*p.ThetaLength
		row := make([]uint32, ws+1)
		for ix := 0; ix <= ws; ix++ {
			u := float64(ix) / float64(ws)
			phi := p.PhiStart + u*p.PhiLength
			vertices = append(vertices, GPUVertex{
				Position: [3]float32{
					-p.Radius * float32(math.Cos(phi)*math.Sin(theta)),
					p.Radius * float32(math.Cos(theta)),
					p.Radius * float32(math.Sin(phi)*math.Sin(theta)),
				},
				TexCoord: [2]float32{float32(u), float32(v)},
			})
			row[ix] = uint32(len(vertices) - 1)
		}
		grid[iy] = row
	}

	indices := make([]uint32, 0, ws*hs*6)
	for iy := 0; iy < hs; iy++ {
		for ix := 0; ix < ws; ix++ {
			a := grid[iy][ix+1]
			b := grid[iy][ix]
			c := grid[iy+1][ix]
			d := grid[iy+1][ix+1]
			if iy != 0 || p.ThetaStart > 0 {
				indices = append(indices, a, b, d)
			}
			if iy != hs-1 || thetaEnd < math.Pi {
				indices = append(indices, b, c, d)
			}
		}
	}
	return vertices, indices
}

// Cylinder generates the side wall of a cylinder with counter-clockwise
// outward faces. No caps are generated.
//
// Parameters:
//   - p: cylinder parameters; segment counts below 3 and 1 are raised to those minimums
//
// Returns:
//   - []GPUVertex: (radial+1)*(height+1) vertices
//   - []uint32: triangle list indices
func Cylinder(p CylinderParams) ([]GPUVertex, []uint32) {
	rs := max(3, p.RadialSegments)
	hs := max(1, p.HeightSegments)
	halfHeight := p.Height / 2

	vertices := make([]GPUVertex, 0, (rs+1)*(hs+1))
	grid := make([][]uint32, hs+1)
	for y := 0; y <= hs; y++ {
		v := float32(y) / float32(hs)
		radius := v*(p.RadiusBottom-p.RadiusTop) + p.RadiusTop
		row := make([]uint32, rs+1)
		for x := 0; x <= rs; x++ {
			u := float64(x) / float64(rs)
			theta := u * 2 * math.Pi
			vertices = append(vertices, GPUVertex{
				Position: [3]float32{
					radius * float32(math.Sin(theta)),
					halfHeight - v*p.Height,
					radius * float32(math.Cos(theta)),
				},
				TexCoord: [2]float32{float32(u), v},
			})
			row[x] = uint32(len(vertices) - 1)
		}
		grid[y] = row
	}

	indices := make([]uint32, 0, rs*hs*6)
	for y := 0; y < hs; y++ {
		for x := 0; x < rs; x++ {
			a := grid[y][x]
			b := grid[y+1][x]
			c := grid[y+1][x+1]
			d := grid[y][x+1]
			indices = append(indices, a, b, d, b, c, d)
		}
	}
	return vertices, indices
}

// ScaleVertices multiplies every position by (sx, sy, sz) in place. When the
// scale mirrors an odd number of axes the triangle winding is reversed as seen
// from outside, which is how a panorama surface is turned to face inward.
func ScaleVertices(vertices []GPUVertex, sx, sy, sz float32) {
	for i := range vertices {
		vertices[i].Position[0] *= sx
		vertices[i].Position[1] *= sy
		vertices[i].Position[2] *= sz
	}
}
