package common

// Plane represents a plane in 3D space using the equation: n·p + d = 0.
type Plane struct {
	Normal   Vec3
	Distance float32
}

// SignedDistance returns the signed distance of p from the plane.
// The plane must be normalized for the result to be a true distance.
func (p Plane) SignedDistance(point Vec3) float32 {
	return p.Normal.Dot(point) + p.Distance
}

// Frustum represents the six planes of a view frustum for culling.
// Planes are oriented so that positive half-space is inside the frustum.
type Frustum struct {
	Planes [6]Plane // Left, Right, Bottom, Top, Near, Far
}

// FrustumPlane indices for clarity
const (
	FrustumLeft   = 0
	FrustumRight  = 1
	FrustumBottom = 2
	FrustumTop    = 3
	FrustumNear   = 4
	FrustumFar    = 5
)

// frustumRows lists, per plane, which matrix row is combined with row 3 and the sign used.
// The near plane uses row 2 alone because depth is mapped to [0, 1].
var frustumRows = [6]struct {
	row     int
	sign    float32
	withRow bool
}{
	FrustumLeft:   {0, 1, true},
	FrustumRight:  {0, -1, true},
	FrustumBottom: {1, 1, true},
	FrustumTop:    {1, -1, true},
	FrustumNear:   {2, 1, false},
	FrustumFar:    {2, -1, true},
}

// ExtractFrustumFromMatrix extracts frustum planes from a view-projection matrix
// using the Gribb/Hartmann method, adapted to a [0, 1] clip depth range.
//
// Reference: https://www8.cs.umu.se/kurser/5DV051/HT12/lab/plane_extraction.pdf
//
// Parameters:
//   - viewProj: 16 float32 values representing the view-projection matrix (column-major)
//
// Returns:
//   - Frustum: the extracted frustum with normalized planes
func ExtractFrustumFromMatrix(viewProj []float32) Frustum {
	var f Frustum
	// For column-major M, row r is (M[r], M[4+r], M[8+r], M[12+r]).
	row := func(r int) [4]float32 {
		return [4]float32{viewProj[r], viewProj[4+r], viewProj[8+r], viewProj[12+r]}
	}
	w := row(3)
	for i, fr := range frustumRows {
		r := row(fr.row)
		var eq [4]float32
		for k := range eq {
			eq[k] = fr.sign * r[k]
			if fr.withRow {
				eq[k] += w[k]
			}
		}
		f.Planes[i] = Plane{Normal: Vec3{eq[0], eq[1], eq[2]}, Distance: eq[3]}
		f.normalizePlane(i)
	}
	return f
}

// ContainsBox reports whether the axis-aligned box [minimum, maximum] is at least partly inside the frustum.
// For each plane only the box corner furthest along the plane normal is tested.
//
// Parameters:
//   - minimum: the box minimum corner
//   - maximum: the box maximum corner
//
// Returns:
//   - bool: false only when the box lies fully outside one of the planes
func (f Frustum) ContainsBox(minimum, maximum Vec3) bool {
	for _, p := range f.Planes {
		var positive Vec3
		for i := 0; i < 3; i++ {
			if p.Normal[i] >= 0 {
				positive[i] = maximum[i]
			} else {
				positive[i] = minimum[i]
			}
		}
		if p.SignedDistance(positive) < 0 {
			return false
		}
	}
	return true
}

// normalizePlane normalizes a frustum plane so that the normal has unit length.
func (f *Frustum) normalizePlane(index int) {
	p := &f.Planes[index]
	length := p.Normal.Length()
	if length > 0 {
		invLen := 1.0 / length
		p.Normal = p.Normal.Scale(invLen)
		p.Distance *= invLen
	}
}
