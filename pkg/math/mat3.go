package math

// Mat3 is a 3x3 matrix in column-major order.
type Mat3 [9]float32

// Mat3 returns the upper-left 3x3 portion of the matrix.
func (m Mat4) Mat3() Mat3 {
	return Mat3{
		m[0], m[1], m[2],
		m[4], m[5], m[6],
		m[8], m[9], m[10],
	}
}

// NormalMatrix returns transpose(inverse(m)) reduced to 3x3. It keeps normals
// perpendicular to their surface under non-uniform scale.
func NormalMatrix(m Mat4) Mat3 {
	return m.Inverse().Transpose().Mat3()
}

// Ptr returns a pointer to the first element (for OpenGL uniform calls).
func (m *Mat3) Ptr() *float32 {
	return &m[0]
}
