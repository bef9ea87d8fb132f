package nails

import "github.com/nailtryon/tryon/internal/hand"

func rec(f Finger, x, y, w, h, rot, top, bottom float64) Record {
	return Record{
		Finger:    f,
		X:         x,
		Y:         y,
		Width:     w,
		Height:    h,
		Rotation:  rot,
		Curvature: Curvature{Top: top, Bottom: bottom},
	}
}

// referenceSets are hand-tuned per photograph; deeper-toned photographs
// drift toward larger, further-rotated placements. Treat as fixtures.
var referenceSets = [hand.NumPhotos]Set{
	{ // hand 1, lightest
		rec(Thumb, 0.260, 0.275, 0.076, 0.122, -16, 0.79, 0.37),
		rec(Index, 0.360, 0.180, 0.066, 0.152, 6, 0.88, 0.44),
		rec(Middle, 0.435, 0.150, 0.069, 0.167, 1, 0.88, 0.44),
		rec(Ring, 0.510, 0.180, 0.059, 0.147, -2, 0.85, 0.43),
		rec(Pinky, 0.575, 0.240, 0.049, 0.107, -14, 0.75, 0.34),
	},
	{ // hand 2
		rec(Thumb, 0.265, 0.280, 0.075, 0.120, -17, 0.78, 0.36),
		rec(Index, 0.365, 0.185, 0.065, 0.150, 7, 0.87, 0.43),
		rec(Middle, 0.440, 0.155, 0.068, 0.165, 2, 0.87, 0.43),
		rec(Ring, 0.515, 0.185, 0.058, 0.145, -3, 0.84, 0.42),
		rec(Pinky, 0.580, 0.245, 0.048, 0.105, -15, 0.74, 0.33),
	},
	{ // hand 3
		rec(Thumb, 0.270, 0.285, 0.077, 0.123, -18, 0.77, 0.35),
		rec(Index, 0.370, 0.190, 0.064, 0.148, 5, 0.86, 0.42),
		rec(Middle, 0.445, 0.160, 0.067, 0.163, 0, 0.86, 0.42),
		rec(Ring, 0.520, 0.190, 0.057, 0.143, -4, 0.83, 0.41),
		rec(Pinky, 0.585, 0.250, 0.047, 0.103, -16, 0.73, 0.32),
	},
	{ // hand 4
		rec(Thumb, 0.275, 0.290, 0.078, 0.124, -19, 0.76, 0.34),
		rec(Index, 0.375, 0.195, 0.063, 0.153, 4, 0.85, 0.41),
		rec(Middle, 0.450, 0.165, 0.066, 0.168, -1, 0.85, 0.41),
		rec(Ring, 0.525, 0.195, 0.056, 0.148, -5, 0.82, 0.40),
		rec(Pinky, 0.590, 0.255, 0.046, 0.108, -13, 0.72, 0.31),
	},
	{ // hand 5
		rec(Thumb, 0.280, 0.295, 0.080, 0.125, -20, 0.76, 0.35),
		rec(Index, 0.375, 0.200, 0.062, 0.155, 6, 0.85, 0.42),
		rec(Middle, 0.450, 0.170, 0.065, 0.170, 1, 0.85, 0.42),
		rec(Ring, 0.525, 0.200, 0.055, 0.150, -4, 0.83, 0.41),
		rec(Pinky, 0.590, 0.260, 0.045, 0.110, -12, 0.73, 0.32),
	},
	{ // hand 6
		rec(Thumb, 0.285, 0.300, 0.081, 0.127, -21, 0.75, 0.34),
		rec(Index, 0.380, 0.205, 0.061, 0.157, 3, 0.84, 0.41),
		rec(Middle, 0.455, 0.175, 0.064, 0.172, -2, 0.84, 0.41),
		rec(Ring, 0.530, 0.205, 0.054, 0.152, -6, 0.82, 0.40),
		rec(Pinky, 0.595, 0.265, 0.044, 0.112, -11, 0.72, 0.31),
	},
	{ // hand 7
		rec(Thumb, 0.290, 0.305, 0.082, 0.128, -22, 0.74, 0.33),
		rec(Index, 0.385, 0.210, 0.060, 0.158, 2, 0.84, 0.41),
		rec(Middle, 0.460, 0.180, 0.063, 0.173, -3, 0.84, 0.41),
		rec(Ring, 0.535, 0.210, 0.053, 0.153, -7, 0.81, 0.39),
		rec(Pinky, 0.600, 0.270, 0.043, 0.113, -10, 0.71, 0.30),
	},
	{ // hand 8
		rec(Thumb, 0.295, 0.310, 0.083, 0.130, -23, 0.73, 0.32),
		rec(Index, 0.390, 0.215, 0.059, 0.160, 1, 0.83, 0.40),
		rec(Middle, 0.465, 0.185, 0.062, 0.175, -4, 0.83, 0.40),
		rec(Ring, 0.540, 0.215, 0.052, 0.155, -8, 0.80, 0.38),
		rec(Pinky, 0.605, 0.275, 0.042, 0.115, -9, 0.70, 0.29),
	},
	{ // hand 9
		rec(Thumb, 0.300, 0.315, 0.085, 0.132, -24, 0.72, 0.31),
		rec(Index, 0.395, 0.220, 0.058, 0.162, 0, 0.82, 0.39),
		rec(Middle, 0.470, 0.190, 0.061, 0.177, -5, 0.82, 0.39),
		rec(Ring, 0.545, 0.220, 0.051, 0.157, -9, 0.79, 0.37),
		rec(Pinky, 0.610, 0.280, 0.041, 0.117, -8, 0.69, 0.28),
	},
	{ // hand 10, deepest
		rec(Thumb, 0.305, 0.320, 0.087, 0.135, -25, 0.71, 0.30),
		rec(Index, 0.400, 0.225, 0.057, 0.165, -1, 0.81, 0.38),
		rec(Middle, 0.475, 0.195, 0.060, 0.180, -6, 0.81, 0.38),
		rec(Ring, 0.550, 0.225, 0.050, 0.160, -10, 0.78, 0.36),
		rec(Pinky, 0.615, 0.285, 0.040, 0.120, -7, 0.68, 0.27),
	},
}

var defaultSet = Set{
	rec(Thumb, 0.415, 0.345, 0.082, 0.125, -16, 0.72, 0.32),
	rec(Index, 0.518, 0.245, 0.062, 0.155, 6, 0.82, 0.41),
	rec(Middle, 0.598, 0.215, 0.062, 0.165, 1, 0.82, 0.41),
	rec(Ring, 0.678, 0.245, 0.052, 0.145, -4, 0.81, 0.40),
	rec(Pinky, 0.748, 0.315, 0.042, 0.105, -9, 0.70, 0.31),
}

// Reference returns the built-in geometry of a reference photograph. Invalid
// ids resolve to the default set.
func Reference(id hand.PhotoID) Set {
	if !id.Valid() {
		return defaultSet
	}
	return referenceSets[id-1]
}

// Default returns the template set used for photographs outside the
// reference set.
func Default() Set { return defaultSet }
