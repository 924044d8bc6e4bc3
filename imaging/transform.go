package imaging

// Rot90 rotates the grid 90° counter-clockwise: pixel (r, c) of an N×M grid
// lands at (M-1-c, r).
func Rot90[G ~[][]E, E any](g G) G {
	if len(g) == 0 {
		return G{}
	}
	rows, cols := len(g), len(g[0])
	out := make(G, cols)
	for i := range cols {
		out[i] = make([]E, rows)
		for j := range rows {
			out[i][j] = g[j][cols-1-i]
		}
	}
	return out
}

// FlipLR mirrors every row left to right.
func FlipLR[G ~[][]E, E any](g G) G {
	out := make(G, len(g))
	for i, row := range g {
		out[i] = make([]E, len(row))
		for j, v := range row {
			out[i][len(row)-1-j] = v
		}
	}
	return out
}
