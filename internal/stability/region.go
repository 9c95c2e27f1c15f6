package stability

// Region samples the scheme's stability region on a grid over the
// z = lambda*dt plane. Cell (row, col) covers the point with real part
// reMin + col*(reMax-reMin)/(cols-1) and imaginary part running from
// imMax down to imMin, so row 0 is the top of the plot. The result is
// meant for presentation layers to shade.
func Region(scheme Scheme, reMin, reMax, imMin, imMax float64, cols, rows int) [][]bool {
	if cols < 2 || rows < 2 {
		return nil
	}

	grid := make([][]bool, rows)
	for r := 0; r < rows; r++ {
		grid[r] = make([]bool, cols)
		im := imMax - float64(r)*(imMax-imMin)/float64(rows-1)
		for c := 0; c < cols; c++ {
			re := reMin + float64(c)*(reMax-reMin)/float64(cols-1)
			grid[r][c] = IsStableEigen(complex(re, im), 1, scheme)
		}
	}
	return grid
}
