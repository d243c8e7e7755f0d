package preprocess

import "image"

const (
	claheTiles     = 8
	claheClipLimit = 3.0
	grayLevels     = 256
)

// EqualizeLocalContrast applies tiled, clip-limited histogram equalization
// (CLAHE). The image is divided into tiles x tiles regions; each region gets
// a clipped, renormalized tone mapping, and per-pixel output bilinearly
// interpolates between the four surrounding region mappings to avoid tile
// seams.
func EqualizeLocalContrast(src *image.Gray, tiles int, clipLimit float64) *image.Gray {
	w, h := src.Rect.Dx(), src.Rect.Dy()
	if w == 0 || h == 0 || tiles < 1 {
		return src
	}
	if tiles > w {
		tiles = w
	}
	if tiles > h {
		tiles = h
	}

	tileW := (w + tiles - 1) / tiles
	tileH := (h + tiles - 1) / tiles
	luts := make([][grayLevels]uint8, tiles*tiles)

	for ty := 0; ty < tiles; ty++ {
		for tx := 0; tx < tiles; tx++ {
			x0, y0 := tx*tileW, ty*tileH
			x1, y1 := minInt(x0+tileW, w), minInt(y0+tileH, h)
			luts[ty*tiles+tx] = tileMapping(src, x0, y0, x1, y1, clipLimit)
		}
	}

	dst := image.NewGray(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		// Position of the pixel relative to tile centers.
		fy := (float64(y)+0.5)/float64(tileH) - 0.5
		ty0 := int(fy)
		if fy < 0 {
			ty0 = 0
			fy = 0
		}
		ty1 := minInt(ty0+1, tiles-1)
		if ty0 > tiles-1 {
			ty0, ty1 = tiles-1, tiles-1
		}
		wy := fy - float64(ty0)
		if wy < 0 {
			wy = 0
		} else if wy > 1 {
			wy = 1
		}
		for x := 0; x < w; x++ {
			fx := (float64(x)+0.5)/float64(tileW) - 0.5
			tx0 := int(fx)
			if fx < 0 {
				tx0 = 0
				fx = 0
			}
			tx1 := minInt(tx0+1, tiles-1)
			if tx0 > tiles-1 {
				tx0, tx1 = tiles-1, tiles-1
			}
			wx := fx - float64(tx0)
			if wx < 0 {
				wx = 0
			} else if wx > 1 {
				wx = 1
			}

			v := src.Pix[y*src.Stride+x]
			v00 := float64(luts[ty0*tiles+tx0][v])
			v01 := float64(luts[ty0*tiles+tx1][v])
			v10 := float64(luts[ty1*tiles+tx0][v])
			v11 := float64(luts[ty1*tiles+tx1][v])
			top := v00*(1-wx) + v01*wx
			bot := v10*(1-wx) + v11*wx
			dst.Pix[y*w+x] = uint8(top*(1-wy) + bot*wy + 0.5)
		}
	}
	return dst
}

// tileMapping builds the clipped equalization LUT for one tile.
func tileMapping(src *image.Gray, x0, y0, x1, y1 int, clipLimit float64) [grayLevels]uint8 {
	var hist [grayLevels]int
	n := 0
	for y := y0; y < y1; y++ {
		row := src.Pix[y*src.Stride:]
		for x := x0; x < x1; x++ {
			hist[row[x]]++
			n++
		}
	}
	var lut [grayLevels]uint8
	if n == 0 {
		for i := range lut {
			lut[i] = uint8(i)
		}
		return lut
	}

	// Clip the histogram and redistribute the excess uniformly.
	clip := int(clipLimit * float64(n) / grayLevels)
	if clip < 1 {
		clip = 1
	}
	excess := 0
	for i, c := range hist {
		if c > clip {
			excess += c - clip
			hist[i] = clip
		}
	}
	share := excess / grayLevels
	rem := excess % grayLevels
	for i := range hist {
		hist[i] += share
		if i < rem {
			hist[i]++
		}
	}

	cum := 0
	scale := float64(grayLevels-1) / float64(n)
	for i, c := range hist {
		cum += c
		lut[i] = uint8(float64(cum)*scale + 0.5)
	}
	return lut
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
