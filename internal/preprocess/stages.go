package preprocess

import (
	"image"

	"github.com/anthonynsimon/bild/effect"

	"github.com/MeKo-Tech/labelscan/internal/utils"
)

const (
	denoiseSize     = 3.0
	unsharpRadius   = 3.0
	unsharpAmount   = 0.7
	morphRadius     = 1.0
	thresholdBlock  = 21
	thresholdOffset = 5
)

// Denoise removes sensor noise with a small median filter, which preserves
// bar edges far better than Gaussian smoothing.
func Denoise(g *image.Gray) *image.Gray {
	return utils.ToGray(effect.Median(g, denoiseSize))
}

// Sharpen applies unsharp masking: out = in + amount*(in - blur(in)).
func Sharpen(g *image.Gray) *image.Gray {
	return utils.ToGray(effect.UnsharpMask(g, unsharpRadius, unsharpAmount))
}

// MorphClose performs a morphological closing (dilate then erode) to fill
// small speckle gaps inside the binarized symbol modules.
func MorphClose(g *image.Gray) *image.Gray {
	return utils.ToGray(effect.Erode(effect.Dilate(g, morphRadius), morphRadius))
}

// AdaptiveThreshold binarizes using the local mean over a block x block
// window: a pixel becomes white when it exceeds (localMean - offset).
// The local mean is computed with an integral image, so the cost is
// independent of the block size.
func AdaptiveThreshold(src *image.Gray, block, offset int) *image.Gray {
	w, h := src.Rect.Dx(), src.Rect.Dy()
	if w == 0 || h == 0 {
		return src
	}
	if block < 3 {
		block = 3
	}
	if block%2 == 0 {
		block++
	}
	half := block / 2

	// integral[y][x] holds the sum over src[0:y][0:x].
	integral := make([]uint64, (w+1)*(h+1))
	for y := 0; y < h; y++ {
		var rowSum uint64
		row := src.Pix[y*src.Stride:]
		for x := 0; x < w; x++ {
			rowSum += uint64(row[x])
			integral[(y+1)*(w+1)+x+1] = integral[y*(w+1)+x+1] + rowSum
		}
	}

	dst := image.NewGray(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		y0 := utils.ClampInt(y-half, 0, h-1)
		y1 := utils.ClampInt(y+half, 0, h-1)
		for x := 0; x < w; x++ {
			x0 := utils.ClampInt(x-half, 0, w-1)
			x1 := utils.ClampInt(x+half, 0, w-1)
			area := uint64((x1 - x0 + 1) * (y1 - y0 + 1))
			sum := integral[(y1+1)*(w+1)+x1+1] - integral[y0*(w+1)+x1+1] -
				integral[(y1+1)*(w+1)+x0] + integral[y0*(w+1)+x0]
			mean := int(sum / area)
			if int(src.Pix[y*src.Stride+x]) > mean-offset {
				dst.Pix[y*w+x] = 255
			}
		}
	}
	return dst
}
