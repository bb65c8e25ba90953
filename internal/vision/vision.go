// Package vision converts between tensors and images for inspecting
// observations and reconstructions during training.
package vision

import (
	"fmt"
	"image"
	"image/color"

	"github.com/trek-rl/trek/internal/tensor"
)

// ToRGB converts a CHW float tensor with values in [0, 1] into an RGB
// image. A leading batch dimension of size 1 is squeezed away. The
// output axes are transposed: a [3, H, W] tensor produces an H-wide,
// W-tall image, matching the row/column swap downstream viewers expect.
func ToRGB[B tensor.Backend](t *tensor.Tensor[float32, B]) (*image.RGBA, error) {
	shape := t.Shape()
	if len(shape) == 4 {
		if shape[0] != 1 {
			return nil, fmt.Errorf("vision: cannot squeeze batch dimension of size %d", shape[0])
		}
		shape = shape[1:]
	}
	if len(shape) != 3 || shape[0] != 3 {
		return nil, fmt.Errorf("vision: expected [3, H, W] tensor, got %v", t.Shape())
	}

	h, w := shape[1], shape[2]
	data := t.Data()
	plane := h * w

	img := image.NewRGBA(image.Rect(0, 0, h, w))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r := clampByte(data[0*plane+y*w+x])
			g := clampByte(data[1*plane+y*w+x])
			b := clampByte(data[2*plane+y*w+x])
			// Transposed axes: tensor row y becomes image column x.
			img.SetRGBA(y, x, color.RGBA{R: r, G: g, B: b, A: 255})
		}
	}
	return img, nil
}

// FromImage converts an image into a [3, H, W] float32 tensor with
// values scaled to [0, 1]. The alpha channel is dropped.
func FromImage[B tensor.Backend](img image.Image, backend B) (*tensor.Tensor[float32, B], error) {
	bounds := img.Bounds()
	h, w := bounds.Dy(), bounds.Dx()
	if h == 0 || w == 0 {
		return nil, fmt.Errorf("vision: empty image %v", bounds)
	}

	t := tensor.Zeros[float32](tensor.Shape{3, h, w}, backend)
	data := t.Data()
	plane := h * w

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r, g, b, _ := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			data[0*plane+y*w+x] = float32(r) / 0xffff
			data[1*plane+y*w+x] = float32(g) / 0xffff
			data[2*plane+y*w+x] = float32(b) / 0xffff
		}
	}
	return t, nil
}

func clampByte(v float32) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v*255 + 0.5)
}
