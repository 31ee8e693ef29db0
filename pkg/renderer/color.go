package renderer

import (
	"image/color"
	"math"

	"github.com/df07/go-weekend-raytracer/pkg/core"
)

// intensity keeps quantized channels below 255 so rounding never overflows a byte
var intensity = core.NewInterval(0.000, 0.999)

// linearToGamma applies gamma 2 correction; non-positive values map to 0
func linearToGamma(linearComponent float64) float64 {
	if linearComponent > 0 {
		return math.Sqrt(linearComponent)
	}
	return 0
}

// channelToByte gamma-corrects, clamps and quantizes one linear color channel
func channelToByte(linearComponent float64) uint8 {
	return uint8(255 * intensity.Clamp(linearToGamma(linearComponent)))
}

// ColorToBytes converts a linear color to gamma-corrected 8-bit channels
func ColorToBytes(pixelColor core.Vec3) (r, g, b uint8) {
	return channelToByte(pixelColor.X), channelToByte(pixelColor.Y), channelToByte(pixelColor.Z)
}

// vec3ToColor converts a Vec3 color to RGBA with gamma correction and clamping
func vec3ToColor(pixelColor core.Vec3) color.RGBA {
	r, g, b := ColorToBytes(pixelColor)
	return color.RGBA{R: r, G: g, B: b, A: 255}
}
