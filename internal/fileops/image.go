package fileops

import (
	"bytes"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"

	"golang.org/x/image/draw"
)

// decodeImage attempts to decode content as any of the image formats the
// library supports. It never consults the declared type — a file claiming
// to be a PNG but actually containing a JPEG still decodes fine, and a file
// whose content genuinely isn't an image fails regardless of what it
// claims to be.
func decodeImage(content []byte) (image.Image, string, error) {
	img, format, err := image.Decode(bytes.NewReader(content))
	if err != nil {
		return nil, "", err
	}
	return img, format, nil
}

// encodeImage re-encodes img into the given target type ("jpg"/"jpeg",
// "png", or "gif"). Returns false if the target isn't one of those.
func encodeImage(img image.Image, target string) ([]byte, bool) {
	var buf bytes.Buffer
	switch target {
	case "jpg", "jpeg":
		if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 90}); err != nil {
			return nil, false
		}
	case "png":
		if err := png.Encode(&buf, img); err != nil {
			return nil, false
		}
	case "gif":
		if err := gif.Encode(&buf, img, nil); err != nil {
			return nil, false
		}
	default:
		return nil, false
	}
	return buf.Bytes(), true
}

// scaleImage resizes img so it fits within maxW x maxH, preserving aspect
// ratio, using a Catmull-Rom (bicubic-family) kernel for quality. The
// caller has already established maxW, maxH > 0.
func scaleImage(img image.Image, maxW, maxH int) image.Image {
	bounds := img.Bounds()
	origW, origH := bounds.Dx(), bounds.Dy()
	if origW == 0 || origH == 0 {
		return img
	}

	scale := float64(maxW) / float64(origW)
	if hScale := float64(maxH) / float64(origH); hScale < scale {
		scale = hScale
	}
	if scale > 1 {
		scale = 1
	}

	newW := int(float64(origW) * scale)
	newH := int(float64(origH) * scale)
	if newW < 1 {
		newW = 1
	}
	if newH < 1 {
		newH = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, newW, newH))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
	return dst
}
