package imaging

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	_ "image/gif"  // GIF decoder registration
	_ "image/jpeg" // JPEG decoder registration
	"image/png"
	"net/http"
	"strings"

	"golang.org/x/image/draw"
)

// Normalizer fits replacement raster images into an asset's frame and
// re-encodes them as embeddable data URIs.
//
// Example usage:
//
//	n := imaging.NewNormalizer()
//	uri, err := n.Normalize(sourceDataURI, 50, 100)
//	// uri is a PNG data URI of exactly 50x100 pixels with the source
//	// contain-fitted and centered inside it.
type Normalizer struct{}

// NewNormalizer creates a new Normalizer.
func NewNormalizer() *Normalizer {
	return &Normalizer{}
}

// Normalize decodes sourceDataURI, contain-fits it into a frameWidth x
// frameHeight canvas, and re-encodes the result as a PNG data URI.
//
// Contain-fit uses a single uniform scale factor
// min(frameWidth/naturalWidth, frameHeight/naturalHeight): the aspect ratio
// is preserved, nothing is cropped, and the image may be letterboxed. The
// scaled image is centered within the canvas.
//
// When frameWidth or frameHeight is not positive, the source image's natural
// dimensions are used for that axis.
//
// Returns an error if the payload cannot be decoded as an image.
func (n *Normalizer) Normalize(sourceDataURI string, frameWidth, frameHeight int) (string, error) {
	data, err := DecodeDataURI(sourceDataURI)
	if err != nil {
		return "", err
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("decode image: %w", err)
	}

	bounds := img.Bounds()
	naturalW := bounds.Dx()
	naturalH := bounds.Dy()
	if naturalW == 0 || naturalH == 0 {
		return "", fmt.Errorf("decode image: zero-sized source")
	}
	if frameWidth <= 0 {
		frameWidth = naturalW
	}
	if frameHeight <= 0 {
		frameHeight = naturalH
	}

	scale := min(float64(frameWidth)/float64(naturalW), float64(frameHeight)/float64(naturalH))
	scaledW := int(float64(naturalW) * scale)
	scaledH := int(float64(naturalH) * scale)
	if scaledW < 1 {
		scaledW = 1
	}
	if scaledH < 1 {
		scaledH = 1
	}

	// Center the scaled image on the frame-sized canvas.
	offsetX := (frameWidth - scaledW) / 2
	offsetY := (frameHeight - scaledH) / 2
	target := image.Rect(offsetX, offsetY, offsetX+scaledW, offsetY+scaledH)

	dst := image.NewRGBA(image.Rect(0, 0, frameWidth, frameHeight))

	// Catmull-Rom for high-quality scaling, as for cover art.
	draw.CatmullRom.Scale(dst, target, img, bounds, draw.Over, nil)

	var buf bytes.Buffer
	if err := png.Encode(&buf, dst); err != nil {
		return "", fmt.Errorf("encode image: %w", err)
	}
	return EncodeDataURI("image/png", buf.Bytes()), nil
}

// NaturalSize returns the pixel dimensions of an encoded image without fully
// decoding it.
func NaturalSize(data []byte) (width, height int, err error) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return 0, 0, fmt.Errorf("decode image: %w", err)
	}
	return cfg.Width, cfg.Height, nil
}

// DecodeDataURI extracts the raw bytes of a base64 data URI. Raw image bytes
// are passed through unchanged, so callers can feed either form.
func DecodeDataURI(uri string) ([]byte, error) {
	if !strings.HasPrefix(uri, "data:") {
		return []byte(uri), nil
	}
	comma := strings.IndexByte(uri, ',')
	if comma < 0 {
		return nil, fmt.Errorf("malformed data URI: no comma separator")
	}
	meta, payload := uri[len("data:"):comma], uri[comma+1:]
	if !strings.HasSuffix(meta, ";base64") {
		return nil, fmt.Errorf("malformed data URI: only base64 payloads are supported")
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("malformed data URI: %w", err)
	}
	return data, nil
}

// EncodeDataURI wraps raw bytes in a base64 data URI with the given MIME
// type. An empty mimeType is sniffed from the payload.
func EncodeDataURI(mimeType string, data []byte) string {
	if mimeType == "" {
		mimeType = http.DetectContentType(data)
	}
	return "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// IsDataURI reports whether s looks like an embedded data URI payload.
func IsDataURI(s string) bool {
	return strings.HasPrefix(s, "data:")
}
