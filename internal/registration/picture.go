package registration

import (
	"encoding/base64"
	"fmt"
	"net/http"
	"strings"
)

// encodeDataURL sniffs the image type and encodes the file contents as a
// data URL. No size or dimension cap is applied.
func encodeDataURL(data []byte) (string, error) {
	if len(data) == 0 {
		return "", fmt.Errorf("empty image file")
	}
	mime := http.DetectContentType(data)
	if !strings.HasPrefix(mime, "image/") {
		return "", fmt.Errorf("not an image file: %s", mime)
	}
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}
