package cli

import (
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/dmitrijs2005/montflix/internal/common"
)

// MaxAvatarSize is the largest accepted raw image, in bytes.
const MaxAvatarSize = 2 << 20

var ErrNotImage = errors.New("not an image")

// EncodeAvatar reads an image from r and returns it as a data URL.
func EncodeAvatar(r io.Reader) (string, error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxAvatarSize+1))
	if err != nil {
		return "", fmt.Errorf("read avatar: %w", err)
	}
	if len(data) > MaxAvatarSize {
		return "", fmt.Errorf("%w: limit is %d bytes", common.ErrorAvatarTooLarge, MaxAvatarSize)
	}

	mime := http.DetectContentType(data)
	if !strings.HasPrefix(mime, "image/") {
		return "", fmt.Errorf("%w: %s", ErrNotImage, mime)
	}

	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}

// EncodeAvatarFile is EncodeAvatar over the file at path.
func EncodeAvatarFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open avatar: %w", err)
	}
	defer f.Close()
	return EncodeAvatar(f)
}
