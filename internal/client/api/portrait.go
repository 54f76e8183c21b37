package api

import (
	"context"
	"net/http"

	"github.com/dmitrijs2005/tardis/internal/filex"
	"github.com/dmitrijs2005/tardis/internal/netx"
)

// UploadPortrait reads the image at path, asks the API for a presigned URL
// and PUTs the file there. It returns the object key.
func UploadPortrait(ctx context.Context, c Client, hc *http.Client, characterID int64, path string) (string, error) {
	data, contentType, err := filex.ReadImage(path, filex.MaxPortraitSize)
	if err != nil {
		return "", err
	}

	up, err := c.PortraitUploadURL(ctx, characterID, contentType)
	if err != nil {
		return "", err
	}

	if err := netx.UploadPresigned(ctx, hc, up.URL, contentType, data); err != nil {
		return "", err
	}
	return up.Key, nil
}
