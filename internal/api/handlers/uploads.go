package handlers

import (
	"net/http"

	"github.com/devrahulm/vidtube-server/internal/services"
)

// maxUploadSize caps multipart request bodies (avatar plus cover image).
const maxUploadSize = 16 << 20 // 16 MB

// formFileUpload builds a typed AssetUpload from a multipart field. A missing
// field yields (nil, nil, nil) so callers can distinguish absent from broken.
// The returned closer must be called after the upload has been consumed.
func formFileUpload(r *http.Request, field string) (*services.AssetUpload, func(), error) {
	if r.MultipartForm == nil {
		return nil, nil, nil
	}
	headers := r.MultipartForm.File[field]
	if len(headers) == 0 {
		return nil, nil, nil
	}

	header := headers[0]
	file, err := header.Open()
	if err != nil {
		return nil, nil, err
	}

	upload := &services.AssetUpload{
		Reader:      file,
		Size:        header.Size,
		ContentType: header.Header.Get("Content-Type"),
		Filename:    header.Filename,
	}
	return upload, func() { _ = file.Close() }, nil
}
