package gateway

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/Guyuepp/blog-client/domain"
	"github.com/Guyuepp/blog-client/internal/gateway/model"
)

func (c *Client) UploadAssets(ctx context.Context, files []domain.AssetFile, folder string) ([]domain.UploadedAsset, error) {
	if len(files) == 0 {
		return nil, domain.ErrBadParamInput
	}

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for _, f := range files {
		part, err := w.CreateFormFile("files", f.Name)
		if err != nil {
			return nil, fmt.Errorf("create form file %s: %w", f.Name, err)
		}
		if _, err := io.Copy(part, f.Reader); err != nil {
			return nil, fmt.Errorf("copy %s: %w", f.Name, err)
		}
	}
	if folder != "" {
		if err := w.WriteField("folder", folder); err != nil {
			return nil, err
		}
	}
	if err := w.Close(); err != nil {
		return nil, err
	}

	res, err := call[[]model.UploadedAsset](ctx, c, request{
		op:          "assets.upload",
		method:      http.MethodPost,
		path:        "/assets/upload",
		raw:         &buf,
		contentType: w.FormDataContentType(),
		auth:        true,
	})
	if err != nil {
		return nil, err
	}
	assets := make([]domain.UploadedAsset, len(res))
	for i := range res {
		assets[i] = res[i].ToDomain()
	}
	return assets, nil
}
