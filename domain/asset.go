package domain

import (
	"context"
	"io"
)

// AssetFile is one file handed to an upload.
type AssetFile struct {
	Name   string
	Reader io.Reader
}

// UploadedAsset is the server's record of an uploaded file.
type UploadedAsset struct {
	OriginalName string
	URL          string
	RelativePath string
	Size         int64
}

type AssetGateway interface {
	// UploadAssets stores files under folder (optional) and returns one record per file.
	UploadAssets(ctx context.Context, files []AssetFile, folder string) ([]UploadedAsset, error)
}
