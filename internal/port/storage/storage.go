package storage

import "context"

// PhotoStorage uploads listing photos and returns their public URL.
type PhotoStorage interface {
	Upload(ctx context.Context, fileName string, data []byte) (string, error)
}
