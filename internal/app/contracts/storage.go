package contracts

import (
	"context"
)

type Storage interface {
	UploadMealImage(ctx context.Context, image []byte, contentType, bucketName, objectName string) (string, error)
}
