package storage

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/blob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/bloberror"
)

type AzureOptions struct {
	AccountName string
	AccountKey  string
	Container   string
}

// AzureStorage stores uploads as block blobs in one container.
type AzureStorage struct {
	client    *azblob.Client
	container string
	baseURL   string
	now       func() time.Time
}

func NewAzureStorage(opts AzureOptions) (*AzureStorage, error) {
	cred, err := azblob.NewSharedKeyCredential(opts.AccountName, opts.AccountKey)
	if err != nil {
		return nil, fmt.Errorf("azure credential: %w", err)
	}
	serviceURL := fmt.Sprintf("https://%s.blob.core.windows.net/", opts.AccountName)
	client, err := azblob.NewClientWithSharedKeyCredential(serviceURL, cred, nil)
	if err != nil {
		return nil, fmt.Errorf("azure client: %w", err)
	}
	return &AzureStorage{
		client:    client,
		container: opts.Container,
		baseURL:   serviceURL + opts.Container + "/",
		now:       time.Now,
	}, nil
}

func (s *AzureStorage) ObjectName(filename string) string {
	return timestampName(filename, s.now())
}

func (s *AzureStorage) Upload(ctx context.Context, key string, src io.Reader, size int64, contentType string) (string, error) {
	opts := &azblob.UploadStreamOptions{
		BlockSize:   8 * 1024 * 1024,
		Concurrency: 5,
	}
	if contentType != "" {
		opts.HTTPHeaders = &blob.HTTPHeaders{BlobContentType: &contentType}
	}
	if _, err := s.client.UploadStream(ctx, s.container, key, src, opts); err != nil {
		return "", fmt.Errorf("azure upload %s: %w", key, err)
	}
	return s.baseURL + key, nil
}

func (s *AzureStorage) Delete(ctx context.Context, fileURL string) error {
	marker := "/" + s.container + "/"
	i := strings.Index(fileURL, marker)
	if i < 0 {
		return nil
	}
	name := fileURL[i+len(marker):]
	if decoded, err := url.PathUnescape(name); err == nil {
		name = decoded
	}
	if name == "" {
		return nil
	}
	_, err := s.client.DeleteBlob(ctx, s.container, name, nil)
	if err != nil && !bloberror.HasCode(err, bloberror.BlobNotFound) {
		return fmt.Errorf("azure delete %s: %w", name, err)
	}
	return nil
}
