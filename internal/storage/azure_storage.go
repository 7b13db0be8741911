package storage

import (
	"context"
	"fmt"
	"io"
	"net/url"

	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
)

// AzureMediaFetcher implements MediaFetcher over Azure blob storage for
// deployments that archive capture sessions in a blob container.
type AzureMediaFetcher struct {
	client *azblob.Client
}

// NewAzureMediaFetcher creates a blob-backed media fetcher using shared
// key credentials.
func NewAzureMediaFetcher(accountName, accountKey string) (*AzureMediaFetcher, error) {
	credential, err := azblob.NewSharedKeyCredential(accountName, accountKey)
	if err != nil {
		return nil, err
	}

	client, err := azblob.NewClientWithSharedKeyCredential(
		fmt.Sprintf("https://%s.blob.core.windows.net", accountName),
		credential,
		nil,
	)
	if err != nil {
		return nil, err
	}

	return &AzureMediaFetcher{client: client}, nil
}

// FetchMedia downloads a blob identified by a URL of the form
// https://account.blob.core.windows.net/container?blob=name.
func (a *AzureMediaFetcher) FetchMedia(ctx context.Context, mediaURL string) ([]byte, error) {
	parsedURL, err := url.Parse(mediaURL)
	if err != nil {
		return nil, fmt.Errorf("invalid blob URL: %w", err)
	}
	if len(parsedURL.Path) < 2 {
		return nil, fmt.Errorf("blob URL missing container path: %s", mediaURL)
	}
	containerName := parsedURL.Path[1:]
	blobName := parsedURL.Query().Get("blob")
	if blobName == "" {
		return nil, fmt.Errorf("blob URL missing blob query parameter: %s", mediaURL)
	}

	downloadResponse, err := a.client.DownloadStream(ctx, containerName, blobName, nil)
	if err != nil {
		return nil, fmt.Errorf("download failed: %w", err)
	}
	retryReader := downloadResponse.Body
	defer retryReader.Close()

	return io.ReadAll(retryReader)
}
