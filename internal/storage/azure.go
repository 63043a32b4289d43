package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/bloberror"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/blockblob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/container"
	"github.com/sirupsen/logrus"
)

// azureOpTimeout bounds a single blob operation
const azureOpTimeout = 30 * time.Second

// AzureStorage keeps objects as block blobs in one container
type AzureStorage struct {
	container *container.Client
	name      string
}

// Ensure AzureStorage implements StorageInterface
var _ StorageInterface = (*AzureStorage)(nil)

// NewAzureStorage connects to containerName in accountName with the default
// Azure credential chain and creates the container when missing.
func NewAzureStorage(accountName, containerName string) (*AzureStorage, error) {
	if accountName == "" {
		return nil, errors.New("storage account name is required")
	}
	if containerName == "" {
		return nil, errors.New("storage container name is required")
	}

	credential, err := azidentity.NewDefaultAzureCredential(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create Azure credential: %w", err)
	}

	client, err := azblob.NewClient(fmt.Sprintf("https://%s.blob.core.windows.net/", accountName), credential, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create Azure blob client: %w", err)
	}

	s := &AzureStorage{
		container: client.ServiceClient().NewContainerClient(containerName),
		name:      containerName,
	}
	if err := s.createContainer(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *AzureStorage) createContainer() error {
	ctx, cancel := context.WithTimeout(context.Background(), azureOpTimeout)
	defer cancel()

	_, err := s.container.Create(ctx, nil)
	switch {
	case err == nil:
		logrus.WithField("container", s.name).Info("Created blob container")
	case bloberror.HasCode(err, bloberror.ContainerAlreadyExists):
	default:
		return fmt.Errorf("failed to create container %s: %w", s.name, err)
	}
	return nil
}

// Store uploads data, overwriting any existing blob
func (s *AzureStorage) Store(filename string, data []byte) error {
	ctx, cancel := context.WithTimeout(context.Background(), azureOpTimeout)
	defer cancel()

	_, err := s.container.NewBlockBlobClient(filename).UploadBuffer(ctx, data, &blockblob.UploadBufferOptions{
		BlockSize:   1 << 20,
		Concurrency: 3,
	})
	if err != nil {
		return fmt.Errorf("failed to upload blob %s: %w", filename, err)
	}

	logrus.WithFields(logrus.Fields{"blob": filename, "bytes": len(data)}).Debug("Stored blob")
	return nil
}

// Retrieve downloads a blob. A missing blob yields ErrNotFound.
func (s *AzureStorage) Retrieve(filename string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(context.Background(), azureOpTimeout)
	defer cancel()

	response, err := s.container.NewBlobClient(filename).DownloadStream(ctx, nil)
	if err != nil {
		if bloberror.HasCode(err, bloberror.BlobNotFound) {
			return nil, fmt.Errorf("blob %s: %w", filename, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to download blob %s: %w", filename, err)
	}
	defer response.Body.Close()

	data, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read blob %s: %w", filename, err)
	}
	return data, nil
}

// List returns blob names starting with prefix in lexical order
func (s *AzureStorage) List(prefix string) ([]string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), azureOpTimeout)
	defer cancel()

	var names []string
	pager := s.container.NewListBlobsFlatPager(&container.ListBlobsFlatOptions{Prefix: &prefix})
	for pager.More() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list blobs under %q: %w", prefix, err)
		}
		for _, item := range page.Segment.BlobItems {
			if item.Name != nil {
				names = append(names, *item.Name)
			}
		}
	}
	return names, nil
}

// Delete removes a blob; deleting a missing blob is not an error
func (s *AzureStorage) Delete(filename string) error {
	ctx, cancel := context.WithTimeout(context.Background(), azureOpTimeout)
	defer cancel()

	_, err := s.container.NewBlobClient(filename).Delete(ctx, nil)
	if err != nil && !bloberror.HasCode(err, bloberror.BlobNotFound) {
		return fmt.Errorf("failed to delete blob %s: %w", filename, err)
	}

	logrus.WithField("blob", filename).Debug("Deleted blob")
	return nil
}
