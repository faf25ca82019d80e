package appwrite

import (
	"context"
	"fmt"
)

// Storage is the object-store service.
type Storage struct {
	client *Client
}

func NewStorage(client *Client) *Storage {
	return &Storage{client: client}
}

type file struct {
	ID string `json:"$id"`
}

// PermissionReadAny grants public read, the permission uploaded product
// images carry.
func PermissionReadAny() string { return `read("any")` }

// CreateFile uploads content under the given file ID and returns the
// ID assigned by the store.
func (s *Storage) CreateFile(ctx context.Context, session, bucketID, fileID, name string, content []byte, permissions []string) (string, error) {
	path := fmt.Sprintf("/storage/buckets/%s/files", bucketID)
	fields := map[string]string{"fileId": fileID}
	arrays := map[string][]string{}
	if len(permissions) > 0 {
		arrays["permissions"] = permissions
	}

	var f file
	if err := s.client.doMultipart(ctx, path, session, fields, arrays, "file", name, content, &f); err != nil {
		return "", err
	}
	return f.ID, nil
}

// DeleteFile removes an uploaded file, used when a product is deleted.
func (s *Storage) DeleteFile(ctx context.Context, session, bucketID, fileID string) error {
	path := fmt.Sprintf("/storage/buckets/%s/files/%s", bucketID, fileID)
	return s.client.do(ctx, "DELETE", path, session, nil, nil)
}

// DownloadURL builds the public download link for a stored file.
func (s *Storage) DownloadURL(bucketID, fileID string) string {
	return fmt.Sprintf("%s/storage/buckets/%s/files/%s/download?project=%s",
		s.client.Endpoint, bucketID, fileID, s.client.Project)
}
