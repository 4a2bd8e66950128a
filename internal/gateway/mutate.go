package gateway

import (
	"context"
	"net/http"
	"net/url"

	"github.com/filedash/filedash/internal/domain"
)

// CreateFolder creates a folder under the given parent. A zero parent
// id means the root scope.
func (c *Client) CreateFolder(ctx context.Context, name string, parentID domain.ItemID) (*domain.Folder, error) {
	body := map[string]any{"name": name, "parent_id": nil}
	if !parentID.IsZero() {
		body["parent_id"] = wireID(parentID)
	}

	var folder domain.Folder
	if err := c.sendJSON(ctx, "create folder", http.MethodPost, "/folders", body, &folder); err != nil {
		return nil, err
	}
	return &folder, nil
}

// RenameFolder renames a folder
func (c *Client) RenameFolder(ctx context.Context, id domain.ItemID, newName string) error {
	body := map[string]any{
		"folder_id": wireID(id),
		"new_name":  newName,
	}
	return c.sendJSON(ctx, "rename folder", http.MethodPost, "/folders/rename", body, nil)
}

// RenameFile renames a file
func (c *Client) RenameFile(ctx context.Context, id domain.ItemID, newName string) error {
	body := map[string]any{
		"file_id":  id.String(),
		"new_name": newName,
	}
	return c.sendJSON(ctx, "rename file", http.MethodPost, "/myfiles/rename", body, nil)
}

// DeleteFolder deletes a folder and its contents
func (c *Client) DeleteFolder(ctx context.Context, id domain.ItemID) error {
	req, err := c.newRequest(ctx, http.MethodDelete, "/folders/"+url.PathEscape(id.String()), nil)
	if err != nil {
		return err
	}
	resp, err := c.do("delete folder", req)
	if err != nil {
		return err
	}
	resp.Body.Close()
	return nil
}

// DeleteFile deletes a file
func (c *Client) DeleteFile(ctx context.Context, id domain.ItemID) error {
	req, err := c.newRequest(ctx, http.MethodDelete, "/myfiles/delete/"+url.PathEscape(id.String()), nil)
	if err != nil {
		return err
	}
	resp, err := c.do("delete file", req)
	if err != nil {
		return err
	}
	resp.Body.Close()
	return nil
}

// favoriteBody builds the add/remove favorites payload. Only one of
// file_id or folder_id is ever set.
func favoriteBody(ref domain.ItemRef) map[string]any {
	if ref.Type == domain.TypeFolder {
		return map[string]any{"folder_id": wireID(ref.ID)}
	}
	return map[string]any{"file_id": ref.ID.String()}
}

// AddFavorite marks the referenced item as a favorite
func (c *Client) AddFavorite(ctx context.Context, ref domain.ItemRef) error {
	return c.sendJSON(ctx, "add favorite", http.MethodPost, "/favorites", favoriteBody(ref), nil)
}

// RemoveFavorite removes the referenced item from favorites
func (c *Client) RemoveFavorite(ctx context.Context, ref domain.ItemRef) error {
	return c.sendJSON(ctx, "remove favorite", http.MethodDelete, "/favorites", favoriteBody(ref), nil)
}
