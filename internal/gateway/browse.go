package gateway

import (
	"context"
	"net/url"

	"github.com/filedash/filedash/internal/domain"
)

// ListRootFolders returns the folders with no parent
func (c *Client) ListRootFolders(ctx context.Context) ([]domain.Folder, error) {
	var folders []domain.Folder
	if err := c.getJSON(ctx, "list root folders", "/folders", &folders); err != nil {
		return nil, err
	}
	return folders, nil
}

// ListRootFiles returns the files outside any folder
func (c *Client) ListRootFiles(ctx context.Context) ([]domain.File, error) {
	var files []domain.File
	if err := c.getJSON(ctx, "list root files", "/myfiles", &files); err != nil {
		return nil, err
	}
	return files, nil
}

// folderDetailsResponse is the shape of GET /folders/{id}/details
type folderDetailsResponse struct {
	ID         domain.ItemID   `json:"id"`
	Name       string          `json:"name"`
	Subfolders []domain.Folder `json:"subfolders"`
	Files      []domain.File   `json:"files"`
}

// FolderDetails returns one folder's direct subfolders and files
func (c *Client) FolderDetails(ctx context.Context, id domain.ItemID) (domain.Contents, error) {
	if id.IsZero() {
		return domain.Contents{}, domain.NewValidationError("folder id", domain.ErrEmptyFolderID)
	}

	var details folderDetailsResponse
	path := "/folders/" + url.PathEscape(id.String()) + "/details"
	if err := c.getJSON(ctx, "folder details", path, &details); err != nil {
		return domain.Contents{}, err
	}
	return domain.Contents{Folders: details.Subfolders, Files: details.Files}, nil
}

// favoritesResponse is the shape of GET /favorites
type favoritesResponse struct {
	Files   []domain.File   `json:"files"`
	Folders []domain.Folder `json:"folders"`
}

// ListFavorites returns all favorited items regardless of location
func (c *Client) ListFavorites(ctx context.Context) (domain.FavoriteSet, error) {
	var favs favoritesResponse
	if err := c.getJSON(ctx, "list favorites", "/favorites", &favs); err != nil {
		return domain.FavoriteSet{}, err
	}
	return domain.FavoriteSet{Files: favs.Files, Folders: favs.Folders}, nil
}
