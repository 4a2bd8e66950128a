package port

import (
	"context"
	"io"

	"github.com/filedash/filedash/internal/domain"
)

// Gateway is the remote content gateway: the REST backend exposing
// folder/file CRUD, favorites, uploads and downloads. The session never
// talks HTTP directly; it only sees this interface.
type Gateway interface {
	// ListRootFolders returns the folders with no parent.
	ListRootFolders(ctx context.Context) ([]domain.Folder, error)

	// ListRootFiles returns the files outside any folder.
	ListRootFiles(ctx context.Context) ([]domain.File, error)

	// FolderDetails returns one folder's direct subfolders and files.
	FolderDetails(ctx context.Context, id domain.ItemID) (domain.Contents, error)

	// CreateFolder creates a folder under the given parent. A zero
	// parent id means the root scope.
	CreateFolder(ctx context.Context, name string, parentID domain.ItemID) (*domain.Folder, error)

	// RenameFolder renames a folder.
	RenameFolder(ctx context.Context, id domain.ItemID, newName string) error

	// RenameFile renames a file.
	RenameFile(ctx context.Context, id domain.ItemID, newName string) error

	// DeleteFolder deletes a folder and its contents.
	DeleteFolder(ctx context.Context, id domain.ItemID) error

	// DeleteFile deletes a file.
	DeleteFile(ctx context.Context, id domain.ItemID) error

	// ListFavorites returns all favorited items regardless of location.
	ListFavorites(ctx context.Context) (domain.FavoriteSet, error)

	// AddFavorite marks the referenced item as a favorite.
	AddFavorite(ctx context.Context, ref domain.ItemRef) error

	// RemoveFavorite removes the referenced item from favorites.
	RemoveFavorite(ctx context.Context, ref domain.ItemRef) error

	// UploadFile streams a multipart file upload into the given folder.
	// A zero folder id uploads to the root scope.
	UploadFile(ctx context.Context, filename string, r io.Reader, folderID domain.ItemID) error

	// UploadArchive streams a zip archive the server expands into a
	// folder structure.
	UploadArchive(ctx context.Context, filename string, r io.Reader, folderID domain.ItemID) error

	// DownloadFile streams a file's binary content into w and returns
	// the number of bytes written.
	DownloadFile(ctx context.Context, id domain.ItemID, w io.Writer) (int64, error)

	// DownloadFolderArchive streams a folder as a zip into w.
	DownloadFolderArchive(ctx context.Context, id domain.ItemID, w io.Writer) (int64, error)
}
