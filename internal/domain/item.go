package domain

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// ItemType distinguishes the two kinds of dashboard entries.
// Rename, delete and favorite operations dispatch on it at the
// session boundary instead of scattering conditionals.
type ItemType string

const (
	TypeFile   ItemType = "file"
	TypeFolder ItemType = "folder"
)

// ParseItemType converts a string into an ItemType.
func ParseItemType(s string) (ItemType, error) {
	switch ItemType(strings.ToLower(strings.TrimSpace(s))) {
	case TypeFile:
		return TypeFile, nil
	case TypeFolder:
		return TypeFolder, nil
	default:
		return "", fmt.Errorf("%w: unknown item type %q", ErrInvalidInput, s)
	}
}

// Valid returns true for the two known item types.
func (t ItemType) Valid() bool {
	return t == TypeFile || t == TypeFolder
}

// ItemID is an opaque identifier as issued by the gateway. Folders are
// identified by numeric ids on the wire and files by UUID strings; the
// session layer treats both uniformly and only the gateway cares about
// the wire encoding.
type ItemID string

// UnmarshalJSON accepts both JSON numbers and JSON strings.
func (id *ItemID) UnmarshalJSON(data []byte) error {
	var n json.Number
	if err := json.Unmarshal(data, &n); err == nil {
		*id = ItemID(n.String())
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("item id must be a number or string: %w", err)
	}
	*id = ItemID(s)
	return nil
}

// String returns the raw id.
func (id ItemID) String() string { return string(id) }

// IsZero returns true for the empty id.
func (id ItemID) IsZero() bool { return id == "" }

// ItemRef names one item by id and type. It is the unit of membership
// in the selection set, unique by the (id, type) pair.
type ItemRef struct {
	ID   ItemID
	Type ItemType
}

// FolderRef identifies one level of the breadcrumb path.
// Immutable once pushed onto the path.
type FolderRef struct {
	ID   ItemID `json:"id"`
	Name string `json:"name"`
}

// Folder is a directory entity as returned by the gateway.
type Folder struct {
	ID           ItemID     `json:"id"`
	Name         string     `json:"name"`
	ParentID     *ItemID    `json:"parent_id"`
	CreatedAt    time.Time  `json:"created_at"`
	DateModified *time.Time `json:"date_modified"`
	ItemCount    int        `json:"item_count"`
}

// IsRoot returns true if the folder has no parent.
func (f *Folder) IsRoot() bool {
	return f.ParentID == nil || f.ParentID.IsZero()
}

// File is a leaf entity as returned by the gateway.
type File struct {
	ID           ItemID     `json:"id"`
	Filename     string     `json:"filename"`
	Size         int64      `json:"size"`
	MimeType     string     `json:"mime_type"`
	UploadTime   time.Time  `json:"upload_time"`
	FolderID     *ItemID    `json:"folder_id"`
	DateModified *time.Time `json:"date_modified"`
}

// IsRoot returns true if the file lives outside any folder.
func (f *File) IsRoot() bool {
	return f.FolderID == nil || f.FolderID.IsZero()
}

// Contents is one location's direct children.
type Contents struct {
	Folders []Folder
	Files   []File
}

// ContainsFolder reports whether a folder with the given id is present.
func (c Contents) ContainsFolder(id ItemID) bool {
	for i := range c.Folders {
		if c.Folders[i].ID == id {
			return true
		}
	}
	return false
}

// ContainsFile reports whether a file with the given id is present.
func (c Contents) ContainsFile(id ItemID) bool {
	for i := range c.Files {
		if c.Files[i].ID == id {
			return true
		}
	}
	return false
}

// Contains reports whether the referenced item is present.
func (c Contents) Contains(ref ItemRef) bool {
	if ref.Type == TypeFolder {
		return c.ContainsFolder(ref.ID)
	}
	return c.ContainsFile(ref.ID)
}
