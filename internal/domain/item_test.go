package domain

import (
	"encoding/json"
	"testing"
)

func TestParseItemType(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    ItemType
		wantErr bool
	}{
		{name: "file", input: "file", want: TypeFile},
		{name: "folder", input: "folder", want: TypeFolder},
		{name: "mixed case", input: "Folder", want: TypeFolder},
		{name: "padded", input: " file ", want: TypeFile},
		{name: "unknown", input: "directory", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseItemType(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseItemType(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err == nil && got != tt.want {
				t.Errorf("ParseItemType(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestItemID_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    ItemID
		wantErr bool
	}{
		{name: "number", input: `42`, want: ItemID("42")},
		{name: "string uuid", input: `"7c9e6679-7425-40de-944b-e07fc1f90ae7"`, want: ItemID("7c9e6679-7425-40de-944b-e07fc1f90ae7")},
		{name: "numeric string", input: `"42"`, want: ItemID("42")},
		{name: "object", input: `{}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var id ItemID
			err := json.Unmarshal([]byte(tt.input), &id)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Unmarshal(%s) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err == nil && id != tt.want {
				t.Errorf("Unmarshal(%s) = %q, want %q", tt.input, id, tt.want)
			}
		})
	}
}

func TestFolderDecode(t *testing.T) {
	// Shape as returned by GET /folders.
	raw := `{
		"id": 7,
		"name": "Docs",
		"parent_id": null,
		"created_at": "2025-04-01T10:30:00Z",
		"date_modified": null,
		"item_count": 3
	}`

	var f Folder
	if err := json.Unmarshal([]byte(raw), &f); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.ID != ItemID("7") {
		t.Errorf("ID = %q, want 7", f.ID)
	}
	if f.Name != "Docs" {
		t.Errorf("Name = %q, want Docs", f.Name)
	}
	if !f.IsRoot() {
		t.Error("folder with null parent_id should be root")
	}
	if f.ItemCount != 3 {
		t.Errorf("ItemCount = %d, want 3", f.ItemCount)
	}
}

func TestFileDecode(t *testing.T) {
	raw := `{
		"id": "7c9e6679-7425-40de-944b-e07fc1f90ae7",
		"filename": "report.pdf",
		"size": 10240,
		"mime_type": "application/pdf",
		"upload_time": "2025-04-02T08:00:00Z",
		"folder_id": 7
	}`

	var f File
	if err := json.Unmarshal([]byte(raw), &f); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.ID != ItemID("7c9e6679-7425-40de-944b-e07fc1f90ae7") {
		t.Errorf("ID = %q", f.ID)
	}
	if f.FolderID == nil || *f.FolderID != ItemID("7") {
		t.Errorf("FolderID = %v, want 7", f.FolderID)
	}
	if f.IsRoot() {
		t.Error("file with folder_id should not be root")
	}
}

func TestContents_Contains(t *testing.T) {
	c := Contents{
		Folders: []Folder{{ID: "1", Name: "Docs"}},
		Files:   []File{{ID: "10", Filename: "a.txt"}},
	}

	tests := []struct {
		name string
		ref  ItemRef
		want bool
	}{
		{name: "present folder", ref: ItemRef{ID: "1", Type: TypeFolder}, want: true},
		{name: "present file", ref: ItemRef{ID: "10", Type: TypeFile}, want: true},
		{name: "folder id as file", ref: ItemRef{ID: "1", Type: TypeFile}, want: false},
		{name: "absent", ref: ItemRef{ID: "99", Type: TypeFolder}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := c.Contains(tt.ref); got != tt.want {
				t.Errorf("Contains(%v) = %v, want %v", tt.ref, got, tt.want)
			}
		})
	}
}
