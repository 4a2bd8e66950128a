package domain

// FavoriteSet mirrors the server-side favorites list. It is used for
// membership testing and for rendering the favorites view; the session
// replaces it wholesale after every favorites fetch.
type FavoriteSet struct {
	Files   []File
	Folders []Folder
}

// IsFavorite reports whether the item is currently favorited.
func (s FavoriteSet) IsFavorite(id ItemID, typ ItemType) bool {
	if typ == TypeFolder {
		for i := range s.Folders {
			if s.Folders[i].ID == id {
				return true
			}
		}
		return false
	}
	for i := range s.Files {
		if s.Files[i].ID == id {
			return true
		}
	}
	return false
}

// Roots returns the favorited items that have no parent. This backs the
// top-level favorites view; drilling into a favorited folder leaves the
// favorites scope and shows the folder's full contents.
func (s FavoriteSet) Roots() FavoriteSet {
	var out FavoriteSet
	for _, f := range s.Folders {
		if f.IsRoot() {
			out.Folders = append(out.Folders, f)
		}
	}
	for _, f := range s.Files {
		if f.IsRoot() {
			out.Files = append(out.Files, f)
		}
	}
	return out
}

// Len returns the total number of favorited items.
func (s FavoriteSet) Len() int {
	return len(s.Files) + len(s.Folders)
}
