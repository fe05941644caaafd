package organizer

import (
	"testing"

	"github.com/moyu-x/desktop-cleaner/internal"
)

func TestCategory(t *testing.T) {
	testCases := map[string][]string{
		CategoryPictures:     {"png", "jpg", "jpeg", "gif", "heif"},
		CategoryDocuments:    {"doc", "docx", "pdf"},
		CategorySpreadsheets: {"xlsx", "xls"},
	}

	for want, exts := range testCases {
		for _, ext := range exts {
			if got := Category(ext); got != want {
				t.Errorf("Category(%q) = %q, want %q", ext, got, want)
			}
		}
	}

	for _, ext := range []string{"txt", "PNG", "mp4", "", "tar.gz", "heic"} {
		if got := Category(ext); got != CategoryMiscellaneous {
			t.Errorf("Category(%q) = %q, want %q", ext, got, CategoryMiscellaneous)
		}
	}
}

func TestCategories_ReturnsCopy(t *testing.T) {
	table := Categories()
	table["txt"] = CategoryDocuments
	if Category("txt") != CategoryMiscellaneous {
		t.Error("Categories() should not expose the internal table")
	}
}

func TestResolve(t *testing.T) {
	testCases := []struct {
		name     string
		mode     internal.OperationMode
		ext      string
		category string
	}{
		{"photo.jpeg", internal.ModeFlat, "jpeg", "jpeg"},
		{"photo.jpeg", internal.ModeGrouped, "jpeg", CategoryPictures},
		{"photo.jpeg", internal.ModeDelete, "jpeg", ""},
		{"archive.tar.gz", internal.ModeFlat, "gz", "gz"},
		{"README", internal.ModeFlat, "README", "README"},
		{"README", internal.ModeGrouped, "README", CategoryMiscellaneous},
		{"Formula Table.docx", internal.ModeGrouped, "docx", CategoryDocuments},
		{"trailing.", internal.ModeFlat, "", ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name+"/"+string(tc.mode), func(t *testing.T) {
			ext, category := Resolve(tc.name, tc.mode)
			if ext != tc.ext || category != tc.category {
				t.Errorf("Resolve(%q, %s) = (%q, %q), want (%q, %q)", tc.name, tc.mode, ext, category, tc.ext, tc.category)
			}
		})
	}
}
