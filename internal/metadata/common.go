// Package metadata parses the structured repodata documents: the
// repomd.xml summary and the primary/filelists package-list documents.
// Callers hand it decompressed XML text; fetching and decompression
// belong to the storage layer.
package metadata

import (
	"fmt"

	"github.com/ralt/rpmsync/internal/models"
)

// versionElem is the <version epoch= ver= rel=/> element shared by the
// primary and filelists schemas. All three attributes are mandatory on
// a package's own version element.
type versionElem struct {
	Epoch *string `xml:"epoch,attr"`
	Ver   *string `xml:"ver,attr"`
	Rel   *string `xml:"rel,attr"`
}

func (v *versionElem) toModel(doc string) (models.Version, error) {
	if v.Epoch == nil || v.Ver == nil || v.Rel == nil {
		return models.Version{}, missingField(doc, "version epoch/ver/rel attributes")
	}
	return models.Version{
		Epoch: models.NewNullString(*v.Epoch),
		Ver:   models.NewNullString(*v.Ver),
		Rel:   models.NewNullString(*v.Rel),
	}, nil
}

// fileElem is a manifest <file> element; entries without an explicit
// type attribute are plain files.
type fileElem struct {
	Type string `xml:"type,attr"`
	Name string `xml:",chardata"`
}

func fileEntries(elems []fileElem) []models.FileEntry {
	files := make([]models.FileEntry, 0, len(elems))
	for _, f := range elems {
		t := models.FileTypeFile
		if f.Type == "dir" {
			t = models.FileTypeDir
		}
		files = append(files, models.FileEntry{Name: f.Name, Type: t})
	}
	return files
}

var errMissingEntryName = fmt.Errorf("dependency entry missing name attribute")

func missingField(doc, field string) error {
	return &models.SyncError{
		Type: models.ErrMissingField,
		Path: doc,
		Err:  fmt.Errorf("missing %s", field),
	}
}

func malformed(doc string, err error) error {
	return &models.SyncError{
		Type: models.ErrMalformedDocument,
		Path: doc,
		Err:  err,
	}
}
