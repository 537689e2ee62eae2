package metadata

import (
	"errors"
	"testing"

	"github.com/ralt/rpmsync/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleFilelists = `<?xml version="1.0" encoding="UTF-8"?>
<filelists xmlns="http://linux.duke.edu/metadata/filelists" packages="1">
  <package pkgid="93c40cd196" name="acl" arch="x86_64">
    <version epoch="0" ver="2.3.1" rel="4.el9"/>
    <file>/usr/bin/chacl</file>
    <file>/usr/bin/getfacl</file>
    <file type="dir">/usr/share/doc/acl</file>
  </package>
</filelists>`

func TestParseFilelists(t *testing.T) {
	packages, err := ParseFilelists([]byte(sampleFilelists))
	require.NoError(t, err)
	require.Len(t, packages, 1)

	key := models.NEVR{
		Name:  "acl",
		Epoch: models.NewNullString("0"),
		Rel:   models.NewNullString("4.el9"),
		Ver:   models.NewNullString("2.3.1"),
	}
	pkg, ok := packages[key]
	require.True(t, ok)

	assert.Equal(t, "93c40cd196", pkg.PkgID)
	assert.Equal(t, "x86_64", pkg.Arch)
	assert.Equal(t, []models.FileEntry{
		{Name: "/usr/bin/chacl", Type: models.FileTypeFile},
		{Name: "/usr/bin/getfacl", Type: models.FileTypeFile},
		{Name: "/usr/share/doc/acl", Type: models.FileTypeDir},
	}, pkg.Files)
}

func TestParseFilelistsMissingVersionAttr(t *testing.T) {
	doc := `<filelists xmlns="http://linux.duke.edu/metadata/filelists">
  <package pkgid="aa" name="acl" arch="x86_64">
    <version ver="2.3.1" rel="4.el9"/>
  </package>
</filelists>`

	_, err := ParseFilelists([]byte(doc))
	require.Error(t, err)

	var syncErr *models.SyncError
	require.True(t, errors.As(err, &syncErr))
	assert.Equal(t, models.ErrMissingField, syncErr.Type)
}

func TestParseFilelistsMissingPkgid(t *testing.T) {
	doc := `<filelists xmlns="http://linux.duke.edu/metadata/filelists">
  <package name="acl" arch="x86_64">
    <version epoch="0" ver="2.3.1" rel="4.el9"/>
  </package>
</filelists>`

	_, err := ParseFilelists([]byte(doc))
	require.Error(t, err)
}
