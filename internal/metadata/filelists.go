package metadata

import (
	"encoding/xml"

	"github.com/ralt/rpmsync/internal/models"
)

// filelistsDoc mirrors the filelists.xml package-list document
// (namespace http://linux.duke.edu/metadata/filelists):
//
//	<filelists packages="2">
//	    <package pkgid="93c40c…" name="acl" arch="x86_64">
//	        <version epoch="0" ver="2.3.1" rel="4.el9"/>
//	        <file>/usr/bin/chacl</file>
//	        <file type="dir">/usr/share/doc/acl</file>
//	    </package>
//	</filelists>
type filelistsDoc struct {
	XMLName  xml.Name           `xml:"filelists"`
	Packages []filelistsPackage `xml:"package"`
}

type filelistsPackage struct {
	PkgID   *string      `xml:"pkgid,attr"`
	Name    *string      `xml:"name,attr"`
	Arch    *string      `xml:"arch,attr"`
	Version *versionElem `xml:"version"`
	Files   []fileElem   `xml:"file"`
}

// ParseFilelists parses a decompressed filelists document into
// filelists records keyed by package identity.
func ParseFilelists(data []byte) (map[models.NEVR]*models.FilelistsPackage, error) {
	const doc = "filelists"

	var parsed filelistsDoc
	if err := xml.Unmarshal(data, &parsed); err != nil {
		return nil, malformed(doc, err)
	}

	packages := make(map[models.NEVR]*models.FilelistsPackage, len(parsed.Packages))
	for _, p := range parsed.Packages {
		if p.PkgID == nil {
			return nil, missingField(doc, "package pkgid attribute")
		}
		if p.Name == nil {
			return nil, missingField(doc, "package name attribute")
		}
		if p.Arch == nil {
			return nil, missingField(doc, "package arch attribute")
		}
		if p.Version == nil {
			return nil, missingField(doc, "package version element")
		}

		version, err := p.Version.toModel(doc)
		if err != nil {
			return nil, err
		}

		pkg := &models.FilelistsPackage{
			PkgID:   *p.PkgID,
			Name:    *p.Name,
			Arch:    *p.Arch,
			Version: version,
			Files:   fileEntries(p.Files),
		}
		packages[models.NEVROf(pkg.Name, version)] = pkg
	}

	return packages, nil
}
