package metadata

import (
	"encoding/xml"

	"github.com/ralt/rpmsync/internal/models"
)

// primaryDoc mirrors the primary.xml package-list document (namespaces
// http://linux.duke.edu/metadata/common and …/rpm). Pointer fields
// distinguish an absent element or attribute from an empty one, so the
// parser can enforce the schema's required fields and keep the
// optional ones null.
type primaryDoc struct {
	XMLName  xml.Name         `xml:"metadata"`
	Packages []primaryPackage `xml:"package"`
}

type primaryPackage struct {
	Checksum    *string       `xml:"checksum"`
	Name        *string       `xml:"name"`
	Arch        *string       `xml:"arch"`
	Summary     *string       `xml:"summary"`
	Description *string       `xml:"description"`
	Packager    *string       `xml:"packager"`
	URL         *string       `xml:"url"`
	Time        *timeElem     `xml:"time"`
	Location    *locationElem `xml:"location"`
	Version     *versionElem  `xml:"version"`
	Format      *formatElem   `xml:"format"`
}

type timeElem struct {
	File  *string `xml:"file,attr"`
	Build *string `xml:"build,attr"`
}

type locationElem struct {
	Href *string `xml:"href,attr"`
}

type formatElem struct {
	License     *string          `xml:"license"`
	Vendor      *string          `xml:"vendor"`
	Group       *string          `xml:"group"`
	Buildhost   *string          `xml:"buildhost"`
	Sourcerpm   *string          `xml:"sourcerpm"`
	HeaderRange *headerRangeElem `xml:"header-range"`
	Provides    *depBlockElem    `xml:"provides"`
	Requires    *depBlockElem    `xml:"requires"`
	Obsoletes   *depBlockElem    `xml:"obsoletes"`
	Files       []fileElem       `xml:"file"`
}

type headerRangeElem struct {
	Start *string `xml:"start,attr"`
	End   *string `xml:"end,attr"`
}

type depBlockElem struct {
	Entries []depEntryElem `xml:"entry"`
}

type depEntryElem struct {
	Name  *string `xml:"name,attr"`
	Epoch *string `xml:"epoch,attr"`
	Ver   *string `xml:"ver,attr"`
	Rel   *string `xml:"rel,attr"`
	Flags *string `xml:"flags,attr"`
	Pre   *string `xml:"pre,attr"`
}

// ParsePrimary parses a decompressed primary document into primary
// records keyed by package identity.
func ParsePrimary(data []byte) (map[models.NEVR]*models.PrimaryPackage, error) {
	const doc = "primary"

	var parsed primaryDoc
	if err := xml.Unmarshal(data, &parsed); err != nil {
		return nil, malformed(doc, err)
	}

	packages := make(map[models.NEVR]*models.PrimaryPackage, len(parsed.Packages))
	for _, p := range parsed.Packages {
		pkg, err := p.toModel()
		if err != nil {
			return nil, err
		}
		packages[models.NEVROf(pkg.Name, pkg.Version)] = pkg
	}

	return packages, nil
}

func (p *primaryPackage) toModel() (*models.PrimaryPackage, error) {
	const doc = "primary"

	for _, req := range []struct {
		val  *string
		name string
	}{
		{p.Checksum, "package checksum"},
		{p.Name, "package name"},
		{p.Arch, "package arch"},
		{p.Summary, "package summary"},
		{p.Description, "package description"},
		{p.Packager, "package packager"},
		{p.URL, "package url"},
	} {
		if req.val == nil {
			return nil, missingField(doc, req.name)
		}
	}
	if p.Time == nil || p.Time.File == nil || p.Time.Build == nil {
		return nil, missingField(doc, "package time file/build attributes")
	}
	if p.Location == nil || p.Location.Href == nil {
		return nil, missingField(doc, "package location href")
	}
	if p.Version == nil {
		return nil, missingField(doc, "package version element")
	}
	if p.Format == nil {
		return nil, missingField(doc, "package format element")
	}

	version, err := p.Version.toModel(doc)
	if err != nil {
		return nil, err
	}

	f := p.Format
	for _, req := range []struct {
		val  *string
		name string
	}{
		{f.License, "format license"},
		{f.Vendor, "format vendor"},
		{f.Group, "format group"},
		{f.Buildhost, "format buildhost"},
		{f.Sourcerpm, "format sourcerpm"},
	} {
		if req.val == nil {
			return nil, missingField(doc, req.name)
		}
	}
	if f.HeaderRange == nil || f.HeaderRange.Start == nil || f.HeaderRange.End == nil {
		return nil, missingField(doc, "format header-range start/end attributes")
	}

	provides, err := depEntries(f.Provides, false)
	if err != nil {
		return nil, err
	}
	requires, err := depEntries(f.Requires, true)
	if err != nil {
		return nil, err
	}
	obsoletes, err := depEntries(f.Obsoletes, false)
	if err != nil {
		return nil, err
	}

	return &models.PrimaryPackage{
		Name:        *p.Name,
		Arch:        *p.Arch,
		Version:     version,
		Checksum:    *p.Checksum,
		Summary:     *p.Summary,
		Description: *p.Description,
		Packager:    models.NewNullString(*p.Packager),
		URL:         *p.URL,
		FileTime:    *p.Time.File,
		BuildTime:   *p.Time.Build,
		Location:    *p.Location.Href,
		License:     models.NewNullString(*f.License),
		Vendor:      models.NewNullString(*f.Vendor),
		Group:       models.NewNullString(*f.Group),
		Buildhost:   models.NewNullString(*f.Buildhost),
		Sourcerpm:   models.NewNullString(*f.Sourcerpm),
		HeaderStart: models.NewNullString(*f.HeaderRange.Start),
		HeaderEnd:   models.NewNullString(*f.HeaderRange.End),
		Provides:    provides,
		Requires:    requires,
		Obsoletes:   obsoletes,
		Files:       fileEntries(f.Files),
	}, nil
}

// depEntries turns one provides/requires/obsoletes block into a keyed
// mapping. The name attribute is mandatory on every entry; the rest
// stay null when absent. A missing block yields an empty mapping.
func depEntries(block *depBlockElem, requires bool) (map[models.DependencyKey]models.Dependency, error) {
	if block == nil {
		return map[models.DependencyKey]models.Dependency{}, nil
	}

	deps := make(map[models.DependencyKey]models.Dependency, len(block.Entries))
	for _, e := range block.Entries {
		if e.Name == nil {
			return nil, malformed("primary", errMissingEntryName)
		}

		dep := models.Dependency{
			Name:  *e.Name,
			Epoch: models.NullStringFromPtr(e.Epoch),
			Rel:   models.NullStringFromPtr(e.Rel),
			Ver:   models.NullStringFromPtr(e.Ver),
			Flags: models.NullStringFromPtr(e.Flags),
		}
		if requires {
			dep.Pre = models.NullStringFromPtr(e.Pre)
		}
		deps[dep.Key()] = dep
	}
	return deps, nil
}
