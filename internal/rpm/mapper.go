package rpm

import (
	"fmt"
	"strconv"

	"github.com/ralt/rpmsync/internal/models"
	"github.com/sassoftware/go-rpmutils"
)

// MapPrimary derives a package's identity and primary record from its
// header field dictionary, content checksum, modification time and
// storage location. The result is schema-compatible with what the
// primary document parser produces for an equivalent entry, except that
// the header byte range stays null: only the repository generation tool
// knows it.
func MapPrimary(f Fields, checksum string, mtime int64, location string) (models.NEVR, *models.PrimaryPackage, error) {
	name, err := requiredString(f, rpmutils.NAME, "NAME")
	if err != nil {
		return models.NEVR{}, nil, err
	}
	arch, err := requiredString(f, rpmutils.ARCH, "ARCH")
	if err != nil {
		return models.NEVR{}, nil, err
	}
	summary, err := requiredString(f, rpmutils.SUMMARY, "SUMMARY")
	if err != nil {
		return models.NEVR{}, nil, err
	}
	description, err := requiredString(f, rpmutils.DESCRIPTION, "DESCRIPTION")
	if err != nil {
		return models.NEVR{}, nil, err
	}
	url, err := requiredString(f, rpmutils.URL, "URL")
	if err != nil {
		return models.NEVR{}, nil, err
	}
	buildTime, ok := f.Int(rpmutils.BUILDTIME)
	if !ok {
		return models.NEVR{}, nil, missingTag("BUILDTIME")
	}

	version, err := headerVersion(f)
	if err != nil {
		return models.NEVR{}, nil, err
	}

	provides, err := mapDependencies(f, rpmutils.PROVIDENAME, rpmutils.PROVIDEVERSION, rpmutils.PROVIDEFLAGS, false)
	if err != nil {
		return models.NEVR{}, nil, err
	}
	requires, err := mapDependencies(f, rpmutils.REQUIRENAME, rpmutils.REQUIREVERSION, rpmutils.REQUIREFLAGS, true)
	if err != nil {
		return models.NEVR{}, nil, err
	}
	obsoletes, err := mapDependencies(f, rpmutils.OBSOLETENAME, rpmutils.OBSOLETEVERSION, rpmutils.OBSOLETEFLAGS, false)
	if err != nil {
		return models.NEVR{}, nil, err
	}

	files, err := mapFiles(f)
	if err != nil {
		return models.NEVR{}, nil, err
	}

	pkg := &models.PrimaryPackage{
		Name:        name,
		Arch:        arch,
		Version:     version,
		Checksum:    checksum,
		Summary:     summary,
		Description: description,
		Packager:    optionalString(f, rpmutils.PACKAGER),
		URL:         url,
		FileTime:    strconv.FormatInt(mtime, 10),
		BuildTime:   strconv.FormatInt(buildTime, 10),
		Location:    location,
		License:     optionalString(f, rpmutils.LICENSE),
		Vendor:      optionalString(f, rpmutils.VENDOR),
		Group:       optionalString(f, rpmutils.GROUP),
		Buildhost:   optionalString(f, rpmutils.BUILDHOST),
		Sourcerpm:   optionalString(f, rpmutils.SOURCERPM),
		Provides:    provides,
		Requires:    requires,
		Obsoletes:   obsoletes,
		Files:       files,
	}

	return models.NEVROf(name, version), pkg, nil
}

// MapFilelists derives a package's identity and filelists record from
// its header field dictionary and content checksum.
func MapFilelists(f Fields, checksum string) (models.NEVR, *models.FilelistsPackage, error) {
	name, err := requiredString(f, rpmutils.NAME, "NAME")
	if err != nil {
		return models.NEVR{}, nil, err
	}
	arch, err := requiredString(f, rpmutils.ARCH, "ARCH")
	if err != nil {
		return models.NEVR{}, nil, err
	}
	version, err := headerVersion(f)
	if err != nil {
		return models.NEVR{}, nil, err
	}
	files, err := mapFiles(f)
	if err != nil {
		return models.NEVR{}, nil, err
	}

	pkg := &models.FilelistsPackage{
		PkgID:   checksum,
		Name:    name,
		Arch:    arch,
		Version: version,
		Files:   files,
	}

	return models.NEVROf(name, version), pkg, nil
}

// headerVersion reads the package version out of the header. VERSION is
// mandatory; EPOCH and RELEASE stay null when the header omits them.
func headerVersion(f Fields) (models.Version, error) {
	ver, ok := f.String(rpmutils.VERSION)
	if !ok {
		return models.Version{}, missingTag("VERSION")
	}

	v := models.Version{Ver: models.NewNullString(ver)}
	if rel, ok := f.String(rpmutils.RELEASE); ok {
		v.Rel = models.NewNullString(rel)
	}
	if epoch, ok := f.Int(rpmutils.EPOCH); ok {
		v.Epoch = models.NewNullString(strconv.FormatInt(epoch, 10))
	}
	return v, nil
}

// mapDependencies zips the three parallel arrays of one dependency
// block into a keyed mapping. For requires entries, rpmlib feature
// dependencies are dropped and the prerequisite marker is derived from
// the flags.
func mapDependencies(f Fields, nameTag, versionTag, flagsTag int, requires bool) (map[models.DependencyKey]models.Dependency, error) {
	names := f.Strings(nameTag)
	versions := f.Strings(versionTag)
	flags := f.Ints(flagsTag)

	n := len(names)
	if len(versions) < n {
		n = len(versions)
	}
	if len(flags) < n {
		n = len(flags)
	}

	deps := make(map[models.DependencyKey]models.Dependency, n)
	for i := 0; i < n; i++ {
		if requires && IsRpmlib(flags[i]) {
			continue
		}

		evr, err := ParseEVR(versions[i])
		if err != nil {
			return nil, err
		}

		dep := models.Dependency{
			Name:  names[i],
			Epoch: evr.Epoch,
			Rel:   evr.Rel,
			Ver:   evr.Ver,
			Flags: models.NewNullString(FlagsToString(flags[i])),
		}
		if requires && IsPreReq(flags[i]) {
			dep.Pre = models.NewNullString("1")
		}
		deps[dep.Key()] = dep
	}
	return deps, nil
}

// mapFiles builds the file manifest from the header's basename array,
// directory table and directory index array: each basename joined with
// its resolved directory, then one dir entry per directory-table slot.
func mapFiles(f Fields) ([]models.FileEntry, error) {
	basenames := f.Strings(rpmutils.BASENAMES)
	dirnames := f.Strings(rpmutils.DIRNAMES)
	dirindexes := f.Ints(rpmutils.DIRINDEXES)

	n := len(basenames)
	if len(dirindexes) < n {
		n = len(dirindexes)
	}

	files := make([]models.FileEntry, 0, n+len(dirnames))
	for i := 0; i < n; i++ {
		di := dirindexes[i]
		if di < 0 || di >= len(dirnames) {
			return nil, &models.SyncError{
				Type: models.ErrArchiveFormat,
				Err:  fmt.Errorf("directory index %d out of range for %q", di, basenames[i]),
			}
		}
		files = append(files, models.FileEntry{Name: dirnames[di] + basenames[i], Type: models.FileTypeFile})
	}
	for _, dir := range dirnames {
		files = append(files, models.FileEntry{Name: dir, Type: models.FileTypeDir})
	}
	return files, nil
}

func requiredString(f Fields, tag int, name string) (string, error) {
	s, ok := f.String(tag)
	if !ok {
		return "", missingTag(name)
	}
	return s, nil
}

func optionalString(f Fields, tag int) models.NullString {
	if s, ok := f.String(tag); ok {
		return models.NewNullString(s)
	}
	return models.NullString{}
}

func missingTag(name string) error {
	return &models.SyncError{
		Type: models.ErrArchiveFormat,
		Err:  fmt.Errorf("header is missing the %s tag", name),
	}
}
