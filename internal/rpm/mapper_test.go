package rpm

import (
	"testing"

	"github.com/ralt/rpmsync/internal/models"
	"github.com/sassoftware/go-rpmutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// tagFields is an in-memory Fields implementation for tests.
type tagFields map[int]interface{}

func (f tagFields) String(tag int) (string, bool) {
	s, ok := f[tag].(string)
	return s, ok
}

func (f tagFields) Strings(tag int) []string {
	s, _ := f[tag].([]string)
	return s
}

func (f tagFields) Ints(tag int) []int {
	s, _ := f[tag].([]int)
	return s
}

func (f tagFields) Int(tag int) (int64, bool) {
	n, ok := f[tag].(int)
	return int64(n), ok
}

func testHeader() tagFields {
	return tagFields{
		rpmutils.NAME:        "foo",
		rpmutils.ARCH:        "x86_64",
		rpmutils.VERSION:     "1.0",
		rpmutils.RELEASE:     "1.el9",
		rpmutils.SUMMARY:     "Test package",
		rpmutils.DESCRIPTION: "A package used in tests",
		rpmutils.URL:         "https://example.com/foo",
		rpmutils.BUILDTIME:   1700000000,
		rpmutils.BASENAMES:   []string{"foo"},
		rpmutils.DIRNAMES:    []string{"/usr/bin/"},
		rpmutils.DIRINDEXES:  []int{0},
	}
}

func TestMapPrimaryAndFilelistsShareIdentity(t *testing.T) {
	h := testHeader()

	key, primary, err := MapPrimary(h, "cafe01", 1700000100, "Packages/foo-1.0-1.el9.x86_64.rpm")
	require.NoError(t, err)

	flKey, filelists, err := MapFilelists(h, "cafe01")
	require.NoError(t, err)

	assert.Equal(t, key, flKey)
	assert.Equal(t, "foo", key.Name)
	assert.Equal(t, models.NewNullString("1.0"), key.Ver)
	assert.Equal(t, models.NewNullString("1.el9"), key.Rel)
	assert.False(t, key.Epoch.Valid, "header without EPOCH stays null, no default")

	assert.Equal(t, "cafe01", primary.Checksum)
	assert.Equal(t, "cafe01", filelists.PkgID)
	assert.Equal(t, "Packages/foo-1.0-1.el9.x86_64.rpm", primary.Location)
	assert.Equal(t, "1700000100", primary.FileTime)
	assert.Equal(t, "1700000000", primary.BuildTime)
	assert.False(t, primary.Packager.Valid)
	assert.False(t, primary.HeaderStart.Valid)
	assert.False(t, primary.HeaderEnd.Valid)

	// One file entry plus one directory entry, directory last.
	want := []models.FileEntry{
		{Name: "/usr/bin/foo", Type: models.FileTypeFile},
		{Name: "/usr/bin/", Type: models.FileTypeDir},
	}
	assert.Equal(t, want, primary.Files)
	assert.Equal(t, want, filelists.Files)

	assert.Empty(t, primary.Provides)
	assert.Empty(t, primary.Requires)
	assert.Empty(t, primary.Obsoletes)
}

func TestMapPrimaryEpoch(t *testing.T) {
	h := testHeader()
	h[rpmutils.EPOCH] = 2

	key, primary, err := MapPrimary(h, "cafe01", 100, "foo.rpm")
	require.NoError(t, err)
	assert.Equal(t, models.NewNullString("2"), key.Epoch)
	assert.Equal(t, models.NewNullString("2"), primary.Version.Epoch)
}

func TestMapPrimaryDependencies(t *testing.T) {
	h := testHeader()
	h[rpmutils.PROVIDENAME] = []string{"foo", "libfoo.so.1()(64bit)"}
	h[rpmutils.PROVIDEVERSION] = []string{"1.0-1.el9", ""}
	h[rpmutils.PROVIDEFLAGS] = []int{senseEqual, 0}
	h[rpmutils.REQUIRENAME] = []string{"/bin/sh", "bar", "rpmlib(CompressedFileNames)"}
	h[rpmutils.REQUIREVERSION] = []string{"", "2:3.0-1", "3.0.4-1"}
	h[rpmutils.REQUIREFLAGS] = []int{0x100, senseGreater | senseEqual, senseLess | senseEqual | senseRpmlib}
	h[rpmutils.OBSOLETENAME] = []string{"foo-compat"}
	h[rpmutils.OBSOLETEVERSION] = []string{"0.9-1"}
	h[rpmutils.OBSOLETEFLAGS] = []int{senseLess}

	_, primary, err := MapPrimary(h, "cafe01", 100, "foo.rpm")
	require.NoError(t, err)

	require.Len(t, primary.Provides, 2)
	versioned := primary.Provides[models.DependencyKey{
		Name:  "foo",
		Epoch: models.NewNullString("0"),
		Rel:   models.NewNullString("1.el9"),
		Ver:   models.NewNullString("1.0"),
	}]
	assert.Equal(t, models.NewNullString("EQ"), versioned.Flags)

	unversioned := primary.Provides[models.DependencyKey{Name: "libfoo.so.1()(64bit)"}]
	assert.Equal(t, "libfoo.so.1()(64bit)", unversioned.Name)
	assert.False(t, unversioned.Ver.Valid)
	assert.Equal(t, models.NewNullString(""), unversioned.Flags)

	// The rpmlib entry is dropped entirely.
	require.Len(t, primary.Requires, 2)
	for key := range primary.Requires {
		assert.NotEqual(t, "rpmlib(CompressedFileNames)", key.Name)
	}

	pre := primary.Requires[models.DependencyKey{Name: "/bin/sh"}]
	assert.Equal(t, models.NewNullString("1"), pre.Pre)

	versionedReq := primary.Requires[models.DependencyKey{
		Name:  "bar",
		Epoch: models.NewNullString("2"),
		Rel:   models.NewNullString("1"),
		Ver:   models.NewNullString("3.0"),
	}]
	assert.Equal(t, models.NewNullString("GE"), versionedReq.Flags)
	assert.False(t, versionedReq.Pre.Valid)

	require.Len(t, primary.Obsoletes, 1)
	for _, dep := range primary.Obsoletes {
		assert.Equal(t, models.NewNullString("LT"), dep.Flags)
		assert.False(t, dep.Pre.Valid, "pre is a requires-only marker")
	}
}

func TestMapPrimaryRpmlibNeverAppears(t *testing.T) {
	h := testHeader()
	h[rpmutils.REQUIRENAME] = []string{"rpmlib(PayloadIsXz)"}
	h[rpmutils.REQUIREVERSION] = []string{"5.2-1"}
	h[rpmutils.REQUIREFLAGS] = []int{senseLess | senseEqual | senseRpmlib | sensePrereqMask}

	_, primary, err := MapPrimary(h, "cafe01", 100, "foo.rpm")
	require.NoError(t, err)
	assert.Empty(t, primary.Requires)
}

func TestMapPrimaryMissingRequiredTag(t *testing.T) {
	h := testHeader()
	delete(h, rpmutils.NAME)

	_, _, err := MapPrimary(h, "cafe01", 100, "foo.rpm")
	require.Error(t, err)

	syncErr, ok := err.(*models.SyncError)
	require.True(t, ok)
	assert.Equal(t, models.ErrArchiveFormat, syncErr.Type)
}

func TestMapFilesBadDirIndex(t *testing.T) {
	h := testHeader()
	h[rpmutils.DIRINDEXES] = []int{7}

	_, _, err := MapFilelists(h, "cafe01")
	require.Error(t, err)

	syncErr, ok := err.(*models.SyncError)
	require.True(t, ok)
	assert.Equal(t, models.ErrArchiveFormat, syncErr.Type)
}

func TestMapPrimaryMalformedDependencyVersion(t *testing.T) {
	h := testHeader()
	h[rpmutils.PROVIDENAME] = []string{"foo"}
	h[rpmutils.PROVIDEVERSION] = []string{"no-dash-here-1-2"}
	h[rpmutils.PROVIDEFLAGS] = []int{senseEqual}

	_, _, err := MapPrimary(h, "cafe01", 100, "foo.rpm")
	require.Error(t, err)

	syncErr, ok := err.(*models.SyncError)
	require.True(t, ok)
	assert.Equal(t, models.ErrMalformedVersion, syncErr.Type)
}
