// Package repo contains the reconciliation engine: it decides which
// rpm archives in storage are not yet represented in the repodata index
// and folds their derived metadata into it.
package repo

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/ralt/rpmsync/internal/metadata"
	"github.com/ralt/rpmsync/internal/models"
	"github.com/ralt/rpmsync/internal/rpm"
	"github.com/ralt/rpmsync/internal/storage"
	"github.com/ralt/rpmsync/internal/utils"
	"github.com/sirupsen/logrus"
)

// RepomdPath is the storage-relative location of the summary document.
const RepomdPath = "repodata/repomd.xml"

// fileStamp is one (location, modification time) observation of an
// archive, the unit the diff operates on.
type fileStamp struct {
	path  string
	mtime int64
}

// Syncer reconciles the repodata index against the archives currently
// in storage. A Syncer runs once; the index it returns is exclusively
// owned by that run.
type Syncer struct {
	storage storage.Storage
	headers rpm.HeaderSource
}

// New creates a Syncer over the given storage backend, reading archive
// headers from the downloaded files themselves.
func New(st storage.Storage) *Syncer {
	return &Syncer{storage: st, headers: rpm.FileHeaderSource{}}
}

// NewWithHeaders creates a Syncer with a custom header source.
func NewWithHeaders(st storage.Storage, headers rpm.HeaderSource) *Syncer {
	return &Syncer{storage: st, headers: headers}
}

// Run loads the existing index if the summary document is present,
// diffs it against the archives in storage and ingests every archive
// not yet recorded. The first failure aborts the run.
func (s *Syncer) Run(ctx context.Context) (*models.Index, error) {
	index, err := s.load()
	if err != nil {
		return nil, err
	}

	toAdd, err := s.diff(index)
	if err != nil {
		return nil, err
	}

	for _, stamp := range toAdd {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		if err := s.ingest(index, stamp); err != nil {
			return nil, err
		}
	}

	return index, nil
}

// load parses the existing index out of storage, or starts empty when
// no summary document exists yet.
func (s *Syncer) load() (*models.Index, error) {
	ok, err := s.storage.Exists(RepomdPath)
	if err != nil {
		return nil, err
	}
	if !ok {
		logrus.Debug("No summary document found, starting from an empty index")
		return models.NewIndex(), nil
	}

	data, err := s.storage.ReadFile(RepomdPath)
	if err != nil {
		return nil, err
	}

	filelistsLoc, primaryLoc, err := metadata.ParseRepomd(data)
	if err != nil {
		return nil, err
	}
	if filelistsLoc == nil || primaryLoc == nil {
		return nil, &models.SyncError{
			Type: models.ErrMissingField,
			Path: RepomdPath,
			Err:  fmt.Errorf("summary document lacks a filelists or primary record"),
		}
	}

	filelists, err := s.loadFilelists(filelistsLoc)
	if err != nil {
		return nil, err
	}
	primary, err := s.loadPrimary(primaryLoc)
	if err != nil {
		return nil, err
	}

	logrus.Infof("Loaded existing index with %d packages", len(primary))
	return &models.Index{Primary: primary, Filelists: filelists}, nil
}

func (s *Syncer) loadFilelists(loc *metadata.Locator) (map[models.NEVR]*models.FilelistsPackage, error) {
	data, err := s.readDocument(loc)
	if err != nil {
		return nil, err
	}
	return metadata.ParseFilelists(data)
}

func (s *Syncer) loadPrimary(loc *metadata.Locator) (map[models.NEVR]*models.PrimaryPackage, error) {
	data, err := s.readDocument(loc)
	if err != nil {
		return nil, err
	}
	return metadata.ParsePrimary(data)
}

func (s *Syncer) readDocument(loc *metadata.Locator) ([]byte, error) {
	data, err := s.storage.ReadFile(loc.Location)
	if err != nil {
		return nil, err
	}
	return utils.Decompress(data, loc.Location)
}

// diff returns the archives present in storage but not recorded in the
// index. The comparison is a set difference over (location, mtime), so
// an archive whose modification time changed counts as new. Order of
// the result is unspecified.
func (s *Syncer) diff(index *models.Index) ([]fileStamp, error) {
	recorded := make(map[fileStamp]bool, len(index.Primary))
	for _, pkg := range index.Primary {
		mtime, err := strconv.ParseInt(pkg.FileTime, 10, 64)
		if err != nil {
			return nil, &models.SyncError{
				Type: models.ErrMalformedDocument,
				Path: pkg.Location,
				Err:  fmt.Errorf("bad file timestamp %q: %w", pkg.FileTime, err),
			}
		}
		recorded[fileStamp{path: pkg.Location, mtime: mtime}] = true
	}

	paths, err := s.storage.Files(".")
	if err != nil {
		return nil, err
	}

	var toAdd []fileStamp
	for _, path := range paths {
		if !strings.HasSuffix(path, ".rpm") {
			continue
		}

		mtime, err := s.storage.Mtime(path)
		if err != nil {
			return nil, err
		}

		stamp := fileStamp{path: path, mtime: mtime}
		if !recorded[stamp] {
			toAdd = append(toAdd, stamp)
		}
	}

	return toAdd, nil
}

// ingest downloads one archive into a scratch directory, derives its
// records from the header and merges them into the index. The scratch
// directory is removed on every exit path.
func (s *Syncer) ingest(index *models.Index, stamp fileStamp) error {
	logrus.Infof("Adding: %s", stamp.path)

	tmpdir, err := os.MkdirTemp("", "rpmsync-")
	if err != nil {
		return &models.SyncError{Type: models.ErrBackend, Path: stamp.path, Err: err}
	}
	defer os.RemoveAll(tmpdir)

	local := filepath.Join(tmpdir, "package.rpm")
	if err := s.storage.DownloadFile(stamp.path, local); err != nil {
		return err
	}

	fields, err := s.headers.ReadHeader(local)
	if err != nil {
		return err
	}

	checksum, err := utils.FileSHA256(local)
	if err != nil {
		return &models.SyncError{Type: models.ErrBackend, Path: stamp.path, Err: err}
	}

	key, primary, err := rpm.MapPrimary(fields, checksum, stamp.mtime, stamp.path)
	if err != nil {
		return err
	}
	_, filelists, err := rpm.MapFilelists(fields, checksum)
	if err != nil {
		return err
	}

	return index.Merge(key, primary, filelists)
}
