// Package export writes character statistics snapshots to JSON so they
// can be inspected, diffed, or loaded by other tools.
package export

import (
	"compress/gzip"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"os"
	"time"

	"github.com/thesquib/amanuensis/internal/db"
	"github.com/thesquib/amanuensis/internal/errors"
	"github.com/thesquib/amanuensis/internal/logging"
	"github.com/thesquib/amanuensis/internal/models"
)

// FormatVersion identifies the snapshot layout. Bump on breaking changes.
const FormatVersion = "1"

// Service reads aggregated statistics out of the store and serializes
// them. Merged characters are exported through their merge target, the
// same view the reporting commands show.
type Service struct {
	repo *db.Repository
}

func NewService(repo *db.Repository) *Service {
	return &Service{repo: repo}
}

// CharacterSnapshot is the full exported state of one character.
type CharacterSnapshot struct {
	Character *models.Character `json:"character"`
	Kills     []*models.Kill    `json:"kills,omitempty"`
	Trainers  []*models.Trainer `json:"trainers,omitempty"`
	Lastys    []*models.Lasty   `json:"lastys,omitempty"`
	Pets      []*models.Pet     `json:"pets,omitempty"`
}

// Manifest describes a written snapshot file.
type Manifest struct {
	Version        string    `json:"version"`
	ExportedAt     time.Time `json:"exported_at"`
	CharacterCount int       `json:"character_count"`
	Checksum       string    `json:"checksum"`
	Compressed     bool      `json:"compressed"`
}

// snapshotFile is the on-disk envelope.
type snapshotFile struct {
	Version    string               `json:"version"`
	ExportedAt time.Time            `json:"exported_at"`
	Characters []*CharacterSnapshot `json:"characters"`
}

// Snapshot assembles the merged view of one character by name.
func (s *Service) Snapshot(name string) (*CharacterSnapshot, error) {
	c, err := s.repo.GetCharacter(name)
	if err != nil {
		return nil, err
	}
	if c.IsMerged() {
		target, err := s.repo.GetMergedIntoName(c.ID)
		if err != nil {
			return nil, err
		}
		return nil, errors.Newf(errors.ErrInvalid,
			"%s is merged into %s; export %s instead", c.Name, target, target)
	}
	return s.snapshotByID(c.ID)
}

func (s *Service) snapshotByID(id models.UUID) (*CharacterSnapshot, error) {
	snap := &CharacterSnapshot{}
	var err error
	if snap.Character, err = s.repo.GetCharacterMerged(id); err != nil {
		return nil, err
	}
	if snap.Kills, err = s.repo.GetKillsMerged(id); err != nil {
		return nil, err
	}
	if snap.Trainers, err = s.repo.GetTrainersMerged(id); err != nil {
		return nil, err
	}
	if snap.Lastys, err = s.repo.GetLastysMerged(id); err != nil {
		return nil, err
	}
	if snap.Pets, err = s.repo.GetPetsMerged(id); err != nil {
		return nil, err
	}
	return snap, nil
}

// SnapshotAll assembles every unmerged character.
func (s *Service) SnapshotAll() ([]*CharacterSnapshot, error) {
	chars, err := s.repo.ListCharacters()
	if err != nil {
		return nil, err
	}
	snaps := make([]*CharacterSnapshot, 0, len(chars))
	for _, c := range chars {
		snap, err := s.snapshotByID(c.ID)
		if err != nil {
			return nil, err
		}
		snaps = append(snaps, snap)
	}
	return snaps, nil
}

// Write serializes snapshots to path, optionally gzip-compressed. The
// manifest checksum covers the character data alone, so the same
// statistics always hash the same regardless of export time or
// compression.
func (s *Service) Write(path string, snaps []*CharacterSnapshot, compress bool) (*Manifest, error) {
	data, err := json.Marshal(snaps)
	if err != nil {
		return nil, errors.Wrap(errors.ErrInternal, "failed to encode snapshot", err)
	}
	sum := sha256.Sum256(data)

	payload, err := json.MarshalIndent(snapshotFile{
		Version:    FormatVersion,
		ExportedAt: time.Now().UTC(),
		Characters: snaps,
	}, "", "  ")
	if err != nil {
		return nil, errors.Wrap(errors.ErrInternal, "failed to encode snapshot", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrIO, "failed to create export file", err)
	}
	defer f.Close()

	var out io.Writer = f
	var gz *gzip.Writer
	if compress {
		gz = gzip.NewWriter(f)
		out = gz
	}
	if _, err := out.Write(payload); err != nil {
		return nil, errors.Wrap(errors.ErrIO, "failed to write export file", err)
	}
	if gz != nil {
		if err := gz.Close(); err != nil {
			return nil, errors.Wrap(errors.ErrIO, "failed to finish compressed export", err)
		}
	}

	manifest := &Manifest{
		Version:        FormatVersion,
		ExportedAt:     time.Now().UTC(),
		CharacterCount: len(snaps),
		Checksum:       hex.EncodeToString(sum[:]),
		Compressed:     compress,
	}
	logging.Info("export written", map[string]interface{}{
		"path":       path,
		"characters": manifest.CharacterCount,
		"checksum":   manifest.Checksum,
		"compressed": compress,
	})
	return manifest, nil
}

// Read loads a snapshot file written by Write, transparently handling
// gzip, and verifies the format version.
func Read(path string) ([]*CharacterSnapshot, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrIO, "failed to open export file", err)
	}
	defer f.Close()

	var r io.Reader = f
	var magic [2]byte
	if _, err := io.ReadFull(f, magic[:]); err == nil && magic[0] == 0x1f && magic[1] == 0x8b {
		if _, err := f.Seek(0, io.SeekStart); err != nil {
			return nil, errors.Wrap(errors.ErrIO, "failed to rewind export file", err)
		}
		gz, err := gzip.NewReader(f)
		if err != nil {
			return nil, errors.Wrap(errors.ErrIO, "failed to open compressed export", err)
		}
		defer gz.Close()
		r = gz
	} else {
		if _, err := f.Seek(0, io.SeekStart); err != nil {
			return nil, errors.Wrap(errors.ErrIO, "failed to rewind export file", err)
		}
	}

	var file snapshotFile
	if err := json.NewDecoder(r).Decode(&file); err != nil {
		return nil, errors.Wrap(errors.ErrData, "failed to decode export file", err)
	}
	if file.Version != FormatVersion {
		return nil, errors.Newf(errors.ErrData, "unsupported export version %q", file.Version)
	}
	return file.Characters, nil
}
