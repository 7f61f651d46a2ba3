// Package scan discovers Clan Lord log files and folds their contents
// into the statistics database.
package scan

import (
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/thesquib/amanuensis/internal/data"
	"github.com/thesquib/amanuensis/internal/db"
	"github.com/thesquib/amanuensis/internal/encoding"
	"github.com/thesquib/amanuensis/internal/errors"
	"github.com/thesquib/amanuensis/internal/logging"
	"github.com/thesquib/amanuensis/internal/models"
	"github.com/thesquib/amanuensis/internal/parser"
)

const (
	logFilePrefix = "CL Log "
	logFileSuffix = ".txt"
	movieDirName  = "CL_Movies"

	// FTS inserts are batched to bound memory on huge files.
	indexBatchSize = 1000
)

// ProgressFunc reports scan progress. It is called with the 1-based
// file index, the total file count, and the current filename before
// each file is processed.
type ProgressFunc func(current, total int, filename string)

// Options controls a scan invocation.
type Options struct {
	// Force rescans files even if their path or content hash is
	// already in the ledger.
	Force bool
	// NoIndex skips full-text indexing of raw lines.
	NoIndex bool
	// Progress, when non-nil, is invoked before each file.
	Progress ProgressFunc
}

// Scanner walks character log folders, classifies every line, and
// applies the resulting events inside a single transaction.
type Scanner struct {
	repo      *db.Repository
	classify  *parser.Classifier
	creatures *data.CreatureDB
}

// NewScanner builds a scanner over the given repository using the
// bundled trainer and creature catalogs.
func NewScanner(repo *db.Repository) (*Scanner, error) {
	trainers, err := data.LoadTrainers()
	if err != nil {
		return nil, err
	}
	creatures, err := data.LoadCreatures()
	if err != nil {
		return nil, err
	}
	return &Scanner{
		repo:      repo,
		classify:  parser.NewClassifier(trainers),
		creatures: creatures,
	}, nil
}

// fileWork is one discovered log file bound to its character.
type fileWork struct {
	charName string
	path     string
}

type fileStats struct {
	linesParsed int
	eventsFound int
}

// ScanFolder scans a folder of character-named subdirectories, each
// holding CL Log files. The whole scan runs in one transaction: a
// failed file read is counted and skipped, but a store error rolls
// everything back.
func (s *Scanner) ScanFolder(folder string, opts Options) (*models.ScanResult, error) {
	work, err := discoverFolderWork(folder)
	if err != nil {
		return nil, err
	}
	return s.runScan(work, opts)
}

// ScanFiles scans an explicit list of log files. The character for
// each file is taken from its welcome line, falling back to the
// titlecased parent directory name.
func (s *Scanner) ScanFiles(paths []string, opts Options) (*models.ScanResult, error) {
	work := make([]fileWork, 0, len(paths))
	for _, p := range paths {
		work = append(work, fileWork{path: p}) // name resolved per file
	}
	return s.runScan(work, opts)
}

// ScanRecursive discovers log-root folders anywhere under root and
// scans them all in one transaction. A directory is a log root when
// any immediate subdirectory contains CL Log files; discovery does not
// descend past a root. With no roots found, root itself is scanned as
// a plain folder.
func (s *Scanner) ScanRecursive(root string, opts Options) (*models.ScanResult, error) {
	roots := discoverLogRoots(root)
	if len(roots) == 0 {
		return s.ScanFolder(root, opts)
	}

	var work []fileWork
	for _, folder := range roots {
		logging.Info("discovered log root", map[string]interface{}{"folder": folder})
		w, err := discoverFolderWork(folder)
		if err != nil {
			return nil, err
		}
		work = append(work, w...)
	}
	return s.runScan(work, opts)
}

// runScan processes the work list inside one transaction with the
// bulk-write pragmas active. The pragmas are reverted on every exit
// path, including a panic out of the progress callback.
func (s *Scanner) runScan(work []fileWork, opts Options) (result *models.ScanResult, err error) {
	if err := s.repo.BeginScan(); err != nil {
		return nil, err
	}
	committed := false
	defer func() {
		if !committed {
			s.repo.RollbackScan()
		}
	}()

	result, err = s.processFiles(work, opts)
	if err != nil {
		return nil, err
	}

	if err := s.repo.CommitScan(); err != nil {
		return nil, err
	}
	committed = true
	return result, nil
}

func (s *Scanner) processFiles(work []fileWork, opts Options) (*models.ScanResult, error) {
	result := &models.ScanResult{}
	seen := map[string]bool{}

	for i, fw := range work {
		if opts.Progress != nil {
			opts.Progress(i+1, len(work), filepath.Base(fw.path))
		}

		scanned, err := s.repo.IsLogScanned(fw.path)
		if err != nil {
			return nil, err
		}
		if !opts.Force && scanned {
			result.Skipped++
			continue
		}

		raw, err := os.ReadFile(fw.path)
		if err != nil {
			logging.Warn("error reading log file", map[string]interface{}{
				"path": fw.path, "error": err.Error(),
			})
			result.Errors++
			continue
		}

		contentHash := hashBytes(raw)
		hashed, err := s.repo.IsHashScanned(contentHash)
		if err != nil {
			return nil, err
		}
		if !opts.Force && hashed {
			logging.Debug("skipping duplicate content", map[string]interface{}{"path": fw.path})
			result.Skipped++
			continue
		}

		charName := fw.charName
		if charName == "" {
			charName = characterNameForFile(fw.path, raw)
		}
		charID, err := s.repo.GetOrCreateCharacter(charName)
		if err != nil {
			return nil, err
		}
		if !seen[charName] {
			seen[charName] = true
			result.Characters = append(result.Characters, charName)
		}

		stats, err := s.scanBytes(raw, charID, charName, fw.path, !opts.NoIndex)
		if err != nil {
			return nil, err
		}
		result.FilesScanned++
		result.LinesParsed += stats.linesParsed
		result.EventsFound += stats.eventsFound

		now := time.Now().UTC().Format("2006-01-02 15:04:05")
		if err := s.repo.MarkLogScanned(charID, fw.path, contentHash, now); err != nil {
			return nil, err
		}
	}
	return result, nil
}

// scanBytes decodes, classifies, and applies one file's lines.
func (s *Scanner) scanBytes(raw []byte, charID models.UUID, charName, filePath string, indexLines bool) (fileStats, error) {
	content := encoding.DecodeLogBytes(raw)

	var stats fileStats
	foundLogin := false
	firstDate := ""
	var pending []db.LogLine

	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSuffix(line, "\r")
		if line == "" {
			continue
		}
		stats.linesParsed++

		ts, message, hasTS := parser.SplitTimestamp(line)
		dateStr := ""
		if hasTS {
			dateStr = parser.FormatTimestamp(ts)
			if firstDate == "" {
				firstDate = dateStr
			}
		}

		if indexLines && strings.TrimSpace(line) != "" {
			pending = append(pending, db.LogLine{
				CharacterID: charID,
				Content:     line,
				Timestamp:   dateStr,
				FilePath:    filePath,
			})
			if len(pending) == indexBatchSize {
				if err := s.repo.InsertLogLines(pending); err != nil {
					return stats, err
				}
				pending = pending[:0]
			}
		}

		event := s.classify.Classify(message)
		counted, err := s.applyEvent(event, charID, charName, dateStr, &foundLogin)
		if err != nil {
			return stats, err
		}
		if counted {
			stats.eventsFound++
		}
	}

	if len(pending) > 0 {
		if err := s.repo.InsertLogLines(pending); err != nil {
			return stats, err
		}
	}

	// Every scanned file is exactly one session, whether or not a
	// welcome line survived the file boundary.
	if err := s.repo.IncrementCounter(charID, models.CounterLogins, 1); err != nil {
		return stats, err
	}
	if !foundLogin && firstDate != "" {
		if err := s.repo.UpdateStartDate(charID, firstDate); err != nil {
			return stats, err
		}
	}
	return stats, nil
}

// applyEvent folds one classified event into the store. The switch is
// exhaustive over the event set; the return value reports whether the
// event counted toward the scan's event total.
func (s *Scanner) applyEvent(event parser.Event, charID models.UUID, charName, dateStr string, foundLogin *bool) (bool, error) {
	switch ev := event.(type) {
	case parser.Ignored, parser.CoinBalance, parser.ExperienceGain,
		parser.ClanningChange, parser.Disconnect, parser.StudyProgress,
		parser.Recovered:
		return false, nil

	case parser.Login:
		return true, s.applyLogin(charID, dateStr, foundLogin)
	case parser.Reconnect:
		return true, s.applyLogin(charID, dateStr, foundLogin)

	case parser.SoloKill:
		value, _ := s.creatures.Value(ev.Creature)
		return true, s.repo.UpsertKill(charID, ev.Creature, ev.Verb, value, dateStr)
	case parser.AssistedKill:
		value, _ := s.creatures.Value(ev.Creature)
		return true, s.repo.UpsertKill(charID, ev.Creature, ev.Verb, value, dateStr)

	case parser.Fallen:
		// Other characters' deaths appear in our log too.
		if !strings.EqualFold(ev.Name, charName) {
			return false, nil
		}
		if err := s.repo.UpsertKill(charID, ev.Cause, models.KillKilledBy, 0, dateStr); err != nil {
			return false, err
		}
		return true, s.repo.IncrementCounter(charID, models.CounterDeaths, 1)
	case parser.FirstDepart:
		return true, s.repo.IncrementCounter(charID, models.CounterDeparts, 1)
	case parser.DepartCount:
		// The message reports a running total; overwrite.
		return true, s.repo.SetDeparts(charID, ev.Count)

	case parser.TrainerRank:
		return true, s.repo.UpsertTrainerRank(charID, ev.Trainer, dateStr)

	case parser.CoinsPickedUp:
		return true, s.repo.IncrementCounter(charID, models.CounterCoinsPickedUp, ev.Amount)
	case parser.StudyCharge:
		return true, s.repo.IncrementCounter(charID, models.CounterChestCoins, ev.Amount)
	case parser.LootShare:
		return true, s.applyLootShare(charID, ev)

	case parser.StudyAbandon:
		return true, s.repo.AbandonLasty(charID, ev.Subject, dateStr)

	case parser.GearEvent:
		return true, s.applyGear(charID, ev.Kind)
	case parser.EtherealStoneUsed:
		if err := s.repo.IncrementCounter(charID, models.CounterEtherealPortals, 1); err != nil {
			return false, err
		}
		return true, s.repo.IncrementCounter(charID, models.CounterEPSBroken, 1)

	case parser.Karma:
		field := models.CounterBadKarma
		if ev.Good {
			field = models.CounterGoodKarma
		}
		return true, s.repo.IncrementCounter(charID, field, 1)
	case parser.EsteemGain:
		return true, s.repo.IncrementCounter(charID, models.CounterEsteem, 1)

	case parser.ProfessionAnnouncement:
		if strings.EqualFold(ev.Name, charName) {
			if err := s.repo.UpdateProfession(charID, ev.Profession); err != nil {
				return false, err
			}
		}
		return true, nil
	case parser.Untrained:
		return true, s.repo.IncrementCounter(charID, models.CounterUntraining, 1)
	case parser.ApplyLearning:
		if !strings.EqualFold(ev.Character, charName) {
			return false, nil
		}
		if ev.Full {
			// "much more" is exactly one 10-rank block.
			return true, s.repo.UpsertApplyLearning(charID, ev.Trainer, dateStr, 10)
		}
		return true, s.repo.UpsertApplyLearningUnknown(charID, ev.Trainer, dateStr)

	case parser.LastyBegin:
		if err := s.repo.UpsertLasty(charID, ev.Creature, ev.Type, dateStr); err != nil {
			return false, err
		}
		// Restarting a study supersedes an earlier abandonment.
		return true, s.repo.ClearLastyAbandon(charID, ev.Creature)
	case parser.LastyProgress:
		return true, s.repo.UpsertLasty(charID, ev.Creature, ev.Type, dateStr)
	case parser.LastyFinished:
		if err := s.repo.FinishLasty(charID, ev.Creature, ev.Type, dateStr); err != nil {
			return false, err
		}
		if ev.Type == models.LastyBefriend {
			return true, s.repo.UpsertPet(charID, ev.Creature)
		}
		return true, nil
	case parser.LastyCompleted:
		return true, s.repo.CompleteLasty(charID)
	}
	return false, nil
}

func (s *Scanner) applyLogin(charID models.UUID, dateStr string, foundLogin *bool) error {
	*foundLogin = true
	if dateStr == "" {
		return nil
	}
	return s.repo.UpdateStartDate(charID, dateStr)
}

func (s *Scanner) applyLootShare(charID models.UUID, ev parser.LootShare) error {
	var shareField, worthField models.CounterField
	switch ev.Kind {
	case "fur":
		shareField, worthField = models.CounterFurCoins, models.CounterFurWorth
	case "blood":
		shareField, worthField = models.CounterBloodCoins, models.CounterBloodWorth
	case "mandible":
		shareField, worthField = models.CounterMandibleCoins, models.CounterMandibleWorth
	default:
		// Unrecognized parts fold into the bounty pile.
		return s.repo.IncrementCounter(charID, models.CounterBountyCoins, ev.Share)
	}
	if err := s.repo.IncrementCounter(charID, shareField, ev.Share); err != nil {
		return err
	}
	return s.repo.IncrementCounter(charID, worthField, ev.Worth)
}

func (s *Scanner) applyGear(charID models.UUID, kind parser.GearKind) error {
	var field models.CounterField
	switch kind {
	case parser.GearBellUsed:
		field = models.CounterBellsUsed
	case parser.GearBellBroken:
		field = models.CounterBellsBroken
	case parser.GearChainUsed:
		field = models.CounterChainsUsed
	case parser.GearChainBroken:
		field = models.CounterChainsBroken
	case parser.GearShieldstoneUsed:
		field = models.CounterShieldstonesUsed
	case parser.GearShieldstoneBroken:
		field = models.CounterShieldstonesBroken
	case parser.GearEtherealPortal:
		field = models.CounterEtherealPortals
	default:
		return errors.Newf(errors.ErrInvalid, "unknown gear kind: %d", int(kind))
	}
	return s.repo.IncrementCounter(charID, field, 1)
}

// discoverFolderWork lists the log files of each character subfolder,
// resolving each character's name from the earliest welcome line and
// falling back to the directory name.
func discoverFolderWork(folder string) ([]fileWork, error) {
	info, err := os.Stat(folder)
	if err != nil || !info.IsDir() {
		return nil, errors.Newf(errors.ErrData, "not a directory: %s", folder)
	}

	entries, err := os.ReadDir(folder)
	if err != nil {
		return nil, errors.Wrap(errors.ErrIO, "reading log folder", err)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })

	var work []fileWork
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasPrefix(name, ".") || name == movieDirName {
			continue
		}

		charDir := filepath.Join(folder, name)
		files, err := findLogFiles(charDir)
		if err != nil || len(files) == 0 {
			continue
		}
		sort.Strings(files)

		charName := ""
		for _, f := range files {
			raw, err := os.ReadFile(f)
			if err != nil {
				continue
			}
			if n := extractCharacterName(raw); n != "" {
				charName = n
				break
			}
		}
		if charName == "" {
			charName = name
		}

		for _, f := range files {
			work = append(work, fileWork{charName: charName, path: f})
		}
	}
	return work, nil
}

// findLogFiles lists the "CL Log *.txt" files directly inside dir.
func findLogFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasPrefix(name, logFilePrefix) && strings.HasSuffix(name, logFileSuffix) {
			files = append(files, filepath.Join(dir, name))
		}
	}
	return files, nil
}

// discoverLogRoots walks the tree under root collecting log-root
// folders. Children of a root are character folders, so the walk does
// not descend past one.
func discoverLogRoots(root string) []string {
	var results []string
	discoverLogRootsInner(root, &results)
	return results
}

func discoverLogRootsInner(dir string, results *[]string) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return
	}

	var subdirs []string
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasPrefix(name, ".") || name == movieDirName {
			continue
		}
		subdirs = append(subdirs, filepath.Join(dir, name))
	}

	for _, sub := range subdirs {
		if files, err := findLogFiles(sub); err == nil && len(files) > 0 {
			*results = append(*results, dir)
			return
		}
	}
	for _, sub := range subdirs {
		discoverLogRootsInner(sub, results)
	}
}

// characterNameForFile resolves the character a standalone file
// belongs to: the welcome line inside it, else the titlecased parent
// directory name, else "Unknown".
func characterNameForFile(path string, raw []byte) string {
	if name := extractCharacterName(raw); name != "" {
		return name
	}
	parent := filepath.Base(filepath.Dir(path))
	if parent != "." && parent != string(filepath.Separator) {
		return titlecaseName(parent)
	}
	return "Unknown"
}

// extractCharacterName finds the first welcome line in a file and
// returns the titlecased character name, or "".
func extractCharacterName(raw []byte) string {
	content := encoding.DecodeLogBytes(raw)
	for _, line := range strings.Split(content, "\n") {
		_, message, _ := parser.SplitTimestamp(strings.TrimSuffix(line, "\r"))
		if name, ok := parser.WelcomeName(message); ok {
			return titlecaseName(name)
		}
	}
	return ""
}

// titlecaseName capitalizes the first letter of each word, preserving
// Roman numerals ("Lord Farquad II" keeps its "II").
func titlecaseName(name string) string {
	words := strings.Fields(name)
	for i, word := range words {
		if isRomanNumeral(word) {
			continue
		}
		r, size := utf8.DecodeRuneInString(word)
		words[i] = string(unicode.ToUpper(r)) + strings.ToLower(word[size:])
	}
	return strings.Join(words, " ")
}

func isRomanNumeral(word string) bool {
	if word == "" {
		return false
	}
	for _, r := range word {
		switch r {
		case 'I', 'V', 'X', 'L', 'C', 'D', 'M':
		default:
			return false
		}
	}
	return true
}

// hashBytes is the content fingerprint for duplicate detection.
func hashBytes(raw []byte) string {
	sum := sha256.Sum256(raw)
	return hex.EncodeToString(sum[:])
}
