package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/dustin/go-humanize"

	"github.com/thesquib/amanuensis/internal/data"
	"github.com/thesquib/amanuensis/internal/db"
	"github.com/thesquib/amanuensis/internal/errors"
	"github.com/thesquib/amanuensis/internal/export"
	"github.com/thesquib/amanuensis/internal/fighterstats"
	"github.com/thesquib/amanuensis/internal/models"
	"github.com/thesquib/amanuensis/internal/scan"
)

func cmdScan(args []string) error {
	fs := flag.NewFlagSet("scan", flag.ExitOnError)
	dbPath, verbose := commonFlags(fs)
	force := fs.Bool("force", false, "rescan files already recorded in the ledger")
	recursive := fs.Bool("r", false, "walk the folder tree looking for log roots")
	noIndex := fs.Bool("no-index", false, "skip full-text indexing of log lines")

	repo, err := openRepo(fs, args, dbPath, verbose)
	if err != nil {
		return err
	}
	defer repo.Close()

	if fs.NArg() == 0 {
		return errors.New(errors.ErrInvalid, "scan requires at least one folder")
	}

	scanner, err := scan.NewScanner(repo)
	if err != nil {
		return err
	}
	opts := scan.Options{
		Force:    *force,
		NoIndex:  *noIndex,
		Progress: printProgress,
	}

	total := &models.ScanResult{}
	for _, folder := range fs.Args() {
		var result *models.ScanResult
		if *recursive {
			result, err = scanner.ScanRecursive(folder, opts)
		} else {
			result, err = scanner.ScanFolder(folder, opts)
		}
		if err != nil {
			return err
		}
		mergeResults(total, result)
	}
	fmt.Println()

	if err := finalize(repo); err != nil {
		return err
	}
	printScanResult(total)
	return nil
}

func cmdScanFiles(args []string) error {
	fs := flag.NewFlagSet("scan-files", flag.ExitOnError)
	dbPath, verbose := commonFlags(fs)
	force := fs.Bool("force", false, "rescan files already recorded in the ledger")
	noIndex := fs.Bool("no-index", false, "skip full-text indexing of log lines")

	repo, err := openRepo(fs, args, dbPath, verbose)
	if err != nil {
		return err
	}
	defer repo.Close()

	if fs.NArg() == 0 {
		return errors.New(errors.ErrInvalid, "scan-files requires at least one file")
	}

	scanner, err := scan.NewScanner(repo)
	if err != nil {
		return err
	}
	result, err := scanner.ScanFiles(fs.Args(), scan.Options{
		Force:    *force,
		NoIndex:  *noIndex,
		Progress: printProgress,
	})
	if err != nil {
		return err
	}
	fmt.Println()

	if err := finalize(repo); err != nil {
		return err
	}
	printScanResult(result)
	return nil
}

// finalize recomputes inferred professions and coin levels after a scan.
func finalize(repo *db.Repository) error {
	trainers, err := data.LoadTrainers()
	if err != nil {
		return err
	}
	return repo.FinalizeCharacters(trainers)
}

func printProgress(current, total int, filename string) {
	fmt.Fprintf(os.Stderr, "\r\033[K[%d/%d] %s", current, total, filename)
}

func mergeResults(total, r *models.ScanResult) {
	total.FilesScanned += r.FilesScanned
	total.Skipped += r.Skipped
	total.LinesParsed += r.LinesParsed
	total.EventsFound += r.EventsFound
	total.Errors += r.Errors
	for _, name := range r.Characters {
		found := false
		for _, have := range total.Characters {
			if have == name {
				found = true
				break
			}
		}
		if !found {
			total.Characters = append(total.Characters, name)
		}
	}
}

func printScanResult(r *models.ScanResult) {
	fmt.Printf("Scanned %s files (%s skipped, %d errors)\n",
		humanize.Comma(int64(r.FilesScanned)), humanize.Comma(int64(r.Skipped)), r.Errors)
	fmt.Printf("Parsed %s lines, %s events\n",
		humanize.Comma(int64(r.LinesParsed)), humanize.Comma(int64(r.EventsFound)))
	if len(r.Characters) > 0 {
		fmt.Printf("Characters: %s\n", strings.Join(r.Characters, ", "))
	}
}

func cmdCharacters(args []string) error {
	fs := flag.NewFlagSet("characters", flag.ExitOnError)
	dbPath, verbose := commonFlags(fs)
	repo, err := openRepo(fs, args, dbPath, verbose)
	if err != nil {
		return err
	}
	defer repo.Close()

	chars, err := repo.ListCharacters()
	if err != nil {
		return err
	}
	if len(chars) == 0 {
		fmt.Println("No characters yet. Run `amanuensis scan <folder>` first.")
		return nil
	}

	w := newTable()
	fmt.Fprintln(w, "NAME\tPROFESSION\tCOIN\tLOGINS\tDEATHS\tSTARTED")
	for _, c := range chars {
		merged, err := repo.GetCharacterMerged(c.ID)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%s\t%s\n",
			merged.Name, merged.Profession, merged.CoinLevel,
			humanize.Comma(merged.Logins), humanize.Comma(merged.Deaths),
			orDash(merged.StartDate))
	}
	return w.Flush()
}

func cmdSummary(args []string) error {
	fs := flag.NewFlagSet("summary", flag.ExitOnError)
	dbPath, verbose := commonFlags(fs)
	repo, err := openRepo(fs, args, dbPath, verbose)
	if err != nil {
		return err
	}
	defer repo.Close()

	c, err := lookupCharacter(repo, fs)
	if err != nil {
		return err
	}
	merged, err := repo.GetCharacterMerged(c.ID)
	if err != nil {
		return err
	}

	fmt.Printf("%s — %s (coin level %d)\n", merged.Name, merged.Profession, merged.CoinLevel)
	if merged.StartDate != nil {
		fmt.Printf("First seen %s\n", *merged.StartDate)
	}
	sources, err := repo.GetMergeSources(c.ID)
	if err != nil {
		return err
	}
	if len(sources) > 0 {
		names := make([]string, len(sources))
		for i, s := range sources {
			names[i] = s.Name
		}
		fmt.Printf("Includes merged characters: %s\n", strings.Join(names, ", "))
	}
	fmt.Println()

	w := newTable()
	fmt.Fprintf(w, "Logins\t%s\n", humanize.Comma(merged.Logins))
	fmt.Fprintf(w, "Departs\t%s\n", humanize.Comma(merged.Departs))
	fmt.Fprintf(w, "Deaths\t%s\n", humanize.Comma(merged.Deaths))
	fmt.Fprintf(w, "Esteem\t%s\n", humanize.Comma(merged.Esteem))
	fmt.Fprintf(w, "Karma\t+%s / -%s\n", humanize.Comma(merged.GoodKarma), humanize.Comma(merged.BadKarma))
	fmt.Fprintf(w, "Untrainings\t%s\n", humanize.Comma(merged.UntrainingCount))
	if err := w.Flush(); err != nil {
		return err
	}

	if best, count, err := repo.HighestKill(c.ID); err != nil {
		return err
	} else if best != "" {
		fmt.Printf("\nBest hunted: %s (%s points)\n", best, humanize.Comma(count))
	}
	if nemesis, count, err := repo.Nemesis(c.ID); err != nil {
		return err
	} else if nemesis != "" {
		fmt.Printf("Nemesis: %s (died to it %s %s)\n",
			nemesis, humanize.Comma(count), pluralize(count, "time", "times"))
	}
	return nil
}

func cmdCoins(args []string) error {
	fs := flag.NewFlagSet("coins", flag.ExitOnError)
	dbPath, verbose := commonFlags(fs)
	repo, err := openRepo(fs, args, dbPath, verbose)
	if err != nil {
		return err
	}
	defer repo.Close()

	c, err := lookupCharacter(repo, fs)
	if err != nil {
		return err
	}
	merged, err := repo.GetCharacterMerged(c.ID)
	if err != nil {
		return err
	}

	w := newTable()
	fmt.Fprintf(w, "Picked up\t%s\n", humanize.Comma(merged.CoinsPickedUp))
	fmt.Fprintf(w, "Chest\t%s\n", humanize.Comma(merged.ChestCoins))
	fmt.Fprintf(w, "Bounty\t%s\n", humanize.Comma(merged.BountyCoins))
	fmt.Fprintf(w, "Furs\t%s (worth %s)\n", humanize.Comma(merged.FurCoins), humanize.Comma(merged.FurWorth))
	fmt.Fprintf(w, "Mandibles\t%s (worth %s)\n", humanize.Comma(merged.MandibleCoins), humanize.Comma(merged.MandibleWorth))
	fmt.Fprintf(w, "Blood\t%s (worth %s)\n", humanize.Comma(merged.BloodCoins), humanize.Comma(merged.BloodWorth))
	fmt.Fprintf(w, "Casino\t+%s / -%s\n", humanize.Comma(merged.CasinoWon), humanize.Comma(merged.CasinoLost))
	fmt.Fprintln(w, "")
	fmt.Fprintf(w, "Bells\t%s used, %s broken\n", humanize.Comma(merged.BellsUsed), humanize.Comma(merged.BellsBroken))
	fmt.Fprintf(w, "Chains\t%s used, %s broken\n", humanize.Comma(merged.ChainsUsed), humanize.Comma(merged.ChainsBroken))
	fmt.Fprintf(w, "Shieldstones\t%s used, %s broken\n", humanize.Comma(merged.ShieldstonesUsed), humanize.Comma(merged.ShieldstonesBroken))
	fmt.Fprintf(w, "Ethereal portals\t%s (%s stones broken)\n", humanize.Comma(merged.EtherealPortals), humanize.Comma(merged.EPSBroken))
	return w.Flush()
}

func cmdKills(args []string) error {
	fs := flag.NewFlagSet("kills", flag.ExitOnError)
	dbPath, verbose := commonFlags(fs)
	sortBy := fs.String("sort", "total", "sort order: total, value, or name")
	limit := fs.Int("limit", 0, "show at most N creatures (0 = all)")

	repo, err := openRepo(fs, args, dbPath, verbose)
	if err != nil {
		return err
	}
	defer repo.Close()

	c, err := lookupCharacter(repo, fs)
	if err != nil {
		return err
	}
	kills, err := repo.GetKillsMerged(c.ID)
	if err != nil {
		return err
	}

	switch *sortBy {
	case "total":
		sort.SliceStable(kills, func(i, j int) bool { return kills[i].Total() > kills[j].Total() })
	case "value":
		sort.SliceStable(kills, func(i, j int) bool {
			return kills[i].CreatureValue*kills[i].SoloTotal() > kills[j].CreatureValue*kills[j].SoloTotal()
		})
	case "name":
		sort.SliceStable(kills, func(i, j int) bool { return kills[i].CreatureName < kills[j].CreatureName })
	default:
		return errors.Newf(errors.ErrInvalid, "unknown sort order %q", *sortBy)
	}
	if *limit > 0 && len(kills) > *limit {
		kills = kills[:*limit]
	}

	w := newTable()
	fmt.Fprintln(w, "CREATURE\tSOLO\tASSISTED\tDEATHS TO\tVALUE\tLAST")
	for _, k := range kills {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%s\n",
			k.CreatureName,
			humanize.Comma(k.SoloTotal()), humanize.Comma(k.AssistedTotal()),
			humanize.Comma(k.KilledByCount), k.CreatureValue, orDash(k.DateLast))
	}
	return w.Flush()
}

func cmdTrainers(args []string) error {
	fs := flag.NewFlagSet("trainers", flag.ExitOnError)
	dbPath, verbose := commonFlags(fs)
	repo, err := openRepo(fs, args, dbPath, verbose)
	if err != nil {
		return err
	}
	defer repo.Close()

	c, err := lookupCharacter(repo, fs)
	if err != nil {
		return err
	}
	trainers, err := repo.GetTrainersMerged(c.ID)
	if err != nil {
		return err
	}

	var total int64
	w := newTable()
	fmt.Fprintln(w, "TRAINER\tRANKS\tOVERRIDE\tLEARNED\tLAST RANK")
	for _, t := range trainers {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			t.TrainerName, humanize.Comma(t.Ranks),
			signed(t.ModifiedRanks), humanize.Comma(t.ApplyLearningRanks),
			orDash(t.DateOfLastRank))
		total += t.TotalRanks()
	}
	fmt.Fprintf(w, "TOTAL\t%s\t\t\t\n", humanize.Comma(total))
	return w.Flush()
}

func cmdPets(args []string) error {
	fs := flag.NewFlagSet("pets", flag.ExitOnError)
	dbPath, verbose := commonFlags(fs)
	repo, err := openRepo(fs, args, dbPath, verbose)
	if err != nil {
		return err
	}
	defer repo.Close()

	c, err := lookupCharacter(repo, fs)
	if err != nil {
		return err
	}
	pets, err := repo.GetPetsMerged(c.ID)
	if err != nil {
		return err
	}
	if len(pets) == 0 {
		fmt.Println("No pets recorded.")
		return nil
	}
	for _, p := range pets {
		fmt.Printf("%s (%s)\n", p.PetName, p.CreatureName)
	}
	return nil
}

func cmdLastys(args []string) error {
	fs := flag.NewFlagSet("lastys", flag.ExitOnError)
	dbPath, verbose := commonFlags(fs)
	repo, err := openRepo(fs, args, dbPath, verbose)
	if err != nil {
		return err
	}
	defer repo.Close()

	c, err := lookupCharacter(repo, fs)
	if err != nil {
		return err
	}
	lastys, err := repo.GetLastysMerged(c.ID)
	if err != nil {
		return err
	}

	w := newTable()
	fmt.Fprintln(w, "CREATURE\tTYPE\tSTATUS\tMESSAGES\tFIRST SEEN\tRESOLVED")
	for _, l := range lastys {
		status, resolved := "in progress", "-"
		switch {
		case l.CompletedDate != nil:
			status, resolved = "completed", *l.CompletedDate
		case l.AbandonedDate != nil:
			status, resolved = "abandoned", *l.AbandonedDate
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\t%s\n",
			l.CreatureName, l.LastyType, status, l.MessageCount,
			orDash(l.FirstSeenDate), resolved)
	}
	return w.Flush()
}

func cmdMerge(args []string) error {
	fs := flag.NewFlagSet("merge", flag.ExitOnError)
	dbPath, verbose := commonFlags(fs)
	repo, err := openRepo(fs, args, dbPath, verbose)
	if err != nil {
		return err
	}
	defer repo.Close()

	if fs.NArg() < 2 {
		return errors.New(errors.ErrInvalid, "merge requires a target and at least one source")
	}
	target, sources := fs.Arg(0), fs.Args()[1:]
	if err := repo.MergeCharacters(target, sources); err != nil {
		return err
	}
	fmt.Printf("Merged %s into %s\n", strings.Join(sources, ", "), target)
	return nil
}

func cmdUnmerge(args []string) error {
	fs := flag.NewFlagSet("unmerge", flag.ExitOnError)
	dbPath, verbose := commonFlags(fs)
	repo, err := openRepo(fs, args, dbPath, verbose)
	if err != nil {
		return err
	}
	defer repo.Close()

	if fs.NArg() != 1 {
		return errors.New(errors.ErrInvalid, "unmerge requires exactly one character name")
	}
	name := fs.Arg(0)
	if err := repo.UnmergeCharacter(name); err != nil {
		return err
	}
	fmt.Printf("Detached %s\n", name)
	return nil
}

func cmdSetRanks(args []string) error {
	fs := flag.NewFlagSet("set-ranks", flag.ExitOnError)
	dbPath, verbose := commonFlags(fs)
	clearAll := fs.Bool("clear", false, "remove all rank overrides instead of setting one")

	repo, err := openRepo(fs, args, dbPath, verbose)
	if err != nil {
		return err
	}
	defer repo.Close()

	if *clearAll {
		if fs.NArg() != 0 {
			return errors.New(errors.ErrInvalid, "set-ranks -clear takes no arguments")
		}
		if err := repo.ClearRankOverrides(); err != nil {
			return err
		}
		fmt.Println("Cleared all rank overrides")
		return nil
	}

	if fs.NArg() != 3 {
		return errors.New(errors.ErrInvalid, "set-ranks requires <name> <trainer> <ranks>")
	}
	c, err := repo.GetCharacter(fs.Arg(0))
	if err != nil {
		return err
	}
	ranks, err := strconv.ParseInt(fs.Arg(2), 10, 64)
	if err != nil {
		return errors.Newf(errors.ErrInvalid, "ranks must be an integer, got %q", fs.Arg(2))
	}
	if err := repo.SetModifiedRanks(c.ID, fs.Arg(1), ranks); err != nil {
		return err
	}
	fmt.Printf("Set %s override for %s to %s\n", fs.Arg(1), c.Name, signed(ranks))
	return nil
}

func cmdSearch(args []string) error {
	fs := flag.NewFlagSet("search", flag.ExitOnError)
	dbPath, verbose := commonFlags(fs)
	character := fs.String("character", "", "restrict results to one character")
	limit := fs.Int("limit", 50, "maximum number of results")

	repo, err := openRepo(fs, args, dbPath, verbose)
	if err != nil {
		return err
	}
	defer repo.Close()

	if fs.NArg() == 0 {
		return errors.New(errors.ErrInvalid, "search requires a query")
	}
	query := strings.Join(fs.Args(), " ")

	var charID models.UUID
	if *character != "" {
		c, err := repo.GetCharacter(*character)
		if err != nil {
			return err
		}
		charID = c.ID
	}

	hits, err := repo.SearchLogLines(query, charID, *limit)
	if err != nil {
		return err
	}
	if len(hits) == 0 {
		fmt.Println("No matches.")
		return nil
	}
	for _, h := range hits {
		snippet := strings.NewReplacer("<mark>", "\033[1m", "</mark>", "\033[0m").Replace(h.Snippet)
		fmt.Printf("%s  %s  %s\n", h.Timestamp, h.CharacterName, snippet)
	}
	return nil
}

func cmdReset(args []string) error {
	fs := flag.NewFlagSet("reset", flag.ExitOnError)
	dbPath, verbose := commonFlags(fs)
	keepRanks := fs.Bool("keep-modified-ranks", false, "preserve manual trainer rank overrides")
	yes := fs.Bool("yes", false, "skip the confirmation prompt")

	repo, err := openRepo(fs, args, dbPath, verbose)
	if err != nil {
		return err
	}
	defer repo.Close()

	if !*yes {
		fmt.Print("This wipes all scanned statistics. Type 'reset' to confirm: ")
		line, _ := bufio.NewReader(os.Stdin).ReadString('\n')
		if strings.TrimSpace(line) != "reset" {
			fmt.Println("Aborted.")
			return nil
		}
	}
	if err := repo.Reset(*keepRanks); err != nil {
		return err
	}
	fmt.Println("Statistics reset. Log files can be rescanned from scratch.")
	return nil
}

func cmdTrainerCatalog(args []string) error {
	fs := flag.NewFlagSet("trainer-catalog", flag.ExitOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}

	trainers, err := data.LoadTrainers()
	if err != nil {
		return err
	}
	metas := trainers.AllTrainerMetadata()
	sort.Slice(metas, func(i, j int) bool { return metas[i].Name < metas[j].Name })

	w := newTable()
	fmt.Fprintln(w, "TRAINER\tPROFESSION\tMULTIPLIER\tCOMBO OF")
	for _, m := range metas {
		prof := m.Profession
		if prof == "" {
			prof = "-"
		}
		combo := "-"
		if m.IsCombo {
			combo = strings.Join(m.ComboComponents, ", ")
		}
		fmt.Fprintf(w, "%s\t%s\t%.2f\t%s\n", m.Name, prof, m.Multiplier, combo)
	}
	return w.Flush()
}

func cmdFighterStats(args []string) error {
	fs := flag.NewFlagSet("fighter-stats", flag.ExitOnError)
	dbPath, verbose := commonFlags(fs)
	repo, err := openRepo(fs, args, dbPath, verbose)
	if err != nil {
		return err
	}
	defer repo.Close()

	c, err := lookupCharacter(repo, fs)
	if err != nil {
		return err
	}
	trainers, err := repo.GetTrainersMerged(c.ID)
	if err != nil {
		return err
	}
	catalog, err := data.LoadTrainers()
	if err != nil {
		return err
	}

	ranks := make(map[string]int64, len(trainers))
	multipliers := make(map[string]float64, len(trainers))
	for _, t := range trainers {
		ranks[t.TrainerName] = t.TotalRanks()
		multipliers[t.TrainerName] = catalog.Multiplier(t.TrainerName)
	}
	stats := fighterstats.Compute(ranks, multipliers)

	fmt.Printf("%s — %s trained ranks (%.1f effective, %s slaughter points)\n\n",
		c.Name, humanize.Comma(stats.TrainedRanks), stats.EffectiveRanks,
		humanize.Comma(stats.SlaughterPoints))

	w := newTable()
	fmt.Fprintf(w, "Accuracy\t%s\n", humanize.Comma(stats.Accuracy))
	fmt.Fprintf(w, "Damage\t%s - %s\n", humanize.Comma(stats.DamageMin), humanize.Comma(stats.DamageMax))
	fmt.Fprintf(w, "Offense\t%s\n", humanize.Comma(stats.Offense))
	fmt.Fprintf(w, "Balance\t%s (regen %s, %.2f/frame, %s/swing)\n",
		humanize.Comma(stats.Balance), humanize.Comma(stats.BalanceRegen),
		stats.BalancePerFrame, humanize.Comma(stats.BalancePerSwing))
	fmt.Fprintf(w, "Health\t%s (regen %s, %.2f/frame)\n",
		humanize.Comma(stats.Health), humanize.Comma(stats.HealthRegen), stats.HealthPerFrame)
	fmt.Fprintf(w, "Defense\t%s\n", humanize.Comma(stats.Defense))
	fmt.Fprintf(w, "Spirit\t%s (regen %s, %.2f/frame)\n",
		humanize.Comma(stats.Spirit), humanize.Comma(stats.SpiritRegen), stats.SpiritPerFrame)
	fmt.Fprintf(w, "Heal receptivity\t%s\n", humanize.Comma(stats.HealReceptivity))
	fmt.Fprintf(w, "Shieldstone drain\t%s\n", humanize.Comma(stats.ShieldstoneDrain))
	return w.Flush()
}

func cmdExport(args []string) error {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	dbPath, verbose := commonFlags(fs)
	out := fs.String("o", "amanuensis-export.json", "output file path")
	compress := fs.Bool("gzip", false, "gzip-compress the output")

	repo, err := openRepo(fs, args, dbPath, verbose)
	if err != nil {
		return err
	}
	defer repo.Close()

	svc := export.NewService(repo)
	var snaps []*export.CharacterSnapshot
	if fs.NArg() == 0 {
		snaps, err = svc.SnapshotAll()
		if err != nil {
			return err
		}
	} else {
		for _, name := range fs.Args() {
			snap, err := svc.Snapshot(name)
			if err != nil {
				return err
			}
			snaps = append(snaps, snap)
		}
	}

	manifest, err := svc.Write(*out, snaps, *compress)
	if err != nil {
		return err
	}
	fmt.Printf("Exported %s to %s (sha256 %s)\n",
		pluralizeCount(int64(manifest.CharacterCount), "character", "characters"),
		*out, manifest.Checksum)
	return nil
}

func cmdFinalize(args []string) error {
	fs := flag.NewFlagSet("finalize", flag.ExitOnError)
	dbPath, verbose := commonFlags(fs)
	repo, err := openRepo(fs, args, dbPath, verbose)
	if err != nil {
		return err
	}
	defer repo.Close()

	if err := finalize(repo); err != nil {
		return err
	}
	fmt.Println("Professions and coin levels recomputed.")
	return nil
}

// lookupCharacter resolves the single positional <name> argument of a
// reporting command. A merged character is reported via its target so
// the caller does not silently show a frozen snapshot.
func lookupCharacter(repo *db.Repository, fs *flag.FlagSet) (*models.Character, error) {
	if fs.NArg() != 1 {
		return nil, errors.Newf(errors.ErrInvalid, "%s requires exactly one character name", fs.Name())
	}
	c, err := repo.GetCharacter(fs.Arg(0))
	if err != nil {
		return nil, err
	}
	if c.IsMerged() {
		target, err := repo.GetMergedIntoName(c.ID)
		if err != nil {
			return nil, err
		}
		return nil, errors.Newf(errors.ErrInvalid,
			"%s is merged into %s; query %s instead or unmerge first", c.Name, target, target)
	}
	return c, nil
}

func newTable() *tabwriter.Writer {
	return tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
}

func orDash(s *string) string {
	if s == nil || *s == "" {
		return "-"
	}
	return *s
}

func signed(n int64) string {
	if n > 0 {
		return "+" + humanize.Comma(n)
	}
	return humanize.Comma(n)
}

func pluralize(n int64, singular, plural string) string {
	if n == 1 {
		return singular
	}
	return plural
}

func pluralizeCount(n int64, singular, plural string) string {
	return fmt.Sprintf("%s %s", humanize.Comma(n), pluralize(n, singular, plural))
}
