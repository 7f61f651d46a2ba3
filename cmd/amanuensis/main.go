// Command amanuensis ingests Clan Lord text logs into a per-character
// statistics database and reports on the result.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/thesquib/amanuensis/internal/db"
	"github.com/thesquib/amanuensis/internal/logging"
)

// Version is set at build time via -ldflags.
var Version = "dev"

const defaultDBFile = "amanuensis.db"

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	cmd, args := os.Args[1], os.Args[2:]
	if cmd == "version" || cmd == "-version" || cmd == "--version" {
		fmt.Printf("amanuensis %s\n", Version)
		return
	}

	run, ok := commands[cmd]
	if !ok {
		fmt.Fprintf(os.Stderr, "amanuensis: unknown command %q\n\n", cmd)
		usage()
		os.Exit(2)
	}

	if err := run(args); err != nil {
		fmt.Fprintf(os.Stderr, "amanuensis: %v\n", err)
		os.Exit(1)
	}
}

var commands = map[string]func(args []string) error{
	"scan":            cmdScan,
	"scan-files":      cmdScanFiles,
	"characters":      cmdCharacters,
	"summary":         cmdSummary,
	"coins":           cmdCoins,
	"kills":           cmdKills,
	"trainers":        cmdTrainers,
	"pets":            cmdPets,
	"lastys":          cmdLastys,
	"merge":           cmdMerge,
	"unmerge":         cmdUnmerge,
	"set-ranks":       cmdSetRanks,
	"search":          cmdSearch,
	"export":          cmdExport,
	"finalize":        cmdFinalize,
	"reset":           cmdReset,
	"trainer-catalog": cmdTrainerCatalog,
	"fighter-stats":   cmdFighterStats,
}

func usage() {
	fmt.Fprint(os.Stderr, usageText())
}

func usageText() string {
	return `usage: amanuensis <command> [flags] [args]

Scanning:
  scan [-r] [-force] [-no-index] <folder>...   scan character log folders
  scan-files [-force] [-no-index] <file>...    scan individual log files

Reporting:
  characters                                   list known characters
  summary <name>                               character overview
  coins <name>                                 coin and loot breakdown
  kills [-sort total|value|name] [-limit N] <name>
  trainers <name>                              trainer rank table
  pets <name>                                  befriended creatures
  lastys <name>                                lasty quest history
  fighter-stats <name>                         derived fighter statistics
  search [-character NAME] [-limit N] <query>  full-text log search
  trainer-catalog                              bundled trainer metadata
  export [-o FILE] [-gzip] [name]...           write statistics snapshot JSON

Maintenance:
  merge <target> <source>...                   fold characters into target
  unmerge <name>                               detach a merged character
  set-ranks [-clear] <name> <trainer> <ranks>  override trainer ranks
  finalize                                     recompute professions and coin levels
  reset [-keep-modified-ranks] [-yes]          wipe scanned statistics
  version                                      print version

Every command accepts -db <path> (default $AMANUENSIS_DB or ./amanuensis.db)
and -v for debug logging.
`
}

// commonFlags registers the flags shared by every subcommand.
func commonFlags(fs *flag.FlagSet) (dbPath *string, verbose *bool) {
	def := os.Getenv("AMANUENSIS_DB")
	if def == "" {
		def = defaultDBFile
	}
	dbPath = fs.String("db", def, "path to the statistics database")
	verbose = fs.Bool("v", false, "enable debug logging")
	return dbPath, verbose
}

// openRepo parses fs against args, initializes logging, and opens the
// database. The caller owns the returned repository.
func openRepo(fs *flag.FlagSet, args []string, dbPath *string, verbose *bool) (*db.Repository, error) {
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	level := logging.LevelWarn
	if *verbose {
		level = logging.LevelDebug
	}
	logging.Init(os.Stderr, level)

	database, err := db.Open(*dbPath)
	if err != nil {
		return nil, err
	}
	return db.NewRepository(database.DB), nil
}
