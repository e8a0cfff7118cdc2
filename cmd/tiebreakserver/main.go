// Command tiebreakserver is the CLI front end for the tiebreak engine: it
// reads one JSON request envelope, resolves the named tournament from the
// database, runs the engine, and writes the JSON response envelope to
// stdout. Exit code 0 on success, 1 on a bad request shape.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"tiebreakengine/internal/auth"
	"tiebreakengine/internal/database"
	"tiebreakengine/internal/service"
)

var (
	requestFile = flag.String("request", "", "Path to a JSON request file (default: read from stdin)")
	dbPath      = flag.String("db", "", "Path to the SQLite database file (default: OS-specific app data directory)")
	verbose     = flag.Bool("verbose", false, "Enable verbose logging")
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [OPTIONS]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Reads a tiebreak request envelope from stdin or -request, and writes\n")
		fmt.Fprintf(os.Stderr, "the computed response envelope to stdout.\n\n")
		fmt.Fprintf(os.Stderr, "OPTIONS:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if !*verbose {
		log.SetOutput(io.Discard)
	}

	raw, err := readRequest(*requestFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "tiebreakserver: %v\n", err)
		os.Exit(1)
	}

	path := *dbPath
	if path == "" {
		var derr error
		path, derr = database.GetDBPath()
		if derr != nil {
			fmt.Fprintf(os.Stderr, "tiebreakserver: failed to resolve database path: %v\n", derr)
			os.Exit(1)
		}
	}
	db, err := database.New(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "tiebreakserver: failed to open database: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()
	if err := db.RunMigrations(); err != nil {
		fmt.Fprintf(os.Stderr, "tiebreakserver: failed to run migrations: %v\n", err)
		os.Exit(1)
	}

	authSvc, err := auth.New(db)
	if err != nil {
		fmt.Fprintf(os.Stderr, "tiebreakserver: failed to init auth service: %v\n", err)
		os.Exit(1)
	}

	dispatcher := service.New(db, authSvc)
	resp := dispatcher.Dispatch(raw)

	if err := writeResponse(os.Stdout, resp); err != nil {
		fmt.Fprintf(os.Stderr, "tiebreakserver: failed to encode response: %v\n", err)
		os.Exit(1)
	}

	if resp.Status != nil && resp.Status.Code != 0 {
		os.Exit(1)
	}
}

func readRequest(path string) ([]byte, error) {
	if path == "" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}

func writeResponse(w io.Writer, resp service.Envelope) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(resp)
}
