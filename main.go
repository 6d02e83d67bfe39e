package main

import (
	"flag"
	"log"

	"github.com/checkmarble/challenge-backend/cmd"
)

// set with -ldflags "-X main.apiVersion=..." at build time
var apiVersion = "dev"

func main() {
	shouldRunMigrations := flag.Bool("migrations", false, "Run the Postgres migrations")
	shouldRunServer := flag.Bool("server", false, "Run the leaderboard API")
	shouldRunBatchImport := flag.Bool("import-from-bucket", false, "Import the pending files of the import bucket once")
	shouldRunScheduler := flag.Bool("scheduler", false, "Import the pending files of the import bucket on IMPORT_SCHEDULE")
	flag.Parse()

	config := cmd.CompiledConfig{Version: apiVersion}

	if *shouldRunMigrations {
		if err := cmd.RunMigrations(); err != nil {
			log.Fatal(err)
		}
	}

	switch {
	case *shouldRunServer:
		if err := cmd.RunServer(config); err != nil {
			log.Fatal(err)
		}
	case *shouldRunBatchImport:
		if err := cmd.RunBatchImport(config); err != nil {
			log.Fatal(err)
		}
	case *shouldRunScheduler:
		if err := cmd.RunJobScheduler(config); err != nil {
			log.Fatal(err)
		}
	case !*shouldRunMigrations:
		flag.Usage()
	}
}
