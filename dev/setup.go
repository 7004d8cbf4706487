package main

import (
	devenv "cardstats/dev/env"
	"cardstats/internal/mirror/db"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

const mirrorFile = "<dev_state>/cardstats.db"

// the local config keeps every artifact of a dev run under dev/.state
const localConfig = `{
  "output_dir": "<dev_state>/data",
  "downloads_dir": "<dev_state>/downloads",
  "manifest": "<dev_state>/downloads/manifest.jsonl",
  "source": {
    "dump_dir": "<dev_state>/resty"
  },
  "mirror": {
    "file": "` + mirrorFile + `"
  }
}
`

func CreateMirrorDB() error {
	path, err := devenv.ResolvePath(mirrorFile)
	if err != nil {
		return err
	}

	_, err = os.Stat(path)
	if err == nil {
		fmt.Println("database already created at", path)
		return nil
	}

	fmt.Println("creating database at", path)
	database, err := sql.Open("sqlite", path)
	if err != nil {
		return err
	}
	defer database.Close()
	_, err = database.Exec(db.Schema)
	return err
}

func WriteLocalConfig(overwrite bool) error {
	root, err := devenv.GetWorkspaceRoot()
	if err != nil {
		return err
	}
	path := filepath.Join(root, "cardstats.local.json5")

	_, err = os.Stat(path)
	if err == nil && !overwrite {
		fmt.Println("local config already exists at", path)
		return nil
	}

	fmt.Println("writing local config to", path)
	return os.WriteFile(path, []byte(localConfig), 0644)
}

func PrintConfigLocations() {
	slog.Info("cardstats.local.json5 points every output into dev/.state, `go run ./cmd/cardstats download` followed by `go run ./cmd/cardstats batch` fills it.")
}
