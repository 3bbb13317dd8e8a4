package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

type cliTestEnv struct {
	configPath string
	musicDir   string
}

// setupCLITestEnv writes a config pointing at temp directories and seeds a
// small music folder with untagged files. Untagged files are catalogued
// under their file names.
func setupCLITestEnv(t *testing.T) cliTestEnv {
	t.Helper()

	dir := t.TempDir()
	musicDir := filepath.Join(dir, "music")
	if err := os.MkdirAll(musicDir, 0o755); err != nil {
		t.Fatalf("create music dir: %v", err)
	}
	for _, name := range []string{"Alpha.mp3", "Bravo.flac", "notes.txt"} {
		path := filepath.Join(musicDir, name)
		if err := os.WriteFile(path, []byte("not really audio"), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}

	configPath := filepath.Join(dir, "config.toml")
	content := fmt.Sprintf("[storage]\ndata_dir = %q\n\n[library]\npaths = [%q]\n", filepath.Join(dir, "data"), musicDir)
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	return cliTestEnv{configPath: configPath, musicDir: musicDir}
}

func runCLI(t *testing.T, args []string, configPath string) (string, error) {
	t.Helper()

	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	if configPath != "" {
		args = append([]string{"--config", configPath}, args...)
	}
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), err
}

func requireContains(t *testing.T, output, want string) {
	t.Helper()
	if !strings.Contains(output, want) {
		t.Fatalf("expected output to contain %q, got:\n%s", want, output)
	}
}

func TestScanAndListSongs(t *testing.T) {
	env := setupCLITestEnv(t)

	out, err := runCLI(t, []string{"scan"}, env.configPath)
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	requireContains(t, out, "songs catalogued: 2")

	out, err = runCLI(t, []string{"songs"}, env.configPath)
	if err != nil {
		t.Fatalf("songs: %v", err)
	}
	requireContains(t, out, "Alpha")
	requireContains(t, out, "Bravo")
	if strings.Contains(out, "notes") {
		t.Fatalf("non-audio file listed:\n%s", out)
	}
}

func TestScanWithExplicitPath(t *testing.T) {
	env := setupCLITestEnv(t)

	out, err := runCLI(t, []string{"scan", env.musicDir}, env.configPath)
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	requireContains(t, out, "songs catalogued: 2")
}

func TestSongsSearchFilter(t *testing.T) {
	env := setupCLITestEnv(t)

	if _, err := runCLI(t, []string{"scan"}, env.configPath); err != nil {
		t.Fatalf("scan: %v", err)
	}

	out, err := runCLI(t, []string{"songs", "--search", "alpha"}, env.configPath)
	if err != nil {
		t.Fatalf("songs: %v", err)
	}
	requireContains(t, out, "Alpha")
	if strings.Contains(out, "Bravo") {
		t.Fatalf("filter did not apply:\n%s", out)
	}
}

func TestFavoriteRoundTrip(t *testing.T) {
	env := setupCLITestEnv(t)

	if _, err := runCLI(t, []string{"scan"}, env.configPath); err != nil {
		t.Fatalf("scan: %v", err)
	}

	song := filepath.Join(env.musicDir, "Alpha.mp3")
	out, err := runCLI(t, []string{"favorite", song}, env.configPath)
	if err != nil {
		t.Fatalf("favorite: %v", err)
	}
	requireContains(t, out, "is favorite")

	out, err = runCLI(t, []string{"favorites"}, env.configPath)
	if err != nil {
		t.Fatalf("favorites: %v", err)
	}
	requireContains(t, out, "Alpha")

	out, err = runCLI(t, []string{"favorite", "--unset", song}, env.configPath)
	if err != nil {
		t.Fatalf("favorite --unset: %v", err)
	}
	requireContains(t, out, "no longer a favorite")

	out, err = runCLI(t, []string{"favorites"}, env.configPath)
	if err != nil {
		t.Fatalf("favorites: %v", err)
	}
	requireContains(t, out, "No songs found")
}

func TestFavoriteUnknownSong(t *testing.T) {
	env := setupCLITestEnv(t)

	if _, err := runCLI(t, []string{"scan"}, env.configPath); err != nil {
		t.Fatalf("scan: %v", err)
	}

	_, err := runCLI(t, []string{"favorite", filepath.Join(env.musicDir, "Missing.mp3")}, env.configPath)
	if err == nil {
		t.Fatal("expected error for uncatalogued song")
	}
	requireContains(t, err.Error(), "not in the catalog")
}

func TestRecentEmpty(t *testing.T) {
	env := setupCLITestEnv(t)

	if _, err := runCLI(t, []string{"scan"}, env.configPath); err != nil {
		t.Fatalf("scan: %v", err)
	}

	out, err := runCLI(t, []string{"recent"}, env.configPath)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	requireContains(t, out, "No songs found")
}

func TestConfigInitAndValidate(t *testing.T) {
	env := setupCLITestEnv(t)

	out, err := runCLI(t, []string{"config", "validate", "--path", env.configPath}, "")
	if err != nil {
		t.Fatalf("config validate: %v", err)
	}
	requireContains(t, out, "Configuration valid")

	target := filepath.Join(t.TempDir(), "config.toml")
	out, err = runCLI(t, []string{"config", "init", "--path", target}, "")
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	requireContains(t, out, "Wrote sample configuration")

	if _, err := os.Stat(target); err != nil {
		t.Fatalf("expected config file at %s: %v", target, err)
	}
}

func TestConfigShow(t *testing.T) {
	env := setupCLITestEnv(t)

	out, err := runCLI(t, []string{"config", "show", "--path", env.configPath}, "")
	if err != nil {
		t.Fatalf("config show: %v", err)
	}
	requireContains(t, out, "library.paths")
	requireContains(t, out, env.musicDir)
}

func TestConfigCommandsHonorRootConfigFlag(t *testing.T) {
	env := setupCLITestEnv(t)

	// No --path: the subcommands fall back to the root --config flag.
	out, err := runCLI(t, []string{"config", "show"}, env.configPath)
	if err != nil {
		t.Fatalf("config show: %v", err)
	}
	requireContains(t, out, env.musicDir)

	out, err = runCLI(t, []string{"config", "validate"}, env.configPath)
	if err != nil {
		t.Fatalf("config validate: %v", err)
	}
	requireContains(t, out, "Configuration valid")
}
