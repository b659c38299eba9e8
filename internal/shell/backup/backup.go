// Package backup dumps the stack's database before a destructive update.
package backup

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"time"
)

// timestampLayout names backup directories so they sort chronologically.
const timestampLayout = "20060102-150405"

// Dumper invokes the database's native dump tool into a timestamped
// destination directory.
type Dumper struct {
	binary string // "mongodump"
	uri    string
	dir    string // parent directory for backups
	stdout io.Writer
	stderr io.Writer
	logger *slog.Logger
	now    func() time.Time
}

// DumperConfig configures a Dumper.
type DumperConfig struct {
	URI string // database connection string
	Dir string // parent directory, default "backups"
}

// NewDumper creates a dumper.
func NewDumper(cfg DumperConfig, logger *slog.Logger) *Dumper {
	if cfg.Dir == "" {
		cfg.Dir = "backups"
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Dumper{
		binary: "mongodump",
		uri:    cfg.URI,
		dir:    cfg.Dir,
		stdout: os.Stdout,
		stderr: os.Stderr,
		logger: logger,
		now:    time.Now,
	}
}

// Dump runs the dump tool and returns the destination directory.
func (d *Dumper) Dump(ctx context.Context) (string, error) {
	dest := DestinationFor(d.dir, d.now())
	if err := os.MkdirAll(dest, 0755); err != nil {
		return "", fmt.Errorf("create backup directory: %w", err)
	}

	args := dumpArgs(d.uri, dest)
	d.logger.Info("backing up database", "destination", dest)

	cmd := exec.CommandContext(ctx, d.binary, args...)
	cmd.Stdout = d.stdout
	cmd.Stderr = d.stderr
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("%s: %w", d.binary, err)
	}

	d.logger.Info("database backup complete", "destination", dest)
	return dest, nil
}

// DestinationFor builds the timestamped backup directory path.
func DestinationFor(dir string, now time.Time) string {
	return filepath.Join(dir, "backup-"+now.Format(timestampLayout))
}

// dumpArgs builds the dump tool's argument list.
func dumpArgs(uri, dest string) []string {
	args := []string{"--out", dest}
	if uri != "" {
		args = append(args, "--uri", uri)
	}
	return args
}
