package backup

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDestinationFor_TimestampedAndSortable(t *testing.T) {
	at := time.Date(2026, 8, 30, 14, 5, 9, 0, time.UTC)

	assert.Equal(t, "backups/backup-20260830-140509", DestinationFor("backups", at))
}

func TestDestinationFor_LaterDumpsSortAfterEarlierOnes(t *testing.T) {
	earlier := DestinationFor("backups", time.Date(2026, 8, 30, 9, 0, 0, 0, time.UTC))
	later := DestinationFor("backups", time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC))

	assert.Less(t, earlier, later)
}

func TestDumpArgs(t *testing.T) {
	args := dumpArgs("mongodb://localhost:27017", "backups/backup-20260830-140509")

	assert.Equal(t, []string{
		"--out", "backups/backup-20260830-140509",
		"--uri", "mongodb://localhost:27017",
	}, args)
}

func TestDumpArgs_NoURIFallsBackToToolDefaults(t *testing.T) {
	args := dumpArgs("", "backups/x")

	assert.NotContains(t, args, "--uri")
}

func TestNewDumper_Defaults(t *testing.T) {
	d := NewDumper(DumperConfig{}, nil)

	assert.Equal(t, "mongodump", d.binary)
	assert.Equal(t, "backups", d.dir)
}
