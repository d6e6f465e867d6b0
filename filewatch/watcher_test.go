package filewatch

import (
	"io"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aguxez/dietlog/models"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestFileWatcher_HandleFileChange(t *testing.T) {
	path := writeFoods(t, header+"1,apple,52,0.3,0.2,14\n")
	catalog := models.NewFoodCatalog(nil)

	fw, err := NewFileWatcher(path, catalog, quietLogger())
	require.NoError(t, err)
	defer fw.Close()

	fw.HandleFileChange()

	food, err := catalog.Resolve(1)
	require.NoError(t, err)
	assert.Equal(t, "apple", food.Name)
}

func TestFileWatcher_KeepsCatalogOnParseError(t *testing.T) {
	path := writeFoods(t, "not a catalog\n")
	catalog := models.NewFoodCatalog([]models.Food{{ID: 9, Name: "kiwi"}})

	fw, err := NewFileWatcher(path, catalog, quietLogger())
	require.NoError(t, err)
	defer fw.Close()

	fw.HandleFileChange()

	food, err := catalog.Resolve(9)
	require.NoError(t, err)
	assert.Equal(t, "kiwi", food.Name)
}

func TestFileWatcher_ReloadsOnWrite(t *testing.T) {
	path := writeFoods(t, header+"1,apple,52,0.3,0.2,14\n")
	catalog := models.NewFoodCatalog(nil)

	fw, err := NewFileWatcher(path, catalog, quietLogger())
	require.NoError(t, err)
	go fw.Watch()
	defer fw.Close()

	require.NoError(t, os.WriteFile(path, []byte(header+"1,apple,52,0.3,0.2,14\n2,pear,57,0.4,0.1,15\n"), 0o644))

	assert.Eventually(t, func() bool {
		_, err := catalog.Resolve(2)
		return err == nil
	}, 5*time.Second, 20*time.Millisecond)
}

func TestNewFileWatcher_MissingDirectory(t *testing.T) {
	_, err := NewFileWatcher("/does/not/exist/foods.csv", models.NewFoodCatalog(nil), nil)
	assert.Error(t, err)
}
