package command

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/aguxez/dietlog/models"
	"github.com/aguxez/dietlog/storage"
)

func TestMealAdd(t *testing.T) {
	dir := testDir(t)

	out, _, err := runApp(t, dir, "meal", "add", "--date", "5/3/2024", "--food", "2", "--food", "7")
	require.NoError(t, err)
	assert.Contains(t, out, "Meal was successfully added! (index 0)")

	assert.Equal(t, "Date,Foods\r\n5/3/2024,2-7\r\n", readFile(t, filepath.Join(dir, "meals.csv")))
}

func TestMealAdd_UnknownFood(t *testing.T) {
	dir := testDir(t)

	_, _, err := runApp(t, dir, "meal", "add", "--date", "5/3/2024", "-f", "2", "-f", "404")
	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrFoodNotFound)
	assert.NoFileExists(t, filepath.Join(dir, "meals.csv"))
}

func TestMealAdd_BadDate(t *testing.T) {
	_, _, err := runApp(t, testDir(t), "meal", "add", "--date", "2024-03-05", "-f", "2")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid date")
}

func TestMealAdd_DayPastMonthEnd(t *testing.T) {
	dir := testDir(t)

	_, _, err := runApp(t, dir, "meal", "add", "--date", "31/4/2024", "-f", "2")
	require.NoError(t, err)

	assert.Equal(t, "Date,Foods\r\n30/4/2024,2\r\n", readFile(t, filepath.Join(dir, "meals.csv")))
}

func TestMealList_JSON(t *testing.T) {
	dir := testDir(t)
	_, _, err := runApp(t, dir, "meal", "add", "--date", "1/3/2024", "-f", "2")
	require.NoError(t, err)
	_, _, err = runApp(t, dir, "meal", "add", "--date", "2/3/2024", "-f", "3", "-f", "3")
	require.NoError(t, err)

	out, _, err := runApp(t, dir, "-o", "json", "meal", "list")
	require.NoError(t, err)

	var views []mealView
	require.NoError(t, json.Unmarshal([]byte(out), &views))
	require.Len(t, views, 2)
	assert.Equal(t, 1, views[1].Index)
	assert.Equal(t, "2/3/2024", views[1].Date)
	assert.Equal(t, 144.0, views[1].Totals.Calories)
}

func TestMealShow_YAML(t *testing.T) {
	dir := testDir(t)
	_, _, err := runApp(t, dir, "meal", "add", "--date", "1/3/2024", "-f", "4")
	require.NoError(t, err)

	out, _, err := runApp(t, dir, "-o", "yaml", "meal", "show", "0")
	require.NoError(t, err)

	var view mealView
	require.NoError(t, yaml.Unmarshal([]byte(out), &view))
	assert.Equal(t, "1/3/2024", view.Date)
	require.Len(t, view.Foods, 1)
	assert.Equal(t, "banana (medium)", view.Foods[0].Name)
}

func TestMealShow_Table(t *testing.T) {
	dir := testDir(t)
	_, _, err := runApp(t, dir, "meal", "add", "--date", "1/3/2024", "-f", "3", "-f", "7")
	require.NoError(t, err)

	out, _, err := runApp(t, dir, "meal", "show", "0")
	require.NoError(t, err)
	assert.Contains(t, out, "Meal 0 on 1/3/2024")
	assert.Contains(t, out, "egg (large)")
	assert.Contains(t, out, "total")
	assert.Contains(t, out, "175")
}

func TestMealShow_OutOfRange(t *testing.T) {
	_, _, err := runApp(t, testDir(t), "meal", "show", "3")

	var ie *storage.IndexError
	require.ErrorAs(t, err, &ie)
	assert.Equal(t, 3, ie.Index)
}

func TestMealShow_BadIndex(t *testing.T) {
	_, _, err := runApp(t, testDir(t), "meal", "show", "first")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `invalid index "first"`)
}

func TestMealDelete_PersistsAndShifts(t *testing.T) {
	dir := testDir(t)
	for _, date := range []string{"1/3/2024", "2/3/2024", "3/3/2024"} {
		_, _, err := runApp(t, dir, "meal", "add", "--date", date, "-f", "2")
		require.NoError(t, err)
	}

	out, _, err := runApp(t, dir, "meal", "delete", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Deleted meal 1 from 2/3/2024.")
	assert.Equal(t, "Date,Foods\r\n1/3/2024,2\r\n3/3/2024,2\r\n", readFile(t, filepath.Join(dir, "meals.csv")))

	out, _, err = runApp(t, dir, "-o", "json", "meal", "show", "1")
	require.NoError(t, err)
	assert.Contains(t, out, `"date": "3/3/2024"`)
}

func TestMealList_ReportsPartialLoad(t *testing.T) {
	dir := testDir(t)
	_, _, err := runApp(t, dir, "food", "list")
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "meals.csv"), []byte("Date,Foods\n1/3/2024,2\n2/3/2024,999\n3/3/2024,2\n"), 0o644))

	out, _, err := runApp(t, dir, "meal", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Error loading meal storage")
	assert.Contains(t, out, "food 999")
	assert.Contains(t, out, "1/3/2024")
	assert.NotContains(t, out, "3/3/2024")
}
