package database

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	. "github.com/fulldump/biff"

	"github.com/fulldump/blurcars/collection"
)

func TestDatabase_OpenCreatesFile(t *testing.T) {

	dir := t.TempDir()
	db := NewDatabase(&Config{Dir: dir})

	AssertEqual(db.GetStatus(), StatusOpening)
	AssertNil(db.Open())
	AssertEqual(db.GetStatus(), StatusOperating)

	data, err := os.ReadFile(filepath.Join(dir, "cars.json"))
	AssertNil(err)
	AssertEqual(strings.TrimSpace(string(data)), "[]")
}

func TestDatabase_SaveLoad(t *testing.T) {

	ctx := context.Background()
	dir := t.TempDir()
	db := NewDatabase(&Config{Dir: dir, Filename: "garage.json"})

	cars := collection.Collection{
		{ID: 1, Name: "Model X", Manufacturer: "Acme", TopSpeed: "210 mph", Colour: "red"},
		{ID: 2, Name: "Beetle", Manufacturer: "VW", TopSpeed: "90 mph", Colour: "yellow", Extra: map[string]any{"doors": 2.0}},
	}
	AssertNil(db.Save(ctx, cars))

	loaded, err := db.Load(ctx)
	AssertNil(err)
	AssertEqualJson(loaded, cars)

	data, err := os.ReadFile(filepath.Join(dir, "garage.json"))
	AssertNil(err)
	AssertTrue(strings.Contains(string(data), `"210 mph"`))

	entries, err := os.ReadDir(dir)
	AssertNil(err)
	AssertEqual(len(entries), 1)
}

func TestDatabase_LoadMissingFile(t *testing.T) {

	db := NewDatabase(&Config{Dir: t.TempDir()})

	cars, err := db.Load(context.Background())
	AssertNil(err)
	AssertEqual(len(cars), 0)
}

func TestDatabase_LoadRejectsDuplicatedIDs(t *testing.T) {

	storage := NewMemoryStorage([]byte(`[{"id":1,"name":"a"},{"id":2,"name":"b"},{"id":1,"name":"c"}]`))
	db := NewDatabaseWithStorage(storage)

	_, err := db.Load(context.Background())
	AssertNotNil(err)
	AssertTrue(strings.Contains(err.Error(), "duplicated id 1"))
	AssertTrue(errors.Is(err, ErrCorruptCollection))

	AssertNotNil(db.Open())
	AssertEqual(db.GetStatus(), StatusClosing)
}

func TestDatabase_LoadRejectsMalformedDocument(t *testing.T) {

	db := NewDatabaseWithStorage(NewMemoryStorage([]byte(`{"not":"an array"}`)))

	_, err := db.Load(context.Background())
	AssertTrue(errors.Is(err, ErrCorruptCollection))
}

func TestDatabase_LastWriterWins(t *testing.T) {

	ctx := context.Background()
	db := NewDatabaseWithStorage(NewMemoryStorage(nil))

	first, _ := db.Load(ctx)
	second, _ := db.Load(ctx)

	first.Insert(&collection.Car{Name: "first"})
	second.Insert(&collection.Car{Name: "second"})

	AssertNil(db.Save(ctx, first))
	AssertNil(db.Save(ctx, second))

	cars, err := db.Load(ctx)
	AssertNil(err)
	AssertEqual(len(cars), 1)
	AssertEqual(cars[0].Name, "second")
}

func TestMemoryStorage_CancelledContext(t *testing.T) {

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewMemoryStorage(nil).ReadCollection(ctx)
	AssertEqual(err, context.Canceled)
}
