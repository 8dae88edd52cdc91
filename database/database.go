package database

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log"
	"path"
	"sync"
	"time"

	"github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"
	"github.com/google/btree"

	"github.com/fulldump/blurcars/collection"
)

// ErrCorruptCollection wraps every failure to decode the stored document.
var ErrCorruptCollection = errors.New("corrupt collection")

const (
	StatusOpening   = "opening"
	StatusOperating = "operating"
	StatusClosing   = "closing"
)

type Config struct {
	Dir      string
	Filename string
}

// Database is the load/save boundary of the car collection. It does not cache
// anything: every Load reads storage again and every Save replaces it.
type Database struct {
	storage     Storage
	status      string
	statusMutex sync.RWMutex
	exit        chan struct{}
	stopOnce    sync.Once
}

func NewDatabase(config *Config) *Database {
	filename := config.Filename
	if filename == "" {
		filename = "cars.json"
	}
	return NewDatabaseWithStorage(NewFileStorage(path.Join(config.Dir, filename)))
}

func NewDatabaseWithStorage(storage Storage) *Database {
	return &Database{
		storage: storage,
		status:  StatusOpening,
		exit:    make(chan struct{}),
	}
}

func (db *Database) GetStatus() string {
	db.statusMutex.RLock()
	defer db.statusMutex.RUnlock()
	return db.status
}

func (db *Database) setStatus(status string) {
	db.statusMutex.Lock()
	db.status = status
	db.statusMutex.Unlock()
}

// Open checks the stored document can be decoded and creates it when missing.
// The database is operating only after a successful Open.
func (db *Database) Open() error {

	ctx := context.Background()

	t0 := time.Now()
	data, err := db.storage.ReadCollection(ctx)
	if err != nil {
		db.setStatus(StatusClosing)
		return fmt.Errorf("open collection: %w", err)
	}

	cars, err := decode(data)
	if err != nil {
		db.setStatus(StatusClosing)
		return fmt.Errorf("open collection: %w", err)
	}

	if len(bytes.TrimSpace(data)) == 0 {
		if err := db.Save(ctx, cars); err != nil {
			db.setStatus(StatusClosing)
			return fmt.Errorf("initialize collection: %w", err)
		}
	}

	log.Println("collection loaded:", len(cars), "cars in", time.Since(t0))
	db.setStatus(StatusOperating)

	return nil
}

func (db *Database) Start() error {

	go func() {
		if err := db.Open(); err != nil {
			log.Println("ERROR:", err.Error())
		}
	}()

	<-db.exit

	return nil
}

func (db *Database) Stop() error {
	db.setStatus(StatusClosing)
	db.stopOnce.Do(func() {
		close(db.exit)
	})
	return nil
}

// Load returns the current full collection.
func (db *Database) Load(ctx context.Context) (collection.Collection, error) {
	data, err := db.storage.ReadCollection(ctx)
	if err != nil {
		return nil, fmt.Errorf("load collection: %w", err)
	}
	cars, err := decode(data)
	if err != nil {
		return nil, fmt.Errorf("load collection: %w", err)
	}
	return cars, nil
}

// Save replaces the stored collection with cars.
func (db *Database) Save(ctx context.Context, cars collection.Collection) error {
	data, err := encode(cars)
	if err != nil {
		return fmt.Errorf("save collection: %w", err)
	}
	if err := db.storage.WriteCollection(ctx, data); err != nil {
		return fmt.Errorf("save collection: %w", err)
	}
	return nil
}

func decode(data []byte) (collection.Collection, error) {

	cars := collection.Collection{}
	if len(bytes.TrimSpace(data)) == 0 {
		return cars, nil
	}

	if err := json.Unmarshal(data, &cars); err != nil {
		return nil, fmt.Errorf("%w: decode json: %w", ErrCorruptCollection, err)
	}

	if err := checkIDs(cars); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorruptCollection, err)
	}

	return cars, nil
}

func encode(cars collection.Collection) ([]byte, error) {
	if cars == nil {
		cars = collection.Collection{}
	}
	data, err := json.Marshal(cars, jsontext.WithIndent("  "))
	if err != nil {
		return nil, fmt.Errorf("encode json: %w", err)
	}
	return append(data, '\n'), nil
}

// checkIDs rejects documents with null entries, non positive ids or repeated
// ids.
func checkIDs(cars collection.Collection) error {
	ids := btree.NewOrderedG[int](8)
	for i, car := range cars {
		if car == nil {
			return fmt.Errorf("car at position %d is null", i)
		}
		if car.ID <= 0 {
			return fmt.Errorf("car at position %d has invalid id %d", i, car.ID)
		}
		if _, replaced := ids.ReplaceOrInsert(car.ID); replaced {
			return fmt.Errorf("car at position %d has duplicated id %d", i, car.ID)
		}
	}
	return nil
}
