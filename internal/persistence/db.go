// Package persistence provides SQLite-based storage for the registry
// and the generated world layout.
package persistence

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/akapkotel/monstyr-sandbox/internal/lords"
	"github.com/akapkotel/monstyr-sandbox/internal/registry"
	"github.com/akapkotel/monstyr-sandbox/internal/worldmap"
)

// ErrNoWorldState is returned by LoadWorld when the store holds no saved
// world, so callers can offer regeneration instead of failing.
var ErrNoWorldState = errors.New("no saved world state")

// Meta keys for the generated spatial artifacts and save identity.
const (
	metaWorldID        = "world_id"
	metaRoads          = "roads"
	metaRegions        = "regions"
	metaForests        = "forests"
	metaSavedLords     = "saved_lords"
	metaSavedLocations = "saved_locations"
)

// DB wraps a SQLite connection holding one saved world.
type DB struct {
	conn *sqlx.DB
}

// Open opens or creates a SQLite database at the given path.
func Open(path string) (*DB, error) {
	conn, err := sqlx.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS lords (
		id INTEGER PRIMARY KEY,
		full_name TEXT NOT NULL,
		sex INTEGER NOT NULL,
		age INTEGER NOT NULL,
		nationality INTEGER NOT NULL,
		faction INTEGER NOT NULL,
		title INTEGER NOT NULL,
		church_title INTEGER NOT NULL,
		abbey_rank INTEGER NOT NULL,
		military_rank INTEGER NOT NULL,
		spouse_id INTEGER,
		liege_id INTEGER,
		siblings_json TEXT NOT NULL,
		children_json TEXT NOT NULL,
		vassals_json TEXT NOT NULL,
		fiefs_json TEXT NOT NULL,
		info_json TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS locations (
		id INTEGER PRIMARY KEY,
		name TEXT NOT NULL,
		type INTEGER NOT NULL,
		pos_x REAL NOT NULL,
		pos_y REAL NOT NULL,
		owner_id INTEGER,
		faction INTEGER NOT NULL,
		population INTEGER NOT NULL,
		soldiers INTEGER NOT NULL,
		roads_to_json TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS world_meta (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_lords_title ON lords(title);
	CREATE INDEX IF NOT EXISTS idx_locations_owner ON locations(owner_id);
	`
	_, err := db.conn.Exec(schema)
	return err
}

// HasWorldState reports whether a saved world exists.
func (db *DB) HasWorldState() bool {
	var count int
	if err := db.conn.Get(&count, "SELECT COUNT(*) FROM lords"); err != nil {
		return false
	}
	return count > 0
}

// SaveMeta stores a key-value pair in world metadata.
func (db *DB) SaveMeta(key, value string) error {
	_, err := db.conn.Exec(
		"INSERT OR REPLACE INTO world_meta (key, value) VALUES (?, ?)",
		key, value,
	)
	return err
}

// GetMeta retrieves a metadata value.
func (db *DB) GetMeta(key string) (string, error) {
	var value string
	err := db.conn.Get(&value, "SELECT value FROM world_meta WHERE key = ?", key)
	return value, err
}

// WorldID returns the save identity, minting one on first call.
func (db *DB) WorldID() (string, error) {
	id, err := db.GetMeta(metaWorldID)
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return "", err
	}
	id = uuid.NewString()
	if err := db.SaveMeta(metaWorldID, id); err != nil {
		return "", err
	}
	return id, nil
}

// SaveWorld writes the whole registry and artifact set, replacing any
// previous save. Relations are already kept as ids in memory, so the
// storage form needs only column mapping. Rows of discarded entities
// vanish with the full replace; the registry's discard log is cleared.
func (db *DB) SaveWorld(reg *registry.Registry, art *worldmap.Artifacts) error {
	if err := db.saveLords(reg.Lords()); err != nil {
		return fmt.Errorf("save lords: %w", err)
	}
	if err := db.saveLocations(reg.Locations()); err != nil {
		return fmt.Errorf("save locations: %w", err)
	}
	if art != nil {
		if err := db.saveArtifacts(art); err != nil {
			return fmt.Errorf("save artifacts: %w", err)
		}
	}
	if _, err := db.WorldID(); err != nil {
		return fmt.Errorf("save world id: %w", err)
	}
	if err := db.SaveMeta(metaSavedLords, strconv.Itoa(reg.LordCount())); err != nil {
		return fmt.Errorf("save counts: %w", err)
	}
	if err := db.SaveMeta(metaSavedLocations, strconv.Itoa(reg.LocationCount())); err != nil {
		return fmt.Errorf("save counts: %w", err)
	}
	reg.ClearDiscarded()

	slog.Info("world saved",
		"lords", reg.LordCount(), "locations", reg.LocationCount())
	return nil
}

func (db *DB) saveLords(all []*lords.Nobleman) error {
	tx, err := db.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM lords"); err != nil {
		return err
	}

	stmt, err := tx.Preparex(`INSERT INTO lords
		(id, full_name, sex, age, nationality, faction, title,
		 church_title, abbey_rank, military_rank, spouse_id, liege_id,
		 siblings_json, children_json, vassals_json, fiefs_json, info_json)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, n := range all {
		siblings, _ := json.Marshal(n.Siblings)
		children, _ := json.Marshal(n.Children)
		vassals, _ := json.Marshal(n.Vassals)
		fiefs, _ := json.Marshal(n.Fiefs)
		info, _ := json.Marshal(n.Info)

		_, err := stmt.Exec(
			n.ID, n.FullName, n.Sex, n.Age, n.Nationality, n.Faction,
			n.Title, n.ChurchTitle, n.AbbeyRank, n.MilitaryRank,
			nullableLordID(n.SpouseID), nullableLordID(n.LiegeID),
			string(siblings), string(children), string(vassals),
			string(fiefs), string(info),
		)
		if err != nil {
			return fmt.Errorf("insert lord %d: %w", n.ID, err)
		}
	}
	return tx.Commit()
}

func (db *DB) saveLocations(all []*lords.Location) error {
	tx, err := db.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM locations"); err != nil {
		return err
	}

	stmt, err := tx.Preparex(`INSERT INTO locations
		(id, name, type, pos_x, pos_y, owner_id, faction,
		 population, soldiers, roads_to_json)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, loc := range all {
		roadsTo, _ := json.Marshal(loc.RoadsTo)
		_, err := stmt.Exec(
			loc.ID, loc.Name, loc.Type, loc.Position.X, loc.Position.Y,
			nullableLordID(loc.OwnerID), loc.Faction,
			loc.Population, loc.Soldiers, string(roadsTo),
		)
		if err != nil {
			return fmt.Errorf("insert location %d: %w", loc.ID, err)
		}
	}
	return tx.Commit()
}

func (db *DB) saveArtifacts(art *worldmap.Artifacts) error {
	for key, value := range map[string]any{
		metaRoads:   art.Roads,
		metaRegions: art.Regions,
		metaForests: art.Forests,
	} {
		raw, err := json.Marshal(value)
		if err != nil {
			return err
		}
		if err := db.SaveMeta(key, string(raw)); err != nil {
			return err
		}
	}
	return nil
}

func nullableLordID(id *lords.LordID) any {
	if id == nil {
		return nil
	}
	return *id
}
