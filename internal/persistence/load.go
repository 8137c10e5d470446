package persistence

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/akapkotel/monstyr-sandbox/internal/geom"
	"github.com/akapkotel/monstyr-sandbox/internal/lords"
	"github.com/akapkotel/monstyr-sandbox/internal/registry"
	"github.com/akapkotel/monstyr-sandbox/internal/worldmap"
)

// Row structs mirror the storage form; json columns are unpacked after
// the scan.

type lordRow struct {
	ID           lords.LordID       `db:"id"`
	FullName     string             `db:"full_name"`
	Sex          lords.Sex          `db:"sex"`
	Age          int                `db:"age"`
	Nationality  lords.Nationality  `db:"nationality"`
	Faction      lords.Faction      `db:"faction"`
	Title        lords.Title        `db:"title"`
	ChurchTitle  lords.ChurchTitle  `db:"church_title"`
	AbbeyRank    lords.AbbeyRank    `db:"abbey_rank"`
	MilitaryRank lords.MilitaryRank `db:"military_rank"`
	SpouseID     sql.NullInt64      `db:"spouse_id"`
	LiegeID      sql.NullInt64      `db:"liege_id"`
	SiblingsJSON string             `db:"siblings_json"`
	ChildrenJSON string             `db:"children_json"`
	VassalsJSON  string             `db:"vassals_json"`
	FiefsJSON    string             `db:"fiefs_json"`
	InfoJSON     string             `db:"info_json"`
}

type locationRow struct {
	ID          lords.LocationID   `db:"id"`
	Name        string             `db:"name"`
	Type        lords.LocationType `db:"type"`
	PosX        float64            `db:"pos_x"`
	PosY        float64            `db:"pos_y"`
	OwnerID     sql.NullInt64      `db:"owner_id"`
	Faction     lords.Faction      `db:"faction"`
	Population  int                `db:"population"`
	Soldiers    int                `db:"soldiers"`
	RoadsToJSON string             `db:"roads_to_json"`
}

// LoadWorld reconstructs the registry and the artifact set from the
// store. Returns ErrNoWorldState when nothing was ever saved.
func (db *DB) LoadWorld() (*registry.Registry, *worldmap.Artifacts, error) {
	if !db.HasWorldState() {
		return nil, nil, ErrNoWorldState
	}

	reg := registry.New()

	var lordRows []lordRow
	if err := db.conn.Select(&lordRows, "SELECT * FROM lords"); err != nil {
		return nil, nil, fmt.Errorf("load lords: %w", err)
	}
	for i := range lordRows {
		n, err := lordRows[i].toNobleman()
		if err != nil {
			return nil, nil, fmt.Errorf("load lord %d: %w", lordRows[i].ID, err)
		}
		reg.AddLord(n)
	}

	var locRows []locationRow
	if err := db.conn.Select(&locRows, "SELECT * FROM locations"); err != nil {
		return nil, nil, fmt.Errorf("load locations: %w", err)
	}
	for i := range locRows {
		loc, err := locRows[i].toLocation()
		if err != nil {
			return nil, nil, fmt.Errorf("load location %d: %w", locRows[i].ID, err)
		}
		reg.AddLocation(loc)
	}

	art, err := db.loadArtifacts()
	if err != nil {
		return nil, nil, err
	}

	slog.Info("world loaded",
		"lords", reg.LordCount(), "locations", reg.LocationCount())
	return reg, art, nil
}

func (r *lordRow) toNobleman() (*lords.Nobleman, error) {
	n := &lords.Nobleman{
		ID:           r.ID,
		FullName:     r.FullName,
		Sex:          r.Sex,
		Age:          r.Age,
		Nationality:  r.Nationality,
		Faction:      r.Faction,
		Title:        r.Title,
		ChurchTitle:  r.ChurchTitle,
		AbbeyRank:    r.AbbeyRank,
		MilitaryRank: r.MilitaryRank,
	}
	if r.SpouseID.Valid {
		id := lords.LordID(r.SpouseID.Int64)
		n.SpouseID = &id
	}
	if r.LiegeID.Valid {
		id := lords.LordID(r.LiegeID.Int64)
		n.LiegeID = &id
	}
	for _, col := range []struct {
		raw string
		dst *lords.LordSet
	}{
		{r.SiblingsJSON, &n.Siblings},
		{r.ChildrenJSON, &n.Children},
		{r.VassalsJSON, &n.Vassals},
	} {
		if err := json.Unmarshal([]byte(col.raw), col.dst); err != nil {
			return nil, err
		}
	}
	if err := json.Unmarshal([]byte(r.FiefsJSON), &n.Fiefs); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(r.InfoJSON), &n.Info); err != nil {
		return nil, err
	}
	return n, nil
}

func (r *locationRow) toLocation() (*lords.Location, error) {
	loc := &lords.Location{
		ID:         r.ID,
		Name:       r.Name,
		Type:       r.Type,
		Position:   geom.Point{X: r.PosX, Y: r.PosY},
		Faction:    r.Faction,
		Population: r.Population,
		Soldiers:   r.Soldiers,
	}
	if r.OwnerID.Valid {
		id := lords.LordID(r.OwnerID.Int64)
		loc.OwnerID = &id
	}
	if err := json.Unmarshal([]byte(r.RoadsToJSON), &loc.RoadsTo); err != nil {
		return nil, err
	}
	return loc, nil
}

func (db *DB) loadArtifacts() (*worldmap.Artifacts, error) {
	art := &worldmap.Artifacts{}
	for key, dst := range map[string]any{
		metaRoads:   &art.Roads,
		metaRegions: &art.Regions,
		metaForests: &art.Forests,
	} {
		raw, err := db.GetMeta(key)
		if errors.Is(err, sql.ErrNoRows) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("load %s: %w", key, err)
		}
		if err := json.Unmarshal([]byte(raw), dst); err != nil {
			return nil, fmt.Errorf("decode %s: %w", key, err)
		}
	}
	return art, nil
}
