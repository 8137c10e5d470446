// Command lordsmgr browses a saved sandbox world: census tables over
// the noble registry and detail views for single lords or locations.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"slices"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/akapkotel/monstyr-sandbox/internal/config"
	"github.com/akapkotel/monstyr-sandbox/internal/lords"
	"github.com/akapkotel/monstyr-sandbox/internal/persistence"
	"github.com/akapkotel/monstyr-sandbox/internal/registry"
)

func main() {
	var (
		cfgPath  = flag.String("config", "sandbox.yaml", "path to a YAML config")
		lordName = flag.String("lord", "", "show details for the first lord matching this name")
		locName  = flag.String("location", "", "show details for the first location matching this name")
	)
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	}))
	slog.SetDefault(logger)

	path := *cfgPath
	if path == "sandbox.yaml" {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			path = ""
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to load config:", err)
		os.Exit(1)
	}

	db, err := persistence.Open(cfg.DBPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to open database:", err)
		os.Exit(1)
	}
	defer db.Close()

	reg, _, err := db.LoadWorld()
	if err != nil {
		if errors.Is(err, persistence.ErrNoWorldState) {
			fmt.Fprintln(os.Stderr, "no saved world; run the sandbox command first")
		} else {
			fmt.Fprintln(os.Stderr, "failed to load world:", err)
		}
		os.Exit(1)
	}

	switch {
	case *lordName != "":
		showLord(reg, *lordName)
	case *locName != "":
		showLocation(reg, *locName)
	default:
		census(reg)
	}
}

func census(reg *registry.Registry) {
	fmt.Printf("Lords: %s  Locations: %s\n\n",
		humanize.Comma(int64(reg.LordCount())),
		humanize.Comma(int64(reg.LocationCount())))

	fmt.Println("By title:")
	for i := len(lords.Titles) - 1; i >= 0; i-- {
		title := lords.Titles[i]
		if n := len(reg.LordsOfTitle(&title)); n > 0 {
			fmt.Printf("  %-12s %s\n", title, humanize.Comma(int64(n)))
		}
	}

	fmt.Println("\nBy sex:")
	for _, sex := range []lords.Sex{lords.SexMan, lords.SexWoman} {
		fmt.Printf("  %-12s %s\n", sex, humanize.Comma(int64(len(reg.LordsOfSex(sex)))))
	}

	fmt.Println("\nBy faction:")
	for _, fac := range []lords.Faction{lords.FactionNeutral, lords.FactionRoyalists, lords.FactionNationalists} {
		fmt.Printf("  %-12s %s\n", fac, humanize.Comma(int64(len(reg.LordsOfFaction(fac)))))
	}

	fmt.Printf("\nClergy: %s  Military officers: %s\n",
		humanize.Comma(int64(len(reg.LordsOfChurchTitle(nil)))),
		humanize.Comma(int64(len(reg.LordsOfMilitaryRank(nil)))))

	fmt.Println("\nLocations by type:")
	for _, typ := range lords.LocationTypes {
		if n := len(reg.LocationsOfType(&typ)); n > 0 {
			fmt.Printf("  %-16s %s\n", typ, humanize.Comma(int64(n)))
		}
	}
}

func showLord(reg *registry.Registry, name string) {
	lord := reg.LordByName(name)
	if lord == nil {
		fmt.Fprintf(os.Stderr, "no lord matching %q\n", name)
		os.Exit(1)
	}

	fmt.Println(lord.TitleAndName())
	fmt.Printf("  age %d, %s, %s, %s\n", lord.Age, lord.Sex, lord.Nationality, lord.Faction)
	if lord.ChurchTitle != lords.ChurchNone {
		fmt.Printf("  church: %s\n", lord.ChurchTitle)
	}
	if lord.MilitaryRank != lords.MilitaryNone {
		fmt.Printf("  military: %s\n", lord.MilitaryRank)
	}
	if lord.SpouseID != nil {
		if spouse := reg.Lord(*lord.SpouseID); spouse != nil {
			fmt.Printf("  spouse: %s\n", spouse.TitleAndName())
		}
	}
	if lord.LiegeID != nil {
		if liege := reg.Lord(*lord.LiegeID); liege != nil {
			fmt.Printf("  liege: %s\n", liege.TitleAndName())
		}
	}

	if lord.Vassals.Len() > 0 {
		fmt.Printf("  vassals (%d):\n", lord.Vassals.Len())
		var vassals []*lords.Nobleman
		for _, id := range lord.Vassals.IDs() {
			if v := reg.Lord(id); v != nil {
				vassals = append(vassals, v)
			}
		}
		slices.SortFunc(vassals, lords.CompareByTitle)
		slices.Reverse(vassals)
		for _, v := range vassals {
			fmt.Printf("    %s\n", v.TitleAndName())
		}
	}

	if domain := reg.FullDomain(lord); len(domain) > 0 {
		fmt.Printf("  domain (%d locations):\n", len(domain))
		for _, loc := range domain {
			fmt.Printf("    %s (population %s)\n", loc.FullName(),
				humanize.Comma(int64(loc.Population)))
		}
	}
	for _, line := range lord.Info {
		fmt.Printf("  note: %s\n", line)
	}
}

func showLocation(reg *registry.Registry, name string) {
	loc := reg.LocationByName(name)
	if loc == nil {
		fmt.Fprintf(os.Stderr, "no location matching %q\n", name)
		os.Exit(1)
	}

	fmt.Println(loc.FullName())
	fmt.Printf("  %s at (%.0f, %.0f), %s\n", loc.Type, loc.Position.X, loc.Position.Y, loc.Faction)
	fmt.Printf("  population %s, soldiers %s\n",
		humanize.Comma(int64(loc.Population)),
		humanize.Comma(int64(loc.Soldiers)))
	if loc.OwnerID != nil {
		if owner := reg.Lord(*loc.OwnerID); owner != nil {
			fmt.Printf("  owner: %s\n", owner.TitleAndName())
		}
	}
	if loc.RoadsTo.Len() > 0 {
		var names []string
		for _, id := range loc.RoadsTo.IDs() {
			if n := reg.Location(id); n != nil {
				names = append(names, n.FullName())
			}
		}
		fmt.Printf("  roads to: %s\n", strings.Join(names, ", "))
	}
}
