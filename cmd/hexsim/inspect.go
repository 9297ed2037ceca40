package main

import (
	"fmt"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/talgya/hexecon/internal/catalog"
	"github.com/talgya/hexecon/internal/hex"
	"github.com/talgya/hexecon/internal/tiles"
	"github.com/talgya/hexecon/internal/world"
)

var tilesCmd = &cobra.Command{
	Use:   "tiles",
	Short: "List the tile catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := setup(cmd); err != nil {
			return err
		}
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "TILE\tCOSTS\tCONSUMES\tPRODUCES\tCELLS")
		for _, t := range catalog.All() {
			var costs, consumes, produces, reach string
			if c, ok := tiles.AsConstructable(t); ok {
				costs = c.Costs().String()
			}
			if s, ok := tiles.AsStateful(t); ok {
				consumes = s.Consumes().String()
				produces = s.Produces().String()
				reach = fmt.Sprint(len(s.Influence(hex.Zero)))
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", t.Key(), costs, consumes, produces, reach)
		}
		return w.Flush()
	},
}

var worldCmd = &cobra.Command{
	Use:   "world",
	Short: "Generate a world and count its tiles",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := setup(cmd)
		if err != nil {
			return err
		}
		m, err := world.Generate(cfg.World)
		if err != nil {
			return err
		}
		defer m.Close()

		tile, err := hex.NewDimensions(cfg.TileSize, cfg.TileSize)
		if err != nil {
			return err
		}
		width, height := m.Dimensions(tile)

		counts := world.TileCounts(m)
		keys := make([]tiles.Key, 0, len(counts))
		for k := range counts {
			keys = append(keys, k)
		}
		sort.Slice(keys, func(i, j int) bool { return counts[keys[i]] > counts[keys[j]] })

		fmt.Printf("%s, seed %d, %s x %s px\n", m, cfg.World.Seed,
			humanize.Commaf(width), humanize.Commaf(height))
		for _, k := range keys {
			fmt.Printf("  %-12s %6s  %5.1f%%\n", k, humanize.Comma(int64(counts[k])),
				100*float64(counts[k])/float64(m.Len()))
		}
		return nil
	},
}
