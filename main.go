package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/k0kubun/go-ansi"
	"github.com/schollz/progressbar/v3"
	"go.uber.org/zap"

	"github.com/thomhuang/MonumentsByPostcode/pkg/config"
	"github.com/thomhuang/MonumentsByPostcode/pkg/di"
	"github.com/thomhuang/MonumentsByPostcode/pkg/export"
	"github.com/thomhuang/MonumentsByPostcode/pkg/finder"
	"github.com/thomhuang/MonumentsByPostcode/pkg/mapper"
	"github.com/thomhuang/MonumentsByPostcode/pkg/monument"
)

var (
	postcodeFlag = flag.String("postcode", "", "postcode district to search from, e.g. NE47")
	batchFile    = flag.String("batch", "", "file with one postcode per line, results written with -json")
	workers      = flag.Int("workers", 0, "batch workers, defaults to the number of cpus")
	mapOut       = flag.String("map", "", "write a Leaflet html map of the results")
	geojsonOut   = flag.String("geojson", "", "write the map markers as GeoJSON")
	xlsxOut      = flag.String("xlsx", "", "write the nearest table as xlsx")
	jsonOut      = flag.String("json", "", "write the nearest table as json")
	quiet        = flag.Bool("quiet", false, "hide the progress bar")
)

func main() {
	flag.Parse()
	if *postcodeFlag == "" && *batchFile == "" {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.New()
	if err != nil {
		log.Fatal(err)
	}

	logger, cleanup, err := di.NewLogger(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer cleanup()

	fetcher := di.NewFetcher(cfg)
	monuments := di.NewMonumentSource(cfg, fetcher, logger)
	postcodes := di.NewPostcodeSource(cfg, fetcher, logger)
	if !*quiet && *batchFile == "" {
		monuments.OnProgress = newProgress()
	}
	f := di.NewFinder(cfg, logger, monuments, postcodes)

	ctx := context.Background()
	start := time.Now()

	if *batchFile != "" {
		if err := runBatch(ctx, f, logger); err != nil {
			logger.Fatal("batch failed", zap.Error(err))
		}
		logger.Info("batch done", zap.Duration("took", time.Since(start)))
		return
	}

	nearest, err := f.FindNearest(ctx, *postcodeFlag)
	if err != nil {
		logger.Fatal("lookup failed", zap.String("postcode", *postcodeFlag), zap.Error(err))
	}
	printTable(os.Stdout, nearest)

	if *jsonOut != "" {
		save(logger, *jsonOut, func(w io.Writer) error { return export.WriteJSON(w, nearest) })
	}
	if *xlsxOut != "" {
		save(logger, *xlsxOut, func(w io.Writer) error { return export.WriteXLSX(w, nearest) })
	}

	if *mapOut != "" || *geojsonOut != "" {
		monuments.OnProgress = nil
		m, err := di.NewMapper(cfg, logger, f, postcodes).RenderMap(ctx, *postcodeFlag)
		if err != nil {
			logger.Fatal("map failed", zap.Error(err))
		}
		if *mapOut != "" {
			save(logger, *mapOut, m.WriteHTML)
		}
		if *geojsonOut != "" {
			save(logger, *geojsonOut, func(w io.Writer) error { return writeGeoJSON(w, m) })
		}
	}

	logger.Info("done", zap.Duration("took", time.Since(start)))
}

func runBatch(ctx context.Context, f *finder.Finder, logger *zap.Logger) error {
	file, err := os.Open(*batchFile)
	if err != nil {
		return err
	}
	defer file.Close()

	var codes []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		if code := strings.TrimSpace(scanner.Text()); code != "" {
			codes = append(codes, code)
		}
	}
	if err := scanner.Err(); err != nil {
		return err
	}

	results := f.FindBatch(ctx, codes, *workers)

	names := make(map[string][]string, len(results))
	for code, res := range results {
		if res.Err != nil {
			continue
		}
		for _, row := range res.Nearest.Rows {
			names[code] = append(names[code], row.Name)
		}
	}
	logger.Info("batch results", zap.Int("postcodes", len(codes)), zap.Int("resolved", len(names)))

	out := *jsonOut
	if out == "" {
		out = "./NearestMonuments.json"
	}
	return export.SaveFile(out, func(w io.Writer) error {
		return export.WriteJSONValue(w, names)
	})
}

func newProgress() monument.ProgressFunc {
	var bar *progressbar.ProgressBar
	return func(current, total int) {
		if bar == nil {
			size := total
			if size == 0 {
				size = -1
			}
			bar = progressbar.NewOptions(size,
				progressbar.OptionSetWriter(ansi.NewAnsiStderr()),
				progressbar.OptionEnableColorCodes(true),
				progressbar.OptionSetWidth(15),
				progressbar.OptionSetDescription("[cyan][1/2][reset] Reading monuments..."),
				progressbar.OptionOnCompletion(func() { fmt.Fprintln(os.Stderr) }),
				progressbar.OptionSetTheme(progressbar.Theme{
					Saucer:        "[green]=[reset]",
					SaucerHead:    "[green]>[reset]",
					SaucerPadding: " ",
					BarStart:      "[",
					BarEnd:        "]",
				}))
		}
		_ = bar.Set(current)
		if total > 0 && current >= total {
			_ = bar.Finish()
		}
	}
}

func printTable(w io.Writer, n *finder.Nearest) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Monuments nearest %s (%.0f, %.0f)\n", n.Postcode, n.Origin.X(), n.Origin.Y())
	fmt.Fprintln(tw, "#\tName\tDistance (m)\tCentroid (km)")
	for _, r := range n.Rows {
		fmt.Fprintf(tw, "%d\t%s\t%.1f\t%.2f\n", r.Index, r.Name, r.Distance, r.CentroidKm)
	}
	_ = tw.Flush()
}

func writeGeoJSON(w io.Writer, m *mapper.Map) error {
	raw, err := m.GeoJSON().MarshalJSON()
	if err != nil {
		return err
	}
	_, err = w.Write(raw)
	return err
}

func save(logger *zap.Logger, path string, write func(io.Writer) error) {
	if err := export.SaveFile(path, write); err != nil {
		logger.Error("could not write output", zap.String("path", path), zap.Error(err))
		return
	}
	logger.Info("Outputted file successfully", zap.String("path", path))
}
