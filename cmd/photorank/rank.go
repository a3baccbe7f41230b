package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"path"
	"strings"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	photoscore "github.com/oj-kentd/photo-analysis-app"
	"github.com/oj-kentd/photo-analysis-app/fetch"
	"github.com/oj-kentd/photo-analysis-app/store"
)

type rankOptions struct {
	inputPath       string
	expressionsPath string
	dbPath          string
	reportDir       string
	workers         int
	size            int
	edgeThreshold   float64
	cacheDir        string
}

var rankOpts rankOptions

var rankCmd = &cobra.Command{
	Use:   "rank",
	Short: "Score a batch of photos and print the ranking",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runRank(cmd.Context(), rankOpts)
	},
}

func init() {
	rankCmd.Flags().StringVarP(&rankOpts.inputPath, "input", "i", "", "File with one photo per line: '<id> <url>' or just '<url>'")
	rankCmd.Flags().StringVarP(&rankOpts.expressionsPath, "expressions", "e", "", "JSON sidecar mapping photo id to detected expression vectors")
	rankCmd.Flags().StringVar(&rankOpts.dbPath, "db", "", "SQLite database to persist the run to")
	rankCmd.Flags().StringVar(&rankOpts.reportDir, "report-dir", "", "Directory to write the HTML report to")
	rankCmd.Flags().IntVarP(&rankOpts.workers, "workers", "w", 0, "Concurrent photos (default from config, else 1)")
	rankCmd.Flags().IntVar(&rankOpts.size, "size", 0, "Working raster size requested per photo (default 1024)")
	rankCmd.Flags().Float64Var(&rankOpts.edgeThreshold, "edge-threshold", 0, "Gradient magnitude marking an edge (default 30)")
	rankCmd.Flags().StringVar(&rankOpts.cacheDir, "cache-dir", "", "HTTP cache directory (default /tmp/photorank_http_cache)")

	rankCmd.MarkFlagRequired("input")
	rootCmd.AddCommand(rankCmd)

	viper.SetDefault("rank.workers", 1)
	viper.SetDefault("rank.size", 1024)
	viper.SetDefault("rank.edge_threshold", 30.0)
	viper.SetDefault("rank.cache_dir", "/tmp/photorank_http_cache")
}

func runRank(ctx context.Context, opts rankOptions) error {
	// Flags win over config file values; zero means unset.
	if opts.workers == 0 {
		opts.workers = viper.GetInt("rank.workers")
	}
	if opts.size == 0 {
		opts.size = viper.GetInt("rank.size")
	}
	if opts.edgeThreshold == 0 {
		opts.edgeThreshold = viper.GetFloat64("rank.edge_threshold")
	}
	if opts.cacheDir == "" {
		opts.cacheDir = viper.GetString("rank.cache_dir")
	}

	photos, err := parsePhotoList(opts.inputPath)
	if err != nil {
		return err
	}
	if len(photos) == 0 {
		return fmt.Errorf("no photos found in %s", opts.inputPath)
	}

	var detector photoscore.ExpressionDetector
	if opts.expressionsPath != "" {
		sidecar, err := loadSidecar(opts.expressionsPath)
		if err != nil {
			return err
		}
		detector = sidecar
	}

	engine, err := photoscore.New(photoscore.WithEdgeThreshold(opts.edgeThreshold))
	if err != nil {
		return err
	}
	runner, err := photoscore.NewRunner(engine, fetch.New(opts.cacheDir), detector,
		photoscore.WithWorkers(opts.workers),
		photoscore.WithWorkingSize(opts.size, opts.size),
		photoscore.WithLogger(log.New(os.Stderr, "photorank: ", 0)),
	)
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "Scoring %d photos with %d worker(s)...\n", len(photos), opts.workers)
	bar := progressbar.NewOptions(100,
		progressbar.OptionSetDescription("Scoring"),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionShowCount(),
	)

	results, err := runner.Run(ctx, photos, func(percent int) {
		_ = bar.Set(percent)
	})
	if err != nil {
		return err
	}
	_ = bar.Finish()
	fmt.Fprintln(os.Stderr)

	printRanking(results, len(photos))

	if opts.dbPath != "" {
		st, err := store.Open(opts.dbPath)
		if err != nil {
			return err
		}
		defer st.Close()
		runID, err := st.SaveRun(len(photos), results)
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Saved run %s to %s\n", runID, opts.dbPath)
	}

	if opts.reportDir != "" {
		reportPath, err := writeReport(results, opts.reportDir)
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Report written to %s\n", reportPath)
	}
	return nil
}

// parsePhotoList reads one photo per line: "<id> <url>" or a bare url whose
// base name becomes the id. Blank lines and #-comments are skipped.
func parsePhotoList(filePath string) ([]photoscore.Photo, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open photo list: %w", err)
	}
	defer f.Close()

	var photos []photoscore.Photo
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		switch len(fields) {
		case 1:
			photos = append(photos, photoscore.Photo{ID: path.Base(fields[0]), Ref: fields[0]})
		default:
			photos = append(photos, photoscore.Photo{ID: fields[0], Ref: fields[1]})
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read photo list: %w", err)
	}
	return photos, nil
}

func printRanking(results []photoscore.Analysis, submitted int) {
	fmt.Printf("%-4s | %-30s | %7s | %9s | %9s | %5s | %7s\n",
		"Rank", "Photo", "Overall", "Technical", "Aesthetic", "Faces", "Express")
	fmt.Println(strings.Repeat("-", 90))
	for i, r := range results {
		fmt.Printf("%-4d | %-30s | %7.4f | %9.4f | %9.2f | %5d | %7.4f\n",
			i+1, truncate(r.PhotoID, 30), r.Overall, r.Technical.Overall, r.Aesthetic.Mean,
			r.Faces.FaceCount, r.Faces.Best)
	}
	if skipped := submitted - len(results); skipped > 0 {
		fmt.Printf("\n%d of %d photos skipped (see log above)\n", skipped, submitted)
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}
