package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	dbRedis "github.com/kailas-cloud/frontsearch/internal/db/redis"
	logpkg "github.com/kailas-cloud/frontsearch/internal/logger"
	itemrepo "github.com/kailas-cloud/frontsearch/internal/repository/item"
	itemuc "github.com/kailas-cloud/frontsearch/internal/usecase/item"
)

var seedCmd = &cobra.Command{
	Use:   "seed <file.yaml>",
	Short: "Load items from a YAML file into the store",
	Long: `Validates every item in the file, then writes them in one batch.
Items without a uid get a generated one. A running server keeps serving its
cached datasets until they are purged (DELETE /api/search/cache) or it restarts.`,
	Args: cobra.ExactArgs(1),
	RunE: runSeed,
}

func init() {
	rootCmd.AddCommand(seedCmd)
}

// seedFile is the on-disk format of a seed file.
type seedFile struct {
	Items []seedItem `yaml:"items"`
}

type seedItem struct {
	UID            string   `yaml:"uid"`
	Kind           string   `yaml:"kind"`
	Name           string   `yaml:"name"`
	URL            string   `yaml:"url"`
	Location       string   `yaml:"location"`
	Tags           []string `yaml:"tags"`
	DatasourceUIDs []string `yaml:"ds_uid"`
	Starred        bool     `yaml:"starred"`
}

func parseSeed(data []byte) ([]string, []itemuc.Input, error) {
	var f seedFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, nil, fmt.Errorf("parse seed file: %w", err)
	}

	uids := make([]string, len(f.Items))
	inputs := make([]itemuc.Input, len(f.Items))
	for i, it := range f.Items {
		uids[i] = it.UID
		inputs[i] = itemuc.Input{
			Kind:           it.Kind,
			Name:           it.Name,
			URL:            it.URL,
			Location:       it.Location,
			Tags:           it.Tags,
			DatasourceUIDs: it.DatasourceUIDs,
			Starred:        it.Starred,
		}
	}
	return uids, inputs, nil
}

func runSeed(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(filepath.Clean(args[0]))
	if err != nil {
		return fmt.Errorf("read seed file: %w", err)
	}
	uids, inputs, err := parseSeed(data)
	if err != nil {
		return err
	}

	env, cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    cfg.Database.Addrs,
		Username: cfg.Database.Username,
		Password: cfg.Database.Password,
		DB:       cfg.Database.DB,
	})
	if err != nil {
		return fmt.Errorf("create database store: %w", err)
	}
	defer store.Close()

	ctx := cmd.Context()
	if err := store.WaitForReady(ctx, time.Duration(cfg.Database.ReadinessTimeout)*time.Second); err != nil {
		return fmt.Errorf("database not ready: %w", err)
	}

	repo := itemrepo.New(store, cfg.Storage.KeyPrefix)
	if err := repo.EnsureIndex(ctx); err != nil {
		return fmt.Errorf("ensure search index: %w", err)
	}

	n, err := itemuc.New(repo).Import(ctx, uids, inputs)
	if err != nil {
		return fmt.Errorf("import %s: %w", args[0], err)
	}

	total, err := repo.Count(ctx)
	if err != nil {
		logger.Warn("Count after import failed", zap.Error(err))
	}
	logger.Info("Seed complete", zap.String("file", args[0]), zap.Int("imported", n), zap.Int("indexed", total))
	cmd.Printf("imported %d items (%d indexed)\n", n, total)
	return nil
}
