package main

import (
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/sahoojanmejaya-aorbotreks/aorboweb/internal/model"
	"github.com/sahoojanmejaya-aorbotreks/aorboweb/internal/store"
)

var importSeedPath string

// trekSeed mirrors model.Trek with yaml field names for seed files.
type trekSeed struct {
	Name        string   `yaml:"name"`
	Slug        string   `yaml:"slug"`
	State       string   `yaml:"state"`
	Difficulty  string   `yaml:"difficulty"`
	Category    string   `yaml:"category"`
	Tags        []string `yaml:"tags"`
	Activities  []string `yaml:"activities"`
	Description string   `yaml:"description"`
	ImageURL    string   `yaml:"image_url"`
	IsPinned    bool     `yaml:"is_pinned"`
	PinPriority int      `yaml:"pin_priority"`
}

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import trek listings from a YAML seed file",
	RunE: func(cmd *cobra.Command, _ []string) error {
		if err := cfg.Validate("import"); err != nil {
			return err
		}
		ctx := cmd.Context()

		raw, err := os.ReadFile(importSeedPath)
		if err != nil {
			return eris.Wrap(err, "read seed file")
		}
		var seeds []trekSeed
		if err := yaml.Unmarshal(raw, &seeds); err != nil {
			return eris.Wrap(err, "parse seed file")
		}

		st, err := store.New(ctx, cfg.Store.Driver, cfg.Store.DatabaseURL)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck
		if err := st.Migrate(ctx); err != nil {
			return err
		}

		for _, seed := range seeds {
			if seed.Name == "" || seed.Slug == "" {
				return eris.Errorf("seed entry missing name or slug: %+v", seed)
			}
			trek := model.Trek{
				Name:        seed.Name,
				Slug:        seed.Slug,
				State:       seed.State,
				Difficulty:  seed.Difficulty,
				Category:    seed.Category,
				Tags:        seed.Tags,
				Activities:  seed.Activities,
				Description: seed.Description,
				ImageURL:    seed.ImageURL,
				IsPinned:    seed.IsPinned,
				PinPriority: seed.PinPriority,
			}
			if err := st.UpsertTrek(ctx, &trek); err != nil {
				return eris.Wrapf(err, "upsert trek %s", seed.Slug)
			}
		}

		zap.L().Info("import complete",
			zap.Int("treks", len(seeds)),
			zap.String("seed", importSeedPath),
		)
		return nil
	},
}

func init() {
	importCmd.Flags().StringVar(&importSeedPath, "seed", "", "path to YAML seed file (required)")
	_ = importCmd.MarkFlagRequired("seed")
	rootCmd.AddCommand(importCmd)
}
