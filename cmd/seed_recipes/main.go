package main

import (
	"bytes"
	"context"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm"

	"github.com/cookatlas/backend/config"
	"github.com/cookatlas/backend/internal/database"
	"github.com/cookatlas/backend/internal/logging"
	"github.com/cookatlas/backend/internal/models"
	"github.com/cookatlas/backend/internal/service"
)

//go:embed catalog.yaml
var defaultCatalog []byte

type seedUser struct {
	Username string `yaml:"username"`
	Email    string `yaml:"email"`
	Password string `yaml:"password"`
}

type seedRecipe struct {
	Title          string   `yaml:"title"`
	Description    string   `yaml:"description"`
	CookTime       *int     `yaml:"cook_time"`
	PrepTime       *int     `yaml:"prep_time"`
	SkillLevel     string   `yaml:"skill_level"`
	SourcePlatform string   `yaml:"source_platform"`
	SourceURL      string   `yaml:"source_url"`
	Tags           []string `yaml:"tags"`
	Ingredients    []string `yaml:"ingredients"`
}

type seedFile struct {
	User    *seedUser    `yaml:"user"`
	Recipes []seedRecipe `yaml:"recipes"`
}

func loadSeed(r io.Reader) (*seedFile, error) {
	var data seedFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&data); err != nil {
		return nil, fmt.Errorf("failed to parse seed file: %w", err)
	}
	for i, rec := range data.Recipes {
		if rec.Title == "" || rec.Description == "" {
			return nil, fmt.Errorf("recipe %d: title and description are required", i+1)
		}
	}
	return &data, nil
}

// seeder inserts a seed file, reusing tags and ingredients by name.
type seeder struct {
	db          *gorm.DB
	cfg         *config.Config
	catalog     *service.Catalog
	tags        map[string]uint
	ingredients map[string]uint
	logger      *zap.Logger
}

func newSeeder(db *gorm.DB, cfg *config.Config, logger *zap.Logger) *seeder {
	return &seeder{
		db:          db,
		cfg:         cfg,
		catalog:     service.NewCatalog(db),
		tags:        map[string]uint{},
		ingredients: map[string]uint{},
		logger:      logger,
	}
}

func (s *seeder) creator(ctx context.Context, u *seedUser) (*uint, error) {
	if u == nil {
		return nil, nil
	}
	tokens := service.NewTokenService(s.cfg.JWTSecret, s.cfg.SessionTTL)
	users := service.NewUserService(s.db, tokens, service.NewEmailService(s.cfg, s.logger), s.cfg.FrontendURL, s.logger)

	user, err := users.Register(ctx, service.RegisterInput{Username: u.Username, Email: u.Email, Password: u.Password})
	if errors.Is(err, service.ErrAlreadyExists) {
		var existing models.User
		if err := s.db.WithContext(ctx).Where("email = ?", u.Email).First(&existing).Error; err != nil {
			return nil, fmt.Errorf("seed user %q exists but cannot be loaded: %w", u.Email, err)
		}
		return &existing.ID, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create seed user: %w", err)
	}
	return &user.ID, nil
}

func (s *seeder) tagID(ctx context.Context, name string) (uint, error) {
	if id, ok := s.tags[name]; ok {
		return id, nil
	}
	var tag models.Tag
	if err := s.db.WithContext(ctx).Where(models.Tag{Name: name}).FirstOrCreate(&tag).Error; err != nil {
		return 0, err
	}
	s.tags[name] = tag.ID
	return tag.ID, nil
}

func (s *seeder) ingredientID(ctx context.Context, name string) (uint, error) {
	if id, ok := s.ingredients[name]; ok {
		return id, nil
	}
	var ing models.Ingredient
	if err := s.db.WithContext(ctx).Where(models.Ingredient{Name: name}).FirstOrCreate(&ing).Error; err != nil {
		return 0, err
	}
	s.ingredients[name] = ing.ID
	return ing.ID, nil
}

// run inserts every recipe of data and returns how many were created.
func (s *seeder) run(ctx context.Context, data *seedFile) (int, error) {
	recipes, err := service.NewRecipeService(s.db, s.logger)
	if err != nil {
		return 0, err
	}
	creatorID, err := s.creator(ctx, data.User)
	if err != nil {
		return 0, err
	}

	for _, rec := range data.Recipes {
		recipe, err := recipes.CreateRecipe(ctx, service.RecipeInput{
			CreatorID:      creatorID,
			Title:          rec.Title,
			Description:    rec.Description,
			CookTime:       rec.CookTime,
			PrepTime:       rec.PrepTime,
			SkillLevel:     rec.SkillLevel,
			SourcePlatform: rec.SourcePlatform,
			SourceURL:      rec.SourceURL,
		})
		if err != nil {
			return 0, fmt.Errorf("failed to create recipe %q: %w", rec.Title, err)
		}

		for _, name := range rec.Tags {
			id, err := s.tagID(ctx, name)
			if err != nil {
				return 0, fmt.Errorf("failed to create tag %q: %w", name, err)
			}
			if _, err := s.catalog.RecipeTags.Create(ctx, recipe.ID, id); err != nil {
				return 0, err
			}
		}
		for _, name := range rec.Ingredients {
			id, err := s.ingredientID(ctx, name)
			if err != nil {
				return 0, fmt.Errorf("failed to create ingredient %q: %w", name, err)
			}
			if _, err := s.catalog.RecipeIngredients.Create(ctx, recipe.ID, id); err != nil {
				return 0, err
			}
		}
		s.logger.Info("Seeded recipe", zap.Uint("recipe_id", recipe.ID), zap.String("title", recipe.Title))
	}
	return len(data.Recipes), nil
}

func newRootCmd() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:          "seed_recipes",
		Short:        "Insert a sample recipe catalog",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return err
			}
			logger := logging.Must(cfg.LogLevel, cfg.Environment.ConsoleLogs())
			defer func() { _ = logger.Sync() }()

			var data *seedFile
			if file == "" {
				data, err = loadSeed(bytes.NewReader(defaultCatalog))
			} else {
				var f *os.File
				if f, err = os.Open(file); err != nil {
					return err
				}
				defer f.Close()
				data, err = loadSeed(f)
			}
			if err != nil {
				return err
			}

			db, err := database.Open(cfg, logger)
			if err != nil {
				return err
			}
			defer func() { _ = database.Close(db) }()

			if cfg.DBDriver == "sqlite" {
				if err := database.RunMigrations(db, cfg.MigrationsDir, logger); err != nil {
					return err
				}
			}

			n, err := newSeeder(db, cfg, logger).run(cmd.Context(), data)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Successfully seeded %d recipes\n", n)
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "YAML seed file (defaults to the built-in catalog)")
	return cmd
}

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
