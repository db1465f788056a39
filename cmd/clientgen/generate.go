package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"

	clientgen "github.com/goliatone/go-clientgen"
	"github.com/goliatone/go-clientgen/internal/config"
	"github.com/goliatone/go-clientgen/internal/discovery"
	"github.com/goliatone/go-clientgen/internal/logger"
	"github.com/goliatone/go-clientgen/pkg/engine"
	"github.com/goliatone/go-clientgen/pkg/generator"
	"github.com/goliatone/go-clientgen/pkg/language"
)

var (
	flagSource    string
	flagLanguage  string
	flagTemplates string
	flagOutput    string
	flagConfig    string
	flagWatch     bool
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Render a discovery document into client library source",
	RunE: func(cmd *cobra.Command, args []string) error {
		logger.SetVerbose(verbose)

		cfg, err := config.Load(flagConfig)
		if err != nil {
			return err
		}
		if flagLanguage != "" {
			cfg.Language = flagLanguage
		}
		if flagTemplates != "" {
			cfg.Templates = flagTemplates
		}
		if flagOutput != "" {
			cfg.Output = flagOutput
		}

		languages := language.NewRegistry()
		if cfg.Language == "" {
			if err := promptLanguage(languages, cfg); err != nil {
				return err
			}
		}
		lang, err := languages.Get(cfg.Language)
		if err != nil {
			return err
		}

		run := func() error { return generate(cmd.Context(), cfg, languages, lang) }
		if err := run(); err != nil {
			if !flagWatch {
				return err
			}
			logger.Error("generate: %v", err)
		}
		if flagWatch {
			return watchAndRegenerate(cfg, run)
		}
		return nil
	},
}

func init() {
	generateCmd.Flags().StringVar(&flagSource, "source", "", "discovery document path (required)")
	generateCmd.Flags().StringVar(&flagLanguage, "language", "", "target language")
	generateCmd.Flags().StringVar(&flagTemplates, "templates", "", "template directory overriding the embedded set")
	generateCmd.Flags().StringVar(&flagOutput, "output", "", "output directory")
	generateCmd.Flags().StringVar(&flagConfig, "config", config.DefaultFile, "configuration file")
	generateCmd.Flags().BoolVar(&flagWatch, "watch", false, "regenerate when the source or templates change")
	_ = generateCmd.MarkFlagRequired("source")
	rootCmd.AddCommand(generateCmd)
}

func promptLanguage(languages *language.Registry, cfg *config.Config) error {
	prompt := &survey.Select{
		Message: "Target language:",
		Options: languages.List(),
	}
	return survey.AskOne(prompt, &cfg.Language)
}

func generate(ctx context.Context, cfg *config.Config, languages *language.Registry, lang *language.Language) error {
	data, err := os.ReadFile(flagSource)
	if err != nil {
		return fmt.Errorf("read source: %w", err)
	}
	doc, err := discovery.ParseDocument(data)
	if err != nil {
		return err
	}
	apiModel, err := discovery.Build(doc, lang)
	if err != nil {
		return err
	}
	logger.Debug("built context for %s %s: %d models, %d methods",
		apiModel.Name, apiModel.Version, len(apiModel.Models), len(apiModel.Methods))

	templates := clientgen.EmbeddedTemplates()
	if cfg.Templates != "" {
		templates = os.DirFS(cfg.Templates)
	}

	eng, err := engine.New(
		engine.WithTemplates(templates),
		engine.WithLanguages(languages),
		engine.WithDefaultLanguage(lang.Name),
		engine.WithCopyright(cfg.Copyright),
	)
	if err != nil {
		return err
	}

	gen, err := generator.New(
		generator.WithEngine(eng),
		generator.WithWorkers(cfg.Workers),
		generator.WithModelTemplate(lang.Name+"/model"),
		generator.WithMethodTemplate(lang.Name+"/rpcmethod"),
	)
	if err != nil {
		return err
	}

	artifacts, genErr := gen.Generate(ctx, apiModel)
	for _, artifact := range artifacts {
		path := filepath.Join(cfg.Output, filepath.FromSlash(artifact.Name)+lang.FileExtension)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
		if err := os.WriteFile(path, []byte(artifact.Content), 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		logger.Debug("wrote %s", path)
	}
	logger.Info("generated %d artifacts in %s", len(artifacts), cfg.Output)

	if genErr != nil {
		for _, line := range strings.Split(genErr.Error(), "\n") {
			logger.Error("%s", line)
		}
		return fmt.Errorf("some renders failed: %w", genErr)
	}
	return nil
}
