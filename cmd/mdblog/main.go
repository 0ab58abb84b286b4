package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"mdblog/internal/build"
	"mdblog/internal/domain/config"
	domainerr "mdblog/internal/domain/errors"
	"mdblog/internal/render"
	"os"
	"os/signal"
	"syscall"
	_ "time/tzdata"

	"github.com/alecthomas/kong"
)

type CLI struct {
	Config  string `short:"c" help:"Site configuration file." default:"site.yaml" type:"path"`
	Verbose bool   `short:"v" help:"Enable debug logging."`

	Build BuildCmd `cmd:"" default:"1" help:"Generate the site (default command)."`
	Check CheckCmd `cmd:"" help:"Validate every post without writing output."`
}

type BuildCmd struct {
	Mode   string `help:"Output mode: html or json. Overrides build.mode."`
	Source string `help:"Directory of Markdown posts. Overrides build.source_dir." type:"path"`
	Out    string `short:"o" help:"Output directory. Overrides build.public_dir." type:"path"`
	Theme  string `help:"Directory of *.tmpl templates. Overrides build.theme_dir." type:"path"`
	Index  string `help:"Keep the post catalog at this path instead of a temporary file." type:"path"`
}

func (c *BuildCmd) Run(ctx context.Context, cli *CLI) error {
	cfg, err := loadConfig(cli.Config, func(cfg *config.Config) {
		if c.Mode != "" {
			cfg.Build.Mode = config.Mode(c.Mode)
		}
		if c.Source != "" {
			cfg.Build.SourceDir = c.Source
		}
		if c.Out != "" {
			cfg.Build.PublicDir = c.Out
		}
		if c.Theme != "" {
			cfg.Build.ThemeDir = c.Theme
		}
	})
	if err != nil {
		return err
	}

	b := &build.Builder{Cfg: cfg, Logger: slog.Default(), IndexPath: c.Index}
	if cfg.Build.Mode == config.ModeHTML {
		tpl, err := render.NewTemplateRenderer(cfg.Build.ThemeDir)
		if err != nil {
			return fmt.Errorf("load theme(%s): %w", cfg.Build.ThemeDir, err)
		}
		b.Templates = tpl
	}

	res, err := b.Run(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("Generated %d posts (%d published) into %s\n", res.Posts, res.Published, cfg.Build.PublicDir)
	return nil
}

type CheckCmd struct {
	Source string `help:"Directory of Markdown posts. Overrides build.source_dir." type:"path"`
}

func (c *CheckCmd) Run(ctx context.Context, cli *CLI) error {
	cfg, err := loadConfig(cli.Config, func(cfg *config.Config) {
		if c.Source != "" {
			cfg.Build.SourceDir = c.Source
		}
	})
	if err != nil {
		return err
	}

	n, err := (&build.Builder{Cfg: cfg, Logger: slog.Default()}).Check(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("%d posts OK\n", n)
	return nil
}

func loadConfig(path string, override func(*config.Config)) (config.Config, error) {
	cfg, err := config.LoadOrDefault(path)
	if err != nil && !errors.Is(err, domainerr.ErrInvalid) {
		return cfg, fmt.Errorf("load config(%s): %w", path, err)
	}
	override(&cfg)
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func main() {
	var cli CLI
	kctx := kong.Parse(&cli,
		kong.Name("mdblog"),
		kong.Description("Static blog generator for Markdown posts with meta-data annotations."),
	)

	level := slog.LevelInfo
	if cli.Verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	kctx.BindTo(ctx, (*context.Context)(nil))

	if err := kctx.Run(&cli); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		stop()
		if errors.Is(err, domainerr.ErrInvalid) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}
