package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/vanderheijden86/pathlab/pkg/config"
	"github.com/vanderheijden86/pathlab/pkg/pathfind"

	"github.com/charmbracelet/huh"
	"golang.org/x/term"
)

// newForm creates a form, falling back to accessible prompts without a TTY.
func newForm(groups ...*huh.Group) *huh.Form {
	form := huh.NewForm(groups...).WithTheme(huh.ThemeDracula())
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		form = form.WithAccessible(true)
	}
	return form
}

// pickSettings asks for the algorithm, grid size and speed, starting from cfg.
func pickSettings(cfg *config.Config) error {
	algo := algorithmOrDefault(*cfg)
	size := config.SizePreset{Rows: cfg.Grid.Rows, Cols: cfg.Grid.Cols}
	speed := strconv.Itoa(cfg.Speed)

	form := newForm(
		huh.NewGroup(
			huh.NewSelect[pathfind.Algorithm]().
				Title("Algorithm").
				Options(algorithmOptions()...).
				Value(&algo),
			huh.NewSelect[config.SizePreset]().
				Title("Grid size").
				Options(sizeOptions(size)...).
				Value(&size),
			huh.NewInput().
				Title("Speed").
				Description(fmt.Sprintf("%d (slowest) to %d (fastest)", config.MinSpeed, config.MaxSpeed)).
				Value(&speed).
				Validate(validateSpeed),
		),
	)
	if err := form.Run(); err != nil {
		return err
	}
	return applyPick(cfg, algo, size, speed)
}

func applyPick(cfg *config.Config, algo pathfind.Algorithm, size config.SizePreset, speed string) error {
	n, err := strconv.Atoi(speed)
	if err != nil {
		return fmt.Errorf("speed %q: %w", speed, err)
	}
	cfg.Algorithm = string(algo)
	cfg.Grid.Rows, cfg.Grid.Cols = size.Rows, size.Cols
	cfg.Speed = n
	return cfg.Validate()
}

func algorithmOptions() []huh.Option[pathfind.Algorithm] {
	var opts []huh.Option[pathfind.Algorithm]
	for _, a := range pathfind.Algorithms() {
		label := a.Label()
		if !a.Guarantees() {
			label += " (path not always shortest)"
		}
		opts = append(opts, huh.NewOption(label, a))
	}
	return opts
}

// sizeOptions lists the presets, plus current when it is not one of them.
func sizeOptions(current config.SizePreset) []huh.Option[config.SizePreset] {
	var opts []huh.Option[config.SizePreset]
	known := false
	for _, p := range config.Presets() {
		known = known || p == current
		opts = append(opts, huh.NewOption(p.String(), p))
	}
	if !known {
		opts = append(opts, huh.NewOption(current.String()+" (current)", current))
	}
	return opts
}

func validateSpeed(s string) error {
	n, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("enter a whole number")
	}
	if n < config.MinSpeed || n > config.MaxSpeed {
		return fmt.Errorf("speed must be between %d and %d", config.MinSpeed, config.MaxSpeed)
	}
	return nil
}
