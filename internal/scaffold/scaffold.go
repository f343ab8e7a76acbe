// Package scaffold renders the embedded configuration file template.
package scaffold

import (
	"bytes"
	_ "embed"
	"strings"
	"text/template"

	"github.com/idelchi/dirpulse/internal/config"
)

// Template contains the commented .dirpulse.yaml template.
//
//go:embed dirpulse.yaml.tmpl
var Template string

// Render renders the configuration template populated with cfg.
func Render(cfg config.Config) (string, error) {
	tmpl, err := template.New("dirpulse.yaml").
		Funcs(template.FuncMap{"join": strings.Join}).
		Parse(Template)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, map[string]any{
		"TopSize": cfg.TopSize,
		"Output":  cfg.Output,
		"Outputs": config.Outputs,
		"Hidden":  cfg.Hidden,
		"Follow":  cfg.Follow,
		"Exclude": cfg.Exclude,
		"Depth":   cfg.Depth,
		"Walker":  cfg.Walker,
		"Walkers": config.Walkers,
		"Debug":   cfg.Debug,
		"NoColor": cfg.NoColor,
	}); err != nil {
		return "", err
	}

	return buf.String(), nil
}
