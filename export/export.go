// Package export writes a site configuration record back out, either as
// the generator's native settings file or as YAML.
package export

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/renameio/v2"
	"github.com/rjw57/siteconf/config"
	"github.com/rjw57/siteconf/settings"
	"github.com/rjw57/siteconf/utils"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

type Format string

const (
	FormatNative Format = "py"
	FormatYAML   Format = "yaml"
)

// ParseFormat accepts "py"/"python" and "yaml"/"yml".
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "py", "python":
		return FormatNative, nil
	case "yaml", "yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("unknown export format %q (want py or yaml)", s)
}

// FormatFor picks the format from a file name extension.
func FormatFor(path string) (Format, error) {
	return ParseFormat(utils.NormalizeExt(filepath.Ext(path)))
}

// Encode writes cfg to w.
func Encode(w io.Writer, cfg *config.Config, format Format) error {
	m, err := cfg.Map()
	if err != nil {
		return err
	}
	return EncodeMap(w, m, format)
}

func EncodeMap(w io.Writer, m settings.Map, format Format) error {
	switch format {
	case FormatNative:
		return settings.Write(w, m)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(map[string]any(m)); err != nil {
			return err
		}
		return enc.Close()
	}
	return fmt.Errorf("unknown export format %q", format)
}

// WriteFile replaces path with the encoded record. Readers never see a
// partially written file, and a file that already holds the same bytes is
// left untouched.
func WriteFile(path string, cfg *config.Config, format Format) error {
	var buf bytes.Buffer
	if err := Encode(&buf, cfg, format); err != nil {
		return err
	}
	perm := os.FileMode(0o644)
	if fi, err := os.Stat(path); err == nil {
		perm = fi.Mode().Perm()
		if old, err := utils.FileHash(path); err == nil && old == utils.HashBytes(buf.Bytes()) {
			log.Logger.Debug().Str("file", path).Msg("Exported configuration unchanged")
			return nil
		}
	}
	if err := renameio.WriteFile(path, buf.Bytes(), perm); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	log.Logger.Info().
		Str("file", path).
		Str("format", string(format)).
		Int("bytes", buf.Len()).
		Msg("Configuration exported")
	return nil
}
