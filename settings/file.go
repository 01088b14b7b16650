package settings

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
)

// File is a settings file read from disk together with every file it
// pulled in through "from <module> import *".
type File struct {
	Path     string
	Values   Map
	Includes []string
}

// Sources returns the main file followed by its includes.
func (f *File) Sources() []string {
	return append([]string{f.Path}, f.Includes...)
}

// ReadFile parses the settings file at path. Included modules are looked
// up next to the including file as <module>.py; a dotted module name maps
// to sub-directories.
func ReadFile(path string) (*File, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	r := &fileReader{active: map[string]bool{}}
	scope, err := r.read(abs)
	if err != nil {
		return nil, err
	}
	log.Logger.Debug().
		Str("file", abs).
		Strs("includes", r.includes).
		Int("settings", len(settingsOf(scope))).
		Msg("settings file read")
	return &File{Path: abs, Values: settingsOf(scope), Includes: r.includes}, nil
}

type fileReader struct {
	active   map[string]bool
	includes []string
}

func (r *fileReader) read(path string) (map[string]any, error) {
	if r.active[path] {
		return nil, fmt.Errorf("settings: include cycle through %s", path)
	}
	r.active[path] = true
	defer delete(r.active, path)

	src, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	dir := filepath.Dir(path)
	return parse(path, src, func(module string) (map[string]any, error) {
		target := filepath.Join(dir, filepath.FromSlash(strings.ReplaceAll(module, ".", "/"))+".py")
		r.includes = append(r.includes, target)
		return r.read(target)
	})
}
