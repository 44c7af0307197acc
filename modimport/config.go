// Package modimport is the module-import provider of spec.md §6: given a
// module path, it returns either a decoded bytecode blob or "not found".
// It also owns the TOML project descriptor that tells the compiler where to
// look (spec.md SPEC_FULL.md §2.3), grounded on the teacher's
// depm/load_mod.go.
package modimport

import (
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml"

	"nullc/common"
	"nullc/report"
)

// tomlConfig is a NULLC module descriptor as it is encoded on disk.
type tomlConfig struct {
	Name         string   `toml:"name"`
	NullCVersion string   `toml:"nullc-version"`
	SourceRoot   string   `toml:"source-root"`
	SearchPaths  []string `toml:"search-paths"`
}

// Config is a loaded, validated module descriptor: the name used when other
// modules `import` this one, the absolute root the source walker starts
// from, and the directories searched for a dependency's precompiled
// bytecode blob.
type Config struct {
	Name        string
	AbsPath     string
	SourceRoot  string
	SearchPaths []string
}

// LoadModuleConfig loads and validates the module descriptor at abspath
// (the directory containing common.ModuleFileName). It reports a fatal
// error and returns (nil, false) on any I/O or parse failure, matching the
// teacher's LoadModule discipline of treating a broken module file as
// unrecoverable rather than a per-definition diagnostic.
func LoadModuleConfig(abspath string) (*Config, bool) {
	f, err := os.Open(filepath.Join(abspath, common.ModuleFileName))
	if err != nil {
		report.ReportFatal("unable to open module file at `%s`: %s", abspath, err.Error())
		return nil, false
	}
	defer f.Close()

	buf, err := ioutil.ReadAll(f)
	if err != nil {
		report.ReportFatal("error reading module file at `%s`: %s", abspath, err.Error())
		return nil, false
	}

	tc := &tomlConfig{}
	if err := toml.Unmarshal(buf, tc); err != nil {
		report.ReportFatal("error parsing module file at `%s`: %s", abspath, err.Error())
		return nil, false
	}

	cfg := &Config{AbsPath: abspath}
	if !validateConfig(cfg, tc) {
		return nil, false
	}

	return cfg, true
}

func validateConfig(cfg *Config, tc *tomlConfig) bool {
	if tc.Name == "" {
		report.ReportImportError(cfg.AbsPath, "missing module name")
		return false
	}

	if !isValidModuleName(tc.Name) {
		report.ReportImportError(cfg.AbsPath, "module name `%s` must be a valid identifier", tc.Name)
		return false
	}

	if tc.NullCVersion != "" {
		if err := CheckVersion(tc.NullCVersion); err != nil {
			report.ReportCompileWarning(nil, nil, fmt.Sprintf(
				"module `%s` targets nullc v%s, this compiler is v%s: %s",
				tc.Name, tc.NullCVersion, common.NullCVersion, err.Error(),
			))
		}
	}

	cfg.Name = tc.Name
	cfg.SourceRoot = tc.SourceRoot
	if cfg.SourceRoot == "" {
		cfg.SourceRoot = "."
	}
	cfg.SearchPaths = tc.SearchPaths

	return true
}

func isValidModuleName(name string) bool {
	if name == "" {
		return false
	}
	for i, r := range name {
		isLetter := r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
		isDigit := r >= '0' && r <= '9'
		if i == 0 && isDigit {
			return false
		}
		if !isLetter && !isDigit {
			return false
		}
	}
	return true
}
