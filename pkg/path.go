package pkg

import (
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"
	"sync"

	"github.com/ardnew/mung"
)

// PathEnv names the environment variable listing script search directories.
const PathEnv = "YARNSPIN_PATH"

// Stdin is the source name that selects standard input.
const Stdin = "-"

// Prefix returns the base name used to construct the configuration and cache
// directory paths.
//
// By default, Prefix is the base name of the executable file unless it matches
// one of the following substitution rules:
//   - "__debug_bin" (default output of the dlv debugger): replaced with [Name]
//   - "^\.+" (dot-prefixed names): remove the dot prefix
//
//nolint:gochecknoglobals
var Prefix = sync.OnceValue(
	func() string {
		id := os.Args[0]
		exe, err := os.Executable()
		if err == nil {
			id = exe
		}

		ext := filepath.Ext(filepath.Base(id))
		id = strings.TrimSuffix(filepath.Base(id), ext)

		for rex, rep := range map[*regexp.Regexp]string{
			regexp.MustCompile(`^__debug_bin\d+$`): Name, // default output from dlv
			regexp.MustCompile(`^\.+`):             "",   // remove leading dot(s)
		} {
			id = rex.ReplaceAllString(id, rep)
		}

		return id
	},
)

// ConfigDir returns the configuration directory path.
//
//nolint:gochecknoglobals
var ConfigDir = sync.OnceValue(
	func() string {
		dir, err := os.UserConfigDir()
		if err != nil {
			dir, err = os.UserHomeDir()
			if err == nil {
				dir = filepath.Join(dir, ".config")
			} else {
				var err error
				dir, err = os.Getwd()
				if err != nil {
					dir = "."
				}
			}
		}

		return filepath.Join(dir, Prefix())
	},
)

// CacheDir returns the cache directory path used for transient files.
//
//nolint:gochecknoglobals
var CacheDir = sync.OnceValue(
	func() string {
		dir, err := os.UserCacheDir()
		if err != nil {
			dir, err = os.UserHomeDir()
			if err == nil {
				dir = filepath.Join(dir, ".cache")
			} else {
				var err error
				dir, err = os.Getwd()
				if err != nil {
					dir = "."
				}
			}
		}

		return filepath.Join(dir, Prefix())
	},
)

// SearchPath returns the directories searched for script sources: dirs
// first, then the entries of [PathEnv]. Empty and repeated entries are
// dropped.
func SearchPath(dirs ...string) []string {
	sep := string(os.PathListSeparator)

	// mung leads with the last prefix item, so dirs go in as one
	// pre-delimited item to keep their order.
	opts := []mung.Option[mung.Config]{
		mung.WithSubjectItems(os.Getenv(PathEnv)),
		mung.WithDelim(sep),
	}
	if len(dirs) > 0 {
		opts = append(opts, mung.WithPrefixItems(strings.Join(dirs, sep)))
	}

	var path []string

	for dir := range mung.Make(opts...).All() {
		if dir == "" || slices.Contains(path, dir) {
			continue
		}

		path = append(path, dir)
	}

	return path
}

// Resolve returns the file named by name. Absolute names, names found
// relative to the working directory and [Stdin] are returned unchanged.
// Otherwise each directory of [SearchPath] is tried in order.
func Resolve(name string, dirs ...string) (string, error) {
	if name == Stdin || filepath.IsAbs(name) || isFile(name) {
		return name, nil
	}

	for _, dir := range SearchPath(dirs...) {
		if path := filepath.Join(dir, name); isFile(path) {
			return path, nil
		}
	}

	return "", ErrSourceNotFound.Wrapf("%q", name)
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}

	return info.Mode().IsRegular()
}
