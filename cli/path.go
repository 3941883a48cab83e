package cli

import (
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"
	"sync"

	"github.com/ardnew/mung"

	"github.com/ardnew/cssfn/pkg"
)

// baseConfig is the base name of the configuration file.
const baseConfig = "config.yaml"

// pluginPathVar names the environment variable listing plugin directories.
var pluginPathVar = pkg.EnvPrefix() + "PLUGIN_PATH"

// defaultDirMode is the default permission mode for created directories.
var defaultDirMode os.FileMode = 0o700

// basePrefix returns the base name of the executable, used to name the
// configuration and cache directories.
//
// Debugger builds ("__debug_bin<N>") map to the program name, and leading
// dots are removed.
var basePrefix = sync.OnceValue(
	func() string {
		id := os.Args[0]
		if exe, err := os.Executable(); err == nil {
			id = exe
		}

		id = filepath.Base(id)
		id = strings.TrimSuffix(id, filepath.Ext(id))

		if regexp.MustCompile(`^__debug_bin\d*$`).MatchString(id) {
			return pkg.Name
		}

		if id = strings.TrimLeft(id, "."); id == "" {
			return pkg.Name
		}

		return id
	},
)

// userDir returns the directory base(), falling back to home/dot and then
// to the working directory.
func userDir(base func() (string, error), dot string) string {
	dir, err := base()
	if err == nil {
		return filepath.Join(dir, basePrefix())
	}

	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, dot, basePrefix())
	}

	if wd, err := os.Getwd(); err == nil {
		return filepath.Join(wd, basePrefix())
	}

	return basePrefix()
}

// configDir returns the configuration directory path.
var configDir = sync.OnceValue(func() string {
	return userDir(os.UserConfigDir, ".config")
})

// cacheDir returns the cache directory path used for transient files such
// as the REPL history and profiles.
var cacheDir = sync.OnceValue(func() string {
	return userDir(os.UserCacheDir, ".cache")
})

// configPath joins elem onto the configuration directory.
func configPath(elem ...string) string {
	return filepath.Join(append([]string{configDir()}, elem...)...)
}

// mkdirAllRequired creates all required runtime directories.
func mkdirAllRequired() error {
	for _, dir := range []string{configDir(), cacheDir()} {
		if err := os.MkdirAll(dir, defaultDirMode); err != nil {
			return err
		}
	}

	return nil
}

// pluginDirs returns the plugin search path: the directories in extra,
// then those of the plugin path environment variable, then the plugins
// directory under the configuration directory. Only existing directories
// are kept.
func pluginDirs(extra ...string) []string {
	subject := append(filepath.SplitList(os.Getenv(pluginPathVar)), configPath("plugins"))

	path := mung.Make(
		mung.WithSubjectItems(subject...),
		mung.WithDelim(string(os.PathListSeparator)),
		mung.WithPrefixItems(extra...),
		mung.WithFilter(isDir),
	).String()

	var dirs []string

	for _, dir := range filepath.SplitList(path) {
		if isDir(dir) && !slices.Contains(dirs, dir) {
			dirs = append(dirs, dir)
		}
	}

	return dirs
}

// pluginFiles returns the YAML files directly inside dirs, each directory
// in order and its files sorted by name.
func pluginFiles(dirs []string) []string {
	var files []string

	for _, dir := range dirs {
		var found []string

		for _, pattern := range []string{"*.yaml", "*.yml"} {
			matches, _ := filepath.Glob(filepath.Join(dir, pattern))
			found = append(found, matches...)
		}

		slices.Sort(found)
		files = append(files, found...)
	}

	return files
}

func isDir(path string) bool {
	info, err := os.Stat(path)

	return err == nil && info.IsDir()
}
