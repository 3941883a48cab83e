package cmd

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/klauspost/readahead"

	"github.com/ardnew/cssfn/lang"
	"github.com/ardnew/cssfn/style"
)

type (
	contextKey  struct{}
	registryKey struct{}
	providerKey struct{}
	ioKey       struct{}
)

// WithContext returns a new context.Context containing the given kong.Context.
func WithContext(ctx context.Context, ktx *kong.Context) context.Context {
	return context.WithValue(ctx, contextKey{}, ktx)
}

func kongContextFrom(ctx context.Context) *kong.Context {
	ktx, ok := ctx.Value(contextKey{}).(*kong.Context)
	if !ok || ktx == nil {
		return nil
	}

	return ktx
}

// WithRegistry returns a new context.Context containing the function
// registry commands evaluate with.
func WithRegistry(ctx context.Context, reg *lang.Registry) context.Context {
	return context.WithValue(ctx, registryKey{}, reg)
}

// registryFrom returns the registry stored by [WithRegistry], or one with
// only the built-in functions.
func registryFrom(ctx context.Context) *lang.Registry {
	if reg, ok := ctx.Value(registryKey{}).(*lang.Registry); ok && reg != nil {
		return reg
	}

	return lang.NewRegistry()
}

// WithProvider returns a new context.Context containing the provider of
// the palette context.
func WithProvider(ctx context.Context, p style.Provider) context.Context {
	return context.WithValue(ctx, providerKey{}, p)
}

// providerFrom returns the provider stored by [WithProvider], or one
// supplying an empty context.
func providerFrom(ctx context.Context) style.Provider {
	if p, ok := ctx.Value(providerKey{}).(style.Provider); ok && p != nil {
		return p
	}

	return style.ProviderFunc(func(context.Context) (lang.Context, error) {
		return lang.EmptyContext(), nil
	})
}

type stdio struct {
	in  io.Reader
	out io.Writer
}

// WithIO returns a new context.Context whose commands read stdin from in
// and write results to out.
func WithIO(ctx context.Context, in io.Reader, out io.Writer) context.Context {
	return context.WithValue(ctx, ioKey{}, stdio{in: in, out: out})
}

// ioFrom returns the streams stored by [WithIO], defaulting to the
// process's standard input and output.
func ioFrom(ctx context.Context) (io.Reader, io.Writer) {
	s, _ := ctx.Value(ioKey{}).(stdio)

	if s.in == nil {
		s.in = os.Stdin
	}

	if s.out == nil {
		s.out = os.Stdout
	}

	return s.in, s.out
}

// fileKey uniquely identifies a file by its device and inode numbers.
// This handles deduplication across symlinks, absolute/relative paths, and
// special device files.
type fileKey struct {
	dev uint64
	ino uint64
}

// stdinSource is the special source indicator for reading from stdin.
const stdinSource = "-"

// readStylesheets reads one stylesheet per source. The same file named
// twice, through any path, is read once. All occurrences of "-" read stdin
// once, after every regular file. The stylesheet ID is the source path as
// given.
func readStylesheets(ctx context.Context, sources []string) ([]style.Stylesheet, error) {
	if len(sources) == 0 {
		return nil, ErrNoSource
	}

	stdin, _ := ioFrom(ctx)

	var (
		sheets   []style.Stylesheet
		hasStdin bool
	)

	seen := make(map[fileKey]struct{})

	for _, src := range sources {
		if src == stdinSource {
			hasStdin = true

			continue
		}

		f, ok, err := openUniqueFile(src, seen)
		if err != nil {
			return nil, ErrReadSource.With(slog.String("file", src)).Wrap(err)
		}

		if !ok {
			continue
		}

		text, err := readAll(f)
		if err != nil {
			return nil, ErrReadSource.With(slog.String("file", src)).Wrap(err)
		}

		sheets = append(sheets, style.Stylesheet{ID: src, Template: text})
	}

	if hasStdin {
		text, err := readAll(io.NopCloser(stdin))
		if err != nil {
			return nil, ErrReadSource.With(slog.String("file", stdinSource)).Wrap(err)
		}

		sheets = append(sheets, style.Stylesheet{ID: stdinSource, Template: text})
	}

	return sheets, nil
}

// readAll reads r to the end through a read-ahead buffer and closes it.
func readAll(r io.ReadCloser) (string, error) {
	ra := readahead.NewReadCloser(r)
	defer ra.Close()

	data, err := io.ReadAll(ra)

	return string(data), err
}

// openUniqueFile opens the file at path unless it has been seen before.
// It resolves symlinks and uses device/inode to detect duplicates.
func openUniqueFile(path string, seen map[fileKey]struct{}) (*os.File, bool, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, false, err
	}

	resolved, err := filepath.EvalSymlinks(absPath)
	if err != nil {
		return nil, false, err
	}

	info, err := os.Stat(resolved)
	if err != nil {
		return nil, false, err
	}

	if key, ok := makeFileKey(info); ok {
		if _, exists := seen[key]; exists {
			return nil, false, nil
		}

		seen[key] = struct{}{}
	}

	file, err := os.Open(resolved)
	if err != nil {
		return nil, false, err
	}

	return file, true, nil
}

// makeFileKey creates a fileKey from os.FileInfo.
// Returns false if the underlying Sys() data is not of type *syscall.Stat_t.
func makeFileKey(info os.FileInfo) (key fileKey, ok bool) {
	stat, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return key, false
	}

	return fileKey{dev: stat.Dev, ino: stat.Ino}, true
}
