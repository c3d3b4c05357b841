// Package converter turns bank statement exports into cleaned workbooks.
package converter

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/extrato-dev/extrato/internal/config"
	"github.com/extrato-dev/extrato/internal/runlog"
)

// Result describes one finished conversion.
type Result struct {
	Format  string
	Input   string
	Output  string
	Records int // rows written
	Skipped int // input rows dropped during cleaning
}

// Converter converts one kind of statement export. Convert writes to
// outputFile inside the output folder; an empty outputFile means
// DefaultOutput().
type Converter interface {
	Convert(inputPath, outputFile string) (*Result, error)
	Format() string
	Extensions() []string
	DefaultOutput() string
}

// Registry holds converters by format name and by file extension.
type Registry struct {
	converters map[string]Converter
	byExt      map[string]Converter
}

// FileInfo describes a statement file found by Scan.
type FileInfo struct {
	Name   string
	Path   string
	Size   int64
	Format string
}

// NewRegistry creates an empty converter registry.
func NewRegistry() *Registry {
	return &Registry{
		converters: make(map[string]Converter),
		byExt:      make(map[string]Converter),
	}
}

// Register adds a converter. Panics on duplicate format or extension.
func (r *Registry) Register(c Converter) {
	key := strings.ToLower(c.Format())
	if _, ok := r.converters[key]; ok {
		panic("duplicate converter format: " + key)
	}
	for _, ext := range c.Extensions() {
		ext = strings.ToLower(ext)
		if _, ok := r.byExt[ext]; ok {
			panic("duplicate converter extension: " + ext)
		}
		r.byExt[ext] = c
	}
	r.converters[key] = c
}

// Get returns the converter for format, or nil.
func (r *Registry) Get(format string) Converter {
	return r.converters[strings.ToLower(format)]
}

// ForFile returns the converter handling the file's extension, or nil.
func (r *Registry) ForFile(path string) Converter {
	return r.byExt[strings.ToLower(filepath.Ext(path))]
}

// Formats returns the registered format names, sorted.
func (r *Registry) Formats() []string {
	formats := make([]string, 0, len(r.converters))
	for k := range r.converters {
		formats = append(formats, k)
	}
	sort.Strings(formats)
	return formats
}

// DefaultRegistry returns a registry with both statement converters.
func DefaultRegistry(cfg *config.Config, logger *log.Logger) *Registry {
	r := NewRegistry()
	r.Register(NewInvestmentsConverter(cfg, logger))
	r.Register(NewCheckingConverter(cfg, logger))
	return r
}

// Scan returns the files in dir that a registered converter handles.
// Subdirectories are not visited.
func (r *Registry) Scan(dir string) ([]FileInfo, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading input dir: %w", err)
	}

	var files []FileInfo
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		c := r.ForFile(e.Name())
		if c == nil {
			continue
		}
		info, err := e.Info()
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", e.Name(), err)
		}
		files = append(files, FileInfo{
			Name:   e.Name(),
			Path:   filepath.Join(dir, e.Name()),
			Size:   info.Size(),
			Format: c.Format(),
		})
	}
	return files, nil
}

// OutputDir creates the output folder next to inputPath and returns its path.
func OutputDir(inputPath, folder string) (string, error) {
	abs, err := filepath.Abs(inputPath)
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}
	dir := filepath.Join(filepath.Dir(abs), folder)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating output dir: %w", err)
	}
	return dir, nil
}

// BatchOutputName prefixes file with the input's base name, so that several
// inputs converted into one folder keep separate outputs.
func BatchOutputName(inputPath, file string) string {
	base := filepath.Base(inputPath)
	return strings.TrimSuffix(base, filepath.Ext(base)) + "_" + file
}

func outputFileOr(file, fallback string) string {
	if file == "" {
		return fallback
	}
	return file
}

// recordRun appends res to the conversion log of outDir. A log that cannot be
// written does not fail the conversion.
func recordRun(cfg *config.Config, logger *log.Logger, outDir string, res *Result) {
	if cfg.Output.Log == "" {
		return
	}
	entry := runlog.Entry{
		Timestamp: time.Now().UTC(),
		Format:    res.Format,
		Input:     res.Input,
		Output:    res.Output,
		Records:   res.Records,
		Skipped:   res.Skipped,
	}
	if err := runlog.Append(filepath.Join(outDir, cfg.Output.Log), []runlog.Entry{entry}); err != nil {
		logger.Warn("failed to write conversion log", "dir", outDir, "err", err)
	}
}
