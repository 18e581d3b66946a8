package driver

import (
	"stylic/internal/diag"
	"stylic/internal/parser"
	"stylic/internal/project"
	"stylic/internal/source"
	"stylic/internal/styles"
	"stylic/internal/symbols"
	"stylic/internal/transform"
)

// Options configures an extraction run.
type Options struct {
	Config         project.Config
	MaxDiagnostics int
	// Jobs caps worker parallelism for directory runs; 0 means
	// GOMAXPROCS.
	Jobs int
	// Cache enables the on-disk result cache.
	Cache *DiskCache
}

// ExtractResult holds the outcome for one file.
type ExtractResult struct {
	Path      string
	FileID    source.FileID
	Output    string
	Changed   bool
	Rewritten int
	Dropped   int
	Rules     []styles.NamedRule
	Bag       *diag.Bag
	FromCache bool
}

func transformOptions(cfg project.Config) transform.Options {
	return transform.Options{
		PrimitiveSource: cfg.Primitive.Source,
		PrimitiveName:   cfg.Primitive.Name,
		CSSAttr:         cfg.Attrs.CSS,
		ClassAttr:       cfg.Attrs.Class,
	}
}

func newEngine(cfg project.Config) *styles.Engine {
	e := styles.NewEngine()
	if cfg.Extract.ClassPrefix != "" {
		e.WithPrefix(cfg.Extract.ClassPrefix)
	}
	return e
}

// ExtractFile runs the whole pipeline over one loaded file: parse,
// resolve bindings, extract. The returned result carries the rewritten
// source and the file's share of the style sheet.
func ExtractFile(file *source.File, opts Options) ExtractResult {
	bag := diag.NewBag(opts.MaxDiagnostics)
	reporter := diag.BagReporter{Bag: bag}

	parsed := parser.ParseFile(file, reporter)
	if bag.HasErrors() {
		// Не переписываем файл, который не смогли разобрать.
		return ExtractResult{
			Path:   file.Path,
			FileID: file.ID,
			Output: string(file.Content),
			Bag:    bag,
		}
	}

	cfg := opts.Config
	if cfg.Extract.Static {
		parsed.AllStatic = true
	}
	table := symbols.Resolve(parsed)
	engine := newEngine(cfg)
	res := transform.Apply(parsed, file.Content, table, engine, reporter, transformOptions(cfg))

	return ExtractResult{
		Path:      file.Path,
		FileID:    file.ID,
		Output:    res.Output,
		Changed:   res.Changed,
		Rewritten: res.Rewritten,
		Dropped:   res.Dropped,
		Rules:     engine.Rules(),
		Bag:       bag,
	}
}

// MergeRules folds per-file rule lists into one sheet, keeping the
// first occurrence of each class. File results must be supplied in
// deterministic order for stable output.
func MergeRules(results []ExtractResult) string {
	seen := make(map[string]bool)
	var sheet []byte
	for i := range results {
		for _, rule := range results[i].Rules {
			if seen[rule.Name] {
				continue
			}
			seen[rule.Name] = true
			sheet = append(sheet, rule.CSS...)
		}
	}
	return string(sheet)
}
