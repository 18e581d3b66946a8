package driver

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"stylic/internal/diag"
	"stylic/internal/source"
)

// sourceExts lists the file extensions the extractor picks up.
var sourceExts = map[string]bool{
	".js":  true,
	".jsx": true,
}

// ListSourceFiles возвращает отсортированный список всех исходников в
// директории.
func ListSourceFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if d.Name() == "node_modules" || strings.HasPrefix(d.Name(), ".") && path != dir {
				return filepath.SkipDir
			}
			return nil
		}
		if sourceExts[filepath.Ext(path)] {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	// Сортируем для детерминированного порядка
	sort.Strings(files)
	return files, nil
}

// ExtractDir extracts every source file under dir in parallel. Results
// come back in the sorted file order regardless of completion order.
func ExtractDir(ctx context.Context, dir string, opts Options, sink ProgressSink) (*source.FileSet, []ExtractResult, error) {
	if sink == nil {
		sink = NopSink{}
	}
	files, err := ListSourceFiles(dir)
	if err != nil {
		return nil, nil, err
	}

	fileSet := source.NewFileSet()
	fileSet.SetBaseDir(dir)
	if len(files) == 0 {
		return fileSet, nil, nil
	}

	// Файлы загружаются заранее: FileSet не потокобезопасен.
	fileIDs := make(map[string]source.FileID, len(files))
	loadErrors := make(map[string]error, len(files))
	for _, path := range files {
		id, err := fileSet.Load(path)
		if err != nil {
			loadErrors[path] = err
			continue
		}
		fileIDs[path] = id
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	// Индексы уникальны для каждой горутины, мьютекс не нужен.
	results := make([]ExtractResult, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))

	for i, path := range files {
		i, path := i, path
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			started := time.Now()
			sink.OnEvent(Event{File: path, Stage: StageParse, Status: StatusWorking})

			if loadErr, failed := loadErrors[path]; failed {
				bag := diag.NewBag(opts.MaxDiagnostics)
				bag.Add(diag.NewError(diag.IOLoadFileError, source.Span{},
					"failed to load file: "+loadErr.Error()))
				results[i] = ExtractResult{Path: path, Bag: bag}
				sink.OnEvent(Event{File: path, Status: StatusError, Err: loadErr, Elapsed: time.Since(started)})
				return nil
			}

			file := fileSet.Get(fileIDs[path])
			key := cacheKey(file, opts.Config)

			if opts.Cache != nil {
				var payload DiskPayload
				if hit, err := opts.Cache.Get(key, &payload); err == nil && hit {
					results[i] = resultFromPayload(&payload, file, opts.MaxDiagnostics)
					sink.OnEvent(Event{File: path, Status: StatusCached, Elapsed: time.Since(started)})
					return nil
				}
			}

			sink.OnEvent(Event{File: path, Stage: StageExtract, Status: StatusWorking})
			res := ExtractFile(file, opts)
			res.Path = path
			results[i] = res

			if opts.Cache != nil && !res.Bag.HasErrors() {
				// Ошибка записи кеша не фатальна для извлечения.
				_ = opts.Cache.Put(key, payloadFromResult(&res))
			}

			status := StatusDone
			if res.Bag.HasErrors() {
				status = StatusError
			}
			sink.OnEvent(Event{File: path, Status: status, Elapsed: time.Since(started)})
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return fileSet, results, err
	}
	return fileSet, results, nil
}

// WriteOutputs writes rewritten sources back in place and the merged
// sheet to stylesheetPath. Unchanged files are left alone.
func WriteOutputs(results []ExtractResult, stylesheetPath string) error {
	for i := range results {
		if !results[i].Changed {
			continue
		}
		if err := os.WriteFile(results[i].Path, []byte(results[i].Output), 0o644); err != nil {
			return err
		}
	}
	sheet := MergeRules(results)
	if sheet == "" || stylesheetPath == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(stylesheetPath), 0o755); err != nil {
		return err
	}
	return os.WriteFile(stylesheetPath, []byte(sheet), 0o644)
}
