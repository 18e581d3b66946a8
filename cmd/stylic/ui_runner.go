package main

import (
	"context"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"stylic/internal/driver"
	"stylic/internal/source"
	"stylic/internal/ui"
)

type extractOutcome struct {
	fileSet *source.FileSet
	results []driver.ExtractResult
	err     error
}

func runExtractWithUI(ctx context.Context, title, dir string, opts driver.Options) (*source.FileSet, []driver.ExtractResult, error) {
	files, err := driver.ListSourceFiles(dir)
	if err != nil {
		return nil, nil, err
	}
	display := make([]string, len(files))
	for i, f := range files {
		if rel, relErr := filepath.Rel(dir, f); relErr == nil {
			display[i] = rel
		} else {
			display[i] = f
		}
	}

	events := make(chan driver.Event, 256)
	outcomeCh := make(chan extractOutcome, 1)

	go func() {
		fileSet, results, runErr := driver.ExtractDir(ctx, dir, opts, relSink{dir: dir, sink: driver.ChannelSink{Ch: events}})
		outcomeCh <- extractOutcome{fileSet: fileSet, results: results, err: runErr}
		close(events)
	}()

	model := ui.NewProgressModel(title, display, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout))
	_, uiErr := program.Run()
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.fileSet, outcome.results, uiErr
	}
	return outcome.fileSet, outcome.results, outcome.err
}

// relSink rebases event paths so UI rows match the displayed file list.
type relSink struct {
	dir  string
	sink driver.ChannelSink
}

func (s relSink) OnEvent(ev driver.Event) {
	if ev.File != "" {
		if rel, err := filepath.Rel(s.dir, ev.File); err == nil {
			ev.File = rel
		}
	}
	s.sink.OnEvent(ev)
}
