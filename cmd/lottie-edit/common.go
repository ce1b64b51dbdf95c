package main

import (
	"fmt"
	"os"

	"github.com/lottiekit/lottie-editor/internal/config"
	"github.com/lottiekit/lottie-editor/internal/editor"
	"github.com/lottiekit/lottie-editor/internal/player"
)

// openEditor loads an animation file into a coordinator backed by the
// headless player. Warnings and errors from the coordinator go to stderr.
func openEditor(path string) (*editor.Editor, error) {
	settings := config.DefaultSettings()
	ed := editor.New(settings, player.NewHeadlessFactory(), &player.FixedContainer{}, func(ev editor.ProgressEvent) {
		if ev.Level == editor.LevelWarning || ev.Level == editor.LevelError {
			fmt.Fprintln(os.Stderr, ev.Message)
		}
	})
	if err := ed.LoadFile(path); err != nil {
		return nil, err
	}
	return ed, nil
}

// writeResult saves the edited document. An empty output path overwrites the
// input file.
func writeResult(ed *editor.Editor, input, output string) error {
	data, err := ed.DocumentBytes()
	if err != nil {
		return err
	}
	if output == "" {
		output = input
	}
	if err := os.WriteFile(output, data, 0644); err != nil {
		return err
	}
	fmt.Printf("Wrote %s\n", output)
	return nil
}
