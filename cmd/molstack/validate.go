package main

import (
	"fmt"

	"github.com/fsnotify/fsnotify"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/cx-luo/molstack/internal/workflow"
)

func newValidateCommand() *cobra.Command {
	var workflowPath string
	var watch bool

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Parse a workflow file without executing it",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateOnce(workflowPath); err != nil {
				return err
			}
			if !watch {
				return nil
			}
			return watchAndValidate(workflowPath)
		},
	}

	cmd.Flags().StringVar(&workflowPath, "workflow", "", "path to the workflow YAML file (required)")
	cmd.Flags().BoolVar(&watch, "watch", false, "re-validate whenever the workflow file changes")
	cmd.MarkFlagRequired("workflow")

	return cmd
}

func validateOnce(workflowPath string) error {
	file, err := workflow.LoadFile(workflowPath)
	if err != nil {
		return errors.Wrap(err, "validate")
	}
	fmt.Printf("ok: %d step(s)\n", len(file.Steps))
	return nil
}

// watchAndValidate re-runs validateOnce whenever the workflow file
// itself changes on disk. Best-effort: a watch failure is reported and
// does not affect the exit code of the initial, already-successful
// validation (§6a).
func watchAndValidate(workflowPath string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		fmt.Printf("watch: unable to start: %s\n", err)
		return nil
	}
	defer watcher.Close()

	if err := watcher.Add(workflowPath); err != nil {
		fmt.Printf("watch: unable to watch %q: %s\n", workflowPath, err)
		return nil
	}

	fmt.Printf("watching %q for changes, ctrl-c to stop\n", workflowPath)
	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if err := validateOnce(workflowPath); err != nil {
				fmt.Printf("validate: %s\n", err)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fmt.Printf("watch: %s\n", err)
		}
	}
}
