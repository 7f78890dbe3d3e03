package main

import (
	"context"
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/cx-luo/molstack/internal/logging"
	"github.com/cx-luo/molstack/internal/workflow"
)

func newRunCommand() *cobra.Command {
	var workflowPath string
	var checkpointPrefix string
	var workers int
	var verbose bool

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Execute a workflow file from the beginning",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWorkflow(cmd.Context(), workflowPath, checkpointPrefix, workers, verbose, false)
		},
	}

	cmd.Flags().StringVar(&workflowPath, "workflow", "", "path to the workflow YAML file (required)")
	cmd.Flags().StringVar(&checkpointPrefix, "checkpoint-prefix", "", "checkpoint file prefix (disables checkpointing if empty)")
	cmd.Flags().IntVar(&workers, "workers", runtime.NumCPU(), "data-parallel worker count per step")
	cmd.Flags().BoolVar(&verbose, "verbose", false, "enable debug logging")
	cmd.MarkFlagRequired("workflow")

	return cmd
}

func newResumeCommand() *cobra.Command {
	var checkpointPrefix string
	var workflowPath string
	var workers int
	var verbose bool

	cmd := &cobra.Command{
		Use:   "resume",
		Short: "Resume a workflow from its last successful checkpoint",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWorkflow(cmd.Context(), workflowPath, checkpointPrefix, workers, verbose, true)
		},
	}

	cmd.Flags().StringVar(&workflowPath, "workflow", "", "path to the workflow YAML file (required)")
	cmd.Flags().StringVar(&checkpointPrefix, "checkpoint-prefix", "", "checkpoint file prefix (required)")
	cmd.Flags().IntVar(&workers, "workers", runtime.NumCPU(), "data-parallel worker count per step")
	cmd.Flags().BoolVar(&verbose, "verbose", false, "enable debug logging")
	cmd.MarkFlagRequired("workflow")
	cmd.MarkFlagRequired("checkpoint-prefix")

	return cmd
}

func runWorkflow(ctx context.Context, workflowPath, checkpointPrefix string, workers int, verbose, resume bool) error {
	file, err := workflow.LoadFile(workflowPath)
	if err != nil {
		return err
	}

	logger, err := logging.New(verbose)
	if err != nil {
		return fmt.Errorf("molstack: building logger: %w", err)
	}
	defer logger.Sync()

	_, err = workflow.Run(ctx, file, workflow.Options{
		Logger:           logger,
		Workers:          workers,
		CheckpointPrefix: checkpointPrefix,
		Resume:           resume,
	})
	return err
}
