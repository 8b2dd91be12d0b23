package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/csheth/mailtriage/internal/attachment"
	"github.com/csheth/mailtriage/internal/console"
	"github.com/csheth/mailtriage/internal/submission"
)

type classifyOptions struct {
	text      string
	file      string
	mediaType string
}

func newClassifyCmd(root *options) *cobra.Command {
	opts := &classifyOptions{}
	cmd := &cobra.Command{
		Use:   "classify",
		Short: "Classify one e-mail and print the category and suggested reply",
		Example: `  mailtriage classify --text "Can you send the Q3 report?"
  mailtriage classify --file ./mail.txt
  cat mail.txt | mailtriage classify --text -`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runClassify(cmd, root, opts)
		},
	}
	cmd.Flags().StringVar(&opts.text, "text", "", `e-mail body, or "-" to read it from stdin`)
	cmd.Flags().StringVar(&opts.file, "file", "", "attach a file; its content replaces --text")
	cmd.Flags().StringVar(&opts.mediaType, "type", "", "media type of --file (sniffed from content when empty)")
	return cmd
}

func runClassify(cmd *cobra.Command, root *options, opts *classifyOptions) error {
	input, err := opts.input(cmd.InOrStdin())
	if err != nil {
		return err
	}

	a, err := root.setup(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = a.close() }()

	panels := submission.NewPanels()
	controller := submission.New(a.client, panels.View(), submission.WithLogger(a.log))
	out := controller.Submit(cmd.Context(), input)
	a.log.Info("classify finished",
		zap.String("state", out.State.String()),
		zap.String("failure", out.Failure.String()),
		zap.Duration("duration", out.Duration),
	)

	failed, err := console.Render(cmd.OutOrStdout(), panels)
	if err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	if failed {
		return errClassifyFailed
	}
	return nil
}

func (o *classifyOptions) input(stdin io.Reader) (submission.Input, error) {
	if o.text == "" && o.file == "" {
		return submission.Input{}, errors.New("one of --text or --file is required")
	}
	var in submission.Input
	if o.text == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return submission.Input{}, fmt.Errorf("read stdin: %w", err)
		}
		in.Text = string(data)
	} else {
		in.Text = o.text
	}
	if path := strings.TrimSpace(o.file); path != "" {
		file, err := attachment.FromPath(path, o.mediaType)
		if err != nil {
			return submission.Input{}, err
		}
		in.File = file
	}
	return in, nil
}
