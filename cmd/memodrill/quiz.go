package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/coolbeans/memodrill/pkg/config"
	"github.com/coolbeans/memodrill/pkg/cube"
	"github.com/coolbeans/memodrill/pkg/logger"
	"github.com/coolbeans/memodrill/pkg/render"
	"github.com/coolbeans/memodrill/pkg/session"
	"github.com/coolbeans/memodrill/pkg/trainer"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// previewCols is the width of terminal previews in character cells.
const previewCols = 24

func quizCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "quiz",
		Short: "Drill memo letters for random edge or corner pieces",
		Long: `Shows random pieces and asks for their memo letter. Type the letter and
press enter; type "quit" to stop. Every answer is timed and, unless logging
is disabled, appended to a CSV log in the log directory.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			pieceStr, _ := cmd.Flags().GetString("type")
			piece, err := cube.ParsePieceType(pieceStr)
			if err != nil {
				return err
			}
			return runQuiz(cmd, a, piece)
		},
	}

	cmd.Flags().StringP("type", "t", "", "piece type: c (corner) or e (edge)")
	_ = cmd.MarkFlagRequired("type")
	cmd.Flags().Bool("no-log", false, "disable session logging")
	cmd.Flags().String("log-dir", "logs", "directory for session logs")
	cmd.Flags().Uint64("seed", 0, "random seed for a reproducible session (0 = random)")
	cmd.Flags().Bool("reveal", false, "show the correct letter after a wrong answer")
	cmd.Flags().String("preview", config.PreviewAuto, "piece preview: auto, ansi, text, none")
	a.bindFlags(cmd, map[string]string{
		"quiz.no_log":  "no-log",
		"quiz.log_dir": "log-dir",
		"quiz.seed":    "seed",
		"quiz.reveal":  "reveal",
		"quiz.preview": "preview",
	})

	return cmd
}

func runQuiz(cmd *cobra.Command, a *app, piece cube.PieceType) error {
	s := a.settings.Quiz
	out := cmd.OutOrStdout()

	sampler := trainer.NewRandomSampler(a.enc)
	if s.Seed != 0 {
		sampler = trainer.NewSampler(a.enc, s.Seed)
	}
	quiz := trainer.NewQuiz(a.enc, sampler)

	opts := trainer.RunnerOptions{
		Piece:     piece,
		Presenter: newPresenter(resolvePreview(s.Preview, out), out),
		Logger:    a.log,
		Reveal:    s.Reveal,
	}

	if s.NoLog {
		fmt.Fprintln(out, "Logging is disabled for this session.")
	} else {
		w, err := session.Create(s.LogDir, piece, time.Now())
		if err != nil {
			return err
		}
		defer w.Close()
		opts.Recorder = w
		fmt.Fprintf(out, "Logging this session to: %s\n", w.Path())
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	runner := trainer.NewRunner(quiz, opts)
	stats, err := runner.Run(ctx, cmd.InOrStdin(), out)
	a.log.Info("quiz ended",
		logger.String("session_id", runner.SessionID()),
		logger.Int("incorrect", stats.Incorrect))
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// resolvePreview turns "auto" into ansi on a terminal and text elsewhere.
func resolvePreview(mode string, out io.Writer) string {
	if mode != config.PreviewAuto {
		return mode
	}
	if f, ok := out.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return config.PreviewANSI
	}
	return config.PreviewText
}

func newPresenter(mode string, out io.Writer) trainer.Presenter {
	switch mode {
	case config.PreviewANSI:
		return trainer.PresenterFunc(func(p trainer.Prompt) error {
			fmt.Fprintln(out)
			return render.WriteANSI(out, p.Drawing, previewCols)
		})
	case config.PreviewText:
		return trainer.PresenterFunc(func(p trainer.Prompt) error {
			_, err := fmt.Fprintf(out, "\n%s\n", render.Describe(p.Drawing))
			return err
		})
	}
	return nil
}
