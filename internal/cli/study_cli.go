package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/fatih/color"

	"github.com/at-ishikawa/lunaword/internal/library"
	"github.com/at-ishikawa/lunaword/internal/progress"
	"github.com/at-ishikawa/lunaword/internal/selection"
)

//go:generate mockgen -source=study_cli.go -destination=../mocks/cli/mock_study_cli.go -package=mock_cli

// Selector picks the next card of a session.
type Selector interface {
	NextLearn(ctx context.Context, username, filter string) (*library.WordCard, error)
	NextReview(ctx context.Context, username string) (*selection.ReviewItem, error)
}

// Recorder records what the learner did with a card.
type Recorder interface {
	RecordLearned(ctx context.Context, username, word string) (progress.Entry, error)
	RecordOutcome(ctx context.Context, username, word string, outcome progress.Outcome) (progress.Entry, error)
}

type Session interface {
	Session(context context.Context) error
}

var (
	errEnd = errors.New("end")
)

// StudyCLI contains shared logic for interactive learn and review sessions
type StudyCLI struct {
	username     string
	selector     Selector
	recorder     Recorder
	stdinReader  *bufio.Reader
	stdoutWriter io.Writer
	bold         *color.Color
	italic       *color.Color
	faint        *color.Color
}

func newStudyCLI(username string, selector Selector, recorder Recorder, stdin io.Reader, stdout io.Writer) *StudyCLI {
	if stdin == nil {
		stdin = os.Stdin
	}
	if stdout == nil {
		stdout = os.Stdout
	}
	return &StudyCLI{
		username:     username,
		selector:     selector,
		recorder:     recorder,
		stdinReader:  bufio.NewReader(stdin),
		stdoutWriter: stdout,
		bold:         color.New(color.Bold),
		italic:       color.New(color.Italic),
		faint:        color.New(color.Faint),
	}
}

func (cli *StudyCLI) Run(ctx context.Context, session Session) error {
	ctx, cancel := signal.NotifyContext(
		ctx,
		os.Interrupt,
	)
	defer cancel()

	errCh := make(chan error)
	go func() {
		defer close(errCh)

	LOOP:
		for {
			select {
			case <-ctx.Done():
				break LOOP
			default:
			}

			if err := session.Session(ctx); err != nil {
				if errors.Is(err, errEnd) {
					break
				}
				errCh <- err
				break
			}
		}
	}()
	select {
	case <-ctx.Done():
		fmt.Fprintln(cli.stdoutWriter, "Received interrupt signal, exiting...")
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("error: %w", err)
		}
	}
	return nil
}

// readLine returns the next trimmed input line. EOF ends the session.
func (cli *StudyCLI) readLine() (string, error) {
	line, err := cli.stdinReader.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line == "" {
			return "", errEnd
		}
		if !errors.Is(err, io.EOF) {
			return "", fmt.Errorf("error reading input: %w", err)
		}
	}
	return strings.TrimSpace(line), nil
}

func isQuit(input string) bool {
	return strings.EqualFold(input, "q") || strings.EqualFold(input, "quit")
}

func (cli *StudyCLI) printHeadline(card library.WordCard) {
	_, _ = cli.bold.Fprintf(cli.stdoutWriter, "%s", card.Word)
	if card.Phonetic != "" {
		fmt.Fprintf(cli.stdoutWriter, "  /%s/", card.Phonetic)
	}
	if card.Category != "" {
		_, _ = cli.faint.Fprintf(cli.stdoutWriter, "  [%s]", card.Category)
	}
	fmt.Fprintln(cli.stdoutWriter)
}

func (cli *StudyCLI) printDetails(card library.WordCard) {
	_, _ = cli.italic.Fprintf(cli.stdoutWriter, "%s\n", card.Meaning)
	if card.Mnemonic != "" {
		fmt.Fprintf(cli.stdoutWriter, "  Mnemonic: %s\n", card.Mnemonic)
	}
	if card.Roots != "" {
		fmt.Fprintf(cli.stdoutWriter, "  Roots: %s\n", card.Roots)
	}
	if len(card.Collocations) > 0 {
		fmt.Fprintf(cli.stdoutWriter, "  Collocations: %s\n", strings.Join(card.Collocations, ", "))
	}
	for i, sentence := range card.Sentences {
		fmt.Fprintf(cli.stdoutWriter, "  %d. %s\n", i+1, sentence.Text)
		if sentence.Translation != "" {
			_, _ = cli.faint.Fprintf(cli.stdoutWriter, "     %s\n", sentence.Translation)
		}
	}
}

func (cli *StudyCLI) printScheduled(entry progress.Entry) {
	fmt.Fprintf(cli.stdoutWriter, "Level %d, next review %s\n\n",
		entry.Level,
		entry.NextReviewAt().Local().Format(time.DateTime),
	)
}
