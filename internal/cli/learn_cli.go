package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/at-ishikawa/lunaword/internal/selection"
)

// LearnCLI shows unlearned cards of a category one by one
type LearnCLI struct {
	*StudyCLI
	filter  string
	learned int
}

func NewLearnCLI(username, filter string, selector Selector, recorder Recorder, stdin io.Reader, stdout io.Writer) *LearnCLI {
	return &LearnCLI{
		StudyCLI: newStudyCLI(username, selector, recorder, stdin, stdout),
		filter:   filter,
	}
}

// Learned returns how many cards were learned in this session.
func (r *LearnCLI) Learned() int {
	return r.learned
}

func (r *LearnCLI) Session(ctx context.Context) error {
	card, err := r.selector.NextLearn(ctx, r.username, r.filter)
	if err != nil {
		if errors.Is(err, selection.ErrNothingToLearn) {
			color.New(color.FgGreen).Fprintln(r.stdoutWriter, "Every word in this category has been learned!")
			return errEnd
		}
		return fmt.Errorf("selector.NextLearn() > %w", err)
	}

	r.printHeadline(*card)
	r.printDetails(*card)
	fmt.Fprint(r.stdoutWriter, "Press Enter when you have learned it, or q to quit: ")

	input, err := r.readLine()
	if err != nil {
		return err
	}
	if isQuit(input) {
		return errEnd
	}

	entry, err := r.recorder.RecordLearned(ctx, r.username, card.Word)
	if err != nil {
		return fmt.Errorf("recorder.RecordLearned(%s) > %w", card.Word, err)
	}
	r.learned++
	fmt.Fprint(r.stdoutWriter, "✅ ")
	r.printScheduled(entry)
	return nil
}
