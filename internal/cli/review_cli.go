package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/at-ishikawa/lunaword/internal/progress"
	"github.com/at-ishikawa/lunaword/internal/selection"
)

// ReviewCLI asks the learner about due cards until none is left
type ReviewCLI struct {
	*StudyCLI
	reviewed int
}

func NewReviewCLI(username string, selector Selector, recorder Recorder, stdin io.Reader, stdout io.Writer) *ReviewCLI {
	return &ReviewCLI{
		StudyCLI: newStudyCLI(username, selector, recorder, stdin, stdout),
	}
}

// Reviewed returns how many cards were reviewed in this session.
func (r *ReviewCLI) Reviewed() int {
	return r.reviewed
}

var outcomeKeys = map[string]progress.Outcome{
	"1": progress.OutcomeForgot,
	"2": progress.OutcomeRemembered,
	"3": progress.OutcomeTooEasy,
}

func parseOutcomeInput(input string) (progress.Outcome, error) {
	if outcome, ok := outcomeKeys[input]; ok {
		return outcome, nil
	}
	return progress.ParseOutcome(input)
}

func (r *ReviewCLI) Session(ctx context.Context) error {
	item, err := r.selector.NextReview(ctx, r.username)
	if err != nil {
		if errors.Is(err, selection.ErrNothingToReview) {
			color.New(color.FgGreen).Fprintln(r.stdoutWriter, "Nothing to review right now!")
			return errEnd
		}
		return fmt.Errorf("selector.NextReview() > %w", err)
	}
	card := item.Card

	_, _ = r.faint.Fprintf(r.stdoutWriter, "(%d due)\n", item.Remaining)
	r.printHeadline(card)
	fmt.Fprint(r.stdoutWriter, "Press Enter to show the card, or q to quit: ")
	input, err := r.readLine()
	if err != nil {
		return err
	}
	if isQuit(input) {
		return errEnd
	}
	r.printDetails(card)

	var outcome progress.Outcome
	for {
		fmt.Fprint(r.stdoutWriter, "[1] forgot  [2] remembered  [3] too easy: ")
		input, err := r.readLine()
		if err != nil {
			return err
		}
		if isQuit(input) {
			return errEnd
		}
		outcome, err = parseOutcomeInput(input)
		if err == nil {
			break
		}
		color.New(color.FgRed).Fprintf(r.stdoutWriter, "Unknown answer %q\n", input)
	}

	entry, err := r.recorder.RecordOutcome(ctx, r.username, card.Word, outcome)
	if err != nil {
		return fmt.Errorf("recorder.RecordOutcome(%s, %s) > %w", card.Word, outcome, err)
	}
	r.reviewed++
	if outcome == progress.OutcomeForgot {
		fmt.Fprint(r.stdoutWriter, "❌ ")
	} else {
		fmt.Fprint(r.stdoutWriter, "✅ ")
	}
	r.printScheduled(entry)
	return nil
}
