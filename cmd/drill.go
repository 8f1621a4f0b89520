package cmd

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/karim/itqan/internal/content"
	"github.com/karim/itqan/internal/encompass"
	"github.com/karim/itqan/internal/practice"
	"github.com/karim/itqan/internal/store"
	"github.com/karim/itqan/internal/strength"
)

var drillCmd = &cobra.Command{
	Use:   "drill [lesson-id]",
	Short: "Practice a lesson's exercises at the terminal",
	Long: "Runs the retry practice protocol over one lesson: wrong answers " +
		"earn progressively revealing hints across five attempts, strength " +
		"scores update on each exercise's final outcome, and related items " +
		"receive partial credit through the encompassing graph.",
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		log, err := newLogger(cmd)
		if err != nil {
			return err
		}
		defer log.Sync()

		cat, err := content.LoadCatalog(cfg.CatalogPath)
		if err != nil {
			return err
		}
		lesson, err := pickLesson(cat, args)
		if err != nil {
			return err
		}

		st, err := openStore(cmd, cfg, log)
		if err != nil {
			return err
		}
		defer st.Close()
		ctx := cmd.Context()

		recs, err := st.StrengthRepo().All(ctx)
		if err != nil {
			return err
		}
		svc := strength.NewService(recs)

		// The graph is optional for drilling; without it correct answers
		// simply earn no implicit credit.
		var g *encompass.Graph
		if raw, err := st.GraphRepo().Latest(ctx); err != nil {
			return err
		} else if raw != nil {
			if g, err = encompass.UnmarshalGraph(raw); err != nil {
				return err
			}
		}

		sess := practice.NewSession(lesson.Exercises)
		out := cmd.OutOrStdout()
		in := bufio.NewScanner(cmd.InOrStdin())

		fmt.Fprintf(out, "Lesson %s: %d exercises\n\n", lesson.ID, len(lesson.Exercises))

		for !sess.IsComplete() {
			ex := sess.Current()
			printPrompt(out, ex)

			if !in.Scan() {
				break
			}
			answer := strings.TrimSpace(in.Text())

			correct := content.CheckAnswer(answer, *ex)
			sess.RecordAnswer(correct, answer, nil)

			last := sess.Results[len(sess.Results)-1]
			if err := st.ResultRepo().Append(ctx, store.AnswerEvent{
				SessionID:  sess.ID,
				ExerciseID: ex.ID,
				ItemIDs:    ex.ItemIDs,
				Correct:    last.Correct,
				WasRetry:   last.WasRetry,
			}); err != nil {
				return err
			}

			switch sess.Outcome {
			case practice.OutcomeCorrect:
				fmt.Fprintf(out, "Correct! (streak %d)\n\n", sess.Streak)
				applyStrength(svc, ex, true, g)
				sess.AdvanceToNext()
			case practice.OutcomeRetryable:
				h := sess.CurrentHint()
				fmt.Fprintln(out, h.Message)
				if h.HintText != "" {
					fmt.Fprintf(out, "Hint: %s\n", h.HintText)
				}
				fmt.Fprintln(out)
				sess.RetryExercise()
			case practice.OutcomeExhausted:
				fmt.Fprintf(out, "The answer was: %s\n\n", ex.Answer)
				applyStrength(svc, ex, false, nil)
				sess.AdvanceToNext()
			}
		}
		if err := in.Err(); err != nil {
			return fmt.Errorf("read input: %w", err)
		}

		if err := st.StrengthRepo().UpsertAll(ctx, svc.Records()); err != nil {
			return err
		}
		log.Info("drill finished",
			zap.String("session", sess.ID),
			zap.String("lesson", lesson.ID),
			zap.Int("results", len(sess.Results)))

		printSummary(out, sess)
		return nil
	},
}

// pickLesson resolves the lesson argument, defaulting to the first
// lesson that has exercises.
func pickLesson(cat *content.Catalog, args []string) (*content.Lesson, error) {
	if len(args) == 1 {
		for i := range cat.Lessons {
			if cat.Lessons[i].ID == args[0] {
				return &cat.Lessons[i], nil
			}
		}
		return nil, fmt.Errorf("lesson %q not in catalog", args[0])
	}
	for i := range cat.Lessons {
		if len(cat.Lessons[i].Exercises) > 0 {
			return &cat.Lessons[i], nil
		}
	}
	return nil, fmt.Errorf("catalog has no exercises to drill")
}

func printPrompt(out io.Writer, ex *content.Exercise) {
	fmt.Fprintf(out, "[%s] %s\n", ex.Kind, ex.Prompt)
	for i, c := range ex.Choices {
		fmt.Fprintf(out, "  %d. %s\n", i+1, c)
	}
	fmt.Fprint(out, "> ")
}

// applyStrength records the exercise's final outcome against each of
// its items. Only correct outcomes propagate implicit credit.
func applyStrength(svc *strength.Service, ex *content.Exercise, correct bool, g *encompass.Graph) {
	now := time.Now()
	for _, itemID := range ex.ItemIDs {
		svc.RecordAnswer(itemID, correct, ex.IsChallenge(), now)
		if correct {
			svc.ApplyImplicitCredit(itemID, g)
		}
	}
}

func printSummary(out io.Writer, sess *practice.Session) {
	fmt.Fprintf(out, "Session complete: %d%% accuracy, best streak %d\n",
		sess.Accuracy(), sess.BestStreak)
	if missed := sess.IncorrectExercises(); len(missed) > 0 {
		fmt.Fprintln(out, "Worth revisiting:")
		for _, ex := range missed {
			fmt.Fprintf(out, "  %s — %s\n", ex.Prompt, ex.Answer)
		}
	}
}
