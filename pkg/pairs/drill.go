package pairs

import (
	"context"
	"fmt"
	"io"
	"math/rand/v2"
	"strings"

	"github.com/coolbeans/memodrill/pkg/logger"
	"github.com/coolbeans/memodrill/pkg/trainer"
	"github.com/schollz/progressbar/v3"
)

const (
	// DefaultMastery is the number of consecutive correct answers that
	// retires a pair.
	DefaultMastery = 3
)

// DrillOptions configures a Drill.
type DrillOptions struct {
	Mastery int
	Rand    *rand.Rand
	Logger  logger.Logger
	// Progress receives a progress bar of mastered pairs. Nil disables it.
	Progress io.Writer
	// Updates delivers reloaded pairs, usually from a Watcher.
	Updates <-chan []Pair
}

// DrillResult summarizes a finished drill.
type DrillResult struct {
	Attempts int
	Correct  int
	Mastered []string
	Quit     bool
}

type drillCard struct {
	image  string
	streak int
}

// Drill asks for the image of random pairs until each has been answered
// correctly Mastery times in a row. A wrong answer resets the pair's streak.
type Drill struct {
	opts   DrillOptions
	cards  map[string]*drillCard
	active []string
	log    logger.Logger
	bar    *progressbar.ProgressBar
}

// NewDrill prepares a drill over pairs.
func NewDrill(pairs []Pair, opts DrillOptions) *Drill {
	if opts.Mastery <= 0 {
		opts.Mastery = DefaultMastery
	}
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	log := opts.Logger
	if log == nil {
		log = logger.Discard()
	}

	d := &Drill{
		opts:  opts,
		cards: make(map[string]*drillCard),
		log:   log.Module("pairs"),
	}
	d.merge(pairs)
	if opts.Progress != nil {
		d.bar = progressbar.NewOptions(len(d.active),
			progressbar.OptionSetWriter(opts.Progress),
			progressbar.OptionSetDescription("mastered"),
			progressbar.OptionShowCount(),
		)
	}
	return d
}

// Remaining returns the number of pairs not yet mastered.
func (d *Drill) Remaining() int {
	return len(d.active)
}

// merge adds unseen pairs and refreshes the images of known ones. Mastered
// pairs keep their card and are not reactivated.
func (d *Drill) merge(pairs []Pair) (added int) {
	for _, p := range pairs {
		if p.Letters == "" {
			continue
		}
		if c, ok := d.cards[p.Letters]; ok {
			c.image = p.Image
			continue
		}
		d.cards[p.Letters] = &drillCard{image: p.Image}
		d.active = append(d.active, p.Letters)
		added++
	}
	return added
}

func (d *Drill) applyUpdates() {
	if d.opts.Updates == nil {
		return
	}
	for {
		select {
		case pairs, ok := <-d.opts.Updates:
			if !ok {
				d.opts.Updates = nil
				return
			}
			added := d.merge(pairs)
			if added > 0 && d.bar != nil {
				d.bar.ChangeMax(d.bar.GetMax() + added)
			}
			d.log.Info("pairs reloaded", logger.Int("added", added))
		default:
			return
		}
	}
}

func (d *Drill) retire(letters string) {
	for i, a := range d.active {
		if a == letters {
			d.active = append(d.active[:i], d.active[i+1:]...)
			break
		}
	}
}

// Run drills until every pair is mastered, the user types quit, input ends
// or ctx is cancelled. Answers are read from lines, which callers share
// across drills made from the same input.
func (d *Drill) Run(ctx context.Context, lines <-chan trainer.Line, out io.Writer) (DrillResult, error) {
	var res DrillResult

	for {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		d.applyUpdates()
		if len(d.active) == 0 {
			fmt.Fprintln(out, "All pairs mastered.")
			return res, nil
		}

		letters := d.active[d.opts.Rand.IntN(len(d.active))]
		card := d.cards[letters]

		fmt.Fprintf(out, "\nLetter pair: %s\n", letters)
		fmt.Fprint(out, "Your answer: ")
		text, ok, err := trainer.NextLine(ctx, lines)
		if !ok {
			return res, err
		}
		input := strings.TrimSpace(text)
		if strings.EqualFold(input, trainer.QuitCommand) {
			res.Quit = true
			return res, nil
		}

		res.Attempts++
		if CompareAnswers(card.image, input) {
			res.Correct++
			card.streak++
			fmt.Fprintln(out, "Correct!")
			if card.streak >= d.opts.Mastery {
				fmt.Fprintf(out, "You've mastered '%s'!\n", letters)
				d.retire(letters)
				res.Mastered = append(res.Mastered, letters)
				if d.bar != nil {
					if err := d.bar.Add(1); err != nil {
						d.log.Warn("progress bar update failed", logger.Error(err))
					}
				}
			}
		} else {
			card.streak = 0
			fmt.Fprintf(out, "Incorrect. The correct answer is: %s\n", card.image)
		}
		d.log.Debug("pair answered",
			logger.String("pair", letters),
			logger.Int("streak", card.streak))
	}
}
