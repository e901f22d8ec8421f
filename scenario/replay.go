package scenario

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"slices"
	"time"

	"github.com/hupe1980/mtree"
	"github.com/hupe1980/mtree/split"
	"github.com/hupe1980/mtree/testutil"
)

var (
	ErrMismatch      = errors.New("query result mismatch")
	ErrAddMismatch   = errors.New("add result mismatch")
	ErrRemoveFailed  = errors.New("remove of a stored point failed")
	ErrUnknownPolicy = errors.New("unknown split policy")
)

// Promotion and partition names accepted by PolicyByName.
const (
	PromotionMinMax      = "minmax"
	PromotionRandom      = "random"
	PromotionMaxDistance = "maxdistance"

	PartitionBalanced   = "balanced"
	PartitionHyperplane = "hyperplane"
)

// PolicyByName resolves a split policy for points. seed drives random
// promotion.
func PolicyByName(promotion, partition string, seed uint64) (split.Policy[Point], error) {
	var p split.Policy[Point]

	switch promotion {
	case PromotionMinMax:
		p.Promote = split.MinMaxPromotion(Compare)
	case PromotionRandom:
		p.Promote = split.RandomPromotion[Point](rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)))
	case PromotionMaxDistance:
		p.Promote = split.MaxDistancePromotion[Point]()
	default:
		return p, fmt.Errorf("%w: promotion %q", ErrUnknownPolicy, promotion)
	}

	switch partition {
	case PartitionBalanced:
		p.Partition = split.BalancedPartition[Point]()
	case PartitionHyperplane:
		p.Partition = split.HyperplanePartition[Point]()
	default:
		return p, fmt.Errorf("%w: partition %q", ErrUnknownPolicy, partition)
	}

	return p, nil
}

// Options configures Replay.
type Options struct {
	MaxCapacity int
	MinCapacity int
	Policy      split.Policy[Point]
	Logger      *mtree.Logger
	Metrics     mtree.MetricsCollector

	// AfterAction, when set, runs after every mutation, before the queries.
	AfterAction func(step int, tree *mtree.Tree[Point]) error
}

// DefaultOptions replays with capacity 2, min/max promotion and balanced
// partition, which makes tree shapes fully deterministic.
func DefaultOptions() Options {
	return Options{
		MaxCapacity: 2,
		MinCapacity: -1,
		Policy: split.Policy[Point]{
			Promote:   split.MinMaxPromotion(Compare),
			Partition: split.BalancedPartition[Point](),
		},
	}
}

// Report summarizes a replay.
type Report struct {
	Fixture  string
	Actions  int
	Adds     int
	Removes  int
	Queries  int
	Results  int
	Size     int
	Height   int
	Duration time.Duration
}

// Replay runs fx against a fresh tree and compares every query answer,
// including distances and tie order, with a linear scan. It stops at the
// first discrepancy or when ctx is done.
func Replay(ctx context.Context, fx *Fixture, opts Options) (Report, error) {
	start := time.Now()
	report := Report{Fixture: fx.Name}

	tree, err := mtree.New(Distance, opts.Policy,
		mtree.WithNodeCapacity(opts.MaxCapacity, opts.MinCapacity),
		mtree.WithLogger(opts.Logger),
		mtree.WithMetricsCollector(opts.Metrics),
	)
	if err != nil {
		return report, fmt.Errorf("failed to create tree: %w", err)
	}

	// live keeps insertion order, which is the tree's tie order.
	var live []Point

	for i, a := range fx.Actions {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		p := NewPoint(a.Data...)
		switch a.Cmd {
		case CmdAdd:
			stored := slices.Contains(live, p)
			if added := tree.Add(p); added == stored {
				return report, fmt.Errorf("action %d: %w: add %v returned %t", i, ErrAddMismatch, p, added)
			}
			if !stored {
				live = append(live, p)
			}
			report.Adds++
		case CmdRemove:
			if !tree.Remove(p) {
				return report, fmt.Errorf("action %d: %w: %v", i, ErrRemoveFailed, p)
			}
			live = slices.DeleteFunc(live, func(q Point) bool { return q == p })
			report.Removes++
		default:
			return report, fmt.Errorf("action %d: %w %q", i, ErrUnknownCommand, a.Cmd)
		}
		report.Actions++

		if opts.AfterAction != nil {
			if err := opts.AfterAction(i, tree); err != nil {
				return report, fmt.Errorf("action %d: %w", i, err)
			}
		}

		q := NewPoint(a.Query...)

		got := slices.Collect(tree.RangeQuery(q, a.Radius))
		if err := compareResults(got, testutil.ExactRange(live, q, a.Radius, Distance)); err != nil {
			return report, fmt.Errorf("action %d: range %v r=%g: %w", i, q, a.Radius, err)
		}
		report.Results += len(got)

		got = slices.Collect(tree.LimitQuery(q, a.Limit))
		if err := compareResults(got, testutil.ExactLimit(live, q, a.Limit, Distance)); err != nil {
			return report, fmt.Errorf("action %d: limit %v k=%d: %w", i, q, a.Limit, err)
		}
		report.Results += len(got)
		report.Queries += 2
	}

	report.Size = tree.Len()
	report.Height = tree.Height()
	report.Duration = time.Since(start)
	return report, nil
}

func compareResults(got []mtree.Result[Point], want []testutil.Match[Point]) error {
	if len(got) != len(want) {
		return fmt.Errorf("%w: %d results, want %d", ErrMismatch, len(got), len(want))
	}
	for i := range got {
		if got[i].Object != want[i].Object || got[i].Distance != want[i].Distance {
			return fmt.Errorf("%w: result %d is %v at %g, want %v at %g",
				ErrMismatch, i, got[i].Object, got[i].Distance, want[i].Object, want[i].Distance)
		}
	}
	return nil
}
