package bdsync

import (
	"context"

	"github.com/bits-and-blooms/bitset"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Plan describes the shape of a run before any block is read.
type Plan struct {
	Source     string
	Target     string
	SourceSize int64
	BlockSize  int
	FullBlocks int64
	// Remainder is the length of the trailing partial block, 0 if there is none.
	Remainder int
}

// NewPlan computes the working block size and block counts for a run.
func NewPlan(src Source, dst Target) (Plan, error) {
	bs, err := WorkingBlockSize(src.BlockSize, dst.BlockSize)
	if err != nil {
		return Plan{}, err
	}
	if src.Size < 0 {
		return Plan{}, errors.Errorf("%s: negative size %d", src.Name, src.Size)
	}

	full := src.Size / int64(bs)
	return Plan{
		Source:     src.Name,
		Target:     dst.Name,
		SourceSize: src.Size,
		BlockSize:  bs,
		FullBlocks: full,
		Remainder:  int(src.Size - full*int64(bs)),
	}, nil
}

// Blocks is the number of SyncBlock steps the run takes, remainder included.
func (p Plan) Blocks() int64 {
	if p.Remainder > 0 {
		return p.FullBlocks + 1
	}
	return p.FullBlocks
}

// Observer is told about a run as it progresses. Calls happen on the
// goroutine running Sync.
type Observer interface {
	Begin(plan Plan)
	Block(index int64, length int, outcome Outcome)
	End(report *Report)
}

type nopObserver struct{}

func (nopObserver) Begin(Plan)                {}
func (nopObserver) Block(int64, int, Outcome) {}
func (nopObserver) End(*Report)               {}

// Report summarizes a run. A run that failed returns the report up to the
// failing block.
type Report struct {
	Plan
	DryRun bool

	Patched       int64
	Unchanged     int64
	BytesCompared int64
	BytesWritten  int64

	// PatchedBlocks has bit i set when block i was patched.
	PatchedBlocks *bitset.BitSet
}

func (r *Report) record(index int64, length int, o Outcome) {
	r.BytesCompared += int64(length)
	if o == Unchanged {
		r.Unchanged++
		return
	}
	r.Patched++
	r.PatchedBlocks.Set(uint(index))
	if !r.DryRun {
		r.BytesWritten += int64(length)
	}
}

// Options tune a run.
type Options struct {
	// DryRun compares without writing.
	DryRun bool
	// Observer receives progress; nil discards it.
	Observer Observer
	// Logger receives per-block diagnostics; nil discards them.
	Logger *zap.Logger
}

// Sync makes dst hold the first src.Size bytes of src, writing only the
// blocks that differ. Both devices must be positioned at offset 0.
//
// ctx is checked between blocks; a cancelled context ends the run with
// ErrInterrupted. The first I/O error ends the run and leaves the target with
// whatever blocks were patched up to that point.
func Sync(ctx context.Context, src Source, dst Target, opts Options) (*Report, error) {
	plan, err := NewPlan(src, dst)
	if err != nil {
		return nil, err
	}

	obs := opts.Observer
	if obs == nil {
		obs = nopObserver{}
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	log = log.With(zap.String("source", src.Name), zap.String("target", dst.Name))

	srcBuf := make([]byte, plan.BlockSize)
	dstBuf := make([]byte, plan.BlockSize)

	report := &Report{
		Plan:          plan,
		DryRun:        opts.DryRun,
		PatchedBlocks: bitset.New(uint(plan.Blocks())),
	}

	log.Debug("starting run",
		zap.Int64("size", plan.SourceSize),
		zap.Int64("full_blocks", plan.FullBlocks),
		zap.Int("block_size", plan.BlockSize),
		zap.Int("remainder", plan.Remainder),
		zap.Bool("dry_run", opts.DryRun),
	)
	obs.Begin(plan)

	step := func(index int64, length int) error {
		if ctx.Err() != nil {
			return errors.Wrapf(ErrInterrupted, "before block %d", index)
		}

		o, err := SyncBlock(src, srcBuf, dst, dstBuf, length, opts.DryRun)
		if err != nil {
			return err
		}
		report.record(index, length, o)
		if o == Patched {
			log.Debug("block differs",
				zap.Int64("block", index),
				zap.Int64("offset", index*int64(plan.BlockSize)),
				zap.Int("length", length),
			)
		}
		obs.Block(index, length, o)
		return nil
	}

	for i := int64(0); i < plan.FullBlocks; i++ {
		if err := step(i, plan.BlockSize); err != nil {
			return report, err
		}
	}
	if plan.Remainder > 0 {
		if err := step(plan.FullBlocks, plan.Remainder); err != nil {
			return report, err
		}
	}

	obs.End(report)
	return report, nil
}
