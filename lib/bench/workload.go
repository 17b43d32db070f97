package bench

import (
	randv2 "math/rand/v2"
)

const (
	defaultMostInserted            = 1_000_000
	defaultLargestRandomNum        = 10_000_000
	defaultNumRandomInserted       = 500_000
	defaultEveryDeletedImmediately = 5
	defaultEveryDeletedAfter       = 3
)

type Config struct {
	MostInserted      int
	LargestRandomNum  int
	NumRandomInserted int
	// Multiples of it are removed right after being inserted.
	EveryDeletedImmediately int
	// Multiples of it are removed after everything else was inserted.
	EveryDeletedAfter int
	Seed              uint64
	Workers           int
	// Divides the three sizes above, 1 keeps them.
	Scale int
}

func DefaultConfig() Config {
	return Config{
		MostInserted:            defaultMostInserted,
		LargestRandomNum:        defaultLargestRandomNum,
		NumRandomInserted:       defaultNumRandomInserted,
		EveryDeletedImmediately: defaultEveryDeletedImmediately,
		EveryDeletedAfter:       defaultEveryDeletedAfter,
		Workers:                 1,
		Scale:                   1,
	}
}

// scaled returns the effective sizes, never below one.
func (cfg Config) scaled() Config {
	res := cfg
	if res.Scale <= 1 {
		res.Scale = 1
	}
	shrink := func(n int) int {
		return max(n/res.Scale, 1)
	}
	res.MostInserted = shrink(cfg.MostInserted)
	res.LargestRandomNum = shrink(cfg.LargestRandomNum)
	res.NumRandomInserted = shrink(cfg.NumRandomInserted)
	res.EveryDeletedImmediately = max(cfg.EveryDeletedImmediately, 1)
	res.EveryDeletedAfter = max(cfg.EveryDeletedAfter, 1)
	res.Workers = max(cfg.Workers, 1)
	return res
}

// Workload returns the number of successful finds, so the lookups are
// observable work.
type Workload struct {
	Name string
	Run  func(cfg Config, c Collection) int
}

func Workloads() []Workload {
	return []Workload{
		{Name: "random-insert", Run: RandomInsert},
		{Name: "sequential-insert", Run: SequentialInsert},
		{Name: "complete-delete", Run: CompleteDelete},
		{Name: "partial-delete", Run: PartialDelete},
	}
}

// RandomInsert inserts pseudo random keys from [0, LargestRandomNum) and
// probes the whole key range. The same seed yields the same keys for every
// collection.
func RandomInsert(cfg Config, c Collection) int {
	rng := randv2.New(randv2.NewPCG(cfg.Seed, cfg.Seed))
	for i := 0; i < cfg.NumRandomInserted; i++ {
		c.Insert(rng.IntN(cfg.LargestRandomNum))
	}

	found := 0
	for i := 0; i < cfg.LargestRandomNum; i++ {
		if c.Find(i) {
			found++
		}
	}
	return found
}

func SequentialInsert(cfg Config, c Collection) int {
	for i := 0; i < cfg.MostInserted; i++ {
		c.Insert(i)
	}

	found := 0
	for i := 0; i < cfg.MostInserted; i++ {
		if c.Find(i) {
			found++
		}
	}
	return found
}

// CompleteDelete ends with an empty collection.
func CompleteDelete(cfg Config, c Collection) int {
	for i := 0; i < cfg.MostInserted; i++ {
		c.Insert(i)
		if i%cfg.EveryDeletedImmediately == 0 {
			c.Remove(i)
		}
	}

	found := 0
	for i := 0; i < cfg.MostInserted; i++ {
		if i%cfg.EveryDeletedImmediately == 0 {
			continue
		}
		if c.Find(i) {
			found++
		}
		c.Remove(i)
	}
	return found
}

func PartialDelete(cfg Config, c Collection) int {
	for i := 0; i < cfg.MostInserted; i++ {
		c.Insert(i)
		if i%cfg.EveryDeletedImmediately == 0 {
			c.Remove(i)
		}
	}

	for i := 0; i < cfg.MostInserted; i += cfg.EveryDeletedAfter {
		c.Remove(i)
	}

	found := 0
	for i := 0; i < cfg.MostInserted; i++ {
		if c.Find(i) {
			found++
		}
	}
	return found
}
