package domain

// BlockKind labels a timeline block for renderers.
type BlockKind string

const (
	BlockFocus BlockKind = "focus"
	BlockFixed BlockKind = "fixed"
	BlockBreak BlockKind = "break"
	BlockLight BlockKind = "light"
	BlockPrep  BlockKind = "prep"
	BlockWind  BlockKind = "wind"
)

// Block is one interval of the day's timeline.
type Block struct {
	Start Minute    `json:"start" yaml:"start"`
	End   Minute    `json:"end" yaml:"end"`
	Label string    `json:"label" yaml:"label"`
	Kind  BlockKind `json:"type" yaml:"type"`
}

// Duration returns the block length in minutes.
func (b Block) Duration() int {
	return int(b.End - b.Start)
}

// Block lengths and gates used by the builder.
const (
	breakMinutes   = 10
	gymPrepMinimum = 15
	deepWorkGate   = GymStart - 20
	satReviewGate  = HeavyThinkingCutoff - 30
	breakLabel     = "Break (5-10 min)"
)

// draft is a block whose position is decided by the fold.
type draft struct {
	label    string
	duration Minute
	kind     BlockKind
}

// timelineStep proposes drafts for the cursor it is given.
type timelineStep func(cursor Minute, done Completion) []draft

func focusWithBreak(label string, duration Minute) []draft {
	return []draft{
		{label: label, duration: duration, kind: BlockFocus},
		{label: breakLabel, duration: breakMinutes, kind: BlockBreak},
	}
}

var timelineSteps = []timelineStep{
	func(cursor Minute, done Completion) []draft {
		if cursor < deepWorkGate && !done.SAT {
			return focusWithBreak("SAT deep work", 75)
		}
		return nil
	},
	func(cursor Minute, done Completion) []draft {
		if cursor < deepWorkGate && !done.Homework {
			return focusWithBreak("Homework block", 60)
		}
		return nil
	},
	func(cursor Minute, done Completion) []draft {
		if done.Gym {
			return nil
		}
		var drafts []draft
		if cursor < GymStart {
			// The floor can push the gym block past GymStart; that shift is kept.
			prep := max(GymStart-cursor, gymPrepMinimum)
			drafts = append(drafts, draft{label: "Prep for gym", duration: prep, kind: BlockPrep})
		}
		return append(drafts,
			draft{label: "Gym (fixed at 17:00)", duration: 60, kind: BlockFixed},
			draft{label: breakLabel, duration: breakMinutes, kind: BlockBreak},
		)
	},
	func(cursor Minute, done Completion) []draft {
		if !done.SAT && cursor < satReviewGate {
			return focusWithBreak("SAT review / mistakes log", 45)
		}
		return nil
	},
	func(cursor Minute, done Completion) []draft {
		if !done.Reading && cursor < HeavyThinkingCutoff {
			return []draft{{label: "Read Atomic Habits", duration: 20, kind: BlockLight}}
		}
		return nil
	},
	func(cursor Minute, done Completion) []draft {
		if !done.Life && cursor < HeavyThinkingCutoff {
			return []draft{{label: "Life habits & responsibilities", duration: 20, kind: BlockLight}}
		}
		return nil
	},
	func(cursor Minute, _ Completion) []draft {
		if cursor < HeavyThinkingCutoff {
			return []draft{{label: "Easy admin / prep for tomorrow", duration: HeavyThinkingCutoff - cursor, kind: BlockLight}}
		}
		return nil
	},
	func(cursor Minute, _ Completion) []draft {
		return []draft{{label: "Wind down & sleep routine", duration: SleepStart - cursor, kind: BlockWind}}
	},
}

// place clamps a draft at cursor. It returns false when nothing fits.
func place(cursor Minute, d draft) (Block, bool) {
	if cursor >= SleepStart {
		return Block{}, false
	}
	end := min(cursor+d.duration, SleepStart)
	if end <= cursor {
		return Block{}, false
	}
	return Block{Start: cursor, End: end, Label: d.label, Kind: d.kind}, true
}

// placeAll lays drafts end to end from cursor and returns the advanced cursor.
func placeAll(cursor Minute, drafts []draft) ([]Block, Minute) {
	var blocks []Block
	for _, d := range drafts {
		block, ok := place(cursor, d)
		if !ok {
			continue
		}
		blocks = append(blocks, block)
		cursor = block.End
	}
	return blocks, cursor
}

// BuildTimeline partitions [now, SleepStart) into contiguous labelled blocks.
func BuildTimeline(now Minute, done Completion) []Block {
	blocks := make([]Block, 0, 16)
	cursor := now
	for _, step := range timelineSteps {
		var placed []Block
		placed, cursor = placeAll(cursor, step(cursor, done))
		blocks = append(blocks, placed...)
	}
	return blocks
}
