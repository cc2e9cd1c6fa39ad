package canvas

// CharacterMerger handles the merging of two characters at the same position.
type CharacterMerger struct {
	mergeMap map[mergePair]rune
}

type mergePair struct {
	existing rune
	new      rune
}

// NewCharacterMerger creates a merger with the line-crossing rules of both
// box-drawing styles.
func NewCharacterMerger() *CharacterMerger {
	m := &CharacterMerger{
		mergeMap: make(map[mergePair]rune),
	}
	m.add('─', '│', '┼')
	m.add('┌', '─', '┬')
	m.add('┐', '─', '┬')
	m.add('└', '─', '┴')
	m.add('┘', '─', '┴')
	m.add('┌', '│', '├')
	m.add('└', '│', '├')
	m.add('┐', '│', '┤')
	m.add('┘', '│', '┤')
	m.add('-', '|', '+')
	m.add('-', '+', '+')
	m.add('|', '+', '+')
	return m
}

func (m *CharacterMerger) add(a, b, merged rune) {
	m.mergeMap[mergePair{a, b}] = merged
	m.mergeMap[mergePair{b, a}] = merged
}

// Merge combines two characters according to box-drawing rules.
// Arrow heads are never overwritten.
func (m *CharacterMerger) Merge(existing, new rune) rune {
	if existing == ' ' || existing == '\x00' {
		return new
	}
	if existing == new {
		return existing
	}
	if isArrow(existing) {
		return existing
	}
	if isArrow(new) {
		return new
	}
	if merged, ok := m.mergeMap[mergePair{existing, new}]; ok {
		return merged
	}
	// keep what is there
	return existing
}

func isArrow(r rune) bool {
	switch r {
	case '▶', '◀', '▲', '▼', '>', '<', '^', 'v':
		return true
	}
	return false
}
