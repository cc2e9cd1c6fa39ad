package canvas

// BoxStyle holds the characters of a rectangle outline.
type BoxStyle struct {
	TopLeft, TopRight       rune
	BottomLeft, BottomRight rune
	Horizontal, Vertical    rune
}

// PathStyle holds the characters of a routed connector.
type PathStyle struct {
	Horizontal, Vertical rune
	Corner               rune // used when CornerRunes is false
	CornerRunes          bool // pick ╭╮╰╯ by direction
	ArrowUp, ArrowRight  rune
	ArrowDown, ArrowLeft rune
}

var (
	// DefaultBoxStyle draws boxes with Unicode box-drawing characters.
	DefaultBoxStyle = BoxStyle{'┌', '┐', '└', '┘', '─', '│'}
	// ASCIIBoxStyle draws boxes with plain ASCII.
	ASCIIBoxStyle = BoxStyle{'+', '+', '+', '+', '-', '|'}

	// DefaultPathStyle draws connectors with rounded Unicode corners.
	DefaultPathStyle = PathStyle{
		Horizontal: '─', Vertical: '│', CornerRunes: true,
		ArrowUp: '▲', ArrowRight: '▶', ArrowDown: '▼', ArrowLeft: '◀',
	}
	// ASCIIPathStyle draws connectors with plain ASCII.
	ASCIIPathStyle = PathStyle{
		Horizontal: '-', Vertical: '|', Corner: '+',
		ArrowUp: '^', ArrowRight: '>', ArrowDown: 'v', ArrowLeft: '<',
	}
)
