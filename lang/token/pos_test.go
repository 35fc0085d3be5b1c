package token

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMakePosLineCol(t *testing.T) {
	p := MakePos(3, 7)
	line, col := p.LineCol()
	require.Equal(t, 3, line)
	require.Equal(t, 7, col)
}

func TestPosUnknown(t *testing.T) {
	var zero Pos
	require.True(t, zero.Unknown())
	require.False(t, zero.IsValid())

	p := MakePos(1, 1)
	require.False(t, p.Unknown())
	require.True(t, p.IsValid())
}

func TestPositionString(t *testing.T) {
	p := Position{Filename: "a.sy", Line: 2, Col: 5}
	require.Equal(t, "a.sy:2:5", p.String())

	var zero Position
	require.Equal(t, "<input>", zero.String())
}

func TestFilePosAndPositionRoundTrip(t *testing.T) {
	src := "int main() {\n  return 0;\n}\n"
	fs := NewFileSet()
	f := fs.AddFile("test.sy", len(src))
	for i, c := range src {
		if c == '\n' {
			f.AddLine(i + 1)
		}
	}

	p := f.Pos(15) // inside "return" on line 2
	pos := f.Position(p)
	require.Equal(t, "test.sy", pos.Filename)
	require.Equal(t, 2, pos.Line)
}

func TestFileSetLookup(t *testing.T) {
	fs := NewFileSet()
	f := fs.AddFile("x.sy", 10)
	require.Same(t, f, fs.File("x.sy"))
	require.Nil(t, fs.File("nope.sy"))
}
