package scanner

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sysy-lang/sysyc/lang/token"
)

func TestScanFile(t *testing.T) {
	src := `int main() {
  const int a = 0x1A; // hex literal
  /* block comment */
  if (a >= 1 && a != 2) return a % 3;
  return 010;
}
`
	_, vals, toks, err := ScanFile("t.sy", []byte(src))
	require.NoError(t, err)
	require.Equal(t, token.EOF, toks[len(toks)-1])

	var got []token.Token
	for _, tk := range toks {
		if tk != token.EOF {
			got = append(got, tk)
		}
	}
	require.Contains(t, got, token.INT_KW)
	require.Contains(t, got, token.CONST)
	require.Contains(t, got, token.GE)
	require.Contains(t, got, token.LAND)
	require.Contains(t, got, token.NEQ)
	require.Contains(t, got, token.PERCENT)

	for i, tk := range toks {
		if tk == token.INT {
			switch vals[i].Raw {
			case "0x1A":
				require.EqualValues(t, 26, vals[i].Int)
			case "010":
				require.EqualValues(t, 8, vals[i].Int)
			case "3":
				require.EqualValues(t, 3, vals[i].Int)
			}
		}
	}
}

func TestScanFileIllegalChar(t *testing.T) {
	_, _, _, err := ScanFile("t.sy", []byte("int main() { return 1 @ 2; }"))
	require.Error(t, err)
}

func TestScanFileUnterminatedComment(t *testing.T) {
	_, _, _, err := ScanFile("t.sy", []byte("int main() { /* oops"))
	require.Error(t, err)
}
