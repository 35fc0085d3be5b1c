package symtab

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestScopeHygiene(t *testing.T) {
	tbl := New()
	tbl.EnterScope()
	require.True(t, tbl.Insert("a", &Binding{StorageName: "@a_1"}))

	tbl.EnterScope()
	require.True(t, tbl.Insert("a", &Binding{StorageName: "@a_2"}))
	b, ok := tbl.Probe("a")
	require.True(t, ok)
	require.Equal(t, "@a_2", b.StorageName)
	tbl.ExitScope()

	b, ok = tbl.Probe("a")
	require.True(t, ok)
	require.Equal(t, "@a_1", b.StorageName)
	tbl.ExitScope()
}

func TestInsertDuplicateSameScopeFails(t *testing.T) {
	tbl := New()
	tbl.EnterScope()
	require.True(t, tbl.Insert("a", &Binding{}))
	require.False(t, tbl.Insert("a", &Binding{}))
}

func TestNamesDeduplicatesShadowed(t *testing.T) {
	tbl := New()
	tbl.EnterScope()
	tbl.Insert("a", &Binding{})
	tbl.Insert("b", &Binding{})
	tbl.EnterScope()
	tbl.Insert("a", &Binding{})
	tbl.Insert("c", &Binding{})
	require.Equal(t, []string{"a", "b", "c"}, tbl.Names())
}

func TestLookupTopOnly(t *testing.T) {
	tbl := New()
	tbl.EnterScope()
	tbl.Insert("a", &Binding{})
	tbl.EnterScope()
	_, ok := tbl.Lookup("a")
	require.False(t, ok)
	_, ok = tbl.Probe("a")
	require.True(t, ok)
}
