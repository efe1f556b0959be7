package route

import (
	"testing"

	"github.com/stretchr/testify/require"

	derrors "git.home.luguber.info/inful/docresolve/internal/errors"
)

func TestAssemble_JoinsPathKeysInDeclarationOrder(t *testing.T) {
	segs := Segments{{"path", "a"}, {"path1", "b"}, {"path2", "c"}}

	got, err := Assemble(segs)
	require.NoError(t, err)
	require.Equal(t, "a/b/c", got)
}

func TestAssemble_KeepsDeclarationOrderNotDigitOrder(t *testing.T) {
	segs := Segments{{"path2", "c"}, {"path", "a"}, {"path1", "b"}}

	got, err := Assemble(segs)
	require.NoError(t, err)
	require.Equal(t, "c/a/b", got)
}

func TestAssemble_IgnoresNonPathKeys(t *testing.T) {
	segs := Segments{{"lang", "en"}, {"path", "guide"}, {"pathx", "nope"}, {"xpath", "nope"}, {"path10", "intro"}}

	got, err := Assemble(segs)
	require.NoError(t, err)
	require.Equal(t, "guide/intro", got)
}

func TestAssemble_NoMatchingKeysReturnsEmpty(t *testing.T) {
	for _, segs := range []Segments{nil, {}, {{"lang", "en"}, {"id", "7"}}} {
		got, err := Assemble(segs)
		require.NoError(t, err)
		require.Empty(t, got)
	}
}

func TestAssemble_MissingValueIsInvalidRequest(t *testing.T) {
	_, err := Assemble(FromParams([]string{"path", "path1"}, []string{"guide"}))
	require.Error(t, err)
	require.True(t, derrors.IsCategory(err, derrors.CategoryValidation))
	require.NotContains(t, err.Error(), "undefined")
}

func TestFromParams_PairsPositionally(t *testing.T) {
	segs := FromParams([]string{"path", "path1"}, []string{"a", "b", "extra"})
	require.Equal(t, Segments{{"path", "a"}, {"path1", "b"}}, segs)
}

func TestDocumentFilename(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"guide", "guide.md"},
		{"guide/intro.html", "guide/intro.md"},
		{"guide/intro.md", "guide/intro.md"},
		{"v1.2/notes", "v1.2/notes.md"},
		{"archive.tar.gz", "archive.tar.md"},
		{"", IndexDocument},
	}
	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			require.Equal(t, tc.want, DocumentFilename(tc.in))
		})
	}
}
