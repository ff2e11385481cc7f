package hierarchy

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	billy "github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mattsolo1/grove-topics/pkg/models"
	"github.com/mattsolo1/grove-topics/pkg/selector"
)

// setupParent creates a notes root holding the given subdirectories and one
// plain file that must never be offered as an option.
func setupParent(t *testing.T, dirs ...string) (billy.Filesystem, string) {
	t.Helper()
	root := t.TempDir()
	for _, d := range dirs {
		require.NoError(t, os.Mkdir(filepath.Join(root, d), 0755))
	}
	require.NoError(t, os.WriteFile(filepath.Join(root, "README.md"), []byte("# notes"), 0644))
	return osfs.New("/"), root
}

func TestResolveExisting(t *testing.T) {
	fs, root := setupParent(t, "math", "physics")
	sel := selector.NewScripted(selector.Reply("physics"))

	res, err := NewResolver(fs, sel, nil).Resolve(context.Background(), root, models.LevelSubject)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(root, "physics"), res.Path)
	assert.Equal(t, "physics", res.Name)
	assert.False(t, res.Created)

	require.Len(t, sel.Calls, 1)
	assert.Equal(t, "select subject", sel.Calls[0].Prompt)
	assert.Equal(t, []string{"math", "physics"}, sel.Calls[0].Options)

	names, err := ListDirs(fs, root)
	require.NoError(t, err)
	assert.Equal(t, []string{"math", "physics"}, names)
}

func TestResolveCreateConfirmed(t *testing.T) {
	fs, root := setupParent(t, "math")
	sel := selector.NewScripted(selector.Reply("biology"), selector.Reply(selector.AnswerYes))

	res, err := NewResolver(fs, sel, nil).Resolve(context.Background(), root, models.LevelTopic)
	require.NoError(t, err)

	assert.True(t, res.Created)
	assert.Equal(t, filepath.Join(root, "biology"), res.Path)
	assert.DirExists(t, res.Path)

	require.Len(t, sel.Calls, 2)
	assert.Equal(t, "create new topic biology?", sel.Calls[1].Prompt)
	assert.Equal(t, []string{selector.AnswerYes, selector.AnswerNo}, sel.Calls[1].Options)
}

func TestResolveDeclineRestarts(t *testing.T) {
	tests := []struct {
		name    string
		decline selector.Answer
	}{
		{name: "answered no", decline: selector.Reply(selector.AnswerNo)},
		{name: "dismissed confirmation", decline: selector.Cancel()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs, root := setupParent(t, "math")
			sel := selector.NewScripted(
				selector.Reply("chemistry"),
				tt.decline,
				selector.Reply("math"),
			)

			res, err := NewResolver(fs, sel, nil).Resolve(context.Background(), root, models.LevelSubject)
			require.NoError(t, err)
			assert.Equal(t, "math", res.Name)
			assert.False(t, res.Created)

			// Back at the same prompt with the same listing, nothing created.
			require.Len(t, sel.Calls, 3)
			assert.Equal(t, sel.Calls[0], sel.Calls[2])
			assert.NoDirExists(t, filepath.Join(root, "chemistry"))
		})
	}
}

func TestResolveSelectionFailureIsFatal(t *testing.T) {
	tests := []struct {
		name    string
		answers []selector.Answer
	}{
		{
			name:    "cancelled at selection",
			answers: []selector.Answer{selector.Cancel()},
		},
		{
			name:    "chooser crashed at selection",
			answers: []selector.Answer{selector.Fail(errors.New("rofi: exit 3"))},
		},
		{
			name:    "chooser crashed at confirmation",
			answers: []selector.Answer{selector.Reply("new"), selector.Fail(errors.New("rofi: exit 3"))},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs, root := setupParent(t, "math")
			sel := selector.NewScripted(tt.answers...)

			res, err := NewResolver(fs, sel, nil).Resolve(context.Background(), root, models.LevelSubject)
			require.Error(t, err)
			assert.Nil(t, res)
			assert.True(t, models.IsKind(err, models.SelectionError))
			assert.NoDirExists(t, filepath.Join(root, "new"))
			assert.Equal(t, 0, sel.Remaining())
		})
	}
}

func TestResolveEmptyAnswerIsCancellation(t *testing.T) {
	fs, root := setupParent(t, "math")
	sel := selector.NewScripted(selector.Reply(""))

	res, err := NewResolver(fs, sel, nil).Resolve(context.Background(), root, models.LevelSubject)
	require.Error(t, err)
	assert.Nil(t, res)
	assert.True(t, models.IsKind(err, models.SelectionError))
	assert.ErrorIs(t, err, selector.ErrCancelled)
	assert.Len(t, sel.Calls, 1)
}

func TestResolveRejectsInvalidNames(t *testing.T) {
	fs, root := setupParent(t, "math")
	sel := selector.NewScripted(
		selector.Reply(".."),
		selector.Reply("a/b"),
		selector.Reply("."),
		selector.Reply("math"),
	)

	res, err := NewResolver(fs, sel, nil).Resolve(context.Background(), root, models.LevelSubject)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "math"), res.Path)
	assert.Len(t, sel.Calls, 4)
	for _, c := range sel.Calls {
		assert.Equal(t, "select subject", c.Prompt)
	}
}

func TestResolveCreateOverFileFails(t *testing.T) {
	fs, root := setupParent(t)
	sel := selector.NewScripted(selector.Reply("README.md"), selector.Reply(selector.AnswerYes))

	_, err := NewResolver(fs, sel, nil).Resolve(context.Background(), root, models.LevelTopic)
	require.Error(t, err)
	assert.True(t, models.IsKind(err, models.FilesystemError))
	assert.Contains(t, err.Error(), "create topic directory")
	assert.FileExists(t, filepath.Join(root, "README.md"))
}

func TestResolveMissingParent(t *testing.T) {
	fs, root := setupParent(t)
	sel := selector.NewScripted()

	_, err := NewResolver(fs, sel, nil).Resolve(context.Background(), filepath.Join(root, "gone"), models.LevelTopic)
	require.Error(t, err)
	assert.True(t, models.IsKind(err, models.FilesystemError))
	assert.Empty(t, sel.Calls)
}

func TestListDirsFollowsSymlinks(t *testing.T) {
	fs, root := setupParent(t, "real")
	require.NoError(t, os.Symlink(filepath.Join(root, "real"), filepath.Join(root, "linked")))
	require.NoError(t, os.Symlink(filepath.Join(root, "README.md"), filepath.Join(root, "readme-link")))

	names, err := ListDirs(fs, root)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"real", "linked"}, names)
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "selecting", StateSelecting.String())
	assert.Equal(t, "confirm-create", StateConfirmCreate.String())
	assert.Equal(t, "resolved", StateResolved.String())
	assert.Equal(t, "fatal", StateFatal.String())
}
