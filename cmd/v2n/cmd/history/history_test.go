package history

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"voice-renamer/internal/app/testutil"
)

func seeded(t *testing.T) *testutil.MockRenameDAO {
	t.Helper()
	dao := testutil.NewMockRenameDAO()
	for _, r := range testutil.TestRenameRecords {
		_, err := dao.RecordRename(r)
		require.NoError(t, err)
	}
	other := testutil.TestRenameRecords[0]
	other.RunID = "other-run"
	_, err := dao.RecordRename(other)
	require.NoError(t, err)
	return dao
}

func TestQuery(t *testing.T) {
	dao := seeded(t)

	byRun, err := query(dao, testutil.TestRenameRecords[0].RunID, 1)
	require.NoError(t, err)
	assert.Len(t, byRun, 3, "limit does not apply to a single run")

	recent, err := query(dao, "", 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, "other-run", recent[0].RunID)
}

func TestPrint(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, Print(&out, testutil.TestRenameRecords))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 4)
	assert.Contains(t, lines[0], "NEW NAME")
	assert.Contains(t, lines[1], "6f1c2a7e ")
	assert.Contains(t, lines[2], "2_Call_the_dentist")
	assert.Contains(t, lines[3], "ERROR: unreadable audio")
}

func TestPrint_Empty(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, Print(&out, nil))
	assert.Equal(t, "No renames recorded yet\n", out.String())
}

func TestShortID(t *testing.T) {
	assert.Equal(t, "6f1c2a7e", shortID("6f1c2a7e-0d7b-4b8e-9a55-2b1f0c9d8e01"))
	assert.Equal(t, "abc", shortID("abc"))
}
