package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/t0sync/internal/store"
	"github.com/roach88/t0sync/internal/tzsync"
)

func TestStatsJSON(t *testing.T) {
	opts := testOptions("json")
	opts.Database = seedLog(t)

	out, err := execute(NewStatsCommand(opts))
	require.NoError(t, err)

	var resp struct {
		Status string      `json:"status"`
		Data   StatsResult `json:"data"`
	}
	decodeJSON(t, out, &resp)
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, int64(4), resp.Data.Total)
	assert.Equal(t, int64(2), resp.Data.ByStatus[tzsync.StatusSuccess])
	assert.Equal(t, int64(1), resp.Data.ByStatus[tzsync.StatusInvalidLocalTime])
	assert.Equal(t, int64(0), resp.Data.ByStatus[tzsync.StatusInternalError])

	assert.Equal(t, []store.ZoneStat{
		{Zone: "America/New_York", Total: 1, Succeeded: 1, Failed: 0},
		{Zone: "Asia/Kolkata", Total: 1, Succeeded: 1, Failed: 0},
		{Zone: "Australia/Sydney", Total: 1, Succeeded: 0, Failed: 1},
		{Zone: "unresolved", Total: 1, Succeeded: 0, Failed: 1},
	}, resp.Data.ByZone)
}

func TestStatsText(t *testing.T) {
	opts := testOptions("text")
	opts.Database = seedLog(t)

	out, err := execute(NewStatsCommand(opts))
	require.NoError(t, err)
	assert.Contains(t, out, "Records: 4")
	assert.Contains(t, out, "AMBIGUOUS_OR_INVALID_LOCAL_TIME")
	assert.Contains(t, out, "Australia/Sydney")
	assert.Contains(t, out, "SUCCEEDED")
}

func TestStatsEmpty(t *testing.T) {
	opts := testOptions("text")
	opts.Database = testDBPath(t)

	out, err := execute(NewStatsCommand(opts))
	require.NoError(t, err)
	assert.Contains(t, out, "Records: 0")
	assert.NotContains(t, out, "ZONE")
}
