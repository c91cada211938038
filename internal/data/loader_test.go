package data

import (
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"bess-dashboard/internal/model"
	"bess-dashboard/internal/sample"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func smallOptions() sample.Options {
	opts := sample.DefaultOptions()
	opts.Hours = 30
	opts.LateStart = map[string]int{"BATT_CHARLIE": 4}
	return opts
}

func TestLoad_RoundTrip(t *testing.T) {
	for _, format := range []Format{FormatCSV, FormatFeather} {
		t.Run(string(format), func(t *testing.T) {
			dir := t.TempDir()
			want := sample.Generate(smallOptions())
			require.NoError(t, WriteDatasets(dir, want, format))

			got, err := Load(dir)
			require.NoError(t, err)

			assert.Equal(t, append(append([]string{}, model.SourceDatasets...), model.DatasetPriceAS), got.Names())
			assert.NotEmpty(t, got.Fingerprint)
			assert.Equal(t, model.DatasetGenPriceAS, got.First().Name)

			for _, name := range model.SourceDatasets {
				wf, err := want.Get(name)
				require.NoError(t, err)
				gf, err := got.Get(name)
				require.NoError(t, err)
				assert.Equal(t, wf.Len(), gf.Len(), name)
				assert.Equal(t, wf.Columns(), gf.Columns(), name)
			}

			damGen, err := got.Get(model.DatasetDAMGen)
			require.NoError(t, err)
			k := model.NewKey(smallOptions().Start.Add(time.Hour), "BATT_ALPHA")
			status, ok := damGen.String(k, model.ColResourceStatus)
			assert.True(t, ok)
			assert.Equal(t, "ONREG", status)

			k = model.NewKey(smallOptions().Start, "BATT_CHARLIE")
			_, ok = damGen.String(k, model.ColResourceStatus)
			assert.False(t, ok, "late resource has no status before it comes online")

			// reg_up is missing on the generation side every 5th hour and
			// filled from the load side in the merged table.
			gen, err := got.Get(model.DatasetGenPriceAS)
			require.NoError(t, err)
			merged, err := got.Get(model.DatasetPriceAS)
			require.NoError(t, err)
			k = model.NewKey(smallOptions().Start, "BATT_ALPHA")
			_, ok = gen.Float(k, model.ColRegUp)
			assert.False(t, ok)
			v, ok := merged.Float(k, model.ColRegUp)
			assert.True(t, ok)
			assert.False(t, math.IsNaN(v))
		})
	}
}

func TestLoad_MissingDataset(t *testing.T) {
	_, err := Load(t.TempDir())
	require.Error(t, err)

	var dsErr *DatasetError
	require.ErrorAs(t, err, &dsErr)
	assert.Equal(t, CodeMissingDataset, dsErr.Code)
	assert.Equal(t, model.DatasetGenPriceAS, dsErr.Dataset)
}

func TestLoad_MissingColumn(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, WriteDatasets(dir, sample.Generate(smallOptions()), FormatCSV))
	bad := "timestamp,MW\n2021-01-01T00:00:00Z,1\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, model.DatasetRTMPower+".csv"), []byte(bad), 0o644))

	_, err := Load(dir)
	var dsErr *DatasetError
	require.ErrorAs(t, err, &dsErr)
	assert.Equal(t, CodeMissingColumn, dsErr.Code)
	assert.Equal(t, model.DatasetRTMPower, dsErr.Dataset)
}

func TestLoad_FingerprintFollowsContent(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, WriteDatasets(dir, sample.Generate(smallOptions()), FormatCSV))

	a, err := Load(dir)
	require.NoError(t, err)
	b, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, a.Fingerprint, b.Fingerprint)

	opts := smallOptions()
	opts.Hours = 31
	require.NoError(t, WriteDatasets(dir, sample.Generate(opts), FormatCSV))
	c, err := Load(dir)
	require.NoError(t, err)
	assert.NotEqual(t, a.Fingerprint, c.Fingerprint)
}

func TestParseTimestamp(t *testing.T) {
	want := time.Date(2021, 1, 1, 6, 0, 0, 0, time.UTC)
	tests := []string{
		"2021-01-01T06:00:00Z",
		"2021-01-01T00:00:00-06:00",
		"2021-01-01 00:00:00-06:00",
		"2021-01-01 06:00:00",
	}
	for _, in := range tests {
		got, err := ParseTimestamp(in)
		require.NoError(t, err, in)
		assert.True(t, want.Equal(got), in)
	}

	_, err := ParseTimestamp("yesterday")
	assert.Error(t, err)
}

func TestReadCSV_ColumnTypes(t *testing.T) {
	raw := "timestamp,resource_name,resource_status,rrs_awarded,note\n" +
		"2021-01-01T00:00:00Z,A,ON,,x\n" +
		"2021-01-01T01:00:00Z,A,,2.5,\n"
	f, err := ReadCSV(model.DatasetDAMGen, []byte(raw))
	require.NoError(t, err)

	assert.False(t, f.IsFloatColumn(model.ColResourceStatus))
	assert.True(t, f.IsFloatColumn(model.ColRRSAwarded))
	assert.False(t, f.IsFloatColumn("note"))

	_, ok := f.Float(model.NewKey(time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC), "A"), model.ColRRSAwarded)
	assert.False(t, ok)
	v, ok := f.Float(model.NewKey(time.Date(2021, 1, 1, 1, 0, 0, 0, time.UTC), "A"), model.ColRRSAwarded)
	assert.True(t, ok)
	assert.Equal(t, 2.5, v)
}

func TestReadCSV_InvalidNumber(t *testing.T) {
	raw := "timestamp,resource_name,rtm_lmps\n" +
		"2021-01-01T00:00:00Z,A,21.5\n" +
		"2021-01-01T00:15:00Z,A,N/A\n"
	_, err := ReadCSV(model.DatasetBESSLMPs, []byte(raw))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "row 3")
	assert.Contains(t, err.Error(), `"N/A"`)
}

func TestLoad_InvalidNumberIsUnreadable(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, WriteDatasets(dir, sample.Generate(smallOptions()), FormatCSV))
	bad := "timestamp,resource_name,rtm_lmps\n2021-01-01T06:00:00Z,BATT_ALPHA,N/A\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, model.DatasetBESSLMPs+".csv"), []byte(bad), 0o644))

	_, err := Load(dir)
	var dsErr *DatasetError
	require.ErrorAs(t, err, &dsErr)
	assert.Equal(t, CodeUnreadableDataset, dsErr.Code)
	assert.Equal(t, model.DatasetBESSLMPs, dsErr.Dataset)
}
