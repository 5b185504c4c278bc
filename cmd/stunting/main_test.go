package main

import (
	"bytes"
	"context"
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Veraticus/stunting-dashboard/internal/common"
	"github.com/Veraticus/stunting-dashboard/internal/storage"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

const testResults = `kab_kota,tahun,metode,PrevalensiStunting,MAPE,MSE
A,2020,SVR,10.0,0.1,1.5
A,2020,DT,12.0,0.2,2.5
B,2020,SVR,20.0,0.3,3.5
`

const testFeatures = `kab_kota,tahun,BayiBBLR,IbuNifasVitA,K4,IPM,MinumLayak,SanitasiLayak
A,2020,5.2,90,85,70.1,88,75
`

type fixture struct {
	dir      string
	results  string
	features string
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	dir := t.TempDir()
	f := fixture{
		dir:      dir,
		results:  filepath.Join(dir, "stunting.csv"),
		features: filepath.Join(dir, "data_mentah.csv"),
	}
	require.NoError(t, os.WriteFile(f.results, []byte(testResults), 0o600))
	require.NoError(t, os.WriteFile(f.features, []byte(testFeatures), 0o600))
	return f
}

func (f fixture) args(args ...string) []string {
	return append([]string{"--results", f.results, "--features", f.features, "--log-level", "error"}, args...)
}

func executeCommand(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	viper.Reset()
	t.Cleanup(viper.Reset)
	t.Setenv("HOME", t.TempDir())

	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)

	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestVersionCommand(t *testing.T) {
	out, err := executeCommand(t, "", "version")
	require.NoError(t, err)
	assert.Equal(t, "stunting dev\n", out)
}

func TestQueryCommand_Grouped(t *testing.T) {
	f := newFixture(t)

	out, err := executeCommand(t, "", f.args("query", "--year", "2020")...)
	require.NoError(t, err)

	assert.Contains(t, out, "Prediksi Prevalensi Stunting")
	assert.Equal(t, []string{"SVR", "2", "15.00", "0.2000", "2.5000"}, fieldsOfLine(out, "SVR"))
	assert.Equal(t, []string{"DT", "1", "12.00", "0.2000", "2.5000"}, fieldsOfLine(out, "DT"))
}

func TestQueryCommand_FirstMode(t *testing.T) {
	f := newFixture(t)

	out, err := executeCommand(t, "", f.args("query", "--mode", "first", "--region", "A")...)
	require.NoError(t, err)
	assert.Contains(t, out, "(SVR): 10.00%")
}

func TestQueryCommand_NoMatch(t *testing.T) {
	f := newFixture(t)

	out, err := executeCommand(t, "", f.args("query", "--region", "B", "--method", "DT")...)
	require.NoError(t, err, "no match is not an error")
	assert.Contains(t, out, "Tidak ada data untuk B pada tahun Semua Tahun.")
}

func TestQueryCommand_CSV(t *testing.T) {
	f := newFixture(t)

	out, err := executeCommand(t, "", f.args("query", "--region", "A", "--format", "csv")...)
	require.NoError(t, err)

	records, err := csv.NewReader(strings.NewReader(out)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "SVR", records[1][2])
	assert.Equal(t, "10", records[1][4])
}

func TestQueryCommand_JSON(t *testing.T) {
	f := newFixture(t)

	out, err := executeCommand(t, "", f.args("query", "--method", "SVR", "--format", "json")...)
	require.NoError(t, err)
	assert.Contains(t, out, `"method": "SVR"`)
	assert.Contains(t, out, `"prediction": 15`)
}

func TestQueryCommand_UnsupportedFormat(t *testing.T) {
	f := newFixture(t)

	_, err := executeCommand(t, "", f.args("query", "--format", "yaml")...)
	assert.ErrorIs(t, err, common.ErrUnsupportedFormat)
}

func TestQueryCommand_Check(t *testing.T) {
	f := newFixture(t)

	t.Run("prefilled from the raw indicator table", func(t *testing.T) {
		out, err := executeCommand(t, "", f.args("query", "--region", "A", "--year", "2020", "--check")...)
		require.NoError(t, err)
		require.Len(t, fieldsOfLine(out, "SVR"), 5)
		assert.Equal(t, "10.00", fieldsOfLine(out, "SVR")[2])
	})

	t.Run("missing inputs are rejected", func(t *testing.T) {
		_, err := executeCommand(t, "", f.args("query", "--region", "B", "--year", "2020", "--check")...)
		require.ErrorIs(t, err, common.ErrValidation)
		assert.Contains(t, common.UserMessage(err), "Masukkan angka yang valid untuk semua input.")
		assert.Contains(t, common.UserMessage(err), "Bayi BBLR (%)")
	})

	t.Run("non positive flag overrides prefill", func(t *testing.T) {
		_, err := executeCommand(t, "", f.args("query", "--region", "A", "--year", "2020", "--check", "--ipm", "-1")...)
		require.ErrorIs(t, err, common.ErrValidation)
		assert.Contains(t, common.UserMessage(err), "Indeks Pembangunan Manusia (IPM)")
	})

	t.Run("all flags given", func(t *testing.T) {
		_, err := executeCommand(t, "", f.args("query", "--check",
			"--bblr", "4", "--vita", "90", "--k4", "85", "--ipm", "70", "--minum", "88", "--sanitasi", "75")...)
		require.NoError(t, err)
	})
}

func TestQueryCommand_Prompt(t *testing.T) {
	f := newFixture(t)

	out, err := executeCommand(t, "4\n90\n85\n70\n88\n75\n", f.args("query", "--region", "B", "--prompt")...)
	require.NoError(t, err)
	assert.Contains(t, out, "Bayi BBLR (%)")
	assert.Equal(t, "20.00", fieldsOfLine(out, "SVR")[2])
}

func TestQueryCommand_MissingSource(t *testing.T) {
	f := newFixture(t)
	missing := filepath.Join(f.dir, "nope.csv")

	_, err := executeCommand(t, "", "--results", missing, "--features", f.features, "--log-level", "error", "query")
	require.ErrorIs(t, err, common.ErrSourceNotFound)
	assert.Contains(t, common.UserMessage(err), "File '"+missing+"' tidak ditemukan.")
}

func TestQueryCommand_InvalidMode(t *testing.T) {
	f := newFixture(t)

	_, err := executeCommand(t, "", f.args("query", "--mode", "median")...)
	assert.ErrorIs(t, err, common.ErrInvalidConfig)
}

func TestDomainsCommand(t *testing.T) {
	f := newFixture(t)

	out, err := executeCommand(t, "", f.args("domains")...)
	require.NoError(t, err)
	assert.Contains(t, out, "Semua Kabupaten/Kota")
	assert.Contains(t, out, "Semua Tahun")
	assert.Contains(t, out, "  2020\n")
	assert.Contains(t, out, "Metode (2)")
}

func TestImportCommand(t *testing.T) {
	f := newFixture(t)
	dbPath := filepath.Join(f.dir, "snapshot.db")

	out, err := executeCommand(t, "", f.args("import", "--db", dbPath, "--quiet")...)
	require.NoError(t, err)
	assert.Contains(t, out, "Imported 3 results and 1 feature rows")

	store, err := storage.OpenReadOnly(context.Background(), dbPath)
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	meta, err := store.GetMetadata(context.Background())
	require.NoError(t, err)
	assert.Equal(t, f.results, meta.ResultsSource)
	assert.True(t, meta.HasMAPE)

	// The snapshot serves as both sources.
	out, err = executeCommand(t, "", "--results", dbPath, "--features", dbPath, "--log-level", "error",
		"query", "--region", "A", "--year", "2020", "--check")
	require.NoError(t, err)
	assert.Equal(t, "10.00", fieldsOfLine(out, "SVR")[2])
}

func TestExportCommand(t *testing.T) {
	f := newFixture(t)

	t.Run("xlsx", func(t *testing.T) {
		path := filepath.Join(f.dir, "laporan.xlsx")
		_, err := executeCommand(t, "", f.args("export", "--year", "2020", "--out", path)...)
		require.NoError(t, err)

		wb, err := excelize.OpenFile(path)
		require.NoError(t, err)
		defer func() { _ = wb.Close() }()
		assert.Equal(t, []string{"Ringkasan", "Data"}, wb.GetSheetList())
	})

	t.Run("png", func(t *testing.T) {
		path := filepath.Join(f.dir, "grafik.png")
		_, err := executeCommand(t, "", f.args("export", "--out", path)...)
		require.NoError(t, err)
		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Positive(t, info.Size())
	})

	t.Run("no match", func(t *testing.T) {
		_, err := executeCommand(t, "", f.args("export", "--region", "C", "--out", filepath.Join(f.dir, "x.csv"))...)
		require.Error(t, err)
		assert.Contains(t, common.UserMessage(err), "Tidak ada data untuk C")
	})

	t.Run("unsupported extension", func(t *testing.T) {
		_, err := executeCommand(t, "", f.args("export", "--out", filepath.Join(f.dir, "x.pdf"))...)
		assert.ErrorIs(t, err, common.ErrUnsupportedFormat)
	})
}

// fieldsOfLine splits the first output line starting with prefix.
func fieldsOfLine(out, prefix string) []string {
	for _, line := range strings.Split(out, "\n") {
		if strings.HasPrefix(line, prefix) {
			return strings.Fields(line)
		}
	}
	return nil
}
