package env

import (
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReconcile(t *testing.T) {
	const ref = "%_JAVA_HOME_%"
	const bin = `%_JAVA_HOME_%\bin`

	tests := []struct {
		name    string
		entries []string
		want    []string
	}{
		{
			name:    "empty list",
			entries: nil,
			want:    []string{bin},
		},
		{
			name:    "moves existing entry to front",
			entries: []string{`C:\Win`, bin, `C:\Other`},
			want:    []string{bin, `C:\Win`, `C:\Other`},
		},
		{
			name:    "already first",
			entries: []string{bin, `C:\Win`},
			want:    []string{bin, `C:\Win`},
		},
		{
			name:    "prepends when missing",
			entries: []string{`C:\Win`, `C:\Other`},
			want:    []string{bin, `C:\Win`, `C:\Other`},
		},
		{
			name:    "collapses every spelling",
			entries: []string{`C:\A`, bin + `\`, `C:\B`, `"` + bin + `"`, strings.ToLower(bin), `C:\C`, bin},
			want:    []string{bin, `C:\A`, `C:\B`, `C:\C`},
		},
		{
			name:    "removes entries below the bin path",
			entries: []string{`C:\Win`, bin + `\server`, `C:\Other`},
			want:    []string{bin, `C:\Win`, `C:\Other`},
		},
		{
			name:    "removes every entry with the bin prefix",
			entries: []string{bin + `\server`, `%_JAVA_HOME_%\binaries`, `  ` + bin + ` `, `C:\A`},
			want:    []string{bin, `C:\A`},
		},
		{
			name:    "keeps entries that only contain the bin path",
			entries: []string{`C:\` + bin, `%JAVA_HOME%\bin`, `%_JAVA_HOME_%`},
			want:    []string{bin, `C:\` + bin, `%JAVA_HOME%\bin`, `%_JAVA_HOME_%`},
		},
		{
			name:    "keeps unrelated duplicates",
			entries: []string{`C:\A`, `C:\A`, bin, `C:\A`},
			want:    []string{bin, `C:\A`, `C:\A`, `C:\A`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Reconcile(tt.entries, ref))
		})
	}
}

func TestReconcile_Properties(t *testing.T) {
	const ref = "%JAVA_HOME%"
	bin := BinRef(ref)
	pool := []string{bin, bin + `\`, `C:\Windows`, `C:\Windows\system32`, `%SystemRoot%`, `D:\tools`, bin + `\server`, ` C:\spaced `, `%java_home%\BIN`}

	startsWithBin := func(e string) bool {
		e = strings.Trim(strings.TrimSpace(e), `"`)
		return strings.HasPrefix(strings.ToUpper(e), strings.ToUpper(bin))
	}

	rng := rand.New(rand.NewPCG(1, 2))
	for i := 0; i < 500; i++ {
		n := rng.IntN(10)
		entries := make([]string, n)
		for j := range entries {
			entries[j] = pool[rng.IntN(len(pool))]
		}

		got := Reconcile(entries, ref)

		require.NotEmpty(t, got)
		require.Equal(t, bin, got[0], "input %q", entries)

		var others []string
		for _, e := range entries {
			if !startsWithBin(e) {
				others = append(others, e)
			}
		}
		matches := 0
		for _, e := range got {
			if startsWithBin(e) {
				matches++
			}
		}
		require.Equal(t, 1, matches, "input %q output %q", entries, got)
		if len(others) == 0 {
			require.Len(t, got, 1)
		} else {
			require.Equal(t, others, got[1:], "input %q", entries)
		}
	}
}

func TestSplitJoinList(t *testing.T) {
	tests := []struct {
		raw  string
		want []string
	}{
		{"", []string{}},
		{`C:\A`, []string{`C:\A`}},
		{`C:\A;C:\B;`, []string{`C:\A`, `C:\B`}},
		{`;C:\A;;  ;C:\B `, []string{`C:\A`, `C:\B `}},
		{` C:\A ;C:\B`, []string{` C:\A `, `C:\B`}},
		{`C:\Program Files\x;%JAVA_HOME%\bin`, []string{`C:\Program Files\x`, `%JAVA_HOME%\bin`}},
	}
	for _, tt := range tests {
		got := SplitList(tt.raw)
		assert.Equal(t, tt.want, got, "SplitList(%q)", tt.raw)
	}

	assert.Equal(t, `a;b`, JoinList([]string{"a", "b"}))
}

func TestPlanPath(t *testing.T) {
	store := NewMemory(map[string]string{
		PathVar: `C:\Win;%JAVA_HOME%\bin;C:\Other;`,
	})

	change, err := PlanPath(store, "JAVA_HOME", nil)
	require.NoError(t, err)
	assert.True(t, change.Changed())
	assert.Equal(t, `%JAVA_HOME%\bin;C:\Win;C:\Other`, change.New)

	require.NoError(t, store.Set(PathVar, change.New))
	again, err := PlanPath(store, "JAVA_HOME", nil)
	require.NoError(t, err)
	assert.False(t, again.Changed(), "reconciling twice must be stable")
}

func TestPlanPath_KeepsEntryText(t *testing.T) {
	store := NewMemory(map[string]string{
		PathVar: ` C:\Win ;  %JAVA_HOME%\bin ;C:\Program Files\x  ;`,
	})

	change, err := PlanPath(store, "JAVA_HOME", nil)
	require.NoError(t, err)
	assert.Equal(t, `%JAVA_HOME%\bin; C:\Win ;C:\Program Files\x  `, change.New)
}

func TestPlanPath_Unset(t *testing.T) {
	change, err := PlanPath(NewMemory(nil), "_JAVA_HOME_", nil)
	require.NoError(t, err)
	assert.Equal(t, "", change.Old)
	assert.Equal(t, `%_JAVA_HOME_%\bin`, change.New)
}
