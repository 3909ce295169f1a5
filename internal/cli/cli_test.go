package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	hpderrors "github.com/matzehuels/hpdgraph/pkg/errors"
	"github.com/matzehuels/hpdgraph/pkg/portfolio"
)

const testRegistrations = `RegistrationID,BoroID,Block,Lot,BIN,RegistrationEndDate
1,1,100,1,1000001,12/31/2099
2,1,100,2,1000002,12/31/2099
3,3,200,5,,12/31/2099
4,2,300,1,2000001,01/01/2000
`

const testContacts = `RegistrationContactID,RegistrationID,Type,ContactDescription,CorporationName,Title,FirstName,MiddleInitial,LastName,BusinessHouseNumber,BusinessStreetName,BusinessApartment,BusinessCity,BusinessState,BusinessZip
10,1,HeadOfficer,,,,JANE,,DOE,1,MAIN ST,,NEW YORK,NY,10001
11,2,IndividualOwner,,,,JANE,,DOE,1,MAIN ST,,NEW YORK,NY,10001
12,2,HeadOfficer,,,,JOHN,,ROE,1,MAIN ST,,NEW YORK,NY,10001
13,3,CorporateOwner,,ACME LLC,,,,,5,BROADWAY,,NEW YORK,NY,10001
14,4,HeadOfficer,,,,OLD,,TIMER,9,ELM ST,,BROOKLYN,NY,11201
15,1,Agent,,,,AL,,AGENT,1,MAIN ST,,NEW YORK,NY,10001
16,3,HeadOfficer,,,,DAVID,,ROSE,5,BROADWAY,,NEW YORK,NY,10001
`

// testEnv writes the datasets to a temporary directory and isolates the
// config file lookup from the user's environment.
type testEnv struct {
	dir  string
	args []string
}

func newTestEnv(t *testing.T) testEnv {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_CACHE_HOME", filepath.Join(dir, "cache"))
	regs := filepath.Join(dir, "regs.csv")
	contacts := filepath.Join(dir, "contacts.csv")
	if err := os.WriteFile(regs, []byte(testRegistrations), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(contacts, []byte(testContacts), 0o644); err != nil {
		t.Fatal(err)
	}
	return testEnv{dir: dir, args: []string{"--registrations", regs, "--contacts", contacts}}
}

func (e testEnv) run(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	var out, errOut bytes.Buffer
	root := New(io.Discard, LogInfo).RootCommand()
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(append(append([]string{}, e.args...), args...))
	err = root.ExecuteContext(context.Background())
	return out.String(), errOut.String(), err
}

func TestInfo(t *testing.T) {
	env := newTestEnv(t)
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"defaults", []string{"info"}, "Read 3 unique names, 2 unique addresses, and 2 connected components.\n"},
		{"include corps", []string{"--include-corps", "info"}, "Read 4 unique names, 2 unique addresses, and 2 connected components.\n"},
		{"expiration age", []string{"--max-expiration-age", "100000", "info"}, "Read 4 unique names, 3 unique addresses, and 3 connected components.\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, _, err := env.run(t, tt.args...)
			if err != nil {
				t.Fatalf("run: %v", err)
			}
			if out != tt.want {
				t.Errorf("stdout = %q, want %q", out, tt.want)
			}
		})
	}
}

func TestInfoName(t *testing.T) {
	out, errOut, err := newTestEnv(t).run(t, "info", "ROE")
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if errOut != "Found a matching name 'JOHN ROE'.\n" {
		t.Errorf("stderr = %q", errOut)
	}
	want := `Read 3 unique names, 2 unique addresses, and 2 connected components.
This is JANE DOE's portfolio.
It has 2 buildings (2 distinct BINs).

The most frequent business addresses mentioned in the portfolio are:

1 MAIN ST , NEW YORK NY (mentioned in 3 HPD registration contacts)

The most frequent names mentioned in the portfolio are:

JANE DOE (mentioned in 2 HPD registration contacts)
JOHN ROE (mentioned in 1 HPD registration contacts)
`
	if out != want {
		t.Errorf("stdout =\n%s\nwant\n%s", out, want)
	}
}

func TestInfoTop(t *testing.T) {
	out, _, err := newTestEnv(t).run(t, "info", "JANE DOE", "--top", "1")
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if strings.Contains(out, "JOHN ROE (mentioned") {
		t.Errorf("--top 1 listed a second name:\n%s", out)
	}
}

func TestNameNotFound(t *testing.T) {
	for _, cmd := range []string{"info", "dot", "json"} {
		t.Run(cmd, func(t *testing.T) {
			out, _, err := newTestEnv(t).run(t, cmd, "NOBODY")
			if !hpderrors.Is(err, hpderrors.ErrCodeNameNotFound) {
				t.Fatalf("err = %v, want NAME_NOT_FOUND", err)
			}
			if cmd != "info" && out != "" {
				t.Errorf("stdout = %q, want nothing", out)
			}
		})
	}
}

func TestMissingDataset(t *testing.T) {
	env := newTestEnv(t)
	env.args = []string{"--registrations", filepath.Join(env.dir, "missing.csv"), "--contacts", filepath.Join(env.dir, "contacts.csv")}
	_, _, err := env.run(t, "ranking")
	if !hpderrors.Is(err, hpderrors.ErrCodeFileNotFound) {
		t.Fatalf("err = %v, want FILE_NOT_FOUND", err)
	}
}

func TestRanking(t *testing.T) {
	env := newTestEnv(t)
	tests := []struct {
		args []string
		want string
	}{
		{[]string{"ranking"}, "1. JANE DOE's portfolio - 2 buildings\n2. PINNACLE's portfolio - 1 buildings\n"},
		{[]string{"ranking", "-b", "2"}, "1. JANE DOE's portfolio - 2 buildings\n"},
		{[]string{"ranking", "--min-buildings", "3"}, ""},
	}
	for _, tt := range tests {
		t.Run(strings.Join(tt.args, " "), func(t *testing.T) {
			out, _, err := env.run(t, tt.args...)
			if err != nil {
				t.Fatalf("run: %v", err)
			}
			if out != tt.want {
				t.Errorf("stdout = %q, want %q", out, tt.want)
			}
		})
	}
}

func TestRankingTable(t *testing.T) {
	out, _, err := newTestEnv(t).run(t, "ranking", "--table")
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	for _, want := range []string{"Portfolio", "JANE DOE's portfolio", "PINNACLE's portfolio"} {
		if !strings.Contains(out, want) {
			t.Errorf("table missing %q:\n%s", want, out)
		}
	}
}

func TestLongpaths(t *testing.T) {
	env := newTestEnv(t)

	out, _, err := env.run(t, "longpaths", "-m", "2")
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	want := "\nPaths with minimum length 2:\n\nlength 2 path: JANE DOE -> 1 MAIN ST , NEW YORK NY -> JOHN ROE\n\n"
	if out != want {
		t.Errorf("stdout = %q, want %q", out, want)
	}

	out, _, err = env.run(t, "longpaths")
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if out != "\nPaths with minimum length 10:\n\n" {
		t.Errorf("stdout = %q", out)
	}
}

func TestDot(t *testing.T) {
	out, errOut, err := newTestEnv(t).run(t, "dot", "PINNACLE")
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if errOut != "Found a matching name 'PINNACLE'.\n" {
		t.Errorf("stderr = %q", errOut)
	}
	for _, want := range []string{"// PINNACLE's portfolio\n", "graph {", `label="PINNACLE", color=whitesmoke, style=filled`, "shape=box"} {
		if !strings.Contains(out, want) {
			t.Errorf("dot output missing %q:\n%s", want, out)
		}
	}
}

func TestDotSVG(t *testing.T) {
	env := newTestEnv(t)
	svgPath := filepath.Join(env.dir, "graph.svg")
	out, _, err := env.run(t, "dot", "JANE", "--svg", svgPath)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if out != "" {
		t.Errorf("stdout = %q, want nothing", out)
	}
	data, err := os.ReadFile(svgPath)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Contains(data, []byte("<svg")) {
		t.Error("output is not an SVG document")
	}
}

func TestJSON(t *testing.T) {
	out, _, err := newTestEnv(t).run(t, "json", "JANE DOE")
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	var doc portfolio.Document
	if err := json.Unmarshal([]byte(out), &doc); err != nil {
		t.Fatalf("decode: %v\n%s", err, out)
	}
	if doc.Title != "JANE DOE's portfolio" || len(doc.Nodes) != 3 || len(doc.Edges) != 2 {
		t.Errorf("document = %+v", doc)
	}
	if doc.Edges[0].BBL != "1001000001" {
		t.Errorf("bbl = %q", doc.Edges[0].BBL)
	}
}

func TestWebsite(t *testing.T) {
	env := newTestEnv(t)
	outDir := filepath.Join(env.dir, "site")
	out, _, err := env.run(t, "website", "--out", outDir, "--no-svg", "-b", "1")
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if out != "Exported 2 portfolios.\n" {
		t.Errorf("stdout = %q", out)
	}
	for _, f := range []string{"index.html", "styles.css", "0-jane-doe/index.html", "0-jane-doe/portfolio.json", "1-pinnacle/index.html"} {
		if _, err := os.Stat(filepath.Join(outDir, f)); err != nil {
			t.Errorf("missing %s: %v", f, err)
		}
	}
}

func TestConfigFile(t *testing.T) {
	env := newTestEnv(t)
	cfgDir := filepath.Join(env.dir, "config", appName)
	if err := os.MkdirAll(cfgDir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(cfgDir, "config.toml"), []byte("include_corps = true\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	out, _, err := env.run(t, "info")
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if !strings.HasPrefix(out, "Read 4 unique names") {
		t.Errorf("config file ignored: %q", out)
	}

	out, _, err = env.run(t, "--include-corps=false", "info")
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if !strings.HasPrefix(out, "Read 3 unique names") {
		t.Errorf("flag did not override config file: %q", out)
	}
}

func TestConfigFileExplicit(t *testing.T) {
	env := newTestEnv(t)

	_, _, err := env.run(t, "--config", filepath.Join(env.dir, "nope.toml"), "info")
	if !hpderrors.Is(err, hpderrors.ErrCodeFileNotFound) {
		t.Errorf("missing --config: err = %v, want FILE_NOT_FOUND", err)
	}

	bad := filepath.Join(env.dir, "bad.toml")
	if err := os.WriteFile(bad, []byte("include_corps = \"yes\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, _, err = env.run(t, "--config", bad, "info")
	if !hpderrors.Is(err, hpderrors.ErrCodeInvalidInput) {
		t.Errorf("bad --config: err = %v, want INVALID_INPUT", err)
	}
}

func TestNegativeExpirationAge(t *testing.T) {
	_, _, err := newTestEnv(t).run(t, "--max-expiration-age", "-1", "info")
	if !hpderrors.Is(err, hpderrors.ErrCodeInvalidInput) {
		t.Errorf("err = %v, want INVALID_INPUT", err)
	}
}

func TestConfigFilePath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	got, err := configFile()
	if err != nil {
		t.Fatal(err)
	}
	if got != "/tmp/xdg/hpdgraph/config.toml" {
		t.Errorf("configFile() = %q", got)
	}
}

func TestCacheDir(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "/tmp/xdg-cache")
	got, err := cacheDir()
	if err != nil {
		t.Fatal(err)
	}
	if got != "/tmp/xdg-cache/hpdgraph" {
		t.Errorf("cacheDir() = %q", got)
	}
}

func TestWebsiteReusesRenders(t *testing.T) {
	env := newTestEnv(t)
	outDir := filepath.Join(env.dir, "site")
	for range 2 {
		if _, _, err := env.run(t, "website", "--out", outDir); err != nil {
			t.Fatalf("run: %v", err)
		}
	}
	entries, err := os.ReadDir(filepath.Join(env.dir, "cache", appName))
	if err != nil {
		t.Fatalf("render cache not populated: %v", err)
	}
	if len(entries) == 0 {
		t.Error("render cache is empty")
	}
	if _, err := os.Stat(filepath.Join(outDir, "1-pinnacle", "graph.svg")); err != nil {
		t.Errorf("graph.svg: %v", err)
	}
}

func TestCompletion(t *testing.T) {
	out, _, err := newTestEnv(t).run(t, "completion", "bash")
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if !strings.Contains(out, "hpdgraph") {
		t.Error("bash completion does not mention hpdgraph")
	}
}

func TestCompleteNames(t *testing.T) {
	env := newTestEnv(t)
	args := append([]string{"__complete", "info"}, env.args...)
	out, _, err := testEnv{dir: env.dir}.run(t, append(args, "j")...)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	for _, want := range []string{"JANE DOE\n", "JOHN ROE\n"} {
		if !strings.Contains(out, want) {
			t.Errorf("completions %q missing %q", out, want)
		}
	}
	if strings.Contains(out, "DAVID ROSE") {
		t.Errorf("completions %q include a name without the prefix", out)
	}
}
