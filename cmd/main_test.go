package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rogpeppe/go-internal/testscript"

	"github.com/twiced-technology-gmbh/tasktrack/internal/clierr"
)

func TestMain(m *testing.M) {
	testscript.Main(m, map[string]func(){
		"tasktrack": Execute,
	})
}

func TestScripts(t *testing.T) {
	testscript.Run(t, testscript.Params{
		Dir: "testdata/script",
		Setup: func(env *testscript.Env) error {
			home := filepath.Join(env.WorkDir, "home")
			if err := os.MkdirAll(home, 0o755); err != nil {
				return err
			}
			env.Setenv("HOME", home)
			env.Setenv("NO_COLOR", "1")
			return nil
		},
	})
}

func TestParseIDs(t *testing.T) {
	ids, err := parseIDs("3, #1,3,2")
	if err != nil {
		t.Fatalf("parseIDs: %v", err)
	}
	if len(ids) != 3 || ids[0] != 3 || ids[1] != 1 || ids[2] != 2 {
		t.Fatalf("ids = %v, want [3 1 2]", ids)
	}

	for _, bad := range []string{"", "x", "1,,2", "0", "-4"} {
		if _, err := parseIDs(bad); !clierr.HasCode(err, clierr.InvalidTaskID) {
			t.Errorf("parseIDs(%q) err = %v, want INVALID_TASK_ID", bad, err)
		}
	}
}
