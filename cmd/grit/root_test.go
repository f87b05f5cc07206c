package grit

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	buf := &bytes.Buffer{}
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return buf.String(), err
}

func TestRootHelp(t *testing.T) {
	out, err := execute(t, "--help")
	if err != nil {
		t.Fatalf("execute root help: %v", err)
	}
	if out == "" {
		t.Fatalf("expected help output")
	}
}

func TestInitCommandIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "grit.db")
	for i := 0; i < 2; i++ {
		if _, err := execute(t, "--db", path, "init"); err != nil {
			t.Fatalf("init run %d failed: %v", i+1, err)
		}
	}
}

func TestProfileSetAndShow(t *testing.T) {
	path := filepath.Join(t.TempDir(), "grit.db")
	out, err := execute(t, "--db", path, "profile", "set",
		"--current-weight", "70",
		"--goal-weight", "70",
		"--height", "165",
		"--gender", "female",
		"--activity", "light",
		"--age", "28",
	)
	if err != nil {
		t.Fatalf("profile set: %v", err)
	}
	if !strings.Contains(out, "BMR: 1430 kcal") {
		t.Fatalf("expected BMR in output, got: %s", out)
	}

	out, err = execute(t, "--db", path, "profile", "show", "--json")
	if err != nil {
		t.Fatalf("profile show: %v", err)
	}
	var got struct {
		Exists  bool `json:"exists"`
		Targets struct {
			BMR          int `json:"bmr"`
			TDEE         int `json:"tdee"`
			GoalCalories int `json:"goalCalories"`
		} `json:"targets"`
	}
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("decode profile json: %v\n%s", err, out)
	}
	if !got.Exists || got.Targets.TDEE != 1966 || got.Targets.GoalCalories != 1966 {
		t.Fatalf("unexpected profile output: %+v", got)
	}
}

func TestProfileSetRejectsUnknownActivity(t *testing.T) {
	path := filepath.Join(t.TempDir(), "grit.db")
	_, err := execute(t, "--db", path, "profile", "set", "--activity", "couch")
	if err == nil || !strings.Contains(err.Error(), "unknown activity level") {
		t.Fatalf("expected activity validation error, got %v", err)
	}
}

func TestParseDayOrToday(t *testing.T) {
	t.Parallel()
	if _, err := parseDayOrToday("2025/01/01"); err == nil {
		t.Fatalf("expected invalid date to fail")
	}
	day, err := parseDayOrToday("2025-01-31")
	if err != nil {
		t.Fatalf("parse date: %v", err)
	}
	if day.Format("2006-01-02") != "2025-01-31" {
		t.Fatalf("unexpected day %s", day)
	}
}

func TestDoctorReportsMissingProfile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "grit.db")
	out, err := execute(t, "--db", path, "doctor")
	if err == nil {
		t.Fatalf("expected doctor to flag the missing profile")
	}
	if !strings.Contains(out, "Storage (sqlite): ok") || !strings.Contains(out, "Profile: incomplete") {
		t.Fatalf("unexpected doctor output: %s", out)
	}
}
