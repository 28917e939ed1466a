package main

import (
	"bytes"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
)

const doc = `{
	"meta": {"fps": 25},
	"data": {
		"psnr": {
			"q200.csv": [30, 32, 34, 36, 38],
			"q800.csv": [{"min": 38, "max": 42, "avg": 40}, {"min": 39, "max": 45, "avg": 41}]
		},
		"ssim": {
			"q200.csv": []
		}
	}
}`

func writeDoc(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "traces.json")
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatalf("failed writing document: %v", err)
	}
	return path
}

func run(t *testing.T, args ...string) *bytes.Buffer {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	if err := cmd.Execute(); err != nil {
		t.Fatalf("soqplot %s: %v", strings.Join(args, " "), err)
	}
	return &out
}

func TestLs(t *testing.T) {
	out := run(t, "ls", writeDoc(t)).String()
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected a header and 3 series, got:\n%s", out)
	}
	for i, want := range []string{"psnr/q200.csv", "psnr/q800.csv", "ssim/q200.csv"} {
		if !strings.HasPrefix(lines[i+1], want) {
			t.Errorf("line %d: expected %q first, got %q", i+1, want, lines[i+1])
		}
	}
	fields := strings.Fields(lines[1])
	// path kind frames min max mean stddev
	if got := strings.Join(fields[1:6], " "); got != "simple 5 30 38 34" {
		t.Errorf("unexpected summary %q", got)
	}
	if !strings.Contains(lines[3], "-") {
		t.Errorf("expected an empty series to have no bounds, got %q", lines[3])
	}
}

func TestRender(t *testing.T) {
	path := writeDoc(t)
	out := run(t, "render", path, "--others", "q200.csv", "--primary", "q800.csv", "--width", "320", "--height", "240")
	img, err := png.Decode(out)
	if err != nil {
		t.Fatalf("expected a png: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 320 || b.Dy() != 240 {
		t.Errorf("unexpected size %v", b)
	}

	svgPath := filepath.Join(t.TempDir(), "out.svg")
	run(t, "render", path, "--format", "svg", "-o", svgPath)
	b, err := os.ReadFile(svgPath)
	if err != nil {
		t.Fatalf("failed reading svg: %v", err)
	}
	if !bytes.Contains(b, []byte("<svg")) || !bytes.Contains(b, []byte("</svg>")) {
		t.Errorf("expected a complete svg document")
	}
}

func TestRenderErrors(t *testing.T) {
	path := writeDoc(t)
	for _, args := range [][]string{
		{"render", path, "--format", "gif"},
		{"render", path, "--type", "vmaf"},
		{"render", path, "--width", "0"},
		{"render", filepath.Join(t.TempDir(), "missing.json")},
	} {
		cmd := newRootCmd()
		cmd.SetOut(&bytes.Buffer{})
		cmd.SetErr(&bytes.Buffer{})
		cmd.SetArgs(args)
		if err := cmd.Execute(); err == nil {
			t.Errorf("soqplot %s: expected an error", strings.Join(args, " "))
		}
	}
}

func TestExport(t *testing.T) {
	out := filepath.Join(t.TempDir(), "out.xlsx")
	run(t, "export", writeDoc(t), "--max-points", "3", "-o", out)

	f, err := excelize.OpenFile(out)
	if err != nil {
		t.Fatalf("failed opening workbook: %v", err)
	}
	defer f.Close()

	index, err := f.GetRows(indexSheet)
	if err != nil {
		t.Fatalf("failed reading index: %v", err)
	}
	if len(index) != 4 {
		t.Fatalf("expected a header and 3 rows, got %q", index)
	}
	if got := strings.Join(index[1], " "); got != "S001 psnr/q200.csv simple 5 2" {
		t.Errorf("unexpected index row %q", got)
	}

	rows, err := f.GetRows("S001")
	if err != nil {
		t.Fatalf("failed reading series sheet: %v", err)
	}
	// 5 samples halve to 3 points covering frames 0, 2 and 4.
	want := [][]string{
		{"Frame", "Min", "Max", "Avg"},
		{"0", "30", "32", "31"},
		{"2", "34", "36", "35"},
		{"4", "38", "38", "38"},
	}
	if len(rows) != len(want) {
		t.Fatalf("expected %d rows, got %q", len(want), rows)
	}
	for i := range want {
		if strings.Join(rows[i], " ") != strings.Join(want[i], " ") {
			t.Errorf("row %d: expected %q, got %q", i, want[i], rows[i])
		}
	}

	empty, err := f.GetRows("S003")
	if err != nil {
		t.Fatalf("failed reading empty series sheet: %v", err)
	}
	if len(empty) != 1 {
		t.Errorf("expected only a header for an empty series, got %q", empty)
	}
}

func TestExportFrameRange(t *testing.T) {
	path := writeDoc(t)
	out := filepath.Join(t.TempDir(), "out.xlsx")
	run(t, "export", path, "--max-points", "3", "--from", "00:02", "--to", "00:03", "-o", out)

	f, err := excelize.OpenFile(out)
	if err != nil {
		t.Fatalf("failed opening workbook: %v", err)
	}
	defer f.Close()
	for _, tc := range []struct {
		sheet string
		want  []string
	}{
		// Halved points cover frames 0-1, 2-3 and 4; only 2-3 overlaps.
		{"S001", []string{"Frame Min Max Avg", "2 34 36 35"}},
		// Two unreduced frames, both before the range.
		{"S002", []string{"Frame Min Max Avg"}},
	} {
		rows, err := f.GetRows(tc.sheet)
		if err != nil {
			t.Fatalf("failed reading %s: %v", tc.sheet, err)
		}
		var got []string
		for _, r := range rows {
			got = append(got, strings.Join(r, " "))
		}
		if strings.Join(got, "|") != strings.Join(tc.want, "|") {
			t.Errorf("%s: expected %q, got %q", tc.sheet, tc.want, got)
		}
	}

	for _, args := range [][]string{
		{"export", path, "--from", "00:99"},
		{"export", path, "--from", "00:04", "--to", "00:01"},
	} {
		cmd := newRootCmd()
		cmd.SetOut(&bytes.Buffer{})
		cmd.SetErr(&bytes.Buffer{})
		cmd.SetArgs(args)
		if err := cmd.Execute(); err == nil {
			t.Errorf("soqplot %s: expected an error", strings.Join(args, " "))
		}
	}
}
