package stats

import (
	"strings"
	"testing"
)

func TestCollectorTallies(t *testing.T) {
	c := New()
	fs := c.File("pricelist.xlsx")
	fs.Record(Created)
	fs.Record(Updated)
	fs.Record(Updated)
	fs.Record(Skipped)

	if fs.Created != 1 || fs.Updated != 2 || fs.Skipped != 1 || fs.Failed != 0 {
		t.Errorf("unexpected tallies: %+v", fs)
	}
	if c.HasFailures() {
		t.Error("no failures were recorded")
	}

	fs.Record(Failed)
	if !c.HasFailures() {
		t.Error("expected HasFailures after a failed outcome")
	}
}

func TestFileReturnsSameBucket(t *testing.T) {
	c := New()
	a := c.File("a.xlsx")
	a.Record(Created)
	if b := c.File("a.xlsx"); b.Created != 1 {
		t.Error("File must return the existing bucket for a path")
	}
	if len(c.Files()) != 1 {
		t.Errorf("expected 1 bucket, got %d", len(c.Files()))
	}
}

func TestRenderListsWarnings(t *testing.T) {
	c := New()
	fs := c.File("a.xlsx")
	fs.Record(Created)
	fs.Warn(WarnStaleID)

	out := c.Render()
	if !strings.Contains(out, "a.xlsx") {
		t.Errorf("render should list the file, got:\n%s", out)
	}
	if !strings.Contains(out, WarnStaleID) {
		t.Errorf("render should list warnings, got:\n%s", out)
	}
}
