package jsonview

import (
	"os"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"

	"github.com/goliatone/go-pageblocks/pkg/testsupport"
)

func TestMain(m *testing.M) {
	v := m.Run()
	snaps.Clean(m)
	os.Exit(v)
}

func TestRenderPage_LandingSnapshot(t *testing.T) {
	page := testsupport.LoadPage(t, "testdata/landing.json")

	out, err := New(WithIndent("  ")).RenderPage(testsupport.Context(), page)
	if err != nil {
		t.Fatalf("render page: %v", err)
	}
	snaps.WithConfig(snaps.Ext(".json")).MatchStandaloneSnapshot(t, string(out))
}
