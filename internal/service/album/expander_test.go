package album

import (
	"context"
	"errors"
	"net/url"
	"reflect"
	"testing"

	"go.uber.org/zap"
)

type mockPages struct {
	page []byte
	err  error
}

func (m *mockPages) FetchPage(ctx context.Context, pageURL string) ([]byte, error) {
	return m.page, m.err
}

type mockExtractor struct {
	name  string
	items []string
}

func (m *mockExtractor) ItemFilename(page []byte) string            { return "" }
func (m *mockExtractor) AlbumName(page []byte) string               { return m.name }
func (m *mockExtractor) ServerStatus(page []byte) map[string]string { return nil }
func (m *mockExtractor) AlbumItems(page []byte, base *url.URL) []string {
	return m.items
}

func TestExpanderExpand(t *testing.T) {
	items := []string{
		"https://bunkr.si/f/one",
		"https://bunkr.si/v/two",
		"https://bunkr.si/f/three",
	}
	e := New(&mockPages{page: []byte("ok")}, &mockExtractor{name: "Trip", items: items}, zap.NewNop())

	alb := e.Expand(context.Background(), "https://bunkr.si/a/abc123")
	if alb.Name != "Trip" {
		t.Errorf("Expand() name = %q, want %q", alb.Name, "Trip")
	}
	if !reflect.DeepEqual(alb.Items, items) {
		t.Errorf("Expand() items = %v, want %v (document order)", alb.Items, items)
	}
}

func TestExpanderExpandFetchFailure(t *testing.T) {
	e := New(&mockPages{err: errors.New("timeout")}, &mockExtractor{}, zap.NewNop())

	alb := e.Expand(context.Background(), "https://bunkr.si/a/abc123")
	if len(alb.Items) != 0 {
		t.Errorf("Expand() on fetch failure = %v, want empty album", alb.Items)
	}
}

func TestExpanderExpandNoMatches(t *testing.T) {
	e := New(&mockPages{page: []byte("<html></html>")}, &mockExtractor{}, zap.NewNop())

	alb := e.Expand(context.Background(), "https://bunkr.si/a/abc123")
	if len(alb.Items) != 0 {
		t.Errorf("Expand() with no anchors = %v, want empty album", alb.Items)
	}
}
