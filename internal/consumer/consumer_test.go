package consumer

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"

	"github.com/spf13/afero"

	"github.com/AIDMI-DataHub/heatscan/internal/types"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestMaxArticlesMiddlewareTruncates(t *testing.T) {
	mw := &MaxArticlesMiddleware{Limit: 2}
	result := &types.QueryResult{Articles: []types.ArticleRef{{Title: "a"}, {Title: "b"}, {Title: "c"}}}

	out, err := mw.Process(result)
	if err != nil {
		t.Fatal(err)
	}
	if len(out.Articles) != 2 {
		t.Fatalf("expected 2 articles after truncation, got %d", len(out.Articles))
	}
}

func TestMaxArticlesMiddlewareZeroDisables(t *testing.T) {
	mw := &MaxArticlesMiddleware{Limit: 0}
	result := &types.QueryResult{Articles: []types.ArticleRef{{Title: "a"}, {Title: "b"}}}

	out, _ := mw.Process(result)
	if len(out.Articles) != 2 {
		t.Fatal("expected no truncation when limit is 0")
	}
}

func TestDropEmptyMiddlewareDropsEmptyOK(t *testing.T) {
	mw := DropEmptyMiddleware{}
	result := &types.QueryResult{Outcome: types.OutcomeOK}

	out, err := mw.Process(result)
	if err != nil {
		t.Fatal(err)
	}
	if out != nil {
		t.Fatal("expected empty OK result to be dropped")
	}
}

func TestDedupArticlesMiddlewareRemovesDuplicateURLs(t *testing.T) {
	mw := DedupArticlesMiddleware{}
	result := &types.QueryResult{Articles: []types.ArticleRef{
		{URL: "http://a"}, {URL: "http://b"}, {URL: "http://a"},
	}}
	out, err := mw.Process(result)
	if err != nil {
		t.Fatal(err)
	}
	if len(out.Articles) != 2 {
		t.Fatalf("expected 2 unique articles, got %d", len(out.Articles))
	}
}

func TestPipelineChainsMiddlewareInOrder(t *testing.T) {
	p := NewPipeline(testLogger())
	p.Use(&MaxArticlesMiddleware{Limit: 1})
	p.Use(DropEmptyMiddleware{})

	result := &types.QueryResult{Outcome: types.OutcomeOK, Articles: []types.ArticleRef{{Title: "a"}, {Title: "b"}}}
	out, err := p.Process(result)
	if err != nil {
		t.Fatal(err)
	}
	if out == nil || len(out.Articles) != 1 {
		t.Fatal("expected pipeline to truncate then keep the non-empty result")
	}
}

func TestFileSinkWritesNDJSON(t *testing.T) {
	fs := afero.NewMemMapFs()
	sink, err := NewFileSink(fs, "/out/results.ndjson")
	if err != nil {
		t.Fatal(err)
	}
	defer sink.Close()

	ctx := context.Background()
	if err := sink.Write(ctx, types.QueryResult{Outcome: types.OutcomeOK}); err != nil {
		t.Fatal(err)
	}

	data, err := afero.ReadFile(fs, "/out/results.ndjson")
	if err != nil {
		t.Fatal(err)
	}
	var decoded types.QueryResult
	if err := json.Unmarshal(data[:len(data)-1], &decoded); err != nil { // strip trailing newline
		t.Fatalf("expected valid json line: %v", err)
	}
	if decoded.Outcome != types.OutcomeOK {
		t.Fatalf("unexpected outcome: %s", decoded.Outcome)
	}
}

func TestMemoryCollectorAccumulates(t *testing.T) {
	c := NewMemoryCollector()
	c.Collect(types.QueryResult{Outcome: types.OutcomeOK})
	c.Collect(types.QueryResult{Outcome: types.OutcomeFailedPermanent})

	if len(c.Results()) != 2 {
		t.Fatalf("expected 2 collected results, got %d", len(c.Results()))
	}
}
