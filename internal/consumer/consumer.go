// Package consumer models the opaque downstream contract: relevance
// tagging and sink/serialization of QueryResults, plus a small
// middleware chain for post-processing rules like a max-articles cap.
// The core engine treats everything in this package as a black box it
// calls into, never inspects.
package consumer

import (
	"context"
	"log/slog"

	"github.com/AIDMI-DataHub/heatscan/internal/types"
)

// Middleware transforms a QueryResult. Returning nil drops the result
// from the pipeline entirely (e.g. every article filtered out).
type Middleware interface {
	Name() string
	Process(result *types.QueryResult) (*types.QueryResult, error)
}

// Pipeline chains middleware in registration order, exactly like the
// teacher's pipeline.Pipeline.
type Pipeline struct {
	middlewares []Middleware
	logger      *slog.Logger
}

func NewPipeline(logger *slog.Logger) *Pipeline {
	return &Pipeline{logger: logger.With("component", "consumer_pipeline")}
}

func (p *Pipeline) Use(mw Middleware) {
	p.middlewares = append(p.middlewares, mw)
	p.logger.Debug("middleware added", "name", mw.Name(), "position", len(p.middlewares))
}

func (p *Pipeline) Process(result *types.QueryResult) (*types.QueryResult, error) {
	current := result
	for _, mw := range p.middlewares {
		next, err := mw.Process(current)
		if err != nil {
			return nil, err
		}
		if next == nil {
			p.logger.Debug("result dropped", "stage", mw.Name())
			return nil, nil
		}
		current = next
	}
	return current, nil
}

// Sink is the opaque serialization target for finished QueryResults —
// JSON lines to disk, a message queue, a database — the engine does not
// care which.
type Sink interface {
	Write(ctx context.Context, result types.QueryResult) error
	Close() error
}

// Collector accumulates QueryResults for a run and exposes them for a
// final batch handoff to relevance tagging, decoupling "the executor
// produced this result" from "something consumed it".
type Collector interface {
	Collect(result types.QueryResult)
	Results() []types.QueryResult
}

// RelevanceTagger classifies ArticleRefs as heat-relevant and assigns a
// district, an opaque LLM-backed contract the core never implements
// directly.
type RelevanceTagger interface {
	Tag(ctx context.Context, article types.ArticleRef) (relevant bool, district string, err error)
}
