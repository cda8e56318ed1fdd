package hbm

import (
	"github.com/twtxwydavid/hibernate-orm/internal/mapping"
	"github.com/twtxwydavid/hibernate-orm/internal/match"
	"github.com/twtxwydavid/hibernate-orm/internal/source"
)

// toOneFetchTiming resolves when a to-one association is loaded. An explicit
// lazy selector always decides; otherwise fetch="join" and outer-join fall
// back to the document's laziness default.
func toOneFetchTiming(ctx source.BindingContext, path string, lazy, fetch, outerJoin mapping.Selector) (source.FetchTiming, error) {
	if !lazy.IsSet() {
		switch {
		case fetch == "join" || outerJoin == "true":
			return source.FetchImmediate, nil
		case outerJoin == "false":
			return source.FetchDelayed, nil
		default:
			return defaultTiming(ctx), nil
		}
	}

	switch lazy {
	case "extra":
		return source.FetchExtraDelayed, nil
	case "true", "proxy":
		return source.FetchDelayed, nil
	case "false":
		return source.FetchImmediate, nil
	default:
		return 0, unexpectedSelector(ctx, "lazy", path, lazy, mapping.ManyToOneLazyValues)
	}
}

// toOneFetchStyle resolves how a to-one association is loaded. It never
// fails: unknown values fall through to SELECT, the validator reports them.
func toOneFetchStyle(ctx source.BindingContext, fetch, outerJoin mapping.Selector) source.FetchStyle {
	if fetch.IsSet() {
		if fetch == "join" {
			return source.FetchStyleJoin
		}

		return source.FetchStyleSelect
	}

	switch outerJoin {
	case "auto":
		if ctx.MappingDefaults().AssociationsLazy {
			return source.FetchStyleSelect
		}

		return source.FetchStyleJoin
	case "true":
		return source.FetchStyleJoin
	default:
		return source.FetchStyleSelect
	}
}

func toOneFetchMode(ctx source.BindingContext, path string, fetch mapping.Selector) (source.FetchMode, error) {
	switch fetch {
	case "":
		return source.FetchModeDefault, nil
	case "join":
		return source.FetchModeJoin, nil
	case "select":
		return source.FetchModeSelect, nil
	default:
		return 0, unexpectedSelector(ctx, "fetch", path, fetch, mapping.ManyToOneFetchValues)
	}
}

// pluralFetchTiming resolves when a collection is initialized. Without a
// lazy selector a join fetch forces eager loading.
func pluralFetchTiming(ctx source.BindingContext, path string, c *mapping.CollectionElement) (source.FetchTiming, error) {
	switch c.Lazy {
	case "":
		if c.Fetch == "join" || c.OuterJoin == "true" {
			return source.FetchImmediate, nil
		}

		return defaultTiming(ctx), nil
	case "extra":
		return source.FetchExtraDelayed, nil
	case "true":
		return source.FetchDelayed, nil
	case "false":
		return source.FetchImmediate, nil
	default:
		return 0, unexpectedSelector(ctx, "lazy", path, c.Lazy, mapping.CollectionLazyValues)
	}
}

func pluralFetchStyle(ctx source.BindingContext, path string, c *mapping.CollectionElement) (source.FetchStyle, error) {
	switch c.Fetch {
	case "join":
		return source.FetchStyleJoin, nil
	case "subselect":
		return source.FetchStyleSubselect, nil
	case "", "select":
		if c.Fetch == "" && c.OuterJoin == "true" {
			return source.FetchStyleJoin, nil
		}

		if c.BatchSize > 1 {
			return source.FetchStyleBatch, nil
		}

		return source.FetchStyleSelect, nil
	default:
		return 0, unexpectedSelector(ctx, "fetch", path, c.Fetch, mapping.CollectionFetchValues)
	}
}

func defaultTiming(ctx source.BindingContext) source.FetchTiming {
	if ctx.MappingDefaults().AssociationsLazy {
		return source.FetchDelayed
	}

	return source.FetchImmediate
}

func unexpectedSelector(
	ctx source.BindingContext,
	directive, path string,
	value mapping.Selector,
	allowed []string,
) *source.MappingError {
	err := source.NewMappingError(ctx.Origin(), "Unexpected %s selection [%s] on '%s'", directive, value, path)
	if hint := match.Closest(string(value), allowed); hint != "" {
		err.Message += " (did you mean " + hint + "?)"
	}

	return err
}
