package dot

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/hpdgraph/pkg/cache"
)

// Renderer memoizes [RenderSVG] by DOT source. A nil *Renderer renders
// without caching.
type Renderer struct {
	Cache cache.Cache
	TTL   time.Duration
	Log   *log.Logger
}

// RenderSVG returns the SVG for src from the cache, rendering and storing
// it on a miss. Cache failures are logged and never fail the render.
func (r *Renderer) RenderSVG(ctx context.Context, src string) ([]byte, error) {
	if r == nil || r.Cache == nil {
		return RenderSVG(ctx, src)
	}
	key := cache.Key("svg", []byte(src))
	if data, ok, err := r.Cache.Get(ctx, key); err != nil {
		r.warn("svg cache read failed", err)
	} else if ok {
		return data, nil
	}

	svg, err := RenderSVG(ctx, src)
	if err != nil {
		return nil, err
	}
	if err := r.Cache.Set(ctx, key, svg, r.TTL); err != nil {
		r.warn("svg cache write failed", err)
	}
	return svg, nil
}

func (r *Renderer) warn(msg string, err error) {
	if r.Log != nil {
		r.Log.Warn(msg, "err", err)
	}
}
