package kafka

import (
	"context"
	"log/slog"

	"github.com/lovoo/goka"
	"github.com/stylehub/storefront/internal/core/port"
)

var _ port.TrendingReader = (*TrendingView)(nil)

// A TrendingView is a read-only materialization of the trending group
// table, serving per-product add counters to the core.
type TrendingView struct {
	gv *goka.View
}

func NewTrendingView(seedBrokers []string, group string) (TrendingView, error) {
	const op = "NewTrendingView"

	gv, err := goka.NewView(
		seedBrokers,
		goka.GroupTable(goka.Group(group)),
		AddCountCodec{},
	)
	if err != nil {
		return TrendingView{}, opErr(err, op)
	}
	return TrendingView{gv}, nil
}

func (v TrendingView) Run(ctx context.Context) {
	const op = "TrendingView.Run"
	log := slog.With("op", op)

	if err := v.gv.Run(ctx); err != nil {
		log.Error("unexpected fail on run", "err", err)
	}
}

// AddCount returns the product's add-to-cart counter; products never
// added count zero.
func (v TrendingView) AddCount(productID string) (int64, error) {
	const op = "TrendingView.AddCount"

	val, err := v.gv.Get(productID)
	if err != nil {
		return 0, opErr(err, op)
	}
	if val == nil {
		return 0, nil
	}

	cnt, ok := val.(AddCount)
	if !ok {
		return 0, opErr(ErrInvalidValueType, op)
	}
	return int64(cnt), nil
}
