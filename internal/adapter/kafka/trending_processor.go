package kafka

import (
	"context"
	"log/slog"
	"strconv"

	"github.com/lovoo/goka"
	"github.com/stylehub/storefront/internal/core/domain"
	"github.com/stylehub/storefront/pkg/schema"
)

// A CartEventCodec decodes the Avro cart-activity stream for goka.
type CartEventCodec struct {
	serde Serde
}

func NewCartEventCodec(s Serde) CartEventCodec {
	return CartEventCodec{s}
}

func (c CartEventCodec) Encode(v any) ([]byte, error) {
	const op = "CartEventCodec.Encode"
	if _, ok := v.(schema.CartEventV1); !ok {
		return nil, opErr(ErrInvalidValueType, op)
	}
	return c.serde.Encode(v)
}

func (c CartEventCodec) Decode(data []byte) (any, error) {
	const op = "CartEventCodec.Decode"
	var s schema.CartEventV1
	err := c.serde.Decode(data, &s)
	if err != nil {
		return nil, opErr(err, op)
	}
	return s, nil
}

// AddCount is the group-table value: how many times a product was
// added to a cart.
type AddCount int64

type AddCountCodec struct{}

func (AddCountCodec) Encode(v any) ([]byte, error) {
	const op = "AddCountCodec.Encode"
	cnt, ok := v.(AddCount)
	if !ok {
		return nil, opErr(ErrInvalidValueType, op)
	}
	return strconv.AppendInt(nil, int64(cnt), 10), nil
}

func (AddCountCodec) Decode(data []byte) (any, error) {
	const op = "AddCountCodec.Decode"
	n, err := strconv.ParseInt(string(data), 10, 64)
	if err != nil {
		return nil, opErr(err, op)
	}
	return AddCount(n), nil
}

// A TrendingProcessor folds the cart-activity stream into a compacted
// per-product add-to-cart counter table.
type TrendingProcessor struct {
	gp *goka.Processor
}

func NewTrendingProcessor(
	seedBrokers []string, stream, group string, cartEventSerde Serde,
) (TrendingProcessor, error) {
	const op = "NewTrendingProcessor"

	p := TrendingProcessor{}

	gg := goka.DefineGroup(goka.Group(group),
		goka.Input(goka.Stream(stream), NewCartEventCodec(cartEventSerde), processAdd),
		goka.Persist(AddCountCodec{}),
	)

	gp, err := goka.NewProcessor(seedBrokers, gg, withNonlogProcOpt())
	if err != nil {
		return TrendingProcessor{}, opErr(err, op)
	}

	p.gp = gp
	return p, nil
}

func processAdd(ctx goka.Context, msg any) {
	evt, ok := msg.(schema.CartEventV1)
	if !ok {
		return
	}
	if evt.Action != string(domain.CartItemAdded) {
		return
	}

	var cnt AddCount
	if v := ctx.Value(); v != nil {
		cnt = v.(AddCount)
	}
	ctx.SetValue(cnt + 1)
}

func (p TrendingProcessor) Run(ctx context.Context) {
	const op = "TrendingProcessor.Run"
	log := slog.With("op", op)

	err := p.gp.Run(ctx)
	if err != nil {
		log.Error("stopped", "err", err)
		return
	}
	log.Info("stopped")
}

func (p TrendingProcessor) Close() {
	const op = "TrendingProcessor.Close"
	log := slog.With("op", op)

	log.Info("closing processor...")
	p.gp.Stop()
	log.Info("processor is closed")
}
