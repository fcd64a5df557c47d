package otel

import (
	"go.opentelemetry.io/otel"

	"github.com/shafe/handcraft/internal/common"
)

var Tracer = otel.Tracer(common.AppOrderService)
