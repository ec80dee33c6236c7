package main

import (
	"context"

	"edu-hub/biz/adaptor"
	"edu-hub/biz/infrastructure/mq"
	"edu-hub/provider"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/server"
	prometheus "github.com/hertz-contrib/monitor-prometheus"
)

func main() {
	provider.Init()
	p := provider.Get()

	w := mq.NewWorker(p.Config)
	registerTaskHandlers(w, p)
	if err := w.Start(); err != nil {
		panic(err)
	}

	h := server.Default(
		server.WithHostPorts(p.Config.ListenOn),
		server.WithTracer(prometheus.NewServerTracer(":9091", "/metrics")),
	)
	h.Use(func(ctx context.Context, c *app.RequestContext) {
		c.Next(adaptor.InjectContext(ctx, c))
	})
	customizedRegister(h)
	h.OnShutdown = append(h.OnShutdown, func(ctx context.Context) {
		w.Shutdown()
	})
	h.Spin()
}
