package main

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/J1407B-K/httpline/httpline"
)

func newHandler(mode string, logger *zap.Logger) (httpline.Handler, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	switch mode {
	case "echo":
		return httpline.Echo, nil
	case "dispatch":
		e := httpline.NewEngine()
		e.R.SetLogger(logger)
		e.Use(httpline.Logger(logger))
		if err := e.GET("/greeting", GreetingHandler); err != nil {
			return nil, err
		}
		if err := e.POST("/echo", httpline.Echo); err != nil {
			return nil, err
		}
		logger.Debug("routes", zap.Strings("routes", e.R.Routes()))
		return e.Handler(), nil
	default:
		return nil, fmt.Errorf("unknown mode %q", mode)
	}
}

func GreetingHandler(req *httpline.Request) *httpline.Response {
	return httpline.Build("200", nil, httpline.Text("<h1>hello</h1>"))
}
