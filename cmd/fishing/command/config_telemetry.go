package command

import (
	"fmt"
	"net/url"

	"github.com/pixil98/go-fishing/internal/telemetry"
)

const defaultServiceName = "go-fishing"

type TelemetryConfig struct {
	Endpoint    string `json:"endpoint" env:"FISHING_OTEL_ENDPOINT"`
	ServiceName string `json:"service_name"`
}

func (c *TelemetryConfig) validate() error {
	if c.Endpoint == "" {
		return nil
	}
	u, err := url.Parse(c.Endpoint)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("telemetry: endpoint %q must be an absolute url", c.Endpoint)
	}
	return nil
}

func (c *TelemetryConfig) buildWorker() *telemetry.Worker {
	name := c.ServiceName
	if name == "" {
		name = defaultServiceName
	}
	return telemetry.NewWorker(c.Endpoint, name)
}
