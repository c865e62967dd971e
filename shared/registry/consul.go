package registry

import (
	"fmt"
	"net"
	"strconv"

	"github.com/hashicorp/consul/api"
	"github.com/rs/zerolog"
)

// ConsulRegistry registers the service with a Consul agent for discovery.
type ConsulRegistry struct {
	client    *api.Client
	logger    *zerolog.Logger
	serviceID string
}

// NewConsulRegistry connects to the Consul agent at the given address.
func NewConsulRegistry(addr string, logger *zerolog.Logger) (*ConsulRegistry, error) {
	cfg := api.DefaultConfig()
	cfg.Address = addr

	client, err := api.NewClient(cfg)
	if err != nil {
		return nil, err
	}

	return &ConsulRegistry{
		client: client,
		logger: logger,
	}, nil
}

// Register registers the service with Consul using an HTTP health check
// against the /healthz endpoint.
func (r *ConsulRegistry) Register(serviceName, httpAddr string) error {
	host, portStr, err := net.SplitHostPort(httpAddr)
	if err != nil {
		return fmt.Errorf("invalid http address %q: %w", httpAddr, err)
	}

	port, err := strconv.Atoi(portStr)
	if err != nil {
		return fmt.Errorf("invalid http port %q: %w", portStr, err)
	}

	if host == "" {
		host = "127.0.0.1"
	}

	r.serviceID = fmt.Sprintf("%s-%s-%d", serviceName, host, port)

	registration := &api.AgentServiceRegistration{
		ID:      r.serviceID,
		Name:    serviceName,
		Address: host,
		Port:    port,
		Check: &api.AgentServiceCheck{
			HTTP:                           fmt.Sprintf("http://%s:%d/healthz", host, port),
			Interval:                       "10s",
			Timeout:                        "2s",
			DeregisterCriticalServiceAfter: "1m",
		},
	}

	if err := r.client.Agent().ServiceRegister(registration); err != nil {
		return err
	}

	r.logger.Info().Str("service_id", r.serviceID).Msg("registered service with consul")

	return nil
}

// Deregister removes the service from Consul.
func (r *ConsulRegistry) Deregister() error {
	if r.serviceID == "" {
		return nil
	}

	return r.client.Agent().ServiceDeregister(r.serviceID)
}
