package instruction

import (
	"net/http"
	"sync"

	"github.com/mitchellh/mapstructure"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/code-payments/solana-instruction-api/pkg/app"
	"github.com/code-payments/solana-instruction-api/pkg/code/common"
	"github.com/code-payments/solana-instruction-api/pkg/metrics"
)

const defaultMetricsNamespace = "instruction_api"

type appConfig struct {
	MetricsNamespace string `mapstructure:"metrics_namespace"`
}

// App runs the instruction server under app.Run
type App struct {
	keypairs       *common.KeypairGenerator
	configProvider ConfigProvider

	server *Server

	stopOnce   sync.Once
	shutdownCh chan struct{}
}

func NewApp(keypairs *common.KeypairGenerator, configProvider ConfigProvider) *App {
	return &App{
		keypairs:       keypairs,
		configProvider: configProvider,
		shutdownCh:     make(chan struct{}),
	}
}

// Init implements app.App.Init
func (a *App) Init(config app.Config, metricsProvider *newrelic.Application, registerer prometheus.Registerer) error {
	conf := appConfig{
		MetricsNamespace: defaultMetricsNamespace,
	}
	if err := mapstructure.Decode(config, &conf); err != nil {
		return errors.Wrap(err, "invalid app config")
	}

	collectors, err := metrics.NewHTTPCollectors(conf.MetricsNamespace, registerer)
	if err != nil {
		return err
	}

	opts := []Option{WithHTTPCollectors(collectors)}
	if metricsProvider != nil {
		opts = append(opts, WithNewRelic(metricsProvider))
	}

	a.server = NewInstructionServer(a.keypairs, a.configProvider, opts...)
	return nil
}

// Handler implements app.App.Handler
func (a *App) Handler() (http.Handler, error) {
	if a.server == nil {
		return nil, errors.New("app not initialized")
	}
	return a.server.Handler()
}

// ShutdownChan implements app.App.ShutdownChan
func (a *App) ShutdownChan() <-chan struct{} {
	return a.shutdownCh
}

// Stop implements app.App.Stop
func (a *App) Stop() {
	a.stopOnce.Do(func() {
		close(a.shutdownCh)
	})
}
