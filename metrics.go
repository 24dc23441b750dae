package redis

import "github.com/prometheus/client_golang/prometheus"

// Recorder is an optional instrumentation hook. A nil *Recorder (the
// default, see config.go) disables instrumentation: every call site on
// Connection guards with "if c.opts.recorder != nil" so the library costs
// nothing when a caller does not opt in.
type Recorder struct {
	commandsTotal   prometheus.Counter
	commandErrors   prometheus.Counter
	reconnectsOK    prometheus.Counter
	reconnectsError prometheus.Counter
	connectsOK      prometheus.Counter
}

// NewRecorder registers the client's counters on reg and returns a Recorder
// ready for WithRecorder. Use prometheus.NewRegistry() in tests to avoid
// colliding with the global default registry.
func NewRecorder(reg prometheus.Registerer) *Recorder {
	r := &Recorder{
		commandsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "redis_client_commands_total",
			Help: "Commands successfully issued on the connection.",
		}),
		commandErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "redis_client_command_errors_total",
			Help: "Commands that failed to write to the connection.",
		}),
		reconnectsOK: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "redis_client_reconnects_total",
			Help: "Successful automatic reconnect attempts.",
		}),
		reconnectsError: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "redis_client_reconnect_errors_total",
			Help: "Failed automatic reconnect attempts.",
		}),
		connectsOK: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "redis_client_connects_total",
			Help: "Successful initial connections.",
		}),
	}
	reg.MustRegister(r.commandsTotal, r.commandErrors, r.reconnectsOK, r.reconnectsError, r.connectsOK)
	return r
}

func (r *Recorder) CommandIssued()      { r.commandsTotal.Inc() }
func (r *Recorder) CommandErrored()     { r.commandErrors.Inc() }
func (r *Recorder) ReconnectSucceeded() { r.reconnectsOK.Inc() }
func (r *Recorder) ReconnectFailed()    { r.reconnectsError.Inc() }
func (r *Recorder) ConnectSucceeded()   { r.connectsOK.Inc() }
