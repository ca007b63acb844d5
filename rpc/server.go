package rpc

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	stdlog "log"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/AccumulateNetwork/jsonrpc2/v15"
	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"golang.org/x/net/netutil"

	"github.com/thetatoken/checkpoint/common"
	"github.com/thetatoken/checkpoint/common/util"
	"github.com/thetatoken/checkpoint/node"
)

var logger *log.Entry = util.GetLoggerForModule("rpc")

// MethodPrefix is the namespace of every RPC method
const MethodPrefix = "checkpoint."

// CheckpointRPCService implements the RPC methods.
type CheckpointRPCService struct {
	node     *node.Node
	validate *validator.Validate
}

// CheckpointRPCServer is an instance of RPC service.
type CheckpointRPCServer struct {
	*CheckpointRPCService

	server   *http.Server
	router   *mux.Router
	listener net.Listener

	// Life cycle
	wg     *sync.WaitGroup
	ctx    context.Context
	cancel context.CancelFunc
}

// NewCheckpointRPCServer creates a new instance of CheckpointRPCServer.
func NewCheckpointRPCServer(n *node.Node) *CheckpointRPCServer {
	t := &CheckpointRPCServer{
		CheckpointRPCService: &CheckpointRPCService{
			node:     n,
			validate: validator.New(),
		},
		wg: &sync.WaitGroup{},
	}

	rpcLogger := stdlog.New(logger.WriterLevel(log.DebugLevel), "", 0)
	handler := jsonrpc2.HTTPRequestHandler(t.methods(), rpcLogger)

	t.router = mux.NewRouter()
	t.router.Handle("/", &defaultHTTPHandler{})
	timeout := time.Duration(viper.GetInt(common.CfgRPCTimeoutSecs)) * time.Second
	t.router.Handle("/rpc", corsMiddleware(http.TimeoutHandler(handler, timeout, timeoutBody)))
	if viper.GetBool(common.CfgMetricsEnabled) {
		t.router.Handle("/metrics", promhttp.Handler())
	}
	t.router.Use(logMiddleware)

	t.server = &http.Server{
		Handler: t.router,
	}

	return t
}

func (t *CheckpointRPCService) methods() jsonrpc2.MethodMap {
	return jsonrpc2.MethodMap{
		MethodPrefix + "SendTx":                 t.SendTx,
		MethodPrefix + "Call":                   t.Call,
		MethodPrefix + "GetCheckpoint":          t.GetCheckpoint,
		MethodPrefix + "GetUnboundedCheckpoint": t.GetUnboundedCheckpoint,
		MethodPrefix + "GetStatus":              t.GetStatus,
		MethodPrefix + "GetNonce":               t.GetNonce,
		MethodPrefix + "ListTransactions":       t.ListTransactions,
	}
}

// Handler returns the HTTP handler serving every endpoint
func (t *CheckpointRPCServer) Handler() http.Handler {
	return t.router
}

// Start creates the main goroutine.
func (t *CheckpointRPCServer) Start(ctx context.Context) {
	c, cancel := context.WithCancel(ctx)
	t.ctx = c
	t.cancel = cancel

	t.wg.Add(1)
	go t.mainLoop()
}

func (t *CheckpointRPCServer) mainLoop() {
	defer t.wg.Done()

	go t.serve()

	<-t.ctx.Done()
	t.server.Shutdown(context.Background())
}

func (t *CheckpointRPCServer) serve() {
	address := viper.GetString(common.CfgRPCAddress)
	port := viper.GetString(common.CfgRPCPort)
	l, err := net.Listen("tcp", address+":"+port)
	if err != nil {
		logger.WithFields(log.Fields{"error": err}).Fatal("Failed to create listener")
	} else {
		logger.WithFields(log.Fields{"address": address, "port": port}).Info("RPC server started")
	}
	defer l.Close()

	ll := netutil.LimitListener(l, viper.GetInt(common.CfgRPCMaxConnections))
	t.listener = ll

	logger.Info(t.server.Serve(ll))
}

func corsMiddleware(handler http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Headers", "*")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		handler.ServeHTTP(w, r)
	})
}

// Stop notifies all goroutines to stop without blocking.
func (t *CheckpointRPCServer) Stop() {
	if t.cancel != nil {
		t.cancel()
	}
}

// Wait blocks until all goroutines stop.
func (t *CheckpointRPCServer) Wait() {
	t.wg.Wait()
}

type defaultHTTPHandler struct {
}

func (dh *defaultHTTPHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	fmt.Fprintf(w, "Checkpoint node is up and running!")
}

// unmarshalParams accepts both named parameters and a positional array
// holding a single object.
func unmarshalParams(params json.RawMessage, v interface{}) error {
	trimmed := bytes.TrimSpace(params)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var positional []json.RawMessage
		if err := json.Unmarshal(trimmed, &positional); err != nil {
			return err
		}
		if len(positional) != 1 {
			return fmt.Errorf("expected one parameter object, got %v", len(positional))
		}
		trimmed = positional[0]
	}
	return json.Unmarshal(trimmed, v)
}

const timeoutBody = "{\"error\": {\"message\":\"Timeout\"}}"

// logMiddleware logs every request with its status and latency.
func logMiddleware(handler http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, code: http.StatusOK}
		handler.ServeHTTP(sw, r)

		entry := logger.WithFields(log.Fields{
			"path":    r.URL.Path,
			"remote":  r.RemoteAddr,
			"status":  sw.code,
			"latency": time.Since(start),
		})
		if sw.code == http.StatusServiceUnavailable {
			entry.Warn("HTTP request timed out")
			return
		}
		entry.Debug("HTTP request served")
	})
}

type statusWriter struct {
	http.ResponseWriter
	code int
}

func (sw *statusWriter) WriteHeader(code int) {
	sw.code = code
	sw.ResponseWriter.WriteHeader(code)
}
