package rpc

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"net/rpc"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"github.com/powerman/rpc-codec/jsonrpc2"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"golang.org/x/net/netutil"
	"golang.org/x/net/websocket"

	"github.com/guildxyz/feeledger/common"
	"github.com/guildxyz/feeledger/common/util"
	"github.com/guildxyz/feeledger/ledger"
)

var logger *log.Entry = log.WithFields(log.Fields{"prefix": "rpc"})

// ServiceName is the net/rpc name methods are registered under.
const ServiceName = "feeledger"

// FeeLedgerRPCService exposes the ledger over JSON-RPC. Exported methods
// follow the net/rpc signature func(args *XArgs, result *XResult) error.
type FeeLedgerRPCService struct {
	ledger *ledger.Ledger

	// Life cycle
	wg      *sync.WaitGroup
	ctx     context.Context
	cancel  context.CancelFunc
	stopped bool
}

// FeeLedgerRPCServer is an instance of RPC service.
type FeeLedgerRPCServer struct {
	*FeeLedgerRPCService

	server   *http.Server
	handler  *rpc.Server
	router   *mux.Router
	listener net.Listener
}

// NewFeeLedgerRPCServer creates a new instance of FeeLedgerRPCServer.
func NewFeeLedgerRPCServer(ledger *ledger.Ledger) *FeeLedgerRPCServer {
	t := &FeeLedgerRPCServer{
		FeeLedgerRPCService: &FeeLedgerRPCService{
			ledger: ledger,
			wg:     &sync.WaitGroup{},
		},
	}

	s := rpc.NewServer()
	if err := s.RegisterName(ServiceName, t.FeeLedgerRPCService); err != nil {
		logger.Panicf("Failed to register RPC service: %v", err)
	}
	t.handler = s

	timeout := viper.GetDuration(common.CfgRPCTimeoutSecs) * time.Second
	t.router = mux.NewRouter()
	t.router.Handle("/", &defaultHTTPHandler{})
	t.router.Handle("/rpc", corsMiddleware(http.TimeoutHandler(jsonrpc2.HTTPHandler(s), timeout, timeoutBody)))
	t.router.Handle("/ws", websocket.Handler(func(ws *websocket.Conn) {
		s.ServeCodec(jsonrpc2.NewServerCodec(ws, s))
	}))

	t.server = &http.Server{
		Handler: t.router,
	}

	logger = util.GetLoggerForModule("rpc")

	return t
}

// Start creates the main goroutine.
func (t *FeeLedgerRPCServer) Start(ctx context.Context) {
	c, cancel := context.WithCancel(ctx)
	t.ctx = c
	t.cancel = cancel

	t.wg.Add(1)
	go t.mainLoop()
}

func (t *FeeLedgerRPCServer) mainLoop() {
	defer t.wg.Done()

	go t.serve()

	<-t.ctx.Done()
	t.stopped = true
	t.server.Shutdown(context.Background())
}

func (t *FeeLedgerRPCServer) serve() {
	address := viper.GetString(common.CfgRPCAddress)
	port := viper.GetString(common.CfgRPCPort)
	l, err := net.Listen("tcp", net.JoinHostPort(address, port))
	if err != nil {
		logger.WithFields(log.Fields{"error": err}).Fatal("Failed to create listener")
	} else {
		logger.WithFields(log.Fields{"address": address, "port": port}).Info("RPC server started")
	}
	defer l.Close()

	ll := netutil.LimitListener(l, viper.GetInt(common.CfgRPCMaxConnections))
	t.listener = ll

	if err := t.server.Serve(ll); err != http.ErrServerClosed {
		logger.Error(err)
	}
}

// Handler returns the router serving the RPC endpoints.
func (t *FeeLedgerRPCServer) Handler() http.Handler {
	return t.router
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
func (t *FeeLedgerRPCServer) Stop() {
	t.cancel()
}

// Wait blocks until all goroutines stop.
func (t *FeeLedgerRPCServer) Wait() {
	t.wg.Wait()
}

const timeoutBody = "{\"error\": {\"message\":\"Timeout\"}}"

type defaultHTTPHandler struct {
}

func (dh *defaultHTTPHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	fmt.Fprintf(w, "Fee ledger node is up and running!")
}
