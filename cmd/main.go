package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"
	"wa-directory/auth"
	"wa-directory/domain"
	"wa-directory/infrastructure/grpc/client"
	"wa-directory/infrastructure/grpc/server"
	"wa-directory/infrastructure/probe"
	"wa-directory/repositories"
	"wa-directory/runtime"
	"wa-directory/runtime/workers"
	"wa-directory/services"
	"wa-directory/sink"

	"github.com/Netflix/go-env"
	"github.com/dgraph-io/badger/v4"
	"github.com/joho/godotenv"
	"github.com/mama165/sdk-go/logs"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Fatal error: %v\n", err)
		os.Exit(1)
	}
}

// run wires every component, serves until a signal arrives and only then
// returns, so that deferred cleanups run before the process exits.
func run() error {
	// 1. Configuration & Logger
	_ = godotenv.Load()
	var config Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	log := logs.GetLoggerFromString(config.LogLevel)

	selfJID, ok := domain.NormalizeJID(config.SelfJID)
	if !ok {
		return fmt.Errorf("config error: SELF_JID %q is not a jid", config.SelfJID)
	}

	// 2. Database (BadgerDB), in memory when no path is given
	options := badger.DefaultOptions(config.BadgerFilepath).WithLoggingLevel(badger.WARNING)
	if config.BadgerFilepath == "" {
		options = options.WithInMemory(true)
	}
	db, err := badger.Open(options)
	if err != nil {
		return fmt.Errorf("database opening failed: %w", err)
	}
	defer func() {
		log.Info("Closing BadgerDB...")
		_ = db.Close()
	}()

	chatRepository := repositories.NewChatRepository(db, log)
	contactRepository := repositories.NewContactRepository(db, log)
	blocklistRepository := repositories.NewBlocklistRepository(db)

	// 3. Context & Signals
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	blocked, err := blocklistRepository.Load(ctx)
	if err != nil {
		return fmt.Errorf("blocklist loading failed: %w", err)
	}
	blocklist := domain.NewBlocklist(blocked...)

	// 4. Session gateway
	conn, err := grpc.NewClient(config.SessionGatewayAddr,
		grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return fmt.Errorf("session gateway dial failed: %w", err)
	}
	defer func() { _ = conn.Close() }()
	conn.Connect()
	gateway := client.NewGatewayClient(log, conn, domain.NewProfile(selfJID, config.SelfName), config.GatewayWakeTimeout)

	// 5. Events, under supervision. The fan-out outlives the signal context
	// so that it keeps serving requests the server is still finishing.
	fanout := workers.NewEventFanout(log, config.EventBufferSize, config.SinkTimeout,
		sink.NewLogSink(log),
		sink.NewContactSink(contactRepository),
		sink.NewBlocklistSink(blocklist, blocklistRepository),
	)
	locks := runtime.NewKeyedMutex()
	supervisor := workers.NewSupervisor(log, config.RestartInterval)
	supervisor.Add(fanout, workers.NewHealthReporter(log, config.HealthInterval, gateway, fanout, locks))
	supervisedCtx, stopSupervision := context.WithCancel(context.Background())
	supervised := make(chan struct{})
	go func() {
		supervisor.Run(supervisedCtx)
		close(supervised)
	}()

	directory := services.NewDirectoryService(log, services.Dependencies{
		Gateway:   gateway,
		Session:   gateway,
		Prober:    probe.NewRedirectProber(log, config.ProbeTimeout),
		Chats:     chatRepository,
		Notifier:  fanout,
		Blocklist: blocklist,
		Locks:     locks,
	}, config.ProbeBaseURL)

	// 6. gRPC Server Setup
	address := fmt.Sprintf("%s:%d", config.Host, config.Port)
	listener, err := net.Listen("tcp", address)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", address, err)
	}
	s := grpc.NewServer(grpc.UnaryInterceptor(auth.NewAuthInterceptor(auth.NewTokenManager(config.AuthSecret))))
	server.RegisterDirectoryServer(s, server.NewDirectoryServer(log, directory))

	errChan := make(chan error, 1)
	go func() {
		log.Info("Starting gRPC server", "address", address, "at", time.Now().UTC())
		if err := s.Serve(listener); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
			errChan <- fmt.Errorf("gRPC server error: %w", err)
		}
	}()

	// 7. Wait for Stop or Error
	select {
	case <-ctx.Done():
		log.Info("Shutting down gracefully...")
	case err = <-errChan:
		stopSupervision()
		<-supervised
		return err
	}

	// 8. Final Cleanup, the fan-out drains what was accepted
	s.GracefulStop()
	stopSupervision()
	<-supervised
	log.Info("Program stopped cleanly")
	return nil
}
