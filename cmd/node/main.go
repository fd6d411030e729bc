// Command node is a process entry point for one actor system: it loads its
// configuration, wires up the TCP delegate (Consul discovery, Redis
// resolution cache), starts an NSQ-backed broadcaster, installs a demo
// echo actor so the node is reachable the moment it comes up, and shuts
// down gracefully on SIGINT/SIGTERM.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/phuhao00/fluxion/actor"
	"github.com/phuhao00/fluxion/config"
	"github.com/phuhao00/fluxion/delegate"
	"github.com/phuhao00/fluxion/help"
	"github.com/phuhao00/fluxion/internal/demo"
	"github.com/phuhao00/fluxion/notify"
	"github.com/phuhao00/fluxion/wire"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	configPath := flag.String("config", "config/node.yaml", "path to the node's YAML config")
	nodeOrdinal := flag.Int64("node-id", 1, "Snowflake node id for this process's instance id (0-1023)")
	flag.Parse()

	log.Println("node starting...")

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	log.Printf("configuration loaded for system %q", cfg.System.ID)

	reg := delegate.NewRegistration()

	directory, err := delegate.NewDirectory(cfg.Consul.Addr)
	if err != nil {
		log.Fatalf("new directory: %v", err)
	}

	var cache *delegate.Cache
	if cfg.Redis.Addr != "" {
		cache = delegate.NewCache(cfg.Redis.Addr, 0)
		log.Println("resolution cache enabled")
	}

	client := delegate.NewClient(cfg.Delegate.MaxConnsPerPeer, time.Duration(cfg.Delegate.DialTimeoutMS)*time.Millisecond)

	tcpDelegate := delegate.New(delegate.Config{
		System:       cfg.System.ID,
		Directory:    directory,
		Cache:        cache,
		Client:       client,
		Serializer:   wire.GobSerializer{},
		Registration: reg,
	})

	sys := actor.New(cfg.System.ID, tcpDelegate)

	if cfg.NSQ.NSQDAddr != "" || len(cfg.NSQ.NSQDAddresses) > 0 {
		notifyClient, err := notify.NewClient(notify.Config{
			NSQDAddr:      cfg.NSQ.NSQDAddr,
			NSQDAddresses: cfg.NSQ.NSQDAddresses,
		})
		if err != nil {
			log.Printf("notify client unavailable: %v", err)
		} else {
			sys.SetBroadcaster(notifyClient)
			defer notifyClient.Close()
			log.Println("notify broadcaster enabled")
		}
	}

	ctx := context.Background()
	echoID, err := actor.Add(ctx, sys, demo.NewEchoActor())
	if err != nil {
		log.Fatalf("install echo actor: %v", err)
	}
	echoRef, _ := actor.GetLocalOn[*demo.EchoActor](sys, echoID)
	delegate.RegisterHandler[demo.Ping, demo.Pong, *demo.EchoActor](reg, echoRef, echoID, wire.GobSerializer{})
	log.Printf("echo actor installed at local id %d", echoID)

	instanceID := help.NewInstanceID(cfg.System.ID, *nodeOrdinal)
	advertiseHost := cfg.Delegate.AdvertiseHost
	if advertiseHost == "" {
		advertiseHost = "127.0.0.1"
	}
	if err := tcpDelegate.Listen(cfg.Delegate.ListenAddr, advertiseHost, cfg.Delegate.AdvertisePort, instanceID); err != nil {
		log.Fatalf("delegate listen: %v", err)
	}
	log.Printf("node %q (%s) listening on %s", cfg.System.ID, instanceID, cfg.Delegate.ListenAddr)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("shutting down node...")
	sys.Shutdown(ctx)
	tcpDelegate.Close(instanceID)
	if cache != nil {
		_ = cache.Close()
	}
	log.Println("node shut down gracefully.")
}
