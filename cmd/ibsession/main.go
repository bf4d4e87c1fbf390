package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"ibsession/internal/config"
	"ibsession/internal/domain"
	"ibsession/internal/gateway"
	"ibsession/internal/journal"
	"ibsession/internal/logging"
	"ibsession/internal/symbolmap"
)

func main() {
	cfgPath := "config/ibsession.yaml"
	if p := os.Getenv("IBSESSION_CONFIG"); p != "" {
		cfgPath = p
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, logCloser, err := logging.NewLogger(logging.Options{
		Level:      cfg.Logging.Level,
		FilePath:   cfg.Logging.File,
		RetainDays: cfg.Logging.RetainDays,
	})
	if err != nil {
		log.Fatalf("failed to open log file: %v", err)
	}
	if logCloser != nil {
		defer logCloser.Close()
	}
	logging.SetDefault(logger)

	symbols, err := symbolmap.Load(cfg.Symbols.MapPath)
	if err != nil {
		log.Fatalf("failed to load symbol map: %v", err)
	}

	var orders journal.OrderStore
	if cfg.Storage.SQLitePath != "" {
		j, err := journal.NewSQLiteJournal(cfg.Storage.SQLitePath)
		if err != nil {
			log.Fatalf("failed to open order journal: %v", err)
		}
		defer j.Close()
		orders = j
	}

	var ticks journal.TickStore
	if cfg.Quotes.Record && cfg.Storage.DataDir != "" {
		ticks = journal.NewParquetJournal(cfg.Storage.DataDir)
	}

	// The real gateway client plugs in behind the Transport boundary; the
	// simulator stands in for paper runs of the reference scenario.
	transport := gateway.NewSimTransport()

	session := gateway.New(gateway.Config{
		Addr:        cfg.Gateway.Addr(),
		Transport:   transport,
		Multiplier:  cfg.Gateway.Multiplier,
		ConnectWait: time.Duration(cfg.Gateway.ConnectWaitMS) * time.Millisecond,
		Symbols:     symbols,
		Orders:      orders,
		Ticks:       ticks,
		Logger:      logger,
	})

	if err := session.Connect(); err != nil {
		log.Fatalf("failed to connect: %v", err)
	}

	// The order id is global for this session and must be re-read after
	// each submission.
	orderID := session.NextOrderID()
	fmt.Printf("next order id: %d\n", orderID)

	contract := session.CreateStockContract("gld", "stk")
	order := gateway.CreateOrder(domain.OrderTypeMarket, 200, domain.ActionSell)

	if err := session.PlaceOrder(context.Background(), orderID, contract, order); err != nil {
		logger.Error("place order failed", "orderId", orderID, "err", err)
	} else {
		fmt.Printf("order %d placed: %s %d %s\n", orderID, order.Action, order.Quantity, contract.Symbol)
	}
	time.Sleep(time.Second)

	if err := session.Disconnect(); err != nil {
		log.Fatalf("failed to disconnect: %v", err)
	}
	fmt.Println("disconnected")
	time.Sleep(time.Second)
}
