package main

import (
	"os"
	"syscall"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
)

func TestServeReturnsListenError(t *testing.T) {
	app := fiber.New(fiber.Config{DisableStartupMessage: true})

	done := make(chan error, 1)
	go func() { done <- serve(app, "127.0.0.1:-1", make(chan os.Signal)) }()

	select {
	case err := <-done:
		if err == nil {
			t.Fatal("expected the listen error")
		}
	case <-time.After(5 * time.Second):
		t.Fatal("serve did not return after listen failed")
	}
}

func TestServeStopsOnSignal(t *testing.T) {
	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	quit := make(chan os.Signal, 1)

	done := make(chan error, 1)
	go func() { done <- serve(app, "127.0.0.1:0", quit) }()
	time.Sleep(100 * time.Millisecond)
	quit <- syscall.SIGTERM

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	case <-time.After(10 * time.Second):
		t.Fatal("serve did not stop")
	}
}
