package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/thomhuang/MonumentsByPostcode/pkg/di"
)

//	@title			MonumentsByPostcode API
//	@version		1.0
//	@description	nearest scheduled monuments to an English postcode district.
//	@host			localhost:6060
//	@BasePath		/
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	server, cleanup, err := di.InitializeMonumentAPIServer(ctx)
	if err != nil {
		log.Fatal(err)
	}
	defer cleanup()

	if err := server.Wait(); err != nil {
		server.Log.Error(err.Error())
	}
}
