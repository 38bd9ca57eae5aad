package main

import (
	"context"
	"log"
	"os"
	"os/signal"

	_ "github.com/mkrawiec/netplanner/docs"
	"github.com/mkrawiec/netplanner/internal/app"
)

//	@title			Netplanner API
//	@version		1.0
//	@description	Subnet planner for roadside device batches. Reserves address blocks and derives equipment bills.

//	@contact.name	API Support

//	@license.name	Apache 2.0
//	@license.url	http://www.apache.org/licenses/LICENSE-2.0.html

//	@host		localhost:4040
//	@BasePath	/

//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cfg := app.LoadConfig()

	if err := app.Run(ctx, cfg); err != nil {
		log.Fatalf("server exited: %v", err)
	}
}
