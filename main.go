package main

import (
	"trackly-server/config"
	"trackly-server/routes"
	"trackly-server/service"
)

func main() {
	// Infrastructure first.
	config.Load()
	config.InitDB()
	config.InitRedis()
	config.InitMinIO()
	config.InitRabbitMQ()

	// Background workers.
	service.StartLinkTitleWorker()

	// Web server.
	r := routes.InitRouter()
	config.Log.Info().Str("addr", config.Cfg.Server.Addr).Msg("trackly server up")
	if err := r.Run(config.Cfg.Server.Addr); err != nil {
		config.Log.Fatal().Err(err).Msg("server stopped")
	}
}
