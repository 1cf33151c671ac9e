package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/artmafra/notas/internal/config"
	"github.com/artmafra/notas/internal/migration"
	"github.com/artmafra/notas/internal/observability"
	"github.com/artmafra/notas/internal/server"
	"github.com/artmafra/notas/pkg/db"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		config.Module,
		observability.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		migration.Module,
		server.Module,
	)
	app.Run()
}

func RegisterSnowflake() *snowflake.Node {
	node, err := snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}
	return node
}
