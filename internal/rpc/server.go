package rpc

import (
	"log/slog"

	middleware "github.com/vmkteam/zenrpc-middleware"
	"github.com/vmkteam/zenrpc/v2"

	"github.com/mkravets/blog-api/internal/blog"
)

func New(logger *slog.Logger, postManager *blog.Manager) *zenrpc.Server {

	rpcService := NewPostService(postManager)
	rpcServer := zenrpc.NewServer(zenrpc.Options{ExposeSMD: true})
	rpcServer.Register("post", rpcService)
	rpcServer.Use(middleware.WithSLog(logger.InfoContext, "blog-api", nil))

	return rpcServer
}
